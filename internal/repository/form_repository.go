package repository

import (
	"errors"

	"github.com/arphatra/arphatra/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSlugTaken signals a unique-slug violation on create or update.
var ErrSlugTaken = errors.New("slug already used")

type FormRepository interface {
	Create(form *model.Form) error
	FindByID(id string) (*model.Form, error)
	// FindByIDOrSlug resolves the canonical form from either key. Every
	// read/update/delete/submit path goes through this one resolver.
	FindByIDOrSlug(idOrSlug string) (*model.Form, error)
	FindAllByUser(userID string) ([]model.Form, error)
	Update(form *model.Form) error
	SlugTaken(slug string, excludeFormID string) (bool, error)
	IncrementResponseCount(id string) error
	// DeleteWithResponses removes the form and all its responses in one
	// transaction.
	DeleteWithResponses(id string) error
	// DeleteAllByUser removes every form owned by the user together with
	// their responses, in one batched transaction.
	DeleteAllByUser(userID string) error
}

type formRepository struct {
	db *gorm.DB
}

func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepository{db: db}
}

func (r *formRepository) Create(form *model.Form) error {
	if form.Slug != nil {
		taken, err := r.SlugTaken(*form.Slug, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}
	}
	return r.db.Create(form).Error
}

func (r *formRepository) FindByID(id string) (*model.Form, error) {
	var form model.Form
	if err := r.db.First(&form, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) FindByIDOrSlug(idOrSlug string) (*model.Form, error) {
	// Only well-formed UUIDs can be primary keys; anything else must be a
	// slug. Trying the uuid branch first keeps id lookups index-only.
	if _, err := uuid.Parse(idOrSlug); err == nil {
		var form model.Form
		err := r.db.First(&form, "id = ?", idOrSlug).Error
		if err == nil {
			return &form, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var form model.Form
	if err := r.db.First(&form, "slug = ?", idOrSlug).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) FindAllByUser(userID string) ([]model.Form, error) {
	var forms []model.Form
	if err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *formRepository) Update(form *model.Form) error {
	if form.Slug != nil {
		taken, err := r.SlugTaken(*form.Slug, form.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}
	}
	return r.db.Save(form).Error
}

func (r *formRepository) SlugTaken(slug string, excludeFormID string) (bool, error) {
	var count int64
	query := r.db.Model(&model.Form{}).Where("slug = ?", slug)
	if excludeFormID != "" {
		query = query.Where("id <> ?", excludeFormID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *formRepository) IncrementResponseCount(id string) error {
	return r.db.Model(&model.Form{}).
		Where("id = ?", id).
		UpdateColumn("response_count", gorm.Expr("response_count + 1")).Error
}

func (r *formRepository) DeleteWithResponses(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", id).Delete(&model.Response{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Form{}, "id = ?", id).Error
	})
}

func (r *formRepository) DeleteAllByUser(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&model.Form{}).
			Where("user_id = ?", userID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("form_id IN ?", ids).Delete(&model.Response{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Form{}, "id IN ?", ids).Error
	})
}
