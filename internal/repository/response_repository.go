package repository

import (
	"github.com/arphatra/arphatra/internal/model"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	Create(response *model.Response) error
	FindAllByForm(formID string) ([]model.Response, error)
	CountByForm(formID string) (int64, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Create(response *model.Response) error {
	return r.db.Create(response).Error
}

func (r *responseRepository) FindAllByForm(formID string) ([]model.Response, error) {
	var responses []model.Response
	if err := r.db.Where("form_id = ?", formID).Order("submitted_at DESC").Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepository) CountByForm(formID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Response{}).Where("form_id = ?", formID).Count(&count).Error
	return count, err
}
