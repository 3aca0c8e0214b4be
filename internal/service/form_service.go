package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arphatra/arphatra/internal/builder"
	"github.com/arphatra/arphatra/internal/dto"
	"github.com/arphatra/arphatra/internal/model"
	"github.com/arphatra/arphatra/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type FormService interface {
	CreateForm(userID string, req dto.SaveFormRequest) (*dto.FormResponse, error)
	GetForm(userID, idOrSlug string) (*dto.FormResponse, error)
	// GetPublicForm serves the renderer read path: no auth, active forms only.
	GetPublicForm(idOrSlug string) (*dto.PublicFormResponse, error)
	ListForms(userID string) ([]dto.FormSummary, error)
	UpdateForm(userID, idOrSlug string, req dto.SaveFormRequest) (*dto.FormResponse, error)
	DeleteForm(userID, idOrSlug string) error
	CheckSlug(slug string) (*dto.CheckSlugResponse, error)
}

type formService struct {
	forms repository.FormRepository
}

func NewFormService(forms repository.FormRepository) FormService {
	return &formService{forms: forms}
}

// normalizeSlug lowercases and trims; empty means "no slug" and maps to
// NULL so it never collides on the unique index.
func normalizeSlug(slug *string) *string {
	if slug == nil {
		return nil
	}
	cleaned := strings.ToLower(strings.TrimSpace(*slug))
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func validateQuestions(questions []builder.Question) error {
	seen := make(map[int]bool, len(questions))
	for i := range questions {
		q := &questions[i]
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
		q.Normalize()
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func formToDTO(form *model.Form) (*dto.FormResponse, error) {
	var resp dto.FormResponse
	copier.Copy(&resp, form)
	if len(form.Questions) > 0 {
		if err := json.Unmarshal(form.Questions, &resp.Questions); err != nil {
			return nil, fmt.Errorf("decode stored questions: %w", err)
		}
	}
	if len(form.Theme) > 0 {
		if err := json.Unmarshal(form.Theme, &resp.Theme); err != nil {
			return nil, fmt.Errorf("decode stored theme: %w", err)
		}
	}
	return &resp, nil
}

func applyRequest(form *model.Form, req dto.SaveFormRequest) error {
	if err := validateQuestions(req.Questions); err != nil {
		return err
	}
	questions, err := json.Marshal(req.Questions)
	if err != nil {
		return err
	}
	theme, err := json.Marshal(req.Theme)
	if err != nil {
		return err
	}

	form.Name = req.Name
	form.Title = req.Title
	form.Description = req.Description
	form.Slug = normalizeSlug(req.Slug)
	form.Theme = theme
	form.BannerImage = req.BannerImage
	form.Thumbnail = req.Thumbnail
	form.Questions = questions
	if req.Status != "" {
		form.Status = req.Status
	}
	return nil
}

func (s *formService) CreateForm(userID string, req dto.SaveFormRequest) (*dto.FormResponse, error) {
	form := model.Form{UserID: userID, Status: model.FormStatusActive}
	if err := applyRequest(&form, req); err != nil {
		return nil, err
	}
	if err := s.forms.Create(&form); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create form")
		return nil, err
	}
	return formToDTO(&form)
}

func (s *formService) GetForm(userID, idOrSlug string) (*dto.FormResponse, error) {
	form, err := s.forms.FindByIDOrSlug(idOrSlug)
	if err != nil {
		return nil, err
	}
	if form.UserID != userID {
		return nil, ErrOwnership
	}
	return formToDTO(form)
}

func (s *formService) GetPublicForm(idOrSlug string) (*dto.PublicFormResponse, error) {
	form, err := s.forms.FindByIDOrSlug(idOrSlug)
	if err != nil {
		return nil, err
	}
	if form.Status != model.FormStatusActive {
		return nil, ErrFormInactive
	}

	full, err := formToDTO(form)
	if err != nil {
		return nil, err
	}
	var resp dto.PublicFormResponse
	copier.Copy(&resp, full)
	return &resp, nil
}

func (s *formService) ListForms(userID string) ([]dto.FormSummary, error) {
	forms, err := s.forms.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.FormSummary, 0, len(forms))
	copier.Copy(&summaries, &forms)
	return summaries, nil
}

func (s *formService) UpdateForm(userID, idOrSlug string, req dto.SaveFormRequest) (*dto.FormResponse, error) {
	form, err := s.forms.FindByIDOrSlug(idOrSlug)
	if err != nil {
		return nil, err
	}
	if form.UserID != userID {
		return nil, ErrOwnership
	}
	if err := applyRequest(form, req); err != nil {
		return nil, err
	}
	if err := s.forms.Update(form); err != nil {
		return nil, err
	}
	return formToDTO(form)
}

func (s *formService) DeleteForm(userID, idOrSlug string) error {
	form, err := s.forms.FindByIDOrSlug(idOrSlug)
	if err != nil {
		return err
	}
	if form.UserID != userID {
		return ErrOwnership
	}
	return s.forms.DeleteWithResponses(form.ID)
}

func (s *formService) CheckSlug(slug string) (*dto.CheckSlugResponse, error) {
	normalized := normalizeSlug(&slug)
	if normalized == nil {
		return &dto.CheckSlugResponse{Slug: "", Available: false}, nil
	}
	taken, err := s.forms.SlugTaken(*normalized, "")
	if err != nil {
		return nil, err
	}
	return &dto.CheckSlugResponse{Slug: *normalized, Available: !taken}, nil
}
