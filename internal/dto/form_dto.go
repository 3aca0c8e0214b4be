package dto

import (
	"time"

	"github.com/arphatra/arphatra/internal/builder"
)

// SaveFormRequest is the body of both create and update; the builder
// session serializes exactly these fields on every autosave tick.
type SaveFormRequest struct {
	Name        string             `json:"name"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Slug        *string            `json:"slug,omitempty"`
	Theme       builder.Theme      `json:"theme"`
	BannerImage string             `json:"banner_image,omitempty"`
	Thumbnail   string             `json:"thumbnail,omitempty"`
	Questions   []builder.Question `json:"questions"`
	Status      string             `json:"status,omitempty" binding:"omitempty,oneof=active deactivated"`
}

type FormResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	Name          string             `json:"name"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Slug          *string            `json:"slug,omitempty"`
	Theme         builder.Theme      `json:"theme"`
	BannerImage   string             `json:"banner_image,omitempty"`
	Thumbnail     string             `json:"thumbnail,omitempty"`
	Questions     []builder.Question `json:"questions"`
	Status        string             `json:"status"`
	ResponseCount int                `json:"response_count"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// FormSummary is the dashboard list row; questions are left out on purpose.
type FormSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Title         string    `json:"title"`
	Slug          *string   `json:"slug,omitempty"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	Status        string    `json:"status"`
	ResponseCount int       `json:"response_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PublicFormResponse is what the public renderer fetches: no owner or
// counter fields.
type PublicFormResponse struct {
	ID          string             `json:"id"`
	Slug        *string            `json:"slug,omitempty"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Theme       builder.Theme      `json:"theme"`
	BannerImage string             `json:"banner_image,omitempty"`
	Questions   []builder.Question `json:"questions"`
	Status      string             `json:"status"`
}

type SubmitResponseRequest struct {
	Answers map[string]any `json:"answers" binding:"required"`
}

type ResponseItem struct {
	ID          string         `json:"id"`
	FormID      string         `json:"form_id"`
	Answers     map[string]any `json:"answers"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

type CheckSlugResponse struct {
	Slug      string `json:"slug"`
	Available bool   `json:"available"`
}
