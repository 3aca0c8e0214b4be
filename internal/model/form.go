package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	FormStatusActive      = "active"
	FormStatusDeactivated = "deactivated"
)

// Form is the authored document. Questions and Theme are stored verbatim as
// JSON; their shape is owned by the builder package. Slug is nullable so
// forms without one never collide on the unique index. Deletes are hard and
// cascade over responses, so there is no gorm soft-delete column here.
type Form struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string         `json:"name"`
	Title         string         `json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Slug          *string        `gorm:"uniqueIndex" json:"slug,omitempty"`
	Theme         datatypes.JSON `gorm:"type:jsonb" json:"theme"`
	BannerImage   string         `json:"banner_image,omitempty"`
	Thumbnail     string         `json:"thumbnail,omitempty"`
	Questions     datatypes.JSON `gorm:"type:jsonb" json:"questions"`
	Status        string         `gorm:"default:'active'" json:"status"`
	ResponseCount int            `gorm:"default:0" json:"response_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// BeforeCreate assigns the immutable id.
func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
