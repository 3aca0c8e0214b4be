package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	UserStatusActive      = "active"
	UserStatusDeactivated = "deactivated"
)

// User is an account record. Email uniqueness is enforced here as well as
// by the identity provider. UID holds the external identity reference for
// accounts created via Google sign-in.
type User struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	UID          string         `gorm:"index" json:"uid,omitempty"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `json:"-"`
	FullName     string         `json:"full_name"`
	AvatarURL    string         `json:"avatar_url,omitempty"`
	Settings     datatypes.JSON `gorm:"type:jsonb" json:"settings"`
	Status       string         `gorm:"default:'active'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
