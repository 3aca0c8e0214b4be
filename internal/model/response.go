package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Response is one respondent's submitted answer set. FormID always holds
// the canonical form id, resolved before insert even when the form was
// addressed by slug. Rows are immutable once created and are removed only
// by the cascade when their form goes away.
type Response struct {
	ID          string            `gorm:"type:uuid;primaryKey" json:"id"`
	FormID      string            `gorm:"type:uuid;not null;index" json:"form_id"`
	Answers     datatypes.JSONMap `gorm:"type:jsonb" json:"answers"`
	SubmittedAt time.Time         `gorm:"autoCreateTime" json:"submitted_at"`
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
