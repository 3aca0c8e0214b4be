package repository

import (
	"github.com/arphatra/arphatra/internal/model"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(message *model.ContactMessage) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(message *model.ContactMessage) error {
	return r.db.Create(message).Error
}
