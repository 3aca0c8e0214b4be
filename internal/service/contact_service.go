package service

import (
	"github.com/arphatra/arphatra/internal/dto"
	"github.com/arphatra/arphatra/internal/model"
	"github.com/arphatra/arphatra/internal/repository"
	"github.com/rs/zerolog/log"
)

type ContactService interface {
	Submit(req dto.ContactRequest) error
}

type contactService struct {
	contacts repository.ContactRepository
	mail     MailService
}

func NewContactService(contacts repository.ContactRepository, mail MailService) ContactService {
	return &contactService{contacts: contacts, mail: mail}
}

// Submit stores the message first; the operator notification mail is best
// effort.
func (s *contactService) Submit(req dto.ContactRequest) error {
	msg := model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := s.contacts.Create(&msg); err != nil {
		return err
	}
	if err := s.mail.SendContactNotification(msg); err != nil {
		log.Warn().Err(err).Msg("Contact notification mail failed")
	}
	return nil
}
