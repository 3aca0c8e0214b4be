package service

import (
	"fmt"

	"github.com/arphatra/arphatra/config"
	"github.com/arphatra/arphatra/internal/i18n"
	"github.com/arphatra/arphatra/internal/model"
	gomail "gopkg.in/gomail.v2"
)

// MailService sends the product's outbound mail. Callers on the submission
// path swallow errors; auth flows log them.
type MailService interface {
	SendResponseNotification(to, formTitle string) error
	SendPasswordReset(to, token string) error
	SendContactNotification(msg model.ContactMessage) error
}

type mailService struct {
	dialer   *gomail.Dialer
	from     string
	operator string
	locale   string
}

func NewMailService(cfg *config.Config) MailService {
	return &mailService{
		dialer:   gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password),
		from:     cfg.SMTP.From,
		operator: cfg.SMTP.Operator,
		locale:   cfg.Locale,
	}
}

func (s *mailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

func (s *mailService) SendResponseNotification(to, formTitle string) error {
	return s.send(to,
		i18n.T(s.locale, "mail.response.subject"),
		fmt.Sprintf(i18n.T(s.locale, "mail.response.body"), formTitle),
	)
}

func (s *mailService) SendPasswordReset(to, token string) error {
	return s.send(to,
		i18n.T(s.locale, "mail.reset.subject"),
		fmt.Sprintf(i18n.T(s.locale, "mail.reset.body"), token),
	)
}

func (s *mailService) SendContactNotification(msg model.ContactMessage) error {
	body := fmt.Sprintf("From: %s <%s>\nSubject: %s\n\n%s", msg.Name, msg.Email, msg.Subject, msg.Body)
	return s.send(s.operator, i18n.T(s.locale, "mail.contact.subject"), body)
}
