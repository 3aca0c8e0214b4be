package service

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/arphatra/arphatra/internal/builder"
	"github.com/arphatra/arphatra/internal/dto"
	"github.com/arphatra/arphatra/internal/model"
	"github.com/arphatra/arphatra/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// ErrMissingAnswers carries the ids of required questions the submission
// left unanswered.
type ErrMissingAnswers struct {
	QuestionIDs []int
}

func (e *ErrMissingAnswers) Error() string {
	return fmt.Sprintf("required questions unanswered: %v", e.QuestionIDs)
}

type ResponseService interface {
	// Submit stores a public response against the canonical form id,
	// bumps the denormalized counter, and fires the notification mail
	// (failures swallowed).
	Submit(idOrSlug string, answers map[string]any) (*dto.ResponseItem, error)
	ListResponses(userID, idOrSlug string) ([]dto.ResponseItem, error)
}

type responseService struct {
	forms     repository.FormRepository
	responses repository.ResponseRepository
	users     repository.UserRepository
	mail      MailService
}

func NewResponseService(
	forms repository.FormRepository,
	responses repository.ResponseRepository,
	users repository.UserRepository,
	mail MailService,
) ResponseService {
	return &responseService{forms: forms, responses: responses, users: users, mail: mail}
}

// answerSet converts JSON answer keys (strings) to question ids.
func answerSet(answers map[string]any) builder.AnswerSet {
	set := make(builder.AnswerSet, len(answers))
	for key, value := range answers {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		set[id] = value
	}
	return set
}

func (s *responseService) Submit(idOrSlug string, answers map[string]any) (*dto.ResponseItem, error) {
	form, err := s.forms.FindByIDOrSlug(idOrSlug)
	if err != nil {
		return nil, err
	}
	if form.Status != model.FormStatusActive {
		return nil, ErrFormInactive
	}

	// The renderer validates before it ever reaches the network; this is
	// the server-side backstop for hand-rolled submissions.
	var questions []builder.Question
	if len(form.Questions) > 0 {
		if err := json.Unmarshal(form.Questions, &questions); err != nil {
			return nil, fmt.Errorf("decode stored questions: %w", err)
		}
	}
	if missing := builder.ValidateAll(questions, answerSet(answers)); len(missing) > 0 {
		return nil, &ErrMissingAnswers{QuestionIDs: missing}
	}

	response := model.Response{FormID: form.ID, Answers: answers}
	if err := s.responses.Create(&response); err != nil {
		log.Error().Err(err).Str("form_id", form.ID).Msg("Failed to store response")
		return nil, err
	}
	if err := s.forms.IncrementResponseCount(form.ID); err != nil {
		log.Error().Err(err).Str("form_id", form.ID).Msg("Failed to bump response count")
	}

	s.notifyOwner(form)

	var item dto.ResponseItem
	copier.Copy(&item, &response)
	item.Answers = response.Answers
	return &item, nil
}

// notifyOwner sends the "new response" mail when the owner has it enabled.
// Any failure here is logged and never surfaces to the respondent.
func (s *responseService) notifyOwner(form *model.Form) {
	owner, err := s.users.FindByID(form.UserID)
	if err != nil {
		log.Warn().Err(err).Str("form_id", form.ID).Msg("Owner lookup failed for response notification")
		return
	}

	var settings dto.UserSettings
	settings.Notifications.ResponseEmail = true
	if len(owner.Settings) > 0 {
		if err := json.Unmarshal(owner.Settings, &settings); err != nil {
			log.Warn().Err(err).Str("user_id", owner.ID).Msg("Unreadable user settings, defaulting notification on")
		}
	}
	if !settings.Notifications.ResponseEmail {
		return
	}

	if err := s.mail.SendResponseNotification(owner.Email, form.Title); err != nil {
		log.Warn().Err(err).Str("form_id", form.ID).Msg("Response notification mail failed")
	}
}

func (s *responseService) ListResponses(userID, idOrSlug string) ([]dto.ResponseItem, error) {
	form, err := s.forms.FindByIDOrSlug(idOrSlug)
	if err != nil {
		return nil, err
	}
	if form.UserID != userID {
		return nil, ErrOwnership
	}

	responses, err := s.responses.FindAllByForm(form.ID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ResponseItem, 0, len(responses))
	for _, r := range responses {
		var item dto.ResponseItem
		copier.Copy(&item, &r)
		item.Answers = r.Answers
		items = append(items, item)
	}
	return items, nil
}
