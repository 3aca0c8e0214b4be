package service

import (
	"encoding/json"

	"github.com/arphatra/arphatra/internal/dto"
	"github.com/arphatra/arphatra/internal/model"
	"github.com/arphatra/arphatra/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type UserService interface {
	GetProfile(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
	GetSettings(userID string) (*dto.UserSettings, error)
	UpdateSettings(userID string, settings dto.UserSettings) (*dto.UserSettings, error)
	Deactivate(userID string) error
	// DeleteAccount cascades: owned forms and their responses go first in
	// one batched transaction, the user record after. A crash between the
	// two tiers is accepted, not compensated.
	DeleteAccount(userID string) error
}

type userService struct {
	users repository.UserRepository
	forms repository.FormRepository
}

func NewUserService(users repository.UserRepository, forms repository.FormRepository) UserService {
	return &userService{users: users, forms: forms}
}

func (s *userService) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

func (s *userService) UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

func (s *userService) GetSettings(userID string) (*dto.UserSettings, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	settings := defaultSettings()
	if len(user.Settings) > 0 {
		if err := json.Unmarshal(user.Settings, &settings); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Unreadable settings document, serving defaults")
		}
	}
	return &settings, nil
}

func (s *userService) UpdateSettings(userID string, settings dto.UserSettings) (*dto.UserSettings, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	user.Settings = raw
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *userService) Deactivate(userID string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	user.Status = model.UserStatusDeactivated
	return s.users.Update(user)
}

func (s *userService) DeleteAccount(userID string) error {
	if err := s.forms.DeleteAllByUser(userID); err != nil {
		return err
	}
	if err := s.users.Delete(userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Forms removed but user record delete failed")
		return err
	}
	return nil
}

func defaultSettings() dto.UserSettings {
	var settings dto.UserSettings
	settings.Notifications.ResponseEmail = true
	settings.Language = "en"
	return settings
}
