package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/arphatra/arphatra/internal/dto"
	"github.com/arphatra/arphatra/internal/model"
	"github.com/arphatra/arphatra/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	GoogleLogin(ctx context.Context, idToken string) (*dto.AuthResponse, error)
	Refresh(refreshToken string) (*dto.AuthResponse, error)
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error
}

type authService struct {
	users    repository.UserRepository
	tokens   TokenService
	mail     MailService
	verifier GoogleVerifier
}

func NewAuthService(users repository.UserRepository, tokens TokenService, mail MailService, verifier GoogleVerifier) AuthService {
	return &authService{users: users, tokens: tokens, mail: mail, verifier: verifier}
}

func (s *authService) issue(user *model.User, isNew bool) (*dto.AuthResponse, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	var userResp dto.UserResponse
	copier.Copy(&userResp, user)
	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         userResp,
		IsNewUser:    isNew,
	}, nil
}

func (s *authService) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.users.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Status:       model.UserStatusActive,
	}
	if err := s.users.Create(&user); err != nil {
		log.Error().Err(err).Msg("Failed to create user")
		return nil, err
	}
	return s.issue(&user, true)
}

func (s *authService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	// Logging into a deactivated account reactivates it.
	if user.Status == model.UserStatusDeactivated {
		user.Status = model.UserStatusActive
		if err := s.users.Update(user); err != nil {
			return nil, err
		}
	}
	return s.issue(user, false)
}

func (s *authService) GoogleLogin(ctx context.Context, idToken string) (*dto.AuthResponse, error) {
	profile, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		log.Warn().Err(err).Msg("Google token verification failed")
		return nil, ErrTokenInvalid
	}

	user, err := s.users.FindByEmail(profile.Email)
	if err == nil {
		if user.UID == "" {
			user.UID = profile.Sub
			if err := s.users.Update(user); err != nil {
				return nil, err
			}
		}
		return s.issue(user, false)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := model.User{
		UID:       profile.Sub,
		Email:     profile.Email,
		FullName:  profile.Name,
		AvatarURL: profile.Picture,
		Status:    model.UserStatusActive,
	}
	if err := s.users.Create(&created); err != nil {
		return nil, err
	}
	return s.issue(&created, true)
}

func (s *authService) Refresh(refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.tokens.Parse(refreshToken, TokenKindRefresh)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return s.issue(user, false)
}

// ForgotPassword always reports success so the endpoint cannot be used to
// probe which addresses are registered. Mail failures are logged only.
func (s *authService) ForgotPassword(email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := s.tokens.GenerateResetToken(user.ID)
	if err != nil {
		return err
	}
	if err := s.mail.SendPasswordReset(user.Email, token); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("Failed to send password reset mail")
	}
	return nil
}

func (s *authService) ResetPassword(token, newPassword string) error {
	claims, err := s.tokens.Parse(token, TokenKindReset)
	if err != nil {
		return err
	}
	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		return fmt.Errorf("reset token user lookup: %w", ErrTokenInvalid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.users.Update(user)
}
