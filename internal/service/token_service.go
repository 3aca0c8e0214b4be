package service

import (
	"errors"
	"time"

	"github.com/arphatra/arphatra/config"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
	TokenKindReset   = "reset"
)

const resetTokenTTL = 30 * time.Minute

// Claims is the JWT payload for every token kind this service issues.
type Claims struct {
	UserID string `json:"uid"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

type TokenService interface {
	GenerateAccessToken(userID string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	GenerateResetToken(userID string) (string, error)
	// Parse verifies signature, expiry and kind in one step.
	Parse(token, kind string) (*Claims, error)
}

type tokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(cfg *config.Config) TokenService {
	return &tokenService{
		secret:     []byte(cfg.JWT.Secret),
		accessTTL:  time.Duration(cfg.JWT.AccessTTLMin) * time.Minute,
		refreshTTL: time.Duration(cfg.JWT.RefreshTTLHours) * time.Hour,
	}
}

func (s *tokenService) sign(userID, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "arphatra",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) GenerateAccessToken(userID string) (string, error) {
	return s.sign(userID, TokenKindAccess, s.accessTTL)
}

func (s *tokenService) GenerateRefreshToken(userID string) (string, error) {
	return s.sign(userID, TokenKindRefresh, s.refreshTTL)
}

func (s *tokenService) GenerateResetToken(userID string) (string, error) {
	return s.sign(userID, TokenKindReset, resetTokenTTL)
}

func (s *tokenService) Parse(token, kind string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid || claims.Kind != kind || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}
