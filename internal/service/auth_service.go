package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/dto"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
	appErrors "github.com/brunoadrover/AsignacionDeEquipos/pkg/errors"
)

type configurationStore interface {
	Get(ctx context.Context, key string) (*models.Configuration, error)
	Upsert(ctx context.Context, cfg *models.Configuration) error
}

// AuthConfig defines configuration for the shared-password session flow.
type AuthConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
	// BootstrapPassword seeds the shared password row when none exists yet.
	BootstrapPassword string
}

// AuthService guards the application behind a single shared password stored
// as a bcrypt hash in the configurations table.
type AuthService struct {
	configs   configurationStore
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(configs configurationStore, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{configs: configs, validator: validate, logger: logger, config: config}
}

// Login validates the shared password and issues a session token.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	hash, err := s.passwordHash(ctx)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid password")
	}

	now := time.Now().UTC()
	claims := models.JWTClaims{
		Actor: "shared",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenExpiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.TokenExpiry.Seconds()),
		IssuedAt:    now,
	}, nil
}

// ChangePassword replaces the shared password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid change-password payload")
	}

	hash, err := s.passwordHash(ctx)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.CurrentPassword)); err != nil {
		return appErrors.Clone(appErrors.ErrInvalidCredentials, "current password does not match")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	if err := s.configs.Upsert(ctx, &models.Configuration{
		Key:   models.ConfigKeyAppPassword,
		Value: string(newHash),
		Type:  models.ConfigurationTypeSecret,
	}); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store password")
	}
	s.logger.Info("shared password rotated")
	return nil
}

// ValidateToken parses and verifies a session token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

// passwordHash loads the stored shared-password hash, seeding it from the
// bootstrap value on first use.
func (s *AuthService) passwordHash(ctx context.Context) (string, error) {
	cfg, err := s.configs.Get(ctx, models.ConfigKeyAppPassword)
	if err == nil {
		return cfg.Value, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load password")
	}
	if s.config.BootstrapPassword == "" {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "shared password not configured")
	}

	seeded, err := bcrypt.GenerateFromPassword([]byte(s.config.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash bootstrap password")
	}
	if err := s.configs.Upsert(ctx, &models.Configuration{
		Key:   models.ConfigKeyAppPassword,
		Value: string(seeded),
		Type:  models.ConfigurationTypeSecret,
	}); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed password")
	}
	s.logger.Info("shared password seeded from bootstrap value")
	return string(seeded), nil
}
