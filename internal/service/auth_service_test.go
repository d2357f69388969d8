package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/dto"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
	appErrors "github.com/brunoadrover/AsignacionDeEquipos/pkg/errors"
)

type configurationRepoStub struct {
	items map[string]models.Configuration
	err   error
}

func (s *configurationRepoStub) Get(ctx context.Context, key string) (*models.Configuration, error) {
	if s.err != nil {
		return nil, s.err
	}
	if cfg, ok := s.items[key]; ok {
		return &cfg, nil
	}
	return nil, sql.ErrNoRows
}

func (s *configurationRepoStub) Upsert(ctx context.Context, cfg *models.Configuration) error {
	if s.err != nil {
		return s.err
	}
	if s.items == nil {
		s.items = make(map[string]models.Configuration)
	}
	s.items[cfg.Key] = *cfg
	return nil
}

func newTestAuthService(configs *configurationRepoStub) *AuthService {
	return NewAuthService(configs, nil, nil, AuthConfig{
		TokenSecret:       "test-secret",
		TokenExpiry:       time.Hour,
		BootstrapPassword: "asignacion2026",
	})
}

func seededConfigStub(t *testing.T, password string) *configurationRepoStub {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &configurationRepoStub{items: map[string]models.Configuration{
		models.ConfigKeyAppPassword: {
			Key:   models.ConfigKeyAppPassword,
			Value: string(hash),
			Type:  models.ConfigurationTypeSecret,
		},
	}}
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newTestAuthService(seededConfigStub(t, "secreto"))

	result, err := svc.Login(context.Background(), dto.LoginRequest{Password: "secreto"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, int64(3600), result.ExpiresIn)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "shared", claims.Actor)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestAuthService(seededConfigStub(t, "secreto"))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Password: "otra"})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestLoginSeedsBootstrapPassword(t *testing.T) {
	configs := &configurationRepoStub{}
	svc := newTestAuthService(configs)

	result, err := svc.Login(context.Background(), dto.LoginRequest{Password: "asignacion2026"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	stored, ok := configs.items[models.ConfigKeyAppPassword]
	require.True(t, ok)
	assert.Equal(t, models.ConfigurationTypeSecret, stored.Type)
}

func TestChangePasswordRotatesHash(t *testing.T) {
	configs := seededConfigStub(t, "secreto")
	svc := newTestAuthService(configs)

	err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
		CurrentPassword: "secreto",
		NewPassword:     "nuevo-secreto",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Password: "secreto"})
	assert.Error(t, err)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Password: "nuevo-secreto"})
	assert.NoError(t, err)
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	svc := newTestAuthService(seededConfigStub(t, "secreto"))

	err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
		CurrentPassword: "equivocada",
		NewPassword:     "nuevo-secreto",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(seededConfigStub(t, "secreto"))

	_, err := svc.ValidateToken("not-a-token")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
