package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/unifix/complaint-service/internal/config"
	"github.com/unifix/complaint-service/internal/domain"
	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

func newAuthService(users *stubUserRepo) *AuthService {
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 30
	cfg.Auth.BcryptCost = bcrypt.MinCost
	return NewAuthService(cfg, users)
}

func TestRegisterCreatesStudent(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	user, token, exp, err := svc.Register(context.Background(), "Asha", "Asha@Campus.edu", "secret")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.Equal(t, "asha@campus.edu", user.Email)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	users := newStubUserRepo()
	users.seed("Asha", "asha@campus.edu", domain.RoleStudent)
	svc := newAuthService(users)

	_, _, _, err := svc.Register(context.Background(), "Asha Again", "asha@campus.edu", "secret")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.ToDomainError(err).Code)
}

func TestLoginRoundTrip(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	_, _, _, err := svc.Register(context.Background(), "Asha", "asha@campus.edu", "secret")
	require.NoError(t, err)

	user, token, _, err := svc.Login(context.Background(), "asha@campus.edu", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)

	session, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, domain.RoleStudent, session.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	_, _, _, err := svc.Register(context.Background(), "Asha", "asha@campus.edu", "secret")
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "asha@campus.edu", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.ToDomainError(err).Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, _, _, err := svc.Login(context.Background(), "nobody@campus.edu", "secret")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.ToDomainError(err).Code)
}
