package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/unifix/complaint-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)

	token, expiresAt, err := tm.GenerateToken(42, "Tech1", domain.RoleTechnician)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	session, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), session.UserID)
	assert.Equal(t, "Tech1", session.Name)
	assert.Equal(t, domain.RoleTechnician, session.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 30).GenerateToken(1, "Asha", domain.RoleStudent)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 30).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)
	_, err := tm.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)

	assert.NoError(t, ComparePassword(hash, "secret"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
