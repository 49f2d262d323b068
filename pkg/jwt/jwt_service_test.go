package jwt

import (
	"testing"
	"time"

	"benigna-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndReadToken(t *testing.T) {
	svc := NewJWTServiceWithSecret("secret")

	token, err := svc.GenerateTokenUser("user-1", domain.RoleDonor)
	require.NoError(t, err)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, domain.RoleDonor, role)
}

func TestGetUserIDByToken_Expired(t *testing.T) {
	svc := NewJWTServiceWithSecret("secret").(*jwtService)
	svc.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }

	token, err := svc.GenerateTokenUser("user-1", domain.RoleDonor)
	require.NoError(t, err)

	_, _, err = svc.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestGetUserIDByToken_WrongSecret(t *testing.T) {
	token, err := NewJWTServiceWithSecret("one").GenerateTokenUser("user-1", domain.RoleAdmin)
	require.NoError(t, err)

	_, _, err = NewJWTServiceWithSecret("two").GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, _, err = NewJWTServiceWithSecret("two").GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
