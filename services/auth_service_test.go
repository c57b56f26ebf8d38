package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(newTestDB(t), "test-secret", time.Hour)
}

func TestRegisterUser_HashesAndFoldsEmail(t *testing.T) {
	svc := newTestAuthService(t)

	user, err := svc.RegisterUser("Alice@Example.COM", "Alice", "password123")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	assert.False(t, user.IsAdmin)
	assert.True(t, user.IsVisible)
}

func TestRegisterUser_DuplicateEmailCaseInsensitive(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.RegisterUser("alice@example.com", "Alice", "password123")
	require.NoError(t, err)

	_, err = svc.RegisterUser("ALICE@example.com", "Other", "different456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginUser_IssuesVerifiableToken(t *testing.T) {
	svc := newTestAuthService(t)

	registered, err := svc.RegisterUser("alice@example.com", "Alice", "password123")
	require.NoError(t, err)

	signed, user, err := svc.LoginUser("Alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.EqualValues(t, registered.ID, claims["user_id"])
}

func TestLoginUser_WrongCredentials(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.RegisterUser("alice@example.com", "Alice", "password123")
	require.NoError(t, err)

	_, _, err = svc.LoginUser("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_UpdatesLastLogin(t *testing.T) {
	svc := newTestAuthService(t)

	registered, err := svc.RegisterUser("alice@example.com", "Alice", "password123")
	require.NoError(t, err)
	firstSeen := registered.LastLogin

	time.Sleep(10 * time.Millisecond)
	_, user, err := svc.LoginUser("alice@example.com", "password123")
	require.NoError(t, err)
	assert.True(t, user.LastLogin.After(firstSeen))
}
