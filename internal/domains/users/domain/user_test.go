package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_HashesPassword(t *testing.T) {
	user, err := NewUser("Alice", "Alice@Example.COM", "secret1")

	require.NoError(t, err)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotEmpty(t, user.PasswordHash)
	require.NotEqual(t, "secret1", user.PasswordHash)
	require.False(t, user.IsAdmin)
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("  ", "alice@example.com", "secret1")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewUser("Alice", "not-an-email", "secret1")
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewUser("Alice", "alice@example.com", "")
	require.ErrorIs(t, err, ErrEmptyPassword)

	_, err = NewUser("Alice", "alice@example.com", "short")
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestCheckPassword(t *testing.T) {
	user, err := NewUser("Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	require.True(t, user.CheckPassword("secret1"))
	require.False(t, user.CheckPassword("wrong"))
	require.False(t, user.CheckPassword(""))
}
