package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("Mariana", "Mariana@Example.com", "secret123", "")

	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "mariana@example.com", u.Email)
	assert.Equal(t, RoleOwner, u.Role)
	assert.True(t, u.Active)
	assert.NotEqual(t, "secret123", u.Password)
}

func TestNewUser_Invalid(t *testing.T) {
	_, err := NewUser("", "a@b.com", "secret123", RoleOwner)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewUser("Mariana", "invalido", "secret123", RoleOwner)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewUser("Mariana", "a@b.com", "12345", RoleOwner)
	assert.ErrorIs(t, err, ErrShortPassword)
}

func TestUser_CheckPassword(t *testing.T) {
	u, err := NewUser("Mariana", "a@b.com", "secret123", RoleProfessional)
	require.NoError(t, err)

	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("errada"))
}

func TestUser_RegisterLogin(t *testing.T) {
	u, err := NewUser("Mariana", "a@b.com", "secret123", RoleOwner)
	require.NoError(t, err)
	require.Nil(t, u.LastLoginAt)

	u.RegisterLogin()
	assert.NotNil(t, u.LastLoginAt)
}
