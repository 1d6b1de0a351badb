package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPasswordReplacesCredential(t *testing.T) {
	t.Parallel()

	user, err := CreateUser("Maria Silva", "maria@example.com", "senha-antiga")
	require.NoError(t, err)
	assert.True(t, user.CheckPassword("senha-antiga"))

	require.NoError(t, user.SetPassword("senha-nova-123"))

	assert.False(t, user.CheckPassword("senha-antiga"))
	assert.True(t, user.CheckPassword("senha-nova-123"))
	assert.NotEqual(t, "senha-nova-123", user.Password, "password must be stored hashed")
}

func TestUserValidateRejectsShortName(t *testing.T) {
	t.Parallel()

	user, err := CreateUser("Jo", "jo@example.com", "senha-segura")
	assert.Error(t, err)
	assert.Nil(t, user)
}
