package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetGravatarURL(t *testing.T) {
	t.Parallel()

	// md5("user@example.com") = b58996c504c5638798eb6b511e6f49af
	want := "https://www.gravatar.com/avatar/b58996c504c5638798eb6b511e6f49af?s=128&d=mp"
	assert.Equal(t, want, GetGravatarURL("user@example.com", 128))

	// Email is normalized before hashing
	assert.Equal(t, want, GetGravatarURL("  User@Example.COM ", 128))

	// Non-positive sizes fall back to the default
	assert.Contains(t, GetGravatarURL("user@example.com", 0), "?s=200&")
}
