package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssueAndRevokeAPIKey(t *testing.T) {
	us := &UserSettings{UserID: 1}

	raw, err := us.IssueAPIKey()
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, "lw_"))
	assert.True(t, us.HasActiveAPIKey())
	assert.Equal(t, HashAPIKey(raw), us.APIKeyHash)
	assert.Equal(t, raw[:16], us.APIKeyPrefix)
	assert.NotNil(t, us.APIKeyCreatedAt)

	us.RevokeAPIKey()
	assert.False(t, us.HasActiveAPIKey())
	assert.Empty(t, us.APIKeyHash)
	assert.NotNil(t, us.APIKeyRevokedAt)
}

func TestHashAPIKeyTrimsWhitespace(t *testing.T) {
	assert.Equal(t, HashAPIKey("lw_abc"), HashAPIKey("  lw_abc \n"))
}

func TestApplySettingTypedKeys(t *testing.T) {
	us := &UserSettings{}

	assert.NoError(t, us.ApplySetting("default_country", " br "))
	assert.Equal(t, "BR", us.DefaultCountry)

	assert.NoError(t, us.ApplySetting("language", "pt-BR"))
	assert.Equal(t, "pt-BR", us.Language)

	assert.NoError(t, us.ApplySetting("email_notifications", "on"))
	assert.True(t, us.EmailNotifications)

	assert.NoError(t, us.ApplySetting("email_notifications", "false"))
	assert.False(t, us.EmailNotifications)
}

func TestApplySettingUnknownKeyGoesToExtra(t *testing.T) {
	us := &UserSettings{}

	assert.NoError(t, us.ApplySetting("theme", "dark"))
	assert.NoError(t, us.ApplySetting("beta_features", "yes"))

	extra := us.Extra()
	assert.Equal(t, "dark", extra["theme"])
	assert.Equal(t, "yes", extra["beta_features"])

	// typed fields untouched
	assert.Empty(t, us.DefaultCountry)
}

func TestExtraSurvivesBrokenJSON(t *testing.T) {
	us := &UserSettings{ExtraJSON: "{broken"}
	assert.Empty(t, us.Extra())
}

func TestTouchAPIKeyUsage(t *testing.T) {
	us := &UserSettings{UserID: 1}
	assert.Nil(t, us.APIKeyLastUsedAt)

	before := time.Now()
	us.TouchAPIKeyUsage()

	assert.NotNil(t, us.APIKeyLastUsedAt)
	assert.False(t, us.APIKeyLastUsedAt.Before(before))
}
