package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ramoneds/linkwhats/internal/pkg/schedule"
)

func TestLinkWhatsAppURL(t *testing.T) {
	link := Link{Whatsapp: "+5511912345678", Message: "Olá"}

	assert.Equal(t, "https://wa.me/5511912345678?text=Ol%C3%A1", link.WhatsAppURL())
	// idempotent
	assert.Equal(t, link.WhatsAppURL(), link.WhatsAppURL())
}

func TestLinkEffectiveState(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)

	manual := Link{IsActive: true}
	assert.Equal(t, schedule.StateActive, manual.EffectiveState(start))

	manual.IsActive = false
	assert.Equal(t, schedule.StateInactive, manual.EffectiveState(start))

	scheduled := Link{IsActive: false, ScheduleStart: &start, ScheduleEnd: &end}
	assert.Equal(t, schedule.StateScheduledPending, scheduled.EffectiveState(start.Add(-time.Hour)))
	assert.Equal(t, schedule.StateScheduledActive, scheduled.EffectiveState(start.Add(time.Hour)))
	assert.Equal(t, schedule.StateScheduledExpired, scheduled.EffectiveState(end.Add(time.Hour)))

	assert.True(t, scheduled.IsReachable(start.Add(time.Hour)))
	assert.False(t, scheduled.IsReachable(end.Add(time.Hour)))
}

func TestLinkSocialRoundTrip(t *testing.T) {
	var link Link

	assert.Equal(t, SocialLinks{}, link.Social())

	err := link.SetSocial(SocialLinks{Instagram: "@vendas", Website: "https://vendas.example.com"})
	assert.NoError(t, err)

	got := link.Social()
	assert.Equal(t, "@vendas", got.Instagram)
	assert.Equal(t, "https://vendas.example.com", got.Website)

	assert.NoError(t, link.SetSocial(SocialLinks{}))
	assert.Empty(t, link.SocialJSON)
}

func TestLinkSocialIgnoresBrokenJSON(t *testing.T) {
	link := Link{SocialJSON: "{not json"}
	assert.Equal(t, SocialLinks{}, link.Social())
}
