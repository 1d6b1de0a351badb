package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanPriceDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cents int
		want  string
	}{
		{cents: 0, want: "0,00"},
		{cents: 2990, want: "29,90"},
		{cents: 905, want: "9,05"},
		{cents: 100, want: "1,00"},
	}

	for _, tt := range tests {
		p := Plan{PriceCents: tt.cents}
		assert.Equal(t, tt.want, p.PriceDisplay(), "PriceCents=%d", tt.cents)
	}

	assert.True(t, (&Plan{}).IsFree())
	assert.False(t, (&Plan{PriceCents: 2990}).IsFree())
}

func TestPlanFeatures(t *testing.T) {
	t.Parallel()

	p := &Plan{}
	assert.Nil(t, p.Features())

	require.NoError(t, p.SetFeatures([]string{"Links ilimitados", "Suporte prioritário"}))
	assert.Equal(t, []string{"Links ilimitados", "Suporte prioritário"}, p.Features())

	p.FeaturesJSON = "not json"
	assert.Nil(t, p.Features())
}
