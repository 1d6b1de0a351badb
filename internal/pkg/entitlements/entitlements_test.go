package entitlements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Plan
	}{
		{in: "free", want: PlanFree},
		{in: "pro", want: PlanPro},
		{in: "PRO", want: PlanPro},
		{in: " pro ", want: PlanPro},
		{in: "premium", want: PlanFree},
		{in: "", want: PlanFree},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePlan(tt.in), "NormalizePlan(%q)", tt.in)
	}
}

func TestPlanRank(t *testing.T) {
	t.Parallel()

	if PlanRank(PlanFree) >= PlanRank(PlanPro) {
		t.Fatalf("expected pro to outrank free")
	}
}

func TestGatedFields(t *testing.T) {
	t.Parallel()

	assert.ElementsMatch(t,
		[]string{"bgColor", "btnColor", "scheduleStart", "scheduleEnd", "redirect"},
		GatedFields(PlanFree))
	assert.Empty(t, GatedFields(PlanPro))

	assert.True(t, IsGated(PlanFree, "redirect"))
	assert.False(t, IsGated(PlanPro, "redirect"))
	assert.False(t, IsGated(PlanFree, "message"))
}

func TestApplyPlanDefaultsCoercesFreePlan(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	submitted := LinkExtras{
		BgColor:       "#000000",
		BtnColor:      "#ff0000",
		ScheduleStart: &start,
		ScheduleEnd:   &end,
		Redirect:      "https://example.com/thanks",
	}

	got := ApplyPlanDefaults(PlanFree, submitted)

	assert.Equal(t, DefaultBgColor, got.BgColor)
	assert.Equal(t, DefaultBtnColor, got.BtnColor)
	assert.Nil(t, got.ScheduleStart)
	assert.Nil(t, got.ScheduleEnd)
	assert.Empty(t, got.Redirect)
}

func TestMaxLinks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, MaxLinks(PlanFree))
	assert.Equal(t, 0, MaxLinks(PlanPro), "pro has no link limit")
	assert.Equal(t, 1, MaxLinks(Plan("unknown")))
}

func TestApplyPlanDefaultsKeepsProValues(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	submitted := LinkExtras{
		BgColor:       "#101010",
		BtnColor:      "#202020",
		ScheduleStart: &start,
		Redirect:      "https://example.com",
	}

	got := ApplyPlanDefaults(PlanPro, submitted)
	assert.Equal(t, submitted, got)

	// Empty colors still fall back to defaults for pro users.
	got = ApplyPlanDefaults(PlanPro, LinkExtras{})
	assert.Equal(t, DefaultBgColor, got.BgColor)
	assert.Equal(t, DefaultBtnColor, got.BtnColor)
}
