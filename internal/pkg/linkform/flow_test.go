package linkform_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ramoneds/linkwhats/internal/pkg/entitlements"
	"github.com/ramoneds/linkwhats/internal/pkg/linkform"
	"github.com/ramoneds/linkwhats/internal/pkg/walink"
)

// Exercises the full create-link pipeline the way the controllers run
// it: validate the submission, coerce plan-gated extras, build the URL.
func TestCreateLinkFlow(t *testing.T) {
	t.Parallel()

	t.Run("valid free-plan submission", func(t *testing.T) {
		t.Parallel()

		got, errs := linkform.Validate(linkform.Input{
			Name:     "Vendas",
			Whatsapp: "+55 11 91234-5678",
			Message:  "Olá",
		})

		assert.Empty(t, errs)
		assert.Equal(t, "5511912345678", got.WhatsappDigits)
		assert.Equal(t, "https://wa.me/5511912345678?text=Ol%C3%A1",
			walink.Build(got.WhatsappDigits, got.Message))
	})

	t.Run("every field invalid reports every error", func(t *testing.T) {
		t.Parallel()

		_, errs := linkform.Validate(linkform.Input{Name: "", Whatsapp: "123", Message: ""})

		assert.Equal(t, linkform.FieldErrors{
			"name":     "required",
			"whatsapp": "invalid_phone",
			"message":  "required",
		}, errs)
	})

	t.Run("free plan overrides are coerced to defaults", func(t *testing.T) {
		t.Parallel()

		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		extras := entitlements.ApplyPlanDefaults(entitlements.PlanFree, entitlements.LinkExtras{
			BgColor:       "#000000",
			ScheduleStart: &start,
		})

		assert.Equal(t, entitlements.DefaultBgColor, extras.BgColor)
		assert.Equal(t, entitlements.DefaultBtnColor, extras.BtnColor)
		assert.Nil(t, extras.ScheduleStart)
		assert.Nil(t, extras.ScheduleEnd)
	})
}
