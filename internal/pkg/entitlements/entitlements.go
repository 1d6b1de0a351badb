package entitlements

import (
	"strings"
	"time"
)

type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// Defaults forced on every link owned by a free-plan user.
const (
	DefaultBgColor  = "#ffffff"
	DefaultBtnColor = "#25D366"
)

// LinkExtras groups the optional, plan-gated link fields. Values arrive
// here straight from the request payload and must not be trusted before
// passing through ApplyPlanDefaults.
type LinkExtras struct {
	BgColor       string
	BtnColor      string
	ScheduleStart *time.Time
	ScheduleEnd   *time.Time
	Redirect      string
}

// NormalizePlan maps arbitrary input to a known plan, defaulting to free.
func NormalizePlan(plan string) Plan {
	switch strings.ToLower(strings.TrimSpace(plan)) {
	case string(PlanPro):
		return PlanPro
	default:
		return PlanFree
	}
}

// PlanRank orders plans for upgrade/downgrade comparisons.
func PlanRank(plan Plan) int {
	if plan == PlanPro {
		return 1
	}
	return 0
}

// GatedFields returns the link field names the given plan may not edit.
// The UI consults this to decide which inputs to render, the link
// service consults it to decide which submitted values to honor.
func GatedFields(plan Plan) []string {
	if NormalizePlan(string(plan)) == PlanPro {
		return nil
	}
	return []string{"bgColor", "btnColor", "scheduleStart", "scheduleEnd", "redirect"}
}

// IsGated reports whether a single field is gated for the plan.
func IsGated(plan Plan, field string) bool {
	for _, f := range GatedFields(plan) {
		if f == field {
			return true
		}
	}
	return false
}

// MaxLinks returns how many links the plan may hold. Zero means
// unlimited.
func MaxLinks(plan Plan) int {
	if NormalizePlan(string(plan)) == PlanPro {
		return 0
	}
	return 1
}

// ApplyPlanDefaults forces gated fields back to their defaults for
// non-pro plans. A crafted payload that smuggles premium values past the
// UI is silently coerced here, never trusted. Pro plans pass through
// untouched except for empty colors, which fall back to the defaults.
func ApplyPlanDefaults(plan Plan, extras LinkExtras) LinkExtras {
	if NormalizePlan(string(plan)) == PlanPro {
		if strings.TrimSpace(extras.BgColor) == "" {
			extras.BgColor = DefaultBgColor
		}
		if strings.TrimSpace(extras.BtnColor) == "" {
			extras.BtnColor = DefaultBtnColor
		}
		return extras
	}

	return LinkExtras{
		BgColor:  DefaultBgColor,
		BtnColor: DefaultBtnColor,
	}
}
