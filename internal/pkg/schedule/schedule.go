package schedule

import "time"

// State describes the effective activity of a link at a point in time.
type State string

const (
	StateInactive         State = "inactive"
	StateActive           State = "active"
	StateScheduledPending State = "scheduled-pending"
	StateScheduledActive  State = "scheduled-active"
	StateScheduledExpired State = "scheduled-expired"
)

// Resolve computes the effective activity state of a link. Without a
// schedule the manual flag decides. Once both window bounds are present
// the schedule always overrides the manual flag. A half-set or inverted
// window counts as no schedule at all.
func Resolve(now time.Time, start, end *time.Time, isActive bool) State {
	if !hasWindow(start, end) {
		if isActive {
			return StateActive
		}
		return StateInactive
	}

	switch {
	case now.Before(*start):
		return StateScheduledPending
	case now.After(*end):
		return StateScheduledExpired
	default:
		return StateScheduledActive
	}
}

// IsReachable reports whether a visitor hitting the public page right
// now should see the link.
func IsReachable(now time.Time, start, end *time.Time, isActive bool) bool {
	switch Resolve(now, start, end, isActive) {
	case StateActive, StateScheduledActive:
		return true
	default:
		return false
	}
}

// ParseWindow converts raw timestamp strings into a schedule window.
// Malformed input is treated as "no schedule", never an error.
func ParseWindow(startRaw, endRaw string) (*time.Time, *time.Time) {
	start := parseTimestamp(startRaw)
	end := parseTimestamp(endRaw)
	if start == nil || end == nil {
		return nil, nil
	}
	return start, end
}

func hasWindow(start, end *time.Time) bool {
	return start != nil && end != nil && !end.Before(*start)
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04", // datetime-local inputs
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	return nil
}
