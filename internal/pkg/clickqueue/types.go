package clickqueue

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus represents the lifecycle state of a click event
type EventStatus string

const (
	EventStatusPending    EventStatus = "pending"
	EventStatusProcessing EventStatus = "processing"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusFailed     EventStatus = "failed"
)

// ClickEvent is one recorded visit to a public link page
type ClickEvent struct {
	ID         string      `json:"id"`
	LinkID     uint        `json:"link_id"`
	IPv4       string      `json:"ipv4,omitempty"`
	IPv6       string      `json:"ipv6,omitempty"`
	UserAgent  string      `json:"user_agent,omitempty"`
	Referer    string      `json:"referer,omitempty"`
	Country    string      `json:"country,omitempty"`
	Status     EventStatus `json:"status"`
	OccurredAt time.Time   `json:"occurred_at"`
	RetryCount int         `json:"retry_count"`
	MaxRetries int         `json:"max_retries"`
}

// NewClickEvent builds a pending event with a fresh ID
func NewClickEvent(linkID uint) *ClickEvent {
	return &ClickEvent{
		ID:         uuid.New().String(),
		LinkID:     linkID,
		Status:     EventStatusPending,
		OccurredAt: time.Now(),
		MaxRetries: DefaultMaxRetries,
	}
}

// IsRetryable reports whether the event may be re-enqueued after a failure
func (e *ClickEvent) IsRetryable() bool {
	return e.RetryCount < e.MaxRetries
}
