package apiv1

import "time"

// Pong is the health check response
type Pong struct {
	Ping string `json:"ping"`
}

// UserProfile is the account representation returned to API callers
type UserProfile struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

// LinkResource is the public representation of a link
type LinkResource struct {
	UUID          string     `json:"uuid"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Whatsapp      string     `json:"whatsapp"`
	Message       string     `json:"message"`
	IsActive      bool       `json:"is_active"`
	State         string     `json:"state"`
	BgColor       string     `json:"bg_color"`
	BtnColor      string     `json:"btn_color"`
	ScheduleStart *time.Time `json:"schedule_start,omitempty"`
	ScheduleEnd   *time.Time `json:"schedule_end,omitempty"`
	Redirect      string     `json:"redirect,omitempty"`
	PageURL       string     `json:"page_url"`
	WhatsappURL   string     `json:"whatsapp_url"`
	ClickCount    int64      `json:"click_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateLinkRequest is the payload for POST /api/v1/links
type CreateLinkRequest struct {
	Name          string `json:"name"`
	Slug          string `json:"slug,omitempty"`
	Whatsapp      string `json:"whatsapp"`
	Message       string `json:"message"`
	BgColor       string `json:"bg_color,omitempty"`
	BtnColor      string `json:"btn_color,omitempty"`
	ScheduleStart string `json:"schedule_start,omitempty"`
	ScheduleEnd   string `json:"schedule_end,omitempty"`
	Redirect      string `json:"redirect,omitempty"`
}

// UpdateLinkRequest is the payload for PATCH /api/v1/links/{uuid}.
// Nil fields are left unchanged.
type UpdateLinkRequest struct {
	Name          *string `json:"name,omitempty"`
	Whatsapp      *string `json:"whatsapp,omitempty"`
	Message       *string `json:"message,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
	BgColor       *string `json:"bg_color,omitempty"`
	BtnColor      *string `json:"btn_color,omitempty"`
	ScheduleStart *string `json:"schedule_start,omitempty"`
	ScheduleEnd   *string `json:"schedule_end,omitempty"`
	Redirect      *string `json:"redirect,omitempty"`
}

// ValidationError carries per-field error codes for a rejected payload
type ValidationError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DailyClicksEntry is one day of the stats series
type DailyClicksEntry struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// LinkStats is the response for GET /api/v1/links/{uuid}/stats
type LinkStats struct {
	UUID        string             `json:"uuid"`
	TotalClicks int64              `json:"total_clicks"`
	Daily       []DailyClicksEntry `json:"daily"`
}
