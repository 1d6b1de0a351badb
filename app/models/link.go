package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ramoneds/linkwhats/internal/pkg/schedule"
	"github.com/ramoneds/linkwhats/internal/pkg/walink"
)

// Link is a single shareable WhatsApp entry point, reachable at /l/{slug}.
//
// Whatsapp is stored normalized: a leading + followed by digits only.
// Slug is unique and immutable once created. The color, schedule and
// redirect columns are plan-gated; for free users they always carry the
// defaults, enforced by the link service before persistence.
type Link struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UUID          string         `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	UserID        uint           `gorm:"index;not null" json:"user_id"`
	Name          string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,max=150"`
	Slug          string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug" validate:"required,max=100"`
	Whatsapp      string         `gorm:"type:varchar(20);not null" json:"whatsapp" validate:"required,max=20"`
	Message       string         `gorm:"type:text;not null" json:"message" validate:"required"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	BgColor       string         `gorm:"type:varchar(9);default:'#ffffff'" json:"bg_color"`
	BtnColor      string         `gorm:"type:varchar(9);default:'#25D366'" json:"btn_color"`
	ScheduleStart *time.Time     `gorm:"type:timestamp;default:null" json:"schedule_start"`
	ScheduleEnd   *time.Time     `gorm:"type:timestamp;default:null" json:"schedule_end"`
	Redirect      string         `gorm:"type:varchar(255);default:''" json:"redirect"`
	ProfileImage  string         `gorm:"type:varchar(255);default:''" json:"profile_image"`
	SocialJSON    string         `gorm:"type:text;default:''" json:"-"`
	ClickCount    int64          `gorm:"default:0" json:"click_count"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// SocialLinks is the optional set of social profiles shown on the
// public page. Known networks are named, anything else rides in Other.
type SocialLinks struct {
	Instagram string            `json:"instagram,omitempty"`
	TikTok    string            `json:"tiktok,omitempty"`
	Website   string            `json:"website,omitempty"`
	Other     map[string]string `json:"other,omitempty"`
}

func (l *Link) BeforeCreate(tx *gorm.DB) error {
	if l.UUID == "" {
		l.UUID = uuid.New().String()
	}
	return nil
}

func (l *Link) Validate() error {
	v := validator.New()

	return v.Struct(l)
}

// WhatsAppURL builds the wa.me deep link for this link's number and
// pre-filled message.
func (l *Link) WhatsAppURL() string {
	return walink.Build(l.Whatsapp, l.Message)
}

// EffectiveState resolves the schedule-gated activity state at the
// given instant.
func (l *Link) EffectiveState(now time.Time) schedule.State {
	return schedule.Resolve(now, l.ScheduleStart, l.ScheduleEnd, l.IsActive)
}

// IsReachable reports whether the public page should serve this link
// right now.
func (l *Link) IsReachable(now time.Time) bool {
	return schedule.IsReachable(now, l.ScheduleStart, l.ScheduleEnd, l.IsActive)
}

// Social returns the decoded social links, or an empty value when none
// are set or the stored JSON is unreadable.
func (l *Link) Social() SocialLinks {
	var s SocialLinks
	if strings.TrimSpace(l.SocialJSON) == "" {
		return s
	}
	if err := json.Unmarshal([]byte(l.SocialJSON), &s); err != nil {
		return SocialLinks{}
	}
	return s
}

// SetSocial encodes and stores the social links.
func (l *Link) SetSocial(s SocialLinks) error {
	if s.Instagram == "" && s.TikTok == "" && s.Website == "" && len(s.Other) == 0 {
		l.SocialJSON = ""
		return nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	l.SocialJSON = string(raw)
	return nil
}
