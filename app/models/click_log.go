package models

import "time"

// ClickLog records a single visit to a public link page. Rows are
// written by the click queue worker, never in the request path.
type ClickLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LinkID    uint      `gorm:"index;not null" json:"link_id"`
	IPv4      string    `gorm:"type:varchar(15);default:null" json:"-"`
	IPv6      string    `gorm:"type:varchar(45);default:null" json:"-"`
	UserAgent string    `gorm:"type:varchar(255);default:''" json:"user_agent"`
	Referer   string    `gorm:"type:varchar(255);default:''" json:"referer"`
	Country   string    `gorm:"type:varchar(2);default:''" json:"country"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
