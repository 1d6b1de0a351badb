package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Plan is a pricing catalog row rendered on the pricing and upgrade
// pages. Entitlement checks never read this table, they go through the
// entitlements package; this is display data only.
type Plan struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(50);uniqueIndex" json:"name"`
	PriceCents   int       `gorm:"default:0" json:"price_cents"`
	Description  string    `gorm:"type:varchar(255);default:''" json:"description"`
	FeaturesJSON string    `gorm:"type:text;default:''" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// PriceDisplay formats the price in reais, e.g. "29,90".
func (p *Plan) PriceDisplay() string {
	return fmt.Sprintf("%d,%02d", p.PriceCents/100, p.PriceCents%100)
}

// IsFree reports whether the plan costs nothing.
func (p *Plan) IsFree() bool {
	return p.PriceCents == 0
}

// Features decodes the feature bullet list.
func (p *Plan) Features() []string {
	if p.FeaturesJSON == "" {
		return nil
	}
	var features []string
	if err := json.Unmarshal([]byte(p.FeaturesJSON), &features); err != nil {
		return nil
	}
	return features
}

// SetFeatures encodes the feature bullet list.
func (p *Plan) SetFeatures(features []string) error {
	raw, err := json.Marshal(features)
	if err != nil {
		return err
	}
	p.FeaturesJSON = string(raw)
	return nil
}
