package models

import (
	"time"
)

type Placement string

const (
	PlacementLeft  Placement = "left"
	PlacementRight Placement = "right"
	PlacementFeed  Placement = "feed"
)

func (p Placement) Valid() bool {
	switch p {
	case PlacementLeft, PlacementRight, PlacementFeed:
		return true
	}
	return false
}

const (
	MinTier = 1
	MaxTier = 40
)

// DefaultAdRun is the window the admin form proposes for a new ad.
const DefaultAdRun = 360 * time.Hour

type Ad struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	CreatedBy string    `gorm:"type:uuid;not null" json:"created_by"`
	Placement Placement `gorm:"size:10;not null;index:idx_ads_slot" json:"placement"`
	Tier      int       `gorm:"not null;default:1;index:idx_ads_slot" json:"tier"`
	StartsAt  time.Time `gorm:"not null" json:"starts_at"`
	EndsAt    time.Time `gorm:"not null" json:"ends_at"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	CTALabel  string    `gorm:"size:40" json:"cta_label"`
	TargetURL *string   `json:"target_url"`
	MediaType *string   `gorm:"size:10" json:"media_type"`
	MediaPath *string   `json:"media_path"`
}

// InWindow reports whether now falls inside [StartsAt, EndsAt], both ends inclusive.
func (a *Ad) InWindow(now time.Time) bool {
	return !now.Before(a.StartsAt) && !now.After(a.EndsAt)
}

func (a *Ad) CTA() string {
	if a.CTALabel != "" {
		return a.CTALabel
	}
	return "Learn more"
}
