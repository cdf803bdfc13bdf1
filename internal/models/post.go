package models

import (
	"time"
)

const (
	ChoiceLeft  = 0
	ChoiceRight = 1
)

const (
	DefaultLeftLabel  = "Agree"
	DefaultRightLabel = "Disagree"
)

// PostLifetime is advisory: nothing deletes or hides a post once it passes ExpiresAt.
const PostLifetime = 24 * time.Hour

type Post struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID    string    `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	Prompt     string    `gorm:"type:text;not null" json:"prompt"`
	LeftLabel  string    `gorm:"size:60;not null" json:"left_label"`
	RightLabel string    `gorm:"size:60;not null" json:"right_label"`
	MediaType  *string   `gorm:"size:10" json:"media_type"` // "image" or "video"
	MediaPath  *string   `json:"media_path"`
}

func (p *Post) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// SideLabel returns the label of the given choice.
func (p *Post) SideLabel(side int) string {
	if side == ChoiceRight {
		return p.RightLabel
	}
	return p.LeftLabel
}

func ValidChoice(choice int) bool {
	return choice == ChoiceLeft || choice == ChoiceRight
}
