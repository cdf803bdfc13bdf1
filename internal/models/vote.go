package models

import (
	"time"
)

// Vote is keyed on (post, voter) so a second cast overwrites the first.
type Vote struct {
	PostID    string    `gorm:"primaryKey;type:uuid" json:"post_id"`
	VoterID   string    `gorm:"primaryKey;type:uuid;index" json:"voter_id"`
	Choice    int       `gorm:"not null" json:"choice"` // 0 left, 1 right
	UpdatedAt time.Time `json:"updated_at"`
}
