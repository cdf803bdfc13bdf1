package models

import (
	"time"
)

const (
	ReportItemPost    = "post"
	ReportItemComment = "comment"
)

type Report struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	ReporterID string    `gorm:"type:uuid;not null;index" json:"reporter_id"`
	ItemType   string    `gorm:"size:20;not null" json:"item_type"` // "post", "comment"
	ItemID     string    `gorm:"type:uuid;not null;index" json:"item_id"`
	PostID     string    `gorm:"type:uuid;not null" json:"post_id"`
	Reason     string    `gorm:"size:200;not null" json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}
