package models

import (
	"time"
)

type Comment struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"post_id"`
	AuthorID  string    `gorm:"type:uuid;not null;index" json:"author_id"`
	Side      int       `gorm:"not null" json:"side"`
	ParentID  *string   `gorm:"type:uuid;index" json:"parent_id"` // nil for top-level comments
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	ReactionUp   = 1
	ReactionDown = -1
)

// CommentReaction holds one user's +1/-1 on a comment. Neutral is the absence of a row.
type CommentReaction struct {
	CommentID string    `gorm:"primaryKey;type:uuid" json:"comment_id"`
	UserID    string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	Value     int       `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidReaction(v int) bool {
	return v == ReactionUp || v == ReactionDown
}
