package models

import (
	"time"
)

// Profile maps an account to its anon number, the only public handle.
type Profile struct {
	AnonNumber uint      `gorm:"primaryKey;autoIncrement" json:"anon_number"`
	UserID     string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// AdminUser is one row of the admin allow-list.
type AdminUser struct {
	UserID    string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
