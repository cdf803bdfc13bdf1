package models

import (
	"time"
)

// Account is the login identity. Nothing outside auth ever shows it; the
// public face of an account is its Profile.
type Account struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"` // bcrypt hash
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (a *Account) IsConfirmed() bool {
	return a.ConfirmedAt != nil
}
