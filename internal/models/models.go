package models

import (
	"time"
)

// Account is a registered user. Email is the lookup key everywhere; the
// password is stored as an unsalted sha256 hex digest to stay compatible
// with rows written by earlier versions of the app.
type Account struct {
	ID             uint   `gorm:"primaryKey"`
	Username       string `gorm:"not null"`
	Email          string `gorm:"unique;not null"`
	PasswordHash   string `gorm:"not null"`
	Phone          string
	ProfilePicture string
	CreatedAt      time.Time
}
