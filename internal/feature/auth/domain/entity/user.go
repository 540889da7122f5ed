// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account.
// It contains authentication credentials and profile metadata.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the handle chosen by the user. Unique across all users.
	Username string `gorm:"uniqueIndex;size:80;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Name is the user's display name.
	Name string `gorm:"size:30;not null"`

	// Password is the bcrypt hash of the user's password.
	// This must never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// EmailVerified reports whether the user has confirmed their address.
	EmailVerified bool `gorm:"not null;default:false"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time

	// DeletedAt marks the account as deleted without removing the row.
	// Accounts are never hard-deleted.
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
