// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is a registered account. The email doubles as the login
// identifier; a user owns journal entries and refresh sessions.
type User struct {
	ID uint `gorm:"primaryKey"`

	// Email is unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password holds the bcrypt hash, never the plaintext.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name instead of relying on pluralization.
func (User) TableName() string { return "users" }
