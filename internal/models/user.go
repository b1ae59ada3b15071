// Package models defines the database entities and API projections.
package models

import "time"

// User represents a registered account.
//
// Accounts are never hard-deleted. Deactivation rewrites the row with
// placeholder identity values and flips IsActive off, so historical posts
// and comments keep a valid (if anonymized) foreign key target.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsSubscribed bool      `gorm:"default:false" json:"is_subscribed"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`

	Posts    []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
	Comments []Comment `gorm:"foreignKey:UserID" json:"comments,omitempty"`
}
