package domain

import "time"

// User is keyed by the chat-platform identity, not an internal id.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username,omitempty" gorm:"size:255"`
	FirstName string    `json:"firstName" gorm:"size:255;not null"`
	LastName  string    `json:"lastName,omitempty" gorm:"size:255"`
	IsAdmin   bool      `json:"isAdmin" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
