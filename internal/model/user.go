package model

import "time"

// User represents a registered account. The email doubles as the login ID.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserName     string    `json:"userName" gorm:"column:user_name;size:20;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
