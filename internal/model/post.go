package model

import "time"

// Post is a dog post. Exactly one of the two authorization anchors is
// populated, depending on the configured mutation guard: UserID in owner
// mode, PasswordHash in password mode.
type Post struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       *uint     `json:"userId,omitempty" gorm:"column:user_id;index"`
	User         *User     `json:"-" gorm:"foreignKey:UserID"`
	PasswordHash string    `json:"-" gorm:"size:255"` // Never expose in JSON
	Title        string    `json:"title" gorm:"size:20;not null"`
	Content      string    `json:"content" gorm:"size:100;not null"`
	AgeID        uint      `json:"ageId" gorm:"column:age_id;not null;index"`
	Age          *Age      `json:"-" gorm:"foreignKey:AgeID"`
	ImageURL     string    `json:"imageUrl" gorm:"column:image_url;not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
