package models

import (
	"time"
)

// User represents a registered user
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:250;not null" json:"name"`
	Email     string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// NewUserRequest represents the payload for creating a user
type NewUserRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=250"`
	Email string `json:"email" binding:"required,email,min=6,max=254"`
}
