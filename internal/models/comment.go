package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user's comment on a published event
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:2000;not null" json:"text"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedOn time.Time `gorm:"not null" json:"created_on"`
}

// TableName specifies the table name for Comment model
func (Comment) TableName() string {
	return "comments"
}

// NewCommentRequest represents the payload for creating or editing a comment
type NewCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}
