package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventState string

const (
	EventStatePending   EventState = "PENDING"
	EventStatePublished EventState = "PUBLISHED"
	EventStateCanceled  EventState = "CANCELED"
)

// State actions accepted in update payloads.
const (
	StateActionPublish      = "PUBLISH_EVENT"
	StateActionReject       = "REJECT_EVENT"
	StateActionSendToReview = "SEND_TO_REVIEW"
	StateActionCancelReview = "CANCEL_REVIEW"
)

// Location is a coordinate pair embedded into Event
type Location struct {
	Lat decimal.Decimal `gorm:"type:decimal(9,6)" json:"lat"`
	Lon decimal.Decimal `gorm:"type:decimal(9,6)" json:"lon"`
}

// Event represents a public event going through moderation
type Event struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string     `gorm:"size:120;not null" json:"title"`
	Annotation        string     `gorm:"size:2000;not null" json:"annotation"`
	Description       string     `gorm:"size:7000;not null" json:"description"`
	EventDate         time.Time  `gorm:"not null;index" json:"event_date"`
	Location          Location   `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Paid              bool       `gorm:"not null;default:false" json:"paid"`
	ParticipantLimit  int        `gorm:"not null;default:0" json:"participant_limit"`
	RequestModeration bool       `gorm:"not null;default:true" json:"request_moderation"`
	State             EventState `gorm:"size:20;not null;default:PENDING;index" json:"state"`
	CreatedOn         time.Time  `gorm:"not null" json:"created_on"`
	PublishedOn       *time.Time `json:"published_on,omitempty"`
	InitiatorID       uint       `gorm:"not null;index" json:"initiator_id"`
	Initiator         *User      `gorm:"foreignKey:InitiatorID" json:"initiator,omitempty"`
	CategoryID        uint       `gorm:"not null;index" json:"category_id"`
	Category          *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName specifies the table name for Event model
func (Event) TableName() string {
	return "events"
}

// NewEventRequest represents the payload for creating an event
type NewEventRequest struct {
	Title             string    `json:"title" binding:"required,min=3,max=120"`
	Annotation        string    `json:"annotation" binding:"required,min=20,max=2000"`
	Description       string    `json:"description" binding:"required,min=20,max=7000"`
	EventDate         time.Time `json:"event_date" binding:"required"`
	Location          Location  `json:"location" binding:"required"`
	Paid              *bool     `json:"paid"`
	ParticipantLimit  *int      `json:"participant_limit" binding:"omitempty,gte=0"`
	RequestModeration *bool     `json:"request_moderation"`
	Category          uint      `json:"category" binding:"required"`
}

// UpdateEventRequest represents a partial event update; nil fields are left untouched.
// StateAction carries the requested lifecycle transition, if any.
type UpdateEventRequest struct {
	Title             *string    `json:"title"`
	Annotation        *string    `json:"annotation"`
	Description       *string    `json:"description"`
	EventDate         *time.Time `json:"event_date"`
	Location          *Location  `json:"location"`
	Paid              *bool      `json:"paid"`
	ParticipantLimit  *int       `json:"participant_limit"`
	RequestModeration *bool      `json:"request_moderation"`
	Category          *uint      `json:"category"`
	StateAction       string     `json:"state_action"`
}

// EventResponse is an event enriched with the read-model counters
type EventResponse struct {
	Event
	Views             int64 `json:"views"`
	ConfirmedRequests int64 `json:"confirmed_requests"`
}

// EventSearchParams collects the public listing filters
type EventSearchParams struct {
	Text          string
	CategoryIDs   []uint
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          string // EVENT_DATE or VIEWS
	From          int
	Size          int
}

// AdminEventSearchParams collects the admin listing filters
type AdminEventSearchParams struct {
	UserIDs     []uint
	States      []EventState
	CategoryIDs []uint
	RangeStart  *time.Time
	RangeEnd    *time.Time
	From        int
	Size        int
}
