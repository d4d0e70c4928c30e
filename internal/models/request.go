package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCanceled  RequestStatus = "CANCELED"
)

// Request represents one user's participation request for one event
type Request struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_requests_event_requester,unique" json:"event_id"`
	RequesterID uint          `gorm:"not null;index:idx_requests_event_requester,unique" json:"requester_id"`
	Status      RequestStatus `gorm:"size:20;not null;default:PENDING;index" json:"status"`
	Created     time.Time     `gorm:"not null" json:"created"`
}

// TableName specifies the table name for Request model
func (Request) TableName() string {
	return "requests"
}

// StatusUpdateRequest is the bulk decision payload for an event's pending requests
type StatusUpdateRequest struct {
	RequestIDs []uuid.UUID   `json:"request_ids" binding:"required"`
	Status     RequestStatus `json:"status" binding:"required,oneof=CONFIRMED REJECTED"`
}

// StatusUpdateResult reports every request touched by one bulk decision,
// including cascade rejections.
type StatusUpdateResult struct {
	Confirmed []Request `json:"confirmed"`
	Rejected  []Request `json:"rejected"`
}
