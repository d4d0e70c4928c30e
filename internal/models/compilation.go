package models

import (
	"github.com/google/uuid"
)

// Compilation is a curated, optionally pinned selection of events
type Compilation struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Title  string  `gorm:"size:50;not null" json:"title"`
	Pinned bool    `gorm:"not null;default:false;index" json:"pinned"`
	Events []Event `gorm:"many2many:compilation_events" json:"-"`
}

// TableName specifies the table name for Compilation model
func (Compilation) TableName() string {
	return "compilations"
}

// NewCompilationRequest represents the payload for creating a compilation
type NewCompilationRequest struct {
	Title  string      `json:"title" binding:"required,min=1,max=50"`
	Pinned bool        `json:"pinned"`
	Events []uuid.UUID `json:"events"`
}

// UpdateCompilationRequest represents a partial compilation update
type UpdateCompilationRequest struct {
	Title  *string      `json:"title"`
	Pinned *bool        `json:"pinned"`
	Events *[]uuid.UUID `json:"events"`
}

// CompilationResponse is a compilation with its events enriched with counters
type CompilationResponse struct {
	ID     uint            `json:"id"`
	Title  string          `json:"title"`
	Pinned bool            `json:"pinned"`
	Events []EventResponse `json:"events"`
}
