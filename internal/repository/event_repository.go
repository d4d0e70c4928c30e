package repository

import (
	"context"
	"strings"

	"explore-with-me/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateEvent creates a new event
func (r *Repository) CreateEvent(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetEventByID retrieves an event by ID
func (r *Repository) GetEventByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Initiator").Preload("Category").
		Where("id = ?", eventID).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetPublishedEventByID retrieves a published event by ID
func (r *Repository) GetPublishedEventByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Initiator").Preload("Category").
		Where("id = ? AND state = ?", eventID, models.EventStatePublished).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetEventByIDAndInitiator retrieves an event owned by the given user
func (r *Repository) GetEventByIDAndInitiator(ctx context.Context, eventID uuid.UUID, initiatorID uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Initiator").Preload("Category").
		Where("id = ? AND initiator_id = ?", eventID, initiatorID).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// SaveEvent updates an event
func (r *Repository) SaveEvent(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// GetEventsByInitiator retrieves events created by a user
func (r *Repository) GetEventsByInitiator(ctx context.Context, initiatorID uint, from, size int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Preload("Initiator").Preload("Category").
		Where("initiator_id = ?", initiatorID).
		Order("created_on DESC").
		Offset(from).
		Limit(size).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// GetEventsByIDs retrieves events by a set of identifiers
func (r *Repository) GetEventsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var events []models.Event
	err := r.db.WithContext(ctx).
		Preload("Initiator").Preload("Category").
		Where("id IN ?", ids).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ExistsEventByCategory reports whether any event references the category
func (r *Repository) ExistsEventByCategory(ctx context.Context, categoryID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count > 0, err
}

// SearchPublicEvents retrieves published events matching the public filters.
// The availability filter is applied later by the caller, after confirmed
// counts are known.
func (r *Repository) SearchPublicEvents(ctx context.Context, params models.EventSearchParams) ([]models.Event, error) {
	query := r.db.WithContext(ctx).
		Preload("Initiator").Preload("Category").
		Where("state = ?", models.EventStatePublished)

	if params.Text != "" {
		pattern := "%" + strings.ToLower(params.Text) + "%"
		query = query.Where("LOWER(annotation) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if len(params.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", params.CategoryIDs)
	}
	if params.Paid != nil {
		query = query.Where("paid = ?", *params.Paid)
	}
	if params.RangeStart != nil {
		query = query.Where("event_date >= ?", *params.RangeStart)
	}
	if params.RangeEnd != nil {
		query = query.Where("event_date <= ?", *params.RangeEnd)
	}

	query = query.Order("event_date ASC").Offset(params.From).Limit(params.Size)

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// SearchAdminEvents retrieves events matching the admin filters
func (r *Repository) SearchAdminEvents(ctx context.Context, params models.AdminEventSearchParams) ([]models.Event, error) {
	query := r.db.WithContext(ctx).
		Preload("Initiator").Preload("Category").
		Model(&models.Event{})

	if len(params.UserIDs) > 0 {
		query = query.Where("initiator_id IN ?", params.UserIDs)
	}
	if len(params.States) > 0 {
		query = query.Where("state IN ?", params.States)
	}
	if len(params.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", params.CategoryIDs)
	}
	if params.RangeStart != nil {
		query = query.Where("event_date >= ?", *params.RangeStart)
	}
	if params.RangeEnd != nil {
		query = query.Where("event_date <= ?", *params.RangeEnd)
	}

	query = query.Order("created_on DESC").Offset(params.From).Limit(params.Size)

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// GetCompilationEvents retrieves the events attached to a compilation
func (r *Repository) GetCompilationEvents(ctx context.Context, compilation *models.Compilation) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).Model(compilation).
		Association("Events").
		Find(&events)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// IsNotFound reports whether err is the record-not-found error
func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}
