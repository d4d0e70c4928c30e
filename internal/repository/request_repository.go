package repository

import (
	"context"

	"explore-with-me/internal/models"

	"github.com/google/uuid"
)

// CreateRequest creates a new participation request
func (r *Repository) CreateRequest(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// GetRequestByID retrieves a request by ID
func (r *Repository) GetRequestByID(ctx context.Context, requestID uuid.UUID) (*models.Request, error) {
	var request models.Request
	err := r.db.WithContext(ctx).Where("id = ?", requestID).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetRequestsByIDs retrieves requests by a set of identifiers
func (r *Repository) GetRequestsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Request, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var requests []models.Request
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// GetRequestsByEvent retrieves all requests for an event
func (r *Repository) GetRequestsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// GetPendingRequestsByEvent retrieves the still-pending requests for an event
func (r *Repository) GetPendingRequestsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND status = ?", eventID, models.RequestStatusPending).
		Order("created ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// GetRequestsByRequester retrieves all requests made by a user
func (r *Repository) GetRequestsByRequester(ctx context.Context, requesterID uint) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ExistsRequestByRequesterAndEvent reports whether the user already holds a
// request for the event
func (r *Repository) ExistsRequestByRequesterAndEvent(ctx context.Context, requesterID uint, eventID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("requester_id = ? AND event_id = ?", requesterID, eventID).
		Count(&count).Error
	return count > 0, err
}

// CountRequestsByEventAndStatus counts requests for one event in one status
func (r *Repository) CountRequestsByEventAndStatus(ctx context.Context, eventID uuid.UUID, status models.RequestStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Count(&count).Error
	return count, err
}

// CountConfirmedByEventIDs counts confirmed requests grouped by event in one
// query. Events with no confirmed requests are absent from the map.
func (r *Repository) CountConfirmedByEventIDs(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(eventIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}

	var rows []struct {
		EventID uuid.UUID
		Count   int64
	}
	err := r.db.WithContext(ctx).Model(&models.Request{}).
		Select("event_id, COUNT(*) AS count").
		Where("event_id IN ? AND status = ?", eventIDs, models.RequestStatusConfirmed).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.EventID] = row.Count
	}
	return counts, nil
}

// SaveRequest updates a request
func (r *Repository) SaveRequest(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// SaveRequests updates a batch of requests
func (r *Repository) SaveRequests(ctx context.Context, requests []models.Request) error {
	if len(requests) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&requests).Error
}
