package services

import (
	"context"
	"fmt"
	"time"

	"explore-with-me/internal/apperr"
	"explore-with-me/internal/models"
	"explore-with-me/internal/repository"

	"github.com/google/uuid"
)

// RequestService owns the participation-request lifecycle and the admission
// engine. Every operation that reads the confirmed count and writes based on
// it runs under the event's lock; the count itself is always recomputed from
// the store.
type RequestService struct {
	repo  *repository.Repository
	locks *eventLocks
}

func NewRequestService(repo *repository.Repository) *RequestService {
	return &RequestService{
		repo:  repo,
		locks: newEventLocks(),
	}
}

// CreateRequest submits a participation request. Guards, in order: event
// published, requester is not the initiator, no duplicate, capacity free.
// The request auto-confirms when the event has no limit or no moderation.
func (s *RequestService) CreateRequest(ctx context.Context, userID uint, eventID uuid.UUID) (*models.Request, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("user with id=%d not found", userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("event with id=%s not found", eventID)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if event.State != models.EventStatePublished {
		return nil, apperr.Conflict("event with id=%s is not published", eventID)
	}

	if event.InitiatorID == userID {
		return nil, apperr.Conflict("initiator cannot request own event")
	}

	exists, err := s.repo.ExistsRequestByRequesterAndEvent(ctx, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing request: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("request already exists")
	}

	lock := s.locks.forEvent(eventID)
	lock.Lock()
	defer lock.Unlock()

	if event.ParticipantLimit > 0 {
		confirmed, err := s.repo.CountRequestsByEventAndStatus(ctx, eventID, models.RequestStatusConfirmed)
		if err != nil {
			return nil, fmt.Errorf("failed to count confirmed requests: %w", err)
		}
		if confirmed >= int64(event.ParticipantLimit) {
			return nil, apperr.Conflict("participant limit reached")
		}
	}

	request := &models.Request{
		ID:          uuid.New(),
		EventID:     eventID,
		RequesterID: userID,
		Status:      models.RequestStatusPending,
		Created:     time.Now(),
	}
	if event.ParticipantLimit == 0 || !event.RequestModeration {
		request.Status = models.RequestStatusConfirmed
	}

	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return request, nil
}

// CancelRequest is the requester's self-cancel; allowed from PENDING or
// CONFIRMED only.
func (s *RequestService) CancelRequest(ctx context.Context, userID uint, requestID uuid.UUID) (*models.Request, error) {
	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("request with id=%s not found", requestID)
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	if request.RequesterID != userID {
		return nil, apperr.Forbidden("not your request")
	}

	if request.Status != models.RequestStatusPending && request.Status != models.RequestStatusConfirmed {
		return nil, apperr.Conflict("cannot cancel request in status %s", request.Status)
	}

	lock := s.locks.forEvent(request.EventID)
	lock.Lock()
	defer lock.Unlock()

	request.Status = models.RequestStatusCanceled
	if err := s.repo.SaveRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to cancel request: %w", err)
	}

	return request, nil
}

// GetUserRequests retrieves all requests made by a user
func (s *RequestService) GetUserRequests(ctx context.Context, userID uint) ([]models.Request, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("user with id=%d not found", userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.repo.GetRequestsByRequester(ctx, userID)
}

// GetEventRequests retrieves all requests for an event; initiator only.
func (s *RequestService) GetEventRequests(ctx context.Context, userID uint, eventID uuid.UUID) ([]models.Request, error) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("event with id=%s not found", eventID)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if event.InitiatorID != userID {
		return nil, apperr.Forbidden("not your event")
	}

	return s.repo.GetRequestsByEvent(ctx, eventID)
}
