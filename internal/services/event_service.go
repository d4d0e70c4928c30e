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

// userEventDateMinHours is the minimum lead time for initiator-driven
// creation and edits; admins get a shorter one.
const (
	userEventDateMinHours  = 2
	adminEventDateMinHours = 1
)

// EventService owns the event lifecycle. This file holds the initiator-facing
// operations; admin moderation lives in event_service_admin.go and the public
// read side in event_service_public.go.
type EventService struct {
	repo  *repository.Repository
	stats *StatsService
}

func NewEventService(repo *repository.Repository, stats *StatsService) *EventService {
	return &EventService{
		repo:  repo,
		stats: stats,
	}
}

// CreateEvent creates a new event in PENDING state
func (s *EventService) CreateEvent(ctx context.Context, userID uint, req *models.NewEventRequest) (*models.EventResponse, error) {
	if req.EventDate.Before(time.Now().Add(userEventDateMinHours * time.Hour)) {
		return nil, apperr.Validation("event date must be at least %d hour(s) in the future", userEventDateMinHours)
	}

	initiator, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("user with id=%d not found", userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	category, err := s.repo.GetCategoryByID(ctx, req.Category)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("category with id=%d not found", req.Category)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	event := &models.Event{
		ID:                uuid.New(),
		Title:             req.Title,
		Annotation:        req.Annotation,
		Description:       req.Description,
		EventDate:         req.EventDate,
		Location:          req.Location,
		ParticipantLimit:  0,
		RequestModeration: true,
		State:             models.EventStatePending,
		CreatedOn:         time.Now(),
		InitiatorID:       initiator.ID,
		Initiator:         initiator,
		CategoryID:        category.ID,
		Category:          category,
	}
	if req.Paid != nil {
		event.Paid = *req.Paid
	}
	if req.ParticipantLimit != nil {
		event.ParticipantLimit = *req.ParticipantLimit
	}
	if req.RequestModeration != nil {
		event.RequestModeration = *req.RequestModeration
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &models.EventResponse{Event: *event}, nil
}

// GetUserEvents retrieves the events created by a user
func (s *EventService) GetUserEvents(ctx context.Context, userID uint, from, size int) ([]models.EventResponse, error) {
	events, err := s.repo.GetEventsByInitiator(ctx, userID, from, size)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return s.stats.ToResponses(ctx, events)
}

// GetUserEvent retrieves one of the user's own events
func (s *EventService) GetUserEvent(ctx context.Context, userID uint, eventID uuid.UUID) (*models.EventResponse, error) {
	event, err := s.repo.GetEventByIDAndInitiator(ctx, eventID, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("event with id=%s not found", eventID)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return s.stats.ToResponse(ctx, event)
}

// UpdateUserEvent applies an initiator's edit. Only pending or canceled
// events may be changed.
func (s *EventService) UpdateUserEvent(ctx context.Context, userID uint, eventID uuid.UUID, upd *models.UpdateEventRequest) (*models.EventResponse, error) {
	event, err := s.repo.GetEventByIDAndInitiator(ctx, eventID, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("event with id=%s not found", eventID)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if event.State != models.EventStatePending && event.State != models.EventStateCanceled {
		return nil, apperr.Conflict("only pending or canceled events can be changed")
	}

	if err := applyEventPatch(event, upd); err != nil {
		return nil, err
	}

	if upd.Category != nil {
		category, err := s.repo.GetCategoryByID(ctx, *upd.Category)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, apperr.NotFound("category with id=%d not found", *upd.Category)
			}
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
		event.CategoryID = category.ID
		event.Category = category
	}

	if err := validateEventDate(upd.EventDate, userEventDateMinHours); err != nil {
		return nil, err
	}
	if upd.EventDate != nil {
		event.EventDate = *upd.EventDate
	}

	switch upd.StateAction {
	case models.StateActionSendToReview:
		event.State = models.EventStatePending
	case models.StateActionCancelReview:
		event.State = models.EventStateCanceled
	}

	if err := s.repo.SaveEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return s.stats.ToResponse(ctx, event)
}
