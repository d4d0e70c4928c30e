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

// UpdateAdminEvent applies an admin's edit and, when requested, a moderation
// transition. Admin edits carry no state guard on field changes, only on the
// transitions themselves.
func (s *EventService) UpdateAdminEvent(ctx context.Context, eventID uuid.UUID, upd *models.UpdateEventRequest) (*models.EventResponse, error) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("event with id=%s not found", eventID)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
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

	if err := validateEventDate(upd.EventDate, adminEventDateMinHours); err != nil {
		return nil, err
	}
	if upd.EventDate != nil {
		event.EventDate = *upd.EventDate
	}

	if err := s.applyAdminStateAction(event, upd.StateAction); err != nil {
		return nil, err
	}

	if err := s.repo.SaveEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return s.stats.ToResponse(ctx, event)
}

// applyAdminStateAction enforces the moderation transitions: publish only
// from PENDING (stamping PublishedOn exactly once), reject never from
// PUBLISHED. PublishedOn survives a later cancellation.
func (s *EventService) applyAdminStateAction(event *models.Event, stateAction string) error {
	switch stateAction {
	case models.StateActionPublish:
		if event.State != models.EventStatePending {
			return apperr.Conflict("cannot publish event in state %s", event.State)
		}
		event.State = models.EventStatePublished
		now := time.Now()
		event.PublishedOn = &now
	case models.StateActionReject:
		if event.State == models.EventStatePublished {
			return apperr.Conflict("cannot reject published event")
		}
		event.State = models.EventStateCanceled
	}
	return nil
}

// SearchAdminEvents retrieves events matching the admin filters, enriched
// with views and confirmed counts
func (s *EventService) SearchAdminEvents(ctx context.Context, params models.AdminEventSearchParams) ([]models.EventResponse, error) {
	if params.RangeEnd != nil && params.RangeStart == nil {
		return nil, apperr.Validation("range_start must be specified if range_end is set")
	}

	events, err := s.repo.SearchAdminEvents(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	return s.stats.ToResponses(ctx, events)
}
