package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"explore-with-me/internal/apperr"
	"explore-with-me/internal/models"
	"explore-with-me/internal/repository"

	"github.com/google/uuid"
)

// PublicEvents retrieves published events for the public listing. The
// availability filter runs on confirmed counts before any views are fetched,
// so the view lookup only covers the events actually returned.
func (s *EventService) PublicEvents(ctx context.Context, params models.EventSearchParams) ([]models.EventResponse, error) {
	if params.RangeStart == nil {
		now := time.Now()
		params.RangeStart = &now
	}
	if params.RangeEnd != nil && params.RangeEnd.Before(*params.RangeStart) {
		return nil, apperr.Validation("range_end must be after range_start")
	}

	events, err := s.repo.SearchPublicEvents(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	confirmed, err := s.stats.ConfirmedCounts(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("failed to count confirmed requests: %w", err)
	}

	if params.OnlyAvailable {
		available := events[:0]
		for _, event := range events {
			if event.ParticipantLimit == 0 || confirmed[event.ID] < int64(event.ParticipantLimit) {
				available = append(available, event)
			}
		}
		events = available
	}

	views := s.stats.ViewCounts(ctx, events)

	responses := make([]models.EventResponse, len(events))
	for i, event := range events {
		responses[i] = models.EventResponse{
			Event:             event,
			Views:             views[event.ID],
			ConfirmedRequests: confirmed[event.ID],
		}
	}

	if params.Sort == "VIEWS" {
		sort.SliceStable(responses, func(i, j int) bool {
			return responses[i].Views > responses[j].Views
		})
	}

	return responses, nil
}

// PublicEventByID retrieves a single published event
func (s *EventService) PublicEventByID(ctx context.Context, eventID uuid.UUID) (*models.EventResponse, error) {
	event, err := s.repo.GetPublishedEventByID(ctx, eventID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("event with id=%s not found", eventID)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return s.stats.ToResponse(ctx, event)
}
