package services

import (
	"context"
	"log"
	"time"

	"explore-with-me/internal/models"
	"explore-with-me/internal/repository"
	"explore-with-me/internal/stats"

	"github.com/google/uuid"
)

// statsEpoch is the lower bound of the unbounded-past view window.
var statsEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// StatsService merges the internal confirmed-request counts with the external
// view counts into the read model. Confirmed counts are authoritative and
// always recomputed from the store; view counts are approximate and default
// to zero when the collaborator has nothing recorded.
type StatsService struct {
	repo   *repository.Repository
	client stats.Client
}

func NewStatsService(repo *repository.Repository, client stats.Client) *StatsService {
	return &StatsService{
		repo:   repo,
		client: client,
	}
}

// EventURI returns the public detail-page URI used as the view-count key
func EventURI(eventID uuid.UUID) string {
	return "/events/" + eventID.String()
}

// ConfirmedCounts returns the confirmed-request count per event. Events with
// no confirmed requests map to 0.
func (s *StatsService) ConfirmedCounts(ctx context.Context, events []models.Event) (map[uuid.UUID]int64, error) {
	if len(events) == 0 {
		return map[uuid.UUID]int64{}, nil
	}

	ids := make([]uuid.UUID, len(events))
	for i, event := range events {
		ids[i] = event.ID
	}

	counts, err := s.repo.CountConfirmedByEventIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		if _, ok := counts[event.ID]; !ok {
			counts[event.ID] = 0
		}
	}
	return counts, nil
}

// ViewCounts returns the unique view count per event. A collaborator failure
// degrades to zero views rather than failing the read.
func (s *StatsService) ViewCounts(ctx context.Context, events []models.Event) map[uuid.UUID]int64 {
	views := make(map[uuid.UUID]int64, len(events))
	for _, event := range events {
		views[event.ID] = 0
	}
	if len(events) == 0 {
		return views
	}

	uris := make([]string, len(events))
	for i, event := range events {
		uris[i] = EventURI(event.ID)
	}

	viewStats, err := s.client.GetStats(ctx, statsEpoch, time.Now(), uris, true)
	if err != nil {
		log.Printf("Error fetching view counts: %v", err)
		return views
	}

	hitsByURI := make(map[string]int64, len(viewStats))
	for _, vs := range viewStats {
		hitsByURI[vs.URI] = vs.Hits
	}

	for _, event := range events {
		if hits, ok := hitsByURI[EventURI(event.ID)]; ok {
			views[event.ID] = hits
		}
	}
	return views
}

// ToResponses enriches events with views and confirmed counts
func (s *StatsService) ToResponses(ctx context.Context, events []models.Event) ([]models.EventResponse, error) {
	confirmed, err := s.ConfirmedCounts(ctx, events)
	if err != nil {
		return nil, err
	}
	views := s.ViewCounts(ctx, events)

	responses := make([]models.EventResponse, len(events))
	for i, event := range events {
		responses[i] = models.EventResponse{
			Event:             event,
			Views:             views[event.ID],
			ConfirmedRequests: confirmed[event.ID],
		}
	}
	return responses, nil
}

// ToResponse enriches a single event
func (s *StatsService) ToResponse(ctx context.Context, event *models.Event) (*models.EventResponse, error) {
	responses, err := s.ToResponses(ctx, []models.Event{*event})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}
