package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"explore-with-me/internal/apperr"
	"explore-with-me/internal/models"
	"explore-with-me/internal/repository"
)

func newTestEventService(db *repository.Repository, client *fakeStatsClient) *EventService {
	return NewEventService(db, NewStatsService(db, client))
}

func TestCreateEventDefaults(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewRepository(db)
	service := newTestEventService(repo, &fakeStatsClient{})

	user := createTestUser(t, db, 1)
	category := createTestCategory(t, db, "concerts")

	response, err := service.CreateEvent(ctx, user.ID, &models.NewEventRequest{
		Title:       "Open air jazz night",
		Annotation:  "An evening of live jazz under the stars with three local bands",
		Description: "Gates open at seven, music starts at eight, bring your own blanket",
		EventDate:   time.Now().Add(72 * time.Hour),
		Category:    category.ID,
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if response.State != models.EventStatePending {
		t.Errorf("expected PENDING, got %s", response.State)
	}
	if response.Paid {
		t.Error("expected paid=false by default")
	}
	if response.ParticipantLimit != 0 {
		t.Errorf("expected participant_limit=0, got %d", response.ParticipantLimit)
	}
	if !response.RequestModeration {
		t.Error("expected request_moderation=true by default")
	}
	if response.PublishedOn != nil {
		t.Error("expected no published_on before publication")
	}
}

func TestCreateEventLeadTime(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewRepository(db)
	service := newTestEventService(repo, &fakeStatsClient{})

	user := createTestUser(t, db, 1)
	category := createTestCategory(t, db, "concerts")

	_, err := service.CreateEvent(ctx, user.ID, &models.NewEventRequest{
		Title:       "Open air jazz night",
		Annotation:  "An evening of live jazz under the stars with three local bands",
		Description: "Gates open at seven, music starts at eight, bring your own blanket",
		EventDate:   time.Now().Add(90 * time.Minute),
		Category:    category.ID,
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("expected validation error for short lead time, got %v", err)
	}
}

func TestUpdateUserEventStateGuard(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewRepository(db)
	service := newTestEventService(repo, &fakeStatsClient{})

	user := createTestUser(t, db, 1)
	category := createTestCategory(t, db, "concerts")
	published := createTestEvent(t, db, user.ID, category.ID, models.EventStatePublished, 0, true)

	newTitle := "Rescheduled jazz night"
	if _, err := service.UpdateUserEvent(ctx, user.ID, published.ID, &models.UpdateEventRequest{
		Title: &newTitle,
	}); !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("published event: expected conflict, got %v", err)
	}

	canceled := createTestEvent(t, db, user.ID, category.ID, models.EventStateCanceled, 0, true)
	response, err := service.UpdateUserEvent(ctx, user.ID, canceled.ID, &models.UpdateEventRequest{
		Title:       &newTitle,
		StateAction: models.StateActionSendToReview,
	})
	if err != nil {
		t.Fatalf("UpdateUserEvent failed: %v", err)
	}
	if response.State != models.EventStatePending {
		t.Errorf("expected PENDING after send to review, got %s", response.State)
	}
	if response.Title != newTitle {
		t.Errorf("expected title %q, got %q", newTitle, response.Title)
	}
}

func TestUpdateUserEventFieldBounds(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewRepository(db)
	service := newTestEventService(repo, &fakeStatsClient{})

	user := createTestUser(t, db, 1)
	category := createTestCategory(t, db, "concerts")
	event := createTestEvent(t, db, user.ID, category.ID, models.EventStatePending, 0, true)

	shortTitle := "ab"
	if _, err := service.UpdateUserEvent(ctx, user.ID, event.ID, &models.UpdateEventRequest{
		Title: &shortTitle,
	}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("short title: expected validation error, got %v", err)
	}

	negativeLimit := -1
	if _, err := service.UpdateUserEvent(ctx, user.ID, event.ID, &models.UpdateEventRequest{
		ParticipantLimit: &negativeLimit,
	}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("negative limit: expected validation error, got %v", err)
	}
}

func TestAdminPublish(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewRepository(db)
	service := newTestEventService(repo, &fakeStatsClient{})

	user := createTestUser(t, db, 1)
	category := createTestCategory(t, db, "concerts")
	event := createTestEvent(t, db, user.ID, category.ID, models.EventStatePending, 0, true)

	response, err := service.UpdateAdminEvent(ctx, event.ID, &models.UpdateEventRequest{
		StateAction: models.StateActionPublish,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if response.State != models.EventStatePublished {
		t.Errorf("expected PUBLISHED, got %s", response.State)
	}
	if response.PublishedOn == nil {
		t.Error("expected published_on to be set")
	}

	// Publishing is one-way; a second publish conflicts.
	if _, err := service.UpdateAdminEvent(ctx, event.ID, &models.UpdateEventRequest{
		StateAction: models.StateActionPublish,
	}); !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("double publish: expected conflict, got %v", err)
	}

	if _, err := service.UpdateAdminEvent(ctx, event.ID, &models.UpdateEventRequest{
		StateAction: models.StateActionReject,
	}); !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("reject published: expected conflict, got %v", err)
	}
}

func TestAdminReject(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewRepository(db)
	service := newTestEventService(repo, &fakeStatsClient{})

	user := createTestUser(t, db, 1)
	category := createTestCategory(t, db, "concerts")
	event := createTestEvent(t, db, user.ID, category.ID, models.EventStatePending, 0, true)

	response, err := service.UpdateAdminEvent(ctx, event.ID, &models.UpdateEventRequest{
		StateAction: models.StateActionReject,
	})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if response.State != models.EventStateCanceled {
		t.Errorf("expected CANCELED, got %s", response.State)
	}
}

func TestPublicEventsOnlyAvailable(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewRepository(db)
	service := newTestEventService(repo, &fakeStatsClient{})

	user := createTestUser(t, db, 1)
	category := createTestCategory(t, db, "concerts")

	full := createTestEvent(t, db, user.ID, category.ID, models.EventStatePublished, 1, true)
	createTestRequest(t, db, full.ID, createTestUser(t, db, 2).ID, models.RequestStatusConfirmed)

	open := createTestEvent(t, db, user.ID, category.ID, models.EventStatePublished, 5, true)
	unlimited := createTestEvent(t, db, user.ID, category.ID, models.EventStatePublished, 0, true)

	responses, err := service.PublicEvents(ctx, models.EventSearchParams{OnlyAvailable: true, Size: 10})
	if err != nil {
		t.Fatalf("PublicEvents failed: %v", err)
	}

	if len(responses) != 2 {
		t.Fatalf("expected 2 available events, got %d", len(responses))
	}
	seen := map[uuid.UUID]bool{}
	for _, response := range responses {
		seen[response.ID] = true
	}
	if seen[full.ID] {
		t.Error("full event should be filtered out")
	}
	if !seen[open.ID] || !seen[unlimited.ID] {
		t.Error("expected the open and unlimited events to be listed")
	}
}

func TestPublicEventsSortByViews(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewRepository(db)

	user := createTestUser(t, db, 1)
	category := createTestCategory(t, db, "concerts")
	quiet := createTestEvent(t, db, user.ID, category.ID, models.EventStatePublished, 0, true)
	popular := createTestEvent(t, db, user.ID, category.ID, models.EventStatePublished, 0, true)

	client := &fakeStatsClient{views: map[string]int64{
		EventURI(popular.ID): 42,
		EventURI(quiet.ID):   3,
	}}
	service := newTestEventService(repo, client)

	responses, err := service.PublicEvents(ctx, models.EventSearchParams{Sort: "VIEWS", Size: 10})
	if err != nil {
		t.Fatalf("PublicEvents failed: %v", err)
	}

	if len(responses) != 2 {
		t.Fatalf("expected 2 events, got %d", len(responses))
	}
	if responses[0].ID != popular.ID {
		t.Errorf("expected most viewed event first, got %s with %d views", responses[0].ID, responses[0].Views)
	}
	if responses[0].Views != 42 || responses[1].Views != 3 {
		t.Errorf("unexpected view counts: %d, %d", responses[0].Views, responses[1].Views)
	}
}

func TestPublicEventsRangeValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewRepository(db)
	service := newTestEventService(repo, &fakeStatsClient{})

	start := time.Now().Add(24 * time.Hour)
	end := start.Add(-time.Hour)
	_, err := service.PublicEvents(ctx, models.EventSearchParams{RangeStart: &start, RangeEnd: &end, Size: 10})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("inverted range: expected validation error, got %v", err)
	}
}

func TestPublicEventByIDPublishedOnly(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewRepository(db)
	service := newTestEventService(repo, &fakeStatsClient{})

	user := createTestUser(t, db, 1)
	category := createTestCategory(t, db, "concerts")
	pending := createTestEvent(t, db, user.ID, category.ID, models.EventStatePending, 0, true)

	if _, err := service.PublicEventByID(ctx, pending.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("unpublished event: expected not found, got %v", err)
	}
}

func TestViewCountsDegradeOnFailure(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewRepository(db)
	service := newTestEventService(repo, &fakeStatsClient{failAll: true})

	user := createTestUser(t, db, 1)
	category := createTestCategory(t, db, "concerts")
	event := createTestEvent(t, db, user.ID, category.ID, models.EventStatePublished, 5, true)
	createTestRequest(t, db, event.ID, createTestUser(t, db, 2).ID, models.RequestStatusConfirmed)

	// A broken view-count collaborator must not break the read path.
	response, err := service.PublicEventByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("PublicEventByID failed: %v", err)
	}
	if response.Views != 0 {
		t.Errorf("expected 0 views on collaborator failure, got %d", response.Views)
	}
	if response.ConfirmedRequests != 1 {
		t.Errorf("expected 1 confirmed request, got %d", response.ConfirmedRequests)
	}
}

func TestAdminSearchRangeGuard(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewRepository(db)
	service := newTestEventService(repo, &fakeStatsClient{})

	end := time.Now().Add(24 * time.Hour)
	_, err := service.SearchAdminEvents(ctx, models.AdminEventSearchParams{RangeEnd: &end, Size: 10})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("range_end without range_start: expected validation error, got %v", err)
	}
}
