package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"explore-with-me/internal/apperr"
	"explore-with-me/internal/models"
	"explore-with-me/internal/repository"
	"explore-with-me/internal/stats"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Event{},
		&models.Request{},
		&models.Comment{},
		&models.Compilation{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	// Shared in-memory DB persists across tests in the package, so each test
	// starts from clean tables.
	db.Exec("DELETE FROM compilation_events")
	db.Exec("DELETE FROM compilations")
	db.Exec("DELETE FROM comments")
	db.Exec("DELETE FROM requests")
	db.Exec("DELETE FROM events")
	db.Exec("DELETE FROM categories")
	db.Exec("DELETE FROM users")

	return db
}

// fakeStatsClient serves canned view counts keyed by URI.
type fakeStatsClient struct {
	hits    []stats.EndpointHit
	views   map[string]int64
	failAll bool
}

func (f *fakeStatsClient) SaveHit(ctx context.Context, hit stats.EndpointHit) error {
	if f.failAll {
		return fmt.Errorf("stats service unavailable")
	}
	f.hits = append(f.hits, hit)
	return nil
}

func (f *fakeStatsClient) GetStats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]stats.ViewStats, error) {
	if f.failAll {
		return nil, fmt.Errorf("stats service unavailable")
	}
	var result []stats.ViewStats
	for _, uri := range uris {
		if hits, ok := f.views[uri]; ok {
			result = append(result, stats.ViewStats{App: "test", URI: uri, Hits: hits})
		}
	}
	return result, nil
}

func createTestUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	user := &models.User{ID: id, Name: fmt.Sprintf("user%d", id), Email: fmt.Sprintf("user%d@test.io", id)}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

func createTestEvent(t *testing.T, db *gorm.DB, initiatorID, categoryID uint, state models.EventState, limit int, moderation bool) *models.Event {
	event := &models.Event{
		ID:                uuid.New(),
		Title:             "Evening run in the park",
		Annotation:        "A relaxed five kilometer group run, all paces welcome",
		Description:       "We meet at the main gate and run one lap around the lake together",
		EventDate:         time.Now().Add(48 * time.Hour),
		ParticipantLimit:  limit,
		RequestModeration: moderation,
		State:             state,
		CreatedOn:         time.Now(),
		InitiatorID:       initiatorID,
		CategoryID:        categoryID,
	}
	if state == models.EventStatePublished {
		now := time.Now()
		event.PublishedOn = &now
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	return event
}

func createTestRequest(t *testing.T, db *gorm.DB, eventID uuid.UUID, requesterID uint, status models.RequestStatus) *models.Request {
	request := &models.Request{
		ID:          uuid.New(),
		EventID:     eventID,
		RequesterID: requesterID,
		Status:      status,
		Created:     time.Now(),
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	return request
}

func TestCreateRequestGuards(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := NewRequestService(repository.NewRepository(db))

	initiator := createTestUser(t, db, 1)
	requester := createTestUser(t, db, 2)
	category := createTestCategory(t, db, "running")

	pending := createTestEvent(t, db, initiator.ID, category.ID, models.EventStatePending, 0, true)
	published := createTestEvent(t, db, initiator.ID, category.ID, models.EventStatePublished, 0, true)

	if _, err := service.CreateRequest(ctx, 999, published.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("unknown user: expected not found, got %v", err)
	}

	if _, err := service.CreateRequest(ctx, requester.ID, uuid.New()); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("unknown event: expected not found, got %v", err)
	}

	if _, err := service.CreateRequest(ctx, requester.ID, pending.ID); !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("unpublished event: expected conflict, got %v", err)
	}

	if _, err := service.CreateRequest(ctx, initiator.ID, published.ID); !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("own event: expected conflict, got %v", err)
	}

	if _, err := service.CreateRequest(ctx, requester.ID, published.ID); err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if _, err := service.CreateRequest(ctx, requester.ID, published.ID); !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("duplicate: expected conflict, got %v", err)
	}
}

func TestCreateRequestAutoConfirm(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := NewRequestService(repository.NewRepository(db))

	initiator := createTestUser(t, db, 1)
	category := createTestCategory(t, db, "running")

	// No limit: confirmed even though moderation is on.
	noLimit := createTestEvent(t, db, initiator.ID, category.ID, models.EventStatePublished, 0, true)
	// No moderation: confirmed despite a limit.
	noModeration := createTestEvent(t, db, initiator.ID, category.ID, models.EventStatePublished, 10, false)
	// Limit and moderation: stays pending.
	moderated := createTestEvent(t, db, initiator.ID, category.ID, models.EventStatePublished, 10, true)

	cases := []struct {
		name    string
		userID  uint
		eventID uuid.UUID
		want    models.RequestStatus
	}{
		{"no limit", 2, noLimit.ID, models.RequestStatusConfirmed},
		{"no moderation", 3, noModeration.ID, models.RequestStatusConfirmed},
		{"moderated", 4, moderated.ID, models.RequestStatusPending},
	}
	for _, tc := range cases {
		createTestUser(t, db, tc.userID)
		request, err := service.CreateRequest(ctx, tc.userID, tc.eventID)
		if err != nil {
			t.Fatalf("%s: CreateRequest failed: %v", tc.name, err)
		}
		if request.Status != tc.want {
			t.Errorf("%s: expected status %s, got %s", tc.name, tc.want, request.Status)
		}
	}
}

func TestCreateRequestCapacity(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := NewRequestService(repository.NewRepository(db))

	initiator := createTestUser(t, db, 1)
	category := createTestCategory(t, db, "running")
	event := createTestEvent(t, db, initiator.ID, category.ID, models.EventStatePublished, 1, false)

	first := createTestUser(t, db, 2)
	second := createTestUser(t, db, 3)

	request, err := service.CreateRequest(ctx, first.ID, event.ID)
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if request.Status != models.RequestStatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", request.Status)
	}

	if _, err := service.CreateRequest(ctx, second.ID, event.ID); !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("full event: expected conflict, got %v", err)
	}

	// Pending requests do not hold slots; only confirmed ones count.
	moderated := createTestEvent(t, db, initiator.ID, category.ID, models.EventStatePublished, 1, true)
	createTestRequest(t, db, moderated.ID, first.ID, models.RequestStatusPending)
	if _, err := service.CreateRequest(ctx, second.ID, moderated.ID); err != nil {
		t.Errorf("pending request should not block capacity: %v", err)
	}
}

func TestCancelRequest(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := NewRequestService(repository.NewRepository(db))

	initiator := createTestUser(t, db, 1)
	requester := createTestUser(t, db, 2)
	other := createTestUser(t, db, 3)
	category := createTestCategory(t, db, "running")
	event := createTestEvent(t, db, initiator.ID, category.ID, models.EventStatePublished, 10, true)

	request := createTestRequest(t, db, event.ID, requester.ID, models.RequestStatusPending)

	if _, err := service.CancelRequest(ctx, other.ID, request.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("foreign request: expected forbidden, got %v", err)
	}

	canceled, err := service.CancelRequest(ctx, requester.ID, request.ID)
	if err != nil {
		t.Fatalf("CancelRequest failed: %v", err)
	}
	if canceled.Status != models.RequestStatusCanceled {
		t.Errorf("expected CANCELED, got %s", canceled.Status)
	}

	// A canceled request is final.
	if _, err := service.CancelRequest(ctx, requester.ID, request.ID); !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("already canceled: expected conflict, got %v", err)
	}

	rejected := createTestRequest(t, db, event.ID, other.ID, models.RequestStatusRejected)
	if _, err := service.CancelRequest(ctx, other.ID, rejected.ID); !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("rejected request: expected conflict, got %v", err)
	}
}

func TestCancelConfirmedFreesSlot(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := NewRequestService(repository.NewRepository(db))

	initiator := createTestUser(t, db, 1)
	first := createTestUser(t, db, 2)
	second := createTestUser(t, db, 3)
	category := createTestCategory(t, db, "running")
	event := createTestEvent(t, db, initiator.ID, category.ID, models.EventStatePublished, 1, false)

	request, err := service.CreateRequest(ctx, first.ID, event.ID)
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	if _, err := service.CreateRequest(ctx, second.ID, event.ID); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("full event: expected conflict, got %v", err)
	}

	if _, err := service.CancelRequest(ctx, first.ID, request.ID); err != nil {
		t.Fatalf("CancelRequest failed: %v", err)
	}

	if _, err := service.CreateRequest(ctx, second.ID, event.ID); err != nil {
		t.Errorf("slot should be free after cancel: %v", err)
	}
}

func TestGetEventRequestsInitiatorOnly(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	service := NewRequestService(repository.NewRepository(db))

	initiator := createTestUser(t, db, 1)
	requester := createTestUser(t, db, 2)
	category := createTestCategory(t, db, "running")
	event := createTestEvent(t, db, initiator.ID, category.ID, models.EventStatePublished, 10, true)
	createTestRequest(t, db, event.ID, requester.ID, models.RequestStatusPending)

	if _, err := service.GetEventRequests(ctx, requester.ID, event.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("non-initiator: expected forbidden, got %v", err)
	}

	requests, err := service.GetEventRequests(ctx, initiator.ID, event.ID)
	if err != nil {
		t.Fatalf("GetEventRequests failed: %v", err)
	}
	if len(requests) != 1 {
		t.Errorf("expected 1 request, got %d", len(requests))
	}
}

func TestCreateRequestConcurrentNeverOverbooks(t *testing.T) {
	db := setupTestDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	service := NewRequestService(repository.NewRepository(db))

	initiator := createTestUser(t, db, 1)
	category := createTestCategory(t, db, "running")
	event := createTestEvent(t, db, initiator.ID, category.ID, models.EventStatePublished, 3, false)

	const requesters = 12
	for i := uint(2); i < 2+requesters; i++ {
		createTestUser(t, db, i)
	}

	var wg sync.WaitGroup
	errs := make([]error, requesters)
	for i := 0; i < requesters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.CreateRequest(ctx, uint(2+i), event.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !apperr.IsKind(err, apperr.KindConflict) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 3 {
		t.Errorf("expected 3 confirmed requests, got %d", succeeded)
	}

	var confirmed int64
	db.Model(&models.Request{}).
		Where("event_id = ? AND status = ?", event.ID, models.RequestStatusConfirmed).
		Count(&confirmed)
	if confirmed != 3 {
		t.Errorf("expected 3 confirmed in store, got %d", confirmed)
	}
}
