// README: Trip module tests: input normalisation plus DB-backed lifecycle.
package trip

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tripzen/internal/modules/suggestion"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubGenerator struct {
	sug   *suggestion.TripSuggestion
	err   error
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, _ suggestion.TripPreferences) (*suggestion.TripSuggestion, error) {
	s.calls++
	return s.sug, s.err
}

type stubQuota struct {
	err   error
	calls int
}

func (s *stubQuota) Consume(_ context.Context, _ string) error {
	s.calls++
	return s.err
}

func minimalPlan() *suggestion.TripSuggestion {
	return &suggestion.TripSuggestion{
		Destination:     "Kyoto",
		Activities:      []suggestion.Activity{},
		Recommendations: []suggestion.Recommendation{},
		Itinerary: []suggestion.ItineraryDay{
			{Day: 1, Date: "2026-05-01", Activities: []suggestion.Activity{}},
		},
	}
}

// ---------------------------------------------------------------------------
// Unit tests (no DB)
// ---------------------------------------------------------------------------

func TestCreateRejectsEmptyTitle(t *testing.T) {
	svc := NewService(NewStore(nil), &stubGenerator{}, &stubQuota{})
	_, err := svc.Create(context.Background(), "user_a", "   ", suggestion.TripPreferences{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Lifecycle tests (DB-backed, skipped without TRIPZEN_TEST_DSN)
// ---------------------------------------------------------------------------

func TestTripLifecycle(t *testing.T) {
	db := setupTestDB(t)
	gen := &stubGenerator{sug: minimalPlan()}
	quota := &stubQuota{}
	svc := NewService(NewStore(db), gen, quota)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user_a", "Spring in Kyoto", suggestion.TripPreferences{
		Destination: "Kyoto",
		Interests:   []string{"temples"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Preferences.VisitorCount != 1 {
		t.Fatalf("visitor count should normalise to 1, got %d", created.Preferences.VisitorCount)
	}
	if created.Suggestion != nil {
		t.Fatal("new trip must not carry a plan")
	}

	got, err := svc.Get(ctx, "user_a", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Spring in Kyoto" || got.Preferences.Destination != "Kyoto" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// Generation persists the plan and consumes one quota request.
	updated, err := svc.GenerateSuggestion(ctx, "user_a", created.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if updated.Suggestion == nil || updated.Suggestion.Destination != "Kyoto" {
		t.Fatalf("expected persisted plan, got %+v", updated.Suggestion)
	}
	if quota.calls != 1 || gen.calls != 1 {
		t.Fatalf("expected 1 quota and 1 generator call, got %d and %d", quota.calls, gen.calls)
	}

	reloaded, err := svc.Get(ctx, "user_a", created.ID)
	if err != nil {
		t.Fatalf("get after generate: %v", err)
	}
	if reloaded.Suggestion == nil || len(reloaded.Suggestion.Itinerary) != 1 {
		t.Fatalf("plan did not survive reload: %+v", reloaded.Suggestion)
	}

	list, err := svc.List(ctx, "user_a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(list))
	}

	if err := svc.Delete(ctx, "user_a", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, "user_a", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTripOwnershipScoping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewStore(db), &stubGenerator{sug: minimalPlan()}, &stubQuota{})
	ctx := context.Background()

	created, err := svc.Create(ctx, "user_a", "Private trip", suggestion.TripPreferences{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, "user_b", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign get: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "user_b", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GenerateSuggestion(ctx, "user_b", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign generate: expected ErrNotFound, got %v", err)
	}

	// Owner still sees the trip untouched.
	if _, err := svc.Get(ctx, "user_a", created.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
}

func TestGenerateSuggestionQuotaExhausted(t *testing.T) {
	db := setupTestDB(t)
	gen := &stubGenerator{sug: minimalPlan()}
	quotaErr := errors.New("monthly ai quota exhausted")
	svc := NewService(NewStore(db), gen, &stubQuota{err: quotaErr})
	ctx := context.Background()

	created, err := svc.Create(ctx, "user_a", "Blocked trip", suggestion.TripPreferences{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GenerateSuggestion(ctx, "user_a", created.ID); !errors.Is(err, quotaErr) {
		t.Fatalf("expected quota error, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatal("quota failure must not reach the generator")
	}
}

func TestGenerateSuggestionFailureKeepsOldPlan(t *testing.T) {
	db := setupTestDB(t)
	gen := &stubGenerator{sug: minimalPlan()}
	svc := NewService(NewStore(db), gen, &stubQuota{})
	ctx := context.Background()

	created, err := svc.Create(ctx, "user_a", "Replan trip", suggestion.TripPreferences{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.GenerateSuggestion(ctx, "user_a", created.ID); err != nil {
		t.Fatalf("first generate: %v", err)
	}

	// Second run fails; the stored plan must be untouched.
	gen.err = errors.New("provider down")
	if _, err := svc.GenerateSuggestion(ctx, "user_a", created.ID); err == nil {
		t.Fatal("expected generation failure")
	}

	got, err := svc.Get(ctx, "user_a", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Suggestion == nil || got.Suggestion.Destination != "Kyoto" {
		t.Fatalf("previous plan lost: %+v", got.Suggestion)
	}
}

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TRIPZEN_TEST_DSN")
	if dsn == "" {
		t.Skip("TRIPZEN_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trips (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			preferences JSONB NOT NULL,
			suggestion JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id UUID PRIMARY KEY,
			trip_id UUID NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`TRUNCATE TABLE trips`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return db
}
