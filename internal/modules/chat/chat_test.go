// README: Chat module tests: reviser behaviour plus DB-backed conversation flow.
package chat

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripzen/internal/ai"
	"tripzen/internal/modules/suggestion"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubProvider struct {
	reply    string
	err      error
	calls    int
	requests []ai.Request
}

func (s *stubProvider) Complete(_ context.Context, req ai.Request) (string, error) {
	s.calls++
	s.requests = append(s.requests, req)
	return s.reply, s.err
}

type stubQuota struct {
	err   error
	calls int
}

func (s *stubQuota) Consume(_ context.Context, _ string) error {
	s.calls++
	return s.err
}

// ---------------------------------------------------------------------------
// Reviser unit tests
// ---------------------------------------------------------------------------

func TestReviserEmptyTranscript(t *testing.T) {
	r := NewReviser(&stubProvider{reply: "hi"})
	_, err := r.Reply(context.Background(), nil, nil)
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("expected ErrEmptyTranscript, got %v", err)
	}

	// Assistant-only history is still an empty transcript.
	_, err = r.Reply(context.Background(), nil, []Message{{Role: RoleAssistant, Content: "hello"}})
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("expected ErrEmptyTranscript for assistant-only history, got %v", err)
	}
}

func TestReviserReply(t *testing.T) {
	provider := &stubProvider{reply: "  Swap day 2 for a food market tour.  "}
	r := NewReviser(provider)

	sug := &suggestion.TripSuggestion{
		Destination: "Lisbon",
		Itinerary:   []suggestion.ItineraryDay{{Day: 1, Activities: []suggestion.Activity{}}},
	}
	transcript := []Message{
		{Role: RoleUser, Content: "Plan looks good but day 2 is dull."},
		{Role: RoleAssistant, Content: "What would you prefer?"},
		{Role: RoleUser, Content: "More food."},
	}

	reply, err := r.Reply(context.Background(), sug, transcript)
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply != "Swap day 2 for a food market tour." {
		t.Fatalf("reply not trimmed: %q", reply)
	}
	if provider.calls != 1 {
		t.Fatalf("expected exactly 1 completion call, got %d", provider.calls)
	}

	req := provider.requests[0]
	if req.JSONMode {
		t.Fatal("revision replies must not request JSON mode")
	}
	if !strings.Contains(req.System, "Lisbon") {
		t.Fatal("system prompt must embed the current plan")
	}
	if len(req.Messages) != 3 {
		t.Fatalf("expected 3 transcript turns, got %d", len(req.Messages))
	}
	if req.Messages[1].Role != ai.RoleAssistant {
		t.Fatalf("role mapping: got %q for assistant turn", req.Messages[1].Role)
	}
}

func TestReviserTimeoutPropagates(t *testing.T) {
	provider := &stubProvider{err: ai.ErrTimeout}
	r := NewReviser(provider)
	transcript := []Message{{Role: RoleUser, Content: "hello"}}

	_, err := r.Reply(context.Background(), nil, transcript)
	if !errors.Is(err, ai.ErrTimeout) {
		t.Fatalf("expected ai.ErrTimeout, got %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("timeouts must not be retried; got %d calls", provider.calls)
	}
}

func TestReviserNoPlanContext(t *testing.T) {
	provider := &stubProvider{reply: "Sure."}
	r := NewReviser(provider)
	transcript := []Message{{Role: RoleUser, Content: "Suggest a destination."}}

	if _, err := r.Reply(context.Background(), nil, transcript); err != nil {
		t.Fatalf("reply without plan: %v", err)
	}
	if strings.Contains(provider.requests[0].System, "current trip plan") {
		t.Fatal("system prompt must not mention a plan when there is none")
	}
}

// ---------------------------------------------------------------------------
// Service tests (DB-backed, skipped without TRIPZEN_TEST_DSN)
// ---------------------------------------------------------------------------

func TestSendPersistsBothTurns(t *testing.T) {
	db := setupTestDB(t)
	provider := &stubProvider{reply: "Added a market visit on day 2."}
	quota := &stubQuota{}
	svc := NewService(NewStore(db), NewReviser(provider), quota)

	tripID := uuid.New()
	msg, err := svc.Send(context.Background(), "user_a", tripID, nil, "Make day 2 about food.")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Role != RoleAssistant || msg.Content != "Added a market visit on day 2." {
		t.Fatalf("unexpected reply message: %+v", msg)
	}
	if quota.calls != 1 {
		t.Fatalf("expected 1 quota deduction, got %d", quota.calls)
	}

	history, err := svc.History(context.Background(), tripID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 persisted turns, got %d", len(history))
	}
	if history[0].Role != RoleUser || history[1].Role != RoleAssistant {
		t.Fatalf("unexpected turn order: %s, %s", history[0].Role, history[1].Role)
	}
}

func TestSendQuotaExhaustedShortCircuits(t *testing.T) {
	db := setupTestDB(t)
	provider := &stubProvider{reply: "never"}
	quotaErr := errors.New("monthly ai quota exhausted")
	svc := NewService(NewStore(db), NewReviser(provider), &stubQuota{err: quotaErr})

	tripID := uuid.New()
	_, err := svc.Send(context.Background(), "user_b", tripID, nil, "hello")
	if !errors.Is(err, quotaErr) {
		t.Fatalf("expected quota error, got %v", err)
	}
	if provider.calls != 0 {
		t.Fatal("quota failure must not reach the provider")
	}

	history, err := svc.History(context.Background(), tripID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("quota failure must not persist any turn, got %d", len(history))
	}
}

// TestSendFailedReplyKeepsUserTurn verifies that a provider failure after the
// user turn was stored leaves the question in the transcript.
func TestSendFailedReplyKeepsUserTurn(t *testing.T) {
	db := setupTestDB(t)
	provider := &stubProvider{err: errors.New("provider down")}
	svc := NewService(NewStore(db), NewReviser(provider), &stubQuota{})

	tripID := uuid.New()
	if _, err := svc.Send(context.Background(), "user_c", tripID, nil, "hello"); err == nil {
		t.Fatal("expected provider error")
	}

	history, err := svc.History(context.Background(), tripID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Role != RoleUser {
		t.Fatalf("expected only the user turn persisted, got %+v", history)
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

	if _, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS chat_messages (
			id UUID PRIMARY KEY,
			trip_id UUID NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`); err != nil {
		t.Fatalf("ensure table: %v", err)
	}
	return db
}
