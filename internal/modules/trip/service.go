// README: Trip service: CRUD plus quota-gated plan generation.
package trip

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"tripzen/internal/modules/suggestion"
)

// ErrInvalidInput is returned when a create request is missing required fields.
var ErrInvalidInput = errors.New("invalid trip input")

// PlanGenerator produces a validated trip plan from preferences.
type PlanGenerator interface {
	Generate(ctx context.Context, prefs suggestion.TripPreferences) (*suggestion.TripSuggestion, error)
}

// QuotaConsumer deducts one AI request from a user's monthly allowance.
type QuotaConsumer interface {
	Consume(ctx context.Context, uid string) error
}

// Service owns the trip lifecycle. Generation is gated on the caller's AI
// quota; plain CRUD is not.
type Service struct {
	store     *Store
	generator PlanGenerator
	quota     QuotaConsumer
}

// NewService creates a trip Service.
func NewService(store *Store, generator PlanGenerator, quota QuotaConsumer) *Service {
	return &Service{store: store, generator: generator, quota: quota}
}

// Create saves a new trip without a plan. A visitor count below 1 is
// normalised to 1 (a trip has at least the requesting traveler).
func (s *Service) Create(ctx context.Context, uid, title string, prefs suggestion.TripPreferences) (*Trip, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidInput
	}
	if prefs.VisitorCount < 1 {
		prefs.VisitorCount = 1
	}
	if prefs.Interests == nil {
		prefs.Interests = []string{}
	}

	now := time.Now().UTC()
	t := &Trip{
		ID:          uuid.New(),
		UserID:      uid,
		Title:       title,
		Preferences: prefs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns one of the caller's trips. Another user's trip reads as not
// found so trip IDs leak nothing.
func (s *Service) Get(ctx context.Context, uid string, id uuid.UUID) (*Trip, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != uid {
		return nil, ErrNotFound
	}
	return t, nil
}

// List returns the caller's trips, newest first.
func (s *Service) List(ctx context.Context, uid string) ([]*Trip, error) {
	return s.store.ListByUser(ctx, uid)
}

// Delete removes one of the caller's trips along with its conversation.
func (s *Service) Delete(ctx context.Context, uid string, id uuid.UUID) error {
	return s.store.Delete(ctx, id, uid)
}

// GenerateSuggestion runs the plan pipeline for a trip and persists the
// result, replacing any previous plan. One quota request is consumed up
// front; a failed generation still costs the request, which keeps a looping
// client from hammering the provider for free.
func (s *Service) GenerateSuggestion(ctx context.Context, uid string, id uuid.UUID) (*Trip, error) {
	t, err := s.Get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	if err := s.quota.Consume(ctx, uid); err != nil {
		return nil, err
	}

	sug, err := s.generator.Generate(ctx, t.Preferences)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveSuggestion(ctx, t.ID, sug); err != nil {
		return nil, err
	}

	t.Suggestion = sug
	t.UpdatedAt = time.Now().UTC()
	return t, nil
}
