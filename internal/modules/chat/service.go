// README: Chat service; persists conversation turns and gates replies on the AI quota.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tripzen/internal/modules/suggestion"
)

// QuotaConsumer deducts one AI request from a user's monthly allowance.
type QuotaConsumer interface {
	Consume(ctx context.Context, uid string) error
}

// Service runs trip revision conversations: it appends the user's turn, asks
// the reviser for a reply and persists the assistant's turn. Every reply
// consumes one quota request for the calling user.
type Service struct {
	store   *Store
	reviser *Reviser
	quota   QuotaConsumer
}

// NewService creates a chat Service.
func NewService(store *Store, reviser *Reviser, quota QuotaConsumer) *Service {
	return &Service{store: store, reviser: reviser, quota: quota}
}

// History returns a trip's conversation in chronological order.
func (s *Service) History(ctx context.Context, tripID uuid.UUID) ([]Message, error) {
	return s.store.ListByTrip(ctx, tripID)
}

// Send appends the user's message, generates the assistant's reply in the
// context of the trip's current plan and persists it. The user turn is stored
// before the completion call, so a failed reply leaves the question in the
// transcript and a later retry sees the full history.
func (s *Service) Send(ctx context.Context, uid string, tripID uuid.UUID, sug *suggestion.TripSuggestion, content string) (*Message, error) {
	if err := s.quota.Consume(ctx, uid); err != nil {
		return nil, err
	}

	userMsg := &Message{
		ID:        uuid.New(),
		TripID:    tripID,
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Append(ctx, userMsg); err != nil {
		return nil, err
	}

	transcript, err := s.store.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	reply, err := s.reviser.Reply(ctx, sug, transcript)
	if err != nil {
		return nil, fmt.Errorf("chat reply: %w", err)
	}

	assistantMsg := &Message{
		ID:        uuid.New(),
		TripID:    tripID,
		Role:      RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Append(ctx, assistantMsg); err != nil {
		return nil, err
	}
	return assistantMsg, nil
}
