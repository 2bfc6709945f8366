// README: Trip store backed by PostgreSQL; preferences and plans live in JSONB columns.
package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripzen/internal/modules/suggestion"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, t *Trip) error {
	prefs, err := json.Marshal(t.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO trips (id, user_id, title, preferences, suggestion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULL, $5, $6)
	`, t.ID, t.UserID, t.Title, prefs, t.CreatedAt, t.UpdatedAt)
	return err
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, title, preferences, suggestion, created_at, updated_at
		FROM trips
		WHERE id = $1
	`, id)
	return scanTrip(row)
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]*Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, title, preferences, suggestion, created_at, updated_at
		FROM trips
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SaveSuggestion replaces the trip's plan and bumps updated_at.
func (s *Store) SaveSuggestion(ctx context.Context, id uuid.UUID, sug *suggestion.TripSuggestion) error {
	data, err := json.Marshal(sug)
	if err != nil {
		return fmt.Errorf("marshal suggestion: %w", err)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE trips SET suggestion = $1, updated_at = NOW() WHERE id = $2
	`, data, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a trip and its conversation. Scoped to the owning user so a
// guessed ID cannot delete someone else's trip.
func (s *Store) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM trips WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	_, err = s.db.Exec(ctx, `DELETE FROM chat_messages WHERE trip_id = $1`, id)
	return err
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var t Trip
	var prefs []byte
	var sug []byte

	err := row.Scan(&t.ID, &t.UserID, &t.Title, &prefs, &sug, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(prefs, &t.Preferences); err != nil {
		return nil, fmt.Errorf("unmarshal preferences: %w", err)
	}
	if len(sug) > 0 {
		t.Suggestion = &suggestion.TripSuggestion{}
		if err := json.Unmarshal(sug, t.Suggestion); err != nil {
			return nil, fmt.Errorf("unmarshal suggestion: %w", err)
		}
	}
	return &t, nil
}
