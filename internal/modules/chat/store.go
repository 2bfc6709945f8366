package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles chat_messages persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Append inserts one message at the end of a trip's conversation.
func (s *Store) Append(ctx context.Context, m *Message) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO chat_messages (id, trip_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.TripID, m.Role, m.Content, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("append chat message: %w", err)
	}
	return nil
}

// ListByTrip returns a trip's conversation in chronological order.
func (s *Store) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]Message, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, trip_id, role, content, created_at
		FROM chat_messages
		WHERE trip_id = $1
		ORDER BY created_at, id
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.TripID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
