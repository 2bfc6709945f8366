package quota

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles ai_quota persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Consume atomically checks the monthly allowance and deducts one request.
// It resets the counter to DefaultMonthlyRequests when last_reset_month is
// behind the current month. Returns ErrQuotaExhausted when 0 rows are updated
// (allowance spent or user absent).
func (s *Store) Consume(ctx context.Context, uid string) error {
	month := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE ai_quota SET
			requests_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE requests_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR requests_remaining > 0)
	`, month, DefaultMonthlyRequests, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// EnsureUser inserts a new ai_quota row for uid with the default allowance.
// If the row already exists the insert is silently skipped.
func (s *Store) EnsureUser(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_quota (uid, requests_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, DefaultMonthlyRequests, time.Now().Format("2006-01"))
	return err
}

// Remaining reports the user's requests left this month. A stale row from a
// previous month reads as the full allowance; an absent row reads the same,
// since the row is created lazily on first use.
func (s *Store) Remaining(ctx context.Context, uid string) (int, error) {
	month := time.Now().Format("2006-01")

	var remaining int
	var lastReset string
	err := s.db.QueryRow(ctx, `
		SELECT requests_remaining, last_reset_month FROM ai_quota WHERE uid = $1
	`, uid).Scan(&remaining, &lastReset)
	if err == pgx.ErrNoRows {
		return DefaultMonthlyRequests, nil
	}
	if err != nil {
		return 0, err
	}
	if lastReset < month {
		return DefaultMonthlyRequests, nil
	}
	return remaining, nil
}
