// README: Trip aggregate: preferences plus the generated plan, owned by one user.
package trip

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"tripzen/internal/modules/suggestion"
)

// ErrNotFound is returned when a trip does not exist or belongs to another user.
var ErrNotFound = errors.New("trip not found")

// Trip is a saved trip: the user's preferences and, once generated, the plan.
// Suggestion stays nil until the first successful generation.
type Trip struct {
	ID          uuid.UUID                  `json:"id"`
	UserID      string                     `json:"user_id"`
	Title       string                     `json:"title"`
	Preferences suggestion.TripPreferences `json:"preferences"`
	Suggestion  *suggestion.TripSuggestion `json:"suggestion,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}
