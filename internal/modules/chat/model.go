// README: Chat message types for per-trip revision conversations.
package chat

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyTranscript is returned when a reply is requested for a conversation
// with no user message in it.
var ErrEmptyTranscript = errors.New("conversation has no user message")

// Roles stored on chat messages. They map one-to-one onto completion roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a trip's revision conversation.
type Message struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
