package ai

import (
	"context"
	"errors"
	"time"
)

// Defaults applied by providers when the corresponding Request field is zero.
const (
	DefaultTimeout     = 60 * time.Second
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4000
)

// ErrTimeout reports that a completion call exceeded its wall-clock budget.
// It is distinct from other provider failures so callers can decide not to retry.
var ErrTimeout = errors.New("completion timed out")

// Message is a single turn of a chat transcript.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request describes one completion call.
type Request struct {
	// System is the system prompt sent ahead of the conversation.
	System string

	// Messages is the ordered conversation; the last entry is the message
	// being answered. Must contain at least one message.
	Messages []Message

	// JSONMode asks the provider for a single JSON object instead of prose.
	JSONMode bool

	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Provider performs one chat-completion call against an LLM backend.
// Implementations make exactly one outbound call per invocation; retry policy
// belongs to the caller, which knows whether a failure is worth retrying.
// This interface allows for swapping providers (OpenAI, Gemini) and for
// substituting stubs in tests.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

func (r *Request) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

func (r *Request) temperature() float32 {
	if r.Temperature > 0 {
		return r.Temperature
	}
	return DefaultTemperature
}

func (r *Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return DefaultMaxTokens
}
