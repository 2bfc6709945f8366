// README: ChatReviser turns a trip conversation into a free-text assistant reply.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tripzen/internal/ai"
	"tripzen/internal/modules/suggestion"
)

const reviserPrompt = `You are a travel planning assistant helping a user refine an existing trip plan.
Answer conversationally in plain text. Be concrete: when the user asks to change the plan, describe the revised days, activities or budget directly. Keep replies short and do not output JSON.`

// Reviser produces conversational replies about an existing trip plan. Unlike
// generation there is no retry loop and no output parsing: free text cannot be
// malformed, and provider errors (timeouts included) propagate to the caller.
type Reviser struct {
	provider ai.Provider
}

// NewReviser creates a Reviser on top of the given completion provider.
func NewReviser(provider ai.Provider) *Reviser {
	return &Reviser{provider: provider}
}

// Reply completes the conversation with an assistant turn. The trip's current
// suggestion, when present, is embedded in the system prompt so the model can
// reference the plan it is asked to revise. A transcript without any user
// message returns ErrEmptyTranscript.
func (r *Reviser) Reply(ctx context.Context, sug *suggestion.TripSuggestion, transcript []Message) (string, error) {
	if !hasUserTurn(transcript) {
		return "", ErrEmptyTranscript
	}

	system := reviserPrompt
	if sug != nil {
		plan, err := json.Marshal(sug)
		if err != nil {
			return "", fmt.Errorf("marshal trip plan: %w", err)
		}
		system += "\n\nThe user's current trip plan:\n" + string(plan)
	}

	messages := make([]ai.Message, 0, len(transcript))
	for _, m := range transcript {
		role := ai.RoleUser
		if m.Role == RoleAssistant {
			role = ai.RoleAssistant
		}
		messages = append(messages, ai.Message{Role: role, Content: m.Content})
	}

	reply, err := r.provider.Complete(ctx, ai.Request{System: system, Messages: messages})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func hasUserTurn(transcript []Message) bool {
	for _, m := range transcript {
		if m.Role == RoleUser && strings.TrimSpace(m.Content) != "" {
			return true
		}
	}
	return false
}
