package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider implements Provider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Complete sends one generation request and returns the reply text.
// Gemini has no native multi-turn message array in this SDK path, so the
// system prompt and transcript are flattened into a single prompt; this is
// more flexible for dynamic context injection per request.
func (p *GeminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("gemini: empty message list")
	}

	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(req.temperature())
	model.SetMaxOutputTokens(int32(req.maxTokens()))
	if req.JSONMode {
		// Force JSON response for structured parsing.
		model.ResponseMIMEType = "application/json"
	}

	callCtx, cancel := context.WithTimeout(ctx, req.timeout())
	defer cancel()

	resp, err := model.GenerateContent(callCtx, genai.Text(flattenTranscript(req.System, req.Messages)))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("gemini: %w", ErrTimeout)
		}
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: API returned empty candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("gemini: API returned empty text parts")
	}
	return sb.String(), nil
}

// flattenTranscript renders the system prompt and conversation turns as one
// text prompt.
func flattenTranscript(system string, messages []Message) string {
	var sb strings.Builder
	if system != "" {
		sb.WriteString(system)
		sb.WriteString("\n\n")
	}
	for _, m := range messages {
		switch m.Role {
		case RoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString("User: ")
		}
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
