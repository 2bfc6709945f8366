package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider implements Provider using the OpenAI chat completions API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates an OpenAI-backed provider.
// model may be empty, in which case a sensible default is used.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Complete sends one chat completion request and returns the reply text.
// The request is cancelled when the wall-clock timeout expires; an expired
// call is reported as ErrTimeout.
func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("openai: empty message list")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: req.temperature(),
		MaxTokens:   req.maxTokens(),
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, req.timeout())
	defer cancel()

	resp, err := p.client.CreateChatCompletion(callCtx, chatReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("openai: %w", ErrTimeout)
		}
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: API returned empty choices array")
	}
	return resp.Choices[0].Message.Content, nil
}
