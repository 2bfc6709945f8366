// README: Tests for request defaults and transcript flattening.
package ai

import (
	"strings"
	"testing"
	"time"
)

func TestRequestDefaults(t *testing.T) {
	var req Request
	if req.timeout() != DefaultTimeout {
		t.Errorf("timeout: got %v, want %v", req.timeout(), DefaultTimeout)
	}
	if req.temperature() != DefaultTemperature {
		t.Errorf("temperature: got %v, want %v", req.temperature(), DefaultTemperature)
	}
	if req.maxTokens() != DefaultMaxTokens {
		t.Errorf("maxTokens: got %v, want %v", req.maxTokens(), DefaultMaxTokens)
	}
}

func TestRequestOverrides(t *testing.T) {
	req := Request{Timeout: 5 * time.Second, Temperature: 0.2, MaxTokens: 100}
	if req.timeout() != 5*time.Second {
		t.Errorf("timeout: got %v", req.timeout())
	}
	if req.temperature() != 0.2 {
		t.Errorf("temperature: got %v", req.temperature())
	}
	if req.maxTokens() != 100 {
		t.Errorf("maxTokens: got %v", req.maxTokens())
	}
}

func TestFlattenTranscript(t *testing.T) {
	out := flattenTranscript("Be helpful.", []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	})
	if !strings.HasPrefix(out, "Be helpful.\n\n") {
		t.Fatalf("system prompt not leading: %q", out)
	}
	if !strings.Contains(out, "User: hi\n") || !strings.Contains(out, "Assistant: hello\n") {
		t.Fatalf("turns not rendered: %q", out)
	}
}
