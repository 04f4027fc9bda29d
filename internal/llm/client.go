// Package llm wraps the hosted completion service behind a small client
// interface so the planner services stay provider-agnostic.
package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pas-volunteer/planner-backend/config"
)

// Message is one turn of conversation context sent to the completion service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request carries everything a single completion call needs. Token budget
// and temperature are fixed by the caller, never by the end user.
type Request struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int
	Temperature  float32
}

// Client is the completion-service boundary. Complete returns the full
// response text in one shot; Stream invokes onDelta for each incremental
// chunk and returns the accumulated text. Both honor ctx cancellation.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Stream(ctx context.Context, req Request, onDelta func(delta string) error) (string, error)
}

// NewClient builds the configured provider's client.
func NewClient(cfg config.LLMConfig, logger *zap.Logger) (Client, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(cfg, logger)
	case "anthropic":
		return NewAnthropicClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
