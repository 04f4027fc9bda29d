package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/pas-volunteer/planner-backend/config"
)

// AnthropicClient talks to the Anthropic messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

// NewAnthropicClient creates a client for the configured model.
func NewAnthropicClient(cfg config.LLMConfig, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	opts := []anthropic.ClientOption{}
	if cfg.Endpoint != "" {
		opts = append(opts, anthropic.WithBaseURL(strings.TrimRight(cfg.Endpoint, "/")))
	}

	return &AnthropicClient{
		client: anthropic.NewClient(cfg.APIKey, opts...),
		model:  cfg.Model,
		logger: logger.Named("llm.anthropic"),
	}, nil
}

func (c *AnthropicClient) buildRequest(req Request) anthropic.MessagesRequest {
	messages := make([]anthropic.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := anthropic.RoleUser
		if m.Role == "assistant" {
			role = anthropic.RoleAssistant
		}
		content := m.Content
		messages = append(messages, anthropic.Message{
			Role:    role,
			Content: []anthropic.MessageContent{{Type: "text", Text: &content}},
		})
	}

	temp := req.Temperature
	return anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		System:      req.SystemPrompt,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: &temp,
	}
}

// Complete performs a single non-streaming messages call.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	start := time.Now()

	resp, err := c.client.CreateMessages(ctx, c.buildRequest(req))
	if err != nil {
		c.logger.Error("messages request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("create messages: %w", err)
	}

	var builder strings.Builder
	for _, block := range resp.Content {
		if block.Text != nil {
			builder.WriteString(*block.Text)
		}
	}

	c.logger.Info("messages request finished",
		zap.Int("content_length", builder.Len()),
		zap.Duration("elapsed", time.Since(start)))

	return builder.String(), nil
}

// Stream performs a streaming messages call, invoking onDelta per text delta.
func (c *AnthropicClient) Stream(ctx context.Context, req Request, onDelta func(string) error) (string, error) {
	start := time.Now()

	streamCtx, cancelStream := context.WithCancel(ctx)
	defer cancelStream()

	var builder strings.Builder
	var deltaErr error

	_, err := c.client.CreateMessagesStream(streamCtx, anthropic.MessagesStreamRequest{
		MessagesRequest: c.buildRequest(req),
		OnContentBlockDelta: func(data anthropic.MessagesEventContentBlockDeltaData) {
			if deltaErr != nil || data.Delta.Text == nil || *data.Delta.Text == "" {
				return
			}
			builder.WriteString(*data.Delta.Text)
			if deltaErr = onDelta(*data.Delta.Text); deltaErr != nil {
				// a delta callback error ends the turn; stop the stream
				// instead of draining the rest of the completion
				cancelStream()
			}
		},
	})
	if deltaErr != nil {
		return builder.String(), deltaErr
	}
	if err != nil {
		c.logger.Error("stream failed", zap.Error(err))
		return builder.String(), fmt.Errorf("messages stream: %w", err)
	}

	c.logger.Info("stream finished",
		zap.Int("content_length", builder.Len()),
		zap.Duration("elapsed", time.Since(start)))

	return builder.String(), nil
}
