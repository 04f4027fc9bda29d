package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pas-volunteer/planner-backend/config"
	"github.com/pas-volunteer/planner-backend/internal/llm"
	"github.com/pas-volunteer/planner-backend/internal/planner/domain"
	"github.com/pas-volunteer/planner-backend/internal/planner/repository"
)

// Conversation session states.
const (
	StateIdle             = "idle"
	StateAwaitingResponse = "awaiting-response"
)

// ChatService runs the turn-by-turn exchange with the completion service for
// one project at a time. The user message is appended and persisted before
// any network I/O, and the history is resynchronized into the store on every
// streamed delta so an abandoned stream loses nothing. The per-project state
// is advisory: nothing here blocks a second submission while one is in
// flight; that guard lives in the UI.
type ChatService struct {
	repo   *repository.ProjectRepository
	llm    llm.Client
	logger *zap.Logger

	mu     sync.Mutex
	states map[string]string
}

// NewChatService creates a new chat service
func NewChatService(repo *repository.ProjectRepository, client llm.Client, logger *zap.Logger) *ChatService {
	return &ChatService{
		repo:   repo,
		llm:    client,
		logger: logger.Named("chat"),
		states: make(map[string]string),
	}
}

// State reports the session state for a project.
func (s *ChatService) State(projectID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[projectID]; ok {
		return st
	}
	return StateIdle
}

func (s *ChatService) setState(projectID, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == StateIdle {
		delete(s.states, projectID)
		return
	}
	s.states[projectID] = state
}

// History returns the project's ordered conversation history.
func (s *ChatService) History(ctx context.Context, projectID string) ([]domain.ChatMessage, error) {
	p, err := s.repo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return p.ChatHistory, nil
}

// Submit runs one conversational turn. The new user message is appended to
// the history immediately; the full history plus the fixed system prompt is
// then sent to the completion service and the assistant's reply streams back
// through onDelta. The turn is bounded by the fixed wall-clock timeout and
// the caller's ctx. Returns the final assistant message.
func (s *ChatService) Submit(ctx context.Context, projectID, text string, onDelta func(delta string) error) (*domain.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyMessage
	}

	userMsg := domain.NewChatMessage(domain.RoleUser, text)
	p, err := s.repo.AppendChatMessage(ctx, projectID, userMsg)
	if err != nil {
		return nil, err
	}

	s.setState(projectID, StateAwaitingResponse)
	defer s.setState(projectID, StateIdle)

	messages := make([]llm.Message, 0, len(p.ChatHistory))
	for _, msg := range p.ChatHistory {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	turnCtx, cancel := context.WithTimeout(ctx, config.ChatTurnTimeout)
	defer cancel()

	history := p.ChatHistory
	assistantMsg := domain.NewChatMessage(domain.RoleAssistant, "")
	appended := false

	_, streamErr := s.llm.Stream(turnCtx, llm.Request{
		SystemPrompt: chatSystemPrompt,
		Messages:     messages,
		MaxTokens:    config.ChatMaxTokens,
		Temperature:  config.ChatTemperature,
	}, func(delta string) error {
		assistantMsg.Content += delta
		if !appended {
			history = append(history, assistantMsg)
			appended = true
		} else {
			history[len(history)-1] = assistantMsg
		}
		// Resync the whole history after every delta so mid-stream progress
		// survives an abandoned session. Persistence errors here end the
		// stream; the service has no retry path.
		if _, err := s.repo.ReplaceChatHistory(ctx, projectID, history); err != nil {
			return err
		}
		return onDelta(delta)
	})
	if streamErr != nil {
		s.logger.Warn("conversation turn ended with error",
			zap.String("project_id", projectID),
			zap.Bool("partial_response", appended),
			zap.Error(streamErr))
		return nil, streamErr
	}
	if !appended {
		// Stream finished without producing any text; nothing to persist.
		return &assistantMsg, nil
	}

	s.logger.Info("conversation turn completed",
		zap.String("project_id", projectID),
		zap.Int("history_len", len(history)))

	return &assistantMsg, nil
}
