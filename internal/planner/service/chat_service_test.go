package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pas-volunteer/planner-backend/config"
	"github.com/pas-volunteer/planner-backend/internal/llm"
	"github.com/pas-volunteer/planner-backend/internal/planner/domain"
	"github.com/pas-volunteer/planner-backend/internal/planner/repository"
	"github.com/pas-volunteer/planner-backend/internal/planner/storage"
)

// fakeLLM implements llm.Client for tests.
type fakeLLM struct {
	completeFn    func(ctx context.Context, req llm.Request) (string, error)
	streamFn      func(ctx context.Context, req llm.Request, onDelta func(string) error) (string, error)
	completeCalls int
	streamCalls   int
	lastRequest   llm.Request
}

func (f *fakeLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.completeCalls++
	f.lastRequest = req
	if f.completeFn != nil {
		return f.completeFn(ctx, req)
	}
	return "", nil
}

func (f *fakeLLM) Stream(ctx context.Context, req llm.Request, onDelta func(string) error) (string, error) {
	f.streamCalls++
	f.lastRequest = req
	if f.streamFn != nil {
		return f.streamFn(ctx, req, onDelta)
	}
	return "", nil
}

func setupChatTest(t *testing.T, fake *fakeLLM) (*ChatService, *repository.ProjectRepository, string) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := repository.NewProjectRepository(storage.NewRedisAdapter(client))
	p, err := repo.Create(context.Background(), domain.ProjectMetadata{
		Name: "2025 Vietnam Trip", Country: "Vietnam",
		TargetAge: "Elementary (8-12)", Theme: "English Education",
	})
	require.NoError(t, err)

	return NewChatService(repo, fake, zap.NewNop()), repo, p.ID
}

func TestSubmitStreamsAndPersists(t *testing.T) {
	fake := &fakeLLM{
		streamFn: func(ctx context.Context, req llm.Request, onDelta func(string) error) (string, error) {
			require.NoError(t, onDelta("안녕"))
			require.NoError(t, onDelta("하세요"))
			return "안녕하세요", nil
		},
	}
	svc, repo, projectID := setupChatTest(t, fake)

	var deltas []string
	assistantMsg, err := svc.Submit(context.Background(), projectID, "여행 계획을 도와줘", func(delta string) error {
		deltas = append(deltas, delta)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"안녕", "하세요"}, deltas)
	assert.Equal(t, domain.RoleAssistant, assistantMsg.Role)
	assert.Equal(t, "안녕하세요", assistantMsg.Content)
	assert.Equal(t, StateIdle, svc.State(projectID))

	p, err := repo.Get(context.Background(), projectID)
	require.NoError(t, err)
	require.Len(t, p.ChatHistory, 2)
	assert.Equal(t, domain.RoleUser, p.ChatHistory[0].Role)
	assert.Equal(t, "여행 계획을 도와줘", p.ChatHistory[0].Content)
	assert.Equal(t, domain.RoleAssistant, p.ChatHistory[1].Role)
	assert.Equal(t, "안녕하세요", p.ChatHistory[1].Content)

	// the full prior history plus the system prompt went to the service
	assert.Equal(t, chatSystemPrompt, fake.lastRequest.SystemPrompt)
	require.Len(t, fake.lastRequest.Messages, 1)
	assert.Equal(t, "여행 계획을 도와줘", fake.lastRequest.Messages[0].Content)
}

func TestSubmitResyncsMidStream(t *testing.T) {
	var svc *ChatService
	var repo *repository.ProjectRepository
	var projectID string

	fake := &fakeLLM{
		streamFn: func(ctx context.Context, req llm.Request, onDelta func(string) error) (string, error) {
			require.NoError(t, onDelta("partial"))

			// mid-stream the partial assistant text is already persisted
			p, err := repo.Get(context.Background(), projectID)
			require.NoError(t, err)
			require.Len(t, p.ChatHistory, 2)
			assert.Equal(t, "partial", p.ChatHistory[1].Content)

			return "", errors.New("connection reset")
		},
	}
	svc, repo, projectID = setupChatTest(t, fake)

	_, err := svc.Submit(context.Background(), projectID, "hello", func(string) error { return nil })
	require.Error(t, err)
	assert.Equal(t, StateIdle, svc.State(projectID))

	// mid-stream progress survives the failed turn
	p, err := repo.Get(context.Background(), projectID)
	require.NoError(t, err)
	require.Len(t, p.ChatHistory, 2)
	assert.Equal(t, "partial", p.ChatHistory[1].Content)
}

func TestSubmitEmptyMessage(t *testing.T) {
	fake := &fakeLLM{}
	svc, repo, projectID := setupChatTest(t, fake)

	_, err := svc.Submit(context.Background(), projectID, "   ", func(string) error { return nil })
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	assert.Zero(t, fake.streamCalls)

	p, err := repo.Get(context.Background(), projectID)
	require.NoError(t, err)
	assert.Empty(t, p.ChatHistory)
}

func TestSubmitUnknownProject(t *testing.T) {
	fake := &fakeLLM{}
	svc, _, _ := setupChatTest(t, fake)

	_, err := svc.Submit(context.Background(), "no-such-id", "hello", func(string) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, fake.streamCalls)
}

func TestSubmitBoundsTurnByTimeout(t *testing.T) {
	fake := &fakeLLM{
		streamFn: func(ctx context.Context, req llm.Request, onDelta func(string) error) (string, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok, "stream context must carry the turn deadline")
			assert.WithinDuration(t, time.Now().Add(config.ChatTurnTimeout), deadline, time.Second)
			return "ok", onDelta("ok")
		},
	}
	svc, _, projectID := setupChatTest(t, fake)

	_, err := svc.Submit(context.Background(), projectID, "hello", func(string) error { return nil })
	require.NoError(t, err)
	require.Equal(t, 1, fake.streamCalls)
}

func TestSubmitCanceledTurnReturnsToIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fake := &fakeLLM{
		streamFn: func(sctx context.Context, req llm.Request, onDelta func(string) error) (string, error) {
			cancel()
			<-sctx.Done()
			return "", sctx.Err()
		},
	}
	svc, repo, projectID := setupChatTest(t, fake)

	_, err := svc.Submit(ctx, projectID, "hello", func(string) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateIdle, svc.State(projectID))

	// the user message was persisted before the stream started
	p, err := repo.Get(context.Background(), projectID)
	require.NoError(t, err)
	require.Len(t, p.ChatHistory, 1)
	assert.Equal(t, domain.RoleUser, p.ChatHistory[0].Role)
	assert.Equal(t, "hello", p.ChatHistory[0].Content)
}

func TestSubmitSendsFullHistory(t *testing.T) {
	fake := &fakeLLM{
		streamFn: func(ctx context.Context, req llm.Request, onDelta func(string) error) (string, error) {
			return "ok", onDelta("ok")
		},
	}
	svc, _, projectID := setupChatTest(t, fake)

	_, err := svc.Submit(context.Background(), projectID, "first", func(string) error { return nil })
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), projectID, "second", func(string) error { return nil })
	require.NoError(t, err)

	// second turn carries user+assistant+user
	require.Len(t, fake.lastRequest.Messages, 3)
	assert.Equal(t, domain.RoleUser, fake.lastRequest.Messages[0].Role)
	assert.Equal(t, domain.RoleAssistant, fake.lastRequest.Messages[1].Role)
	assert.Equal(t, "second", fake.lastRequest.Messages[2].Content)
}
