package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pas-volunteer/planner-backend/internal/planner/domain"
)

// RedisAdapter stores the serialized project list and the selection id in
// Redis under the fixed keys. Values have no TTL; the store is the system of
// record for the session.
type RedisAdapter struct {
	client *redis.Client
}

// NewRedisAdapter wraps an already-connected client.
func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (a *RedisAdapter) SaveProjects(ctx context.Context, projects []domain.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("marshal projects: %w", err)
	}
	if err := a.client.Set(ctx, projectsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("save projects: %w", err)
	}
	return nil
}

func (a *RedisAdapter) LoadProjects(ctx context.Context) ([]domain.Project, error) {
	data, err := a.client.Get(ctx, projectsKey).Result()
	if errors.Is(err, redis.Nil) {
		return []domain.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	var projects []domain.Project
	if err := json.Unmarshal([]byte(data), &projects); err != nil {
		return nil, fmt.Errorf("unmarshal projects: %w", err)
	}
	return projects, nil
}

func (a *RedisAdapter) SaveCurrentProject(ctx context.Context, projectID string) error {
	if err := a.client.Set(ctx, currentProjectKey, projectID, 0).Err(); err != nil {
		return fmt.Errorf("save current project: %w", err)
	}
	return nil
}

func (a *RedisAdapter) ClearCurrentProject(ctx context.Context) error {
	if err := a.client.Del(ctx, currentProjectKey).Err(); err != nil {
		return fmt.Errorf("clear current project: %w", err)
	}
	return nil
}

func (a *RedisAdapter) LoadCurrentProjectID(ctx context.Context) (string, bool, error) {
	id, err := a.client.Get(ctx, currentProjectKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load current project: %w", err)
	}
	return id, true, nil
}

func (a *RedisAdapter) Close() error {
	return a.client.Close()
}
