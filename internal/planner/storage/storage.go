// Package storage persists the project list and the current-selection id as
// opaque serialized values under two fixed keys. The layout matches what the
// web client historically kept in browser storage: a JSON array of projects
// and a single plain id string. There is no schema version tag; malformed
// stored data surfaces as a deserialization error to the caller.
package storage

import (
	"context"

	"github.com/pas-volunteer/planner-backend/internal/planner/domain"
)

const (
	projectsKey       = "pas:projects"
	currentProjectKey = "pas:current_project"
)

// Adapter is the key-value boundary beneath the project repository.
type Adapter interface {
	// SaveProjects serializes and writes the full project list.
	SaveProjects(ctx context.Context, projects []domain.Project) error
	// LoadProjects reads and deserializes the full list. An absent key
	// yields an empty list, not an error.
	LoadProjects(ctx context.Context) ([]domain.Project, error)
	// SaveCurrentProject writes the current-selection id.
	SaveCurrentProject(ctx context.Context, projectID string) error
	// ClearCurrentProject removes the current-selection key entirely.
	ClearCurrentProject(ctx context.Context) error
	// LoadCurrentProjectID reads the current-selection id. ok is false when
	// the key is absent.
	LoadCurrentProjectID(ctx context.Context) (id string, ok bool, err error)
	// Close releases the underlying connection.
	Close() error
}
