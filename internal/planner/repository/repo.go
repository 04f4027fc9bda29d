// Package repository holds the single source of truth for the project list
// during a session. Every mutation re-reads the full persisted list, applies
// the change to the one matching project, and rewrites the full list through
// the storage adapter. That discipline is last-writer-wins at whole-list
// granularity; two writers can clobber each other, which is the accepted
// contract inherited from the persisted layout. The mutex below only keeps
// in-process callers race-free, it does not change that contract.
package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pas-volunteer/planner-backend/internal/planner/domain"
	"github.com/pas-volunteer/planner-backend/internal/planner/storage"
)

// ProjectRepository provides persistence operations for projects and the
// current selection.
type ProjectRepository struct {
	store storage.Adapter
	mu    sync.Mutex
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(store storage.Adapter) *ProjectRepository {
	return &ProjectRepository{store: store}
}

// Create appends a new project with empty nested collections, persists the
// list, and marks the project as the current selection.
func (r *ProjectRepository) Create(ctx context.Context, meta domain.ProjectMetadata) (*domain.Project, error) {
	p, err := domain.NewProject(meta)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.store.LoadProjects(ctx)
	if err != nil {
		return nil, err
	}
	projects = append(projects, p)
	if err := r.store.SaveProjects(ctx, projects); err != nil {
		return nil, err
	}
	if err := r.store.SaveCurrentProject(ctx, p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all persisted projects in stored order.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	return r.store.LoadProjects(ctx)
}

// Get returns the project with the given id.
func (r *ProjectRepository) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	projects, err := r.store.LoadProjects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == projectID {
			return &projects[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Select marks the given project as the current selection.
func (r *ProjectRepository) Select(ctx context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.get(ctx, projectID); err != nil {
		return err
	}
	return r.store.SaveCurrentProject(ctx, projectID)
}

// ClearSelection removes the current selection.
func (r *ProjectRepository) ClearSelection(ctx context.Context) error {
	return r.store.ClearCurrentProject(ctx)
}

// CurrentProjectID returns the current selection, if any.
func (r *ProjectRepository) CurrentProjectID(ctx context.Context) (string, bool, error) {
	return r.store.LoadCurrentProjectID(ctx)
}

// Delete removes the project from the list. If it was the current selection
// the selection is cleared.
func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.store.LoadProjects(ctx)
	if err != nil {
		return err
	}

	found := false
	remaining := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if p.ID == projectID {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return domain.ErrNotFound
	}

	if err := r.store.SaveProjects(ctx, remaining); err != nil {
		return err
	}

	currentID, ok, err := r.store.LoadCurrentProjectID(ctx)
	if err != nil {
		return err
	}
	if ok && currentID == projectID {
		return r.store.ClearCurrentProject(ctx)
	}
	return nil
}

// SetStatus updates the project's lifecycle status. No transition rules are
// enforced.
func (r *ProjectRepository) SetStatus(ctx context.Context, projectID, status string) (*domain.Project, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	return r.mutate(ctx, projectID, func(p *domain.Project) error {
		p.Status = status
		return nil
	})
}

// AppendChatMessage appends one message to the project's ordered history.
func (r *ProjectRepository) AppendChatMessage(ctx context.Context, projectID string, msg domain.ChatMessage) (*domain.Project, error) {
	return r.mutate(ctx, projectID, func(p *domain.Project) error {
		p.ChatHistory = append(p.ChatHistory, msg)
		return nil
	})
}

// ReplaceChatHistory overwrites the project's full ordered history. Used by
// the conversation session to resynchronize after every streaming delta.
func (r *ProjectRepository) ReplaceChatHistory(ctx context.Context, projectID string, history []domain.ChatMessage) (*domain.Project, error) {
	return r.mutate(ctx, projectID, func(p *domain.Project) error {
		p.ChatHistory = append([]domain.ChatMessage{}, history...)
		return nil
	})
}

// AppendDocument appends a generated artifact. Prior artifacts of the same
// type are kept.
func (r *ProjectRepository) AppendDocument(ctx context.Context, projectID string, doc domain.ProjectDocument) (*domain.Project, error) {
	return r.mutate(ctx, projectID, func(p *domain.Project) error {
		p.Documents = append(p.Documents, doc)
		return nil
	})
}

// AddTeamMember appends a roster entry. Duplicate emails are allowed.
func (r *ProjectRepository) AddTeamMember(ctx context.Context, projectID string, member domain.TeamMember) (*domain.Project, error) {
	return r.mutate(ctx, projectID, func(p *domain.Project) error {
		p.TeamMembers = append(p.TeamMembers, member)
		return nil
	})
}

// RemoveTeamMember removes the roster entry with the given id.
func (r *ProjectRepository) RemoveTeamMember(ctx context.Context, projectID, memberID string) (*domain.Project, error) {
	return r.mutate(ctx, projectID, func(p *domain.Project) error {
		for i, m := range p.TeamMembers {
			if m.ID == memberID {
				p.TeamMembers = append(p.TeamMembers[:i], p.TeamMembers[i+1:]...)
				return nil
			}
		}
		return domain.ErrMemberNotFound
	})
}

// mutate applies fn to the one matching project inside a full-list
// read/rewrite cycle and refreshes the project's updatedAt.
func (r *ProjectRepository) mutate(ctx context.Context, projectID string, fn func(*domain.Project) error) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.store.LoadProjects(ctx)
	if err != nil {
		return nil, err
	}

	for i := range projects {
		if projects[i].ID != projectID {
			continue
		}
		if err := fn(&projects[i]); err != nil {
			return nil, err
		}
		projects[i].UpdatedAt = time.Now().UTC()
		if err := r.store.SaveProjects(ctx, projects); err != nil {
			return nil, fmt.Errorf("persist project list: %w", err)
		}
		updated := projects[i]
		return &updated, nil
	}

	return nil, domain.ErrNotFound
}

func (r *ProjectRepository) get(ctx context.Context, projectID string) (*domain.Project, error) {
	projects, err := r.store.LoadProjects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == projectID {
			return &projects[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
