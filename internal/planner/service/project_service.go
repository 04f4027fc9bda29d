package service

import (
	"context"

	"github.com/pas-volunteer/planner-backend/internal/planner/domain"
	"github.com/pas-volunteer/planner-backend/internal/planner/repository"
)

// ProjectService handles project-related business logic
type ProjectService struct {
	repo *repository.ProjectRepository
}

// NewProjectService creates a new project service
func NewProjectService(repo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		repo: repo,
	}
}

// Create creates a new project and marks it as the current selection
func (s *ProjectService) Create(ctx context.Context, meta domain.ProjectMetadata) (*domain.Project, error) {
	return s.repo.Create(ctx, meta)
}

// List returns all projects
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.repo.List(ctx)
}

// Get returns a single project
func (s *ProjectService) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.repo.Get(ctx, projectID)
}

// Select marks a project as the current selection
func (s *ProjectService) Select(ctx context.Context, projectID string) error {
	return s.repo.Select(ctx, projectID)
}

// ClearSelection removes the current selection
func (s *ProjectService) ClearSelection(ctx context.Context) error {
	return s.repo.ClearSelection(ctx)
}

// Delete removes a project; a matching current selection is cleared
func (s *ProjectService) Delete(ctx context.Context, projectID string) error {
	return s.repo.Delete(ctx, projectID)
}

// SetStatus updates a project's lifecycle status
func (s *ProjectService) SetStatus(ctx context.Context, projectID, status string) (*domain.Project, error) {
	return s.repo.SetStatus(ctx, projectID, status)
}

// AddTeamMember appends a roster entry
func (s *ProjectService) AddTeamMember(ctx context.Context, projectID, name, email, role string) (*domain.Project, error) {
	if name == "" || email == "" {
		return nil, domain.ErrValidation
	}
	return s.repo.AddTeamMember(ctx, projectID, domain.NewTeamMember(name, email, role))
}

// RemoveTeamMember removes a roster entry
func (s *ProjectService) RemoveTeamMember(ctx context.Context, projectID, memberID string) (*domain.Project, error) {
	return s.repo.RemoveTeamMember(ctx, projectID, memberID)
}

// ResolveView decides which view the client should start in. Chat requires a
// stored selection that still resolves against the persisted list; otherwise
// the client starts at the project list.
func (s *ProjectService) ResolveView(ctx context.Context) (view string, currentID string, err error) {
	id, ok, err := s.repo.CurrentProjectID(ctx)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "list", "", nil
	}

	projects, err := s.repo.List(ctx)
	if err != nil {
		return "", "", err
	}
	for _, p := range projects {
		if p.ID == id {
			return "chat", id, nil
		}
	}
	return "list", "", nil
}
