package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pas-volunteer/planner-backend/config"
	"github.com/pas-volunteer/planner-backend/internal/llm"
	"github.com/pas-volunteer/planner-backend/internal/planner/domain"
	"github.com/pas-volunteer/planner-backend/internal/planner/repository"
)

// DocumentService generates planning artifacts from project metadata and the
// conversation so far. Generation is deliberately unguarded: two concurrent
// calls for the same project and type both complete and both append.
type DocumentService struct {
	repo   *repository.ProjectRepository
	llm    llm.Client
	logger *zap.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(repo *repository.ProjectRepository, client llm.Client, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		repo:   repo,
		llm:    client,
		logger: logger.Named("documents"),
	}
}

// Generate builds the type-specific prompt, runs one non-streaming
// completion, and appends the result as a new document. Unknown types are
// rejected before any completion call. No retry on failure; no timeout
// beyond the completion service's own limits.
func (s *DocumentService) Generate(ctx context.Context, projectID, docType string) (*domain.ProjectDocument, error) {
	title, ok := DocumentTitle(docType)
	if !ok {
		return nil, domain.ErrUnknownDocumentType
	}

	p, err := s.repo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	prompt, ok := buildDocumentPrompt(docType, p)
	if !ok {
		return nil, domain.ErrUnknownDocumentType
	}

	content, err := s.llm.Complete(ctx, llm.Request{
		Messages:    []llm.Message{{Role: domain.RoleUser, Content: prompt}},
		MaxTokens:   config.DocumentMaxTokens,
		Temperature: config.DocumentTemp,
	})
	if err != nil {
		s.logger.Error("document generation failed",
			zap.String("project_id", projectID),
			zap.String("type", docType),
			zap.Error(err))
		return nil, err
	}

	doc := domain.ProjectDocument{
		ID:          uuid.New().String(),
		Type:        docType,
		Title:       title,
		Content:     content,
		GeneratedAt: time.Now().UTC(),
	}
	if _, err := s.repo.AppendDocument(ctx, projectID, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document generated",
		zap.String("project_id", projectID),
		zap.String("type", docType),
		zap.Int("content_length", len(content)))

	return &doc, nil
}

// List returns all generated documents for a project, oldest first.
func (s *DocumentService) List(ctx context.Context, projectID string) ([]domain.ProjectDocument, error) {
	p, err := s.repo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return p.Documents, nil
}

// Get returns one document by id.
func (s *DocumentService) Get(ctx context.Context, projectID, docID string) (*domain.ProjectDocument, error) {
	p, err := s.repo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range p.Documents {
		if p.Documents[i].ID == docID {
			return &p.Documents[i], nil
		}
	}
	return nil, domain.ErrDocumentNotFound
}

// Latest returns the most recent document per type, chosen at read time; the
// stored history stays append-only.
func (s *DocumentService) Latest(ctx context.Context, projectID string) (map[string]domain.ProjectDocument, error) {
	docs, err := s.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	latest := make(map[string]domain.ProjectDocument)
	for _, doc := range docs {
		latest[doc.Type] = doc
	}
	return latest, nil
}
