package http

import (
	"github.com/pas-volunteer/planner-backend/internal/planner/service"
)

// Handler bundles the dependencies for planner HTTP endpoints.
type Handler struct {
	projects  *service.ProjectService
	chat      *service.ChatService
	documents *service.DocumentService
}

func New(projects *service.ProjectService, chat *service.ChatService, documents *service.DocumentService) *Handler {
	return &Handler{
		projects:  projects,
		chat:      chat,
		documents: documents,
	}
}
