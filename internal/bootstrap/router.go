package bootstrap

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/pas-volunteer/planner-backend/internal/api/http"
	"github.com/pas-volunteer/planner-backend/internal/api/http/middleware"
	"github.com/pas-volunteer/planner-backend/internal/casestudies"
	"github.com/pas-volunteer/planner-backend/internal/llm"
	plannerhttp "github.com/pas-volunteer/planner-backend/internal/planner/http"
	"github.com/pas-volunteer/planner-backend/internal/planner/repository"
	"github.com/pas-volunteer/planner-backend/internal/planner/service"
	"github.com/pas-volunteer/planner-backend/internal/planner/storage"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Store       storage.Adapter
	LLM         llm.Client
	Logger      *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, func(ctx context.Context) error {
		_, _, err := dep.Store.LoadCurrentProjectID(ctx)
		return err
	})
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestID(dep.Logger))

	repo := repository.NewProjectRepository(dep.Store)
	projectService := service.NewProjectService(repo)
	chatService := service.NewChatService(repo, dep.LLM, dep.Logger)
	documentService := service.NewDocumentService(repo, dep.LLM, dep.Logger)

	plannerHandler := plannerhttp.New(projectService, chatService, documentService)
	plannerHandler.Register(api)

	casesGroup := api.Group("/case-studies")
	casestudies.NewHandler().Register(casesGroup)

	return r
}
