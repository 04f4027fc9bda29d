package http

import "github.com/gin-gonic/gin"

// Register attaches planner routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.POST("", h.create)
	projects.GET("", h.list)
	projects.GET("/:id", h.get)
	projects.DELETE("/:id", h.delete)
	projects.PUT("/:id/select", h.selectProject)
	projects.PATCH("/:id/status", h.setStatus)

	projects.GET("/:id/chat", h.chatHistory)
	projects.POST("/:id/chat", h.chatStream)

	projects.GET("/:id/documents", h.listDocuments)
	projects.POST("/:id/documents", h.generateDocument)
	projects.GET("/:id/documents/:doc_id/download", h.downloadDocument)

	projects.GET("/:id/team", h.listTeam)
	projects.POST("/:id/team", h.addTeamMember)
	projects.DELETE("/:id/team/:member_id", h.removeTeamMember)

	rg.DELETE("/selection", h.clearSelection)
	rg.GET("/view", h.resolveView)
}
