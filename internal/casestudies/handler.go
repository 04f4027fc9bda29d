package casestudies

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the read-only case study endpoints.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Register attaches case study routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
}

func (h *Handler) list(c *gin.Context) {
	items := Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"ok": true, "case_studies": items})
}
