package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pas-volunteer/planner-backend/internal/planner/domain"
)

func (h *Handler) listDocuments(c *gin.Context) {
	docs, err := h.documents.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	latest, err := h.documents.Latest(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "documents": docs, "latest_by_type": latest})
}

type generateReq struct {
	Type string `json:"type"`
}

func (h *Handler) generateDocument(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Type) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	doc, err := h.documents.Generate(c.Request.Context(), c.Param("id"), req.Type)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownDocumentType):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown document type"})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		default:
			// completion-service failure: no retry, no fallback
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "document": doc})
}

// downloadDocument serves a document's content as a markdown attachment named
// after its title.
func (h *Handler) downloadDocument(c *gin.Context) {
	doc, err := h.documents.Get(c.Request.Context(), c.Param("id"), c.Param("doc_id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		case errors.Is(err, domain.ErrDocumentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "document not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	filename := url.PathEscape(doc.Title + ".md")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc.Content))
}
