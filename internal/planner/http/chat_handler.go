package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pas-volunteer/planner-backend/internal/planner/domain"
)

func (h *Handler) chatHistory(c *gin.Context) {
	projectID := c.Param("id")

	history, err := h.chat.History(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"messages": history,
		"state":    h.chat.State(projectID),
	})
}

type chatReq struct {
	Message string `json:"message"`
}

// chatStream runs one conversational turn and streams the assistant's reply
// back as Server-Sent Events. Each text chunk arrives as a "delta" event; the
// stream ends with a "done" event carrying the full assistant message, or an
// "error" event. Closing the connection cancels the in-flight completion.
func (h *Handler) chatStream(c *gin.Context) {
	projectID := c.Param("id")

	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	// Resolve the project before committing to an event stream so a bad id
	// still gets a plain 404.
	if _, err := h.projects.Get(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	assistantMsg, err := h.chat.Submit(c.Request.Context(), projectID, req.Message, func(delta string) error {
		data, _ := json.Marshal(gin.H{"content": delta})
		fmt.Fprintf(c.Writer, "event: delta\ndata: %s\n\n", string(data))
		flusher.Flush()
		return nil
	})
	if err != nil {
		eventData, _ := json.Marshal(gin.H{"error": err.Error()})
		fmt.Fprintf(c.Writer, "event: error\ndata: %s\n\n", string(eventData))
		flusher.Flush()
		return
	}

	doneData, _ := json.Marshal(gin.H{"message": assistantMsg})
	fmt.Fprintf(c.Writer, "event: done\ndata: %s\n\n", string(doneData))
	flusher.Flush()
}
