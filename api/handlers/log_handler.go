package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/flash-convert-go/internal/history"
)

// LogHandler exposes the persisted history over HTTP
type LogHandler struct {
	history *history.History
}

// NewLogHandler creates a new log handler
func NewLogHandler(hist *history.History) *LogHandler {
	return &LogHandler{history: hist}
}

// GetLogs handles GET /api/v1/logs
func (h *LogHandler) GetLogs(c *gin.Context) {
	entries := h.history.ReadAll()
	c.JSON(http.StatusOK, gin.H{
		"logs":  entries,
		"count": len(entries),
	})
}

// ClearLogs handles DELETE /api/v1/logs
func (h *LogHandler) ClearLogs(c *gin.Context) {
	h.history.Clear()
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
