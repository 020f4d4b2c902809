package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yourusername/flash-convert-go/internal/app"
	"github.com/yourusername/flash-convert-go/internal/domain"
	"go.uber.org/zap"
)

// DownloadHandler handles download-related HTTP requests
type DownloadHandler struct {
	orchestrator *app.DownloadOrchestrator
	hub          *ProgressHub
	logger       *zap.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(orchestrator *app.DownloadOrchestrator, hub *ProgressHub, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		orchestrator: orchestrator,
		hub:          hub,
		logger:       logger,
	}
}

// AddDownloadRequest represents a request to start a download
type AddDownloadRequest struct {
	URL        string `json:"url" binding:"required"`
	Format     string `json:"format,omitempty"`
	OutputPath string `json:"outputPath,omitempty"`
	Quality    string `json:"quality,omitempty"`
	IsAudio    bool   `json:"isAudio,omitempty"`
}

// AddDownload handles POST /api/v1/downloads. The download runs in
// the background; progress reaches clients over the WebSocket hub.
func (h *DownloadHandler) AddDownload(c *gin.Context) {
	var req AddDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := uuid.New().String()
	opts := domain.DownloadOptions{
		URL:        req.URL,
		Format:     req.Format,
		OutputPath: req.OutputPath,
		Quality:    req.Quality,
		IsAudio:    req.IsAudio,
	}

	go func() {
		ok := h.orchestrator.DownloadVideo(context.Background(), opts, func(progress float64) {
			h.hub.Broadcast(domain.ProgressEvent{RunID: id, Progress: progress})
		})
		if !ok {
			h.logger.Warn("Download failed", zap.String("id", id), zap.String("url", req.URL))
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"id": id, "status": "started"})
}
