package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/flash-convert-go/internal/app"
	"go.uber.org/zap"
)

// VideoHandler handles video metadata HTTP requests
type VideoHandler struct {
	resolver *app.VideoInfoResolver
	logger   *zap.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(resolver *app.VideoInfoResolver, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// VideoInfoRequest represents a request to resolve video metadata
type VideoInfoRequest struct {
	URL string `json:"url" binding:"required"`
}

// GetVideoInfo handles POST /api/v1/video-info
func (h *VideoHandler) GetVideoInfo(c *gin.Context) {
	var req VideoInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info := h.resolver.GetVideoInfo(c.Request.Context(), req.URL)
	if info == nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not resolve video info"})
		return
	}

	c.JSON(http.StatusOK, info)
}
