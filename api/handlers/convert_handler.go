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

// ConvertHandler handles media conversion HTTP requests
type ConvertHandler struct {
	converter *app.ConversionAdapter
	hub       *ProgressHub
	logger    *zap.Logger
}

// NewConvertHandler creates a new convert handler
func NewConvertHandler(converter *app.ConversionAdapter, hub *ProgressHub, logger *zap.Logger) *ConvertHandler {
	return &ConvertHandler{
		converter: converter,
		hub:       hub,
		logger:    logger,
	}
}

// AddConversionRequest represents a request to start a conversion
type AddConversionRequest struct {
	InputPath  string `json:"inputPath" binding:"required"`
	OutputPath string `json:"outputPath" binding:"required"`
	Format     string `json:"format" binding:"required"`
	Quality    string `json:"quality,omitempty"`
}

// AddConversion handles POST /api/v1/conversions
func (h *ConvertHandler) AddConversion(c *gin.Context) {
	var req AddConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := uuid.New().String()
	opts := domain.ConvertOptions{
		InputPath:  req.InputPath,
		OutputPath: req.OutputPath,
		Format:     req.Format,
		Quality:    req.Quality,
	}

	go func() {
		ok := h.converter.ConvertMedia(context.Background(), opts, func(progress float64) {
			h.hub.Broadcast(domain.ProgressEvent{RunID: id, Progress: progress})
		})
		if !ok {
			h.logger.Warn("Conversion failed", zap.String("id", id), zap.String("input", req.InputPath))
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"id": id, "status": "started"})
}
