package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/flash-convert-go/internal/domain"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	bridge domain.Bridge
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(bridge domain.Bridge) *HealthHandler {
	return &HealthHandler{bridge: bridge}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status       string          `json:"status"`
	Version      string          `json:"version"`
	Platform     string          `json:"platform"`
	Native       bool            `json:"native"`
	Capabilities map[string]bool `json:"capabilities"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	capabilities := make(map[string]bool)
	for _, name := range []string{
		domain.CapYtDlp,
		domain.CapFFmpeg,
		domain.CapPermissions,
		domain.CapFilesystem,
		domain.CapBinaryInstaller,
		domain.CapShell,
		domain.CapDevice,
	} {
		capabilities[name] = h.bridge.Available(name)
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:       "ok",
		Version:      "1.0.0",
		Platform:     h.bridge.Platform(),
		Native:       h.bridge.Native(),
		Capabilities: capabilities,
	})
}

// Ready handles GET /ready. Demo mode is a degraded but valid state,
// so readiness only requires the download capability on native hosts.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.bridge.Native() && !h.bridge.Available(domain.CapYtDlp) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "download capability not available",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
