package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/flash-convert-go/internal/app"
)

// DirectoryHandler handles storage directory HTTP requests
type DirectoryHandler struct {
	dirs *app.DirectoryManager
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(dirs *app.DirectoryManager) *DirectoryHandler {
	return &DirectoryHandler{dirs: dirs}
}

// ListDirectories handles GET /api/v1/directories
func (h *DirectoryHandler) ListDirectories(c *gin.Context) {
	dirs := h.dirs.ListCandidateDirectories(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"directories": dirs})
}

// CreateDirectoryRequest represents a request to create a directory
type CreateDirectoryRequest struct {
	Path string `json:"path" binding:"required"`
}

// CreateDirectory handles POST /api/v1/directories
func (h *DirectoryHandler) CreateDirectory(c *gin.Context) {
	var req CreateDirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.dirs.EnsureDirectory(c.Request.Context(), req.Path) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create directory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": req.Path, "status": "created"})
}
