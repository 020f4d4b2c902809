package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/flash-convert-go/internal/domain"
	"github.com/yourusername/flash-convert-go/internal/history"
	"go.uber.org/zap"
)

// DirectoryManager prepares output directories. Creation is
// idempotent: an "already exists" answer from the host counts as
// success. Failures are logged but never thrown.
type DirectoryManager struct {
	bridge      domain.Bridge
	history     *history.History
	flags       history.KV
	permissions *PermissionNegotiator
	config      *domain.DownloadConfig
	logger      *zap.Logger
}

// NewDirectoryManager creates a directory manager. flags is the store
// carrying the first-run bootstrap marker.
func NewDirectoryManager(
	bridge domain.Bridge,
	hist *history.History,
	flags history.KV,
	permissions *PermissionNegotiator,
	config *domain.DownloadConfig,
	logger *zap.Logger,
) *DirectoryManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryManager{
		bridge:      bridge,
		history:     hist,
		flags:       flags,
		permissions: permissions,
		config:      config,
		logger:      logger,
	}
}

// EnsureDirectory creates path recursively, treating "already exists"
// as success.
func (m *DirectoryManager) EnsureDirectory(ctx context.Context, path string) bool {
	if !m.bridge.Native() {
		m.history.Append("Browser environment, skipping directory creation", domain.SeverityInfo)
		return true
	}

	fsPlugin, ok := m.bridge.Filesystem()
	if !ok {
		m.history.Append("Filesystem capability not available, skipping directory creation", domain.SeverityWarning)
		return true
	}

	m.history.Append("Creating directory: "+path, domain.SeverityInfo)

	err := fsPlugin.Mkdir(ctx, path, true)
	if err == nil {
		m.history.Append("Successfully created directory: "+path, domain.SeveritySuccess)
		return true
	}
	if isAlreadyExists(err) {
		m.history.Append("Directory already exists: "+path, domain.SeverityInfo)
		return true
	}

	m.history.Append(fmt.Sprintf("Error creating directory %s: %v", path, err), domain.SeverityError)
	return false
}

// ListCandidateDirectories enumerates storage roots the user can pick
// an output location from. The result is never empty; enumeration
// failures fall back to the conventional platform directories.
func (m *DirectoryManager) ListCandidateDirectories(ctx context.Context) []string {
	if !m.bridge.Native() {
		return []string{"Downloads", "Movies", "Music"}
	}

	fsPlugin, ok := m.bridge.Filesystem()
	if !ok {
		m.history.Append("Filesystem capability not available, returning default directories", domain.SeverityWarning)
		return m.fallbackDirectories()
	}

	root := "/"
	if m.bridge.Platform() == "android" {
		root = "/storage/emulated/0"
	}

	names, err := fsPlugin.Readdir(ctx, root)
	if err != nil || len(names) == 0 {
		m.history.Append("Could not list storage directories, returning default options", domain.SeverityWarning)
		return m.fallbackDirectories()
	}

	m.history.Append(fmt.Sprintf("Found %d directories", len(names)), domain.SeverityInfo)
	dirs := make([]string, 0, len(names))
	for _, name := range names {
		dirs = append(dirs, filepath.Join(root, name))
	}
	return dirs
}

func (m *DirectoryManager) fallbackDirectories() []string {
	if m.bridge.Platform() == "android" {
		return []string{
			"/storage/emulated/0/Download",
			"/storage/emulated/0/Music",
			"/storage/emulated/0/Movies",
			"/storage/emulated/0/DCIM",
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "/"
	}
	return []string{
		filepath.Join(home, "Downloads"),
		filepath.Join(home, "Music"),
		filepath.Join(home, "Movies"),
	}
}

// InitializeDefaults performs the first-run directory bootstrap: once
// per install it negotiates storage permission and creates the default
// audio and video output directories. The marker flag makes it
// idempotent across restarts.
func (m *DirectoryManager) InitializeDefaults(ctx context.Context) {
	if !m.bridge.Native() {
		return
	}

	if _, done, err := m.flags.Get(history.DirsInitializedKey); err == nil && done {
		return
	}

	m.history.Append("Initializing default directories for first app launch", domain.SeverityInfo)

	if !m.permissions.EnsureStoragePermission(ctx) {
		m.history.Append("Could not initialize directories: permission denied", domain.SeverityWarning)
		return
	}

	m.EnsureDirectory(ctx, m.config.AudioDir)
	m.EnsureDirectory(ctx, m.config.VideoDir)

	if err := m.flags.Set(history.DirsInitializedKey, []byte("true")); err != nil {
		m.logger.Error("Failed to persist directory bootstrap flag", zap.Error(err))
		return
	}
	m.history.Append("Default directories successfully initialized", domain.SeveritySuccess)
}

// isAlreadyExists matches the heterogeneous "directory exists" errors
// the host filesystems report.
func isAlreadyExists(err error) bool {
	if errors.Is(err, fs.ErrExist) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "exists") || strings.Contains(msg, "EEXIST")
}
