package app

import (
	"context"

	"github.com/yourusername/flash-convert-go/internal/bridge"
	"github.com/yourusername/flash-convert-go/internal/domain"
	"github.com/yourusername/flash-convert-go/internal/history"
	"go.uber.org/zap"
)

// Engine wires the capability provider, the history store and the
// workflow components into one facade consumed by the CLI and the
// HTTP API.
type Engine struct {
	Bridge       domain.Bridge
	History      *history.History
	Permissions  *PermissionNegotiator
	Directories  *DirectoryManager
	Binaries     *BinaryProvisioner
	Resolver     *VideoInfoResolver
	Orchestrator *DownloadOrchestrator
	Converter    *ConversionAdapter

	config *domain.Config
	logger *zap.Logger
}

// NewEngine assembles an engine on top of b and kv
func NewEngine(config *domain.Config, b domain.Bridge, kv history.KV, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	hist := history.New(kv, config.History.MaxEntries, logger)
	var notifier Notifier
	if config.Notification.Enabled {
		notifier = bridge.NewNotificationService(&config.Notification, logger)
	}

	permissions := NewPermissionNegotiator(b, hist, logger)
	dirs := NewDirectoryManager(b, hist, kv, permissions, &config.Download, logger)
	binaries := NewBinaryProvisioner(b, hist, &config.Binaries, logger)
	resolver := NewVideoInfoResolver(b, hist, logger)
	orchestrator := NewDownloadOrchestrator(b, hist, permissions, dirs, resolver, notifier, &config.Download, logger)
	converter := NewConversionAdapter(b, hist, permissions, notifier, &config.Download, logger)

	return &Engine{
		Bridge:       b,
		History:      hist,
		Permissions:  permissions,
		Directories:  dirs,
		Binaries:     binaries,
		Resolver:     resolver,
		Orchestrator: orchestrator,
		Converter:    converter,
		config:       config,
		logger:       logger,
	}
}

// NewBridge constructs the capability provider selected by config
func NewBridge(config *domain.Config, logger *zap.Logger) domain.Bridge {
	if config.Bridge.Mode == "demo" {
		return bridge.NewDemo()
	}
	return bridge.NewHost(&config.Bridge, logger)
}

// Config returns the engine's configuration
func (e *Engine) Config() *domain.Config {
	return e.config
}

// Setup runs the first-use provisioning chain: storage permission,
// default directories and the external binaries.
func (e *Engine) Setup(ctx context.Context) bool {
	granted := e.Permissions.EnsureStoragePermission(ctx)
	e.Directories.InitializeDefaults(ctx)
	installed := e.Binaries.EnsureInstalled(ctx)
	return granted && installed
}
