package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/flash-convert-go/internal/domain"
	"github.com/yourusername/flash-convert-go/internal/history"
	"go.uber.org/zap"
)

// ConversionAdapter drives one media conversion through the ffmpeg
// capability. Same contract as the download workflow: one storage
// permission check, progress fan-out with checkpoint logging, boolean
// result with the detail in history.
type ConversionAdapter struct {
	bridge      domain.Bridge
	history     *history.History
	permissions *PermissionNegotiator
	notifier    Notifier
	config      *domain.DownloadConfig
	logger      *zap.Logger
}

// NewConversionAdapter creates a conversion adapter. notifier may be
// nil.
func NewConversionAdapter(
	b domain.Bridge,
	hist *history.History,
	permissions *PermissionNegotiator,
	notifier Notifier,
	config *domain.DownloadConfig,
	logger *zap.Logger,
) *ConversionAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversionAdapter{
		bridge:      b,
		history:     hist,
		permissions: permissions,
		notifier:    notifier,
		config:      config,
		logger:      logger,
	}
}

// ConvertMedia converts opts.InputPath into opts.Format, reporting
// progress through onProgress (which may be nil).
func (a *ConversionAdapter) ConvertMedia(ctx context.Context, opts domain.ConvertOptions, onProgress func(float64)) (ok bool) {
	runID := uuid.New().String()
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Conversion workflow panicked", zap.String("runId", runID), zap.Any("panic", r))
			a.history.Append(fmt.Sprintf("Unexpected error during conversion: %v", r), domain.SeverityError)
			ok = false
		}
	}()

	a.history.Append(fmt.Sprintf("Starting conversion to %s: %s", opts.Format, opts.InputPath), domain.SeverityInfo)

	if !a.permissions.EnsureStoragePermission(ctx) {
		a.history.Append("Conversion aborted: storage permission denied", domain.SeverityError)
		a.notify("Permission required", "Storage permission is required to convert files")
		return false
	}

	plugin, havePlugin := a.bridge.FFmpeg()
	if !havePlugin {
		return a.simulateConversion(ctx, runID, opts, started, onProgress)
	}

	handle, err := plugin.AddConversionListener(a.progressListener(onProgress))
	if err != nil {
		a.history.Append(fmt.Sprintf("Error registering progress listener: %v", err), domain.SeverityError)
		return false
	}
	defer func() {
		if err := handle.Remove(); err != nil {
			a.logger.Warn("Failed to remove progress listener", zap.Error(err))
		}
	}()

	result, err := plugin.Convert(ctx, opts)
	if err != nil {
		a.history.Append(fmt.Sprintf("Conversion failed: %v", err), domain.SeverityError)
		a.notify("Conversion failed", err.Error())
		return false
	}
	if !result.Success {
		a.history.Append("Conversion failed: "+result.Error, domain.SeverityError)
		a.notify("Conversion failed", result.Error)
		return false
	}

	elapsed := time.Since(started).Seconds()
	a.history.Append(fmt.Sprintf("Conversion completed in %.1f seconds: %s", elapsed, result.Path), domain.SeveritySuccess)
	a.notify("Conversion complete", result.Path)
	return true
}

func (a *ConversionAdapter) progressListener(onProgress func(float64)) domain.ProgressListener {
	var lastCheckpoint float64
	return func(ev domain.ProgressEvent) {
		// Negative progress marks a message-only event
		if onProgress != nil && ev.Progress >= 0 {
			onProgress(ev.Progress)
		}
		if ev.Message != "" {
			a.history.Append(ev.Message, domain.SeverityInfo)
		}
		for _, cp := range progressCheckpoints {
			if ev.Progress >= cp && lastCheckpoint < cp {
				lastCheckpoint = cp
				a.history.Append(fmt.Sprintf("Conversion progress: %.0f%%", cp), domain.SeverityInfo)
			}
		}
	}
}

func (a *ConversionAdapter) simulateConversion(ctx context.Context, runID string, opts domain.ConvertOptions, started time.Time, onProgress func(float64)) bool {
	a.history.Append("Running in demo mode, simulating conversion", domain.SeverityWarning)

	listener := a.progressListener(onProgress)
	task := newProgressTask(demoConversionStep, a.config.DemoStepInterval)
	completed := task.Run(ctx, func(progress float64) {
		listener(domain.ProgressEvent{RunID: runID, Progress: progress})
	})
	if !completed {
		a.history.Append("Demo conversion interrupted", domain.SeverityWarning)
		return false
	}

	elapsed := time.Since(started).Seconds()
	a.history.Append(fmt.Sprintf("Conversion completed in %.1f seconds: %s", elapsed, opts.OutputPath), domain.SeveritySuccess)
	return true
}

func (a *ConversionAdapter) notify(title, message string) {
	if a.notifier != nil {
		a.notifier.Notify(title, message)
	}
}
