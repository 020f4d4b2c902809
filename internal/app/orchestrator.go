package app

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/flash-convert-go/internal/domain"
	"github.com/yourusername/flash-convert-go/internal/history"
	"go.uber.org/zap"
)

// Notifier surfaces transient user-facing notifications. Failures are
// the implementation's problem; callers fire and forget.
type Notifier interface {
	Notify(title, message string)
}

// progressCheckpoints are the percentages logged to history while a
// download or conversion is in flight.
var progressCheckpoints = []float64{25, 50, 75, 100}

var unsafeFilenameChars = regexp.MustCompile(`[^\w\s]`)

// SanitizeFilename strips characters that are unsafe in filenames,
// replacing them with underscores. An empty or all-unsafe title
// resolves to "unknown".
func SanitizeFilename(title string) string {
	cleaned := unsafeFilenameChars.ReplaceAllString(title, "_")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || strings.Trim(cleaned, "_ ") == "" {
		return "unknown"
	}
	return cleaned
}

// DownloadOrchestrator drives one download end to end: validation,
// permission negotiation, directory preparation, delegation to the
// extraction capability and progress fan-out. Public entry points
// never panic or return errors; every failure becomes a history entry
// plus a false result.
type DownloadOrchestrator struct {
	bridge      domain.Bridge
	history     *history.History
	permissions *PermissionNegotiator
	dirs        *DirectoryManager
	resolver    *VideoInfoResolver
	notifier    Notifier
	config      *domain.DownloadConfig
	logger      *zap.Logger
}

// NewDownloadOrchestrator creates a download orchestrator. notifier
// may be nil.
func NewDownloadOrchestrator(
	b domain.Bridge,
	hist *history.History,
	permissions *PermissionNegotiator,
	dirs *DirectoryManager,
	resolver *VideoInfoResolver,
	notifier Notifier,
	config *domain.DownloadConfig,
	logger *zap.Logger,
) *DownloadOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DownloadOrchestrator{
		bridge:      b,
		history:     hist,
		permissions: permissions,
		dirs:        dirs,
		resolver:    resolver,
		notifier:    notifier,
		config:      config,
		logger:      logger,
	}
}

// DownloadVideo runs the full download workflow for opts, reporting
// 0-100 progress through onProgress (which may be nil). The return
// value is the only success signal; details land in the history.
func (o *DownloadOrchestrator) DownloadVideo(ctx context.Context, opts domain.DownloadOptions, onProgress func(float64)) (ok bool) {
	runID := uuid.New().String()
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Download workflow panicked", zap.String("runId", runID), zap.Any("panic", r))
			o.history.Append(fmt.Sprintf("Unexpected error during download: %v", r), domain.SeverityError)
			ok = false
		}
	}()

	o.history.Append("Starting download: "+opts.URL, domain.SeverityInfo)
	o.logger.Info("Download requested",
		zap.String("runId", runID),
		zap.String("url", opts.URL),
		zap.Bool("audio", opts.IsAudio))

	plugin, havePlugin := o.bridge.YtDlp()

	// Validating
	if o.bridge.Native() && !havePlugin {
		o.history.Append("Download capability not available on this host", domain.SeverityError)
		o.notify("Download failed", "Download capability not available")
		return false
	}

	// PermissionCheck
	if !o.permissions.EnsureStoragePermission(ctx) {
		o.history.Append("Download aborted: storage permission denied", domain.SeverityError)
		o.notify("Permission required", "Storage permission is required to download files")
		return false
	}

	// DirectoryPrep. A failure is survivable; the native layer may
	// create its own paths.
	outputDir := opts.OutputPath
	if outputDir == "" {
		outputDir = o.config.OutputDir(opts.IsAudio)
	}
	if !o.dirs.EnsureDirectory(ctx, outputDir) {
		o.history.Append("Could not prepare output directory, attempting download anyway", domain.SeverityWarning)
	}

	if !havePlugin {
		return o.simulateDownload(ctx, runID, opts, started, onProgress)
	}

	// Delegating
	filename := o.resolveFilename(ctx, opts.URL)
	o.history.Append("Downloading as: "+filename, domain.SeverityInfo)

	handle, err := plugin.AddDownloadListener(o.progressListener(runID, onProgress))
	if err != nil {
		o.history.Append(fmt.Sprintf("Error registering progress listener: %v", err), domain.SeverityError)
		return false
	}
	defer o.removeListener(handle)

	delegated := opts
	delegated.OutputPath = outputDir
	result, err := plugin.Download(ctx, delegated)
	if err != nil {
		o.history.Append(fmt.Sprintf("Download failed: %v", err), domain.SeverityError)
		o.notify("Download failed", err.Error())
		return false
	}
	if !result.Success {
		o.history.Append("Download failed: "+result.Error, domain.SeverityError)
		o.notify("Download failed", result.Error)
		return false
	}

	elapsed := time.Since(started).Seconds()
	o.history.Append(fmt.Sprintf("Download completed in %.1f seconds: %s", elapsed, result.Path), domain.SeveritySuccess)
	o.notify("Download complete", result.Path)
	return true
}

// resolveFilename derives a filesystem-safe filename from the video
// title. Resolution failures fall back to "unknown" rather than
// aborting the download.
func (o *DownloadOrchestrator) resolveFilename(ctx context.Context, url string) string {
	info := o.resolver.GetVideoInfo(ctx, url)
	if info == nil || info.Title == "" {
		return "unknown"
	}
	return SanitizeFilename(info.Title)
}

// progressListener adapts native progress events to the caller's
// callback and writes the checkpoint entries.
func (o *DownloadOrchestrator) progressListener(runID string, onProgress func(float64)) domain.ProgressListener {
	var lastCheckpoint float64
	return func(ev domain.ProgressEvent) {
		// Negative progress marks a message-only event
		if onProgress != nil && ev.Progress >= 0 {
			onProgress(ev.Progress)
		}
		if ev.Message != "" {
			o.history.Append(ev.Message, domain.SeverityInfo)
		}
		for _, cp := range progressCheckpoints {
			if ev.Progress >= cp && lastCheckpoint < cp {
				lastCheckpoint = cp
				o.history.Append(fmt.Sprintf("Download progress: %.0f%%", cp), domain.SeverityInfo)
			}
		}
	}
}

// removeListener unregisters handle. Removal errors are logged and
// swallowed so they can never mask the primary result.
func (o *DownloadOrchestrator) removeListener(handle domain.ListenerHandle) {
	if handle == nil {
		return
	}
	if err := handle.Remove(); err != nil {
		o.logger.Warn("Failed to remove progress listener", zap.Error(err))
	}
}

// simulateDownload reproduces the real path's progress checkpoints
// without a native layer so the callers stay exercisable.
func (o *DownloadOrchestrator) simulateDownload(ctx context.Context, runID string, opts domain.DownloadOptions, started time.Time, onProgress func(float64)) bool {
	o.history.Append("Running in demo mode, simulating download", domain.SeverityWarning)
	o.notify("Demo mode", "Running in demo mode, no file will be downloaded")

	listener := o.progressListener(runID, onProgress)
	task := newProgressTask(demoDownloadStep, o.config.DemoStepInterval)
	completed := task.Run(ctx, func(progress float64) {
		listener(domain.ProgressEvent{RunID: runID, Progress: progress})
	})
	if !completed {
		o.history.Append("Demo download interrupted", domain.SeverityWarning)
		return false
	}

	name := "demo_video.mp4"
	if opts.IsAudio {
		name = "demo_video.mp3"
	}
	path := filepath.Join(o.config.OutputDir(opts.IsAudio), name)

	elapsed := time.Since(started).Seconds()
	o.history.Append(fmt.Sprintf("Download completed in %.1f seconds: %s", elapsed, path), domain.SeveritySuccess)
	return true
}

func (o *DownloadOrchestrator) notify(title, message string) {
	if o.notifier != nil {
		o.notifier.Notify(title, message)
	}
}
