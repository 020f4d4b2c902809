package bridge

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/yourusername/flash-convert-go/internal/domain"
	"go.uber.org/zap"
)

// ffmpegPlugin drives a local ffmpeg executable. Progress is computed
// from -progress output against the input duration probed up front;
// when probing fails the events carry the raw position instead of a
// percentage.
type ffmpegPlugin struct {
	binary    string
	logger    *zap.Logger
	listeners *listenerRegistry
}

func newFFmpegPlugin(binary string, logger *zap.Logger) *ffmpegPlugin {
	return &ffmpegPlugin{
		binary:    binary,
		logger:    logger,
		listeners: newListenerRegistry(),
	}
}

func (p *ffmpegPlugin) AddConversionListener(fn domain.ProgressListener) (domain.ListenerHandle, error) {
	return p.listeners.Add(fn), nil
}

func (p *ffmpegPlugin) Convert(ctx context.Context, opts domain.ConvertOptions) (*domain.NativeResult, error) {
	durationUS := p.probeDuration(ctx, opts.InputPath)

	args := convertArgs(opts)
	cmdLine := ShellEscapeCommand(p.binary, args...)
	p.logger.Debug("Running ffmpeg", zap.String("cmd", cmdLine))

	cmd := exec.CommandContext(ctx, p.binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to attach to ffmpeg output: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "out_time_us=") {
			continue
		}
		posUS, err := strconv.ParseInt(strings.TrimPrefix(line, "out_time_us="), 10, 64)
		if err != nil {
			continue
		}
		if durationUS > 0 {
			pct := float64(posUS) / float64(durationUS) * 100
			if pct > 100 {
				pct = 100
			}
			p.listeners.Emit(domain.ProgressEvent{Progress: pct})
		} else {
			p.listeners.Emit(domain.ProgressEvent{
				Progress: -1,
				Message:  fmt.Sprintf("position: %ds", posUS/1_000_000),
			})
		}
	}

	if err := cmd.Wait(); err != nil {
		return &domain.NativeResult{Success: false, Error: err.Error()}, nil
	}

	p.listeners.Emit(domain.ProgressEvent{Progress: 100})
	return &domain.NativeResult{Success: true, Path: opts.OutputPath}, nil
}

// probeDuration returns the input duration in microseconds, or 0 when
// it cannot be determined.
func (p *ffmpegPlugin) probeDuration(ctx context.Context, inputPath string) int64 {
	probe := strings.Replace(p.binary, "ffmpeg", "ffprobe", 1)
	cmd := exec.CommandContext(ctx, probe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath)
	output, err := cmd.Output()
	if err != nil {
		p.logger.Debug("ffprobe duration query failed", zap.Error(err))
		return 0
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0
	}
	return int64(seconds * 1_000_000)
}

func convertArgs(opts domain.ConvertOptions) []string {
	args := []string{
		"-y",
		"-i", opts.InputPath,
		"-progress", "pipe:1",
		"-nostats",
		"-loglevel", "error",
	}
	if opts.Quality != "" {
		if bitrate := strings.TrimSuffix(opts.Quality, "kbps"); bitrate != opts.Quality {
			args = append(args, "-b:a", bitrate+"k")
		}
	}
	return append(args, opts.OutputPath)
}
