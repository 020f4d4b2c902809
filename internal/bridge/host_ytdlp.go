package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/flash-convert-go/internal/domain"
	"go.uber.org/zap"
)

// ytdlpPlugin drives a local yt-dlp executable and streams its
// per-line progress output to subscribed listeners.
type ytdlpPlugin struct {
	binary    string
	logger    *zap.Logger
	listeners *listenerRegistry
}

func newYtdlpPlugin(binary string, logger *zap.Logger) *ytdlpPlugin {
	return &ytdlpPlugin{
		binary:    binary,
		logger:    logger,
		listeners: newListenerRegistry(),
	}
}

func (p *ytdlpPlugin) AddDownloadListener(fn domain.ProgressListener) (domain.ListenerHandle, error) {
	return p.listeners.Add(fn), nil
}

// rawInfo is yt-dlp's -J payload reduced to the fields we map
type rawInfo struct {
	Type          string      `json:"_type"`
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Thumbnail     string      `json:"thumbnail"`
	Duration      float64     `json:"duration"`
	Formats       []rawFormat `json:"formats"`
	Entries       []rawInfo   `json:"entries"`
	PlaylistCount int         `json:"playlist_count"`
}

type rawFormat struct {
	FormatID   string  `json:"format_id"`
	Ext        string  `json:"ext"`
	Resolution string  `json:"resolution"`
	Filesize   int64   `json:"filesize"`
	ABR        float64 `json:"abr"`
	VCodec     string  `json:"vcodec"`
	ACodec     string  `json:"acodec"`
	FormatNote string  `json:"format_note"`
}

func (p *ytdlpPlugin) GetVideoInfo(ctx context.Context, url string) (*domain.VideoInfo, error) {
	cmd := exec.CommandContext(ctx, p.binary, "-J", url)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp metadata query failed: %w", err)
	}

	var raw rawInfo
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp metadata: %w", err)
	}

	return mapVideoInfo(&raw), nil
}

// mapVideoInfo converts yt-dlp's metadata shape into the app's
func mapVideoInfo(raw *rawInfo) *domain.VideoInfo {
	if raw.Type == "playlist" {
		info := &domain.VideoInfo{
			ID:            raw.ID,
			Title:         raw.Title,
			Thumbnail:     raw.Thumbnail,
			Formats:       []domain.VideoFormat{},
			IsPlaylist:    true,
			PlaylistTitle: raw.Title,
			PlaylistCount: raw.PlaylistCount,
		}
		if info.PlaylistCount == 0 {
			info.PlaylistCount = len(raw.Entries)
		}
		for _, entry := range raw.Entries {
			e := entry
			item := mapVideoInfo(&e)
			info.PlaylistItems = append(info.PlaylistItems, *item)
		}
		return info
	}

	info := &domain.VideoInfo{
		ID:        raw.ID,
		Title:     raw.Title,
		Thumbnail: raw.Thumbnail,
		Duration:  formatDuration(raw.Duration),
		Formats:   []domain.VideoFormat{},
	}
	for _, f := range raw.Formats {
		info.Formats = append(info.Formats, mapFormat(f))
	}
	return info
}

func mapFormat(raw rawFormat) domain.VideoFormat {
	hasVideo := raw.VCodec != "" && raw.VCodec != "none"
	hasAudio := raw.ACodec != "" && raw.ACodec != "none"

	format := domain.VideoFormat{
		FormatID:   raw.FormatID,
		Extension:  raw.Ext,
		Resolution: raw.Resolution,
		Filesize:   raw.Filesize,
	}

	switch {
	case hasVideo && hasAudio:
		format.Type = domain.FormatBoth
		format.Quality = raw.Resolution
	case hasVideo:
		format.Type = domain.FormatVideo
		format.Quality = raw.Resolution
	default:
		format.Type = domain.FormatAudio
		if raw.ABR > 0 {
			format.AudioQuality = fmt.Sprintf("%dkbps", int(raw.ABR))
		}
		format.Quality = format.AudioQuality
	}
	if format.Quality == "" {
		format.Quality = raw.FormatNote
	}
	return format
}

// formatDuration renders seconds as m:ss (or h:mm:ss)
func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

var (
	downloadProgressRe    = regexp.MustCompile(`\[download\]\s+(\d+(?:\.\d+)?)%`)
	downloadDestinationRe = regexp.MustCompile(`\[download\] Destination: (.+)`)
	mergerDestinationRe   = regexp.MustCompile(`\[Merger\] Merging formats into "(.+)"`)
)

func (p *ytdlpPlugin) Download(ctx context.Context, opts domain.DownloadOptions) (*domain.NativeResult, error) {
	args := downloadArgs(opts)

	cmdLine := ShellEscapeCommand(p.binary, args...)
	p.logger.Debug("Running yt-dlp", zap.String("cmd", cmdLine))

	cmd := exec.CommandContext(ctx, p.binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to attach to yt-dlp output: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start yt-dlp: %w", err)
	}

	destination := ""
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()

		if m := downloadProgressRe.FindStringSubmatch(line); m != nil {
			pct, _ := strconv.ParseFloat(m[1], 64)
			p.listeners.Emit(domain.ProgressEvent{Progress: pct})
			continue
		}
		if m := downloadDestinationRe.FindStringSubmatch(line); m != nil {
			destination = m[1]
		}
		if m := mergerDestinationRe.FindStringSubmatch(line); m != nil {
			destination = m[1]
		}
		if strings.HasPrefix(line, "[") {
			p.listeners.Emit(domain.ProgressEvent{Progress: -1, Message: line})
		}
	}

	if err := cmd.Wait(); err != nil {
		return &domain.NativeResult{Success: false, Error: err.Error()}, nil
	}

	p.listeners.Emit(domain.ProgressEvent{Progress: 100})
	if destination == "" {
		destination = opts.OutputPath
	}
	return &domain.NativeResult{Success: true, Path: destination}, nil
}

// downloadArgs builds the yt-dlp command line for one request.
// exec.Command passes args directly to the process, no shell quoting
// needed.
func downloadArgs(opts domain.DownloadOptions) []string {
	args := []string{
		"--newline",
		"--restrict-filenames",
		"-o", filepath.Join(opts.OutputPath, "%(title)s.%(ext)s"),
	}

	if opts.IsAudio {
		format := opts.Format
		if format == "" {
			format = "mp3"
		}
		args = append(args, "-x", "--audio-format", format)
		if bitrate := strings.TrimSuffix(opts.Quality, "kbps"); bitrate != "" && bitrate != opts.Quality {
			args = append(args, "--audio-quality", bitrate+"K")
		}
	} else {
		if height := strings.TrimSuffix(opts.Quality, "p"); height != "" && height != opts.Quality {
			args = append(args, "-f",
				fmt.Sprintf("bestvideo[height<=%s]+bestaudio/best[height<=%s]", height, height))
		}
		if opts.Format != "" {
			args = append(args, "--merge-output-format", opts.Format)
		}
	}

	return append(args, opts.URL)
}
