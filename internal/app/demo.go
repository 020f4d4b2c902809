package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/flash-convert-go/internal/domain"
)

// DemoVideoInfo returns the deterministic metadata used when no video
// extraction capability is present. A URL carrying a playlist query
// parameter yields the playlist payload; anything else the single
// video one.
func DemoVideoInfo(url string) *domain.VideoInfo {
	if strings.Contains(url, "list=") {
		items := make([]domain.VideoInfo, 25)
		for i := range items {
			items[i] = domain.VideoInfo{
				ID:        fmt.Sprintf("video-%d", i),
				Title:     fmt.Sprintf("Sample Video %d", i+1),
				Thumbnail: demoThumbnail,
				Duration:  "3:45",
				Formats:   []domain.VideoFormat{},
			}
		}
		return &domain.VideoInfo{
			ID:            "playlist-id",
			Title:         "Sample YouTube Playlist",
			Thumbnail:     demoThumbnail,
			Formats:       []domain.VideoFormat{},
			IsPlaylist:    true,
			PlaylistTitle: "Sample YouTube Playlist",
			PlaylistCount: 25,
			PlaylistItems: items,
		}
	}

	return &domain.VideoInfo{
		ID:        "video-id",
		Title:     "Sample YouTube Video",
		Thumbnail: demoThumbnail,
		Duration:  "3:45",
		Formats: []domain.VideoFormat{
			{FormatID: "audio-1", Extension: "mp3", AudioQuality: "128kbps", Type: domain.FormatAudio, Quality: "128kbps"},
			{FormatID: "audio-2", Extension: "mp3", AudioQuality: "192kbps", Type: domain.FormatAudio, Quality: "192kbps"},
			{FormatID: "audio-3", Extension: "mp3", AudioQuality: "256kbps", Type: domain.FormatAudio, Quality: "256kbps"},
			{FormatID: "audio-4", Extension: "mp3", AudioQuality: "320kbps", Type: domain.FormatAudio, Quality: "320kbps"},
			{FormatID: "video-1", Extension: "mp4", Resolution: "360p", Type: domain.FormatVideo, Quality: "360p"},
			{FormatID: "video-2", Extension: "mp4", Resolution: "480p", Type: domain.FormatVideo, Quality: "480p"},
			{FormatID: "video-3", Extension: "mp4", Resolution: "720p", Type: domain.FormatVideo, Quality: "720p"},
			{FormatID: "video-4", Extension: "mp4", Resolution: "1080p", Type: domain.FormatVideo, Quality: "1080p"},
		},
	}
}

const demoThumbnail = "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"

// Simulated progress step sizes. Conversion ramps faster than
// download, matching the relative speed of the real operations.
const (
	demoDownloadStep   = 5.0
	demoConversionStep = 10.0
)

// progressTask emits a monotonic progress ramp to 100 on a recurring
// timer. Run returns when the ramp completes or the context is
// cancelled.
type progressTask struct {
	step     float64
	interval time.Duration
}

func newProgressTask(step float64, interval time.Duration) *progressTask {
	if step <= 0 {
		step = 5
	}
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return &progressTask{step: step, interval: interval}
}

// Run drives the ramp, invoking emit at every tick with the current
// value, ending at exactly 100. Returns false when interrupted.
func (t *progressTask) Run(ctx context.Context, emit func(progress float64)) bool {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	progress := 0.0
	for {
		select {
		case <-ticker.C:
			progress += t.step
			if progress >= 100 {
				emit(100)
				return true
			}
			emit(progress)
		case <-ctx.Done():
			return false
		}
	}
}
