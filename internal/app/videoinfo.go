package app

import (
	"context"
	"fmt"

	"github.com/yourusername/flash-convert-go/internal/domain"
	"github.com/yourusername/flash-convert-go/internal/history"
	"go.uber.org/zap"
)

// VideoInfoResolver looks up metadata for a URL, falling back to
// fixed demo payloads when no extraction capability is registered.
// It never returns an error; a failed lookup is a nil result plus a
// logged entry.
type VideoInfoResolver struct {
	bridge  domain.Bridge
	history *history.History
	logger  *zap.Logger
}

// NewVideoInfoResolver creates a video info resolver
func NewVideoInfoResolver(b domain.Bridge, hist *history.History, logger *zap.Logger) *VideoInfoResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VideoInfoResolver{bridge: b, history: hist, logger: logger}
}

// GetVideoInfo resolves metadata for url. A nil result means the
// lookup failed; callers must not treat it as an empty result set.
func (r *VideoInfoResolver) GetVideoInfo(ctx context.Context, url string) *domain.VideoInfo {
	r.history.Append("Getting video info for: "+url, domain.SeverityInfo)

	plugin, ok := r.bridge.YtDlp()
	if !ok {
		r.history.Append("Video extraction capability not available, using demo data", domain.SeverityWarning)
		return DemoVideoInfo(url)
	}

	info, err := plugin.GetVideoInfo(ctx, url)
	if err != nil {
		r.history.Append(fmt.Sprintf("Error getting video info: %v", err), domain.SeverityError)
		return nil
	}

	if info.IsPlaylist {
		r.history.Append(fmt.Sprintf("Found playlist with %d videos", info.PlaylistCount), domain.SeveritySuccess)
	} else {
		r.history.Append("Found video: "+info.Title, domain.SeveritySuccess)
	}
	return info
}
