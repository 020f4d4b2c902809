package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/flash-convert-go/internal/domain"
)

func TestDemoVideoInfo_SingleVideo(t *testing.T) {
	info := DemoVideoInfo("https://youtu.be/abc123")

	require.NotNil(t, info)
	assert.False(t, info.IsPlaylist)
	assert.Equal(t, "video-id", info.ID)
	assert.Equal(t, "Sample YouTube Video", info.Title)
	assert.Equal(t, "3:45", info.Duration)
	require.Len(t, info.Formats, 8)

	audio := 0
	video := 0
	for _, f := range info.Formats {
		switch f.Type {
		case domain.FormatAudio:
			audio++
			assert.Equal(t, "mp3", f.Extension)
		case domain.FormatVideo:
			video++
			assert.Equal(t, "mp4", f.Extension)
		}
	}
	assert.Equal(t, 4, audio)
	assert.Equal(t, 4, video)
	assert.True(t, info.HasAudioFormat())
	assert.True(t, info.HasVideoFormat())
}

func TestDemoVideoInfo_Playlist(t *testing.T) {
	info := DemoVideoInfo("https://www.youtube.com/playlist?list=XYZ")

	require.NotNil(t, info)
	assert.True(t, info.IsPlaylist)
	assert.Equal(t, "Sample YouTube Playlist", info.PlaylistTitle)
	assert.Equal(t, 25, info.PlaylistCount)
	require.Len(t, info.PlaylistItems, 25)
	assert.Equal(t, "Sample Video 1", info.PlaylistItems[0].Title)
	assert.Equal(t, "Sample Video 25", info.PlaylistItems[24].Title)
}

func TestDemoVideoInfo_WatchURLWithListParam(t *testing.T) {
	// The classification is a substring test, not a URL parse
	info := DemoVideoInfo("https://www.youtube.com/watch?v=abc&list=PL123")
	assert.True(t, info.IsPlaylist)
}

func TestGetVideoInfo_DemoFallback(t *testing.T) {
	hist, _ := newTestHistory()
	r := NewVideoInfoResolver(&fakeBridge{native: false, platform: "web"}, hist, nil)

	info := r.GetVideoInfo(context.Background(), "https://youtu.be/abc123")
	require.NotNil(t, info)
	assert.Len(t, info.Formats, 8)
	assert.NotEmpty(t, entriesWithSeverity(hist.ReadAll(), domain.SeverityWarning))
}

func TestGetVideoInfo_DelegatesToPlugin(t *testing.T) {
	hist, _ := newTestHistory()
	want := &domain.VideoInfo{ID: "real-id", Title: "Real Video"}
	ytdlp := &fakeYtDlp{info: want}
	r := NewVideoInfoResolver(&fakeBridge{native: true, platform: "linux", ytdlp: ytdlp}, hist, nil)

	info := r.GetVideoInfo(context.Background(), "https://youtu.be/abc123")
	assert.Same(t, want, info)
}

func TestGetVideoInfo_PluginErrorYieldsNil(t *testing.T) {
	hist, _ := newTestHistory()
	ytdlp := &fakeYtDlp{infoErr: errors.New("extraction failed")}
	r := NewVideoInfoResolver(&fakeBridge{native: true, platform: "linux", ytdlp: ytdlp}, hist, nil)

	info := r.GetVideoInfo(context.Background(), "https://youtu.be/abc123")
	assert.Nil(t, info)
	require.NotEmpty(t, entriesWithSeverity(hist.ReadAll(), domain.SeverityError))
}

func TestGetVideoInfo_LogsPlaylistCount(t *testing.T) {
	hist, _ := newTestHistory()
	ytdlp := &fakeYtDlp{info: &domain.VideoInfo{
		IsPlaylist:    true,
		PlaylistTitle: "Mix",
		PlaylistCount: 7,
	}}
	r := NewVideoInfoResolver(&fakeBridge{native: true, platform: "linux", ytdlp: ytdlp}, hist, nil)

	info := r.GetVideoInfo(context.Background(), "https://www.youtube.com/playlist?list=XYZ")
	require.NotNil(t, info)

	successes := entriesWithSeverity(hist.ReadAll(), domain.SeveritySuccess)
	require.Len(t, successes, 1)
	assert.Equal(t, fmt.Sprintf("Found playlist with %d videos", 7), successes[0].Message)
}
