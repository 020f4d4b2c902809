package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressTask_RampEndsAtHundred(t *testing.T) {
	task := newProgressTask(30, time.Millisecond)

	var values []float64
	completed := task.Run(context.Background(), func(progress float64) {
		values = append(values, progress)
	})

	assert.True(t, completed)
	assert.Equal(t, []float64{30, 60, 90, 100}, values)
}

func TestProgressTask_ContextCancelInterrupts(t *testing.T) {
	task := newProgressTask(5, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	var values []float64
	completed := task.Run(ctx, func(progress float64) {
		values = append(values, progress)
		if len(values) == 3 {
			cancel()
		}
	})

	assert.False(t, completed)
	assert.Len(t, values, 3)
}

func TestProgressTask_DefaultsApplied(t *testing.T) {
	task := newProgressTask(0, 0)
	assert.Equal(t, 5.0, task.step)
	assert.Equal(t, 200*time.Millisecond, task.interval)
}

func TestDemoVideoInfo_SingleVideoBasic(t *testing.T) {
	info := DemoVideoInfo("https://youtube.com/watch?v=abc")
	require.NotNil(t, info)
	assert.False(t, info.IsPlaylist)
	assert.Equal(t, "Sample YouTube Video", info.Title)
	assert.Len(t, info.Formats, 8)
}

func TestDemoVideoInfo_PlaylistBasic(t *testing.T) {
	info := DemoVideoInfo("https://youtube.com/watch?v=abc&list=PL123")
	require.NotNil(t, info)
	assert.True(t, info.IsPlaylist)
	assert.Equal(t, 25, info.PlaylistCount)
	assert.Len(t, info.PlaylistItems, 25)
}
