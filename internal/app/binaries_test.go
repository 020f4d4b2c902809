package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/flash-convert-go/internal/domain"
)

func testBinariesConfig() *domain.BinariesConfig {
	return &domain.BinariesConfig{
		BinDir:   "/data/app/bin",
		AssetDir: "/data/app/assets",
	}
}

func newProvisioner(bridge *fakeBridge) (*BinaryProvisioner, *historyLog) {
	hist, _ := newTestHistory()
	p := NewBinaryProvisioner(bridge, hist, testBinariesConfig(), nil)
	return p, &historyLog{hist: hist}
}

func TestEnsureInstalled_Browser(t *testing.T) {
	p, logged := newProvisioner(&fakeBridge{native: false, platform: "web"})

	assert.True(t, p.EnsureInstalled(context.Background()))
	assert.True(t, logged.contains("skipping binary installation"))
}

func TestEnsureInstalled_InstallerAlreadyInstalled(t *testing.T) {
	installer := &fakeInstaller{installed: true}
	p, _ := newProvisioner(&fakeBridge{native: true, platform: "android", installer: installer})

	assert.True(t, p.EnsureInstalled(context.Background()))
	assert.Zero(t, installer.copyCalls)
}

func TestEnsureInstalled_InstallerCopies(t *testing.T) {
	installer := &fakeInstaller{
		installed:  false,
		copyResult: &domain.InstallResult{Success: true},
	}
	p, logged := newProvisioner(&fakeBridge{native: true, platform: "android", installer: installer})

	assert.True(t, p.EnsureInstalled(context.Background()))
	assert.Equal(t, 1, installer.copyCalls)
	assert.True(t, logged.contains("installed successfully"))
}

func TestEnsureInstalled_InstallerFailure(t *testing.T) {
	installer := &fakeInstaller{
		installed:  false,
		copyResult: &domain.InstallResult{Success: false, Message: "asset missing"},
	}
	p, logged := newProvisioner(&fakeBridge{native: true, platform: "android", installer: installer})

	assert.False(t, p.EnsureInstalled(context.Background()))
	assert.True(t, logged.contains("asset missing"))
}

func TestEnsureInstalled_HostBinariesOnPath(t *testing.T) {
	// A desktop host resolves yt-dlp and ffmpeg on PATH and ships no
	// installer or bundled assets; that already counts as installed.
	bridge := &fakeBridge{
		native:   true,
		platform: "linux",
		ytdlp:    &fakeYtDlp{},
		ffmpeg:   &fakeFFmpeg{},
	}
	p, logged := newProvisioner(bridge)

	assert.True(t, p.EnsureInstalled(context.Background()))
	assert.True(t, logged.contains("available on host"))
}

func TestEnsureInstalled_HostMissingOneBinary(t *testing.T) {
	// Only yt-dlp resolves, so the manual asset copy still runs
	bridge := &fakeBridge{native: true, platform: "linux", ytdlp: &fakeYtDlp{}}
	p, logged := newProvisioner(bridge)

	assert.False(t, p.EnsureInstalled(context.Background()))
	assert.True(t, logged.contains("Filesystem capability not available"))
}

func TestEnsureInstalled_ManualCopy(t *testing.T) {
	fsPlugin := &fakeFilesystem{
		files: map[string][]byte{
			"/data/app/assets/yt-dlp": []byte("ytdlp-bytes"),
			"/data/app/assets/ffmpeg": []byte("ffmpeg-bytes"),
		},
	}
	shell := &fakeShell{}
	bridge := &fakeBridge{native: true, platform: "android", fs: fsPlugin, shell: shell}
	p, _ := newProvisioner(bridge)

	assert.True(t, p.EnsureInstalled(context.Background()))
	assert.Equal(t, []byte("ytdlp-bytes"), fsPlugin.files["/data/app/bin/yt-dlp"])
	assert.Equal(t, []byte("ffmpeg-bytes"), fsPlugin.files["/data/app/bin/ffmpeg"])
	// chmod +x issued for each installed binary
	require.Len(t, shell.commands, 2)
	assert.Contains(t, shell.commands[0], "chmod")
}

func TestEnsureInstalled_ManualCopyMissingAsset(t *testing.T) {
	fsPlugin := &fakeFilesystem{
		files: map[string][]byte{
			"/data/app/assets/yt-dlp": []byte("ytdlp-bytes"),
		},
	}
	bridge := &fakeBridge{native: true, platform: "android", fs: fsPlugin, shell: &fakeShell{}}
	p, logged := newProvisioner(bridge)

	// ffmpeg asset is missing, so the overall result is false
	assert.False(t, p.EnsureInstalled(context.Background()))
	assert.True(t, logged.contains("Error reading bundled asset ffmpeg"))
}

func TestEnsureInstalled_AlreadyPresentSkipsCopy(t *testing.T) {
	fsPlugin := &fakeFilesystem{
		files: map[string][]byte{
			"/data/app/bin/yt-dlp": []byte("old"),
			"/data/app/bin/ffmpeg": []byte("old"),
		},
	}
	shell := &fakeShell{}
	bridge := &fakeBridge{native: true, platform: "android", fs: fsPlugin, shell: shell}
	p, _ := newProvisioner(bridge)

	assert.True(t, p.EnsureInstalled(context.Background()))
	// Existing binaries only get their executable bit re-applied
	assert.Len(t, shell.commands, 2)
	assert.Equal(t, []byte("old"), fsPlugin.files["/data/app/bin/yt-dlp"])
}

func TestRunExecutable_BrowserMock(t *testing.T) {
	p, _ := newProvisioner(&fakeBridge{native: false, platform: "web"})

	result := p.RunExecutable(context.Background(), "yt-dlp", []string{"--version"})
	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Zero(t, result.ExitCode)
	assert.Contains(t, result.Output, "yt-dlp --version")
}

func TestRunExecutable_FunnelsThroughShell(t *testing.T) {
	shell := &fakeShell{result: &domain.ExecResult{Success: true, Output: "2024.01.01", ExitCode: 0}}
	p, _ := newProvisioner(&fakeBridge{native: true, platform: "linux", shell: shell})

	result := p.RunExecutable(context.Background(), "yt-dlp", []string{"--version"})
	assert.True(t, result.Success)
	assert.Equal(t, "2024.01.01", result.Output)
	require.Len(t, shell.commands, 1)
	assert.Equal(t, "yt-dlp --version", shell.commands[0])
}

func TestRunExecutable_ShellUnavailable(t *testing.T) {
	p, _ := newProvisioner(&fakeBridge{native: true, platform: "linux"})

	result := p.RunExecutable(context.Background(), "yt-dlp", nil)
	assert.False(t, result.Success)
	assert.Equal(t, -1, result.ExitCode)
}

func TestRunExecutable_ShellError(t *testing.T) {
	shell := &fakeShell{err: errors.New("spawn failed")}
	p, logged := newProvisioner(&fakeBridge{native: true, platform: "linux", shell: shell})

	result := p.RunExecutable(context.Background(), "yt-dlp", nil)
	assert.False(t, result.Success)
	assert.True(t, logged.contains("spawn failed"))
}
