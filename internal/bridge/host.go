package bridge

import (
	"os/exec"
	"runtime"

	"github.com/yourusername/flash-convert-go/internal/domain"
	"go.uber.org/zap"
)

// Host is the native capability provider. It reaches yt-dlp and
// ffmpeg as local executables and the host filesystem/shell directly.
// Permission brokering and asset-based binary installation have no
// desktop equivalent, so those capabilities stay unregistered and the
// workflows degrade exactly as they do on a host without the plugins.
type Host struct {
	config *domain.BridgeConfig
	logger *zap.Logger

	ytdlp  *ytdlpPlugin
	ffmpeg *ffmpegPlugin
	fs     *hostFilesystem
	shell  *hostShell
	device *hostDevice
}

// NewHost creates a host bridge using the configured binary names
func NewHost(config *domain.BridgeConfig, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{
		config: config,
		logger: logger,
		ytdlp:  newYtdlpPlugin(config.YtDlpBinary, logger),
		ffmpeg: newFFmpegPlugin(config.FFmpegBinary, logger),
		fs:     &hostFilesystem{},
		shell:  &hostShell{},
		device: &hostDevice{},
	}
}

// Native reports true; the host can reach platform capabilities
func (*Host) Native() bool { return true }

// Platform names the host OS
func (*Host) Platform() string { return runtime.GOOS }

// Available reports whether a named capability is usable on this host.
// The executable-backed capabilities require their binary to resolve.
func (h *Host) Available(capability string) bool {
	switch capability {
	case domain.CapYtDlp:
		return binaryResolves(h.config.YtDlpBinary)
	case domain.CapFFmpeg:
		return binaryResolves(h.config.FFmpegBinary)
	case domain.CapFilesystem, domain.CapShell, domain.CapDevice:
		return true
	default:
		return false
	}
}

func (h *Host) YtDlp() (domain.YtDlpPlugin, bool) {
	if !h.Available(domain.CapYtDlp) {
		return nil, false
	}
	return h.ytdlp, true
}

func (h *Host) FFmpeg() (domain.FFmpegPlugin, bool) {
	if !h.Available(domain.CapFFmpeg) {
		return nil, false
	}
	return h.ffmpeg, true
}

func (h *Host) Permissions() (domain.PermissionsPlugin, bool) { return nil, false }

func (h *Host) Filesystem() (domain.FilesystemPlugin, bool) { return h.fs, true }

func (h *Host) BinaryInstaller() (domain.BinaryInstallerPlugin, bool) { return nil, false }

func (h *Host) Shell() (domain.ShellPlugin, bool) { return h.shell, true }

func (h *Host) Device() (domain.DevicePlugin, bool) { return h.device, true }

// binaryResolves checks that a binary name or path is executable from
// this process.
func binaryResolves(binary string) bool {
	if binary == "" {
		return false
	}
	_, err := exec.LookPath(binary)
	return err == nil
}
