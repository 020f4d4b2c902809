package domain

import "context"

// Capability names, matching the plugin registry of the native layer
const (
	CapYtDlp           = "YtDlpPlugin"
	CapFFmpeg          = "FFmpegPlugin"
	CapPermissions     = "Permissions"
	CapFilesystem      = "Filesystem"
	CapBinaryInstaller = "BinaryInstaller"
	CapShell           = "Shell"
	CapDevice          = "Device"
)

// ProgressEvent is emitted by the download and conversion capabilities
// while an operation is in flight. Progress runs 0-100; Message is an
// optional verbatim status line from the native tool.
type ProgressEvent struct {
	RunID    string  `json:"runId,omitempty"`
	Progress float64 `json:"progress"`
	Message  string  `json:"message,omitempty"`
}

// ProgressListener receives progress events for a subscribed operation
type ProgressListener func(ProgressEvent)

// ListenerHandle unregisters a progress listener. Remove must be safe
// to call after the underlying operation has finished.
type ListenerHandle interface {
	Remove() error
}

// YtDlpPlugin is the video extraction capability
type YtDlpPlugin interface {
	GetVideoInfo(ctx context.Context, url string) (*VideoInfo, error)
	Download(ctx context.Context, opts DownloadOptions) (*NativeResult, error)
	AddDownloadListener(fn ProgressListener) (ListenerHandle, error)
}

// FFmpegPlugin is the media conversion capability
type FFmpegPlugin interface {
	Convert(ctx context.Context, opts ConvertOptions) (*NativeResult, error)
	AddConversionListener(fn ProgressListener) (ListenerHandle, error)
}

// PermissionsPlugin queries and requests OS permissions
type PermissionsPlugin interface {
	Query(ctx context.Context, name string) (PermissionResult, error)
	Request(ctx context.Context, names []string) (map[string]PermissionResult, error)
}

// FilesystemPlugin is the host filesystem capability
type FilesystemPlugin interface {
	Mkdir(ctx context.Context, path string, recursive bool) error
	Readdir(ctx context.Context, path string) ([]string, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
	Stat(ctx context.Context, path string) (*FileStat, error)
}

// BinaryInstallerPlugin manages the bundled yt-dlp/ffmpeg executables
type BinaryInstallerPlugin interface {
	IsInstalled(ctx context.Context) (bool, error)
	CopyBinaries(ctx context.Context) (*InstallResult, error)
}

// ShellPlugin executes a command line on the host
type ShellPlugin interface {
	Execute(ctx context.Context, command string) (*ExecResult, error)
}

// DevicePlugin reports host platform details
type DevicePlugin interface {
	Info(ctx context.Context) (*DeviceInfo, error)
}

// Bridge is the capability provider every workflow component is built
// against. Native and Available never fail; an absent capability is a
// normal state, not an error. Accessors return false when the
// capability is not registered.
type Bridge interface {
	// Native reports whether the runtime can reach platform plugins
	// at all, as opposed to a plain browser sandbox.
	Native() bool

	// Platform names the host OS ("android", "ios", "web", ...)
	Platform() string

	// Available reports whether a named capability is registered
	Available(capability string) bool

	YtDlp() (YtDlpPlugin, bool)
	FFmpeg() (FFmpegPlugin, bool)
	Permissions() (PermissionsPlugin, bool)
	Filesystem() (FilesystemPlugin, bool)
	BinaryInstaller() (BinaryInstallerPlugin, bool)
	Shell() (ShellPlugin, bool)
	Device() (DevicePlugin, bool)
}
