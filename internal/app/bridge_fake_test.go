package app

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/yourusername/flash-convert-go/internal/domain"
	"github.com/yourusername/flash-convert-go/internal/history"
)

// fakeBridge implements domain.Bridge for testing. Nil plugin fields
// read as unavailable capabilities.
type fakeBridge struct {
	native   bool
	platform string

	ytdlp     *fakeYtDlp
	ffmpeg    *fakeFFmpeg
	perms     *fakePermissions
	fs        *fakeFilesystem
	installer *fakeInstaller
	shell     *fakeShell
	device    *fakeDevice
}

func (b *fakeBridge) Native() bool     { return b.native }
func (b *fakeBridge) Platform() string { return b.platform }

func (b *fakeBridge) Available(capability string) bool {
	switch capability {
	case domain.CapYtDlp:
		return b.ytdlp != nil
	case domain.CapFFmpeg:
		return b.ffmpeg != nil
	case domain.CapPermissions:
		return b.perms != nil
	case domain.CapFilesystem:
		return b.fs != nil
	case domain.CapBinaryInstaller:
		return b.installer != nil
	case domain.CapShell:
		return b.shell != nil
	case domain.CapDevice:
		return b.device != nil
	}
	return false
}

func (b *fakeBridge) YtDlp() (domain.YtDlpPlugin, bool) {
	if b.ytdlp == nil {
		return nil, false
	}
	return b.ytdlp, true
}

func (b *fakeBridge) FFmpeg() (domain.FFmpegPlugin, bool) {
	if b.ffmpeg == nil {
		return nil, false
	}
	return b.ffmpeg, true
}

func (b *fakeBridge) Permissions() (domain.PermissionsPlugin, bool) {
	if b.perms == nil {
		return nil, false
	}
	return b.perms, true
}

func (b *fakeBridge) Filesystem() (domain.FilesystemPlugin, bool) {
	if b.fs == nil {
		return nil, false
	}
	return b.fs, true
}

func (b *fakeBridge) BinaryInstaller() (domain.BinaryInstallerPlugin, bool) {
	if b.installer == nil {
		return nil, false
	}
	return b.installer, true
}

func (b *fakeBridge) Shell() (domain.ShellPlugin, bool) {
	if b.shell == nil {
		return nil, false
	}
	return b.shell, true
}

func (b *fakeBridge) Device() (domain.DevicePlugin, bool) {
	if b.device == nil {
		return nil, false
	}
	return b.device, true
}

// fakeYtDlp emits its configured progress events synchronously during
// Download, before returning the configured result.
type fakeYtDlp struct {
	info    *domain.VideoInfo
	infoErr error

	downloadResult *domain.NativeResult
	downloadErr    error
	downloadEvents []domain.ProgressEvent
	downloadCalls  int
	lastOptions    domain.DownloadOptions

	listener domain.ProgressListener
	removed  int
}

func (f *fakeYtDlp) GetVideoInfo(ctx context.Context, url string) (*domain.VideoInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.info, nil
}

func (f *fakeYtDlp) Download(ctx context.Context, opts domain.DownloadOptions) (*domain.NativeResult, error) {
	f.downloadCalls++
	f.lastOptions = opts
	for _, ev := range f.downloadEvents {
		if f.listener != nil {
			f.listener(ev)
		}
	}
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return f.downloadResult, nil
}

func (f *fakeYtDlp) AddDownloadListener(fn domain.ProgressListener) (domain.ListenerHandle, error) {
	f.listener = fn
	return &fakeHandle{onRemove: func() { f.removed++ }}, nil
}

type fakeFFmpeg struct {
	result    *domain.NativeResult
	err       error
	events    []domain.ProgressEvent
	calls     int
	listener  domain.ProgressListener
	removed   int
	lastInput string
}

func (f *fakeFFmpeg) Convert(ctx context.Context, opts domain.ConvertOptions) (*domain.NativeResult, error) {
	f.calls++
	f.lastInput = opts.InputPath
	for _, ev := range f.events {
		if f.listener != nil {
			f.listener(ev)
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeFFmpeg) AddConversionListener(fn domain.ProgressListener) (domain.ListenerHandle, error) {
	f.listener = fn
	return &fakeHandle{onRemove: func() { f.removed++ }}, nil
}

type fakeHandle struct {
	onRemove func()
}

func (h *fakeHandle) Remove() error {
	h.onRemove()
	return nil
}

type fakePermissions struct {
	queryResults   map[string]domain.PermissionResult
	queryErr       error
	requestResults map[string]domain.PermissionResult
	requestErr     error

	// requestErrOnce fails only the first request, for fallback tests
	requestErrOnce error

	queryCalls   []string
	requestCalls [][]string
}

func (f *fakePermissions) Query(ctx context.Context, name string) (domain.PermissionResult, error) {
	f.queryCalls = append(f.queryCalls, name)
	if f.queryErr != nil {
		return domain.PermissionResult{}, f.queryErr
	}
	result, ok := f.queryResults[name]
	if !ok {
		return domain.PermissionResult{State: domain.PermissionPrompt}, nil
	}
	return result, nil
}

func (f *fakePermissions) Request(ctx context.Context, names []string) (map[string]domain.PermissionResult, error) {
	f.requestCalls = append(f.requestCalls, names)
	if f.requestErrOnce != nil {
		err := f.requestErrOnce
		f.requestErrOnce = nil
		return nil, err
	}
	if f.requestErr != nil {
		return nil, f.requestErr
	}
	results := make(map[string]domain.PermissionResult, len(names))
	for _, name := range names {
		result, ok := f.requestResults[name]
		if !ok {
			result = domain.PermissionResult{State: domain.PermissionDenied}
		}
		results[name] = result
	}
	return results, nil
}

type fakeFilesystem struct {
	mkdirErr   error
	mkdirCalls []string
	dirEntries []string
	readdirErr error
	files      map[string][]byte
	writeErr   error
	statErr    error
}

func (f *fakeFilesystem) Mkdir(ctx context.Context, path string, recursive bool) error {
	f.mkdirCalls = append(f.mkdirCalls, path)
	return f.mkdirErr
}

func (f *fakeFilesystem) Readdir(ctx context.Context, path string) ([]string, error) {
	if f.readdirErr != nil {
		return nil, f.readdirErr
	}
	return f.dirEntries, nil
}

func (f *fakeFilesystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", path, fs.ErrNotExist)
	}
	return data, nil
}

func (f *fakeFilesystem) WriteFile(ctx context.Context, path string, data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if f.files == nil {
		f.files = make(map[string][]byte)
	}
	f.files[path] = data
	return nil
}

func (f *fakeFilesystem) Stat(ctx context.Context, path string) (*domain.FileStat, error) {
	if f.statErr != nil {
		return nil, f.statErr
	}
	if _, ok := f.files[path]; ok {
		return &domain.FileStat{Size: int64(len(f.files[path])), Type: "file"}, nil
	}
	return nil, fmt.Errorf("stat %s: %w", path, fs.ErrNotExist)
}

type fakeInstaller struct {
	installed    bool
	installedErr error
	copyResult   *domain.InstallResult
	copyErr      error
	copyCalls    int
}

func (f *fakeInstaller) IsInstalled(ctx context.Context) (bool, error) {
	return f.installed, f.installedErr
}

func (f *fakeInstaller) CopyBinaries(ctx context.Context) (*domain.InstallResult, error) {
	f.copyCalls++
	if f.copyErr != nil {
		return nil, f.copyErr
	}
	return f.copyResult, nil
}

type fakeShell struct {
	result   *domain.ExecResult
	err      error
	commands []string
}

func (f *fakeShell) Execute(ctx context.Context, command string) (*domain.ExecResult, error) {
	f.commands = append(f.commands, command)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &domain.ExecResult{Success: true, ExitCode: 0}, nil
}

type fakeDevice struct {
	info *domain.DeviceInfo
	err  error
}

func (f *fakeDevice) Info(ctx context.Context) (*domain.DeviceInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

// newTestHistory returns a history over a fresh in-memory store
func newTestHistory() (*history.History, *history.MemoryKV) {
	kv := history.NewMemoryKV()
	return history.New(kv, 0, nil), kv
}

// entriesWithSeverity filters history entries by severity
func entriesWithSeverity(entries []domain.LogEntry, severity domain.Severity) []domain.LogEntry {
	var out []domain.LogEntry
	for _, e := range entries {
		if e.Severity == severity {
			out = append(out, e)
		}
	}
	return out
}
