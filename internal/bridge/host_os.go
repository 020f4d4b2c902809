package bridge

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/yourusername/flash-convert-go/internal/domain"
)

// hostFilesystem implements the Filesystem capability on the local OS
type hostFilesystem struct{}

func (hostFilesystem) Mkdir(_ context.Context, path string, recursive bool) error {
	if recursive {
		// MkdirAll succeeds on an existing directory, but callers
		// must still be able to distinguish "already there" for
		// their logs.
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return fmt.Errorf("directory %s: %w", path, os.ErrExist)
		}
		return os.MkdirAll(path, 0755)
	}
	return os.Mkdir(path, 0755)
}

func (hostFilesystem) Readdir(_ context.Context, path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (hostFilesystem) ReadFile(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (hostFilesystem) WriteFile(_ context.Context, path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

func (hostFilesystem) Stat(_ context.Context, path string) (*domain.FileStat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	fileType := "file"
	if info.IsDir() {
		fileType = "directory"
	}
	return &domain.FileStat{Size: info.Size(), Type: fileType}, nil
}

// hostShell implements the Shell capability with /bin/sh
type hostShell struct{}

func (hostShell) Execute(ctx context.Context, command string) (*domain.ExecResult, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	output, err := cmd.CombinedOutput()

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	result := &domain.ExecResult{
		Output:   string(output),
		ExitCode: exitCode,
	}
	if err != nil {
		result.Error = err.Error()
		return result, nil
	}
	result.Success = true
	return result, nil
}

// hostDevice implements the Device capability for the local OS
type hostDevice struct{}

func (hostDevice) Info(context.Context) (*domain.DeviceInfo, error) {
	return &domain.DeviceInfo{Platform: runtime.GOOS}, nil
}
