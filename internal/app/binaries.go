package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yourusername/flash-convert-go/internal/bridge"
	"github.com/yourusername/flash-convert-go/internal/domain"
	"github.com/yourusername/flash-convert-go/internal/history"
	"go.uber.org/zap"
)

// requiredBinaries are the executables the download and conversion
// paths depend on.
var requiredBinaries = []string{"yt-dlp", "ffmpeg"}

// BinaryProvisioner makes sure the external executables exist in the
// app-private binary directory and provides the single entry point
// through which they are invoked.
type BinaryProvisioner struct {
	bridge  domain.Bridge
	history *history.History
	config  *domain.BinariesConfig
	logger  *zap.Logger
}

// NewBinaryProvisioner creates a binary provisioner
func NewBinaryProvisioner(b domain.Bridge, hist *history.History, config *domain.BinariesConfig, logger *zap.Logger) *BinaryProvisioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BinaryProvisioner{bridge: b, history: hist, config: config, logger: logger}
}

// EnsureInstalled provisions both executables, idempotently. The
// dedicated installer capability is preferred when registered; without
// it each binary is checked and copied from the bundled assets. Both
// binaries must end up present for the result to be true.
func (p *BinaryProvisioner) EnsureInstalled(ctx context.Context) bool {
	if !p.bridge.Native() {
		p.history.Append("Browser environment, skipping binary installation", domain.SeverityInfo)
		return true
	}

	if installer, ok := p.bridge.BinaryInstaller(); ok {
		return p.installViaPlugin(ctx, installer)
	}
	if p.bridge.Available(domain.CapYtDlp) && p.bridge.Available(domain.CapFFmpeg) {
		// Both executables resolve on the host already, nothing to copy
		p.history.Append("Binaries available on host, skipping installation", domain.SeverityInfo)
		return true
	}
	return p.installManually(ctx)
}

func (p *BinaryProvisioner) installViaPlugin(ctx context.Context, installer domain.BinaryInstallerPlugin) bool {
	installed, err := installer.IsInstalled(ctx)
	if err != nil {
		p.history.Append(fmt.Sprintf("Error checking binary installation: %v", err), domain.SeverityError)
		return false
	}
	if installed {
		return true
	}

	p.history.Append("Installing bundled binaries", domain.SeverityInfo)
	result, err := installer.CopyBinaries(ctx)
	if err != nil {
		p.history.Append(fmt.Sprintf("Error installing binaries: %v", err), domain.SeverityError)
		return false
	}
	if !result.Success {
		p.history.Append("Binary installation failed: "+result.Message, domain.SeverityError)
		return false
	}
	p.history.Append("Binaries installed successfully", domain.SeveritySuccess)
	return true
}

// installManually copies each missing executable from the bundled
// asset directory into the private binary directory and marks it
// executable through the shell capability.
func (p *BinaryProvisioner) installManually(ctx context.Context) bool {
	fsPlugin, ok := p.bridge.Filesystem()
	if !ok {
		p.history.Append("Filesystem capability not available, cannot install binaries", domain.SeverityWarning)
		return false
	}

	allOK := true
	for _, name := range requiredBinaries {
		if !p.installOne(ctx, fsPlugin, name) {
			allOK = false
		}
	}
	return allOK
}

func (p *BinaryProvisioner) installOne(ctx context.Context, fsPlugin domain.FilesystemPlugin, name string) bool {
	target := filepath.Join(p.config.BinDir, name)

	if _, err := fsPlugin.Stat(ctx, target); err == nil {
		// Present from an earlier run; permissions may have been
		// stripped by a backup/restore cycle, so re-apply them.
		p.markExecutable(ctx, target)
		return true
	}

	asset := filepath.Join(p.config.AssetDir, name)
	data, err := fsPlugin.ReadFile(ctx, asset)
	if err != nil {
		p.history.Append(fmt.Sprintf("Error reading bundled asset %s: %v", name, err), domain.SeverityError)
		return false
	}

	if err := fsPlugin.Mkdir(ctx, p.config.BinDir, true); err != nil && !isAlreadyExists(err) {
		p.history.Append(fmt.Sprintf("Error creating binary directory: %v", err), domain.SeverityError)
		return false
	}
	if err := fsPlugin.WriteFile(ctx, target, data); err != nil {
		p.history.Append(fmt.Sprintf("Error writing binary %s: %v", name, err), domain.SeverityError)
		return false
	}
	if !p.markExecutable(ctx, target) {
		return false
	}

	p.history.Append("Installed binary: "+name, domain.SeveritySuccess)
	return true
}

func (p *BinaryProvisioner) markExecutable(ctx context.Context, path string) bool {
	result := p.RunExecutable(ctx, "chmod", []string{"+x", path})
	if !result.Success {
		p.history.Append(fmt.Sprintf("Error marking %s executable: %s", path, result.Error), domain.SeverityError)
		return false
	}
	return true
}

// RunExecutable builds a shell command line for binaryName with args
// and issues it through the shell capability. Every binary invocation
// in the app funnels through here. Without a native shell it returns a
// deterministic mock success so demo flows stay exercisable.
func (p *BinaryProvisioner) RunExecutable(ctx context.Context, binaryName string, args []string) *domain.ExecResult {
	if !p.bridge.Native() {
		return &domain.ExecResult{
			Success:  true,
			Output:   fmt.Sprintf("Mock execution of %s %s", binaryName, strings.Join(args, " ")),
			ExitCode: 0,
		}
	}

	shell, ok := p.bridge.Shell()
	if !ok {
		return &domain.ExecResult{
			Success:  false,
			Error:    "shell capability not available",
			ExitCode: -1,
		}
	}

	command := bridge.ShellEscapeCommand(binaryName, args...)
	p.logger.Debug("Executing command", zap.String("command", command))

	result, err := shell.Execute(ctx, command)
	if err != nil {
		p.history.Append(fmt.Sprintf("Error executing %s: %v", binaryName, err), domain.SeverityError)
		return &domain.ExecResult{Success: false, Error: err.Error(), ExitCode: -1}
	}
	return result
}
