// Package bridge provides the capability providers the workflows run
// against: a native host backed by the local OS, and a demo provider
// with no capabilities at all, mirroring a plain browser sandbox.
package bridge

import "github.com/yourusername/flash-convert-go/internal/domain"

// Demo is the no-capability provider. Every workflow degrades to its
// simulated path when running against it.
type Demo struct{}

// NewDemo creates a demo bridge
func NewDemo() *Demo { return &Demo{} }

// Native reports false; the demo runtime cannot reach platform plugins
func (*Demo) Native() bool { return false }

// Platform names the demo runtime
func (*Demo) Platform() string { return "web" }

// Available reports false for every capability
func (*Demo) Available(string) bool { return false }

func (*Demo) YtDlp() (domain.YtDlpPlugin, bool)                     { return nil, false }
func (*Demo) FFmpeg() (domain.FFmpegPlugin, bool)                   { return nil, false }
func (*Demo) Permissions() (domain.PermissionsPlugin, bool)         { return nil, false }
func (*Demo) Filesystem() (domain.FilesystemPlugin, bool)           { return nil, false }
func (*Demo) BinaryInstaller() (domain.BinaryInstallerPlugin, bool) { return nil, false }
func (*Demo) Shell() (domain.ShellPlugin, bool)                     { return nil, false }
func (*Demo) Device() (domain.DevicePlugin, bool)                   { return nil, false }
