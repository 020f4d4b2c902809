package domain

// DownloadOptions carries one download request into the orchestrator.
// Passed by value; it has no persistent identity.
type DownloadOptions struct {
	URL        string `json:"url"`
	Format     string `json:"format"`
	OutputPath string `json:"outputPath"`
	Quality    string `json:"quality"`
	IsAudio    bool   `json:"isAudio"`
}

// ConvertOptions carries one conversion request into the adapter
type ConvertOptions struct {
	InputPath  string `json:"inputPath"`
	OutputPath string `json:"outputPath"`
	Format     string `json:"format"`
	Quality    string `json:"quality"`
}

// NativeResult is the terminal result shape returned by the yt-dlp
// and ffmpeg capabilities.
type NativeResult struct {
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ExecResult is the outcome of one shell command issued through the
// host's command-execution capability.
type ExecResult struct {
	Success  bool   `json:"success"`
	Output   string `json:"output,omitempty"`
	Error    string `json:"error,omitempty"`
	ExitCode int    `json:"exitCode"`
}

// InstallResult is the outcome of a binary-installer round trip
type InstallResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// DeviceInfo describes the host device as reported by the Device
// capability. AndroidSDKVersion is zero on non-Android hosts.
type DeviceInfo struct {
	Platform          string `json:"platform"`
	AndroidSDKVersion int    `json:"androidSDKVersion"`
}

// FileStat is the subset of file metadata the workflows need
type FileStat struct {
	Size int64  `json:"size"`
	Type string `json:"type"`
}
