package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Bridge       BridgeConfig       `mapstructure:"bridge"`
	Download     DownloadConfig     `mapstructure:"download"`
	Binaries     BinariesConfig     `mapstructure:"binaries"`
	History      HistoryConfig      `mapstructure:"history"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// BridgeConfig selects and configures the capability provider
type BridgeConfig struct {
	Mode         string `mapstructure:"mode"` // host, demo
	YtDlpBinary  string `mapstructure:"ytdlp_binary"`
	FFmpegBinary string `mapstructure:"ffmpeg_binary"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	AudioDir         string        `mapstructure:"audio_dir"`
	VideoDir         string        `mapstructure:"video_dir"`
	DemoStepInterval time.Duration `mapstructure:"demo_step_interval"`
}

// BinariesConfig locates the app-private executable directory and the
// bundled assets the manual installer copies from.
type BinariesConfig struct {
	BinDir   string `mapstructure:"bin_dir"`
	AssetDir string `mapstructure:"asset_dir"`
}

// HistoryConfig contains audit history configuration
type HistoryConfig struct {
	DatabasePath string `mapstructure:"database_path"`
	MaxEntries   int    `mapstructure:"max_entries"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// OutputDir returns the default output directory for a download type
func (c *DownloadConfig) OutputDir(isAudio bool) string {
	if isAudio {
		return c.AudioDir
	}
	return c.VideoDir
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Bridge: BridgeConfig{
			Mode:         "host",
			YtDlpBinary:  "yt-dlp",
			FFmpegBinary: "ffmpeg",
		},
		Download: DownloadConfig{
			AudioDir:         "$HOME/Music/Flash YTConverter",
			VideoDir:         "$HOME/Movies/Flash YTConverter",
			DemoStepInterval: 200 * time.Millisecond,
		},
		Binaries: BinariesConfig{
			BinDir:   "$HOME/.flash-convert/bin",
			AssetDir: "$HOME/.flash-convert/assets",
		},
		History: HistoryConfig{
			DatabasePath: "$HOME/.flash-convert/history.db",
			MaxEntries:   1000,
		},
		Notification: NotificationConfig{
			Enabled: true,
			Method:  "osascript",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
