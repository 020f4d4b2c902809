package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/yourusername/flash-convert-go/internal/app"
	"github.com/yourusername/flash-convert-go/internal/domain"
	"github.com/yourusername/flash-convert-go/internal/history"
	"github.com/yourusername/flash-convert-go/pkg/logger"
)

var (
	configPath string
	demoMode   bool
	rootCmd    = &cobra.Command{
		Use:   "flash-convert",
		Short: "Flash Convert CLI - Download and convert YouTube media",
		Long:  `A command-line interface for downloading YouTube videos and converting them to audio or video files.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "Run without native capabilities")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(setupCmd)
}

// buildEngine assembles an engine from the configuration. The caller
// must invoke the returned cleanup function.
func buildEngine() (*app.Engine, func(), error) {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if demoMode {
		config.Bridge.Mode = "demo"
	}

	log, err := logger.New(logger.Config{
		Level:      "warn",
		Format:     config.Logging.Format,
		OutputPath: "stderr",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(config.History.DatabasePath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	kv, err := history.NewSQLiteKV(config.History.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history store: %w", err)
	}

	bridge := app.NewBridge(config, log)
	engine := app.NewEngine(config, bridge, kv, log)

	cleanup := func() {
		kv.Close()
		log.Sync()
	}
	return engine, cleanup, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

var infoCmd = &cobra.Command{
	Use:   "info [url]",
	Short: "Show available formats for a video or playlist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, cleanup, err := buildEngine()
		if err != nil {
			fatalf("Error: %v", err)
		}
		defer cleanup()

		info := engine.Resolver.GetVideoInfo(context.Background(), args[0])
		if info == nil {
			fatalf("Error: could not resolve video info")
		}

		if info.IsPlaylist {
			fmt.Printf("Playlist: %s (%d videos)\n\n", info.PlaylistTitle, info.PlaylistCount)
			for i, item := range info.PlaylistItems {
				fmt.Printf("%3d. %s\n", i+1, item.Title)
			}
			return
		}

		fmt.Printf("Title:    %s\n", info.Title)
		if info.Duration != "" {
			fmt.Printf("Duration: %s\n", info.Duration)
		}
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FORMAT\tEXT\tTYPE\tQUALITY")
		for _, f := range info.Formats {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.FormatID, f.Extension, f.Type, f.Quality)
		}
		w.Flush()
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download [url]",
	Short: "Download a video or its audio track",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		isAudio, _ := cmd.Flags().GetBool("audio")
		quality, _ := cmd.Flags().GetString("quality")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		fromClipboard, _ := cmd.Flags().GetBool("clipboard")

		var url string
		switch {
		case len(args) == 1:
			url = args[0]
		case fromClipboard:
			text, err := clipboard.ReadAll()
			if err != nil {
				fatalf("Error reading clipboard: %v", err)
			}
			url = text
			fmt.Printf("Using URL from clipboard: %s\n", url)
		default:
			fatalf("Error: provide a URL or use --clipboard")
		}

		engine, cleanup, err := buildEngine()
		if err != nil {
			fatalf("Error: %v", err)
		}
		defer cleanup()

		ok := engine.Orchestrator.DownloadVideo(context.Background(), domain.DownloadOptions{
			URL:        url,
			Format:     format,
			OutputPath: output,
			Quality:    quality,
			IsAudio:    isAudio,
		}, func(progress float64) {
			fmt.Printf("\rProgress: %6.1f%%", progress)
		})
		fmt.Println()

		if !ok {
			fatalf("Download failed; run 'flash-convert logs' for details")
		}
		fmt.Println("Download complete")
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Convert a media file to another format",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		quality, _ := cmd.Flags().GetString("quality")

		engine, cleanup, err := buildEngine()
		if err != nil {
			fatalf("Error: %v", err)
		}
		defer cleanup()

		ok := engine.Converter.ConvertMedia(context.Background(), domain.ConvertOptions{
			InputPath:  args[0],
			OutputPath: args[1],
			Format:     format,
			Quality:    quality,
		}, func(progress float64) {
			fmt.Printf("\rProgress: %6.1f%%", progress)
		})
		fmt.Println()

		if !ok {
			fatalf("Conversion failed; run 'flash-convert logs' for details")
		}
		fmt.Println("Conversion complete")
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the activity history",
	Run: func(cmd *cobra.Command, args []string) {
		clear, _ := cmd.Flags().GetBool("clear")

		engine, cleanup, err := buildEngine()
		if err != nil {
			fatalf("Error: %v", err)
		}
		defer cleanup()

		if clear {
			engine.History.Clear()
			fmt.Println("History cleared")
			return
		}

		entries := engine.History.ReadAll()
		if len(entries) == 0 {
			fmt.Println("No history entries")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Timestamp, e.Severity, e.Message)
		}
		w.Flush()
	},
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision permissions, directories and external binaries",
	Run: func(cmd *cobra.Command, args []string) {
		engine, cleanup, err := buildEngine()
		if err != nil {
			fatalf("Error: %v", err)
		}
		defer cleanup()

		if !engine.Setup(context.Background()) {
			fatalf("Setup incomplete; run 'flash-convert logs' for details")
		}
		fmt.Println("Setup complete")
	},
}

func init() {
	downloadCmd.Flags().Bool("audio", false, "Download audio only")
	downloadCmd.Flags().String("quality", "", "Quality selector (e.g. 192kbps, 720p)")
	downloadCmd.Flags().String("format", "", "Format identifier")
	downloadCmd.Flags().String("output", "", "Output directory")
	downloadCmd.Flags().Bool("clipboard", false, "Read the URL from the clipboard")

	convertCmd.Flags().String("format", "mp3", "Target format")
	convertCmd.Flags().String("quality", "", "Quality selector (e.g. 192kbps)")

	logsCmd.Flags().Bool("clear", false, "Clear the history")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
