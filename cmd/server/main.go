package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/flash-convert-go/api"
	"github.com/yourusername/flash-convert-go/api/handlers"
	"github.com/yourusername/flash-convert-go/internal/app"
	"github.com/yourusername/flash-convert-go/internal/history"
	"github.com/yourusername/flash-convert-go/pkg/logger"
)

var configPath = flag.String("config", "", "Path to config file")

func main() {
	flag.Parse()

	// Load configuration
	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting Flash Convert server",
		zap.String("version", "1.0.0"),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("bridge_mode", config.Bridge.Mode))

	// Initialize history store
	if err := os.MkdirAll(filepath.Dir(config.History.DatabasePath), 0755); err != nil {
		log.Fatal("Failed to create data directory", zap.Error(err))
	}
	kv, err := history.NewSQLiteKV(config.History.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open history store", zap.Error(err))
	}
	defer kv.Close()

	// Wire the engine
	bridge := app.NewBridge(config, log)
	engine := app.NewEngine(config, bridge, kv, log)

	// First-run provisioning
	engine.Directories.InitializeDefaults(context.Background())

	// Set up HTTP server
	hub := handlers.NewProgressHub(log)
	router := api.SetupRouter(engine, hub, log)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
