package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/vocabvault/internal/api"
	"github.com/phrazzld/vocabvault/internal/config"
	"github.com/phrazzld/vocabvault/internal/domain/practice"
	"github.com/phrazzld/vocabvault/internal/platform/logger"
	"github.com/phrazzld/vocabvault/internal/service"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the vocabulary API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log := logger.Setup(cfg.Server.LogLevel)

		ctx := cmd.Context()

		st, cleanup, err := openStore(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer cleanup()

		vocabService, err := service.NewVocabService(
			ctx, st, cfg.Vocab.Categories, cfg.Practice.MaxScore, log)
		if err != nil {
			return fmt.Errorf("load collection: %w", err)
		}

		params := practice.NewParams(practice.ParamsConfig{
			MaxScore:  cfg.Practice.MaxScore,
			RoundSize: cfg.Practice.RoundSize,
		})
		practiceService := service.NewPracticeService(vocabService, params, nil, log)

		router := api.NewRouter(vocabService, practiceService, log)

		return startHTTPServer(ctx, cfg, log, router)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// startHTTPServer starts the HTTP server with graceful shutdown support.
// It blocks until the server stops, either by signal or by failure.
func startHTTPServer(
	ctx context.Context,
	cfg *config.Config,
	log *slog.Logger,
	router http.Handler,
) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	// Set up graceful shutdown with signal handling
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", "error", err)
			cancelServer()
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("Shutting down server...")
	case <-serverCtx.Done():
		log.Info("Server context canceled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server shutdown completed")
	return nil
}
