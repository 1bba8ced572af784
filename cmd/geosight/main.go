package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geosight/geosight/internal/api"
	"github.com/geosight/geosight/internal/audit"
	"github.com/geosight/geosight/internal/config"
	"github.com/geosight/geosight/internal/insights"
	"github.com/geosight/geosight/internal/notifications"
	"github.com/geosight/geosight/internal/platforms"
	"github.com/geosight/geosight/internal/scheduler"
	"github.com/geosight/geosight/internal/storage"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "geosight",
	Short:        "AI search visibility audits",
	Long:         "geosight asks AI answer engines about a brand and scores how visible, well cited and well regarded it is.",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load environment variables from .env file if it exists
		if err := godotenv.Load(); err != nil {
			logrus.Debug("No .env file found, using environment variables")
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logrus.SetLevel(logrus.InfoLevel)
		if cfg.Debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(platformsCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the audit scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.Info("Starting GEO-Sight")

		ctx := context.Background()
		registry := newRegistry(cfg)

		auditService, err := newAuditService(ctx, cfg, registry)
		if err != nil {
			return err
		}

		schedulerService := scheduler.NewService(cfg, auditService)
		if err := schedulerService.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer schedulerService.Stop()

		apiServer := api.NewServer(auditService, registry)
		server := &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Port),
			Handler:      apiServer,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 10 * time.Minute,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logrus.Infof("HTTP server starting on port %s", cfg.Port)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		// Wait for interrupt signal to gracefully shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-quit:
		case err := <-errCh:
			return fmt.Errorf("HTTP server failed: %w", err)
		}

		logrus.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("Server forced to shutdown: %v", err)
		}
		if err := apiServer.Close(shutdownCtx); err != nil {
			logrus.Errorf("Triggered watchlist run did not stop: %v", err)
		}

		logrus.Info("Server exited")
		return nil
	},
}

// newRandom returns a seeded source when RANDOM_SEED is set, nil otherwise.
// offset keeps the mock and the insight generator on distinct streams.
func newRandom(cfg *config.Config, offset int64) *rand.Rand {
	if cfg.RandomSeed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(cfg.RandomSeed + offset))
}

func newRegistry(cfg *config.Config) *platforms.Registry {
	mock := platforms.NewMockClient(newRandom(cfg, 0), cfg.MockMentionProbability)

	return platforms.NewRegistry(mock,
		platforms.NewChatGPTClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, ""),
		platforms.NewGeminiClient(cfg.GoogleAIAPIKey, cfg.GeminiModel),
		platforms.NewPerplexityClient(cfg.PerplexityAPIKey, cfg.PerplexityModel, ""),
		platforms.NewClaudeClient(cfg.AnthropicAPIKey, cfg.ClaudeModel, ""),
	)
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.StorageInterface, error) {
	if cfg.StorageBackend == "azure" {
		store, err := storage.NewAzureStorage(ctx, cfg.StorageAccount, cfg.StorageContainer)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		return store, nil
	}
	return storage.NewMemoryStorage(), nil
}

func newAuditService(ctx context.Context, cfg *config.Config, registry *platforms.Registry) (*audit.Service, error) {
	store, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	engine := audit.NewEngine(registry, insights.NewGenerator(newRandom(cfg, 1)), audit.EngineOptions{
		Platforms:    cfg.AuditPlatforms(),
		Templates:    cfg.MaxQueryTemplates,
		QueryTimeout: cfg.QueryTimeout,
	})

	var notifier notifications.NotificationInterface
	if cfg.NotificationsEnabled() {
		notifier = notifications.NewService(cfg)
	}

	return audit.NewService(cfg, engine, store, notifier), nil
}
