package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DoyleJ11/crew-draft-backend/internal/catalog"
	"github.com/DoyleJ11/crew-draft-backend/internal/config"
	"github.com/DoyleJ11/crew-draft-backend/internal/draft"
	"github.com/DoyleJ11/crew-draft-backend/internal/logging"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "crew-draft",
	Short:         "Crew draft engine and API server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file loaded before reading the environment")
	rootCmd.AddCommand(newServeCmd(), newDraftCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app is what both commands need: configuration, a logger and a draft
// service bound to the configured catalog backend.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *draft.Service
	close   func()
}

func newApp() (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	gw, closeGW, err := newGateway(cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	svc, err := draft.NewService(&draft.Config{
		Gateway:          gw,
		Logger:           logger,
		FetchTimeout:     cfg.CatalogTimeout,
		DefaultSourceIDs: cfg.DefaultSourceIDs,
	})
	if err != nil {
		closeGW()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		service: svc,
		close: func() {
			closeGW()
			_ = logger.Sync()
		},
	}, nil
}

func newGateway(cfg *config.Config) (catalog.Gateway, func(), error) {
	switch cfg.CatalogBackend {
	case config.BackendPostgres:
		gw, err := catalog.NewPostgresGateway(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return gw, func() { _ = gw.Close() }, nil
	default:
		gw, err := catalog.NewHTTPGateway(catalog.HTTPConfig{
			BaseURL: cfg.CatalogBaseURL,
			Timeout: cfg.CatalogTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return gw, func() {}, nil
	}
}
