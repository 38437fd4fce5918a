// Package app wires configuration, storage, and services into one unit
// shared by the server entrypoint and the handler tests.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/common"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/interfaces"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/services/analysis"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/services/forecast"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/storage"
)

// App holds all initialized services and storage.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Storage         interfaces.StorageManager
	AnalysisService interfaces.AnalysisService
	ForecastService interfaces.ForecastService
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes config, logging, storage, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Load configuration - check provided path, CASHFLOW_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("CASHFLOW_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "cashflow.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/cashflow.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := &App{
		Config:          config,
		Logger:          logger,
		Storage:         storageManager,
		AnalysisService: analysis.NewService(logger),
		ForecastService: forecast.NewService(config.Forecast, logger),
		StartupTime:     startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
