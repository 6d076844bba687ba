// Package app wires configuration, storage, the metrics engine, and services
// into a runnable application core.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kenshiro-fujita/investment-analysis/internal/common"
	"github.com/kenshiro-fujita/investment-analysis/internal/interfaces"
	"github.com/kenshiro-fujita/investment-analysis/internal/metrics"
	"github.com/kenshiro-fujita/investment-analysis/internal/services/company"
	"github.com/kenshiro-fujita/investment-analysis/internal/storage/companydb"
)

// App holds all initialized services and storage.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	Store          interfaces.CompanyStore
	Engine         *metrics.Engine
	CompanyService interfaces.CompanyService
	StartupTime    time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, the derivation engine, and services.
// configPath may be empty, in which case the default resolution is used:
// INVEST_CONFIG, then invest.toml next to the binary, then config/invest.toml.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("INVEST_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "invest.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/invest.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := companydb.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	engine := metrics.NewEngine(metrics.WithROICMAWeight(config.Derivation.ROICMAWeight))
	companyService := company.NewService(store, engine, logger)

	a := &App{
		Config:         config,
		Logger:         logger,
		Store:          store,
		Engine:         engine,
		CompanyService: companyService,
		StartupTime:    startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
		a.Store = nil
	}
}
