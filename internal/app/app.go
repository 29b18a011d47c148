// Package app wires configuration, storage, clients, and services into one
// shared core used by cmd/expense-server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sreekanthvaripalli/expensemanager/internal/clients/exchangerate"
	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/interfaces"
	"github.com/sreekanthvaripalli/expensemanager/internal/services/budget"
	"github.com/sreekanthvaripalli/expensemanager/internal/services/ledger"
	"github.com/sreekanthvaripalli/expensemanager/internal/services/summary"
	"github.com/sreekanthvaripalli/expensemanager/internal/services/user"
	"github.com/sreekanthvaripalli/expensemanager/internal/storage"
)

// App holds all initialized services and clients.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	Storage        interfaces.StorageManager
	RateProvider   interfaces.RateProvider
	UserService    interfaces.UserService
	LedgerService  interfaces.LedgerService
	BudgetService  interfaces.BudgetService
	SummaryService interfaces.SummaryService
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

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty, in which case EXPMAN_CONFIG and the default
// locations are tried in order.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("EXPMAN_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "expensemanager.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/expensemanager.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	rateClient := exchangerate.NewClient(
		exchangerate.WithBaseURL(config.Clients.ExchangeRate.BaseURL),
		exchangerate.WithRateLimit(config.Clients.ExchangeRate.RateLimit),
		exchangerate.WithTimeout(config.Clients.ExchangeRate.GetTimeout()),
		exchangerate.WithLogger(logger),
	)

	userService := user.NewService(storageManager, logger)
	ledgerService := ledger.NewService(storageManager, userService, rateClient, logger)
	budgetService := budget.NewService(storageManager, userService, logger)
	summaryService := summary.NewService(storageManager, logger)

	app := &App{
		Config:         config,
		Logger:         logger,
		Storage:        storageManager,
		RateProvider:   rateClient,
		UserService:    userService,
		LedgerService:  ledgerService,
		BudgetService:  budgetService,
		SummaryService: summaryService,
		StartupTime:    time.Now(),
	}

	logger.Info().
		Str("version", common.GetFullVersion()).
		Str("environment", config.Environment).
		Str("storage_driver", config.Storage.Driver).
		Dur("startup_duration", time.Since(startupStart)).
		Msg("Application initialized")

	return app, nil
}

// Close releases all resources held by the app.
func (a *App) Close() error {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to close storage")
			return err
		}
	}
	return nil
}
