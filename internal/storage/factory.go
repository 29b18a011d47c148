// Package storage selects a persistence backend from configuration.
package storage

import (
	"fmt"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/interfaces"
	"github.com/sreekanthvaripalli/expensemanager/internal/storage/memory"
	"github.com/sreekanthvaripalli/expensemanager/internal/storage/surrealdb"
)

// Driver constants.
const (
	DriverSurrealDB = "surrealdb"
	DriverMemory    = "memory"
)

// NewStorageManager creates a storage manager for the configured driver.
// Supported drivers: "surrealdb" (default), "memory".
func NewStorageManager(logger *common.Logger, config *common.Config) (interfaces.StorageManager, error) {
	driver := config.Storage.Driver
	if driver == "" {
		driver = DriverSurrealDB
	}

	switch driver {
	case DriverSurrealDB:
		return surrealdb.NewManager(logger, config)

	case DriverMemory:
		logger.Warn().Msg("Using in-memory storage, data will not survive restarts")
		return memory.NewManager(), nil

	default:
		return nil, fmt.Errorf("unknown storage driver: %s (supported: surrealdb, memory)", driver)
	}
}
