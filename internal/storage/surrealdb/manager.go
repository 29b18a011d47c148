// Package surrealdb implements the storage contracts on SurrealDB.
package surrealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/interfaces"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	userStore     *UserStore
	categoryStore *CategoryStore
	expenseStore  *ExpenseStore
	budgetStore   *BudgetStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	if err := defineSchema(ctx, db); err != nil {
		return nil, err
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}

	m.userStore = NewUserStore(db, logger)
	m.categoryStore = NewCategoryStore(db, logger)
	m.expenseStore = NewExpenseStore(db, logger)
	m.budgetStore = NewBudgetStore(db, logger)

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

func (m *Manager) Users() interfaces.UserStore {
	return m.userStore
}

func (m *Manager) Categories() interfaces.CategoryStore {
	return m.categoryStore
}

func (m *Manager) Expenses() interfaces.ExpenseStore {
	return m.expenseStore
}

func (m *Manager) Budgets() interfaces.BudgetStore {
	return m.budgetStore
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// defineSchema defines the tables so queries against empty tables don't
// error, plus the unique indexes that back the data-model invariants: one
// account per email, one category name per user, one budget per (user,
// period, category). The budget index is what turns a duplicate-create race
// into exactly one success.
func defineSchema(ctx context.Context, db *surrealdb.DB) error {
	ddl := []string{
		"DEFINE TABLE IF NOT EXISTS user SCHEMALESS",
		"DEFINE TABLE IF NOT EXISTS category SCHEMALESS",
		"DEFINE TABLE IF NOT EXISTS expense SCHEMALESS",
		"DEFINE TABLE IF NOT EXISTS budget SCHEMALESS",
		"DEFINE INDEX IF NOT EXISTS user_email_unique ON user FIELDS email UNIQUE",
		"DEFINE INDEX IF NOT EXISTS category_name_unique ON category FIELDS user_id, name UNIQUE",
		"DEFINE INDEX IF NOT EXISTS budget_period_unique ON budget FIELDS user_id, year, month, category_id UNIQUE",
		"DEFINE INDEX IF NOT EXISTS expense_user_date ON expense FIELDS user_id, date",
	}
	for _, sql := range ddl {
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return fmt.Errorf("failed to apply schema statement %q: %w", sql, err)
		}
	}
	return nil
}

// isUniqueViolation reports whether a SurrealDB error is a unique-index
// violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "already contains") || strings.Contains(msg, "unique")
}

// isNotFoundError reports whether a SurrealDB error indicates a missing
// record.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "not found")
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
