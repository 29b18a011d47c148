// Package interfaces defines the service, storage, and client contracts for
// the expense manager core.
package interfaces

import (
	"context"

	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

// StorageManager coordinates all storage backends. Implementations enforce
// the uniqueness constraints atomically: a race between two writes of the
// same budget period yields exactly one success.
type StorageManager interface {
	Users() UserStore
	Categories() CategoryStore
	Expenses() ExpenseStore
	Budgets() BudgetStore

	// Lifecycle
	Close() error
}

// UserStore manages user accounts. Missing records are reported as
// models.Error with code NOT_FOUND.
type UserStore interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error

	// EstablishBaseCurrency performs the unset -> set base-currency
	// transition atomically. It returns the currency in effect after the
	// call and whether this call performed the transition; when another
	// writer won the race, the winner's currency comes back with false.
	EstablishBaseCurrency(ctx context.Context, userID string, currency models.CurrencyCode) (models.CurrencyCode, bool, error)
}

// CategoryStore manages expense categories.
type CategoryStore interface {
	Get(ctx context.Context, userID, id string) (*models.Category, error)
	GetByName(ctx context.Context, userID, name string) (*models.Category, error)
	Save(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*models.Category, error)
}

// ExpenseStore manages expense records.
type ExpenseStore interface {
	Get(ctx context.Context, id string) (*models.Expense, error)
	Save(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id string) error

	// List returns the user's expenses within the filter bounds, ordered by
	// date descending then id descending.
	List(ctx context.Context, userID string, filter models.ExpenseFilter) ([]*models.Expense, error)

	// DetachCategory clears the category from all of the user's expenses that
	// reference it, returning the number of detached records.
	DetachCategory(ctx context.Context, userID, categoryID string) (int, error)
}

// BudgetStore manages budget limits. Save reports a write that would violate
// the per-period uniqueness constraint as models.Error DUPLICATE_BUDGET.
type BudgetStore interface {
	Get(ctx context.Context, id string) (*models.Budget, error)
	Save(ctx context.Context, budget *models.Budget) error
	Delete(ctx context.Context, id string) error
	ListForPeriod(ctx context.Context, userID string, year, month int) ([]*models.Budget, error)

	// FindByPeriod returns the budget for the exact (user, year, month,
	// category) key, or a NOT_FOUND error. An empty categoryID addresses the
	// overall budget.
	FindByPeriod(ctx context.Context, userID string, year, month int, categoryID string) (*models.Budget, error)
}
