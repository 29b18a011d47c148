package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

// UserService manages accounts and the base-currency policy.
type UserService interface {
	// Register creates an account with a hashed password and no base
	// currency. Fails DUPLICATE_EMAIL when the email is taken.
	Register(ctx context.Context, email, password, fullName string) (*models.User, error)

	Get(ctx context.Context, id string) (*models.User, error)

	// SetBaseCurrency is the explicit settings-driven change. Fails
	// ALREADY_SET once a base currency exists.
	SetBaseCurrency(ctx context.Context, userID string, currency models.CurrencyCode) error

	// EnsureBaseCurrency returns the user's base currency, establishing it
	// from supplied when unset. With no base currency and no supplied value
	// it fails BASE_CURRENCY_REQUIRED. An already-set base currency is never
	// overwritten through this path; supplied is ignored.
	EnsureBaseCurrency(ctx context.Context, userID string, supplied models.CurrencyCode) (models.CurrencyCode, error)
}

// ExpenseInput carries the as-entered fields for expense create/update.
type ExpenseInput struct {
	Amount      decimal.Decimal
	Currency    models.CurrencyCode
	Date        time.Time
	Description string
	Recurring   bool
	CategoryID  string
}

// LedgerService owns expense records and categories. Writes normalize the
// entered amount into the owner's base currency at record time.
type LedgerService interface {
	CreateExpense(ctx context.Context, userID string, in ExpenseInput) (*models.Expense, error)
	UpdateExpense(ctx context.Context, userID, id string, in ExpenseInput) (*models.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error
	ListExpenses(ctx context.Context, userID string, filter models.ExpenseFilter) ([]*models.Expense, error)

	CreateCategory(ctx context.Context, userID, name, color string) (*models.Category, error)
	ListCategories(ctx context.Context, userID string) ([]*models.Category, error)
	// DeleteCategory detaches the category from its expenses; the expenses
	// themselves survive as uncategorized.
	DeleteCategory(ctx context.Context, userID, id string) error
}

// BudgetInput carries the fields for budget create/update. Currency is only
// honored when it establishes the user's base currency on first use; once a
// base currency exists it is silently ignored.
type BudgetInput struct {
	Year        int
	Month       int
	CategoryID  string
	LimitAmount decimal.Decimal
	Currency    models.CurrencyCode
}

// BudgetService owns budget limits and computes their derived status.
type BudgetService interface {
	CreateBudget(ctx context.Context, userID string, in BudgetInput) (*models.BudgetStatus, error)
	UpdateBudget(ctx context.Context, userID, id string, in BudgetInput) (*models.BudgetStatus, error)
	DeleteBudget(ctx context.Context, userID, id string) error

	// StatusFor computes spent/remaining/percent-used for every budget in the
	// period. Pure: identical results for an unchanged ledger.
	StatusFor(ctx context.Context, userID string, year, month int) ([]*models.BudgetStatus, error)
}

// SummaryService produces reporting rollups over the ledger.
type SummaryService interface {
	TotalAndByCategory(ctx context.Context, userID string, filter models.ExpenseFilter) (*models.Summary, error)

	// MonthlyTotals returns 12 entries, January through December, months
	// without expenses reported as zero.
	MonthlyTotals(ctx context.Context, userID string, year int) ([]models.MonthlyPoint, error)

	// RenderMonthlyChart renders the monthly totals as a PNG bar chart.
	RenderMonthlyChart(ctx context.Context, userID string, year int) ([]byte, error)
}
