// Package summary produces reporting rollups over the ledger. All rollups
// work on AmountBase, so mixed-currency ledgers report coherent totals in the
// owner's base currency.
package summary

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/interfaces"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

// Service implements SummaryService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new summary service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// TotalAndByCategory sums the filtered expenses as a grand total and a
// per-category breakdown keyed by category name. Uncategorized expenses count
// only toward the grand total.
func (s *Service) TotalAndByCategory(ctx context.Context, userID string, filter models.ExpenseFilter) (*models.Summary, error) {
	expenses, err := s.storage.Expenses().List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	categories, err := s.storage.Categories().List(ctx, userID)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[string]string, len(categories))
	for _, c := range categories {
		nameByID[c.ID] = c.Name
	}

	summary := &models.Summary{
		Total:           models.SumAmountBase(expenses),
		TotalByCategory: make(map[string]decimal.Decimal),
	}

	for _, e := range expenses {
		if e.CategoryID == "" {
			continue
		}
		name, ok := nameByID[e.CategoryID]
		if !ok {
			// Stale reference, the category no longer exists.
			continue
		}
		summary.TotalByCategory[name] = summary.TotalByCategory[name].Add(e.AmountBase)
	}

	return summary, nil
}

// MonthlyTotals returns one entry per calendar month of the year, January
// through December, months without expenses reported as zero.
func (s *Service) MonthlyTotals(ctx context.Context, userID string, year int) ([]models.MonthlyPoint, error) {
	if err := models.ValidatePeriod(year, 1); err != nil {
		return nil, err
	}

	start, _ := models.PeriodBounds(year, 1)
	_, end := models.PeriodBounds(year, 12)
	expenses, err := s.storage.Expenses().List(ctx, userID, models.ExpenseFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}

	totals := make([]decimal.Decimal, 12)
	for _, e := range expenses {
		totals[int(e.Date.Month())-1] = totals[int(e.Date.Month())-1].Add(e.AmountBase)
	}

	points := make([]models.MonthlyPoint, 12)
	for i := range points {
		points[i] = models.MonthlyPoint{
			Month: models.MonthName(i + 1),
			Total: totals[i],
		}
	}
	return points, nil
}

// Compile-time check
var _ interfaces.SummaryService = (*Service)(nil)
