// Package budget owns monthly spending limits and their derived status.
//
// A status is never stored. Every query recomputes spent, remaining and
// percent-used from the ledger, so two status calls over an unchanged ledger
// always agree.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/interfaces"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

// overallCategoryName labels the overall budget in status responses.
const overallCategoryName = "All expenses"

// Service implements BudgetService
type Service struct {
	storage interfaces.StorageManager
	users   interfaces.UserService
	logger  *common.Logger
}

// NewService creates a new budget service
func NewService(storage interfaces.StorageManager, users interfaces.UserService, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		users:   users,
		logger:  logger,
	}
}

// CreateBudget adds a budget for a (year, month, category) period. This is the
// one write path allowed to establish the user's base currency: when none is
// set yet, in.Currency becomes it. Once a base currency exists, in.Currency is
// silently ignored.
func (s *Service) CreateBudget(ctx context.Context, userID string, in interfaces.BudgetInput) (*models.BudgetStatus, error) {
	if err := models.ValidatePeriod(in.Year, in.Month); err != nil {
		return nil, err
	}
	if err := models.ValidateLimit(in.LimitAmount); err != nil {
		return nil, err
	}

	if in.CategoryID != "" {
		if _, err := s.storage.Categories().Get(ctx, userID, in.CategoryID); err != nil {
			return nil, err
		}
	}

	// Friendly duplicate check first; the storage uniqueness constraint is the
	// atomic backstop when two creates race.
	if _, err := s.storage.Budgets().FindByPeriod(ctx, userID, in.Year, in.Month, in.CategoryID); err == nil {
		return nil, duplicateBudgetError(in.Year, in.Month, in.CategoryID)
	}

	// Last check before the write, so a create that fails above never
	// establishes the base currency as a side effect.
	if _, err := s.users.EnsureBaseCurrency(ctx, userID, in.Currency); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	budget := &models.Budget{
		ID:          uuid.NewString(),
		UserID:      userID,
		Year:        in.Year,
		Month:       in.Month,
		CategoryID:  in.CategoryID,
		LimitAmount: in.LimitAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.Budgets().Save(ctx, budget); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("year", in.Year).
		Int("month", in.Month).
		Str("category_id", in.CategoryID).
		Str("limit", in.LimitAmount.String()).
		Msg("Budget created")

	return s.statusOf(ctx, userID, budget)
}

// UpdateBudget rewrites an existing budget. Moving it onto a period that
// already holds another budget fails DUPLICATE_BUDGET. in.Currency never
// changes an established base currency.
func (s *Service) UpdateBudget(ctx context.Context, userID, id string, in interfaces.BudgetInput) (*models.BudgetStatus, error) {
	if err := models.ValidatePeriod(in.Year, in.Month); err != nil {
		return nil, err
	}
	if err := models.ValidateLimit(in.LimitAmount); err != nil {
		return nil, err
	}

	budget, err := s.storage.Budgets().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if budget.UserID != userID {
		return nil, models.NewNotFoundError("budget not found")
	}

	if in.CategoryID != "" {
		if _, err := s.storage.Categories().Get(ctx, userID, in.CategoryID); err != nil {
			return nil, err
		}
	}

	if _, err := s.users.EnsureBaseCurrency(ctx, userID, in.Currency); err != nil {
		return nil, err
	}

	newKey := models.BudgetPeriodKey(userID, in.Year, in.Month, in.CategoryID)
	if newKey != budget.PeriodKey() {
		if existing, err := s.storage.Budgets().FindByPeriod(ctx, userID, in.Year, in.Month, in.CategoryID); err == nil && existing.ID != id {
			return nil, duplicateBudgetError(in.Year, in.Month, in.CategoryID)
		}
	}

	budget.Year = in.Year
	budget.Month = in.Month
	budget.CategoryID = in.CategoryID
	budget.LimitAmount = in.LimitAmount
	budget.UpdatedAt = time.Now().UTC()

	if err := s.storage.Budgets().Save(ctx, budget); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("budget_id", id).Msg("Budget updated")
	return s.statusOf(ctx, userID, budget)
}

// DeleteBudget removes a budget.
func (s *Service) DeleteBudget(ctx context.Context, userID, id string) error {
	budget, err := s.storage.Budgets().Get(ctx, id)
	if err != nil {
		return err
	}
	if budget.UserID != userID {
		return models.NewNotFoundError("budget not found")
	}

	if err := s.storage.Budgets().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("budget_id", id).Msg("Budget deleted")
	return nil
}

// StatusFor computes the status of every budget in the period. An overall
// budget counts every expense of the month, category budgets count theirs
// again; the overlap is intentional, each budget answers its own question.
func (s *Service) StatusFor(ctx context.Context, userID string, year, month int) ([]*models.BudgetStatus, error) {
	if err := models.ValidatePeriod(year, month); err != nil {
		return nil, err
	}

	budgets, err := s.storage.Budgets().ListForPeriod(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	statuses := make([]*models.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		status, err := s.statusOf(ctx, userID, b)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// statusOf computes the derived status for one budget from the ledger.
func (s *Service) statusOf(ctx context.Context, userID string, b *models.Budget) (*models.BudgetStatus, error) {
	start, end := models.PeriodBounds(b.Year, b.Month)
	filter := models.ExpenseFilter{StartDate: &start, EndDate: &end}
	if b.CategoryID != "" {
		categoryID := b.CategoryID
		filter.CategoryID = &categoryID
	}

	expenses, err := s.storage.Expenses().List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	spent := models.SumAmountBase(expenses)

	name := overallCategoryName
	if b.CategoryID != "" {
		if category, err := s.storage.Categories().Get(ctx, userID, b.CategoryID); err == nil {
			name = category.Name
		} else {
			// The category was deleted out from under the budget.
			name = "Unknown category"
		}
	}

	return models.NewBudgetStatus(b, name, spent), nil
}

func duplicateBudgetError(year, month int, categoryID string) error {
	scope := "overall"
	if categoryID != "" {
		scope = fmt.Sprintf("category %s", categoryID)
	}
	return models.NewBusinessError(models.CodeDuplicateBudget,
		fmt.Sprintf("a %s budget already exists for %04d-%02d", scope, year, month))
}

// Compile-time check
var _ interfaces.BudgetService = (*Service)(nil)
