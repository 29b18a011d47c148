package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

type BudgetStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewBudgetStore(db *surrealdb.DB, logger *common.Logger) *BudgetStore {
	return &BudgetStore{
		db:     db,
		logger: logger,
	}
}

func (s *BudgetStore) Get(ctx context.Context, id string) (*models.Budget, error) {
	budget, err := surrealdb.Select[models.Budget](ctx, s.db, surrealmodels.NewRecordID("budget", id))
	if err != nil {
		return nil, fmt.Errorf("failed to select budget: %w", err)
	}
	if budget == nil || budget.ID == "" {
		return nil, models.NewNotFoundError("budget not found")
	}
	return budget, nil
}

// Save upserts the budget. The budget_period_unique index rejects a write
// that would produce a second budget for the same (user, year, month,
// category); that rejection is mapped to DUPLICATE_BUDGET so a concurrent
// duplicate create yields one success and one typed failure.
func (s *BudgetStore) Save(ctx context.Context, budget *models.Budget) error {
	sql := "UPSERT type::record('budget', $id) CONTENT $budget"
	vars := map[string]any{"id": budget.ID, "budget": budget}

	_, err := surrealdb.Query[[]models.Budget](ctx, s.db, sql, vars)
	if err != nil {
		if isUniqueViolation(err) {
			return models.NewBusinessError(models.CodeDuplicateBudget,
				fmt.Sprintf("a budget already exists for %04d-%02d", budget.Year, budget.Month))
		}
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

func (s *BudgetStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.Budget](ctx, s.db, surrealmodels.NewRecordID("budget", id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

func (s *BudgetStore) ListForPeriod(ctx context.Context, userID string, year, month int) ([]*models.Budget, error) {
	sql := "SELECT * FROM budget WHERE user_id = $user_id AND year = $year AND month = $month ORDER BY category_id ASC"
	vars := map[string]any{"user_id": userID, "year": year, "month": month}

	results, err := surrealdb.Query[[]models.Budget](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.Budget
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}

func (s *BudgetStore) FindByPeriod(ctx context.Context, userID string, year, month int, categoryID string) (*models.Budget, error) {
	sql := "SELECT * FROM budget WHERE user_id = $user_id AND year = $year AND month = $month AND category_id = $category_id LIMIT 1"
	if categoryID == "" {
		// The overall budget is stored with no category_id field at all.
		sql = "SELECT * FROM budget WHERE user_id = $user_id AND year = $year AND month = $month AND (category_id = NONE OR category_id = '') LIMIT 1"
	}
	vars := map[string]any{"user_id": userID, "year": year, "month": month}
	if categoryID != "" {
		vars["category_id"] = categoryID
	}

	results, err := surrealdb.Query[[]models.Budget](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget by period: %w", err)
	}

	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return &(*results)[0].Result[0], nil
	}
	return nil, models.NewNotFoundError("budget not found")
}
