package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

type ExpenseStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewExpenseStore(db *surrealdb.DB, logger *common.Logger) *ExpenseStore {
	return &ExpenseStore{
		db:     db,
		logger: logger,
	}
}

func (s *ExpenseStore) Get(ctx context.Context, id string) (*models.Expense, error) {
	expense, err := surrealdb.Select[models.Expense](ctx, s.db, surrealmodels.NewRecordID("expense", id))
	if err != nil {
		return nil, fmt.Errorf("failed to select expense: %w", err)
	}
	if expense == nil || expense.ID == "" {
		return nil, models.NewNotFoundError("expense not found")
	}
	return expense, nil
}

func (s *ExpenseStore) Save(ctx context.Context, expense *models.Expense) error {
	sql := "UPSERT type::record('expense', $id) CONTENT $expense"
	vars := map[string]any{"id": expense.ID, "expense": expense}

	_, err := surrealdb.Query[[]models.Expense](ctx, s.db, sql, vars)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (s *ExpenseStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.Expense](ctx, s.db, surrealmodels.NewRecordID("expense", id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (s *ExpenseStore) List(ctx context.Context, userID string, filter models.ExpenseFilter) ([]*models.Expense, error) {
	sql := "SELECT * FROM expense WHERE user_id = $user_id"
	vars := map[string]any{"user_id": userID}

	if filter.StartDate != nil {
		sql += " AND date >= $start_date"
		vars["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		sql += " AND date <= $end_date"
		vars["end_date"] = *filter.EndDate
	}
	if filter.CategoryID != nil {
		sql += " AND category_id = $category_id"
		vars["category_id"] = *filter.CategoryID
	}
	sql += " ORDER BY date DESC, id DESC"

	results, err := surrealdb.Query[[]models.Expense](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var mapped []*models.Expense
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
	}
	// Record-id ordering in the database differs from the lexicographic id
	// tie-break the contract promises, so re-sort.
	models.SortExpenses(mapped)
	return mapped, nil
}

func (s *ExpenseStore) DetachCategory(ctx context.Context, userID, categoryID string) (int, error) {
	sql := "UPDATE expense SET category_id = NONE WHERE user_id = $user_id AND category_id = $category_id"
	vars := map[string]any{"user_id": userID, "category_id": categoryID}

	results, err := surrealdb.Query[[]models.Expense](ctx, s.db, sql, vars)
	if err != nil {
		return 0, fmt.Errorf("failed to detach category from expenses: %w", err)
	}

	count := 0
	if results != nil && len(*results) > 0 {
		count = len((*results)[0].Result)
	}
	s.logger.Debug().
		Str("category_id", categoryID).
		Int("count", count).
		Msg("Category detached from expenses")
	return count, nil
}
