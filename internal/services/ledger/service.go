// Package ledger owns expense records and categories. Every expense write
// normalizes the entered amount into the owner's base currency at record time,
// so reads never need a rate lookup.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/interfaces"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

// Service implements LedgerService
type Service struct {
	storage   interfaces.StorageManager
	users     interfaces.UserService
	converter *Converter
	logger    *common.Logger
}

// NewService creates a new ledger service
func NewService(
	storage interfaces.StorageManager,
	users interfaces.UserService,
	rates interfaces.RateProvider,
	logger *common.Logger,
) *Service {
	return &Service{
		storage:   storage,
		users:     users,
		converter: NewConverter(rates, logger),
		logger:    logger,
	}
}

// validateInput checks the as-entered fields shared by create and update.
func validateInput(in interfaces.ExpenseInput) error {
	if !in.Amount.IsPositive() {
		return models.NewValidationError(models.CodeInvalidInput, "amount must be positive")
	}
	if in.Amount.Exponent() < -2 {
		return models.NewValidationError(models.CodeInvalidInput, "amount must have at most 2 decimal places")
	}
	if !models.ValidCurrencyCode(models.NormalizeCurrency(string(in.Currency))) {
		return models.NewValidationError(models.CodeInvalidInput,
			fmt.Sprintf("invalid currency code %q", string(in.Currency)))
	}
	if in.Date.IsZero() {
		return models.NewValidationError(models.CodeInvalidInput, "date is required")
	}
	return nil
}

// CreateExpense records a new expense. The base-currency gate runs before
// anything is persisted: a user with no base currency cannot record expenses,
// whatever currency they supply here.
func (s *Service) CreateExpense(ctx context.Context, userID string, in interfaces.ExpenseInput) (*models.Expense, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	base, err := s.users.EnsureBaseCurrency(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	if in.CategoryID != "" {
		if _, err := s.storage.Categories().Get(ctx, userID, in.CategoryID); err != nil {
			return nil, err
		}
	}

	currency := models.NormalizeCurrency(string(in.Currency))
	now := time.Now().UTC()
	expense := &models.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        in.Date,
		Description: in.Description,
		Recurring:   in.Recurring,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.applyAmount(ctx, expense, in.Amount, currency, base); err != nil {
		return nil, err
	}

	if err := s.storage.Expenses().Save(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("expense_id", expense.ID).
		Str("amount_base", expense.AmountBase.String()).
		Str("currency", string(currency)).
		Msg("Expense recorded")

	return expense, nil
}

// UpdateExpense rewrites an existing expense from the as-entered fields. The
// conversion is redone only when the amount, currency or date changed; an
// update that only touches description, category or the recurring flag keeps
// the stored base amount, so the historical rate sticks.
func (s *Service) UpdateExpense(ctx context.Context, userID, id string, in interfaces.ExpenseInput) (*models.Expense, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	expense, err := s.storage.Expenses().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense.UserID != userID {
		return nil, models.NewNotFoundError("expense not found")
	}

	base, err := s.users.EnsureBaseCurrency(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	if in.CategoryID != "" {
		if _, err := s.storage.Categories().Get(ctx, userID, in.CategoryID); err != nil {
			return nil, err
		}
	}

	currency := models.NormalizeCurrency(string(in.Currency))
	moneyChanged := !in.Amount.Equal(expense.EnteredAmount()) ||
		currency != expense.EnteredCurrency(base) ||
		!in.Date.Equal(expense.Date)

	expense.Date = in.Date
	expense.Description = in.Description
	expense.Recurring = in.Recurring
	expense.CategoryID = in.CategoryID
	expense.UpdatedAt = time.Now().UTC()

	if moneyChanged {
		if err := s.applyAmount(ctx, expense, in.Amount, currency, base); err != nil {
			return nil, err
		}
	}

	if err := s.storage.Expenses().Save(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("expense_id", expense.ID).
		Bool("reconverted", moneyChanged).
		Msg("Expense updated")

	return expense, nil
}

// applyAmount fills the money fields: a same-currency amount is stored
// exactly with no original fields, a foreign-currency amount is converted and
// the as-entered value preserved alongside.
func (s *Service) applyAmount(ctx context.Context, expense *models.Expense, amount decimal.Decimal, currency, base models.CurrencyCode) error {
	if currency == base {
		expense.AmountBase = amount
		expense.OriginalAmount = nil
		expense.OriginalCurrency = ""
		return nil
	}

	converted, err := s.converter.Convert(ctx, amount, currency, base, expense.Date)
	if err != nil {
		return err
	}
	original := amount
	expense.AmountBase = converted
	expense.OriginalAmount = &original
	expense.OriginalCurrency = currency
	return nil
}

// DeleteExpense removes an expense permanently.
func (s *Service) DeleteExpense(ctx context.Context, userID, id string) error {
	expense, err := s.storage.Expenses().Get(ctx, id)
	if err != nil {
		return err
	}
	if expense.UserID != userID {
		return models.NewNotFoundError("expense not found")
	}

	if err := s.storage.Expenses().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("expense_id", id).Msg("Expense deleted")
	return nil
}

// ListExpenses returns the user's expenses matching the filter, newest first.
func (s *Service) ListExpenses(ctx context.Context, userID string, filter models.ExpenseFilter) ([]*models.Expense, error) {
	return s.storage.Expenses().List(ctx, userID, filter)
}

// CreateCategory adds a spending category.
func (s *Service) CreateCategory(ctx context.Context, userID, name, color string) (*models.Category, error) {
	if err := models.ValidateCategoryName(name); err != nil {
		return nil, err
	}
	if err := models.ValidateCategoryColor(color); err != nil {
		return nil, err
	}

	if existing, err := s.storage.Categories().GetByName(ctx, userID, name); err == nil && existing != nil {
		return nil, models.NewBusinessError(models.CodeDuplicateCategory,
			fmt.Sprintf("category %q already exists", name))
	}

	category := &models.Category{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.storage.Categories().Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("category", name).Msg("Category created")
	return category, nil
}

// ListCategories returns the user's categories.
func (s *Service) ListCategories(ctx context.Context, userID string) ([]*models.Category, error) {
	return s.storage.Categories().List(ctx, userID)
}

// DeleteCategory removes a category. Its expenses survive as uncategorized.
func (s *Service) DeleteCategory(ctx context.Context, userID, id string) error {
	if _, err := s.storage.Categories().Get(ctx, userID, id); err != nil {
		return err
	}

	detached, err := s.storage.Expenses().DetachCategory(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.storage.Categories().Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("category_id", id).
		Int("detached_expenses", detached).
		Msg("Category deleted")

	return nil
}

// Compile-time check
var _ interfaces.LedgerService = (*Service)(nil)
