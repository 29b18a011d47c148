package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/interfaces"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
	"github.com/sreekanthvaripalli/expensemanager/internal/services/user"
	"github.com/sreekanthvaripalli/expensemanager/internal/storage/memory"
)

func newTestLedger(t *testing.T, rates *stubRates) (*Service, *user.Service, string) {
	t.Helper()
	logger := common.NewSilentLogger()
	storage := memory.NewManager()
	users := user.NewService(storage, logger)

	u, err := users.Register(context.Background(), "a@example.com", "pw", "A")
	require.NoError(t, err)

	return NewService(storage, users, rates, logger), users, u.ID
}

func marchInput(amount string, currency models.CurrencyCode) interfaces.ExpenseInput {
	return interfaces.ExpenseInput{
		Amount:   decimal.RequireFromString(amount),
		Currency: currency,
		Date:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateExpense_RequiresBaseCurrency(t *testing.T) {
	svc, _, userID := newTestLedger(t, &stubRates{rate: decimal.NewFromInt(83)})
	ctx := context.Background()

	_, err := svc.CreateExpense(ctx, userID, marchInput("25.50", "USD"))
	require.Error(t, err)
	assert.Equal(t, models.CodeBaseCurrencyRequired, models.CodeOf(err))

	// Nothing was persisted by the failed attempt.
	list, err := svc.ListExpenses(ctx, userID, models.ExpenseFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateExpense_SameCurrencyStoredExactly(t *testing.T) {
	rates := &stubRates{rate: decimal.NewFromInt(83)}
	svc, users, userID := newTestLedger(t, rates)
	ctx := context.Background()

	require.NoError(t, users.SetBaseCurrency(ctx, userID, "USD"))

	e, err := svc.CreateExpense(ctx, userID, marchInput("25.50", "usd"))
	require.NoError(t, err)
	assert.Equal(t, "25.50", e.AmountBase.StringFixed(2))
	assert.Nil(t, e.OriginalAmount)
	assert.Empty(t, e.OriginalCurrency)
	assert.Zero(t, rates.calls)
}

func TestCreateExpense_ConvertsAndPreservesOriginal(t *testing.T) {
	rates := &stubRates{rate: decimal.RequireFromString("83.12")}
	svc, users, userID := newTestLedger(t, rates)
	ctx := context.Background()

	require.NoError(t, users.SetBaseCurrency(ctx, userID, "INR"))

	e, err := svc.CreateExpense(ctx, userID, marchInput("10.00", "USD"))
	require.NoError(t, err)
	assert.Equal(t, "831.20", e.AmountBase.StringFixed(2))
	require.NotNil(t, e.OriginalAmount)
	assert.Equal(t, "10.00", e.OriginalAmount.StringFixed(2))
	assert.Equal(t, models.CurrencyCode("USD"), e.OriginalCurrency)
}

func TestCreateExpense_Validation(t *testing.T) {
	svc, users, userID := newTestLedger(t, &stubRates{rate: decimal.NewFromInt(1)})
	ctx := context.Background()
	require.NoError(t, users.SetBaseCurrency(ctx, userID, "USD"))

	cases := []struct {
		name string
		in   interfaces.ExpenseInput
	}{
		{"zero amount", marchInput("0", "USD")},
		{"negative amount", marchInput("-5", "USD")},
		{"three decimal places", marchInput("1.005", "USD")},
		{"bad currency", marchInput("10", "DOLLAR")},
		{"zero date", interfaces.ExpenseInput{Amount: decimal.NewFromInt(10), Currency: "USD"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateExpense(ctx, userID, tc.in)
			require.Error(t, err)
			assert.Equal(t, models.CodeInvalidInput, models.CodeOf(err))
		})
	}
}

func TestCreateExpense_UnknownCategory(t *testing.T) {
	svc, users, userID := newTestLedger(t, &stubRates{rate: decimal.NewFromInt(1)})
	ctx := context.Background()
	require.NoError(t, users.SetBaseCurrency(ctx, userID, "USD"))

	in := marchInput("10.00", "USD")
	in.CategoryID = "nope"
	_, err := svc.CreateExpense(ctx, userID, in)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestCreateExpense_RateFailureBlocksWrite(t *testing.T) {
	rates := &stubRates{err: models.NewDependencyError(models.CodeRateUnavailable, "provider down")}
	svc, users, userID := newTestLedger(t, rates)
	ctx := context.Background()
	require.NoError(t, users.SetBaseCurrency(ctx, userID, "INR"))

	_, err := svc.CreateExpense(ctx, userID, marchInput("10.00", "USD"))
	require.Error(t, err)
	assert.Equal(t, models.CodeRateUnavailable, models.CodeOf(err))

	list, err := svc.ListExpenses(ctx, userID, models.ExpenseFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateExpense_KeepsRateWhenMoneyUnchanged(t *testing.T) {
	rates := &stubRates{rate: decimal.RequireFromString("83.00")}
	svc, users, userID := newTestLedger(t, rates)
	ctx := context.Background()
	require.NoError(t, users.SetBaseCurrency(ctx, userID, "INR"))

	e, err := svc.CreateExpense(ctx, userID, marchInput("10.00", "USD"))
	require.NoError(t, err)
	require.Equal(t, 1, rates.calls)

	// The rate moves. A description-only update must not reconvert.
	rates.rate = decimal.RequireFromString("90.00")

	in := marchInput("10.00", "USD")
	in.Description = "lunch"
	updated, err := svc.UpdateExpense(ctx, userID, e.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "830.00", updated.AmountBase.StringFixed(2))
	assert.Equal(t, "lunch", updated.Description)
	assert.Equal(t, 1, rates.calls)
}

func TestUpdateExpense_ReconvertsWhenAmountChanges(t *testing.T) {
	rates := &stubRates{rate: decimal.RequireFromString("83.00")}
	svc, users, userID := newTestLedger(t, rates)
	ctx := context.Background()
	require.NoError(t, users.SetBaseCurrency(ctx, userID, "INR"))

	e, err := svc.CreateExpense(ctx, userID, marchInput("10.00", "USD"))
	require.NoError(t, err)

	rates.rate = decimal.RequireFromString("90.00")
	updated, err := svc.UpdateExpense(ctx, userID, e.ID, marchInput("20.00", "USD"))
	require.NoError(t, err)
	assert.Equal(t, "1800.00", updated.AmountBase.StringFixed(2))
	require.NotNil(t, updated.OriginalAmount)
	assert.Equal(t, "20.00", updated.OriginalAmount.StringFixed(2))
}

func TestUpdateExpense_SwitchToBaseCurrencyDropsOriginal(t *testing.T) {
	rates := &stubRates{rate: decimal.RequireFromString("83.00")}
	svc, users, userID := newTestLedger(t, rates)
	ctx := context.Background()
	require.NoError(t, users.SetBaseCurrency(ctx, userID, "INR"))

	e, err := svc.CreateExpense(ctx, userID, marchInput("10.00", "USD"))
	require.NoError(t, err)

	updated, err := svc.UpdateExpense(ctx, userID, e.ID, marchInput("500.00", "INR"))
	require.NoError(t, err)
	assert.Equal(t, "500.00", updated.AmountBase.StringFixed(2))
	assert.Nil(t, updated.OriginalAmount)
	assert.Empty(t, updated.OriginalCurrency)
}

func TestUpdateExpense_ForeignOwner(t *testing.T) {
	svc, users, userID := newTestLedger(t, &stubRates{rate: decimal.NewFromInt(1)})
	ctx := context.Background()
	require.NoError(t, users.SetBaseCurrency(ctx, userID, "USD"))

	e, err := svc.CreateExpense(ctx, userID, marchInput("10.00", "USD"))
	require.NoError(t, err)

	other, err := users.Register(ctx, "b@example.com", "pw", "B")
	require.NoError(t, err)

	_, err = svc.UpdateExpense(ctx, other.ID, e.ID, marchInput("10.00", "USD"))
	assert.Equal(t, models.KindNotFound, models.KindOf(err))

	err = svc.DeleteExpense(ctx, other.ID, e.ID)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestCategoryLifecycle(t *testing.T) {
	svc, users, userID := newTestLedger(t, &stubRates{rate: decimal.NewFromInt(1)})
	ctx := context.Background()
	require.NoError(t, users.SetBaseCurrency(ctx, userID, "USD"))

	food, err := svc.CreateCategory(ctx, userID, "Food", "#ff8800")
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, userID, "Food", "")
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicateCategory, models.CodeOf(err))

	in := marchInput("10.00", "USD")
	in.CategoryID = food.ID
	e, err := svc.CreateExpense(ctx, userID, in)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, userID, food.ID))

	// The expense survives, uncategorized.
	got, err := svc.ListExpenses(ctx, userID, models.ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
	assert.Empty(t, got[0].CategoryID)

	cats, err := svc.ListCategories(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestCreateCategory_Validation(t *testing.T) {
	svc, _, userID := newTestLedger(t, &stubRates{rate: decimal.NewFromInt(1)})
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, userID, "", "")
	assert.Equal(t, models.CodeInvalidInput, models.CodeOf(err))

	_, err = svc.CreateCategory(ctx, userID, "Food", "red")
	assert.Equal(t, models.CodeInvalidInput, models.CodeOf(err))
}
