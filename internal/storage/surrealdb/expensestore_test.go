package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

func seedExpense(t *testing.T, store *ExpenseStore, id string, day int, categoryID string) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), &models.Expense{
		ID:         id,
		UserID:     "u1",
		AmountBase: decimal.NewFromInt(10),
		Date:       time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		CategoryID: categoryID,
	}))
}

func TestExpenseStoreListFilterAndOrder(t *testing.T) {
	db := testDB(t)
	store := NewExpenseStore(db, testLogger())
	ctx := context.Background()

	seedExpense(t, store, "a", 1, "food")
	seedExpense(t, store, "b", 5, "")
	seedExpense(t, store, "c", 5, "food")
	seedExpense(t, store, "d", 9, "travel")

	// Another user's expense never shows up.
	require.NoError(t, store.Save(ctx, &models.Expense{
		ID: "x", UserID: "u2", AmountBase: decimal.NewFromInt(99),
		Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}))

	// Date descending, id descending on the tie.
	all, err := store.List(ctx, "u1", models.ExpenseFilter{})
	require.NoError(t, err)
	ids := make([]string, len(all))
	for i, e := range all {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids)

	// Date bounds are inclusive.
	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	ranged, err := store.List(ctx, "u1", models.ExpenseFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, ranged, 3)

	cat := "food"
	food, err := store.List(ctx, "u1", models.ExpenseFilter{CategoryID: &cat})
	require.NoError(t, err)
	assert.Len(t, food, 2)
}

func TestExpenseStoreSaveRoundTrip(t *testing.T) {
	db := testDB(t)
	store := NewExpenseStore(db, testLogger())
	ctx := context.Background()

	original := decimal.RequireFromString("12.50")
	expense := &models.Expense{
		ID:               "e1",
		UserID:           "u1",
		AmountBase:       decimal.RequireFromString("1037.50"),
		OriginalAmount:   &original,
		OriginalCurrency: "USD",
		Date:             time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Description:      "flight",
	}
	require.NoError(t, store.Save(ctx, expense))

	got, err := store.Get(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, got.AmountBase.Equal(expense.AmountBase))
	require.NotNil(t, got.OriginalAmount)
	assert.True(t, got.OriginalAmount.Equal(original))
	assert.Equal(t, models.CurrencyCode("USD"), got.OriginalCurrency)
	assert.Equal(t, "flight", got.Description)
}

func TestExpenseStoreDetachCategory(t *testing.T) {
	db := testDB(t)
	store := NewExpenseStore(db, testLogger())
	ctx := context.Background()

	seedExpense(t, store, "e1", 1, "food")
	seedExpense(t, store, "e2", 2, "food")
	seedExpense(t, store, "e3", 3, "travel")

	n, err := store.DetachCategory(ctx, "u1", "food")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	e1, err := store.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Empty(t, e1.CategoryID)

	e3, err := store.Get(ctx, "e3")
	require.NoError(t, err)
	assert.Equal(t, "travel", e3.CategoryID)
}
