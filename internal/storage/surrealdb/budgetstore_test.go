package surrealdb

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

func TestBudgetStorePeriodUniqueIndex(t *testing.T) {
	db := testDB(t)
	store := NewBudgetStore(db, testLogger())
	ctx := context.Background()
	limit := decimal.NewFromInt(500)

	require.NoError(t, store.Save(ctx, &models.Budget{
		ID: "b1", UserID: "u1", Year: 2024, Month: 3, LimitAmount: limit,
	}))

	// A second overall budget for the same period hits the unique index and
	// must surface as the typed duplicate error.
	err := store.Save(ctx, &models.Budget{
		ID: "b2", UserID: "u1", Year: 2024, Month: 3, LimitAmount: limit,
	})
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicateBudget, models.CodeOf(err))

	// A category budget in the same period is a distinct key.
	require.NoError(t, store.Save(ctx, &models.Budget{
		ID: "b3", UserID: "u1", Year: 2024, Month: 3, CategoryID: "food", LimitAmount: limit,
	}))

	err = store.Save(ctx, &models.Budget{
		ID: "b4", UserID: "u1", Year: 2024, Month: 3, CategoryID: "food", LimitAmount: limit,
	})
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicateBudget, models.CodeOf(err))

	// Another user owns the same period independently.
	require.NoError(t, store.Save(ctx, &models.Budget{
		ID: "b5", UserID: "u2", Year: 2024, Month: 3, LimitAmount: limit,
	}))
}

func TestBudgetStoreUpdateInPlace(t *testing.T) {
	db := testDB(t)
	store := NewBudgetStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.Budget{
		ID: "b1", UserID: "u1", Year: 2024, Month: 3, LimitAmount: decimal.NewFromInt(500),
	}))

	// Re-saving the same budget id with a new limit is an update, not a
	// unique-index violation.
	require.NoError(t, store.Save(ctx, &models.Budget{
		ID: "b1", UserID: "u1", Year: 2024, Month: 3, LimitAmount: decimal.NewFromInt(700),
	}))

	got, err := store.Get(ctx, "b1")
	require.NoError(t, err)
	assert.True(t, got.LimitAmount.Equal(decimal.NewFromInt(700)))
}

func TestBudgetStoreFindByPeriod(t *testing.T) {
	db := testDB(t)
	store := NewBudgetStore(db, testLogger())
	ctx := context.Background()
	limit := decimal.NewFromInt(100)

	require.NoError(t, store.Save(ctx, &models.Budget{
		ID: "overall", UserID: "u1", Year: 2024, Month: 3, LimitAmount: limit,
	}))
	require.NoError(t, store.Save(ctx, &models.Budget{
		ID: "food", UserID: "u1", Year: 2024, Month: 3, CategoryID: "cat-food", LimitAmount: limit,
	}))

	// Empty categoryID addresses the overall budget, whose category field is
	// not stored at all.
	got, err := store.FindByPeriod(ctx, "u1", 2024, 3, "")
	require.NoError(t, err)
	assert.Equal(t, "overall", got.ID)

	got, err = store.FindByPeriod(ctx, "u1", 2024, 3, "cat-food")
	require.NoError(t, err)
	assert.Equal(t, "food", got.ID)

	_, err = store.FindByPeriod(ctx, "u1", 2024, 4, "")
	assert.Equal(t, models.KindNotFound, models.KindOf(err))

	list, err := store.ListForPeriod(ctx, "u1", 2024, 3)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestBudgetStoreDelete(t *testing.T) {
	db := testDB(t)
	store := NewBudgetStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.Budget{
		ID: "b1", UserID: "u1", Year: 2024, Month: 3, LimitAmount: decimal.NewFromInt(10),
	}))
	require.NoError(t, store.Delete(ctx, "b1"))

	_, err := store.Get(ctx, "b1")
	assert.Equal(t, models.KindNotFound, models.KindOf(err))

	// Once deleted, the period key is free again.
	require.NoError(t, store.Save(ctx, &models.Budget{
		ID: "b2", UserID: "u1", Year: 2024, Month: 3, LimitAmount: decimal.NewFromInt(10),
	}))
}
