package user

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
	"github.com/sreekanthvaripalli/expensemanager/internal/storage/memory"
)

func newTestService() *Service {
	return NewService(memory.NewManager(), common.NewSilentLogger())
}

func TestRegister(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Alice@Example.COM ", "hunter22", "Alice")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.False(t, u.BaseCurrency.IsSet())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")))

	_, err = svc.Register(ctx, "alice@example.com", "other", "Alice Again")
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicateEmail, models.CodeOf(err))
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "pw", "X")
	assert.Equal(t, models.CodeInvalidInput, models.CodeOf(err))

	_, err = svc.Register(ctx, "x@example.com", "", "X")
	assert.Equal(t, models.CodeInvalidInput, models.CodeOf(err))
}

func TestSetBaseCurrency_Once(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@example.com", "pw", "A")
	require.NoError(t, err)

	require.NoError(t, svc.SetBaseCurrency(ctx, u.ID, "usd"))

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CurrencyCode("USD"), got.BaseCurrency.Code())

	err = svc.SetBaseCurrency(ctx, u.ID, "EUR")
	require.Error(t, err)
	assert.Equal(t, models.CodeAlreadySet, models.CodeOf(err))
}

func TestEnsureBaseCurrency(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@example.com", "pw", "A")
	require.NoError(t, err)

	// Unset and nothing supplied: the ledger is unusable.
	_, err = svc.EnsureBaseCurrency(ctx, u.ID, "")
	require.Error(t, err)
	assert.Equal(t, models.CodeBaseCurrencyRequired, models.CodeOf(err))

	// First supplied currency wins.
	got, err := svc.EnsureBaseCurrency(ctx, u.ID, "usd")
	require.NoError(t, err)
	assert.Equal(t, models.CurrencyCode("USD"), got)

	// A later conflicting supply is ignored, not an error.
	got, err = svc.EnsureBaseCurrency(ctx, u.ID, "EUR")
	require.NoError(t, err)
	assert.Equal(t, models.CurrencyCode("USD"), got)

	// And once set, the empty-supplied path just returns it.
	got, err = svc.EnsureBaseCurrency(ctx, u.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.CurrencyCode("USD"), got)
}

func TestEnsureBaseCurrency_ConcurrentSingleWinner(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@example.com", "pw", "A")
	require.NoError(t, err)

	// Two first-budget creates race with different currencies. Exactly one
	// transition happens and both callers see the same winner.
	currencies := []models.CurrencyCode{"USD", "EUR"}
	results := make([]models.CurrencyCode, len(currencies))
	errs := make([]error, len(currencies))
	var wg sync.WaitGroup
	for i, c := range currencies {
		wg.Add(1)
		go func(i int, c models.CurrencyCode) {
			defer wg.Done()
			results[i], errs[i] = svc.EnsureBaseCurrency(ctx, u.ID, c)
		}(i, c)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	assert.Equal(t, results[0], results[1])
	assert.Contains(t, currencies, results[0])

	stored, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, results[0], stored.BaseCurrency.Code())
}

func TestSetBaseCurrency_ConcurrentSingleWinner(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@example.com", "pw", "A")
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, c := range []models.CurrencyCode{"USD", "EUR"} {
		wg.Add(1)
		go func(i int, c models.CurrencyCode) {
			defer wg.Done()
			errs[i] = svc.SetBaseCurrency(ctx, u.ID, c)
		}(i, c)
	}
	wg.Wait()

	// One succeeds, the other gets ALREADY_SET.
	if errs[0] == nil {
		assert.Equal(t, models.CodeAlreadySet, models.CodeOf(errs[1]))
	} else {
		require.NoError(t, errs[1])
		assert.Equal(t, models.CodeAlreadySet, models.CodeOf(errs[0]))
	}
}

func TestEnsureBaseCurrency_InvalidCode(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@example.com", "pw", "A")
	require.NoError(t, err)

	_, err = svc.EnsureBaseCurrency(ctx, u.ID, "DOLLARS")
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidInput, models.CodeOf(err))

	// The failed attempt must not have set anything.
	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.BaseCurrency.IsSet())
}
