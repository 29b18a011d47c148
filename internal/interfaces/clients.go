package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

// RateProvider supplies exchange rates from an external source.
// Implementations surface timeouts and missing rates as models.Error with
// code RATE_UNAVAILABLE, a retryable dependency condition; they never hang
// past their own timeout.
type RateProvider interface {
	// GetRate returns the multiplicative rate converting one unit of from
	// into to, as of the given date.
	GetRate(ctx context.Context, from, to models.CurrencyCode, on time.Time) (decimal.Decimal, error)
}
