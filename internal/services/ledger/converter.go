package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/interfaces"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

// Converter normalizes entered amounts into a target currency. Same-currency
// amounts pass through untouched, without a rate lookup; converted results are
// rounded to 2 decimal places with banker's rounding.
type Converter struct {
	rates  interfaces.RateProvider
	logger *common.Logger
}

// NewConverter creates a converter backed by the given rate provider.
func NewConverter(rates interfaces.RateProvider, logger *common.Logger) *Converter {
	return &Converter{
		rates:  rates,
		logger: logger,
	}
}

// Convert returns amount expressed in the target currency. When from and to
// are equal the amount is returned exactly as given.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to models.CurrencyCode, on time.Time) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	rate, err := c.rates.GetRate(ctx, from, to, on)
	if err != nil {
		return decimal.Zero, err
	}

	converted := amount.Mul(rate).RoundBank(2)

	c.logger.Debug().
		Str("from", string(from)).
		Str("to", string(to)).
		Str("amount", amount.String()).
		Str("rate", rate.String()).
		Str("converted", converted.String()).
		Msg("Converted amount")

	return converted, nil
}
