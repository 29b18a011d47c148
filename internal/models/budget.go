package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OverBudgetPercent is the capped percent-used sentinel reported when a
// zero-limit budget has spending. It stands in for +infinity so a zero limit
// never causes a division fault.
const OverBudgetPercent = 999999

// Budget is a monthly spending limit. An empty CategoryID means the budget is
// "overall": it applies to all of the user's expenses in its period. At most
// one budget may exist per (user, year, month, category), the overall budget
// included.
type Budget struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	CategoryID  string          `json:"category_id,omitempty"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PeriodKey returns the uniqueness key for the budget's (user, period,
// category) identity.
func (b *Budget) PeriodKey() string {
	return BudgetPeriodKey(b.UserID, b.Year, b.Month, b.CategoryID)
}

// BudgetPeriodKey builds the uniqueness key for a (user, year, month,
// category) combination.
func BudgetPeriodKey(userID string, year, month int, categoryID string) string {
	return fmt.Sprintf("%s:%04d-%02d:%s", userID, year, month, categoryID)
}

// ValidatePeriod rejects months outside 1..12 and years that are not
// plausible 4-digit years.
func ValidatePeriod(year, month int) error {
	if month < 1 || month > 12 {
		return NewValidationError(CodeInvalidPeriod, fmt.Sprintf("month %d is out of range 1..12", month))
	}
	if year < 1000 || year > 9999 {
		return NewValidationError(CodeInvalidPeriod, fmt.Sprintf("year %d is not a 4-digit year", year))
	}
	return nil
}

// ValidateLimit rejects negative budget limits.
func ValidateLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return NewValidationError(CodeInvalidLimit, "limit amount must not be negative")
	}
	return nil
}

// PeriodBounds returns the first and last day of (year, month) in UTC.
func PeriodBounds(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// BudgetStatus is the derived, never-stored view of a budget against the
// period's spending. Computed fresh on every status query.
type BudgetStatus struct {
	ID           string          `json:"id"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	LimitAmount  decimal.Decimal `json:"limit_amount"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	PercentUsed  int64           `json:"percent_used"`
}

// NewBudgetStatus computes the derived fields for a budget given the exact
// spent sum for its period. PercentUsed rounds half-up to the nearest whole
// percent when the limit is positive; a zero limit reports 0 with no spending
// and the OverBudgetPercent sentinel otherwise.
func NewBudgetStatus(b *Budget, categoryName string, spent decimal.Decimal) *BudgetStatus {
	status := &BudgetStatus{
		ID:           b.ID,
		Year:         b.Year,
		Month:        b.Month,
		CategoryID:   b.CategoryID,
		CategoryName: categoryName,
		LimitAmount:  b.LimitAmount,
		Spent:        spent,
		Remaining:    b.LimitAmount.Sub(spent),
	}

	switch {
	case b.LimitAmount.IsPositive():
		status.PercentUsed = spent.Mul(decimal.NewFromInt(100)).DivRound(b.LimitAmount, 0).IntPart()
	case spent.IsZero():
		status.PercentUsed = 0
	default:
		status.PercentUsed = OverBudgetPercent
	}

	return status
}
