package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the wire format for expense dates (day granularity).
const DateFormat = "2006-01-02"

// Expense is a single money movement. AmountBase is always denominated in the
// owner's base currency. When the entered currency differed from the base
// currency, OriginalAmount/OriginalCurrency preserve the as-entered value and
// AmountBase holds the converted value from record time; otherwise both
// original fields are unset and AmountBase is the entered amount exactly.
type Expense struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	AmountBase       decimal.Decimal  `json:"amount_base"`
	OriginalAmount   *decimal.Decimal `json:"original_amount,omitempty"`
	OriginalCurrency CurrencyCode     `json:"original_currency,omitempty"`
	Date             time.Time        `json:"date"`
	Description      string           `json:"description,omitempty"`
	Recurring        bool             `json:"recurring"`
	CategoryID       string           `json:"category_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// EnteredCurrency returns the currency the expense was entered in, given the
// owner's base currency: the original currency when a conversion was stored,
// otherwise the base currency itself.
func (e *Expense) EnteredCurrency(base CurrencyCode) CurrencyCode {
	if e.OriginalCurrency != "" {
		return e.OriginalCurrency
	}
	return base
}

// EnteredAmount returns the as-entered amount: the original amount when a
// conversion was stored, otherwise AmountBase.
func (e *Expense) EnteredAmount() decimal.Decimal {
	if e.OriginalAmount != nil {
		return *e.OriginalAmount
	}
	return e.AmountBase
}

// ExpenseFilter restricts expense retrieval. Date bounds are inclusive; a nil
// CategoryID matches any category, while a pointer to "" matches only
// uncategorized expenses.
type ExpenseFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *string
}

// Matches reports whether e falls within the filter bounds.
func (f ExpenseFilter) Matches(e *Expense) bool {
	if f.StartDate != nil && e.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && e.Date.After(*f.EndDate) {
		return false
	}
	if f.CategoryID != nil && e.CategoryID != *f.CategoryID {
		return false
	}
	return true
}

// SortExpenses orders expenses by date descending, then id descending as a
// stable tie-break for equal dates.
func SortExpenses(expenses []*Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].ID > expenses[j].ID
	})
}

// SumAmountBase returns the exact decimal sum of AmountBase over expenses.
// Each addend is already rounded to 2 places at write time, so no
// intermediate rounding is applied.
func SumAmountBase(expenses []*Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.AmountBase)
	}
	return total
}
