package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary is a rollup over a filtered expense set. Uncategorized expenses are
// included in Total but have no entry in TotalByCategory.
type Summary struct {
	Total           decimal.Decimal            `json:"total"`
	TotalByCategory map[string]decimal.Decimal `json:"total_by_category"`
}

// MonthlyPoint is one calendar month's total, labeled by month name.
type MonthlyPoint struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// MonthName returns the English name of a 1-based calendar month.
func MonthName(month int) string {
	return time.Month(month).String()
}
