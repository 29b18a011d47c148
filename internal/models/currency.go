package models

import "strings"

// CurrencyCode is an ISO 4217 alphabetic currency code ("USD", "INR").
type CurrencyCode string

// NormalizeCurrency upper-cases and trims a currency code as entered.
func NormalizeCurrency(code string) CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(code)))
}

// ValidCurrencyCode reports whether c has the ISO 4217 shape: exactly three
// ASCII letters. The rate provider is the authority on which codes trade.
func ValidCurrencyCode(c CurrencyCode) bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// BaseCurrency is a set-once field: the zero value means unset, and the only
// transition is unset -> set, enforced by the user service. It is a distinct
// type so call sites cannot confuse it with an ordinary currency value.
type BaseCurrency string

// IsSet reports whether the base currency has been established.
func (b BaseCurrency) IsSet() bool {
	return b != ""
}

// Code returns the established currency code. Only meaningful when IsSet.
func (b BaseCurrency) Code() CurrencyCode {
	return CurrencyCode(b)
}
