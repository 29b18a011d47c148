package models

import "time"

// User represents a registered account. BaseCurrency starts unset and is
// established exactly once; all ledger amounts are denominated in it.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"password_hash"`
	FullName     string       `json:"full_name,omitempty"`
	BaseCurrency BaseCurrency `json:"base_currency,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
