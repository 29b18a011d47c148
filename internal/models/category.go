package models

import (
	"fmt"
	"strings"
	"time"
)

// Category is a user-defined expense grouping. Deleting a category detaches
// it from expenses rather than deleting them.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateCategoryName rejects empty, oversized, or control-character names.
func ValidateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationError(CodeInvalidInput, "category name is required")
	}
	if len(name) > 64 {
		return NewValidationError(CodeInvalidInput, "category name must be 64 characters or fewer")
	}
	for _, c := range name {
		if c < 0x20 || c == 0x7f {
			return NewValidationError(CodeInvalidInput, "category name contains invalid control characters")
		}
	}
	return nil
}

// ValidateCategoryColor accepts an empty color or a "#rrggbb" hex value.
func ValidateCategoryColor(color string) error {
	if color == "" {
		return nil
	}
	if len(color) != 7 || color[0] != '#' {
		return NewValidationError(CodeInvalidInput, fmt.Sprintf("category color %q must be a #rrggbb hex value", color))
	}
	for _, c := range color[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return NewValidationError(CodeInvalidInput, fmt.Sprintf("category color %q must be a #rrggbb hex value", color))
		}
	}
	return nil
}
