package models

import "errors"

// ErrorKind classifies an Error for transport mapping and retry policy.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindBusiness   ErrorKind = "business"
	KindDependency ErrorKind = "dependency"
	KindNotFound   ErrorKind = "not_found"
)

// ErrorCode is the closed set of expected failure conditions. Callers switch
// on codes, never on message text.
type ErrorCode string

const (
	CodeBaseCurrencyRequired ErrorCode = "BASE_CURRENCY_REQUIRED"
	CodeRateUnavailable      ErrorCode = "RATE_UNAVAILABLE"
	CodeDuplicateBudget      ErrorCode = "DUPLICATE_BUDGET"
	CodeDuplicateCategory    ErrorCode = "DUPLICATE_CATEGORY"
	CodeDuplicateEmail       ErrorCode = "DUPLICATE_EMAIL"
	CodeInvalidPeriod        ErrorCode = "INVALID_PERIOD"
	CodeInvalidLimit         ErrorCode = "INVALID_LIMIT"
	CodeInvalidInput         ErrorCode = "INVALID_INPUT"
	CodeNotFound             ErrorCode = "NOT_FOUND"
	CodeAlreadySet           ErrorCode = "ALREADY_SET"
)

// Error is a typed business error: a stable code plus a human message.
// Expected conditions are always returned as *Error; anything else reaching a
// caller is a defect, not a user-facing flow.
type Error struct {
	Code    ErrorCode `json:"code"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewValidationError creates a validation error (rejected before any write).
func NewValidationError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Kind: KindValidation, Message: message}
}

// NewBusinessError creates a business-rule error the caller can remediate.
func NewBusinessError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Kind: KindBusiness, Message: message}
}

// NewDependencyError creates a transient external-collaborator error.
func NewDependencyError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Kind: KindDependency, Message: message}
}

// NewNotFoundError creates an error for a missing or foreign-owned record.
func NewNotFoundError(message string) *Error {
	return &Error{Code: CodeNotFound, Kind: KindNotFound, Message: message}
}

// CodeOf extracts the ErrorCode from err, or "" when err is not a *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// KindOf extracts the ErrorKind from err, or "" when err is not a *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
