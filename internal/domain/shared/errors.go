// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")

	// State errors
	ErrInvalidState = errors.New("invalid state")
	ErrNotEditable  = errors.New("record not editable")
	ErrExpired      = errors.New("expired")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Concurrency errors
	ErrConcurrentCreate = errors.New("concurrent create conflict")

	// External service errors
	ErrExternalService    = errors.New("external service error")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "user", "activity", "word", "story"
	Op      string // the operation that failed, e.g., "Create"
	Err     error  // the underlying base error
	Message string // human-readable message
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
	}
	return fmt.Sprintf("%s.%s: %v", e.Domain, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError.
func NewDomainError(domain, op string, err error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Err:     err,
		Message: message,
	}
}

// User domain errors
var (
	ErrUserNotFound       = NewDomainError("user", "Find", ErrNotFound, "user not found")
	ErrUsernameTaken      = NewDomainError("user", "Create", ErrAlreadyExists, "username already exists")
	ErrEmailTaken         = NewDomainError("user", "Create", ErrAlreadyExists, "email already exists")
	ErrInvalidCredentials = NewDomainError("user", "Authenticate", ErrUnauthorized, "invalid username or password")
	ErrInvalidDailyGoal   = NewDomainError("user", "Validate", ErrValueOutOfRange, "daily goal must be positive")
)

// Activity domain errors
var (
	ErrActivityNotFound  = NewDomainError("activity", "Find", ErrNotFound, "daily activity record not found")
	ErrRecordNotEditable = NewDomainError("activity", "Record", ErrNotEditable, "only today's activity record can be modified")
	ErrNegativeIncrement = NewDomainError("activity", "Record", ErrNegativeValue, "activity increments must be non-negative")

	// ErrConcurrentCreateConflict means an insert lost a get-or-create race
	// and the caller should refetch.
	ErrConcurrentCreateConflict = NewDomainError("activity", "Create", ErrConcurrentCreate, "activity record created concurrently")
)

// Word domain errors
var (
	ErrWordNotFound      = NewDomainError("word", "Find", ErrNotFound, "word not found")
	ErrWordAlreadyExists = NewDomainError("word", "Create", ErrAlreadyExists, "word already exists for this user and language")
	ErrInvalidConfidence = NewDomainError("word", "Validate", ErrValueOutOfRange, "confidence must be between 1 and 5")
)

// Story domain errors
var (
	ErrStoryNotFound      = NewDomainError("story", "Find", ErrNotFound, "story not found")
	ErrSlugTaken          = NewDomainError("story", "Create", ErrAlreadyExists, "story slug already exists")
	ErrStoryNotInLibrary  = NewDomainError("story", "UpdateLastRead", ErrNotFound, "story not found in user library")
	ErrInvalidDifficulty  = NewDomainError("story", "Validate", ErrInvalidInput, "invalid difficulty level")
)

// Auth/session errors
var (
	ErrTokenNotFound = NewDomainError("auth", "Resolve", ErrUnauthorized, "token is invalid or expired")
	ErrTokenRevoked  = NewDomainError("auth", "Revoke", ErrNotFound, "token not found")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange)
}

// IsUnauthorized checks if the error is an authorization error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// IsConflict checks if the error is a concurrent-create conflict.
// These are recovered internally by refetching and never reach the caller.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConcurrentCreate)
}

// IsNotEditable checks if the error is a not-editable state error.
func IsNotEditable(err error) bool {
	return errors.Is(err, ErrNotEditable)
}
