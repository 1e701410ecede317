package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants wrap it so callers can match either.
	ErrNotFound = errors.New("entity not found")

	// ErrNotUnique is returned when a query expected to produce a single row
	// produces more than one. This signals a broken uniqueness assumption in
	// the schema or query, not a client mistake.
	ErrNotUnique = errors.New("query returned more than one result")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrContactNotFound indicates that the requested contact does not exist.
	ErrContactNotFound = fmt.Errorf("%w: contact", ErrNotFound)

	// ErrOrganizationNotFound indicates that the requested organization does
	// not exist.
	ErrOrganizationNotFound = fmt.Errorf("%w: organization", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error,
// including the entity-specific variants (which all wrap ErrNotFound).
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNotUniqueError checks if the error indicates a singular query that
// matched multiple rows.
func IsNotUniqueError(err error) bool {
	return errors.Is(err, ErrNotUnique)
}
