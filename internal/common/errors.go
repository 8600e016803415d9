// Package common defines sentinel errors shared by the storage, codec and
// CLI layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Connection and scope errors.
	ErrNotConnected = errors.New("not connected")
	ErrScopeActive  = errors.New("repository scope already open")

	// Validation errors, returned before any statement runs.
	ErrInvalidColumn     = errors.New("invalid column")
	ErrInvalidShape      = errors.New("invalid pair shape")
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrStore    = errors.New("store error")
)

// StoreError marks err as a store failure while keeping the driver error
// reachable through errors.Is / errors.As.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w: %w", op, ErrStore, err)
}
