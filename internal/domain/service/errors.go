package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means no valid participant session backed the call.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrAlreadyRegistered means a registration row already exists for this
	// (participant, activity) pair.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrNotFound means the referenced activity or registration is missing.
	ErrNotFound = errors.New("not found")
	// ErrStoreWriteFailed means the data store rejected the primary mutation.
	ErrStoreWriteFailed = errors.New("store write failed")
	// ErrValidationFailed means the input is malformed, e.g. a start date in
	// the past on publish.
	ErrValidationFailed = errors.New("validation failed")
	// ErrForbidden means the caller lacks the administrator role.
	ErrForbidden = errors.New("forbidden")
)

// wrapStore tags a failed store mutation so callers can match
// ErrStoreWriteFailed while the cause stays in the chain.
func wrapStore(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStoreWriteFailed, err))
}
