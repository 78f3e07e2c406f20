// Package errs provides typed errors for tcrecover operations.
// This enables callers to use errors.Is()/errors.As() for specific error handling.
package errs

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for the outcomes spec.md §7 names explicitly.
var (
	// ErrNotUnlockable is returned when no (variant, hash, cascade) combination
	// validated the header. The public error never distinguishes "wrong
	// password" from "not a TrueCrypt volume" — leaking which stage came
	// closest would aid an attacker.
	ErrNotUnlockable = errors.New("incorrect password or not a TrueCrypt volume")

	// ErrCancelled is returned when a caller-supplied context is cancelled
	// mid-probe.
	ErrCancelled = errors.New("operation cancelled")
)

// MalformedInputError indicates the volume source is too short to contain
// the structure being requested (a header, or a hidden-volume slot).
type MalformedInputError struct {
	Reason string
	Have   int64
	Need   int64
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s (have %d bytes, need at least %d)", e.Reason, e.Have, e.Need)
}

// NewMalformedInput builds a MalformedInputError.
func NewMalformedInput(reason string, have, need int64) *MalformedInputError {
	return &MalformedInputError{Reason: reason, Have: have, Need: need}
}

// IOError wraps an I/O failure from the volume's random-access source with
// the operation that triggered it. The underlying error is preserved via
// Unwrap so callers can still inspect *os.PathError etc.
type IOError struct {
	Op  string // e.g. "open", "stat", "read-at"
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("volume source %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError wraps err with an operation label. Returns nil if err is nil.
func NewIOError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Err: err}
}

// Is reports whether err matches target, delegating to errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target, delegating to errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotUnlockable reports whether err is (or wraps) ErrNotUnlockable.
func IsNotUnlockable(err error) bool {
	return errors.Is(err, ErrNotUnlockable)
}

// IsCancelled reports whether err is (or wraps) ErrCancelled or a context
// cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}
