package hnsw

import (
	"errors"
	"fmt"
)

// Error kinds reported by the public API. See §7 of the specification
// this module implements: every public operation is all-or-nothing with
// respect to the graph invariants — a failing call leaves the index
// exactly as it was.
var (
	// ErrDuplicateKey is returned by Insert when the key already exists.
	ErrDuplicateKey = errors.New("hnsw: duplicate key")

	// ErrDimensionMismatch is returned by Insert and Search when a
	// vector's length does not match the dimensionality already
	// established by the index. DistanceFunc values themselves do not
	// check lengths and do not report this error.
	ErrDimensionMismatch = errors.New("hnsw: vector dimension mismatch")

	// ErrUnknownOption is returned at construction time when a Config
	// carries an enum value the index does not recognize.
	ErrUnknownOption = errors.New("hnsw: unknown configuration option")

	// ErrInternalInvariantViolation is never returned by normal use. It
	// exists for test harnesses that call Check() after every mutation
	// and want a typed error to wrap when it fails — if you see this,
	// it is a bug in the index, not in the caller.
	ErrInternalInvariantViolation = errors.New("hnsw: internal invariant violation")
)

// wrapf wraps a sentinel error with a formatted message, keeping it
// matchable via errors.Is.
func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
