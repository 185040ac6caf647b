package resolver

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================================
// ERROR TAXONOMY — all request-scoped, none fatal
// ============================================================================
// Every failure in Resolve maps to exactly one of these, so the presentation
// layer can render a single human-readable line plus the echoed form state.
// ============================================================================

var (
	// ErrInvalidFilter is returned when the comparison value cannot be
	// interpreted under the chosen operator. Deliberately coarse: the
	// internal cause is not surfaced to the caller.
	ErrInvalidFilter = errors.New("invalid filter (operator/value mismatch)")

	// ErrNoRowsMatched is returned for a well-formed request whose result
	// has zero rows. It is a "try a different filter" signal, not a fault.
	ErrNoRowsMatched = errors.New("no rows matched your filter")
)

// UnknownColumnError reports referenced column names that do not exist,
// in the order the caller supplied them.
type UnknownColumnError struct {
	Missing []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("column(s) not found: %s", strings.Join(e.Missing, ", "))
}

// InvalidOperatorError reports an operator string outside the supported set.
type InvalidOperatorError struct {
	Op string
}

func (e *InvalidOperatorError) Error() string {
	return fmt.Sprintf("invalid operator: %s", e.Op)
}
