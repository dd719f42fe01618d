// Package mapgenerr defines the error categories of spec.md §7: stages
// validate their contracts at entry and fail fast with one of these
// kinds rather than an ad-hoc error string, so a caller can branch on
// errors.Is/errors.As instead of matching text. The wrapping style
// (fmt.Errorf("...: %w", err) chains) is lifted from dshills-dungo's
// pkg/carving and pkg/graph packages; the Kind enum itself is new since
// the teacher repo has no custom error type at all.
package mapgenerr

import (
	"errors"
	"fmt"
)

// Kind categorizes a generation-core failure.
type Kind int

const (
	// DegenerateInput: fewer than 3 non-colinear points, or all points
	// collinear, handed to the triangulator.
	DegenerateInput Kind = iota
	// MeshInvariantViolated: an invariant from spec.md §3 failed after
	// mesh construction. Fatal, surfaced to the caller.
	MeshInvariantViolated
	// RangeError: a value handed to the point-blob serializer falls
	// outside the declared rescale range.
	RangeError
	// InvalidParameter: an out-of-range parameter (e.g. negative
	// spacing) was rejected before running a stage.
	InvalidParameter
	// AlgorithmStuck: the Poisson sampler refused a pre-seeded point.
	// Should never happen if boundaries are chosen consistently; fatal.
	AlgorithmStuck
)

func (k Kind) String() string {
	switch k {
	case DegenerateInput:
		return "DegenerateInput"
	case MeshInvariantViolated:
		return "MeshInvariantViolated"
	case RangeError:
		return "RangeError"
	case InvalidParameter:
		return "InvalidParameter"
	case AlgorithmStuck:
		return "AlgorithmStuck"
	default:
		return "UnknownKind"
	}
}

// Error is a categorized generation-core failure. It wraps an optional
// underlying cause the same way the teacher's sibling example wraps
// errors with fmt.Errorf("%w", ...), while still letting callers
// distinguish categories with errors.Is/errors.As.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so
// errors.Is(err, mapgenerr.New(DegenerateInput, "")) matches any
// DegenerateInput error whatever its message or cause. KindOf extracts
// the Kind directly.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error with a formatted message and no cause.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error with a formatted message and an underlying
// cause, following the %w-chain style the rest of the corpus uses.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf extracts the Kind from err if it is (or wraps) a *mapgenerr.Error,
// and reports ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
