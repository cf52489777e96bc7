// Package engerr defines the error taxonomy shared by every crypto
// package in the engine: callers branch on Kind via errors.Is, not on
// error strings.
package engerr

import "fmt"

// Kind classifies a failure reported by the core. None of these are
// recovered internally; they are surfaced to the caller.
type Kind int

const (
	// InvalidInput covers empty data lists, out-of-range indices,
	// length mismatches, and other caller-supplied invalid arguments.
	InvalidInput Kind = iota
	// NotOnCurve is returned when a deserialized point fails curve
	// membership.
	NotOnCurve
	// MissingKey is returned when an operation needs a public or
	// private key that was not provided.
	MissingKey
	// MalformedCiphertext is returned when deserialization fails or
	// yields an off-curve point.
	MalformedCiphertext
	// DLogOutOfRange is returned when BSGS fails to find the discrete
	// log within the requested bound.
	DLogOutOfRange
	// StateError is returned when an operation is attempted in the
	// wrong ballot-box state (append after seal, tally before seal).
	StateError
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case NotOnCurve:
		return "not_on_curve"
	case MissingKey:
		return "missing_key"
	case MalformedCiphertext:
		return "malformed_ciphertext"
	case DLogOutOfRange:
		return "dlog_out_of_range"
	case StateError:
		return "state_error"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with the Kind and operation that
// produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel for the same Kind, so callers
// can write errors.Is(err, engerr.ErrDLogOutOfRange).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error for the given kind and operation.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Sentinels usable with errors.Is, one per Kind, with no Op/Err context.
var (
	ErrInvalidInput        = &Error{Kind: InvalidInput}
	ErrNotOnCurve          = &Error{Kind: NotOnCurve}
	ErrMissingKey          = &Error{Kind: MissingKey}
	ErrMalformedCiphertext = &Error{Kind: MalformedCiphertext}
	ErrDLogOutOfRange      = &Error{Kind: DLogOutOfRange}
	ErrStateError          = &Error{Kind: StateError}
)
