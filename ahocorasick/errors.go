package ahocorasick

import "fmt"

// ErrorKind classifies the failures the ahocorasick package can return.
// Callers can match on it with errors.Is against an *Error carrying the
// wanted Kind (see Error.Is), or inspect it directly via errors.As into
// *Error.
type ErrorKind int

const (
	// ErrInvalidArgument marks a missing or out-of-range argument: an
	// empty key, a nil pattern slice, a nil scan buffer, a nil visitor,
	// or an out-of-range slice.
	ErrInvalidArgument ErrorKind = iota
	// ErrInvalidState marks a call that violates the builder's lifecycle
	// (Add/AddAll after Build) or an internal precondition violated by a
	// corrupt trie.
	ErrInvalidState
	// ErrCapacityExhausted marks a double-array that would need to grow
	// past the construction cap.
	ErrCapacityExhausted
	// ErrNotSupported marks an unsupported value type or a nil element in
	// a value slice during serialization.
	ErrNotSupported
	// ErrCorruptInput marks a malformed serialized stream.
	ErrCorruptInput
	// ErrCancelled marks a save/load aborted by a caller's context.
	ErrCancelled
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrInvalidState:
		return "invalid state"
	case ErrCapacityExhausted:
		return "capacity exhausted"
	case ErrNotSupported:
		return "not supported"
	case ErrCorruptInput:
		return "corrupt input"
	case ErrCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by this package. It carries
// an ErrorKind so callers can branch on failure category without
// string-matching messages.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ahocorasick: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("ahocorasick: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, &ahocorasick.Error{Kind: ahocorasick.ErrInvalidState}) style
// checks work without exposing a sentinel per kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func wrapErr(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}
