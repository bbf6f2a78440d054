// Package remote defines the typed errors shared by the draw-engine and
// winner-ledger clients. Callers branch on the error kind; the Op field
// names the failing operation so the console can report exactly what broke.
package remote

import (
	"errors"
	"fmt"
)

// Kind classifies a remote-call failure
type Kind string

const (
	// KindTransport covers network failures and unexpected service responses
	KindTransport Kind = "TRANSPORT"
	// KindNotFound means no draw/winner exists for the given key. Often a
	// valid outcome rather than a failure.
	KindNotFound Kind = "NOT_FOUND"
	// KindConflict means a duplicate-schedule attempt was rejected
	KindConflict Kind = "CONFLICT"
	// KindInvalidTransition means a winner status value outside the allowed
	// set was submitted
	KindInvalidTransition Kind = "INVALID_TRANSITION"
)

// Error is a failed remote operation
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, string(e.Kind))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a remote error for the given operation and kind
func NewError(op string, kind Kind, status int, message string, err error) *Error {
	return &Error{Op: op, Kind: kind, Status: status, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindTransport if err is not a remote
// error (an unclassified failure is treated as transport-level).
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindTransport
}

// IsNotFound reports whether err is a NOT_FOUND remote error
func IsNotFound(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == KindNotFound
}

// IsConflict reports whether err is a CONFLICT remote error
func IsConflict(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == KindConflict
}

// OpOf returns the operation name recorded on err, or "" if err carries none
func OpOf(err error) string {
	var re *Error
	if errors.As(err, &re) {
		return re.Op
	}
	return ""
}
