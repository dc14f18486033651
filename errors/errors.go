package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. Codes below 1000 are reserved for
// this package.
var (
	// ErrUnauthorized: the caller lacks a required signature or role.
	ErrUnauthorized = Register(2, "unauthorized")

	ErrNotFound = Register(3, "not found")

	// ErrInvalidMsg: a message or call payload cannot be decoded or handled.
	ErrInvalidMsg = Register(4, "invalid message")

	// ErrInvalidModel: a model failed validation and was not stored.
	ErrInvalidModel = Register(5, "invalid model")

	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that correct callers never reach.
	ErrHuman = Register(7, "coding error")

	ErrEmpty              = Register(9, "value is empty")
	ErrInvalidState       = Register(10, "invalid state")
	ErrInvalidType        = Register(11, "invalid type")
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrInvalidAmount      = Register(13, "invalid amount")
	ErrInvalidInput       = Register(14, "invalid input")

	// ErrOverflow: an amount computation exceeds uint64.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	ErrDatabase = Register(17, "database")

	// ErrPanic wraps a recovered panic. Its details are redacted from
	// results.
	ErrPanic = Register(111222, "panic")
)

// Register declares a root error with a unique code. Extensions call it from
// package level variable declarations; registering a code twice panics.
func Register(code uint32, description string) *Error {
	if prev, ok := registered[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registered[code] = e
	return e
}

// Code 1 is the internal error, reported for errors without a root.
var registered = map[uint32]*Error{
	1: {code: 1, desc: "internal"},
}

// Error is a root error. Errors returned at runtime wrap one of them, which
// decides their code and lets callers test them with Is.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// New is a shorthand for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Is reports whether err wraps kind. A multi error matches when any of its
// parts does. A nil kind matches only nil errors, typed nil pointers included.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return err == nil || reflect.ValueOf(err).IsNil()
	}
	for err != nil {
		if err == kind {
			return true
		}
		if m, ok := err.(multiErr); ok {
			for _, part := range m {
				if kind.Is(part) {
					return true
				}
			}
			return false
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap prefixes err with description and attaches a stack trace to the
// innermost error if none is present yet. Errors without a registered root
// report the internal code. Wrap(nil, ...) is nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format prints the message for %s. %v adds the innermost frame of the stack
// trace and %+v the whole trace.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, e.Error())
	if verb != 'v' {
		return
	}
	st := stackTrace(e)
	switch {
	case len(st) == 0:
	case s.Flag('+'):
		fmt.Fprintf(s, "\n%+v", st)
	default:
		fmt.Fprintf(s, " [%v]", st[0])
	}
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the outermost stack trace found while unwrapping err.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
