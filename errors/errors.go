package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kinds shared by every extension. Codes are stable, clients match on them.
var (
	// ErrUnauthorized is returned when the signers of a transaction are
	// not allowed to perform the requested action.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrInvalidMsg is returned for a message that cannot be handled.
	ErrInvalidMsg = Register(4, "invalid message")

	// ErrInvalidModel is returned for a model that cannot be persisted.
	ErrInvalidModel = Register(5, "invalid model")

	// ErrDuplicate is returned when a unique key or index is already taken.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that correct callers never reach.
	ErrHuman = Register(7, "coding error")

	ErrEmpty = Register(9, "value is empty")

	// ErrInvalidState is returned when a record does not allow the
	// requested transition, for example releasing a settled offer.
	ErrInvalidState = Register(10, "invalid state")

	ErrInvalidType = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when a wallet cannot cover a
	// payment.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	// ErrInvalidAmount is returned for an amount that is not acceptable,
	// for example zero.
	ErrInvalidAmount = Register(13, "invalid amount")

	ErrInvalidInput = Register(14, "invalid input")

	// ErrOverflow is returned when an arithmetic result does not fit its
	// type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase is returned when the underlying storage fails.
	ErrDatabase = Register(17, "database")

	// ErrNetwork is returned when a node cannot be reached.
	ErrNetwork = Register(18, "network")

	// ErrPanic wraps a recovered panic. Its message is never sent to
	// clients outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry maps every code to its kind. Code 1 belongs to errors that
// carry no code at all and cannot be registered.
var registry = map[uint32]*Error{
	internalABCICode: nil,
}

// Register declares a new error kind. It panics if the code is already
// taken, so call it only from package level variable declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		var desc string
		if prev != nil {
			desc = prev.desc
		}
		panic(fmt.Sprintf("error code %d is already registered as %q", code, desc))
	}
	kind := &Error{code: code, desc: description}
	registry[code] = kind
	return kind
}

// lookup returns the kind registered with the given code.
func lookup(code uint32) (*Error, bool) {
	kind, ok := registry[code]
	return kind, ok && kind != nil
}

// Error is an error kind. Errors created at runtime wrap exactly one kind,
// whose code becomes the ABCI response code.
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

// New returns an error of this kind with a description. It is the same as
// Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// WithMessage returns an error of this kind whose message is text alone,
// without the description of the kind. Use it where clients match on the
// exact text.
func (e *Error) WithMessage(text string) error {
	err := Wrap(e, text)
	err.(*wrappedError).replace = true
	return err
}

// Is reports whether err is of this kind, following the cause chain.
// A nil kind matches nil errors only, including typed nil pointers.
func (e *Error) Is(err error) bool {
	if e == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap prefixes err with description. A nil err stays nil, so the result
// of a call can be wrapped without checking it first.
//
// The innermost wrap records a stack trace. Errors without a code are
// reported as internal errors.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg     string
	parent  error
	// replace hides the parent message.
	replace bool
}

func (e *wrappedError) Error() string {
	if e.replace {
		return e.msg
	}
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Unwrap lets the standard library errors.Is and errors.As walk the chain.
func (e *wrappedError) Unwrap() error {
	return e.parent
}

// Format prints the stack trace of the innermost wrap for %+v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' || !s.Flag('+') {
		fmt.Fprint(s, e.Error())
		return
	}
	fmt.Fprintln(s, e.Error())
	if st := stackTrace(e); st != nil {
		fmt.Fprintf(s, "%+v", st)
	}
}

// Recover turns a panic into an ErrPanic stored in err. It must be
// deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType prefixes err with the Go type of obj.
func WithType(err error, obj interface{}) error {
	return Wrapf(err, "%T", obj)
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace in the cause chain.
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
