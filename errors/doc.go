/*
Package errors implements the error kinds used across the ledger.

Reuse the errors declared in this package whenever possible and register a
custom error only when an extension needs a kind that is meaningful to
clients on its own (x/offer declares ErrSelfDealing, x/sigs declares
ErrInvalidSequence).

Register a custom error with Register(code, description). Create runtime
instances with ErrXyz.New, ErrXyz.Newf or Wrap(ErrXyz, "..."). The code is
the ABCI response code, which lets a client tell error kinds apart without
parsing messages.

A stack trace is attached at the innermost wrap. Do not declare package
level values like `var ErrFoo = errors.ErrNotFound.New("foo")`, the trace
would point at the package initialisation.

Formatting:

	%s is the error message
	%+v is the message followed by the stack trace of the creation point
*/
package errors
