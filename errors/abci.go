package errors

import (
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode is the code of every successful ABCI response.
	SuccessABCICode = 0

	// Errors without a registered code are reported as internal, with a
	// generic message unless running in debug mode.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of the ABCI response reporting err.
//
// Only registered errors expose their message. Unregistered errors and
// recovered panics are reported with a generic message, as their text may
// contain implementation details. In debug mode the full error, including
// a stack trace when available, is always returned.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode, ErrPanic.Is(err):
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// ABCIError is the inverse of ABCIInfo. It rebuilds an error from an ABCI
// response so that a client can test it with the registered kinds, for
// example ErrNotFound.Is(err).
func ABCIError(code uint32, log string) error {
	if code == SuccessABCICode {
		return nil
	}
	if kind, ok := lookup(code); ok {
		return &wrappedError{parent: kind, msg: log}
	}
	return &Error{code: code, desc: log}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first error in the cause chain that
// declares one.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	for !errIsNil(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}

// errIsNil returns true if value represented by the given error is nil.
// A typed nil pointer stored in an error interface is nil as well.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
