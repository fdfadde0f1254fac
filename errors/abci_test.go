package errors

import (
	"io"
	"strings"
	"testing"
)

func TestABCInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrNotFound,
			debug:    false,
			wantLog:  "not found",
			wantCode: ErrNotFound.code,
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrNotFound, "foo"), "bar"),
			debug:    false,
			wantLog:  "bar: foo: not found",
			wantCode: ErrNotFound.code,
		},
		"wrapped amount message": {
			err:      Wrap(ErrInvalidAmount, "Must pay more than 0"),
			debug:    false,
			wantLog:  "Must pay more than 0: invalid amount",
			wantCode: 13,
		},
		"exact message keeps the code": {
			err:      ErrInvalidAmount.WithMessage("Must pay more than 0"),
			debug:    false,
			wantLog:  "Must pay more than 0",
			wantCode: 13,
		},
		"wrapped exact message": {
			err:      Wrap(ErrNotFound.WithMessage("No offer with id 3"), "cannot accept"),
			debug:    false,
			wantLog:  "cannot accept: No offer with id 3",
			wantCode: ErrNotFound.code,
		},
		"nil is empty message": {
			err:      nil,
			debug:    false,
			wantLog:  "",
			wantCode: 0,
		},
		"nil registered error is not an error": {
			err:      (*Error)(nil),
			debug:    false,
			wantLog:  "",
			wantCode: 0,
		},
		"stdlib is generic message": {
			err:      io.EOF,
			debug:    false,
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib returns error message in debug mode": {
			err:      io.EOF,
			debug:    true,
			wantLog:  "EOF",
			wantCode: 1,
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(io.EOF, "cannot read file"),
			debug:    false,
			wantLog:  "internal error",
			wantCode: 1,
		},
		"wrapped stdlib is a full message in debug mode": {
			err:      Wrap(io.EOF, "cannot read file"),
			debug:    true,
			wantLog:  "cannot read file: EOF",
			wantCode: 1,
		},
		"recovered panic is a generic message": {
			err:      Wrap(ErrPanic, "runtime error: index out of range"),
			debug:    false,
			wantLog:  "internal error",
			wantCode: 111222,
		},
		"recovered panic in debug mode": {
			err:      Wrap(ErrPanic, "runtime error: index out of range"),
			debug:    true,
			wantLog:  "runtime error: index out of range: panic",
			wantCode: 111222,
		},
		"custom error": {
			err:      customErr{},
			debug:    false,
			wantLog:  "custom",
			wantCode: 999,
		},
		"custom error in debug mode": {
			err:      customErr{},
			debug:    true,
			wantLog:  "custom",
			wantCode: 999,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			// Debug mode may append a stack trace after the message.
			if !strings.HasPrefix(log, tc.wantLog) || (tc.wantLog == "" && log != "") {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

// customErr is a custom implementation of an error that provides an ABCICode
// method.
type customErr struct{}

func (customErr) ABCICode() uint32 { return 999 }

func (customErr) Error() string { return "custom" }

func TestABCIError(t *testing.T) {
	if err := ABCIError(0, ""); err != nil {
		t.Fatalf("success code must not be an error: %v", err)
	}

	code, log := ABCIInfo(Wrapf(ErrNotFound, "No offer with id %d", 42), false)
	err := ABCIError(code, log)
	if !ErrNotFound.Is(err) {
		t.Fatalf("registered kind lost: %v", err)
	}
	if !strings.Contains(err.Error(), "No offer with id 42") {
		t.Fatalf("log lost: %q", err)
	}

	err = ABCIError(4242, "unknown")
	if got := abciCode(err); got != 4242 {
		t.Fatalf("want code 4242, got %d", got)
	}
	if err.Error() != "unknown" {
		t.Fatalf("unexpected message %q", err)
	}
}
