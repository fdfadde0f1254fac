/*
Package coin defines the single asset quantity moved by the ledger.

Amount is an unsigned 256 bit integer. It never goes negative: subtraction
below zero fails with ErrInsufficientAmount and addition past the maximum
fails with ErrOverflow.
*/
package coin

import (
	"encoding/json"
	"strings"

	"github.com/holiman/uint256"
	"github.com/iov-one/ledger/errors"
)

// Amount is an unsigned, arbitrary precision quantity of the ledger asset.
// The zero value is a valid zero amount.
type Amount struct {
	v uint256.Int
}

// NewAmount returns an amount holding the given value.
func NewAmount(n uint64) Amount {
	var a Amount
	a.v.SetUint64(n)
	return a
}

// ParseAmount reads a base 10 representation of an amount.
func ParseAmount(s string) (Amount, error) {
	var a Amount
	if err := a.Set(s); err != nil {
		return Amount{}, err
	}
	return a, nil
}

// MustParseAmount is ParseAmount for constants and tests. It panics on
// invalid input.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsZero returns true if the amount is 0.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// IsPositive returns true if the amount is greater than 0.
func (a Amount) IsPositive() bool {
	return !a.v.IsZero()
}

// Cmp compares two amounts and returns -1, 0 or 1.
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

// Equals returns true if both amounts hold the same value.
func (a Amount) Equals(b Amount) bool {
	return a.v.Eq(&b.v)
}

// IsGTE returns true if a is greater than or equal to b.
func (a Amount) IsGTE(b Amount) bool {
	return a.Cmp(b) >= 0
}

// Add returns the sum of both amounts.
func (a Amount) Add(b Amount) (Amount, error) {
	var res Amount
	if _, overflow := res.v.AddOverflow(&a.v, &b.v); overflow {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", a, b)
	}
	return res, nil
}

// Sub returns a - b. Going below zero is an ErrInsufficientAmount.
func (a Amount) Sub(b Amount) (Amount, error) {
	var res Amount
	if _, underflow := res.v.SubOverflow(&a.v, &b.v); underflow {
		return Amount{}, errors.Wrapf(errors.ErrInsufficientAmount, "%s - %s", a, b)
	}
	return res, nil
}

// Sum adds all given amounts.
func Sum(amounts ...Amount) (Amount, error) {
	var total Amount
	for _, a := range amounts {
		var err error
		if total, err = total.Add(a); err != nil {
			return Amount{}, err
		}
	}
	return total, nil
}

// Uint64 returns the value if it fits into 64 bits.
func (a Amount) Uint64() (uint64, bool) {
	if !a.v.IsUint64() {
		return 0, false
	}
	return a.v.Uint64(), true
}

// String returns the base 10 representation.
func (a Amount) String() string {
	return a.v.Dec()
}

// Set implements flag.Value so amounts can be passed on the command line.
func (a *Amount) Set(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.Wrap(errors.ErrInvalidAmount, "empty amount")
	}
	if err := a.v.SetFromDecimal(raw); err != nil {
		return errors.Wrapf(errors.ErrInvalidAmount, "%q: %s", raw, err)
	}
	return nil
}

// MarshalAmino encodes the amount as its decimal form, so that values of any
// size survive the binary encoding.
func (a Amount) MarshalAmino() (string, error) {
	return a.String(), nil
}

// UnmarshalAmino is the inverse of MarshalAmino.
func (a *Amount) UnmarshalAmino(raw string) error {
	if raw == "" {
		*a = Amount{}
		return nil
	}
	return a.Set(raw)
}

// MarshalJSON uses a string, JSON numbers cannot hold 256 bits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both a string and a plain number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(errors.ErrInvalidAmount, "amount must be a string or a number")
		}
		s = n.String()
	}
	return a.Set(s)
}
