package cash

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
)

// Ensure we implement the Msg interface
var _ ledger.Msg = (*SendMsg)(nil)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves the amount from the source wallet to the destination.
type SendMsg struct {
	Src    ledger.Address `json:"src"`
	Dest   ledger.Address `json:"dest"`
	Amount coin.Amount    `json:"amount"`
	Memo   string         `json:"memo,omitempty"`
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	if !s.Amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive SendMsg")
	}
	if err := s.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := s.Dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInvalidMsg, "memo too long")
	}
	return nil
}
