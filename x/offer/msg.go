package offer

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
)

const (
	pathCreateMsg = "offer/create"
	pathAcceptMsg = "offer/accept"
	pathCancelMsg = "offer/cancel"
)

var (
	_ ledger.Msg = (*CreateMsg)(nil)
	_ ledger.Msg = (*AcceptMsg)(nil)
	_ ledger.Msg = (*CancelMsg)(nil)
)

// CreateMsg deposits Amount from the signer into a new offer for the
// recipient.
type CreateMsg struct {
	Recipient ledger.Address `json:"recipient"`
	Amount    coin.Amount    `json:"amount"`
}

// Path returns the routing path for this message
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate checks the message is well formed. A zero amount is reported
// before a malformed recipient, in the same way the ledger reports it.
func (m *CreateMsg) Validate() error {
	if err := checkDeposit(m.Amount); err != nil {
		return err
	}
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return nil
}

// AcceptMsg claims the offer as its recipient.
type AcceptMsg struct {
	OfferID uint64 `json:"offer_id"`
}

// Path returns the routing path for this message
func (AcceptMsg) Path() string {
	return pathAcceptMsg
}

// Validate checks the message is well formed.
func (m *AcceptMsg) Validate() error {
	return validateOfferID(m.OfferID)
}

// CancelMsg returns the offer to its creator.
type CancelMsg struct {
	OfferID uint64 `json:"offer_id"`
}

// Path returns the routing path for this message
func (CancelMsg) Path() string {
	return pathCancelMsg
}

// Validate checks the message is well formed.
func (m *CancelMsg) Validate() error {
	return validateOfferID(m.OfferID)
}

func validateOfferID(id uint64) error {
	if id == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "offer id is required")
	}
	return nil
}
