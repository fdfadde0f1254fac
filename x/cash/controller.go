package cash

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
)

// CoinMover is the part of the controller other extensions need to move
// value they hold custody of.
type CoinMover interface {
	MoveCoins(db ledger.KVStore, src, dest ledger.Address, amount coin.Amount) error
}

// Controller is the functionality needed by cash.Handler and cash.Initializer.
// Extensions can use it as well.
type Controller interface {
	CoinMover
	IssueCoins(db ledger.KVStore, dest ledger.Address, amount coin.Amount) error
	Balance(db ledger.ReadOnlyKVStore, addr ledger.Address) (coin.Amount, error)
}

// BaseController is the default implementation of Controller on top of a
// wallet bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount held by the address. Unknown addresses hold
// nothing.
func (c BaseController) Balance(db ledger.ReadOnlyKVStore, addr ledger.Address) (coin.Amount, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return coin.Amount{}, errors.Wrap(err, "cannot get wallet")
	}
	if w == nil {
		return coin.Amount{}, nil
	}
	return w.Balance, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db ledger.KVStore, src, dest ledger.Address, amount coin.Amount) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot get sender")
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrInsufficientAmount, "empty account %s", src)
	}
	left, err := sender.Balance.Sub(amount)
	if err != nil {
		return errors.Wrap(err, "sender")
	}
	if src.Equals(dest) {
		// Nothing moves, but the sender was proven to hold the amount.
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get recipient")
	}
	total, err := recipient.Balance.Add(amount)
	if err != nil {
		return errors.Wrap(err, "recipient")
	}

	sender.Balance = left
	recipient.Balance = total
	if err := c.bucket.Save(db, src, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}
	if err := c.bucket.Save(db, dest, recipient); err != nil {
		return errors.Wrap(err, "cannot save recipient")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db ledger.KVStore, dest ledger.Address, amount coin.Amount) error {
	w, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get wallet")
	}
	total, err := w.Balance.Add(amount)
	if err != nil {
		return err
	}
	w.Balance = total
	return c.bucket.Save(db, dest, w)
}
