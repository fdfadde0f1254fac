package offer

import (
	"fmt"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x/cash"
	"github.com/iov-one/ledger/x/utils"
)

// Ledger owns the offer table and the id counter. It is the only code
// that moves value out of the custody wallet.
type Ledger struct {
	bucket  orm.ModelBucket
	seq     orm.Sequence
	bank    cash.CoinMover
	custody ledger.Address
	metrics *Metrics
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithMetrics records every operation in the given counters.
func WithMetrics(m *Metrics) Option {
	return func(l *Ledger) {
		l.metrics = m
	}
}

// WithCustody holds the deposited value in the given wallet instead of
// the one derived from CustodyCondition.
func WithCustody(addr ledger.Address) Option {
	return func(l *Ledger) {
		l.custody = addr
	}
}

// NewLedger returns a ledger moving value with the given bank.
func NewLedger(bank cash.CoinMover, opts ...Option) *Ledger {
	l := &Ledger{
		bucket:  NewBucket(),
		seq:     NewSequence(),
		bank:    bank,
		custody: CustodyCondition().Address(),
	}
	for _, fn := range opts {
		fn(l)
	}
	return l
}

// Custody returns the address of the wallet holding the deposits.
func (l *Ledger) Custody() ledger.Address {
	return l.custody
}

// Create deposits the amount from the creator into custody and records a
// new active offer for the recipient. The id of the new offer is returned.
func (l *Ledger) Create(ctx ledger.Context, db ledger.KVStore, creator, recipient ledger.Address, amount coin.Amount) (uint64, error) {
	if err := l.CheckCreate(creator, recipient, amount); err != nil {
		l.metrics.observeRejected("create", err)
		return 0, err
	}

	var offer *Offer
	err := utils.Atomic(db, func(db ledger.KVStore) error {
		if err := l.bank.MoveCoins(db, creator, l.custody, amount); err != nil {
			return errors.Wrap(err, "cannot deposit")
		}
		id, err := l.seq.NextInt(db)
		if err != nil {
			return errors.Wrap(err, "cannot acquire id")
		}
		offer = &Offer{
			ID:        id,
			Creator:   creator,
			Recipient: recipient,
			Amount:    amount,
			Status:    StatusActive,
		}
		if err := l.bucket.Put(db, offer.Key(), offer); err != nil {
			return errors.Wrap(err, "cannot store offer")
		}
		return nil
	})
	if err != nil {
		l.metrics.observeRejected("create", err)
		return 0, err
	}

	l.metrics.observeCreated()
	ledger.GetLogger(ctx).Info("offer created",
		"id", offer.ID, "creator", creator, "recipient", recipient, "amount", amount)
	return offer.ID, nil
}

// CheckCreate validates the arguments of Create without touching any
// state. The first failing rule wins.
func (l *Ledger) CheckCreate(creator, recipient ledger.Address, amount coin.Amount) error {
	if err := checkDeposit(amount); err != nil {
		return err
	}
	if creator.Equals(recipient) {
		return ErrSelfDealing.WithMessage("Cannot create offer for self")
	}
	if err := creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if err := recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return nil
}

// checkDeposit is the first rule of a create, shared with CreateMsg so
// that a zero deposit is reported the same way before any other problem.
func checkDeposit(amount coin.Amount) error {
	if !amount.IsPositive() {
		return errors.ErrInvalidAmount.WithMessage("Must pay more than 0")
	}
	return nil
}

// Accept pays the amount of an active offer to its recipient. Only the
// recipient can accept.
func (l *Ledger) Accept(ctx ledger.Context, db ledger.KVStore, caller ledger.Address, id uint64) (*Offer, error) {
	return l.release(ctx, db, caller, id, StatusAccepted)
}

// CheckAccept returns the error Accept would fail with, without touching
// any state. Failing transfers are not detected.
func (l *Ledger) CheckAccept(db ledger.ReadOnlyKVStore, caller ledger.Address, id uint64) error {
	_, err := l.releasable(db, caller, id, StatusAccepted)
	return err
}

// Cancel pays the amount of an active offer back to its creator. Only the
// creator can cancel.
func (l *Ledger) Cancel(ctx ledger.Context, db ledger.KVStore, caller ledger.Address, id uint64) (*Offer, error) {
	return l.release(ctx, db, caller, id, StatusCancelled)
}

// CheckCancel returns the error Cancel would fail with, without touching
// any state. Failing transfers are not detected.
func (l *Ledger) CheckCancel(db ledger.ReadOnlyKVStore, caller ledger.Address, id uint64) error {
	_, err := l.releasable(db, caller, id, StatusCancelled)
	return err
}

// release moves the custody of an offer to the party the final status
// pays out to. The transfer happens first, the status is written only
// once the transfer succeeded. Both are discarded together on failure.
func (l *Ledger) release(ctx ledger.Context, db ledger.KVStore, caller ledger.Address, id uint64, final OfferStatus) (*Offer, error) {
	op := operationName(final)
	offer, err := l.releasable(db, caller, id, final)
	if err != nil {
		l.metrics.observeRejected(op, err)
		return nil, err
	}

	payee := offer.Recipient
	if final == StatusCancelled {
		payee = offer.Creator
	}
	err = utils.Atomic(db, func(db ledger.KVStore) error {
		if err := l.bank.MoveCoins(db, l.custody, payee, offer.Amount); err != nil {
			return errors.Wrap(err, "cannot release custody")
		}
		offer.Status = final
		if err := l.bucket.Put(db, offer.Key(), offer); err != nil {
			return errors.Wrap(err, "cannot store offer")
		}
		return nil
	})
	if err != nil {
		l.metrics.observeRejected(op, err)
		return nil, err
	}

	l.metrics.observeReleased(final)
	ledger.GetLogger(ctx).Info("offer released",
		"id", id, "status", final, "payee", payee, "amount", offer.Amount)
	return offer, nil
}

// releasable loads the offer and checks the caller may move it to the
// final status.
func (l *Ledger) releasable(db ledger.ReadOnlyKVStore, caller ledger.Address, id uint64, final OfferStatus) (*Offer, error) {
	offer, err := l.Offer(db, id)
	if err != nil {
		return nil, err
	}
	if offer.Status != StatusActive {
		return nil, errors.ErrInvalidState.WithMessage(fmt.Sprintf("Offer is not active, it is %s", offer.Status))
	}
	switch final {
	case StatusAccepted:
		if !caller.Equals(offer.Recipient) {
			return nil, errors.ErrUnauthorized.WithMessage("Only the recipient can accept this offer")
		}
	case StatusCancelled:
		if !caller.Equals(offer.Creator) {
			return nil, errors.ErrUnauthorized.WithMessage("Only the creator can cancel this offer")
		}
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "%s is not a final status", final)
	}
	return offer, nil
}

// LastOfferID returns the id of the most recently created offer, 0 if
// none was created yet. It equals the number of offers ever created.
func (l *Ledger) LastOfferID(db ledger.ReadOnlyKVStore) (uint64, error) {
	return l.seq.Latest(db)
}

// Offer returns the offer with the given id.
func (l *Ledger) Offer(db ledger.ReadOnlyKVStore, id uint64) (*Offer, error) {
	var offer Offer
	switch err := l.bucket.One(db, offerKey(id), &offer); {
	case err == nil:
		return &offer, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.ErrNotFound.WithMessage(fmt.Sprintf("No offer with id %d", id))
	default:
		return nil, err
	}
}

// OffersByCreator returns all offers created by the address, by id.
func (l *Ledger) OffersByCreator(db ledger.ReadOnlyKVStore, creator ledger.Address) ([]*Offer, error) {
	return l.byIndex(db, "creator", creator)
}

// OffersByRecipient returns all offers made to the address, by id.
func (l *Ledger) OffersByRecipient(db ledger.ReadOnlyKVStore, recipient ledger.Address) ([]*Offer, error) {
	return l.byIndex(db, "recipient", recipient)
}

func (l *Ledger) byIndex(db ledger.ReadOnlyKVStore, index string, addr ledger.Address) ([]*Offer, error) {
	keys, err := l.bucket.ByIndex(db, index, addr)
	if err != nil {
		return nil, err
	}
	offers := make([]*Offer, 0, len(keys))
	for _, key := range keys {
		var o Offer
		if err := l.bucket.One(db, key, &o); err != nil {
			return nil, errors.Wrapf(err, "index %s", index)
		}
		offers = append(offers, &o)
	}
	return offers, nil
}

// CustodyBalance returns the sum of the amounts of all active offers. The
// custody wallet holds exactly this value as long as no other handler can
// credit it, see cash.RegisterRoutes.
func (l *Ledger) CustodyBalance(db ledger.ReadOnlyKVStore) (coin.Amount, error) {
	keys, err := l.bucket.All(db)
	if err != nil {
		return coin.Amount{}, err
	}
	var total coin.Amount
	for _, key := range keys {
		var o Offer
		if err := l.bucket.One(db, key, &o); err != nil {
			return coin.Amount{}, err
		}
		if o.Status != StatusActive {
			continue
		}
		if total, err = total.Add(o.Amount); err != nil {
			return coin.Amount{}, err
		}
	}
	return total, nil
}

func operationName(final OfferStatus) string {
	if final == StatusCancelled {
		return "cancel"
	}
	return "accept"
}
