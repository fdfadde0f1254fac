package offer

import (
	"strconv"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x"
	"github.com/iov-one/ledger/x/cash"
)

const (
	createOfferCost  int64 = 300
	releaseOfferCost int64 = 0
)

// RegisterRoutes registers the create, accept and cancel handlers on one
// ledger and returns it. Its custody wallet must be kept out of reach of
// any other handler moving value.
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, bank cash.CoinMover, opts ...Option) *Ledger {
	l := NewLedger(bank, opts...)
	r.Handle(pathCreateMsg, CreateHandler{auth: auth, offers: l})
	r.Handle(pathAcceptMsg, AcceptHandler{auth: auth, offers: l})
	r.Handle(pathCancelMsg, CancelHandler{auth: auth, offers: l})
	return l
}

// RegisterQuery will register the offers bucket as "/offers", with its
// indexes under "/offers/creator" and "/offers/recipient", and the id
// counter as "/offers/last".
func RegisterQuery(qr ledger.QueryRouter) {
	NewBucket().Register("offers", qr)
	qr.Register("/offers/last", lastIDQuery{seq: NewSequence()})
}

// lastIDQuery returns the value of the id sequence, 8 bytes big endian.
type lastIDQuery struct {
	seq orm.Sequence
}

func (q lastIDQuery) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	if mod != ledger.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod %q", mod)
	}
	last, err := q.seq.Latest(db)
	if err != nil {
		return nil, err
	}
	return []ledger.Model{ledger.Pair(q.seq.ID(), orm.EncodeSequence(last))}, nil
}

// CreateHandler deposits value into a new offer.
type CreateHandler struct {
	auth   x.Authenticator
	offers *Ledger
}

var _ ledger.Handler = CreateHandler{}

// Check validates the offer without moving any value.
func (h CreateHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	creator, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.offers.CheckCreate(creator, msg.Recipient, msg.Amount); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: createOfferCost}, nil
}

// Deliver moves the amount from the signer into custody and stores the
// offer. The new id is returned as data.
func (h CreateHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	creator, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.offers.Create(ctx, db, creator, msg.Recipient, msg.Amount)
	if err != nil {
		return nil, err
	}
	return tagged(&ledger.DeliverResult{Data: offerKey(id)}, pathCreateMsg, id), nil
}

func (h CreateHandler) validate(ctx ledger.Context, tx ledger.Tx) (ledger.Address, *CreateMsg, error) {
	var msg *CreateMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	creator, err := x.Signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return creator, msg, nil
}

// AcceptHandler pays an offer to its recipient.
type AcceptHandler struct {
	auth   x.Authenticator
	offers *Ledger
}

var _ ledger.Handler = AcceptHandler{}

// Check verifies the signer may accept the offer.
func (h AcceptHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	caller, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.offers.CheckAccept(db, caller, msg.OfferID); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: releaseOfferCost}, nil
}

// Deliver releases the custody to the recipient.
func (h AcceptHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	caller, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.offers.Accept(ctx, db, caller, msg.OfferID); err != nil {
		return nil, err
	}
	return tagged(&ledger.DeliverResult{Data: offerKey(msg.OfferID)}, pathAcceptMsg, msg.OfferID), nil
}

func (h AcceptHandler) validate(ctx ledger.Context, tx ledger.Tx) (ledger.Address, *AcceptMsg, error) {
	var msg *AcceptMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	caller, err := x.Signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return caller, msg, nil
}

// CancelHandler returns an offer to its creator.
type CancelHandler struct {
	auth   x.Authenticator
	offers *Ledger
}

var _ ledger.Handler = CancelHandler{}

// Check verifies the signer may cancel the offer.
func (h CancelHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	caller, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.offers.CheckCancel(db, caller, msg.OfferID); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: releaseOfferCost}, nil
}

// Deliver releases the custody back to the creator.
func (h CancelHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	caller, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.offers.Cancel(ctx, db, caller, msg.OfferID); err != nil {
		return nil, err
	}
	return tagged(&ledger.DeliverResult{Data: offerKey(msg.OfferID)}, pathCancelMsg, msg.OfferID), nil
}

func (h CancelHandler) validate(ctx ledger.Context, tx ledger.Tx) (ledger.Address, *CancelMsg, error) {
	var msg *CancelMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	caller, err := x.Signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return caller, msg, nil
}

// tagged indexes the result by action and offer id.
func tagged(res *ledger.DeliverResult, action string, id uint64) *ledger.DeliverResult {
	res.AddTag([]byte("action"), []byte(action))
	res.AddTag([]byte("offer"), []byte(strconv.FormatUint(id, 10)))
	return res
}
