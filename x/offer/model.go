package offer

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// OfferStatus is the life-cycle state of an offer. Accepted and Cancelled
// are terminal.
type OfferStatus int32

// The zero value is not a valid status.
const (
	StatusActive OfferStatus = iota + 1
	StatusAccepted
	StatusCancelled
)

var statusNames = map[OfferStatus]string{
	StatusActive:    "active",
	StatusAccepted:  "accepted",
	StatusCancelled: "cancelled",
}

func (s OfferStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("OfferStatus(%d)", int32(s))
}

// Validate returns an error if this is not one of the known statuses.
func (s OfferStatus) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errors.Wrapf(errors.ErrInvalidState, "unknown status %d", int32(s))
	}
	return nil
}

// IsTerminal returns true if no transition out of this status exists.
func (s OfferStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusCancelled
}

func (s OfferStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OfferStatus) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "status must be a string")
	}
	for st, n := range statusNames {
		if n == name {
			*s = st
			return nil
		}
	}
	return errors.Wrapf(errors.ErrInvalidInput, "unknown status %q", name)
}

// Offer is a single escrow agreement.
type Offer struct {
	ID        uint64         `json:"id"`
	Creator   ledger.Address `json:"creator"`
	Recipient ledger.Address `json:"recipient"`
	Amount    coin.Amount    `json:"amount"`
	Status    OfferStatus    `json:"status"`
}

var _ orm.Model = (*Offer)(nil)

// Validate ensures the offer can be stored.
func (o *Offer) Validate() error {
	if o.ID == 0 {
		return errors.Wrap(errors.ErrEmpty, "id")
	}
	if err := o.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if err := o.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if o.Creator.Equals(o.Recipient) {
		return errors.Wrap(ErrSelfDealing, "recipient is the creator")
	}
	if !o.Amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "amount")
	}
	return o.Status.Validate()
}

// Key returns the key the offer is stored under.
func (o *Offer) Key() []byte {
	return offerKey(o.ID)
}

func offerKey(id uint64) []byte {
	return orm.EncodeSequence(id)
}

// BucketName is where offers are stored.
const BucketName = "offer"

// NewBucket returns the bucket holding all offers, indexed by creator and
// recipient.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Offer{},
		orm.WithIndex("creator", idxCreator, false),
		orm.WithIndex("recipient", idxRecipient, false),
	)
}

// NewSequence returns the sequence offer ids are taken from. Its value is
// the id of the last created offer.
func NewSequence() orm.Sequence {
	return orm.NewSequence(BucketName, "id")
}

// CustodyCondition is the condition of the wallet holding the value of
// all active offers. Nobody can sign for it, only this package moves funds
// out of it.
func CustodyCondition() ledger.Condition {
	return ledger.NewCondition("offer", "custody", []byte("ledger"))
}

func toOffer(m orm.Model) (*Offer, error) {
	o, ok := m.(*Offer)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "can only index Offer, got %T", m)
	}
	return o, nil
}

func idxCreator(m orm.Model) ([]byte, error) {
	o, err := toOffer(m)
	if err != nil {
		return nil, err
	}
	return o.Creator, nil
}

func idxRecipient(m orm.Model) ([]byte, error) {
	o, err := toOffer(m)
	if err != nil {
		return nil, err
	}
	return o.Recipient, nil
}
