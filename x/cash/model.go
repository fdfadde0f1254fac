package cash

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is the balance held by a single address.
type Wallet struct {
	Balance coin.Amount `json:"balance"`
}

var _ orm.Model = (*Wallet)(nil)

// Validate accepts any balance, an unsigned amount cannot be broken.
func (w *Wallet) Validate() error {
	return nil
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Wallet{}),
	}
}

// Get returns the wallet stored for the address, or nil if none exists.
func (b Bucket) Get(db ledger.ReadOnlyKVStore, addr ledger.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// GetOrCreate returns the stored wallet or an empty one.
func (b Bucket) GetOrCreate(db ledger.ReadOnlyKVStore, addr ledger.Address) (*Wallet, error) {
	w, err := b.Get(db, addr)
	if err != nil || w != nil {
		return w, err
	}
	return &Wallet{}, nil
}

// Save stores the wallet under the given address.
func (b Bucket) Save(db ledger.KVStore, addr ledger.Address, w *Wallet) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	return b.Put(db, addr, w)
}
