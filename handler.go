package ledger

import (
	"encoding/json"

	"github.com/iov-one/ledger/errors"
)

// Handler processes the messages registered for it, for example creating
// an offer or sending tokens.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction against the check state without
// changing the delivered state.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction. Writes to the store are only kept if
// no error is returned.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs before a handler, for example to verify signatures or
// to log the outcome, and decides whether to call next.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry collects the handlers of every extension by message path.
type Registry interface {
	// Handle panics if the path is already taken.
	Handle(path string, h Handler)
}

// Options is the app_state section of the genesis file, keyed by
// extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of one extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers runs several initializers as one.
type ChainInitializers []Initializer

func (c ChainInitializers) FromGenesis(opts Options, kv KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
