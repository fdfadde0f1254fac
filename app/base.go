package app

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a StoreApp that also processes transactions. Every transaction
// is decoded and passed to the handler, which is usually a decorator stack
// closed by a Router.
type BaseApp struct {
	*StoreApp
	decoder ledger.TxDecoder
	handler ledger.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application processing transactions with the given
// handler. In debug mode error responses carry the full error text.
func NewBaseApp(store *StoreApp, decoder ledger.TxDecoder, handler ledger.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx implements abci.Application. State changes are written to the
// deliver cache and persisted on Commit.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	ctx, tx, err := b.prepare("deliver_tx", raw)
	if err != nil {
		return ledger.DeliverResponse(nil, err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return ledger.DeliverResponse(res, err, b.debug)
}

// CheckTx implements abci.Application. State changes are kept in the check
// cache until the next Commit, so that a sequence of transactions from the
// same signer can be checked before a block is created.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	ctx, tx, err := b.prepare("check_tx", raw)
	if err != nil {
		return ledger.CheckResponse(nil, err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return ledger.CheckResponse(res, err, b.debug)
}

// prepare decodes the transaction and returns the context it is processed
// in. The decoder works on untrusted input and a panic in it is reported
// as an error.
func (b BaseApp) prepare(call string, raw []byte) (ctx ledger.Context, tx ledger.Tx, err error) {
	if len(raw) == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmpty, "transaction")
	}
	defer errors.Recover(&err)

	tx, err = b.decoder(raw)
	if err != nil {
		return nil, nil, err
	}
	ctx = ledger.WithLogInfo(b.BlockContext(), "call", call, "path", ledger.GetPath(tx))
	return ctx, tx, nil
}
