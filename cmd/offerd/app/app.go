/*
Package app links together all the various components
to construct the offer ledger daemon.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/commands/server"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store/iavl"
	"github.com/iov-one/ledger/x"
	"github.com/iov-one/ledger/x/cash"
	"github.com/iov-one/ledger/x/offer"
	"github.com/iov-one/ledger/x/sigs"
	"github.com/iov-one/ledger/x/utils"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// Name is reported to tendermint in Info and used for the database.
const Name = "offerd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the wallet and offer handlers.
// Both share the same bank so the offer ledger moves the same balances
// cash/send does. The custody wallet cannot receive a cash/send, it only
// ever holds the amounts of active offers.
func Router(authFn x.Authenticator, opts ...offer.Option) *app.Router {
	r := app.NewRouter()
	bank := cash.NewController(cash.NewBucket())
	offers := offer.RegisterRoutes(r, authFn, bank, opts...)
	cash.RegisterRoutes(r, authFn, bank, offers.Custody())
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/auth" and "/offers"
func QueryRouter() ledger.QueryRouter {
	r := ledger.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		offer.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(opts ...offer.Option) ledger.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, opts...))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h ledger.Handler, kv ledger.CommitKVStore, debug bool) app.BaseApp {
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	return app.NewBaseApp(store, TxDecoder, h, debug)
}

// CommitKVStore returns the state store selected by the configuration.
// The iavl backend persists the data to the named path.
func CommitKVStore(cfg server.StoreConfig, dbPath string) (ledger.CommitKVStore, error) {
	switch cfg.Backend {
	case server.BackendMemory:
		return iavl.NewMemCommitStore(), nil
	case server.BackendIAVL:
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown store backend %q", cfg.Backend)
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid database name %q", dbPath)
	}
	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	db, err := dbm.NewGoLevelDB(filepath.Base(path), filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s: %s", path, err)
	}
	return iavl.NewCommitStoreWithDB(db, cfg.CacheSize), nil
}
