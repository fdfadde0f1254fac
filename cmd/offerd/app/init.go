package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/commands/server"
	"github.com/iov-one/ledger/crypto"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/cash"
	"github.com/iov-one/ledger/x/offer"
	abci "github.com/tendermint/tendermint/abci/types"
)

// DefaultGenesisAmount is given to the genesis account when no amount is
// passed to init.
const DefaultGenesisAmount = 123456789

// GenInitOptions produces the app_state for one rich account, to use for
// dev mode. Arguments are the account address and its balance. Without an
// address a new key is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr ledger.Address
	if len(args) > 0 {
		a, err := ledger.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		addr = a
	} else {
		a, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Fprintln(os.Stderr, keys)
	}

	amount := coin.NewAmount(DefaultGenesisAmount)
	if len(args) > 1 {
		a, err := coin.ParseAmount(args[1])
		if err != nil {
			return nil, err
		}
		amount = a
	}

	state := map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Address: addr, Amount: amount},
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}

// Initializers loads the genesis state of every extension.
func Initializers() ledger.Initializer {
	return ledger.ChainInitializers{
		cash.Initializer{},
	}
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	kv, err := CommitKVStore(options.Store, filepath.Join(options.Home, "offerd.db"))
	if err != nil {
		return nil, err
	}

	var opts []offer.Option
	if options.Metrics != nil {
		opts = append(opts, offer.WithMetrics(offer.NewMetrics(options.Metrics)))
	}

	application := Application(Name, Stack(opts...), kv, options.Debug)
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(options.Logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
// You can give coins to this address and
// import the keys in the client to use them
func GenerateCoinKey() (ledger.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return addr, string(keys), nil
}
