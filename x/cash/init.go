package cash

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
// The address is in any form ledger.ParseAddress accepts.
type GenesisAccount struct {
	Address ledger.Address `json:"address"`
	Amount  coin.Amount    `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	control := NewController(NewBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if err := control.IssueCoins(kv, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
