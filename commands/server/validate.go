package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
)

// ValidateGenesis loads every given genesis file into a scratch store.
// A file must carry a valid chain id and a non empty app_state that the
// initializer accepts.
func ValidateGenesis(ini ledger.Initializer, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no genesis file given")
	}
	for _, path := range genesisPaths {
		raw, err := ioutil.ReadFile(path)
		if err != nil {
			return errors.Wrapf(errors.ErrNotFound, "genesis %s: %s", path, err)
		}
		if err := checkGenesis(ini, raw); err != nil {
			return errors.Wrapf(err, "genesis %s", path)
		}
	}
	return nil
}

func checkGenesis(ini ledger.Initializer, raw []byte) error {
	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	var chainID string
	if err := json.Unmarshal(doc["chain_id"], &chainID); err != nil || !ledger.IsValidChainID(chainID) {
		return errors.ErrInvalidInput.Newf("chain id: %s", doc["chain_id"])
	}

	state := doc[appStateKey]
	if isEmptyState(state) {
		return errors.Wrap(errors.ErrEmpty, appStateKey)
	}
	var opts ledger.Options
	if err := json.Unmarshal(state, &opts); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "%s: %s", appStateKey, err)
	}
	return ini.FromGenesis(opts, store.MemStore())
}
