package app

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// CommitStore keeps the committed state together with the two caches that
// transactions run against between commits. CheckTx and DeliverTx never see
// each other's writes: at commit the deliver cache is flushed and the check
// cache is thrown away.
type CommitStore struct {
	committed ledger.CommitKVStore
	deliver   ledger.KVCacheWrap
	check     ledger.KVCacheWrap
}

// NewCommitStore loads the latest version of the store. It panics if the
// store cannot be loaded, as there is no way to start without state.
func NewCommitStore(kv ledger.CommitKVStore) *CommitStore {
	if err := kv.LoadLatestVersion(); err != nil {
		panic(errors.Wrap(err, "cannot load latest version"))
	}
	cs := &CommitStore{committed: kv}
	cs.resetCaches()
	return cs
}

func (cs *CommitStore) resetCaches() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the height and hash of the last commit.
func (cs *CommitStore) CommitInfo() (ledger.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists everything delivered since the last commit and starts
// new caches on top of the new version.
func (cs *CommitStore) Commit() (ledger.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return ledger.CommitID{}, errors.Wrap(err, "cannot flush deliver cache")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "cannot commit")
	}
	cs.resetCaches()
	return id, nil
}

// CheckStore is used by CheckTx.
func (cs *CommitStore) CheckStore() ledger.CacheableKVStore {
	return cs.check
}

// DeliverStore is used by DeliverTx and InitChain.
func (cs *CommitStore) DeliverStore() ledger.CacheableKVStore {
	return cs.deliver
}

// chainIDKey is outside of any bucket name space, the "_ld:" prefix is
// reserved for the application itself.
var chainIDKey = []byte("_ld:chainID")

// loadChainID returns the chain id saved at genesis, or an empty string
// before the chain was initialized.
func loadChainID(kv ledger.ReadOnlyKVStore) (string, error) {
	raw, err := kv.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "cannot load chain id")
	}
	return string(raw), nil
}

// saveChainID writes the chain id once. The chain id is part of every
// signature, so changing it later would invalidate all signed transactions.
func saveChainID(kv ledger.KVStore, chainID string) error {
	if !ledger.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id: %q", chainID)
	}
	switch exists, err := kv.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "cannot load chain id")
	case exists:
		return errors.Wrap(errors.ErrUnauthorized, "chain id cannot be changed after genesis")
	}
	if err := kv.Set(chainIDKey, []byte(chainID)); err != nil {
		return errors.Wrap(err, "cannot save chain id")
	}
	return nil
}
