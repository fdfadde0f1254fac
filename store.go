package ledger

// ReadOnlyKVStore is the query side of a store.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending order. A nil bound is open.
	// The range must not be written to while the iterator is open.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks [start, end) in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by stores and batches. Callers must
// not modify key or value after passing them in.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is what every handler, bucket and initializer works on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a key range.
//
//	itr, err := db.Iterator(start, end)
//	if err != nil {
//		return err
//	}
//	defer itr.Close()
//	for ; itr.Valid(); err = itr.Next() {
//		k, v := itr.Key(), itr.Value()
//	}
type Iterator interface {
	// Valid stays false once it returned false.
	Valid() bool
	// Next panics on an invalid iterator.
	Next() error
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stack an uncommitted layer on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a savepoint. Reads see the pending writes, Write flushes
// them to the parent and Discard drops them.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root store. Changes reach it through a
// cache wrap and become durable on Commit.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap

	// Commit persists a new version and returns its id.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the last complete version. After a crash
	// during a commit this is the version before it.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by height and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
