package orm

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Indexer calculates the secondary index value for a model. Returning nil
// means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// Index keeps a secondary mapping from an indexed value to the primary keys
// of all models that produce it.
//
// Entries are stored under the key:
//
//	_i.<bucket>_<index>:<len(value)><value><primary key>
//
// so that all keys for one value can be read with a single prefix scan.
type Index struct {
	name    string
	prefix  []byte
	indexer Indexer
	unique  bool
}

func newIndex(bucket, name string, indexer Indexer, unique bool) Index {
	return Index{
		name:    name,
		prefix:  []byte("_i." + bucket + "_" + name + ":"),
		indexer: indexer,
		unique:  unique,
	}
}

// Name returns the index name.
func (i Index) Name() string {
	return i.name
}

func (i Index) valuePrefix(value []byte) []byte {
	out := make([]byte, 0, len(i.prefix)+2+len(value))
	out = append(out, i.prefix...)
	var size [2]byte
	binary.BigEndian.PutUint16(size[:], uint16(len(value)))
	out = append(out, size[:]...)
	return append(out, value...)
}

func (i Index) entryKey(value, pk []byte) []byte {
	return append(i.valuePrefix(value), pk...)
}

func (i Index) value(m Model) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	v, err := i.indexer(m)
	if err != nil {
		return nil, err
	}
	if len(v) > 0xFFFF {
		return nil, errors.Wrap(errors.ErrInvalidInput, "index value too long")
	}
	return v, nil
}

// update moves the index entry of the model stored under pk from its
// previous value to the new one. Either model may be nil.
func (i Index) update(db ledger.KVStore, pk []byte, prev, next Model) error {
	oldV, err := i.value(prev)
	if err != nil {
		return err
	}
	newV, err := i.value(next)
	if err != nil {
		return err
	}
	if oldV != nil && newV != nil && bytes.Equal(oldV, newV) {
		return nil
	}

	if oldV != nil {
		if err := db.Delete(i.entryKey(oldV, pk)); err != nil {
			return err
		}
	}
	if newV == nil {
		return nil
	}
	return db.Set(i.entryKey(newV, pk), pk)
}

// checkUnique fails with ErrDuplicate when a unique index already holds
// the value the next model produces.
func (i Index) checkUnique(db ledger.ReadOnlyKVStore, prev, next Model) error {
	if !i.unique || next == nil {
		return nil
	}
	oldV, err := i.value(prev)
	if err != nil {
		return err
	}
	newV, err := i.value(next)
	if err != nil {
		return err
	}
	if newV == nil || (oldV != nil && bytes.Equal(oldV, newV)) {
		return nil
	}
	existing, err := i.keys(db, newV)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return errors.Wrapf(errors.ErrDuplicate, "value %X", newV)
	}
	return nil
}

// keys returns all primary keys indexed under given value.
func (i Index) keys(db ledger.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	start := i.valuePrefix(value)
	it, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var res [][]byte
	for it.Valid() {
		res = append(res, append([]byte(nil), it.Value()...))
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// prefixEnd returns the first key that does not have the given prefix, nil
// when there is no such key.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
