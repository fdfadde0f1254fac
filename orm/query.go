package orm

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

var _ ledger.QueryHandler = ModelBucket{}

// Register exposes the bucket under /<path> and every index under
// /<path>/<index name>.
func (b ModelBucket) Register(path string, r ledger.QueryRouter) {
	root := "/" + path
	r.Register(root, b)
	for _, idx := range b.indexes {
		r.Register(root+"/"+idx.name, indexQuery{bucket: b, index: idx})
	}
}

// Query reads one model by key, or all models with the given key prefix.
// Returned keys are the full database keys.
func (b ModelBucket) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	switch mod {
	case ledger.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []ledger.Model{ledger.Pair(key, value)}, nil
	case ledger.PrefixQueryMod:
		prefix := b.DBKey(data)
		it, err := db.Iterator(prefix, prefixEnd(prefix))
		if err != nil {
			return nil, err
		}
		return ConsumeIterator(it)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod %q", mod)
	}
}

type indexQuery struct {
	bucket ModelBucket
	index  Index
}

// Query returns all models indexed under the given value.
func (q indexQuery) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	if mod != ledger.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "index %s supports key queries only", q.index.name)
	}
	keys, err := q.index.keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]ledger.Model, 0, len(keys))
	for _, k := range keys {
		key := q.bucket.DBKey(k)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "index %s points to missing key %X", q.index.name, k)
		}
		res = append(res, ledger.Pair(key, value))
	}
	return res, nil
}

// ConsumeIterator reads all remaining key/value pairs and closes the
// iterator.
func ConsumeIterator(it ledger.Iterator) ([]ledger.Model, error) {
	defer it.Close()

	var res []ledger.Model
	for it.Valid() {
		res = append(res, ledger.Pair(it.Key(), it.Value()))
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Decode reads a model value returned by a query into dest.
func (b ModelBucket) Decode(raw []byte, dest Model) error {
	if err := b.checkDest(dest); err != nil {
		return err
	}
	if err := b.cdc.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot decode %s: %s", b.model.Name(), err)
	}
	return nil
}

// KeyOf strips the bucket prefix from a database key returned by a query.
func (b ModelBucket) KeyOf(dbKey []byte) ([]byte, error) {
	if len(dbKey) < len(b.prefix) || string(dbKey[:len(b.prefix)]) != string(b.prefix) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "key %X not in bucket %s", dbKey, b.name)
	}
	return dbKey[len(b.prefix):], nil
}
