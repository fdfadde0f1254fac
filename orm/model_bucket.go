package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	amino "github.com/tendermint/go-amino"
)

// Model is the interface every entity stored in a ModelBucket implements.
// Models are amino encoded, so any struct with amino compatible fields
// works.
type Model interface {
	Validate() error
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket stores models of a single type under a common key prefix,
// keeping the declared secondary indexes in sync on every write.
type ModelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	cdc     *amino.Codec
	indexes []Index
}

// BucketOption configures a ModelBucket.
type BucketOption func(*ModelBucket)

// WithIndex declares a secondary index maintained on every write.
func WithIndex(name string, indexer Indexer, unique bool) BucketOption {
	return func(b *ModelBucket) {
		for _, idx := range b.indexes {
			if idx.name == name {
				panic("duplicate index " + name)
			}
		}
		b.indexes = append(b.indexes, newIndex(b.name, name, indexer, unique))
	}
}

// WithCodec uses the given codec instead of a private one. Required when a
// model contains interface fields registered on a shared codec.
func WithCodec(cdc *amino.Codec) BucketOption {
	return func(b *ModelBucket) {
		b.cdc = cdc
	}
}

// NewModelBucket returns a bucket for models of the same type as the given
// prototype. The prototype must be a pointer.
func NewModelBucket(name string, proto Model, opts ...BucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket name: " + name)
	}
	tp := reflect.TypeOf(proto)
	if tp == nil || tp.Kind() != reflect.Ptr {
		panic("model bucket prototype must be a pointer")
	}
	b := ModelBucket{
		name:   name,
		prefix: []byte(name + ":"),
		model:  tp.Elem(),
		cdc:    amino.NewCodec(),
	}
	for _, fn := range opts {
		fn(&b)
	}
	return b
}

// Name returns the bucket name.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key used in the store for the given model key.
func (b ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte(nil), b.prefix...), key...)
}

// One loads the model stored under the given key into dest. Missing models
// return ErrNotFound.
func (b ModelBucket) One(db ledger.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := b.checkDest(dest); err != nil {
		return err
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load model")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", b.model.Name())
	}
	if err := b.cdc.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot decode %s: %s", b.model.Name(), err)
	}
	return nil
}

// Has returns true if a model is stored under the given key.
func (b ModelBucket) Has(db ledger.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Put validates and saves the model, updating all indexes.
func (b ModelBucket) Put(db ledger.KVStore, key []byte, m Model) error {
	if err := b.checkDest(m); err != nil {
		return err
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "model key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}

	prev, err := b.load(db, key)
	if err != nil {
		return err
	}
	// Check all constraints before touching any index.
	for _, idx := range b.indexes {
		if err := idx.checkUnique(db, prev, m); err != nil {
			return errors.Wrapf(err, "index %s", idx.name)
		}
	}
	for _, idx := range b.indexes {
		if err := idx.update(db, key, prev, m); err != nil {
			return errors.Wrapf(err, "index %s", idx.name)
		}
	}

	raw, err := b.cdc.MarshalBinaryBare(m)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot encode %s: %s", b.model.Name(), err)
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes the model and its index entries. Deleting a missing model
// returns ErrNotFound.
func (b ModelBucket) Delete(db ledger.KVStore, key []byte) error {
	prev, err := b.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", b.model.Name())
	}
	for _, idx := range b.indexes {
		if err := idx.update(db, key, prev, nil); err != nil {
			return errors.Wrapf(err, "index %s", idx.name)
		}
	}
	return db.Delete(b.DBKey(key))
}

// ByIndex returns the keys of all models whose indexed value equals the
// given one, in key order.
func (b ModelBucket) ByIndex(db ledger.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error) {
	idx, err := b.index(indexName)
	if err != nil {
		return nil, err
	}
	return idx.keys(db, value)
}

// All returns the keys of all models, in key order.
func (b ModelBucket) All(db ledger.ReadOnlyKVStore) ([][]byte, error) {
	it, err := db.Iterator(b.prefix, prefixEnd(b.prefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var keys [][]byte
	for it.Valid() {
		keys = append(keys, append([]byte(nil), it.Key()[len(b.prefix):]...))
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func (b ModelBucket) index(name string) (Index, error) {
	for _, idx := range b.indexes {
		if idx.name == name {
			return idx, nil
		}
	}
	return Index{}, errors.Wrapf(errors.ErrHuman, "no index %q in bucket %s", name, b.name)
}

// load returns the currently stored model or nil.
func (b ModelBucket) load(db ledger.ReadOnlyKVStore, key []byte) (Model, error) {
	dest := reflect.New(b.model).Interface().(Model)
	switch err := b.One(db, key, dest); {
	case err == nil:
		return dest, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

func (b ModelBucket) checkDest(m Model) error {
	if tp := reflect.TypeOf(m); tp == nil || tp.Kind() != reflect.Ptr || tp.Elem() != b.model {
		return errors.Wrapf(errors.ErrInvalidType, "want *%s, got %T", b.model.Name(), m)
	}
	return nil
}
