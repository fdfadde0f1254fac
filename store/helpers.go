package store

// SliceIterator iterates over models that are already loaded in memory.
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Valid() bool {
	return s.idx < len(s.data)
}

// Next panics when called on an exhausted iterator.
func (s *SliceIterator) Next() error {
	s.mustBeValid()
	s.idx++
	return nil
}

func (s *SliceIterator) Key() []byte {
	s.mustBeValid()
	return s.data[s.idx].Key
}

func (s *SliceIterator) Value() []byte {
	s.mustBeValid()
	return s.data[s.idx].Value
}

func (s *SliceIterator) Close() {
	s.data = nil
}

func (s *SliceIterator) mustBeValid() {
	if !s.Valid() {
		panic("slice iterator exhausted")
	}
}

// EmptyKVStore holds nothing and drops every write. A cache on top of it
// is a plain in memory store.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error) { return false, nil }
func (EmptyKVStore) Set(_, _ []byte) error { return nil }
func (EmptyKVStore) Delete([]byte) error { return nil }

func (EmptyKVStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

// Op is a single pending write, either a set or a delete.
type Op struct {
	key   []byte
	value []byte
	del   bool
}

func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

func DelOp(key []byte) Op {
	return Op{key: key, del: true}
}

// Apply writes the operation to out.
func (o Op) Apply(out SetDeleter) error {
	if o.del {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch queues writes and replays them in order on Write. A
// failing write leaves the earlier ones applied, so use it only on top
// of stores that cannot fail halfway, like the in memory caches.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write applies every queued operation and empties the batch.
func (b *NonAtomicBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			b.ops = b.ops[i:]
			return err
		}
	}
	b.ops = nil
	return nil
}

func (b *NonAtomicBatch) Reset() {
	b.ops = nil
}
