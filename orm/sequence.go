package orm

import (
	"encoding/binary"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Sequence maintains a counter/auto-generate a number of
// keys, they may be sequential or pseudo-random.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence stored under a key built from the bucket
// and the sequence name, eg. _s.offer:id
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// ID returns the storage key of this sequence.
func (s Sequence) ID() []byte {
	return s.id
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s Sequence) NextVal(db ledger.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db, 1)
	return bz, err
}

// NextInt increments the sequence and returns its state as an int.
func (s Sequence) NextInt(db ledger.KVStore) (uint64, error) {
	val, _, err := s.increment(db, 1)
	return val, err
}

// Latest returns the current value without incrementing it. A sequence
// that was never used is 0.
func (s Sequence) Latest(db ledger.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "sequence")
	}
	return DecodeSequence(raw)
}

func (s Sequence) increment(db ledger.KVStore, inc uint64) (uint64, []byte, error) {
	val, err := s.Latest(db)
	if err != nil {
		return 0, nil, err
	}
	next := val + inc
	if next < val {
		return 0, nil, errors.Wrapf(errors.ErrOverflow, "sequence %s", s.id)
	}
	raw := EncodeSequence(next)
	if err := db.Set(s.id, raw); err != nil {
		return 0, nil, errors.Wrap(err, "sequence")
	}
	return next, raw, nil
}

// DecodeSequence reads a big endian encoded value. Missing value is 0.
func DecodeSequence(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "sequence value must be 8 bytes, got %d", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

// EncodeSequence is used to encode a sequence value into bytes.
// Big endian keeps the natural order when used as a key.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
