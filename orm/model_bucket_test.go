package orm

import (
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest/assert"
	"github.com/iov-one/ledger/store"
)

type testPlayer struct {
	Name  string
	Team  string
	Score uint64
}

func (p *testPlayer) Validate() error {
	if p.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

type otherModel struct {
	Value string
}

func (otherModel) Validate() error { return nil }

func teamIndex(m Model) ([]byte, error) {
	p, ok := m.(*testPlayer)
	if !ok {
		return nil, errors.WithType(errors.ErrInvalidType, m)
	}
	if p.Team == "" {
		return nil, nil
	}
	return []byte(p.Team), nil
}

func nameIndex(m Model) ([]byte, error) {
	return []byte(m.(*testPlayer).Name), nil
}

func newPlayerBucket() ModelBucket {
	return NewModelBucket("players", &testPlayer{},
		WithIndex("team", teamIndex, false),
		WithIndex("name", nameIndex, true),
	)
}

func TestModelBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := newPlayerBucket()

	assert.Nil(t, b.Put(db, []byte("p1"), &testPlayer{Name: "alice", Team: "red", Score: 3}))

	var got testPlayer
	assert.Nil(t, b.One(db, []byte("p1"), &got))
	assert.Equal(t, testPlayer{Name: "alice", Team: "red", Score: 3}, got)

	has, err := b.Has(db, []byte("p1"))
	assert.Nil(t, err)
	assert.Equal(t, true, has)

	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("missing"), &got))
	assert.IsErr(t, errors.ErrEmpty, b.Put(db, []byte("p2"), &testPlayer{}))
	assert.IsErr(t, errors.ErrEmpty, b.Put(db, nil, &testPlayer{Name: "bob"}))
	assert.IsErr(t, errors.ErrInvalidType, b.Put(db, []byte("p3"), &otherModel{}))
	assert.IsErr(t, errors.ErrInvalidType, b.One(db, []byte("p1"), &otherModel{}))
}

func TestModelBucketIndexes(t *testing.T) {
	db := store.MemStore()
	b := newPlayerBucket()

	assert.Nil(t, b.Put(db, []byte("p1"), &testPlayer{Name: "alice", Team: "red"}))
	assert.Nil(t, b.Put(db, []byte("p2"), &testPlayer{Name: "bob", Team: "red"}))
	assert.Nil(t, b.Put(db, []byte("p3"), &testPlayer{Name: "carol", Team: "blue"}))
	assert.Nil(t, b.Put(db, []byte("p4"), &testPlayer{Name: "dave"}))

	keys, err := b.ByIndex(db, "team", []byte("red"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("p1"), []byte("p2")}, keys)

	// moving a model updates its index entry
	assert.Nil(t, b.Put(db, []byte("p2"), &testPlayer{Name: "bob", Team: "blue"}))
	keys, err = b.ByIndex(db, "team", []byte("red"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("p1")}, keys)
	keys, err = b.ByIndex(db, "team", []byte("blue"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("p2"), []byte("p3")}, keys)

	// a value that is a prefix of another must not match it
	keys, err = b.ByIndex(db, "team", []byte("re"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(keys))

	// unique index
	assert.IsErr(t, errors.ErrDuplicate, b.Put(db, []byte("p5"), &testPlayer{Name: "alice"}))
	assert.Nil(t, b.Put(db, []byte("p1"), &testPlayer{Name: "alice", Team: "green"}))

	_, err = b.ByIndex(db, "unknown", []byte("x"))
	assert.IsErr(t, errors.ErrHuman, err)

	// delete removes index entries
	assert.Nil(t, b.Delete(db, []byte("p3")))
	keys, err = b.ByIndex(db, "team", []byte("blue"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("p2")}, keys)
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, []byte("p3")))

	all, err := b.All(db)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("p1"), []byte("p2"), []byte("p4")}, all)
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := newPlayerBucket()
	qr := ledger.NewQueryRouter()
	b.Register("players", qr)

	assert.Nil(t, b.Put(db, []byte("p1"), &testPlayer{Name: "alice", Team: "red"}))
	assert.Nil(t, b.Put(db, []byte("p2"), &testPlayer{Name: "bob", Team: "red"}))
	assert.Nil(t, b.Put(db, []byte("q1"), &testPlayer{Name: "carol", Team: "blue"}))

	res, err := qr.Handler("/players").Query(db, ledger.KeyQueryMod, []byte("p2"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	key, err := b.KeyOf(res[0].Key)
	assert.Nil(t, err)
	assert.Equal(t, []byte("p2"), key)
	var p testPlayer
	assert.Nil(t, b.Decode(res[0].Value, &p))
	assert.Equal(t, "bob", p.Name)

	res, err = qr.Handler("/players").Query(db, ledger.KeyQueryMod, []byte("nope"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = qr.Handler("/players").Query(db, ledger.PrefixQueryMod, []byte("p"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	res, err = qr.Handler("/players/team").Query(db, ledger.KeyQueryMod, []byte("red"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	_, err = qr.Handler("/players/team").Query(db, ledger.PrefixQueryMod, []byte("r"))
	assert.IsErr(t, errors.ErrInvalidInput, err)

	_, err = b.KeyOf([]byte("x"))
	assert.IsErr(t, errors.ErrInvalidInput, err)
}

func TestNewModelBucketPanics(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("X", &testPlayer{}) })
	assert.Panics(t, func() { NewModelBucket("others", otherModel{}) })
	assert.Panics(t, func() {
		NewModelBucket("players", &testPlayer{},
			WithIndex("team", teamIndex, false),
			WithIndex("team", teamIndex, false))
	})
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("ab"), prefixEnd([]byte("aa")))
	assert.Equal(t, []byte{0x02}, prefixEnd([]byte{0x01, 0xFF}))
	assert.Nil(t, prefixEnd([]byte{0xFF, 0xFF}))
}
