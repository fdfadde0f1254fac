package store

import (
	"bytes"

	"github.com/google/btree"
)

// collectRange returns all cached items within [start, end) in ascending
// order. A nil bound is open.
func collectRange(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	add := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(add)
	case start == nil:
		bt.AscendLessThan(bkey{end}, add)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, add)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, add)
	}
	return items
}

type source int32

const (
	us source = iota
	parent
	both
	none
)

// cacheIter merges a snapshot of the cache with the parent iterator. Cached
// values win over the parent, deleted items hide the parent's entry.
type cacheIter struct {
	items     []btree.Item
	idx       int
	parent    Iterator
	ascending bool
}

var _ Iterator = (*cacheIter)(nil)

func newCacheIter(items []btree.Item, parent Iterator, ascending bool) (*cacheIter, error) {
	iter := &cacheIter{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
	if err := iter.skipAllDeleted(); err != nil {
		iter.Close()
		return nil, err
	}
	return iter, nil
}

// Valid returns true while there is an item left on either side.
func (i *cacheIter) Valid() bool {
	return i.firstKey() != none
}

// Next moves the cursor forward.
func (i *cacheIter) Next() error {
	switch i.firstKey() {
	case us:
		i.idx++
	case both:
		i.idx++
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		panic("Advanced past the end!")
	}
	return i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *cacheIter) Key() []byte {
	switch i.firstKey() {
	case us, both:
		return i.cached().Key()
	case parent:
		return i.parent.Key()
	default:
		panic("Advanced past the end!")
	}
}

// Value returns the value of the cursor.
func (i *cacheIter) Value() []byte {
	switch i.firstKey() {
	case us, both:
		return i.cached().(setItem).value
	case parent:
		return i.parent.Value()
	default:
		panic("Advanced past the end!")
	}
}

// Close releases the parent iterator.
func (i *cacheIter) Close() {
	i.items = nil
	i.parent.Close()
}

func (i *cacheIter) cached() keyer {
	return i.items[i.idx].(keyer)
}

func (i *cacheIter) skipAllDeleted() error {
	for {
		src := i.firstKey()
		if src != us && src != both {
			return nil
		}
		if _, ok := i.cached().(deletedItem); !ok {
			return nil
		}
		i.idx++
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// firstKey tells which side holds the next key in iteration order.
func (i *cacheIter) firstKey() source {
	usValid := i.idx < len(i.items)
	parValid := i.parent != nil && i.parent.Valid()
	switch {
	case !usValid && !parValid:
		return none
	case !parValid:
		return us
	case !usValid:
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.cached().Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}
