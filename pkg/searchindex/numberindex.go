package searchindex

import (
	"sort"

	"github.com/0xZaitsev/polaris/pkg/catalog"
)

// NumberFieldIndex maps an integer value to the set of songs having
// exactly that value in a given number field. Only equality is
// evaluated in this revision (spec §4.4, §9) — the sorted slice of
// distinct values exists so a future ordered range-scan (">"/"<"/">="/"<=")
// has somewhere to binary-search without changing this type's shape;
// nothing in this package's own contract reads it yet.
type NumberFieldIndex struct {
	values map[int32]SongKeySet
	sorted []int32 // distinct values, ascending; rebuilt lazily by Sorted()
	dirty  bool
}

// NewNumberFieldIndex returns an empty NumberFieldIndex.
func NewNumberFieldIndex() *NumberFieldIndex {
	return &NumberFieldIndex{values: make(map[int32]SongKeySet)}
}

// Insert adds key to the bucket for value.
func (n *NumberFieldIndex) Insert(value int32, key catalog.SongKey) {
	bucket, ok := n.values[value]
	if !ok {
		bucket = NewSongKeySet(1)
		n.values[value] = bucket
	}
	bucket.Add(key)
	n.dirty = true
}

// FindEqual returns every song with exactly value in this field.
func (n *NumberFieldIndex) FindEqual(value int32) SongKeySet {
	bucket, ok := n.values[value]
	if !ok {
		return NewSongKeySet(0)
	}
	return bucket
}

// Sorted returns the distinct indexed values in ascending order.
func (n *NumberFieldIndex) Sorted() []int32 {
	if n.dirty {
		n.sorted = n.sorted[:0]
		for v := range n.values {
			n.sorted = append(n.sorted, v)
		}
		sort.Slice(n.sorted, func(i, j int) bool { return n.sorted[i] < n.sorted[j] })
		n.dirty = false
	}
	return n.sorted
}
