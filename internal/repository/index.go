package repository

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// rankIndex maps a natural key (genre, actor or director name) to the set of
// movie ranks carrying it. AddMovie only admits ranks that fit in 32 bits.
type rankIndex struct {
	sets map[string]*roaring.Bitmap
}

func newRankIndex() *rankIndex {
	return &rankIndex{sets: make(map[string]*roaring.Bitmap)}
}

// add records rank under key
func (idx *rankIndex) add(key string, rank int) {
	rb, ok := idx.sets[key]
	if !ok {
		rb = roaring.New()
		idx.sets[key] = rb
	}
	rb.Add(uint32(rank))
}

// ranks returns the ranks stored under key in ascending order
func (idx *rankIndex) ranks(key string) []int {
	rb, ok := idx.sets[key]
	if !ok {
		return []int{}
	}
	out := make([]int, 0, rb.GetCardinality())
	it := rb.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// count returns how many ranks are stored under key
func (idx *rankIndex) count(key string) int {
	rb, ok := idx.sets[key]
	if !ok {
		return 0
	}
	return int(rb.GetCardinality())
}
