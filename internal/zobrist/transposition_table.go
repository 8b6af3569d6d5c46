package zobrist

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// CachedCount is a perft subtree size keyed by position hash and depth.
type CachedCount struct {
	Depth       int
	Count       uint64
	ZobristHash uint64
}

// TranspositionTable is a fixed-size, always-replace cache. It is not safe
// for concurrent use; give each worker its own table.
type TranspositionTable struct {
	Size        int
	Cache       []CachedCount
	Hits        int
	Collisions  int
	DepthTooLow int
	Misses      int
}

var DefaultTranspositionTableSize = 1 << 20

func NewTranspositionTable(size int) *TranspositionTable {
	return &TranspositionTable{
		Size:  size,
		Cache: make([]CachedCount, size),
	}
}

func (t *TranspositionTable) Stats() string {
	return fmt.Sprintf("hits: %v, collisions: %v, depth mismatch: %v, misses: %v",
		humanize.Comma(int64(t.Hits)),
		humanize.Comma(int64(t.Collisions)),
		humanize.Comma(int64(t.DepthTooLow)),
		humanize.Comma(int64(t.Misses)))
}

// Get only returns counts for exactly this depth; a leaf count at another
// depth is a different number.
func (t *TranspositionTable) Get(hash uint64, depth int) (CachedCount, bool) {
	i := hash % uint64(t.Size)
	v := t.Cache[i]
	if v.ZobristHash == hash && v.Depth != 0 {
		if v.Depth == depth {
			t.Hits++
			return v, true
		}
		t.DepthTooLow++
	} else if v.ZobristHash != 0 {
		t.Collisions++
	} else {
		t.Misses++
	}
	return CachedCount{}, false
}

func (t *TranspositionTable) Put(hash uint64, depth int, count uint64) {
	i := hash % uint64(t.Size)
	t.Cache[i] = CachedCount{
		Depth:       depth,
		Count:       count,
		ZobristHash: hash,
	}
}
