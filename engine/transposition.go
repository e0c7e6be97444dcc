package engine

import (
	"hash/maphash"

	"github.com/daystram/brainrot/board"
)

type EntryType uint8

const (
	DefaultHashTableSize = 1 << 16 // number of entries

	EntryTypeUnknown EntryType = iota
	EntryTypeExact
	EntryTypeLowerBound
	EntryTypeUpperBound
)

// TranspositionTable caches search results keyed by the encoded position and the
// side to move. Colliding slots are overwritten by deeper results.
type TranspositionTable struct {
	table    []*entry
	size     uint64
	maskHash uint64
	seed     maphash.Seed

	// stats
	hits   int
	misses int
	writes int
}

type entry struct {
	typ   EntryType
	mv    board.Move
	score int32
	depth uint8
	hash  uint64
}

// NewTranspositionTable allocates a table; size is rounded down to a power of two.
func NewTranspositionTable(size uint64) *TranspositionTable {
	if size == 0 {
		size = DefaultHashTableSize
	}
	for size&(size-1) != 0 {
		size &= size - 1
	}
	return &TranspositionTable{
		table:    make([]*entry, size),
		size:     size,
		maskHash: size - 1,
		seed:     maphash.MakeSeed(),
	}
}

func (t *TranspositionTable) hash(b *board.Board, s board.Side) uint64 {
	return maphash.String(t.seed, board.Encode(b)+" "+s.String())
}

func (t *TranspositionTable) Set(typ EntryType, b *board.Board, s board.Side, mv board.Move, score int32, depth uint8) {
	hash := t.hash(b, s)
	index := hash & t.maskHash
	e := t.table[index]
	if e == nil || e.hash != hash || e.depth <= depth {
		t.writes++
		t.table[index] = &entry{
			typ:   typ,
			mv:    mv,
			score: score,
			depth: depth,
			hash:  hash,
		}
	}
}

func (t *TranspositionTable) Get(b *board.Board, s board.Side) (EntryType, board.Move, int32, uint8, bool) {
	hash := t.hash(b, s)
	e := t.table[hash&t.maskHash]
	if e == nil || e.hash != hash {
		t.misses++
		return EntryTypeUnknown, board.Move{}, 0, 0, false
	}
	t.hits++
	return e.typ, e.mv, e.score, e.depth, true
}

func (t *TranspositionTable) ResetStats() {
	t.hits = 0
	t.misses = 0
	t.writes = 0
}

func (t *TranspositionTable) Stats() (int, int, int) {
	return t.hits, t.misses, t.writes
}
