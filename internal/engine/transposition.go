package engine

import (
	"github.com/jane-alesi/js-chess-engine/internal/board"
)

// TTFlag classifies what a stored score proves about the true value.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // full-window score
	TTLowerBound               // failed high, true value >= score
	TTUpperBound               // failed low, true value <= score
)

// TTEntry is one transposition table slot. The full hash is kept so index
// collisions never surface stale data.
type TTEntry struct {
	Key      uint64
	BestMove board.Move
	Score    int16
	Depth    int8
	Flag     TTFlag
	Age      uint8
}

// TranspositionTable caches search results keyed by position fingerprint.
// Capacity is fixed at construction; an insert into an occupied slot
// replaces per the age/depth policy rather than growing the table.
type TranspositionTable struct {
	entries []TTEntry
	size    uint64
	mask    uint64
	age     uint8
	used    uint64
}

// NewTranspositionTable allocates a table of the given size in megabytes,
// rounded down to a power of two entries.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const entrySize = 16
	numEntries := uint64(1)
	if sizeMB > 0 {
		numEntries = roundDownToPowerOf2(uint64(sizeMB) * 1024 * 1024 / entrySize)
	}

	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a position by fingerprint.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	entry := tt.entries[hash&tt.mask]
	if entry.Key == hash && entry.Depth > 0 {
		return entry, true
	}
	return TTEntry{}, false
}

// Store saves a search result. An occupied slot is replaced when it came
// from an older search or when the new result is at least as deep.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move) {
	entry := &tt.entries[hash&tt.mask]

	if entry.Age == tt.age && entry.Depth > 0 && depth < int(entry.Depth) {
		return
	}
	if entry.Depth == 0 {
		tt.used++
	}
	*entry = TTEntry{
		Key:      hash,
		BestMove: bestMove,
		Score:    int16(score),
		Depth:    int8(depth),
		Flag:     flag,
		Age:      tt.age,
	}
}

// NewSearch marks the start of a new search so older entries become
// preferred replacement victims.
func (tt *TranspositionTable) NewSearch() {
	tt.age++
}

// Clear empties the table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.age = 0
	tt.used = 0
}

// Used returns the number of occupied slots.
func (tt *TranspositionTable) Used() uint64 {
	return tt.used
}

// Size returns the table capacity in entries.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

// Mate scores are stored relative to the probing node, not the root, so a
// mate found via one path stays correct when reached through a
// transposition at a different ply.

// AdjustScoreToTT converts a root-relative mate score to node-relative form
// for storage.
func AdjustScoreToTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}

// AdjustScoreFromTT converts a stored node-relative mate score back to
// root-relative form.
func AdjustScoreFromTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}
