package engine

import (
	"testing"

	"github.com/jane-alesi/js-chess-engine/internal/board"
)

func TestTranspositionTableStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1)

	hash := uint64(0xDEADBEEFCAFE1234)
	move := board.NewMove(board.E2, board.E4)
	tt.Store(hash, 5, 42, TTExact, move)

	entry, ok := tt.Probe(hash)
	if !ok {
		t.Fatal("stored entry not found")
	}
	if entry.Key != hash || entry.Score != 42 || entry.Depth != 5 || entry.Flag != TTExact || entry.BestMove != move {
		t.Errorf("entry = %+v", entry)
	}

	if _, ok := tt.Probe(hash ^ 1); ok {
		t.Error("probe hit for unknown fingerprint")
	}
}

func TestTranspositionTableMinimumSize(t *testing.T) {
	// Non-positive sizes still yield a usable single-slot table.
	for _, sizeMB := range []int{0, -1} {
		tt := NewTranspositionTable(sizeMB)
		if tt.Size() != 1 {
			t.Errorf("NewTranspositionTable(%d) size = %d, want 1", sizeMB, tt.Size())
		}

		tt.Store(42, 3, 7, TTExact, board.NoMove)
		entry, ok := tt.Probe(42)
		if !ok || entry.Score != 7 {
			t.Errorf("NewTranspositionTable(%d) lost its entry: %+v ok=%v", sizeMB, entry, ok)
		}
	}
}

func TestTranspositionTableKeyVerification(t *testing.T) {
	tt := NewTranspositionTable(1)

	// Two hashes landing in the same slot: only the stored one may answer.
	h1 := uint64(100)
	h2 := h1 + tt.Size()
	tt.Store(h1, 3, 10, TTExact, board.NoMove)

	if _, ok := tt.Probe(h2); ok {
		t.Error("index collision served wrong position")
	}
}

func TestTranspositionTableBoundedReplacement(t *testing.T) {
	tt := NewTranspositionTable(1)
	size := tt.Size()

	// Overfill by a wide margin; capacity must not grow.
	for i := uint64(0); i < size*2; i++ {
		tt.Store(i, 1, int(i%100), TTExact, board.NoMove)
	}
	if tt.Used() > size {
		t.Errorf("used %d exceeds capacity %d", tt.Used(), size)
	}
	if tt.Size() != size {
		t.Errorf("capacity changed from %d to %d", size, tt.Size())
	}
}

func TestTranspositionTableDepthPreferred(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(7)

	tt.Store(hash, 8, 50, TTExact, board.NoMove)
	tt.Store(hash, 3, 99, TTExact, board.NoMove)

	entry, ok := tt.Probe(hash)
	if !ok {
		t.Fatal("entry lost")
	}
	if entry.Depth != 8 || entry.Score != 50 {
		t.Errorf("shallow result replaced deeper one: %+v", entry)
	}

	// After a new search generation the shallow store wins the slot.
	tt.NewSearch()
	tt.Store(hash, 3, 99, TTExact, board.NoMove)
	entry, _ = tt.Probe(hash)
	if entry.Depth != 3 {
		t.Errorf("stale entry survived new search: %+v", entry)
	}
}

func TestTranspositionTableClear(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(1, 4, 10, TTLowerBound, board.NoMove)
	tt.Store(2, 4, 20, TTUpperBound, board.NoMove)

	tt.Clear()
	if tt.Used() != 0 {
		t.Errorf("used = %d after clear", tt.Used())
	}
	if _, ok := tt.Probe(1); ok {
		t.Error("entry survived clear")
	}
}

func TestMateScoreAdjustment(t *testing.T) {
	// A mate score stored at ply 4 and probed at ply 2 must still describe
	// the same mate distance from the probing node.
	rootScore := MateScore - 7
	stored := AdjustScoreToTT(rootScore, 4)
	back := AdjustScoreFromTT(stored, 4)
	if back != rootScore {
		t.Errorf("round trip = %d, want %d", back, rootScore)
	}

	// Node-relative form is ply independent.
	if AdjustScoreToTT(MateScore-7, 4) != MateScore-3 {
		t.Errorf("to-TT adjustment wrong: %d", AdjustScoreToTT(MateScore-7, 4))
	}

	// Ordinary scores pass through untouched.
	if AdjustScoreToTT(120, 9) != 120 || AdjustScoreFromTT(-45, 9) != -45 {
		t.Error("non-mate scores were adjusted")
	}

	// Negative mates adjust symmetrically.
	if AdjustScoreFromTT(AdjustScoreToTT(-(MateScore-5), 3), 3) != -(MateScore - 5) {
		t.Error("negative mate round trip failed")
	}
}
