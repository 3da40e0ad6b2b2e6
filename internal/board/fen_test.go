package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFENStartPosition(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN(StartFEN) error: %v", err)
	}

	if got := pos.Occupied[White].PopCount(); got != 16 {
		t.Errorf("white piece count = %d, want 16", got)
	}
	if got := pos.Occupied[Black].PopCount(); got != 16 {
		t.Errorf("black piece count = %d, want 16", got)
	}
	if pos.SideToMove != White {
		t.Errorf("side to move = %v, want white", pos.SideToMove)
	}
	if pos.CastlingRights != AllCastling {
		t.Errorf("castling rights = %v, want KQkq", pos.CastlingRights)
	}
	if pos.EnPassant != NoSquare {
		t.Errorf("en passant = %v, want none", pos.EnPassant)
	}
	if pos.HalfMoveClock != 0 || pos.FullMoveNumber != 1 {
		t.Errorf("clocks = %d/%d, want 0/1", pos.HalfMoveClock, pos.FullMoveNumber)
	}
	if pos.KingSquare[White] != E1 || pos.KingSquare[Black] != E8 {
		t.Errorf("kings on %v/%v, want e1/e8", pos.KingSquare[White], pos.KingSquare[Black])
	}
	if pos.PieceAt(A1) != WhiteRook || pos.PieceAt(D8) != BlackQueen {
		t.Error("piece placement mismatch")
	}
}

func TestParseFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 7 32",
		"8/8/8/8/8/8/8/K1k5 b - - 99 120",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Errorf("ParseFEN(%q) error: %v", fen, err)
			continue
		}
		if got := pos.FEN(); got != fen {
			t.Errorf("round trip mismatch:\n in  %s\n out %s", fen, got)
		}
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want error
	}{
		{"empty", "", ErrFENFormat},
		{"three fields", "8/8/8/8/8/8/8/8 w -", ErrFENFormat},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1", ErrFENBoard},
		{"bad piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1", ErrFENBoard},
		{"short rank", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPP/RNBQKBNR w KQkq - 0 1", ErrFENBoard},
		{"overfull rank", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrFENBoard},
		{"bad side", "8/8/8/8/8/8/8/8 x - - 0 1", ErrFENSide},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1", ErrFENCastling},
		{"bad en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1", ErrFENEnPassant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := ParseFEN(tt.fen)
			if pos != nil {
				t.Error("got position on malformed input")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseFENLenientClocks(t *testing.T) {
	// Missing or garbage clock fields fall back to 0 and 1.
	tests := []struct {
		fen          string
		wantHalf     int
		wantFullMove int
	}{
		{"8/8/8/8/8/8/8/K1k5 w - -", 0, 1},
		{"8/8/8/8/8/8/8/K1k5 w - - x y", 0, 1},
		{"8/8/8/8/8/8/8/K1k5 w - - 12", 12, 1},
		{"8/8/8/8/8/8/8/K1k5 w - - 12 34", 12, 34},
	}

	for _, tt := range tests {
		pos, err := ParseFEN(tt.fen)
		if err != nil {
			t.Errorf("ParseFEN(%q) error: %v", tt.fen, err)
			continue
		}
		if pos.HalfMoveClock != tt.wantHalf || pos.FullMoveNumber != tt.wantFullMove {
			t.Errorf("ParseFEN(%q) clocks = %d/%d, want %d/%d",
				tt.fen, pos.HalfMoveClock, pos.FullMoveNumber, tt.wantHalf, tt.wantFullMove)
		}
	}
}

func TestParseFENHashMatchesRecompute(t *testing.T) {
	fens := []string{
		StartFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q) error: %v", fen, err)
		}
		if pos.Hash != pos.ComputeHash() {
			t.Errorf("stored hash differs from recomputed hash for %q", fen)
		}
	}
}

func TestHashDistinguishesNonPlacementState(t *testing.T) {
	// Same placement, different side/rights/en-passant must not collide.
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e3 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b Qkq e3 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1",
	}

	seen := make(map[uint64]string)
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q) error: %v", fen, err)
		}
		if prev, ok := seen[pos.Hash]; ok {
			t.Errorf("hash collision between %q and %q", prev, fen)
		}
		seen[pos.Hash] = fen
	}
}

func TestFENIgnoresDecodedClockNoise(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/8/8/8/K1k5  w  -  -  5  9")
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	want := "8/8/8/8/8/8/8/K1k5 w - - 5 9"
	if diff := cmp.Diff(want, pos.FEN()); diff != "" {
		t.Errorf("FEN mismatch (-want +got):\n%s", diff)
	}
}
