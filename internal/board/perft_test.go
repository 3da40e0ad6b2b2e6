package board

import "testing"

// Node counts from the well-known perft reference positions. They exercise
// castling, en passant, promotions, pins and double checks together.
func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		nodes uint64
	}{
		{"initial d1", StartFEN, 1, 20},
		{"initial d2", StartFEN, 2, 400},
		{"initial d3", StartFEN, 3, 8902},
		{"initial d4", StartFEN, 4, 197281},

		{"kiwipete d1", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 48},
		{"kiwipete d2", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
		{"kiwipete d3", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 97862},

		{"endgame d1", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 1, 14},
		{"endgame d2", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 2, 191},
		{"endgame d3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
		{"endgame d4", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},

		// The en passant capture here is illegal: it would expose the
		// king along the fourth rank.
		{"ep pin d1", "8/8/8/8/k2Pp2Q/8/8/3K4 b - d3 0 1", 1, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := ParseFEN(tt.fen)
			if err != nil {
				t.Fatalf("ParseFEN error: %v", err)
			}
			if got := pos.Perft(tt.depth); got != tt.nodes {
				t.Errorf("Perft(%d) = %d, want %d", tt.depth, got, tt.nodes)
			}
		})
	}
}

func TestPerftDoesNotCorruptPosition(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	pos.Perft(3)

	if got := pos.FEN(); got != StartFEN {
		t.Errorf("position changed after perft:\n got  %s\n want %s", got, StartFEN)
	}
	if pos.Hash != pos.ComputeHash() {
		t.Error("hash out of sync after perft")
	}
}
