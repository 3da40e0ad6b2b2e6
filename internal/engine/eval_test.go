package engine

import (
	"testing"

	"github.com/jane-alesi/js-chess-engine/internal/board"
)

func mustParse(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) error: %v", fen, err)
	}
	return pos
}

func TestEvaluateStartPositionBalanced(t *testing.T) {
	pos := board.NewPosition()
	if got := Evaluate(pos); got != tempoBonus {
		t.Errorf("Evaluate(start) = %d, want tempo bonus %d", got, tempoBonus)
	}
}

func TestEvaluateMoverPerspective(t *testing.T) {
	// Mirrored positions with the move must evaluate identically.
	white := mustParse(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	black := mustParse(t, "4k3/4p3/8/8/8/8/8/4K3 b - - 0 1")

	if got, want := Evaluate(white), Evaluate(black); got != want {
		t.Errorf("mirrored evaluations differ: white %d, black %d", got, want)
	}
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		min  int
		max  int
	}{
		{"extra queen", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", 600, 1200},
		{"extra rook for them", "4k2r/8/8/8/8/8/8/4K3 w - - 0 1", -800, -300},
		{"pawn up", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", 50, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(mustParse(t, tt.fen))
			if got < tt.min || got > tt.max {
				t.Errorf("Evaluate = %d, want within [%d, %d]", got, tt.min, tt.max)
			}
		})
	}
}

func TestEvaluatePure(t *testing.T) {
	pos := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := pos.FEN()

	first := Evaluate(pos)
	second := Evaluate(pos)

	if first != second {
		t.Errorf("repeated evaluation differs: %d then %d", first, second)
	}
	if pos.FEN() != before {
		t.Error("evaluation modified the position")
	}
	if pos.Hash != pos.ComputeHash() {
		t.Error("evaluation corrupted the hash")
	}
}

func TestEvaluateMaterialFloorRatios(t *testing.T) {
	// Material floor: N=B=3P, R=5P, Q=9P.
	if KnightValue != 3*PawnValue || BishopValue != 3*PawnValue {
		t.Errorf("minor values %d/%d, want %d", KnightValue, BishopValue, 3*PawnValue)
	}
	if RookValue != 5*PawnValue {
		t.Errorf("rook value %d, want %d", RookValue, 5*PawnValue)
	}
	if QueenValue != 9*PawnValue {
		t.Errorf("queen value %d, want %d", QueenValue, 9*PawnValue)
	}
}

func TestEvaluateMaterialOnly(t *testing.T) {
	pos := mustParse(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	if got := EvaluateMaterial(pos); got != QueenValue {
		t.Errorf("EvaluateMaterial = %d, want %d", got, QueenValue)
	}

	pos = mustParse(t, "4k3/8/8/8/8/8/8/Q3K3 b - - 0 1")
	if got := EvaluateMaterial(pos); got != -QueenValue {
		t.Errorf("EvaluateMaterial (black to move) = %d, want %d", got, -QueenValue)
	}
}
