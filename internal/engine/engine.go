package engine

import (
	"fmt"
	"time"

	"github.com/jane-alesi/js-chess-engine/internal/board"
)

// DefaultHashSizeMB is the transposition table size used when the caller
// does not specify one.
const DefaultHashSizeMB = 64

// AnalysisResult is what Analyze reports: the best move and principal
// variation in long algebraic notation, the score in centipawns from the
// side to move's perspective (mate scores encoded near MateScore), and the
// work done.
type AnalysisResult struct {
	BestMove string
	Score    int
	Depth    int
	PV       []string
	Nodes    uint64
	Elapsed  time.Duration
}

// IsMateScore reports whether the result's score encodes a forced mate.
func (r AnalysisResult) IsMateScore() bool {
	return r.Score > MateScore-MaxPly || r.Score < -MateScore+MaxPly
}

// MateIn returns the number of moves to mate, negative when the side to
// move is being mated. Only meaningful when IsMateScore reports true.
func (r AnalysisResult) MateIn() int {
	if r.Score > 0 {
		return (MateScore - r.Score + 1) / 2
	}
	return -(MateScore + r.Score + 1) / 2
}

// Stats is a snapshot of the engine's session counters.
type Stats struct {
	NodesSearched        uint64 `json:"nodes_searched"`
	TranspositionEntries uint64 `json:"cache_size"`
	SideToMove           string `json:"side_to_move"`
}

// Engine ties a current position to a searcher and its transposition
// table. The table persists across Analyze calls so repeated analysis of
// related positions reuses earlier work; LoadPosition does not clear it.
type Engine struct {
	pos      *board.Position
	tt       *TranspositionTable
	searcher *Searcher

	nodesSearched uint64
}

// NewEngine creates an engine at the standard initial position.
func NewEngine() *Engine {
	return NewEngineWithHashSize(DefaultHashSizeMB)
}

// NewEngineWithHashSize creates an engine with the given transposition
// table size in megabytes.
func NewEngineWithHashSize(hashMB int) *Engine {
	tt := NewTranspositionTable(hashMB)
	return &Engine{
		pos:      board.NewPosition(),
		tt:       tt,
		searcher: NewSearcher(tt),
	}
}

// LoadPosition replaces the current position with the one described by
// fen. On error the current position is unchanged.
func (e *Engine) LoadPosition(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	e.pos = pos
	return nil
}

// CurrentPosition returns the current position as a FEN record.
func (e *Engine) CurrentPosition() string {
	return e.pos.FEN()
}

// Position returns the current position for direct inspection.
func (e *Engine) Position() *board.Position {
	return e.pos
}

// LegalMoves returns every legal move in long algebraic notation, in the
// generator's stable order. Empty on checkmate and stalemate; InCheck
// distinguishes the two.
func (e *Engine) LegalMoves() []string {
	ml := e.pos.LegalMoves()
	moves := make([]string, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		moves[i] = ml.Get(i).String()
	}
	return moves
}

// InCheck reports whether the side to move is in check.
func (e *Engine) InCheck() bool {
	return e.pos.InCheck()
}

// MakeMove applies a move given in long algebraic notation, rejecting
// anything not currently legal.
func (e *Engine) MakeMove(moveStr string) error {
	m, err := board.ParseMove(moveStr, e.pos)
	if err != nil {
		return err
	}
	if !e.pos.LegalMoves().Contains(m) {
		return fmt.Errorf("illegal move %q", moveStr)
	}
	e.pos.MakeMove(m)
	return nil
}

// Analyze searches the current position to depth plies, stopping early
// when moveTime elapses (zero means unlimited). The current position is
// not modified.
func (e *Engine) Analyze(depth int, moveTime time.Duration) AnalysisResult {
	res := e.searcher.Search(e.pos, depth, moveTime)
	e.nodesSearched += res.Nodes

	pv := make([]string, len(res.PV))
	for i, m := range res.PV {
		pv[i] = m.String()
	}

	return AnalysisResult{
		BestMove: res.BestMove.String(),
		Score:    res.Score,
		Depth:    res.Depth,
		PV:       pv,
		Nodes:    res.Nodes,
		Elapsed:  res.Elapsed,
	}
}

// Stats returns the session counters: total nodes searched across Analyze
// calls, occupied transposition entries, and whose turn it is.
func (e *Engine) Stats() Stats {
	return Stats{
		NodesSearched:        e.nodesSearched,
		TranspositionEntries: e.tt.Used(),
		SideToMove:           e.pos.SideToMove.String(),
	}
}

// ClearCache empties the transposition table and resets the node counter.
func (e *Engine) ClearCache() {
	e.tt.Clear()
	e.nodesSearched = 0
}

// Perft counts move-tree leaves from the current position; a correctness
// check for the move generator.
func (e *Engine) Perft(depth int) uint64 {
	return e.pos.Copy().Perft(depth)
}
