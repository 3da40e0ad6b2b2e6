package engine

import (
	"time"

	"github.com/jane-alesi/js-chess-engine/internal/board"
)

// Score bounds. Mate scores are MateScore minus the ply distance, so a
// faster mate always scores higher and no mate score collides with a
// static evaluation.
const (
	Infinity  = 30000
	MateScore = 29000
	DrawScore = 0
	MaxPly    = 64
)

// Deadline is sampled every deadlineMask+1 nodes rather than per node.
const deadlineMask = 1023

// SearchResult is the outcome of one analysis run.
type SearchResult struct {
	BestMove board.Move
	Score    int
	Depth    int
	Nodes    uint64
	PV       []board.Move
	Elapsed  time.Duration
}

// Searcher runs iterative-deepening negamax with alpha-beta pruning over a
// single position. It owns no position of its own; Search copies the one it
// is given.
type Searcher struct {
	tt      *TranspositionTable
	orderer *MoveOrderer

	pos      *board.Position
	nodes    uint64
	deadline time.Time
	timed    bool
	stopped  bool

	// Triangular PV table, one extra row so the deepest ply stays in range.
	pvTable  [MaxPly + 1][MaxPly + 1]board.Move
	pvLength [MaxPly + 1]int

	// Hashes along the current line, rooted at the search position, for
	// twofold repetition detection.
	pathHashes [MaxPly + 1]uint64
}

// NewSearcher creates a searcher sharing the given transposition table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: NewMoveOrderer(),
	}
}

// Search analyzes the position to maxDepth plies, stopping early when
// moveTime elapses (zero means no time limit). Depth 1 always completes so
// a best move is available even under the tightest budget. The position is
// copied and never modified.
func (s *Searcher) Search(pos *board.Position, maxDepth int, moveTime time.Duration) SearchResult {
	start := time.Now()

	s.pos = pos.Copy()
	s.nodes = 0
	s.stopped = false
	s.timed = moveTime > 0
	if s.timed {
		s.deadline = start.Add(moveTime)
	}

	if maxDepth < 1 {
		maxDepth = 1
	}
	if maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	s.tt.NewSearch()
	s.orderer.Clear()

	result := SearchResult{BestMove: board.NoMove, Score: -Infinity}

	for depth := 1; depth <= maxDepth; depth++ {
		score := s.negamax(depth, 0, -Infinity, Infinity)

		// A depth interrupted mid-iteration is untrustworthy; keep the
		// previous one. Depth 1 is always kept so we have a move.
		if s.stopped && depth > 1 {
			break
		}

		result.Score = score
		result.Depth = depth
		result.BestMove = s.pvTable[0][0]
		result.PV = make([]board.Move, s.pvLength[0])
		copy(result.PV, s.pvTable[0][:s.pvLength[0]])

		if s.stopped {
			break
		}
		// A forced mate this shallow cannot improve with more depth.
		if score > MateScore-MaxPly || score < -MateScore+MaxPly {
			break
		}
	}

	result.Nodes = s.nodes
	result.Elapsed = time.Since(start)
	return result
}

func (s *Searcher) negamax(depth, ply, alpha, beta int) int {
	s.nodes++
	if s.timed && s.nodes&deadlineMask == 0 && time.Now().After(s.deadline) {
		s.stopped = true
	}
	if s.stopped {
		return 0
	}

	s.pvLength[ply] = ply
	s.pathHashes[ply] = s.pos.Hash

	if ply > 0 {
		if s.pos.HalfMoveClock >= 100 || s.isRepetition(ply) || s.pos.IsInsufficientMaterial() {
			return DrawScore
		}
		if ply >= MaxPly {
			return Evaluate(s.pos)
		}
	}

	ttMove := board.NoMove
	if entry, ok := s.tt.Probe(s.pos.Hash); ok {
		ttMove = entry.BestMove
		if ply > 0 && int(entry.Depth) >= depth {
			score := AdjustScoreFromTT(int(entry.Score), ply)
			switch entry.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score >= beta {
					return score
				}
			case TTUpperBound:
				if score <= alpha {
					return score
				}
			}
		}
	}

	if depth <= 0 {
		return Evaluate(s.pos)
	}

	moves := s.pos.LegalMoves()
	if moves.Len() == 0 {
		if s.pos.InCheck() {
			return -(MateScore - ply)
		}
		return DrawScore
	}

	scores := s.orderer.ScoreMoves(s.pos, moves, ply, ttMove)

	bestScore := -Infinity
	bestMove := board.NoMove
	flag := TTUpperBound

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		m := moves.Get(i)
		isQuiet := !m.IsCapture(s.pos) && !m.IsPromotion()

		undo := s.pos.MakeMove(m)
		score := -s.negamax(depth-1, ply+1, -beta, -alpha)
		s.pos.UnmakeMove(m, undo)

		if s.stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m

			if score > alpha {
				alpha = score
				flag = TTExact

				s.pvTable[ply][ply] = m
				for next := ply + 1; next < s.pvLength[ply+1]; next++ {
					s.pvTable[ply][next] = s.pvTable[ply+1][next]
				}
				s.pvLength[ply] = s.pvLength[ply+1]

				if alpha >= beta {
					if isQuiet {
						s.orderer.UpdateKillers(m, ply)
						s.orderer.UpdateHistory(m, depth)
					}
					flag = TTLowerBound
					break
				}
			}
		}
	}

	s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(bestScore, ply), flag, bestMove)
	return bestScore
}

// isRepetition reports whether the current position already occurred on the
// path from the search root. Only plies since the last irreversible move
// can repeat.
func (s *Searcher) isRepetition(ply int) bool {
	limit := ply - s.pos.HalfMoveClock
	if limit < 0 {
		limit = 0
	}
	for prev := ply - 2; prev >= limit; prev -= 2 {
		if s.pathHashes[prev] == s.pos.Hash {
			return true
		}
	}
	return false
}
