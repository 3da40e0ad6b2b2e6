// Command chesscore analyzes a chess position from the command line.
//
// Usage:
//
//	chesscore -fen "r1bqkbnr/..." -depth 8 -movetime 5s
//	chesscore -moves            # print legal moves for the position
//	chesscore -perft 5          # count move-tree leaves
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jane-alesi/js-chess-engine/internal/board"
	"github.com/jane-alesi/js-chess-engine/internal/engine"
	"github.com/jane-alesi/js-chess-engine/internal/storage"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "position to analyze, as a FEN record")
	depth := flag.Int("depth", 0, "maximum search depth in plies (0 = stored default)")
	moveTime := flag.Duration("movetime", 0, "time budget for the search (0 = stored default)")
	hashMB := flag.Int("hash", 0, "transposition table size in MB (0 = stored default)")
	showMoves := flag.Bool("moves", false, "print the legal moves and exit")
	perftDepth := flag.Int("perft", 0, "run a perft count to this depth and exit")
	noStore := flag.Bool("nostore", false, "skip loading and recording persistent options/stats")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("chesscore: ")

	var store *storage.Storage
	opts := storage.DefaultOptions()
	if !*noStore {
		var err error
		store, err = storage.NewStorage()
		if err != nil {
			log.Printf("storage unavailable: %v", err)
		} else {
			defer store.Close()
			if loaded, err := store.LoadOptions(); err == nil {
				opts = loaded
			}
		}
	}
	if *depth > 0 {
		opts.SearchDepth = *depth
	}
	if *moveTime > 0 {
		opts.MoveTime = *moveTime
	}
	if *hashMB > 0 {
		opts.HashSizeMB = *hashMB
	}

	eng := engine.NewEngineWithHashSize(opts.HashSizeMB)
	if err := eng.LoadPosition(*fen); err != nil {
		log.Fatalf("load position: %v", err)
	}

	if *showMoves {
		moves := eng.LegalMoves()
		if len(moves) == 0 {
			if eng.InCheck() {
				fmt.Println("checkmate")
			} else {
				fmt.Println("stalemate")
			}
			return
		}
		fmt.Println(strings.Join(moves, " "))
		return
	}

	if *perftDepth > 0 {
		start := time.Now()
		nodes := eng.Perft(*perftDepth)
		fmt.Printf("perft(%d) = %d (%v)\n", *perftDepth, nodes, time.Since(start).Round(time.Millisecond))
		return
	}

	res := eng.Analyze(opts.SearchDepth, opts.MoveTime)

	fmt.Printf("position  %s\n", eng.CurrentPosition())
	fmt.Printf("bestmove  %s\n", res.BestMove)
	if res.IsMateScore() {
		fmt.Printf("score     mate %d\n", res.MateIn())
	} else {
		fmt.Printf("score     cp %d\n", res.Score)
	}
	fmt.Printf("depth     %d\n", res.Depth)
	fmt.Printf("pv        %s\n", strings.Join(res.PV, " "))
	fmt.Printf("nodes     %d (%v)\n", res.Nodes, res.Elapsed.Round(time.Millisecond))

	stats := eng.Stats()
	fmt.Printf("tt        %d entries, %s to move\n", stats.TranspositionEntries, stats.SideToMove)

	if store != nil {
		rec := storage.AnalyzeRecord{
			Depth:   res.Depth,
			Nodes:   res.Nodes,
			Elapsed: res.Elapsed,
			Mate:    res.IsMateScore(),
		}
		if err := store.RecordAnalysis(rec); err != nil {
			log.Printf("record analysis: %v", err)
		}
		if err := store.SaveOptions(opts); err != nil {
			log.Printf("save options: %v", err)
		}
	}
}
