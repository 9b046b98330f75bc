// Command evalboard-eval evaluates a position from the command line,
// without the board window. Useful for checking engine discovery and
// for move-generation spot checks via -perft.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/evalboard/evalboard/internal/analysis"
	"github.com/evalboard/evalboard/internal/board"
)

var (
	fen       = flag.String("fen", board.StartFEN, "position to evaluate, in FEN")
	engineDir = flag.String("engine-dir", "", "directory searched for the engine executable")
	movetime  = flag.Int("movetime", 50, "analysis budget in milliseconds")
	perftTo   = flag.Int("perft", 0, "run perft up to this depth instead of evaluating")
)

func main() {
	flag.Parse()

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("bad FEN: %v", err)
	}
	if err := pos.Validate(); err != nil {
		log.Fatalf("bad position: %v", err)
	}

	if *perftTo > 0 {
		for depth := 1; depth <= *perftTo; depth++ {
			start := time.Now()
			nodes := perft(pos, depth)
			fmt.Printf("perft(%d) = %d  (%v)\n", depth, nodes, time.Since(start).Round(time.Millisecond))
		}
		return
	}

	bridge := analysis.New(*engineDir)
	defer bridge.Close()
	if !bridge.Available() {
		log.Fatal("no engine available; pass -engine-dir or install stockfish on PATH")
	}

	budget := time.Duration(*movetime) * time.Millisecond
	winrate := bridge.Evaluate(pos.FEN(), budget)
	fmt.Printf("%s\nwin probability (side to move is %v): %.3f\n", pos.FEN(), pos.SideToMove, winrate)
}

func perft(p *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range p.LegalMoves() {
		undo := p.MakeMove(m)
		nodes += perft(p, depth-1)
		p.UnmakeMove(undo)
	}
	return nodes
}
