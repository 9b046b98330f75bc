package analysis

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestWinProbability(t *testing.T) {
	cases := []struct {
		cp   int
		want float64
	}{
		{0, 0.5},
		{300, 1.0},
		{-300, 0.0},
		{600, 1.0},
		{-600, 0.0},
		{150, 0.75},
		{-150, 0.25},
	}
	for _, tc := range cases {
		if got := winProbability(tc.cp); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("winProbability(%d) = %v, want %v", tc.cp, got, tc.want)
		}
	}
}

func TestScoreFromInfo(t *testing.T) {
	cases := []struct {
		line   string
		want   float64
		wantOK bool
	}{
		{"info depth 12 seldepth 18 score cp 35 nodes 100 pv e2e4", (35.0 + 300) / 600, true},
		{"info depth 20 score mate 3 pv h5f7", 1.0, true},
		{"info depth 20 score mate -2 pv g8h8", 0.0, true},
		{"info depth 5 nodes 77 nps 1000", 0, false},
		{"info score cp banana", 0, false},
		{"info score lowerbound 10", 0, false},
	}
	for _, tc := range cases {
		got, ok := scoreFromInfo(strings.Fields(tc.line))
		if ok != tc.wantOK {
			t.Errorf("scoreFromInfo(%q) ok = %v, want %v", tc.line, ok, tc.wantOK)
			continue
		}
		if ok && math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("scoreFromInfo(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

// newTestBridge runs a scripted engine over in-process pipes. respond
// is invoked for every "go" command with the engine's output stream;
// the returned counter tracks how many searches were requested.
func newTestBridge(t *testing.T, respond func(w io.Writer)) (*Bridge, *int32) {
	t.Helper()

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	var searches int32

	go func() {
		defer outW.Close()
		sc := bufio.NewScanner(inR)
		for sc.Scan() {
			line := sc.Text()
			switch {
			case line == "uci":
				fmt.Fprintln(outW, "id name scripted")
				fmt.Fprintln(outW, "uciok")
			case line == "isready":
				fmt.Fprintln(outW, "readyok")
			case strings.HasPrefix(line, "go"):
				atomic.AddInt32(&searches, 1)
				respond(outW)
			case line == "quit":
				return
			}
		}
	}()

	b := newBridge(inW, outR)
	if err := b.handshake(); err != nil {
		t.Fatalf("handshake: %v", err)
	}
	t.Cleanup(b.Close)
	return b, &searches
}

func TestEvaluateCachesByPosition(t *testing.T) {
	b, searches := newTestBridge(t, func(w io.Writer) {
		fmt.Fprintln(w, "info depth 10 seldepth 12 score cp 42 nodes 1000 pv e2e4")
		fmt.Fprintln(w, "bestmove e2e4")
	})

	const (
		startID = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
		nextID  = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	)

	want := (42.0 + 300) / 600
	if got := b.Evaluate(startID, 50*time.Millisecond); math.Abs(got-want) > 1e-9 {
		t.Errorf("Evaluate = %v, want %v", got, want)
	}
	if got := b.Evaluate(startID, 50*time.Millisecond); math.Abs(got-want) > 1e-9 {
		t.Errorf("cached Evaluate = %v, want %v", got, want)
	}
	if n := atomic.LoadInt32(searches); n != 1 {
		t.Errorf("unchanged position triggered %d searches, want 1", n)
	}

	b.Evaluate(nextID, 50*time.Millisecond)
	if n := atomic.LoadInt32(searches); n != 2 {
		t.Errorf("new position triggered %d total searches, want 2", n)
	}
}

func TestEvaluateMateScores(t *testing.T) {
	winning, _ := newTestBridge(t, func(w io.Writer) {
		fmt.Fprintln(w, "info depth 20 score mate 2 pv h5f7")
		fmt.Fprintln(w, "bestmove h5f7")
	})
	if got := winning.Evaluate("id-a", 50*time.Millisecond); got != 1.0 {
		t.Errorf("mate for side to move = %v, want 1.0", got)
	}

	losing, _ := newTestBridge(t, func(w io.Writer) {
		fmt.Fprintln(w, "info depth 20 score mate -3 pv g8h8")
		fmt.Fprintln(w, "bestmove g8h8")
	})
	if got := losing.Evaluate("id-b", 50*time.Millisecond); got != 0.0 {
		t.Errorf("mate against side to move = %v, want 0.0", got)
	}
}

func TestEvaluateMalformedOutputFallsBack(t *testing.T) {
	b, searches := newTestBridge(t, func(w io.Writer) {
		fmt.Fprintln(w, "bestmove e2e4")
	})

	if got := b.Evaluate("id-c", 50*time.Millisecond); got != 0.5 {
		t.Errorf("Evaluate without a score = %v, want neutral 0.5", got)
	}
	// The failure is cached too, so the same position is not retried.
	if got := b.Evaluate("id-c", 50*time.Millisecond); got != 0.5 {
		t.Errorf("cached failure = %v, want 0.5", got)
	}
	if n := atomic.LoadInt32(searches); n != 1 {
		t.Errorf("failing position triggered %d searches, want 1", n)
	}
}

func TestEvaluateWithoutEngine(t *testing.T) {
	if _, err := FindEngine(); err == nil {
		t.Skip("an engine is installed on PATH")
	}
	b := New(t.TempDir())
	if b.Available() {
		t.Fatal("bridge should be disabled without an engine")
	}
	if got := b.Evaluate("id-d", 50*time.Millisecond); got != 0.5 {
		t.Errorf("disabled Evaluate = %v, want 0.5", got)
	}
	b.Close()
}

func TestFindEngine(t *testing.T) {
	if _, err := FindEngine(t.TempDir()); err == nil {
		t.Skip("an engine is installed on PATH")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "stockfish.exe")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := FindEngine(t.TempDir(), dir)
	if err != nil {
		t.Fatalf("FindEngine: %v", err)
	}
	if got != path {
		t.Errorf("FindEngine = %q, want %q", got, path)
	}
}
