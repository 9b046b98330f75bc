package game

import (
	"errors"
	"testing"

	"github.com/evalboard/evalboard/internal/board"
)

func mustMove(t *testing.T, s string) board.Move {
	t.Helper()
	m, err := board.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", s, err)
	}
	return m
}

func TestSessionOpeningMoves(t *testing.T) {
	s := NewSession()

	if got := len(s.LegalMoves()); got != 20 {
		t.Fatalf("starting position has %d legal moves, want 20", got)
	}

	if err := s.Apply(mustMove(t, "e2e4")); err != nil {
		t.Fatalf("e2e4 should be legal: %v", err)
	}
	if s.SideToMove() != board.Black {
		t.Error("turn should pass to black after e2e4")
	}
	if err := s.Apply(mustMove(t, "e7e5")); err != nil {
		t.Fatalf("e7e5 should be legal: %v", err)
	}
	if s.MoveCount() != 2 {
		t.Errorf("history holds %d moves, want 2", s.MoveCount())
	}
}

func TestSessionRejectsIllegalMove(t *testing.T) {
	s := NewSession()
	before := s.PositionID()

	cases := []string{
		"e2e5", // pawn cannot triple-step
		"e7e5", // not white's piece
		"e1e2", // own pawn in the way
		"b1b3", // knight moving like a rook
	}
	for _, ms := range cases {
		err := s.Apply(mustMove(t, ms))
		if !errors.Is(err, ErrIllegalMove) {
			t.Errorf("Apply(%s) = %v, want ErrIllegalMove", ms, err)
		}
	}

	if got := s.PositionID(); got != before {
		t.Errorf("position changed after rejected moves:\n got %q\nwant %q", got, before)
	}
	if s.MoveCount() != 0 {
		t.Error("history should stay empty after rejected moves")
	}
}

// The end-to-end undo scenario: e2e4, e7e5, undo twice back to the
// start, and a third undo fails without touching state.
func TestSessionUndoScenario(t *testing.T) {
	s := NewSession()
	start := s.PositionID()

	if err := s.Apply(mustMove(t, "e2e4")); err != nil {
		t.Fatal(err)
	}
	afterE4 := s.PositionID()
	if err := s.Apply(mustMove(t, "e7e5")); err != nil {
		t.Fatal(err)
	}

	if err := s.Undo(); err != nil {
		t.Fatalf("first undo: %v", err)
	}
	if got := s.PositionID(); got != afterE4 {
		t.Errorf("after one undo:\n got %q\nwant %q", got, afterE4)
	}

	if err := s.Undo(); err != nil {
		t.Fatalf("second undo: %v", err)
	}
	if got := s.PositionID(); got != start {
		t.Errorf("after two undos:\n got %q\nwant %q", got, start)
	}

	err := s.Undo()
	if !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("third undo = %v, want ErrEmptyHistory", err)
	}
	if got := s.PositionID(); got != start {
		t.Error("failed undo must leave state unchanged")
	}
}

func TestSessionUndoRestoresCapture(t *testing.T) {
	s, err := NewSessionFEN("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	if err != nil {
		t.Fatal(err)
	}
	before := s.PositionID()

	if err := s.Apply(mustMove(t, "e4d5")); err != nil {
		t.Fatalf("exd5 should be legal: %v", err)
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := s.PositionID(); got != before {
		t.Errorf("capture undo:\n got %q\nwant %q", got, before)
	}
	if got := s.PieceAt(board.D5); got != board.NewPiece(board.Black, board.Pawn) {
		t.Errorf("captured pawn not restored, d5 = %v", got)
	}
}

func TestSessionReplay(t *testing.T) {
	s := NewSession()
	if err := s.Replay([]string{"e2e4", "e7e5", "g1f3"}); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if s.MoveCount() != 3 {
		t.Errorf("replayed %d moves, want 3", s.MoveCount())
	}
	if got := s.Moves(); got[2] != "g1f3" {
		t.Errorf("Moves()[2] = %q, want g1f3", got[2])
	}

	bad := NewSession()
	if err := bad.Replay([]string{"e2e4", "e2e4"}); err == nil {
		t.Error("replaying an illegal sequence should fail")
	}
}

func TestSessionPromotionApply(t *testing.T) {
	s, err := NewSessionFEN("8/P6k/8/8/8/8/7K/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	// A bare pawn push to the last rank is not a fully specified move.
	if err := s.Apply(board.NewMove(board.A7, board.A8)); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("promotion without a choice = %v, want ErrIllegalMove", err)
	}

	for _, pt := range []board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight} {
		if err := s.Apply(board.NewPromotion(board.A7, board.A8, pt)); err != nil {
			t.Errorf("promotion to %v should be legal: %v", pt, err)
			continue
		}
		if got := s.PieceAt(board.A8); got != board.NewPiece(board.White, pt) {
			t.Errorf("a8 = %v after promoting to %v", got, pt)
		}
		if err := s.Undo(); err != nil {
			t.Fatal(err)
		}
	}
}
