package board

import "testing"

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want Status
	}{
		{"starting position", StartFEN, Ongoing},
		{"back rank mate", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", Checkmate},
		{"fools mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", Checkmate},
		{"king can capture checker", "6Rk/8/8/8/8/8/8/K7 b - - 0 1", Ongoing},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Stalemate},
		{"bare kings", "8/8/8/4k3/8/8/8/4K3 w - - 0 1", Draw},
		{"king and knight vs king", "8/8/8/4k3/8/8/8/4KN2 w - - 0 1", Draw},
		{"fifty move rule", "8/8/8/4k3/8/8/4R3/4K3 w - - 100 80", Draw},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			if got := pos.Status(); got != tc.want {
				t.Errorf("Status() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestInCheck(t *testing.T) {
	pos, err := ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !pos.InCheck() {
		t.Error("white should be in check")
	}
	if NewPosition().InCheck() {
		t.Error("starting position should not be in check")
	}
}
