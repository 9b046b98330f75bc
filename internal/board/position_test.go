package board

import "testing"

// Round-trip property: applying and undoing any legal move restores an
// identical position identifier.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
		"8/P6k/8/8/8/8/7K/8 w - - 0 1",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		before := pos.FEN()
		for _, m := range pos.LegalMoves() {
			undo := pos.MakeMove(m)
			pos.UnmakeMove(undo)
			if got := pos.FEN(); got != before {
				t.Fatalf("round trip of %v from %q:\n got %q\nwant %q", m, fen, got, before)
			}
		}
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := pos.FEN(); got != fen {
			t.Errorf("FEN round trip:\n got %q\nwant %q", got, fen)
		}
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",          // too few fields
		"rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",   // 7 ranks
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq -", // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KXkq -", // bad castling
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) should fail", fen)
		}
	}
}

func TestPromotionChoices(t *testing.T) {
	// White pawn on a7 ready to promote.
	pos, err := ParseFEN("8/P6k/8/8/8/8/7K/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	choices := map[PieceType]bool{}
	for _, m := range pos.LegalMoves() {
		if m.From == A7 && m.To == A8 {
			if !m.IsPromotion() {
				t.Errorf("pawn move to terminal rank without promotion: %v", m)
			}
			choices[m.Promo] = true
		}
	}
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		if !choices[pt] {
			t.Errorf("promotion to %v not generated", pt)
		}
	}
	if len(choices) != 4 {
		t.Errorf("got %d promotion choices, want 4", len(choices))
	}

	pos.MakeMove(NewPromotion(A7, A8, Queen))
	if got := pos.PieceAt(A8); got != NewPiece(White, Queen) {
		t.Errorf("piece at a8 after promotion = %v, want white queen", got)
	}
	if pos.PieceAt(A7) != NoPiece {
		t.Error("a7 should be empty after promotion")
	}
}

func TestEnPassantCapture(t *testing.T) {
	// After e2e4 against a black pawn on d4, d4xe3 captures the e-pawn.
	pos, err := ParseFEN("4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	pos.MakeMove(NewMove(E2, E4))
	if pos.EnPassant != E3 {
		t.Fatalf("en passant target = %v, want e3", pos.EnPassant)
	}

	var ep Move
	for _, m := range pos.LegalMoves() {
		if m.From == D4 && m.To == E3 {
			ep = m
		}
	}
	if ep == NoMove {
		t.Fatal("en passant capture d4xe3 not generated")
	}

	pos.MakeMove(ep)
	if pos.PieceAt(E4) != NoPiece {
		t.Error("captured pawn still on e4 after en passant")
	}
	if got := pos.PieceAt(E3); got != NewPiece(Black, Pawn) {
		t.Errorf("piece at e3 = %v, want black pawn", got)
	}
}

func TestCastlingRookHop(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	pos.MakeMove(NewMove(E1, G1))
	if got := pos.PieceAt(G1); got != NewPiece(White, King) {
		t.Errorf("piece at g1 = %v, want white king", got)
	}
	if got := pos.PieceAt(F1); got != NewPiece(White, Rook) {
		t.Errorf("piece at f1 = %v, want white rook", got)
	}
	if pos.PieceAt(H1) != NoPiece {
		t.Error("h1 should be empty after castling")
	}
	if pos.CastlingRights&(WhiteKingSide|WhiteQueenSide) != 0 {
		t.Error("white castling rights should lapse after castling")
	}
	if pos.CastlingRights&(BlackKingSide|BlackQueenSide) != (BlackKingSide | BlackQueenSide) {
		t.Error("black castling rights should survive white castling")
	}
}

func TestValidate(t *testing.T) {
	if err := NewPosition().Validate(); err != nil {
		t.Errorf("starting position should validate: %v", err)
	}

	pos := &Position{EnPassant: NoSquare, FullMoveNumber: 1}
	if err := pos.Validate(); err == nil {
		t.Error("empty board should fail validation")
	}
}
