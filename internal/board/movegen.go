package board

// Piece movement steps as (file, rank) deltas. Stepping in delta space
// rather than square indices makes board-edge wraparound impossible.
var (
	knightSteps = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	bishopDirs  = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirs    = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

// step returns the square reached from sq by the given file/rank delta,
// or NoSquare when it falls off the board.
func step(sq Square, df, dr int) Square {
	file := sq.File() + df
	rank := sq.Rank() + dr
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return NewSquare(file, rank)
}

// pawnDir is the forward rank delta for each color.
func pawnDir(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// IsAttacked reports whether sq is attacked by any piece of color by.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	// Pawns attack diagonally forward, so look one rank back from sq.
	dr := -pawnDir(by)
	for _, df := range [2]int{-1, 1} {
		if from := step(sq, df, dr); from.IsValid() && p.Squares[from] == NewPiece(by, Pawn) {
			return true
		}
	}

	for _, d := range knightSteps {
		if from := step(sq, d[0], d[1]); from.IsValid() && p.Squares[from] == NewPiece(by, Knight) {
			return true
		}
	}

	for _, d := range kingSteps {
		if from := step(sq, d[0], d[1]); from.IsValid() && p.Squares[from] == NewPiece(by, King) {
			return true
		}
	}

	if p.attackedAlong(sq, by, bishopDirs, Bishop) {
		return true
	}
	return p.attackedAlong(sq, by, rookDirs, Rook)
}

// attackedAlong walks each ray from sq and reports whether the first
// piece met is an enemy slider of the given kind (or a queen).
func (p *Position) attackedAlong(sq Square, by Color, dirs [4][2]int, slider PieceType) bool {
	for _, d := range dirs {
		cur := sq
		for {
			cur = step(cur, d[0], d[1])
			if !cur.IsValid() {
				break
			}
			piece := p.Squares[cur]
			if piece == NoPiece {
				continue
			}
			if piece.Color() == by {
				pt := piece.Type()
				if pt == slider || pt == Queen {
					return true
				}
			}
			break
		}
	}
	return false
}

// LegalMoves returns every legal move for the side to move: pseudo-legal
// generation filtered by a check-detection pass (a move that leaves the
// mover's own king attacked is discarded).
func (p *Position) LegalMoves() []Move {
	us := p.SideToMove
	them := us.Other()
	pseudo := p.PseudoLegalMoves()

	legal := pseudo[:0]
	for _, m := range pseudo {
		undo := p.MakeMove(m)
		if !p.IsAttacked(p.KingSquare(us), them) {
			legal = append(legal, m)
		}
		p.UnmakeMove(undo)
	}
	return legal
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	us := p.SideToMove
	them := us.Other()
	for _, m := range p.PseudoLegalMoves() {
		undo := p.MakeMove(m)
		ok := !p.IsAttacked(p.KingSquare(us), them)
		p.UnmakeMove(undo)
		if ok {
			return true
		}
	}
	return false
}

// PseudoLegalMoves generates moves that follow piece movement patterns
// and occupancy but may leave the mover's king in check.
func (p *Position) PseudoLegalMoves() []Move {
	us := p.SideToMove
	moves := make([]Move, 0, 48)

	for sq := A1; sq <= H8; sq++ {
		piece := p.Squares[sq]
		if piece == NoPiece || piece.Color() != us {
			continue
		}
		switch piece.Type() {
		case Pawn:
			moves = p.pawnMoves(moves, sq, us)
		case Knight:
			moves = p.stepperMoves(moves, sq, us, knightSteps)
		case Bishop:
			moves = p.sliderMoves(moves, sq, us, bishopDirs[:])
		case Rook:
			moves = p.sliderMoves(moves, sq, us, rookDirs[:])
		case Queen:
			moves = p.sliderMoves(moves, sq, us, bishopDirs[:])
			moves = p.sliderMoves(moves, sq, us, rookDirs[:])
		case King:
			moves = p.stepperMoves(moves, sq, us, kingSteps)
		}
	}

	return p.castlingMoves(moves, us)
}

// pawnMoves generates pushes, double pushes, captures, promotions and
// en passant for the pawn on sq. Promotions yield one candidate per
// choice so the caller can pick any of the four.
func (p *Position) pawnMoves(moves []Move, sq Square, us Color) []Move {
	dir := pawnDir(us)

	if to := step(sq, 0, dir); to.IsValid() && p.IsEmpty(to) {
		moves = appendPawnMove(moves, sq, to, us)
		if sq.RelativeRank(us) == 1 {
			if to2 := step(sq, 0, 2*dir); p.IsEmpty(to2) {
				moves = append(moves, NewMove(sq, to2))
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to := step(sq, df, dir)
		if !to.IsValid() {
			continue
		}
		target := p.Squares[to]
		if target != NoPiece && target.Color() != us {
			moves = appendPawnMove(moves, sq, to, us)
		} else if to == p.EnPassant {
			moves = append(moves, NewMove(sq, to))
		}
	}
	return moves
}

// appendPawnMove adds a pawn move to its destination, expanding into the
// four promotion choices when the destination is the terminal rank.
func appendPawnMove(moves []Move, from, to Square, us Color) []Move {
	if to.RelativeRank(us) == 7 {
		return append(moves,
			NewPromotion(from, to, Queen),
			NewPromotion(from, to, Rook),
			NewPromotion(from, to, Bishop),
			NewPromotion(from, to, Knight))
	}
	return append(moves, NewMove(from, to))
}

func (p *Position) stepperMoves(moves []Move, sq Square, us Color, steps [8][2]int) []Move {
	for _, d := range steps {
		to := step(sq, d[0], d[1])
		if !to.IsValid() {
			continue
		}
		if target := p.Squares[to]; target == NoPiece || target.Color() != us {
			moves = append(moves, NewMove(sq, to))
		}
	}
	return moves
}

func (p *Position) sliderMoves(moves []Move, sq Square, us Color, dirs [][2]int) []Move {
	for _, d := range dirs {
		cur := sq
		for {
			cur = step(cur, d[0], d[1])
			if !cur.IsValid() {
				break
			}
			target := p.Squares[cur]
			if target == NoPiece {
				moves = append(moves, NewMove(sq, cur))
				continue
			}
			if target.Color() != us {
				moves = append(moves, NewMove(sq, cur))
			}
			break
		}
	}
	return moves
}

// castlingMoves adds castling when rights remain, the path is clear and
// the king neither starts from, passes through nor lands on an attacked
// square.
func (p *Position) castlingMoves(moves []Move, us Color) []Move {
	them := us.Other()
	var (
		kingSide, queenSide CastlingRights
		e, f, g, d, c, b    Square
	)
	if us == White {
		kingSide, queenSide = WhiteKingSide, WhiteQueenSide
		e, f, g, d, c, b = E1, F1, G1, D1, C1, B1
	} else {
		kingSide, queenSide = BlackKingSide, BlackQueenSide
		e, f, g, d, c, b = E8, F8, G8, D8, C8, B8
	}

	if p.CastlingRights&kingSide != 0 && p.IsEmpty(f) && p.IsEmpty(g) {
		if !p.IsAttacked(e, them) && !p.IsAttacked(f, them) && !p.IsAttacked(g, them) {
			moves = append(moves, NewMove(e, g))
		}
	}
	if p.CastlingRights&queenSide != 0 && p.IsEmpty(d) && p.IsEmpty(c) && p.IsEmpty(b) {
		if !p.IsAttacked(e, them) && !p.IsAttacked(d, them) && !p.IsAttacked(c, them) {
			moves = append(moves, NewMove(e, c))
		}
	}
	return moves
}

// Undo holds the state needed to revert a move. The full prior position
// is kept so UnmakeMove is a plain restore regardless of what the move
// did (capture, promotion, castling rook hop, en passant removal).
type Undo struct {
	prev Position
}

// MakeMove applies m to the position without checking legality and
// returns the undo record. Castling and en passant are recognized from
// the moving piece and the position itself.
func (p *Position) MakeMove(m Move) Undo {
	undo := Undo{prev: *p}

	us := p.SideToMove
	piece := p.Squares[m.From]
	captured := p.Squares[m.To]

	// En passant: a pawn stepping diagonally onto the empty target square.
	if piece.Type() == Pawn && m.To == p.EnPassant && captured == NoPiece && m.From.File() != m.To.File() {
		capSq := NewSquare(m.To.File(), m.From.Rank())
		captured = p.Squares[capSq]
		p.Squares[capSq] = NoPiece
	}

	p.Squares[m.From] = NoPiece
	if m.IsPromotion() {
		p.Squares[m.To] = NewPiece(us, m.Promo)
	} else {
		p.Squares[m.To] = piece
	}

	// Castling: the king's two-file step carries the rook across.
	if piece.Type() == King && abs(m.To.File()-m.From.File()) == 2 {
		rank := m.From.Rank()
		if m.To.File() > m.From.File() {
			p.Squares[NewSquare(5, rank)] = p.Squares[NewSquare(7, rank)]
			p.Squares[NewSquare(7, rank)] = NoPiece
		} else {
			p.Squares[NewSquare(3, rank)] = p.Squares[NewSquare(0, rank)]
			p.Squares[NewSquare(0, rank)] = NoPiece
		}
	}

	// Castling rights lapse when the king moves or a rook moves or is captured.
	if piece.Type() == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSide | WhiteQueenSide
		} else {
			p.CastlingRights &^= BlackKingSide | BlackQueenSide
		}
	}
	for _, sq := range [2]Square{m.From, m.To} {
		switch sq {
		case A1:
			p.CastlingRights &^= WhiteQueenSide
		case H1:
			p.CastlingRights &^= WhiteKingSide
		case A8:
			p.CastlingRights &^= BlackQueenSide
		case H8:
			p.CastlingRights &^= BlackKingSide
		}
	}

	p.EnPassant = NoSquare
	if piece.Type() == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		p.EnPassant = NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	if piece.Type() == Pawn || captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = us.Other()

	return undo
}

// UnmakeMove restores the position to the state before the matching
// MakeMove call.
func (p *Position) UnmakeMove(undo Undo) {
	*p = undo.prev
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
