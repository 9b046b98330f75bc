package board

import "fmt"

// Move is a fully specified move: origin, destination, and the promotion
// piece when a pawn reaches its last rank (NoPieceType otherwise).
// Castling is encoded as the king's two-file step and en passant as the
// pawn's diagonal step onto the en passant square; MakeMove recognizes
// both from the position, so a Move needs no extra flags.
type Move struct {
	From  Square
	To    Square
	Promo PieceType
}

// NoMove is the zero value used when no move applies.
var NoMove = Move{From: NoSquare, To: NoSquare}

// NewMove builds a plain move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// NewPromotion builds a promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move{From: from, To: to, Promo: promo}
}

// IsPromotion reports whether the move carries a promotion choice.
func (m Move) IsPromotion() bool {
	return m.Promo != NoPieceType
}

// String returns the move in UCI notation (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	switch m.Promo {
	case Knight:
		s += "n"
	case Bishop:
		s += "b"
	case Rook:
		s += "r"
	case Queen:
		s += "q"
	}
	return s
}

// ParseMove parses UCI move notation. The move is not checked for
// legality; callers validate against the current legal set.
func ParseMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}
	return NewMove(from, to), nil
}
