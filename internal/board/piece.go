package board

// Color identifies a side.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// PieceType is the kind of a piece, independent of color.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Piece packs a PieceType and a Color into one byte.
// Bit 3 holds the color, bits 0-2 the type. Zero is the empty square.
type Piece uint8

// NoPiece marks an empty square.
const NoPiece Piece = 0

// NewPiece builds a Piece from color and type.
func NewPiece(c Color, pt PieceType) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<3
}

// Type returns the piece's kind.
func (p Piece) Type() PieceType {
	return PieceType(p & 7)
}

// Color returns the piece's side. Only meaningful when p != NoPiece.
func (p Piece) Color() Color {
	return Color(p >> 3)
}

// String returns the FEN character for the piece:
// uppercase for white, lowercase for black, space when empty.
func (p Piece) String() string {
	if p == NoPiece {
		return " "
	}
	chars := " PNBRQK"
	c := chars[p.Type()]
	if p.Color() == Black {
		c += 'a' - 'A'
	}
	return string(c)
}

// PieceFromChar converts a FEN piece character to a Piece.
func PieceFromChar(c byte) Piece {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	switch c {
	case 'P':
		return NewPiece(color, Pawn)
	case 'N':
		return NewPiece(color, Knight)
	case 'B':
		return NewPiece(color, Bishop)
	case 'R':
		return NewPiece(color, Rook)
	case 'Q':
		return NewPiece(color, Queen)
	case 'K':
		return NewPiece(color, King)
	default:
		return NoPiece
	}
}
