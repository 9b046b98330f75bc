package board

import (
	"fmt"
	"strings"
)

// CastlingRights is a bitmask of the four castling options.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// String returns the FEN castling field ("KQkq" or "-").
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	if cr&WhiteKingSide != 0 {
		sb.WriteByte('K')
	}
	if cr&WhiteQueenSide != 0 {
		sb.WriteByte('Q')
	}
	if cr&BlackKingSide != 0 {
		sb.WriteByte('k')
	}
	if cr&BlackQueenSide != 0 {
		sb.WriteByte('q')
	}
	return sb.String()
}

// Position is a complete chess position: an 8x8 mailbox of pieces plus
// the side to move, castling rights, en passant target and move clocks.
type Position struct {
	Squares        [64]Piece
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // target square of a legal en passant capture, NoSquare if none
	HalfMoveClock  int    // half-moves since the last pawn move or capture
	FullMoveNumber int    // starts at 1, increments after Black's move
}

// NewPosition returns the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// Copy returns an independent copy of the position.
func (p *Position) Copy() *Position {
	cp := *p
	return &cp
}

// PieceAt returns the piece on sq, or NoPiece when empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Squares[sq]
}

// IsEmpty reports whether sq holds no piece.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Squares[sq] == NoPiece
}

// KingSquare returns the square of c's king.
// Every playable position holds exactly one king per color.
func (p *Position) KingSquare(c Color) Square {
	want := NewPiece(c, King)
	for sq := A1; sq <= H8; sq++ {
		if p.Squares[sq] == want {
			return sq
		}
	}
	return NoSquare
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	ksq := p.KingSquare(p.SideToMove)
	return ksq.IsValid() && p.IsAttacked(ksq, p.SideToMove.Other())
}

// Validate checks the invariants a playable position must hold.
func (p *Position) Validate() error {
	for c := White; c <= Black; c++ {
		kings := 0
		for sq := A1; sq <= H8; sq++ {
			if p.Squares[sq] == NewPiece(c, King) {
				kings++
			}
		}
		if kings != 1 {
			return fmt.Errorf("%v must have exactly one king, has %d", c, kings)
		}
	}
	for sq := A1; sq <= H8; sq++ {
		if p.Squares[sq].Type() == Pawn && (sq.Rank() == 0 || sq.Rank() == 7) {
			return fmt.Errorf("pawn on terminal rank at %v", sq)
		}
	}
	return nil
}

// String returns a text diagram of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.Squares[NewSquare(file, rank)]
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %v\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %v\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %v\n", p.EnPassant)
	return sb.String()
}
