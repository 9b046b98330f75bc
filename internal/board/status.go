package board

// Status classifies whether a position is terminal.
type Status uint8

const (
	Ongoing   Status = iota
	Checkmate        // the side to move is mated; the other side won
	Stalemate
	Draw // 50-move rule or insufficient material
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	case Draw:
		return "Draw"
	default:
		return "Ongoing"
	}
}

// Status returns the terminal state of the position. For Checkmate the
// winner is SideToMove.Other().
func (p *Position) Status() Status {
	if !p.HasLegalMoves() {
		if p.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if p.HalfMoveClock >= 100 {
		return Draw
	}
	if p.insufficientMaterial() {
		return Draw
	}
	return Ongoing
}

// insufficientMaterial reports whether neither side can possibly mate:
// bare kings, or king plus a single minor piece against a bare king.
func (p *Position) insufficientMaterial() bool {
	var minors [2]int
	for sq := A1; sq <= H8; sq++ {
		piece := p.Squares[sq]
		switch piece.Type() {
		case NoPieceType, King:
		case Knight, Bishop:
			minors[piece.Color()]++
		default:
			return false
		}
	}
	if minors[White]+minors[Black] == 0 {
		return true
	}
	return (minors[White] <= 1 && minors[Black] == 0) || (minors[Black] <= 1 && minors[White] == 0)
}
