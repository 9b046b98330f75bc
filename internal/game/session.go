// Package game holds the live game state (position plus move history)
// and the mouse-driven interaction state machine on top of it.
package game

import (
	"github.com/evalboard/evalboard/internal/board"
)

type historyEntry struct {
	move board.Move
	undo board.Undo
}

// Session owns a game in progress: the authoritative position and the
// ordered history of applied moves. All mutation goes through Apply and
// Undo so the history never diverges from the position.
type Session struct {
	pos     *board.Position
	history []historyEntry
}

// NewSession starts a session from the standard starting position.
func NewSession() *Session {
	return &Session{pos: board.NewPosition()}
}

// NewSessionFEN starts a session from an arbitrary position.
func NewSessionFEN(fen string) (*Session, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	return &Session{pos: pos}, nil
}

// Apply plays m if it is a member of the current legal-move set,
// returning ErrIllegalMove otherwise. On success the turn flips and the
// move is appended to the history.
func (s *Session) Apply(m board.Move) error {
	legal := false
	for _, lm := range s.pos.LegalMoves() {
		if lm == m {
			legal = true
			break
		}
	}
	if !legal {
		return ErrIllegalMove
	}

	undo := s.pos.MakeMove(m)
	s.history = append(s.history, historyEntry{move: m, undo: undo})
	return nil
}

// Undo reverts the most recent move, restoring the prior position
// exactly, including captures and special-move side effects. Returns
// ErrEmptyHistory when nothing has been played.
func (s *Session) Undo() error {
	if len(s.history) == 0 {
		return ErrEmptyHistory
	}
	last := s.history[len(s.history)-1]
	s.pos.UnmakeMove(last.undo)
	s.history = s.history[:len(s.history)-1]
	return nil
}

// Replay applies a sequence of moves in UCI notation, stopping at the
// first illegal or unparseable one. Used to restore a saved game.
func (s *Session) Replay(moves []string) error {
	for _, ms := range moves {
		m, err := board.ParseMove(ms)
		if err != nil {
			return err
		}
		if err := s.Apply(m); err != nil {
			return err
		}
	}
	return nil
}

// LegalMoves returns all legal moves in the current position.
func (s *Session) LegalMoves() []board.Move {
	return s.pos.LegalMoves()
}

// MovesFrom returns the legal moves originating from sq.
func (s *Session) MovesFrom(sq board.Square) []board.Move {
	var from []board.Move
	for _, m := range s.pos.LegalMoves() {
		if m.From == sq {
			from = append(from, m)
		}
	}
	return from
}

// PieceAt returns the piece on sq.
func (s *Session) PieceAt(sq board.Square) board.Piece {
	return s.pos.PieceAt(sq)
}

// SideToMove returns whose turn it is.
func (s *Session) SideToMove() board.Color {
	return s.pos.SideToMove
}

// PositionID returns the canonical identifier of the current position,
// regenerated from the board on every call so it always reflects the
// latest mutation. It doubles as the analysis cache key.
func (s *Session) PositionID() string {
	return s.pos.FEN()
}

// Position returns the live position for rendering. Callers must not
// mutate it.
func (s *Session) Position() *board.Position {
	return s.pos
}

// Status returns the terminal state of the current position.
func (s *Session) Status() board.Status {
	return s.pos.Status()
}

// MoveCount returns the number of applied moves still on the history.
func (s *Session) MoveCount() int {
	return len(s.history)
}

// Moves returns the applied moves in UCI notation, oldest first.
func (s *Session) Moves() []string {
	out := make([]string, len(s.history))
	for i, h := range s.history {
		out[i] = h.move.String()
	}
	return out
}

// LastMove returns the most recently applied move, or NoMove.
func (s *Session) LastMove() board.Move {
	if len(s.history) == 0 {
		return board.NoMove
	}
	return s.history[len(s.history)-1].move
}
