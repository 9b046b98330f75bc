package game

import "errors"

var (
	// ErrIllegalMove is returned when an applied move is not in the
	// current position's legal set. The position is left unchanged.
	ErrIllegalMove = errors.New("illegal move")

	// ErrEmptyHistory is returned by Undo when no move has been made.
	ErrEmptyHistory = errors.New("no moves to undo")
)
