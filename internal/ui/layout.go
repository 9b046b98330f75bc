// Package ui implements the board window using Ebitengine: rendering,
// mouse input, the promotion picker and the win-probability bar.
package ui

import (
	"github.com/evalboard/evalboard/internal/board"
)

// UI Constants
const (
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	EvalBarWidth = 32
	ScreenWidth  = BoardSize + EvalBarWidth
	ScreenHeight = BoardSize
)

// SquareOrigin returns the top-left pixel of sq. With flipped=false
// white's back rank sits at the bottom of the window.
func SquareOrigin(sq board.Square, flipped bool) (int, int) {
	file := int(sq.File())
	rank := int(sq.Rank())
	if flipped {
		file = 7 - file
		rank = 7 - rank
	}
	return file * SquareSize, (7 - rank) * SquareSize
}

// SquareAt maps window pixel coordinates back to a square, or NoSquare
// when the point lies outside the board area.
func SquareAt(x, y int, flipped bool) board.Square {
	if x < 0 || x >= BoardSize || y < 0 || y >= BoardSize {
		return board.NoSquare
	}
	file := x / SquareSize
	rank := 7 - y/SquareSize
	if flipped {
		file = 7 - file
		rank = 7 - rank
	}
	return board.NewSquare(file, rank)
}
