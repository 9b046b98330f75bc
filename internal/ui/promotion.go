package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/evalboard/evalboard/internal/board"
)

// promotionChoices in display order.
var promotionChoices = [4]board.PieceType{
	board.Queen, board.Rook, board.Bishop, board.Knight,
}

// PromotionPicker is the modal shown while a pawn waits on its
// promotion piece. Clicking an option resolves it; clicking outside or
// pressing Escape cancels the move.
type PromotionPicker struct {
	visible bool
	color   board.Color
}

// NewPromotionPicker creates a hidden picker.
func NewPromotionPicker() *PromotionPicker {
	return &PromotionPicker{}
}

// Show opens the picker for the promoting side.
func (pp *PromotionPicker) Show(c board.Color) {
	pp.visible = true
	pp.color = c
}

// Hide closes the picker.
func (pp *PromotionPicker) Hide() {
	pp.visible = false
}

// IsVisible reports whether the picker is open.
func (pp *PromotionPicker) IsVisible() bool {
	return pp.visible
}

// optionRect returns the logical bounds of option i.
func (pp *PromotionPicker) optionRect(i int) (x, y, w, h int) {
	totalW := 4 * SquareSize
	x0 := (BoardSize - totalW) / 2
	y0 := (BoardSize - SquareSize) / 2
	return x0 + i*SquareSize, y0, SquareSize, SquareSize
}

// HandleInput resolves a click into a promotion choice. The second
// return distinguishes "chose pt" from "no decision yet"; a click
// outside the options reports a cancel through the third return.
func (pp *PromotionPicker) HandleInput(in *InputHandler) (board.PieceType, bool, bool) {
	if !pp.visible {
		return board.NoPieceType, false, false
	}

	for _, pair := range []struct {
		key ebiten.Key
		pt  board.PieceType
	}{
		{ebiten.KeyQ, board.Queen},
		{ebiten.KeyR, board.Rook},
		{ebiten.KeyB, board.Bishop},
		{ebiten.KeyN, board.Knight},
	} {
		if IsKeyJustPressed(pair.key) {
			return pair.pt, true, false
		}
	}
	if IsKeyJustPressed(ebiten.KeyEscape) {
		return board.NoPieceType, false, true
	}

	if !in.IsLeftJustPressed() {
		return board.NoPieceType, false, false
	}
	for i, pt := range promotionChoices {
		x, y, w, h := pp.optionRect(i)
		if in.IsInBounds(x, y, w, h) {
			return pt, true, false
		}
	}
	return board.NoPieceType, false, true
}

// Draw renders the picker over a dimmed board.
func (pp *PromotionPicker) Draw(screen *ebiten.Image, r *Renderer) {
	if !pp.visible {
		return
	}

	// Dim the board behind the modal.
	vector.DrawFilledRect(screen, 0, 0, r.s(BoardSize), r.s(BoardSize),
		color.RGBA{0, 0, 0, 140}, false)

	if face := GetBoldFace(); face != nil {
		title := "Promote to"
		tw, _ := MeasureText(title, face)
		_, y0, _, _ := pp.optionRect(0)
		op := &text.DrawOptions{}
		op.GeoM.Scale(r.scale, r.scale)
		op.GeoM.Translate(
			(float64(r.s(BoardSize))-tw*r.scale)/2,
			float64(r.s(y0-36)))
		op.ColorScale.ScaleWithColor(r.Theme().TextColor)
		text.Draw(screen, title, face, op)
	}

	for i, pt := range promotionChoices {
		x, y, w, h := pp.optionRect(i)

		bg := r.Theme().LightSquare
		if i%2 == 1 {
			bg = r.Theme().DarkSquare
		}
		vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(w), r.s(h), bg, false)
		vector.StrokeRect(screen, r.s(x), r.s(y), r.s(w), r.s(h), r.s(2),
			r.Theme().Background, false)

		piece := board.NewPiece(pp.color, pt)
		r.Sprites().DrawPieceAt(screen, piece, int(r.s(x)), int(r.s(y)))
	}
}
