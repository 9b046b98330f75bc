package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/evalboard/evalboard/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
	BarWhite       color.RGBA
	BarBlack       color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},  // Soft yellow-green
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		Background:     color.RGBA{40, 44, 52, 255},    // Dark gray
		TextColor:      color.RGBA{220, 220, 220, 255}, // Light gray
		BarWhite:       color.RGBA{235, 235, 235, 255},
		BarBlack:       color.RGBA{50, 50, 50, 255},
	}
}

// Renderer handles all drawing operations.
type Renderer struct {
	sprites *SpriteManager
	theme   *Theme
	flipped bool
	scale   float64 // HiDPI scale factor
}

// NewRenderer creates a new renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		sprites: NewSpriteManager(SquareSize),
		theme:   DefaultTheme(),
		scale:   1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
}

// SetFlipped orients the board with black's back rank at the bottom.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports the current orientation.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// s returns the scaled value for rendering.
func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the board squares and coordinate labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := SquareOrigin(sq, r.flipped)

		var c color.RGBA
		if (int(sq.File())+int(sq.Rank()))%2 == 0 {
			c = r.theme.DarkSquare
		} else {
			c = r.theme.LightSquare
		}
		vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(SquareSize), r.s(SquareSize), c, false)
	}

	r.drawCoordinates(screen)
}

// drawCoordinates labels the left edge with ranks and the bottom edge
// with files.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetRegularFace()
	if face == nil {
		return
	}

	for i := 0; i < 8; i++ {
		rank := i
		file := i
		if r.flipped {
			rank = 7 - rank
			file = 7 - file
		}

		// Rank digit in the top-left corner of the edge square.
		op := &text.DrawOptions{}
		op.GeoM.Scale(r.scale, r.scale)
		op.GeoM.Translate(float64(r.s(3)), float64(r.s((7-rank)*SquareSize+2)))
		op.ColorScale.ScaleWithColor(r.theme.TextColor)
		text.Draw(screen, fmt.Sprintf("%d", i+1), face, op)

		// File letter in the bottom-right corner of the edge square.
		op = &text.DrawOptions{}
		op.GeoM.Scale(r.scale, r.scale)
		op.GeoM.Translate(
			float64(r.s(file*SquareSize+SquareSize-12)),
			float64(r.s(BoardSize-18)))
		op.ColorScale.ScaleWithColor(r.theme.TextColor)
		text.Draw(screen, string(rune('a'+i)), face, op)
	}
}

// DrawHighlights draws the last move, the selection and its legal
// targets.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, targets []board.Move, lastMove board.Move) {
	if lastMove != board.NoMove {
		r.highlightSquare(screen, lastMove.From, r.theme.LastMoveColor)
		r.highlightSquare(screen, lastMove.To, r.theme.LastMoveColor)
	}

	if selected != board.NoSquare {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}

	for _, m := range targets {
		r.drawLegalMoveIndicator(screen, m.To)
	}
}

// DrawCheck highlights the king's square if in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	if kingSq != board.NoSquare {
		r.highlightSquare(screen, kingSq, r.theme.CheckColor)
	}
}

// highlightSquare draws a colored overlay on a square.
func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if sq == board.NoSquare {
		return
	}
	x, y := SquareOrigin(sq, r.flipped)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(SquareSize), r.s(SquareSize), c, false)
}

// drawLegalMoveIndicator draws a circle on legal move squares.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square) {
	x, y := SquareOrigin(sq, r.flipped)
	cx := r.s(x) + r.s(SquareSize)/2
	cy := r.s(y) + r.s(SquareSize)/2
	radius := r.s(SquareSize) * 0.15

	vector.DrawFilledCircle(screen, cx, cy, radius, r.theme.LegalMoveColor, false)
}

// DrawPieces draws all pieces on the board.
func (r *Renderer) DrawPieces(screen *ebiten.Image, pos *board.Position) {
	for sq := board.A1; sq <= board.H8; sq++ {
		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		x, y := SquareOrigin(sq, r.flipped)
		r.sprites.DrawPieceAt(screen, piece, int(r.s(x)), int(r.s(y)))
	}
}

// DrawEvalBar draws the win-probability column on the right edge. The
// white share fills from the bottom; winrate 0.5 splits the bar evenly.
func (r *Renderer) DrawEvalBar(screen *ebiten.Image, winrate float64) {
	if winrate < 0 {
		winrate = 0
	} else if winrate > 1 {
		winrate = 1
	}

	x := r.s(BoardSize)
	w := r.s(EvalBarWidth)
	h := r.s(ScreenHeight)

	whiteH := h * float32(winrate)
	vector.DrawFilledRect(screen, x, 0, w, h-whiteH, r.theme.BarBlack, false)
	vector.DrawFilledRect(screen, x, h-whiteH, w, whiteH, r.theme.BarWhite, false)

	face := GetRegularFace()
	if face == nil {
		return
	}
	label := fmt.Sprintf("%d", int(winrate*100+0.5))
	lw, _ := MeasureText(label, face)
	op := &text.DrawOptions{}
	op.GeoM.Scale(r.scale, r.scale)
	op.GeoM.Translate(float64(x)+(float64(w)-lw*r.scale)/2, float64(h)/2)
	op.ColorScale.ScaleWithColor(color.RGBA{255, 80, 80, 255})
	text.Draw(screen, label, face, op)
}

// DrawStatusBanner overlays the game-over message.
func (r *Renderer) DrawStatusBanner(screen *ebiten.Image, message string) {
	face := GetBoldFace()
	if face == nil || message == "" {
		return
	}

	w, h := MeasureText(message, face)
	bw := float32(w*r.scale) + r.s(40)
	bh := float32(h*r.scale) + r.s(24)
	bx := (r.s(BoardSize) - bw) / 2
	by := (r.s(BoardSize) - bh) / 2

	vector.DrawFilledRect(screen, bx, by, bw, bh, color.RGBA{20, 20, 20, 220}, false)

	op := &text.DrawOptions{}
	op.GeoM.Scale(r.scale, r.scale)
	op.GeoM.Translate(float64(bx)+float64(r.s(20)), float64(by)+float64(r.s(12)))
	op.ColorScale.ScaleWithColor(r.theme.TextColor)
	text.Draw(screen, message, face, op)
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// Sprites returns the sprite manager.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}
