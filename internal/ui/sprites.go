package ui

import (
	"bytes"
	"embed"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/evalboard/evalboard/internal/board"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// SpriteManager manages piece sprites.
type SpriteManager struct {
	pieces      map[board.Piece]*ebiten.Image
	size        int     // Display size (e.g., 80)
	renderScale float64 // Render at higher resolution for quality
}

// NewSpriteManager creates a new sprite manager with pieces of the given size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[board.Piece]*ebiten.Image),
		size:        size,
		renderScale: 3.0, // Render at 3x resolution for sharp scaling
	}
	sm.loadPieces()
	return sm
}

// GetPiece returns the sprite for a piece.
func (sm *SpriteManager) GetPiece(p board.Piece) *ebiten.Image {
	return sm.pieces[p]
}

// pieceFiles maps pieces to their asset file paths.
var pieceFiles = map[board.Piece]string{
	board.NewPiece(board.White, board.Pawn):   "assets/pieces/wP.svg",
	board.NewPiece(board.White, board.Knight): "assets/pieces/wN.svg",
	board.NewPiece(board.White, board.Bishop): "assets/pieces/wB.svg",
	board.NewPiece(board.White, board.Rook):   "assets/pieces/wR.svg",
	board.NewPiece(board.White, board.Queen):  "assets/pieces/wQ.svg",
	board.NewPiece(board.White, board.King):   "assets/pieces/wK.svg",
	board.NewPiece(board.Black, board.Pawn):   "assets/pieces/bP.svg",
	board.NewPiece(board.Black, board.Knight): "assets/pieces/bN.svg",
	board.NewPiece(board.Black, board.Bishop): "assets/pieces/bB.svg",
	board.NewPiece(board.Black, board.Rook):   "assets/pieces/bR.svg",
	board.NewPiece(board.Black, board.Queen):  "assets/pieces/bQ.svg",
	board.NewPiece(board.Black, board.King):   "assets/pieces/bK.svg",
}

// loadPieces loads all piece sprites from embedded SVG files. A piece
// whose asset is missing or unparseable gets a lettered disc instead,
// so the board stays playable.
func (sm *SpriteManager) loadPieces() {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for piece, path := range pieceFiles {
		data, err := pieceAssets.ReadFile(path)
		if err != nil {
			log.Printf("Failed to read piece asset %s: %v", path, err)
			sm.pieces[piece] = sm.letterSprite(piece, renderSize)
			continue
		}

		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			log.Printf("Failed to parse SVG %s: %v", path, err)
			sm.pieces[piece] = sm.letterSprite(piece, renderSize)
			continue
		}

		icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

		rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
		scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(renderSize, renderSize, scanner)
		icon.Draw(raster, 1.0)

		sm.pieces[piece] = ebiten.NewImageFromImage(rgba)
	}
}

// letterSprite renders the piece's letter on a disc as a stand-in
// sprite.
func (sm *SpriteManager) letterSprite(p board.Piece, renderSize int) *ebiten.Image {
	img := ebiten.NewImage(renderSize, renderSize)

	disc := color.RGBA{245, 245, 245, 255}
	ink := color.RGBA{30, 30, 30, 255}
	if p.Color() == board.Black {
		disc, ink = ink, disc
	}

	cx := float32(renderSize) / 2
	vector.DrawFilledCircle(img, cx, cx, cx*0.85, disc, true)

	letter := string(" PNBRQK"[p.Type()])
	face := GetFaceWithSize(float64(renderSize) / 2)
	if face != nil {
		w, h := MeasureText(letter, face)
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(renderSize)/2-w/2, float64(renderSize)/2-h/2)
		op.ColorScale.ScaleWithColor(ink)
		text.Draw(img, letter, face, op)
	}
	return img
}

// DrawPieceAt draws a piece at the given pixel coordinates.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y int) {
	if p == board.NoPiece {
		return
	}
	sprite := sm.GetPiece(p)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	// Scale down from render resolution to display size
	scale := 1.0 / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
