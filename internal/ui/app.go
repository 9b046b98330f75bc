package ui

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/evalboard/evalboard/internal/analysis"
	"github.com/evalboard/evalboard/internal/board"
	"github.com/evalboard/evalboard/internal/game"
	"github.com/evalboard/evalboard/internal/storage"
)

// App implements ebiten.Game, wiring the board window to the game
// controller, the analysis bridge and persistent storage.
type App struct {
	controller *game.Controller
	bridge     *analysis.Bridge

	storage *storage.Storage
	prefs   *storage.Preferences

	renderer *Renderer
	input    *InputHandler
	picker   *PromotionPicker

	winrate float64
	scale   float64
}

// NewApp builds the application: storage and preferences first, then
// the saved game (if any) and the engine bridge.
func NewApp() *App {
	a := &App{
		renderer: NewRenderer(),
		input:    NewInputHandler(),
		picker:   NewPromotionPicker(),
		winrate:  0.5,
		scale:    1.0,
	}

	var err error
	a.storage, err = storage.NewStorage()
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	}
	a.loadPreferences()

	session := game.NewSession()
	if a.storage != nil {
		if saved, err := a.storage.LoadGame(); err != nil {
			log.Printf("Warning: Failed to load saved game: %v", err)
		} else if saved != nil && len(saved.Moves) > 0 {
			if err := session.Replay(saved.Moves); err != nil {
				log.Printf("Warning: Saved game did not replay cleanly: %v", err)
				session = game.NewSession()
			} else {
				log.Printf("Restored game with %d moves", session.MoveCount())
			}
		}
	}
	a.controller = game.NewController(session)

	if a.prefs.AnalysisEnabled {
		a.bridge = analysis.New(a.prefs.EngineDir)
	} else {
		a.bridge = &analysis.Bridge{}
	}

	a.renderer.SetFlipped(a.prefs.FlipBoard)
	return a
}

// loadPreferences loads user preferences from storage.
func (a *App) loadPreferences() {
	if a.storage == nil {
		a.prefs = storage.DefaultPreferences()
		return
	}
	var err error
	a.prefs, err = a.storage.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
		a.prefs = storage.DefaultPreferences()
	}
}

// Update handles input and refreshes the evaluation.
func (a *App) Update() error {
	a.input.Update(a.scale)

	// The promotion modal captures all input while open.
	if a.picker.IsVisible() {
		pt, chosen, cancelled := a.picker.HandleInput(a.input)
		switch {
		case chosen:
			a.controller.ResolvePromotion(pt)
			a.picker.Hide()
		case cancelled:
			a.controller.CancelPromotion()
			a.picker.Hide()
		}
		a.refreshEvaluation()
		return nil
	}

	if IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if IsKeyJustPressed(ebiten.KeyU) {
		a.controller.RequestUndo()
	}
	if IsKeyJustPressed(ebiten.KeyF) {
		a.renderer.SetFlipped(!a.renderer.Flipped())
		a.prefs.FlipBoard = a.renderer.Flipped()
	}

	if a.input.IsLeftJustPressed() {
		mx, my := a.input.MousePosition()
		if sq := SquareAt(mx, my, a.renderer.Flipped()); sq != board.NoSquare {
			a.controller.HandleSquareClick(sq)
		}
	}

	if color, waiting := a.controller.AwaitingPromotion(); waiting {
		a.picker.Show(color)
	}

	a.refreshEvaluation()
	return nil
}

// refreshEvaluation asks the bridge for the current win probability.
// The bridge's position cache makes this free between moves, so one
// call per frame costs an engine round-trip only when the board
// actually changed.
func (a *App) refreshEvaluation() {
	if !a.prefs.AnalysisEnabled {
		return
	}
	session := a.controller.Session()
	a.winrate = a.bridge.Evaluate(session.PositionID(), a.prefs.Budget())
}

// Draw renders the window.
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.SetScale(a.scale)

	screen.Fill(a.renderer.Theme().Background)
	a.renderer.DrawBoard(screen)

	session := a.controller.Session()
	pos := session.Position()

	if pos.InCheck() {
		a.renderer.DrawCheck(screen, pos.KingSquare(pos.SideToMove))
	}
	a.renderer.DrawHighlights(screen, a.controller.Selected(), a.controller.Targets(), session.LastMove())
	a.renderer.DrawPieces(screen, pos)
	a.renderer.DrawEvalBar(screen, a.winrate)

	if msg := statusMessage(session.Status(), pos.SideToMove); msg != "" {
		a.renderer.DrawStatusBanner(screen, msg)
	}

	a.picker.Draw(screen, a.renderer)
}

// statusMessage describes a finished game, or "" while play continues.
func statusMessage(st board.Status, sideToMove board.Color) string {
	switch st {
	case board.Checkmate:
		return fmt.Sprintf("Checkmate - %s wins", sideToMove.Other())
	case board.Stalemate:
		return "Draw by stalemate"
	case board.Draw:
		return "Draw"
	default:
		return ""
	}
}

// Layout returns the window dimensions, scaled for HiDPI displays.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.scale = ebiten.Monitor().DeviceScaleFactor()
	if a.scale < 1.0 {
		a.scale = 1.0
	}
	return int(float64(ScreenWidth) * a.scale), int(float64(ScreenHeight) * a.scale)
}

// Close persists the game and preferences and releases the engine.
func (a *App) Close() {
	a.bridge.Close()

	if a.storage == nil {
		return
	}
	session := a.controller.Session()
	if session.Status() == board.Ongoing && session.MoveCount() > 0 {
		if err := a.storage.SaveGame(session.Moves()); err != nil {
			log.Printf("Warning: Failed to save game: %v", err)
		}
	} else {
		if err := a.storage.ClearGame(); err != nil {
			log.Printf("Warning: Failed to clear saved game: %v", err)
		}
	}
	if err := a.storage.SavePreferences(a.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
	if err := a.storage.Close(); err != nil {
		log.Printf("Warning: Failed to close storage: %v", err)
	}
}
