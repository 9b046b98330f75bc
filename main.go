// EvalBoard - an interactive chess board with live engine evaluation
package main

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/evalboard/evalboard/internal/ui"
)

func main() {
	app := ui.NewApp()
	defer app.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("EvalBoard")

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
