// BoxForge — Parametric Finger-Joint Box Generator
//
// A cross-platform desktop application for designing finger-jointed
// (tabbed) boxes and exporting cut-ready SVG, DXF, PDF and GCode.
//
// Build:
//   go build -o boxforge ./cmd/boxforge
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o boxforge.exe ./cmd/boxforge
//   GOOS=darwin  GOARCH=amd64 go build -o boxforge-darwin ./cmd/boxforge
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/BoxForge/internal/ui"
)

func main() {
	application := app.NewWithID("com.piwi3910.boxforge")
	window := application.NewWindow("BoxForge — Parametric Box Generator")

	appUI := ui.NewApp(window)
	appUI.SetupMenus() // Setup the native menu bar
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
