// OpenPCB — Printed Circuit Board Editor
//
// A cross-platform desktop application for designing printed circuit boards.
// This phase ships the application shell and settings subsystem; the board
// editor itself arrives in a later phase.
//
// Build:
//
//	go build -o openpcb ./cmd/openpcb
//
// Cross-compile:
//
//	GOOS=windows GOARCH=amd64 go build -o openpcb.exe ./cmd/openpcb
//	GOOS=darwin  GOARCH=amd64 go build -o openpcb-darwin ./cmd/openpcb
package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/Monotoba/OpenPCB/internal/config"
	"github.com/Monotoba/OpenPCB/internal/logging"
	"github.com/Monotoba/OpenPCB/internal/ui"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	manager, err := config.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := manager.Config()

	// Scale environment must be set before the Fyne app exists.
	ui.ConfigureHiDPI(cfg.HiDPI)

	application := app.NewWithID("org.openpcb.openpcb")
	application.Settings().SetTheme(ui.NewOpenPCBTheme(cfg.Display, cfg.HiDPI))

	window := application.NewWindow("OpenPCB")
	appUI := ui.NewApp(application, window, manager)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	appUI.RestoreGeometry()
	window.CenterOnScreen()

	window.SetCloseIntercept(func() {
		appUI.SaveGeometry()
		window.Close()
	})

	window.ShowAndRun()
}
