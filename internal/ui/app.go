package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/Monotoba/OpenPCB/internal/config"
	"github.com/Monotoba/OpenPCB/internal/model"
	"github.com/Monotoba/OpenPCB/internal/version"
)

// App holds the application shell and its UI references. All settings reads
// and writes go through the config manager; the shell never touches the
// settings file directly.
type App struct {
	app    fyne.App
	window fyne.Window
	cfg    *config.Manager

	statusLabel *widget.Label
}

func NewApp(application fyne.App, window fyne.Window, manager *config.Manager) *App {
	return &App{
		app:    application,
		window: window,
		cfg:    manager,
	}
}

// SetupMenus creates the native menu bar.
func (a *App) SetupMenus() {
	cfg := a.cfg.Config()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Board", func() {
			a.setStatus("Board editing is not implemented yet")
		}),
		fyne.NewMenuItem("Open Board...", func() {
			a.openBoard()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", func() {
			a.showPreferencesDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	layerItem := fyne.NewMenuItem("Layer Panel", nil)
	layerItem.Checked = cfg.Workspace.ShowLayerPanel
	layerItem.Action = func() { a.togglePanel(layerPanel) }

	propsItem := fyne.NewMenuItem("Properties Panel", nil)
	propsItem.Checked = cfg.Workspace.ShowPropertiesPanel
	propsItem.Action = func() { a.togglePanel(propertiesPanel) }

	toolItem := fyne.NewMenuItem("Tool Panel", nil)
	toolItem.Checked = cfg.Workspace.ShowToolPanel
	toolItem.Action = func() { a.togglePanel(toolPanel) }

	gridItem := fyne.NewMenuItem("Show Grid", nil)
	gridItem.Checked = cfg.Display.GridVisible
	gridItem.Action = func() {
		visible := !a.cfg.Config().Display.GridVisible
		if err := a.cfg.UpdateDisplay(model.DisplayUpdate{GridVisible: &visible}); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refresh()
	}

	viewMenu := fyne.NewMenu("View", layerItem, propsItem, toolItem,
		fyne.NewMenuItemSeparator(), gridItem)

	profileItems := make([]*fyne.MenuItem, 0)
	for _, p := range a.cfg.Profiles() {
		profile := p
		item := fyne.NewMenuItem(profile.Name, func() {
			if err := a.cfg.ApplyProfile(profile); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.refresh()
		})
		item.Checked = profile.Name == cfg.Workspace.ActiveProfile
		profileItems = append(profileItems, item)
	}
	profilesItem := fyne.NewMenuItem("Profiles", nil)
	profilesItem.ChildMenu = fyne.NewMenu("", profileItems...)

	toolsMenu := fyne.NewMenu("Tools",
		profilesItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Settings to Defaults", func() {
			dialog.ShowConfirm("Reset Settings",
				"Reset all settings to their default values?",
				func(ok bool) {
					if !ok {
						return
					}
					if err := a.cfg.ResetToDefaults(); err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.refresh()
				}, a.window)
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, toolsMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About OpenPCB",
		"OpenPCB — Printed Circuit Board Editor\n\n"+
			"A cross-platform desktop application for designing\n"+
			"printed circuit boards.\n\n"+
			"Version "+version.Full(),
		a.window,
	)
}

type panelKind int

const (
	layerPanel panelKind = iota
	propertiesPanel
	toolPanel
)

func (a *App) togglePanel(kind panelKind) {
	ws := a.cfg.Config().Workspace
	var update model.WorkspaceUpdate
	switch kind {
	case layerPanel:
		show := !ws.ShowLayerPanel
		update.ShowLayerPanel = &show
	case propertiesPanel:
		show := !ws.ShowPropertiesPanel
		update.ShowPropertiesPanel = &show
	case toolPanel:
		show := !ws.ShowToolPanel
		update.ShowToolPanel = &show
	}
	if err := a.cfg.UpdateWorkspace(update); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.refresh()
}

func (a *App) openBoard() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		app := a.cfg.Config().Application.WithRecentFile(path)
		if err := a.cfg.UpdateApplication(model.ApplicationUpdate{RecentFiles: app.RecentFiles}); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setStatus(fmt.Sprintf("Opened %s (board editing not implemented yet)", path))
	}, a.window)
}

// Build constructs the shell layout: side panels per workspace settings, a
// status bar, and the central viewer placeholder.
func (a *App) Build() fyne.CanvasObject {
	cfg := a.cfg.Config()

	center := widget.NewLabelWithStyle(
		"OpenPCB Viewer\n\n(board editing will be integrated in a later phase)",
		fyne.TextAlignCenter, fyne.TextStyle{Italic: true},
	)

	var left, right, bottom fyne.CanvasObject
	if cfg.Workspace.ShowLayerPanel {
		left = widget.NewCard("Layers", "", widget.NewLabel("Layer panel"))
	}
	if cfg.Workspace.ShowPropertiesPanel {
		right = widget.NewCard("Properties", "", widget.NewLabel("Properties panel"))
	}

	a.statusLabel = widget.NewLabel("Ready")
	statusBar := container.NewHBox(
		a.statusLabel,
		widget.NewSeparator(),
		widget.NewLabel(fmt.Sprintf("Units: %s", cfg.Display.Units)),
		widget.NewLabel(fmt.Sprintf("Grid: %.*f mm", cfg.Display.DecimalPlaces, cfg.Display.GridSizeMM)),
	)
	if cfg.Workspace.ShowToolPanel {
		tools := widget.NewCard("Tools", "", widget.NewLabel("Tool panel"))
		bottom = container.NewVBox(tools, statusBar)
	} else {
		bottom = statusBar
	}

	return container.NewBorder(nil, bottom, left, right, center)
}

// refresh rebuilds the content and menus after a settings change.
func (a *App) refresh() {
	a.window.SetContent(a.Build())
	a.SetupMenus()
}

func (a *App) setStatus(msg string) {
	if a.statusLabel != nil {
		a.statusLabel.SetText(msg)
	}
}

// RestoreGeometry sizes the window from the saved geometry. Position is left
// to the window manager; Fyne does not expose window placement.
func (a *App) RestoreGeometry() {
	geom := a.cfg.Config().Application.WindowGeometry
	a.window.Resize(fyne.NewSize(float32(geom.Width), float32(geom.Height)))
	if geom.Maximized {
		a.window.SetFullScreen(true)
	}
}

// SaveGeometry records the current window size in the application settings.
func (a *App) SaveGeometry() {
	size := a.window.Canvas().Size()
	geom := a.cfg.Config().Application.WindowGeometry
	geom.Width = int(size.Width)
	geom.Height = int(size.Height)
	geom.Maximized = a.window.FullScreen()
	if err := a.cfg.UpdateApplication(model.ApplicationUpdate{WindowGeometry: &geom}); err != nil {
		a.setStatus(fmt.Sprintf("Could not save window geometry: %v", err))
	}
}
