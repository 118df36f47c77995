package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/Monotoba/OpenPCB/internal/model"
)

// showPreferencesDialog opens the settings dialog with one tab per settings
// group. Changes are collected into drafts and applied through the config
// manager when the user confirms; validation errors surface as error dialogs.
func (a *App) showPreferencesDialog() {
	cfg := a.cfg.Config()

	// Drafts start from the current values; entries write into them.
	display := cfg.Display
	hidpi := cfg.HiDPI
	app := cfg.Application

	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	stringEntry := func(val *string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(*val)
		e.OnChanged = func(text string) { *val = text }
		return e
	}

	boolCheck := func(val *bool) *widget.Check {
		c := widget.NewCheck("", func(b bool) { *val = b })
		c.Checked = *val
		return c
	}

	// --- Display tab ---
	unitsSelect := widget.NewSelect([]string{string(model.UnitsMillimeters), string(model.UnitsInches)},
		func(s string) { display.Units = model.Units(s) })
	unitsSelect.SetSelected(string(display.Units))

	schemeSelect := widget.NewSelect(
		[]string{string(model.ColorSchemeSystem), string(model.ColorSchemeLight), string(model.ColorSchemeDark)},
		func(s string) { display.ColorScheme = model.ColorScheme(s) })
	schemeSelect.SetSelected(string(display.ColorScheme))

	gridSection := widget.NewCard("Grid", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Show Grid"), boolCheck(&display.GridVisible),
			widget.NewLabel("Grid Size (mm)"), floatEntry(&display.GridSizeMM),
			widget.NewLabel("Subdivisions"), intEntry(&display.GridSubdivisions),
			widget.NewLabel("Snap to Grid"), boolCheck(&display.SnapToGrid),
		))

	viewSection := widget.NewCard("View", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Default Zoom"), floatEntry(&display.ZoomDefault),
			widget.NewLabel("Pan Speed"), floatEntry(&display.PanSpeed),
			widget.NewLabel("Zoom Speed"), floatEntry(&display.ZoomSpeed),
			widget.NewLabel("Units"), unitsSelect,
			widget.NewLabel("Decimal Places"), intEntry(&display.DecimalPlaces),
			widget.NewLabel("Antialiasing"), boolCheck(&display.Antialiasing),
			widget.NewLabel("Show Rulers"), boolCheck(&display.ShowRulers),
			widget.NewLabel("Show Origin"), boolCheck(&display.ShowOrigin),
		))

	colorSection := widget.NewCard("Colors", "Hex colors, e.g. #2b2b2b",
		container.NewGridWithColumns(2,
			widget.NewLabel("Background"), stringEntry(&display.BackgroundColor),
			widget.NewLabel("Grid"), stringEntry(&display.GridColor),
			widget.NewLabel("Cursor"), stringEntry(&display.CursorColor),
			widget.NewLabel("Selection"), stringEntry(&display.SelectionColor),
			widget.NewLabel("Color Scheme"), schemeSelect,
		))

	displayTab := container.NewVScroll(container.NewVBox(gridSection, viewSection, colorSection))

	// --- HiDPI tab ---
	modeSelect := widget.NewSelect(
		[]string{string(model.ScaleModeAuto), string(model.ScaleModeSystem), string(model.ScaleModeCustom)},
		func(s string) { hidpi.ScaleMode = model.ScaleMode(s) })
	modeSelect.SetSelected(string(hidpi.ScaleMode))

	hidpiTab := container.NewVScroll(container.NewVBox(
		widget.NewCard("Scaling", "Takes effect after restart",
			container.NewGridWithColumns(2,
				widget.NewLabel("Scale Mode"), modeSelect,
				widget.NewLabel("Custom Scale Factor"), floatEntry(&hidpi.CustomScaleFactor),
				widget.NewLabel("Font Scale Factor"), floatEntry(&hidpi.FontScaleFactor),
				widget.NewLabel("Enable HiDPI Scaling"), boolCheck(&hidpi.EnableHiDPIScaling),
				widget.NewLabel("High-Res Pixmaps"), boolCheck(&hidpi.UseHiDPIPixmaps),
				widget.NewLabel("Round Scale Factor"), boolCheck(&hidpi.RoundScaleFactor),
			)),
		widget.NewCard("Icons", "Sizes in logical pixels",
			container.NewGridWithColumns(2,
				widget.NewLabel("Toolbar Icon Size"), intEntry(&hidpi.ToolbarIconSize),
				widget.NewLabel("Menu Icon Size"), intEntry(&hidpi.MenuIconSize),
			)),
	))

	// --- Application tab ---
	applicationTab := container.NewVScroll(container.NewVBox(
		widget.NewCard("Startup", "",
			container.NewGridWithColumns(2,
				widget.NewLabel("Restore Last Session"), boolCheck(&app.RestoreLastSession),
				widget.NewLabel("Show Splash Screen"), boolCheck(&app.ShowSplashScreen),
				widget.NewLabel("Check for Updates"), boolCheck(&app.CheckUpdatesOnStartup),
			)),
		widget.NewCard("Autosave", "",
			container.NewGridWithColumns(2,
				widget.NewLabel("Enabled"), boolCheck(&app.AutosaveEnabled),
				widget.NewLabel("Interval (seconds)"), intEntry(&app.AutosaveIntervalSeconds),
			)),
		widget.NewCard("Projects", "",
			container.NewGridWithColumns(2,
				widget.NewLabel("Max Recent Projects"), intEntry(&app.RecentProjectsMax),
			)),
	))

	tabs := container.NewAppTabs(
		container.NewTabItem("Display", displayTab),
		container.NewTabItem("HiDPI", hidpiTab),
		container.NewTabItem("Application", applicationTab),
	)

	d := dialog.NewCustomConfirm("Preferences", "Apply", "Cancel", tabs, func(ok bool) {
		if !ok {
			return
		}
		if err := a.applyPreferences(display, hidpi, app); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refresh()
	}, a.window)
	d.Resize(fyne.NewSize(560, 640))
	d.Show()
}

// applyPreferences pushes the drafts through the manager one group at a time,
// stopping at the first validation or persistence error.
func (a *App) applyPreferences(display model.DisplaySettings, hidpi model.HiDPISettings, app model.ApplicationSettings) error {
	if err := a.cfg.UpdateDisplay(model.DisplayUpdate{
		GridVisible:      &display.GridVisible,
		GridSizeMM:       &display.GridSizeMM,
		GridSubdivisions: &display.GridSubdivisions,
		SnapToGrid:       &display.SnapToGrid,
		ZoomDefault:      &display.ZoomDefault,
		PanSpeed:         &display.PanSpeed,
		ZoomSpeed:        &display.ZoomSpeed,
		Units:            &display.Units,
		DecimalPlaces:    &display.DecimalPlaces,
		BackgroundColor:  &display.BackgroundColor,
		GridColor:        &display.GridColor,
		CursorColor:      &display.CursorColor,
		SelectionColor:   &display.SelectionColor,
		Antialiasing:     &display.Antialiasing,
		ShowRulers:       &display.ShowRulers,
		ShowOrigin:       &display.ShowOrigin,
		ColorScheme:      &display.ColorScheme,
	}); err != nil {
		return err
	}
	if err := a.cfg.UpdateHiDPI(model.HiDPIUpdate{
		ScaleMode:          &hidpi.ScaleMode,
		CustomScaleFactor:  &hidpi.CustomScaleFactor,
		FontScaleFactor:    &hidpi.FontScaleFactor,
		ToolbarIconSize:    &hidpi.ToolbarIconSize,
		MenuIconSize:       &hidpi.MenuIconSize,
		EnableHiDPIScaling: &hidpi.EnableHiDPIScaling,
		UseHiDPIPixmaps:    &hidpi.UseHiDPIPixmaps,
		RoundScaleFactor:   &hidpi.RoundScaleFactor,
	}); err != nil {
		return err
	}
	return a.cfg.UpdateApplication(model.ApplicationUpdate{
		RecentProjectsMax:       &app.RecentProjectsMax,
		AutosaveEnabled:         &app.AutosaveEnabled,
		AutosaveIntervalSeconds: &app.AutosaveIntervalSeconds,
		RestoreLastSession:      &app.RestoreLastSession,
		ShowSplashScreen:        &app.ShowSplashScreen,
		CheckUpdatesOnStartup:   &app.CheckUpdatesOnStartup,
	})
}
