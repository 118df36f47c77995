package model

// Built-in display themes used by the preset registry.

func displayDarkTheme() DisplaySettings {
	d := DefaultDisplaySettings()
	d.BackgroundColor = "#1e1e1e"
	d.GridColor = "#2d2d2d"
	d.CursorColor = "#ff9900"
	d.SelectionColor = "#00aaff"
	d.ColorScheme = ColorSchemeDark
	return d
}

func displayLightTheme() DisplaySettings {
	d := DefaultDisplaySettings()
	d.BackgroundColor = "#ffffff"
	d.GridColor = "#e0e0e0"
	d.CursorColor = "#ff6600"
	d.SelectionColor = "#0080ff"
	d.ColorScheme = ColorSchemeLight
	return d
}

func displayHighContrast() DisplaySettings {
	d := DefaultDisplaySettings()
	d.BackgroundColor = "#000000"
	d.GridColor = "#404040"
	d.CursorColor = "#ffff00"
	d.SelectionColor = "#00ffff"
	d.Antialiasing = false // sharper on some displays
	d.ColorScheme = ColorSchemeDark
	return d
}

func hidpi4K() HiDPISettings {
	h := DefaultHiDPISettings()
	h.ScaleMode = ScaleModeCustom
	h.CustomScaleFactor = 2.0
	h.FontScaleFactor = 1.5
	h.ToolbarIconSize = 32
	h.MenuIconSize = 20
	return h
}

func hidpiDisabled() HiDPISettings {
	h := DefaultHiDPISettings()
	h.ScaleMode = ScaleModeSystem
	h.EnableHiDPIScaling = false
	h.UseHiDPIPixmaps = false
	h.CustomScaleFactor = 1.0
	return h
}

// PresetNames lists the available preset names in menu order.
func PresetNames() []string {
	return []string{"default", "light", "high-contrast", "4k", "no-scaling"}
}

// GetPreset returns a fully-formed settings tree for a named preset.
// The second return value is false when the name is unknown.
//
// Available presets:
//   - "default": standard dark theme, auto HiDPI
//   - "light": light theme, auto HiDPI
//   - "high-contrast": high contrast theme, auto HiDPI
//   - "4k": dark theme, optimized for 4K displays
//   - "no-scaling": dark theme, HiDPI scaling disabled
func GetPreset(name string) (RootConfig, bool) {
	switch name {
	case "default":
		return DefaultConfig(), true
	case "light":
		return DefaultConfig().WithDisplay(displayLightTheme()), true
	case "high-contrast":
		return DefaultConfig().WithDisplay(displayHighContrast()), true
	case "4k":
		return DefaultConfig().WithDisplay(displayDarkTheme()).WithHiDPI(hidpi4K()), true
	case "no-scaling":
		return DefaultConfig().WithDisplay(displayDarkTheme()).WithHiDPI(hidpiDisabled()), true
	default:
		return RootConfig{}, false
	}
}
