// Package ui provides the OpenPCB application shell.
//
// This file defines a Fyne theme driven by the display and HiDPI settings.
package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/Monotoba/OpenPCB/internal/model"
)

// OpenPCBTheme wraps the default Fyne theme, forcing the configured
// light/dark variant and scaling font sizes per the HiDPI settings.
type OpenPCBTheme struct {
	base         fyne.Theme
	variant      fyne.ThemeVariant
	followSystem bool
	fontScale    float32
}

// NewOpenPCBTheme builds a theme from the current settings tree.
func NewOpenPCBTheme(display model.DisplaySettings, hidpi model.HiDPISettings) *OpenPCBTheme {
	t := &OpenPCBTheme{
		base:      theme.DefaultTheme(),
		fontScale: float32(hidpi.FontScaleFactor),
	}
	switch display.ColorScheme {
	case model.ColorSchemeLight:
		t.variant = theme.VariantLight
	case model.ColorSchemeDark:
		t.variant = theme.VariantDark
	default:
		t.followSystem = true
	}
	return t
}

// Color delegates to the base theme, substituting the configured variant
// unless the color scheme follows the system.
func (t *OpenPCBTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.followSystem {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *OpenPCBTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *OpenPCBTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size scales text sizes by the configured font scale factor.
func (t *OpenPCBTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText, theme.SizeNameCaptionText,
		theme.SizeNameHeadingText, theme.SizeNameSubHeadingText:
		return t.base.Size(name) * t.fontScale
	default:
		return t.base.Size(name)
	}
}
