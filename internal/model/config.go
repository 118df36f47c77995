package model

import (
	"fmt"
	"regexp"
	"strings"
)

// Units represents the measurement units used for display.
type Units string

const (
	UnitsMillimeters Units = "mm"
	UnitsInches      Units = "in"
)

func (u Units) valid() bool {
	return u == UnitsMillimeters || u == UnitsInches
}

// ColorScheme represents the application color scheme.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system" // Follow the system theme
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

func (c ColorScheme) valid() bool {
	return c == ColorSchemeSystem || c == ColorSchemeLight || c == ColorSchemeDark
}

// ScaleMode represents the HiDPI scaling behavior.
type ScaleMode string

const (
	ScaleModeAuto   ScaleMode = "auto"   // Toolkit automatic scaling
	ScaleModeSystem ScaleMode = "system" // Use the system DPI as-is
	ScaleModeCustom ScaleMode = "custom" // User-defined scale factor
)

func (s ScaleMode) valid() bool {
	return s == ScaleModeAuto || s == ScaleModeSystem || s == ScaleModeCustom
}

// ValidationError reports a settings field whose value violates its constraint.
type ValidationError struct {
	Field string
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %v", e.Field, e.Value)
}

func invalid(field string, value any) error {
	return &ValidationError{Field: field, Value: value}
}

// hexColorPattern matches "#" followed by exactly 3 or 6 hex digits.
var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// WindowGeometry holds the window position and size. The values come straight
// from the windowing system, so no cross-field constraint is enforced.
type WindowGeometry struct {
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	Maximized bool `json:"maximized"`
}

// DefaultWindowGeometry returns the initial window placement.
func DefaultWindowGeometry() WindowGeometry {
	return WindowGeometry{X: 100, Y: 100, Width: 1280, Height: 800}
}

// DisplaySettings holds viewer and rendering configuration.
type DisplaySettings struct {
	// Grid
	GridVisible      bool    `json:"grid_visible"`
	GridSizeMM       float64 `json:"grid_size_mm"`
	GridSubdivisions int     `json:"grid_subdivisions"`
	SnapToGrid       bool    `json:"snap_to_grid"`

	// Zoom and pan
	ZoomDefault float64 `json:"zoom_default"`
	PanSpeed    float64 `json:"pan_speed"`
	ZoomSpeed   float64 `json:"zoom_speed"`

	// Units
	Units         Units `json:"units"`
	DecimalPlaces int   `json:"decimal_places"`

	// Colors, hex "#rgb" or "#rrggbb", stored lowercase
	BackgroundColor string `json:"background_color"`
	GridColor       string `json:"grid_color"`
	CursorColor     string `json:"cursor_color"`
	SelectionColor  string `json:"selection_color"`

	Antialiasing bool `json:"antialiasing"`
	ShowRulers   bool `json:"show_rulers"`
	ShowOrigin   bool `json:"show_origin"`

	ColorScheme ColorScheme `json:"color_scheme"`
}

// DefaultDisplaySettings returns the standard dark viewer configuration.
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{
		GridVisible:      true,
		GridSizeMM:       1.0,
		GridSubdivisions: 10,
		SnapToGrid:       true,
		ZoomDefault:      1.0,
		PanSpeed:         1.0,
		ZoomSpeed:        1.2,
		Units:            UnitsMillimeters,
		DecimalPlaces:    3,
		BackgroundColor:  "#2b2b2b",
		GridColor:        "#3c3c3c",
		CursorColor:      "#ff9900",
		SelectionColor:   "#00aaff",
		Antialiasing:     true,
		ShowRulers:       true,
		ShowOrigin:       true,
		ColorScheme:      ColorSchemeSystem,
	}
}

// Validate checks every field against its declared constraint.
func (d DisplaySettings) Validate() error {
	if d.GridSizeMM <= 0 || d.GridSizeMM > 100 {
		return invalid("display.grid_size_mm", d.GridSizeMM)
	}
	if d.GridSubdivisions < 1 || d.GridSubdivisions > 10 {
		return invalid("display.grid_subdivisions", d.GridSubdivisions)
	}
	if d.ZoomDefault <= 0.1 || d.ZoomDefault > 10.0 {
		return invalid("display.zoom_default", d.ZoomDefault)
	}
	if d.PanSpeed <= 0.1 || d.PanSpeed > 5.0 {
		return invalid("display.pan_speed", d.PanSpeed)
	}
	if d.ZoomSpeed <= 0.1 || d.ZoomSpeed > 5.0 {
		return invalid("display.zoom_speed", d.ZoomSpeed)
	}
	if !d.Units.valid() {
		return invalid("display.units", d.Units)
	}
	if d.DecimalPlaces < 0 || d.DecimalPlaces > 6 {
		return invalid("display.decimal_places", d.DecimalPlaces)
	}
	for field, color := range map[string]string{
		"display.background_color": d.BackgroundColor,
		"display.grid_color":       d.GridColor,
		"display.cursor_color":     d.CursorColor,
		"display.selection_color":  d.SelectionColor,
	} {
		if !hexColorPattern.MatchString(color) {
			return invalid(field, color)
		}
	}
	if !d.ColorScheme.valid() {
		return invalid("display.color_scheme", d.ColorScheme)
	}
	return nil
}

// normalized returns a copy with hex colors lowercased.
func (d DisplaySettings) normalized() DisplaySettings {
	d.BackgroundColor = strings.ToLower(d.BackgroundColor)
	d.GridColor = strings.ToLower(d.GridColor)
	d.CursorColor = strings.ToLower(d.CursorColor)
	d.SelectionColor = strings.ToLower(d.SelectionColor)
	return d
}

// DisplayUpdate enumerates the DisplaySettings fields that may be overridden.
// Nil fields keep their current value.
type DisplayUpdate struct {
	GridVisible      *bool
	GridSizeMM       *float64
	GridSubdivisions *int
	SnapToGrid       *bool
	ZoomDefault      *float64
	PanSpeed         *float64
	ZoomSpeed        *float64
	Units            *Units
	DecimalPlaces    *int
	BackgroundColor  *string
	GridColor        *string
	CursorColor      *string
	SelectionColor   *string
	Antialiasing     *bool
	ShowRulers       *bool
	ShowOrigin       *bool
	ColorScheme      *ColorScheme
}

// With returns a new DisplaySettings with the given overrides applied and
// validated. The receiver is never modified.
func (d DisplaySettings) With(u DisplayUpdate) (DisplaySettings, error) {
	if u.GridVisible != nil {
		d.GridVisible = *u.GridVisible
	}
	if u.GridSizeMM != nil {
		d.GridSizeMM = *u.GridSizeMM
	}
	if u.GridSubdivisions != nil {
		d.GridSubdivisions = *u.GridSubdivisions
	}
	if u.SnapToGrid != nil {
		d.SnapToGrid = *u.SnapToGrid
	}
	if u.ZoomDefault != nil {
		d.ZoomDefault = *u.ZoomDefault
	}
	if u.PanSpeed != nil {
		d.PanSpeed = *u.PanSpeed
	}
	if u.ZoomSpeed != nil {
		d.ZoomSpeed = *u.ZoomSpeed
	}
	if u.Units != nil {
		d.Units = *u.Units
	}
	if u.DecimalPlaces != nil {
		d.DecimalPlaces = *u.DecimalPlaces
	}
	if u.BackgroundColor != nil {
		d.BackgroundColor = *u.BackgroundColor
	}
	if u.GridColor != nil {
		d.GridColor = *u.GridColor
	}
	if u.CursorColor != nil {
		d.CursorColor = *u.CursorColor
	}
	if u.SelectionColor != nil {
		d.SelectionColor = *u.SelectionColor
	}
	if u.Antialiasing != nil {
		d.Antialiasing = *u.Antialiasing
	}
	if u.ShowRulers != nil {
		d.ShowRulers = *u.ShowRulers
	}
	if u.ShowOrigin != nil {
		d.ShowOrigin = *u.ShowOrigin
	}
	if u.ColorScheme != nil {
		d.ColorScheme = *u.ColorScheme
	}
	d = d.normalized()
	if err := d.Validate(); err != nil {
		return DisplaySettings{}, err
	}
	return d, nil
}

// HiDPISettings holds high-DPI display configuration.
type HiDPISettings struct {
	ScaleMode         ScaleMode `json:"scale_mode"`
	CustomScaleFactor float64   `json:"custom_scale_factor"`
	FontScaleFactor   float64   `json:"font_scale_factor"`

	// Icon sizes in logical pixels
	ToolbarIconSize int `json:"toolbar_icon_size"`
	MenuIconSize    int `json:"menu_icon_size"`

	EnableHiDPIScaling bool `json:"enable_hidpi_scaling"`
	UseHiDPIPixmaps    bool `json:"use_hidpi_pixmaps"`
	RoundScaleFactor   bool `json:"round_scale_factor"` // false allows fractional scaling
}

// DefaultHiDPISettings returns automatic scaling with standard icon sizes.
func DefaultHiDPISettings() HiDPISettings {
	return HiDPISettings{
		ScaleMode:          ScaleModeAuto,
		CustomScaleFactor:  1.0,
		FontScaleFactor:    1.0,
		ToolbarIconSize:    24,
		MenuIconSize:       16,
		EnableHiDPIScaling: true,
		UseHiDPIPixmaps:    true,
	}
}

// Validate checks every field against its declared constraint.
func (h HiDPISettings) Validate() error {
	if !h.ScaleMode.valid() {
		return invalid("hidpi.scale_mode", h.ScaleMode)
	}
	if h.CustomScaleFactor < 0.5 || h.CustomScaleFactor > 4.0 {
		return invalid("hidpi.custom_scale_factor", h.CustomScaleFactor)
	}
	if h.FontScaleFactor < 0.5 || h.FontScaleFactor > 3.0 {
		return invalid("hidpi.font_scale_factor", h.FontScaleFactor)
	}
	if h.ToolbarIconSize < 16 || h.ToolbarIconSize > 128 {
		return invalid("hidpi.toolbar_icon_size", h.ToolbarIconSize)
	}
	if h.MenuIconSize < 12 || h.MenuIconSize > 64 {
		return invalid("hidpi.menu_icon_size", h.MenuIconSize)
	}
	return nil
}

// HiDPIUpdate enumerates the HiDPISettings fields that may be overridden.
type HiDPIUpdate struct {
	ScaleMode          *ScaleMode
	CustomScaleFactor  *float64
	FontScaleFactor    *float64
	ToolbarIconSize    *int
	MenuIconSize       *int
	EnableHiDPIScaling *bool
	UseHiDPIPixmaps    *bool
	RoundScaleFactor   *bool
}

// With returns a new HiDPISettings with the given overrides applied and validated.
func (h HiDPISettings) With(u HiDPIUpdate) (HiDPISettings, error) {
	if u.ScaleMode != nil {
		h.ScaleMode = *u.ScaleMode
	}
	if u.CustomScaleFactor != nil {
		h.CustomScaleFactor = *u.CustomScaleFactor
	}
	if u.FontScaleFactor != nil {
		h.FontScaleFactor = *u.FontScaleFactor
	}
	if u.ToolbarIconSize != nil {
		h.ToolbarIconSize = *u.ToolbarIconSize
	}
	if u.MenuIconSize != nil {
		h.MenuIconSize = *u.MenuIconSize
	}
	if u.EnableHiDPIScaling != nil {
		h.EnableHiDPIScaling = *u.EnableHiDPIScaling
	}
	if u.UseHiDPIPixmaps != nil {
		h.UseHiDPIPixmaps = *u.UseHiDPIPixmaps
	}
	if u.RoundScaleFactor != nil {
		h.RoundScaleFactor = *u.RoundScaleFactor
	}
	if err := h.Validate(); err != nil {
		return HiDPISettings{}, err
	}
	return h, nil
}

// MaxRecentFiles caps the recent files list.
const MaxRecentFiles = 10

// ApplicationSettings holds general application configuration.
type ApplicationSettings struct {
	WindowGeometry WindowGeometry `json:"window_geometry"`

	RecentFiles       []string `json:"recent_files"`
	RecentProjectsMax int      `json:"recent_projects_max"`

	AutosaveEnabled         bool `json:"autosave_enabled"`
	AutosaveIntervalSeconds int  `json:"autosave_interval_seconds"`

	RestoreLastSession    bool `json:"restore_last_session"`
	ShowSplashScreen      bool `json:"show_splash_screen"`
	CheckUpdatesOnStartup bool `json:"check_updates_on_startup"`
}

// DefaultApplicationSettings returns the standard startup behavior.
func DefaultApplicationSettings() ApplicationSettings {
	return ApplicationSettings{
		WindowGeometry:          DefaultWindowGeometry(),
		RecentFiles:             []string{},
		RecentProjectsMax:       10,
		AutosaveEnabled:         true,
		AutosaveIntervalSeconds: 300,
		RestoreLastSession:      true,
		ShowSplashScreen:        true,
		CheckUpdatesOnStartup:   true,
	}
}

// Validate checks every field against its declared constraint.
func (a ApplicationSettings) Validate() error {
	if len(a.RecentFiles) > MaxRecentFiles {
		return invalid("application.recent_files", len(a.RecentFiles))
	}
	if a.RecentProjectsMax < 5 || a.RecentProjectsMax > 50 {
		return invalid("application.recent_projects_max", a.RecentProjectsMax)
	}
	if a.AutosaveIntervalSeconds < 30 || a.AutosaveIntervalSeconds > 3600 {
		return invalid("application.autosave_interval_seconds", a.AutosaveIntervalSeconds)
	}
	return nil
}

// ApplicationUpdate enumerates the ApplicationSettings fields that may be overridden.
type ApplicationUpdate struct {
	WindowGeometry          *WindowGeometry
	RecentFiles             []string
	RecentProjectsMax       *int
	AutosaveEnabled         *bool
	AutosaveIntervalSeconds *int
	RestoreLastSession      *bool
	ShowSplashScreen        *bool
	CheckUpdatesOnStartup   *bool
}

// With returns a new ApplicationSettings with the given overrides applied and validated.
func (a ApplicationSettings) With(u ApplicationUpdate) (ApplicationSettings, error) {
	if u.WindowGeometry != nil {
		a.WindowGeometry = *u.WindowGeometry
	}
	if u.RecentFiles != nil {
		a.RecentFiles = append([]string(nil), u.RecentFiles...)
	}
	if u.RecentProjectsMax != nil {
		a.RecentProjectsMax = *u.RecentProjectsMax
	}
	if u.AutosaveEnabled != nil {
		a.AutosaveEnabled = *u.AutosaveEnabled
	}
	if u.AutosaveIntervalSeconds != nil {
		a.AutosaveIntervalSeconds = *u.AutosaveIntervalSeconds
	}
	if u.RestoreLastSession != nil {
		a.RestoreLastSession = *u.RestoreLastSession
	}
	if u.ShowSplashScreen != nil {
		a.ShowSplashScreen = *u.ShowSplashScreen
	}
	if u.CheckUpdatesOnStartup != nil {
		a.CheckUpdatesOnStartup = *u.CheckUpdatesOnStartup
	}
	if err := a.Validate(); err != nil {
		return ApplicationSettings{}, err
	}
	return a, nil
}

// WithRecentFile returns a copy with path moved to the front of the recent
// files list, de-duplicated and capped at MaxRecentFiles.
func (a ApplicationSettings) WithRecentFile(path string) ApplicationSettings {
	files := make([]string, 0, len(a.RecentFiles)+1)
	files = append(files, path)
	for _, f := range a.RecentFiles {
		if f != path {
			files = append(files, f)
		}
	}
	if len(files) > MaxRecentFiles {
		files = files[:MaxRecentFiles]
	}
	a.RecentFiles = files
	return a
}

// WorkspaceSettings holds workspace and tool configuration.
type WorkspaceSettings struct {
	ActiveProfile        string  `json:"active_profile"`
	LastUsedTool         *string `json:"last_used_tool"`
	LastProjectDirectory *string `json:"last_project_directory"`

	// Serialized dock layout; nil means no saved layout
	DockLayout []byte `json:"dock_layout"`

	ShowLayerPanel      bool `json:"show_layer_panel"`
	ShowPropertiesPanel bool `json:"show_properties_panel"`
	ShowToolPanel       bool `json:"show_tool_panel"`
}

// DefaultWorkspaceSettings returns the default workspace with all panels visible.
func DefaultWorkspaceSettings() WorkspaceSettings {
	return WorkspaceSettings{
		ActiveProfile:       "default",
		ShowLayerPanel:      true,
		ShowPropertiesPanel: true,
		ShowToolPanel:       true,
	}
}

// Validate is provided for uniformity; WorkspaceSettings has no range constraints.
func (w WorkspaceSettings) Validate() error {
	return nil
}

// WorkspaceUpdate enumerates the WorkspaceSettings fields that may be
// overridden. The Clear flags reset the optional fields to absent.
type WorkspaceUpdate struct {
	ActiveProfile             *string
	LastUsedTool              *string
	ClearLastUsedTool         bool
	LastProjectDirectory      *string
	ClearLastProjectDirectory bool
	DockLayout                []byte
	ClearDockLayout           bool
	ShowLayerPanel            *bool
	ShowPropertiesPanel       *bool
	ShowToolPanel             *bool
}

// With returns a new WorkspaceSettings with the given overrides applied.
func (w WorkspaceSettings) With(u WorkspaceUpdate) (WorkspaceSettings, error) {
	if u.ActiveProfile != nil {
		w.ActiveProfile = *u.ActiveProfile
	}
	switch {
	case u.ClearLastUsedTool:
		w.LastUsedTool = nil
	case u.LastUsedTool != nil:
		tool := *u.LastUsedTool
		w.LastUsedTool = &tool
	}
	switch {
	case u.ClearLastProjectDirectory:
		w.LastProjectDirectory = nil
	case u.LastProjectDirectory != nil:
		dir := *u.LastProjectDirectory
		w.LastProjectDirectory = &dir
	}
	switch {
	case u.ClearDockLayout:
		w.DockLayout = nil
	case u.DockLayout != nil:
		w.DockLayout = append([]byte(nil), u.DockLayout...)
	}
	if u.ShowLayerPanel != nil {
		w.ShowLayerPanel = *u.ShowLayerPanel
	}
	if u.ShowPropertiesPanel != nil {
		w.ShowPropertiesPanel = *u.ShowPropertiesPanel
	}
	if u.ShowToolPanel != nil {
		w.ShowToolPanel = *u.ShowToolPanel
	}
	if err := w.Validate(); err != nil {
		return WorkspaceSettings{}, err
	}
	return w, nil
}

// SchemaVersion identifies the persisted settings format.
const SchemaVersion = 1

// RootConfig is the full settings tree. Instances are value types and are
// never modified after construction; every update produces a new tree.
type RootConfig struct {
	SchemaVersion int `json:"schema_version"`

	Application ApplicationSettings `json:"application"`
	Display     DisplaySettings     `json:"display"`
	HiDPI       HiDPISettings       `json:"hidpi"`
	Workspace   WorkspaceSettings   `json:"workspace"`
}

// DefaultConfig returns the all-defaults settings tree.
func DefaultConfig() RootConfig {
	return RootConfig{
		SchemaVersion: SchemaVersion,
		Application:   DefaultApplicationSettings(),
		Display:       DefaultDisplaySettings(),
		HiDPI:         DefaultHiDPISettings(),
		Workspace:     DefaultWorkspaceSettings(),
	}
}

// Validate checks the schema version and every settings group.
func (c RootConfig) Validate() error {
	if c.SchemaVersion != SchemaVersion {
		return invalid("schema_version", c.SchemaVersion)
	}
	if err := c.Application.Validate(); err != nil {
		return err
	}
	if err := c.Display.Validate(); err != nil {
		return err
	}
	if err := c.HiDPI.Validate(); err != nil {
		return err
	}
	return c.Workspace.Validate()
}

// Normalized returns a copy with derived canonical forms applied (lowercased
// hex colors). Used when accepting trees from outside the package, e.g. decode.
func (c RootConfig) Normalized() RootConfig {
	c.Display = c.Display.normalized()
	return c
}

// WithApplication returns a new tree with the application group replaced.
func (c RootConfig) WithApplication(a ApplicationSettings) RootConfig {
	c.Application = a
	return c
}

// WithDisplay returns a new tree with the display group replaced.
func (c RootConfig) WithDisplay(d DisplaySettings) RootConfig {
	c.Display = d
	return c
}

// WithHiDPI returns a new tree with the hidpi group replaced.
func (c RootConfig) WithHiDPI(h HiDPISettings) RootConfig {
	c.HiDPI = h
	return c
}

// WithWorkspace returns a new tree with the workspace group replaced.
func (c RootConfig) WithWorkspace(w WorkspaceSettings) RootConfig {
	c.Workspace = w
	return c
}
