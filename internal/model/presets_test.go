package model

import "testing"

func TestGetPresetDefault(t *testing.T) {
	cfg, ok := GetPreset("default")
	if !ok {
		t.Fatal("default preset should exist")
	}
	if cfg.Display.ColorScheme != ColorSchemeSystem {
		t.Errorf("expected color_scheme=system, got %s", cfg.Display.ColorScheme)
	}
}

func TestGetPresetLight(t *testing.T) {
	cfg, ok := GetPreset("light")
	if !ok {
		t.Fatal("light preset should exist")
	}
	if cfg.Display.ColorScheme != ColorSchemeLight {
		t.Errorf("expected color_scheme=light, got %s", cfg.Display.ColorScheme)
	}
	if cfg.Display.BackgroundColor != "#ffffff" {
		t.Errorf("expected background #ffffff, got %s", cfg.Display.BackgroundColor)
	}
}

func TestGetPresetHighContrast(t *testing.T) {
	cfg, ok := GetPreset("high-contrast")
	if !ok {
		t.Fatal("high-contrast preset should exist")
	}
	if cfg.Display.BackgroundColor != "#000000" {
		t.Errorf("expected background #000000, got %s", cfg.Display.BackgroundColor)
	}
	if cfg.Display.Antialiasing {
		t.Error("expected antialiasing disabled")
	}
}

func TestGetPreset4K(t *testing.T) {
	cfg, ok := GetPreset("4k")
	if !ok {
		t.Fatal("4k preset should exist")
	}
	if cfg.HiDPI.CustomScaleFactor != 2.0 {
		t.Errorf("expected custom_scale_factor=2.0, got %f", cfg.HiDPI.CustomScaleFactor)
	}
	if cfg.HiDPI.ToolbarIconSize != 32 {
		t.Errorf("expected toolbar_icon_size=32, got %d", cfg.HiDPI.ToolbarIconSize)
	}
	if cfg.HiDPI.ScaleMode != ScaleModeCustom {
		t.Errorf("expected scale_mode=custom, got %s", cfg.HiDPI.ScaleMode)
	}
}

func TestGetPresetNoScaling(t *testing.T) {
	cfg, ok := GetPreset("no-scaling")
	if !ok {
		t.Fatal("no-scaling preset should exist")
	}
	if cfg.HiDPI.EnableHiDPIScaling || cfg.HiDPI.UseHiDPIPixmaps {
		t.Error("expected scaling flags disabled")
	}
	if cfg.HiDPI.ScaleMode != ScaleModeSystem {
		t.Errorf("expected scale_mode=system, got %s", cfg.HiDPI.ScaleMode)
	}
}

func TestGetPresetUnknown(t *testing.T) {
	if _, ok := GetPreset("nonexistent"); ok {
		t.Error("unknown preset name should report not found")
	}
}

func TestAllPresetsValidate(t *testing.T) {
	for _, name := range PresetNames() {
		cfg, ok := GetPreset(name)
		if !ok {
			t.Errorf("preset %q missing from registry", name)
			continue
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q should validate: %v", name, err)
		}
	}
}
