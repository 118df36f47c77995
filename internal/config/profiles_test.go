package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/Monotoba/OpenPCB/internal/model"
)

func TestBuiltInProfilesMatchPresets(t *testing.T) {
	profiles := BuiltInProfiles()
	if len(profiles) != len(model.PresetNames()) {
		t.Fatalf("expected %d built-in profiles, got %d", len(model.PresetNames()), len(profiles))
	}
	for _, p := range profiles {
		if !p.IsBuiltIn {
			t.Errorf("profile %q should be marked built-in", p.Name)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("built-in profile %q should validate: %v", p.Name, err)
		}
	}
}

func TestSaveAndLoadCustomProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")

	light, _ := model.GetPreset("light")
	p := NewProfile("studio", light.Display, light.HiDPI)
	if p.ID == "" || len(p.ID) != 8 {
		t.Fatalf("expected 8-char profile id, got %q", p.ID)
	}

	if err := SaveCustomProfiles(path, []Profile{p}); err != nil {
		t.Fatalf("SaveCustomProfiles failed: %v", err)
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(loaded))
	}
	if loaded[0].Name != "studio" {
		t.Errorf("expected name studio, got %s", loaded[0].Name)
	}
	if loaded[0].IsBuiltIn {
		t.Error("loaded profiles must not be marked built-in")
	}
	if !reflect.DeepEqual(loaded[0].Display, light.Display) {
		t.Error("display settings did not round trip")
	}
}

func TestLoadCustomProfilesMissingFile(t *testing.T) {
	profiles, err := LoadCustomProfiles(filepath.Join(t.TempDir(), "profiles.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("expected empty slice, got %d profiles", len(profiles))
	}
}

func TestLoadCustomProfilesRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	bad := []byte(`[{"id":"x","name":"broken","display":{"grid_size_mm":-1},"hidpi":{}}]`)
	if err := os.WriteFile(path, bad, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCustomProfiles(path); err == nil {
		t.Error("expected validation error for out-of-range profile settings")
	}
}

func TestManagerProfilesIncludesCustom(t *testing.T) {
	m := newTestManager(t)

	dark, _ := model.GetPreset("high-contrast")
	custom := NewProfile("bench", dark.Display, dark.HiDPI)
	if err := SaveCustomProfiles(m.ProfilesPath(), []Profile{custom}); err != nil {
		t.Fatal(err)
	}

	profiles := m.Profiles()
	if len(profiles) != len(model.PresetNames())+1 {
		t.Fatalf("expected %d profiles, got %d", len(model.PresetNames())+1, len(profiles))
	}
	last := profiles[len(profiles)-1]
	if last.Name != "bench" || last.IsBuiltIn {
		t.Errorf("custom profile not appended correctly: %+v", last)
	}
}

func TestApplyProfile(t *testing.T) {
	m := newTestManager(t)

	preset, _ := model.GetPreset("4k")
	p := Profile{ID: "4k", Name: "4k", Display: preset.Display, HiDPI: preset.HiDPI, IsBuiltIn: true}
	if err := m.ApplyProfile(p); err != nil {
		t.Fatalf("ApplyProfile failed: %v", err)
	}

	cfg := m.Config()
	if cfg.Workspace.ActiveProfile != "4k" {
		t.Errorf("expected active_profile=4k, got %s", cfg.Workspace.ActiveProfile)
	}
	if cfg.HiDPI.CustomScaleFactor != 2.0 {
		t.Errorf("expected custom_scale_factor=2.0, got %f", cfg.HiDPI.CustomScaleFactor)
	}
	if !reflect.DeepEqual(cfg.Display, preset.Display) {
		t.Error("display settings not applied")
	}

	// Persisted, so a fresh manager sees the profile.
	reopened, err := NewManager(Options{
		ConfigDir: m.ConfigDir(),
		CacheDir:  m.CacheDir(),
		DataDir:   m.DataDir(),
		Logger:    zap.NewNop(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if reopened.Config().Workspace.ActiveProfile != "4k" {
		t.Error("applied profile was not persisted")
	}
}
