package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Monotoba/OpenPCB/internal/model"
)

// ProfilesFileName is the name of the custom profiles file inside the config
// directory.
const ProfilesFileName = "profiles.json"

// Profile is a named bundle of display and HiDPI settings that can be applied
// to the current configuration as a unit. Built-in profiles mirror the presets;
// custom profiles are persisted beside the settings file.
type Profile struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Display   model.DisplaySettings `json:"display"`
	HiDPI     model.HiDPISettings   `json:"hidpi"`
	IsBuiltIn bool                  `json:"is_built_in"`
}

// NewProfile creates a custom profile with a fresh short ID.
func NewProfile(name string, display model.DisplaySettings, hidpi model.HiDPISettings) Profile {
	return Profile{
		ID:      uuid.New().String()[:8],
		Name:    name,
		Display: display,
		HiDPI:   hidpi,
	}
}

// Validate checks the profile's settings groups.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile %s has no name", p.ID)
	}
	if err := p.Display.Validate(); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	if err := p.HiDPI.Validate(); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return nil
}

// BuiltInProfiles returns one profile per preset, in menu order.
func BuiltInProfiles() []Profile {
	names := model.PresetNames()
	profiles := make([]Profile, 0, len(names))
	for _, name := range names {
		preset, ok := model.GetPreset(name)
		if !ok {
			continue
		}
		profiles = append(profiles, Profile{
			ID:        name,
			Name:      name,
			Display:   preset.Display,
			HiDPI:     preset.HiDPI,
			IsBuiltIn: true,
		})
	}
	return profiles
}

// ProfilesPath returns the path of the custom profiles file.
func (m *Manager) ProfilesPath() string {
	return filepath.Join(m.configDir, ProfilesFileName)
}

// SaveCustomProfiles writes custom profiles to path atomically.
func SaveCustomProfiles(path string, profiles []Profile) error {
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'), 0644)
}

// LoadCustomProfiles reads custom profiles from path. A missing file yields an
// empty slice. Every loaded profile is validated and unmarked as built-in.
func LoadCustomProfiles(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Profile{}, nil
		}
		return nil, err
	}

	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	for i := range profiles {
		if err := profiles[i].Validate(); err != nil {
			return nil, err
		}
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// Profiles returns the built-in profiles followed by any custom profiles from
// the config directory. A corrupt profiles file is logged and skipped.
func (m *Manager) Profiles() []Profile {
	profiles := BuiltInProfiles()
	custom, err := LoadCustomProfiles(m.ProfilesPath())
	if err != nil {
		m.log.Error("failed to load custom profiles", zap.String("path", m.ProfilesPath()), zap.Error(err))
		return profiles
	}
	return append(profiles, custom...)
}

// ApplyProfile replaces the display and hidpi groups with the profile's
// settings, records it as the active profile, and persists the new tree.
func (m *Manager) ApplyProfile(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.configLocked()
	ws := cur.Workspace
	ws.ActiveProfile = p.Name
	next := cur.WithDisplay(p.Display).WithHiDPI(p.HiDPI).WithWorkspace(ws)
	m.log.Info("applying profile", zap.String("profile", p.Name))
	return m.swapLocked(next)
}
