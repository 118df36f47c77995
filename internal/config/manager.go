package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Monotoba/OpenPCB/internal/logging"
	"github.com/Monotoba/OpenPCB/internal/model"
)

// SettingsFileName is the name of the per-user settings file inside the
// config directory.
const SettingsFileName = "settings.json"

// Manager owns the current settings tree and mediates every read and write.
// All operations hold a single mutex across both the in-memory swap and the
// file write, so concurrent updates to different groups still serialize and
// no update is ever lost. Methods named *Locked assume the mutex is held.
//
// Trees handed out by Config are values; a caller keeps a consistent snapshot
// even while another goroutine updates the manager.
type Manager struct {
	mu      sync.Mutex
	current *model.RootConfig

	configDir string
	cacheDir  string
	dataDir   string
	file      string

	log *zap.Logger
}

// Options configures Manager construction. Zero-value fields fall back to the
// platform per-user directories and the package logger.
type Options struct {
	ConfigDir string
	CacheDir  string
	DataDir   string
	Logger    *zap.Logger
}

// NewManager creates a manager and ensures the config, cache and data
// directories exist. No settings are loaded until first use.
func NewManager(opts Options) (*Manager, error) {
	m := &Manager{
		configDir: opts.ConfigDir,
		cacheDir:  opts.CacheDir,
		dataDir:   opts.DataDir,
		log:       opts.Logger,
	}
	if m.log == nil {
		m.log = logging.GetLogger()
	}

	if m.configDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		m.configDir = filepath.Join(base, "openpcb")
	}
	if m.cacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		m.cacheDir = filepath.Join(base, "openpcb")
	}
	if m.dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		m.dataDir = filepath.Join(home, ".openpcb")
	}

	for _, dir := range []string{m.configDir, m.cacheDir, m.dataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	m.file = filepath.Join(m.configDir, SettingsFileName)

	m.log.Info("config manager initialized",
		zap.String("config_dir", m.configDir),
		zap.String("cache_dir", m.cacheDir),
		zap.String("data_dir", m.dataDir),
	)
	return m, nil
}

var (
	defaultOnce    sync.Once
	defaultManager *Manager
	defaultErr     error
)

// Default returns the process-wide manager, constructing it on first call.
// Every caller receives the same instance.
func Default() (*Manager, error) {
	defaultOnce.Do(func() {
		defaultManager, defaultErr = NewManager(Options{})
	})
	return defaultManager, defaultErr
}

// ConfigDir returns the directory holding the settings file.
func (m *Manager) ConfigDir() string { return m.configDir }

// CacheDir returns the per-user cache directory.
func (m *Manager) CacheDir() string { return m.cacheDir }

// DataDir returns the per-user data directory.
func (m *Manager) DataDir() string { return m.dataDir }

// SettingsPath returns the path of the settings file.
func (m *Manager) SettingsPath() string { return m.file }

// Config returns the current settings tree, loading it from disk on first use.
func (m *Manager) Config() model.RootConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configLocked()
}

func (m *Manager) configLocked() model.RootConfig {
	if m.current == nil {
		cfg := m.loadLocked()
		m.current = &cfg
	}
	return *m.current
}

// Load reads the settings file and makes its tree current. A missing file
// yields defaults which are persisted; a corrupt or unreadable file yields
// defaults without touching the file, so the broken content stays available
// for inspection.
func (m *Manager) Load() model.RootConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg := m.loadLocked()
	m.current = &cfg
	return cfg
}

func (m *Manager) loadLocked() model.RootConfig {
	data, err := os.ReadFile(m.file)
	if errors.Is(err, os.ErrNotExist) {
		m.log.Info("no settings file found, creating defaults", zap.String("path", m.file))
		cfg := model.DefaultConfig()
		if err := m.saveLocked(cfg); err != nil {
			m.log.Error("failed to write default settings", zap.String("path", m.file), zap.Error(err))
		}
		return cfg
	}
	if err != nil {
		m.log.Error("failed to read settings, using defaults", zap.String("path", m.file), zap.Error(err))
		return model.DefaultConfig()
	}

	cfg, err := Decode(data)
	if err != nil {
		m.log.Error("failed to decode settings, using defaults", zap.String("path", m.file), zap.Error(err))
		return model.DefaultConfig()
	}
	m.log.Info("settings loaded", zap.String("path", m.file))
	return cfg
}

// Save persists the current tree. It is a no-op when nothing has been loaded
// yet. I/O errors are returned to the caller, never swallowed.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		m.log.Warn("no configuration to save")
		return nil
	}
	return m.saveLocked(*m.current)
}

// SaveConfig persists the given tree without making it current.
func (m *Manager) SaveConfig(cfg model.RootConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(cfg)
}

func (m *Manager) saveLocked(cfg model.RootConfig) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(m.file, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	m.log.Debug("settings saved", zap.String("path", m.file))
	return nil
}

// UpdateApplication replaces the application group with a copy carrying the
// given overrides, makes the new tree current and persists it.
func (m *Manager) UpdateApplication(u model.ApplicationUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.configLocked()
	next, err := cur.Application.With(u)
	if err != nil {
		return err
	}
	return m.swapLocked(cur.WithApplication(next))
}

// UpdateDisplay replaces the display group with a copy carrying the given
// overrides, makes the new tree current and persists it.
func (m *Manager) UpdateDisplay(u model.DisplayUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.configLocked()
	next, err := cur.Display.With(u)
	if err != nil {
		return err
	}
	return m.swapLocked(cur.WithDisplay(next))
}

// UpdateHiDPI replaces the hidpi group with a copy carrying the given
// overrides, makes the new tree current and persists it.
func (m *Manager) UpdateHiDPI(u model.HiDPIUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.configLocked()
	next, err := cur.HiDPI.With(u)
	if err != nil {
		return err
	}
	return m.swapLocked(cur.WithHiDPI(next))
}

// UpdateWorkspace replaces the workspace group with a copy carrying the given
// overrides, makes the new tree current and persists it.
func (m *Manager) UpdateWorkspace(u model.WorkspaceUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.configLocked()
	next, err := cur.Workspace.With(u)
	if err != nil {
		return err
	}
	return m.swapLocked(cur.WithWorkspace(next))
}

// ResetToDefaults replaces the current tree with all-defaults and persists it.
func (m *Manager) ResetToDefaults() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log.Info("resetting configuration to defaults")
	return m.swapLocked(model.DefaultConfig())
}

// swapLocked makes cfg the current tree and persists it. The in-memory swap
// happens first so a failed write still leaves callers seeing the tree they
// asked for; the error tells them the disk copy is stale.
func (m *Manager) swapLocked(cfg model.RootConfig) error {
	m.current = &cfg
	return m.saveLocked(cfg)
}
