package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Monotoba/OpenPCB/internal/model"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	base := t.TempDir()
	m, err := NewManager(Options{
		ConfigDir: filepath.Join(base, "config"),
		CacheDir:  filepath.Join(base, "cache"),
		DataDir:   filepath.Join(base, "data"),
		Logger:    zap.NewNop(),
	})
	require.NoError(t, err)
	return m
}

func TestNewManagerCreatesDirectories(t *testing.T) {
	m := newTestManager(t)
	for _, dir := range []string{m.ConfigDir(), m.CacheDir(), m.DataDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestLazyLoadCreatesDefaultFile(t *testing.T) {
	m := newTestManager(t)

	cfg := m.Config()
	assert.Equal(t, model.DefaultConfig(), cfg)

	data, err := os.ReadFile(m.SettingsPath())
	require.NoError(t, err, "first access should persist defaults")

	onDisk, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), onDisk)
}

func TestLoadCorruptFileFallsBackWithoutRewriting(t *testing.T) {
	m := newTestManager(t)
	corrupt := []byte("{ this is not settings }")
	require.NoError(t, os.WriteFile(m.SettingsPath(), corrupt, 0644))

	cfg := m.Load()
	assert.Equal(t, model.DefaultConfig(), cfg, "corrupt file should yield defaults")

	after, err := os.ReadFile(m.SettingsPath())
	require.NoError(t, err)
	assert.Equal(t, corrupt, after, "corrupt file must not be rewritten")
}

func TestLoadValidJSONWithBadValuesFallsBack(t *testing.T) {
	m := newTestManager(t)

	// Well-formed JSON, unsupported schema.
	tampered := []byte(`{"schema_version": 99}`)
	require.NoError(t, os.WriteFile(m.SettingsPath(), tampered, 0644))

	loaded := m.Load()
	assert.Equal(t, model.DefaultConfig(), loaded)

	after, err := os.ReadFile(m.SettingsPath())
	require.NoError(t, err)
	assert.Equal(t, tampered, after)
}

func TestUpdateDisplayPersists(t *testing.T) {
	m := newTestManager(t)
	size := 2.5
	require.NoError(t, m.UpdateDisplay(model.DisplayUpdate{GridSizeMM: &size}))
	assert.Equal(t, 2.5, m.Config().Display.GridSizeMM)

	// A fresh manager over the same directory sees the persisted value.
	reopened, err := NewManager(Options{
		ConfigDir: m.ConfigDir(),
		CacheDir:  m.CacheDir(),
		DataDir:   m.DataDir(),
		Logger:    zap.NewNop(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2.5, reopened.Config().Display.GridSizeMM)
}

func TestUpdateRejectsInvalidValues(t *testing.T) {
	m := newTestManager(t)
	before := m.Config()

	bad := -3.0
	err := m.UpdateDisplay(model.DisplayUpdate{GridSizeMM: &bad})
	require.Error(t, err)

	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, before, m.Config(), "failed update must not change the current tree")

	data, readErr := os.ReadFile(m.SettingsPath())
	require.NoError(t, readErr)
	onDisk, decodeErr := Decode(data)
	require.NoError(t, decodeErr)
	assert.Equal(t, before, onDisk, "failed update must not change the file")
}

func TestUpdateWorkspaceDockLayout(t *testing.T) {
	m := newTestManager(t)
	layout := []byte{0x10, 0x20, 0x30}
	require.NoError(t, m.UpdateWorkspace(model.WorkspaceUpdate{DockLayout: layout}))
	assert.Equal(t, layout, m.Config().Workspace.DockLayout)

	require.NoError(t, m.UpdateWorkspace(model.WorkspaceUpdate{ClearDockLayout: true}))
	assert.Nil(t, m.Config().Workspace.DockLayout)
}

func TestSaveWithoutLoadIsNoop(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Save())
	_, err := os.Stat(m.SettingsPath())
	assert.True(t, os.IsNotExist(err), "no-op save should not create a file")
}

func TestNoTempArtifactAfterSave(t *testing.T) {
	m := newTestManager(t)
	size := 3.0
	require.NoError(t, m.UpdateDisplay(model.DisplayUpdate{GridSizeMM: &size}))

	entries, err := os.ReadDir(m.ConfigDir())
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp", "temporary file left behind")
	}
}

func TestResetToDefaults(t *testing.T) {
	m := newTestManager(t)
	size := 7.5
	require.NoError(t, m.UpdateDisplay(model.DisplayUpdate{GridSizeMM: &size}))
	require.NoError(t, m.ResetToDefaults())

	assert.Equal(t, model.DefaultConfig(), m.Config())

	data, err := os.ReadFile(m.SettingsPath())
	require.NoError(t, err)
	onDisk, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), onDisk)
}

func TestReadersKeepConsistentSnapshots(t *testing.T) {
	m := newTestManager(t)
	snapshot := m.Config()

	size := 9.0
	require.NoError(t, m.UpdateDisplay(model.DisplayUpdate{GridSizeMM: &size}))

	assert.Equal(t, 1.0, snapshot.Display.GridSizeMM, "snapshot changed under a concurrent update")
	assert.Equal(t, 9.0, m.Config().Display.GridSizeMM)
}

func TestConcurrentUpdatesSerialize(t *testing.T) {
	const goroutines = 8
	const updates = 25

	m := newTestManager(t)
	m.Config() // initialize before the race starts

	issued := make(map[float64]bool)
	for g := 0; g < goroutines; g++ {
		for i := 0; i < updates; i++ {
			issued[gridSizeFor(g, i)] = true
		}
	}

	errs := make(chan error, goroutines*updates)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < updates; i++ {
				size := gridSizeFor(g, i)
				if err := m.UpdateDisplay(model.DisplayUpdate{GridSizeMM: &size}); err != nil {
					errs <- err
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent update failed: %v", err)
	}

	final := m.Config().Display.GridSizeMM
	assert.True(t, issued[final], "final grid size %v is not one of the issued values", final)

	// The file must hold exactly the final tree, not a torn mix.
	data, err := os.ReadFile(m.SettingsPath())
	require.NoError(t, err)
	onDisk, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, m.Config(), onDisk)
}

func gridSizeFor(g, i int) float64 {
	return 1.0 + float64(g)*0.5 + float64(i)*0.01
}

func TestConcurrentReadsDuringUpdates(t *testing.T) {
	m := newTestManager(t)
	m.Config()

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					cfg := m.Config()
					if err := cfg.Validate(); err != nil {
						t.Errorf("reader observed invalid tree: %v", err)
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		size := 1.0 + float64(i)*0.1
		require.NoError(t, m.UpdateDisplay(model.DisplayUpdate{GridSizeMM: &size}))
	}
	close(stop)
	wg.Wait()
}

func TestDefaultReturnsSameInstance(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))
	t.Setenv("HOME", base)

	const callers = 16
	managers := make([]*Manager, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := Default()
			if err != nil {
				t.Errorf("Default failed: %v", err)
				return
			}
			managers[i] = m
		}(i)
	}
	wg.Wait()

	require.NotNil(t, managers[0])
	for i := 1; i < callers; i++ {
		assert.Same(t, managers[0], managers[i],
			fmt.Sprintf("caller %d received a different instance", i))
	}
}
