// Package config owns the on-disk settings representation and the process-wide
// configuration manager. The settings file is a single JSON document with
// deterministically sorted keys; writes go through a sibling temporary file and
// an atomic rename so a concurrent reader never sees a half-written file.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Monotoba/OpenPCB/internal/model"
)

// Encode renders a settings tree as indented JSON with sorted keys. The
// workspace dock layout is emitted as base64 text, or null when absent.
func Encode(cfg model.RootConfig) ([]byte, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}

	// Round-trip through a generic map so MarshalIndent emits keys in sorted
	// order regardless of struct field order.
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses an encoded settings tree and validates it, including the
// schema version. Base64 dock layout text becomes raw bytes; null becomes nil.
func Decode(data []byte) (model.RootConfig, error) {
	var cfg model.RootConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return model.RootConfig{}, fmt.Errorf("parse settings: %w", err)
	}
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return model.RootConfig{}, fmt.Errorf("validate settings: %w", err)
	}
	return cfg, nil
}

// writeFileAtomic writes data to a sibling ".tmp" path and renames it over
// path. On success no temporary file remains; on failure the temporary file is
// removed and the previous contents of path are untouched.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
