package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// LocalConfigFileName is read back by viper as config.local.json in the data dir
const LocalConfigFileName = "config.local.json"

// LocalConfigStore keeps per-checkout overrides in .mintmuse/config.local.json.
// Keys it does not manage (timeout, debug, ...) are still read by viper, so
// they are carried over untouched on save.
type LocalConfigStore struct {
	path string
	log  *slog.Logger
}

// NewLocalConfigStore creates a store rooted at the project data dir
func NewLocalConfigStore(cfg *config.RuntimeConfig, log *slog.Logger) *LocalConfigStore {
	return &LocalConfigStore{
		path: filepath.Join(cfg.DataDir, LocalConfigFileName),
		log:  log.With("component", "LocalConfigStore"),
	}
}

// Exists reports whether the override file is present
func (s *LocalConfigStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load returns the managed overrides, or an empty set when there is no file
func (s *LocalConfigStore) Load(_ context.Context) (*config.LocalConfig, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return config.DefaultLocalConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	local := config.DefaultLocalConfig()
	if err := json.Unmarshal(data, local); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return local, nil
}

// Save writes the managed keys, dropping empty ones, and keeps every other key
func (s *LocalConfigStore) Save(_ context.Context, local *config.LocalConfig) error {
	raw, err := s.readRaw()
	if err != nil {
		return err
	}

	for _, key := range config.ValidConfigKeys() {
		value := local.Get(key)
		if value == "" {
			delete(raw, string(key))
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		raw[string(key)] = encoded
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode local config: %w", err)
	}
	if err := writeFileAtomic(s.path, append(data, '\n'), os.Rename); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}

	s.log.Debug("saved local config", "path", s.path, "keys", len(raw))
	return nil
}

// GetPath returns the override file location
func (s *LocalConfigStore) GetPath() string {
	return s.path
}

func (s *LocalConfigStore) readRaw() (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return raw, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}
	return raw, nil
}

// Ensure the adapter implements the interface
var _ usecase.LocalConfigStore = (*LocalConfigStore)(nil)
