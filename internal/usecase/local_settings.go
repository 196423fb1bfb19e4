package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// LocalSettingsView is what `mintmuse config` prints
type LocalSettingsView struct {
	Overrides *config.LocalConfig
	Path      string
	Exists    bool
	Effective *config.RuntimeConfig
}

// LocalSettingChange records one set or remove against the override file
type LocalSettingChange struct {
	Key      config.ConfigKey
	Previous string
	Current  string
	Path     string
	Written  bool
}

// Changed reports whether the stored value differs after the operation
func (c *LocalSettingChange) Changed() bool {
	return c.Previous != c.Current
}

// LocalSettings reads and edits .mintmuse/config.local.json
type LocalSettings struct {
	cfg   *config.RuntimeConfig
	store LocalConfigStore
}

// NewLocalSettings creates a new LocalSettings use case
func NewLocalSettings(cfg *config.RuntimeConfig, store LocalConfigStore) *LocalSettings {
	return &LocalSettings{cfg: cfg, store: store}
}

// Show returns the stored overrides next to the effective runtime config
func (uc *LocalSettings) Show(ctx context.Context) (*LocalSettingsView, error) {
	overrides, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &LocalSettingsView{
		Overrides: overrides,
		Path:      uc.store.GetPath(),
		Exists:    uc.store.Exists(),
		Effective: uc.cfg,
	}, nil
}

// Set stores value under key, creating the file when needed
func (uc *LocalSettings) Set(ctx context.Context, key, value string) (*LocalSettingChange, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("empty value for %s, use `mintmuse config remove %s` to clear it", key, key)
	}
	return uc.update(ctx, key, value)
}

// Remove clears key. Removing from a missing file is a no-op.
func (uc *LocalSettings) Remove(ctx context.Context, key string) (*LocalSettingChange, error) {
	return uc.update(ctx, key, "")
}

func (uc *LocalSettings) update(ctx context.Context, rawKey, value string) (*LocalSettingChange, error) {
	key, err := parseConfigKey(rawKey)
	if err != nil {
		return nil, err
	}

	overrides, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	change := &LocalSettingChange{
		Key:      key,
		Previous: overrides.Get(key),
		Path:     uc.store.GetPath(),
	}
	if err := overrides.Set(key, value); err != nil {
		return nil, err
	}
	change.Current = overrides.Get(key)

	if !change.Changed() {
		return change, nil
	}
	if err := uc.store.Save(ctx, overrides); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	change.Written = true
	return change, nil
}

// parseConfigKey normalizes raw and suggests the closest key on a miss
func parseConfigKey(raw string) (config.ConfigKey, error) {
	if config.IsValidConfigKey(raw) {
		return config.NormalizeConfigKey(raw), nil
	}

	keys := lo.Map(config.ValidConfigKeys(), func(k config.ConfigKey, _ int) string { return string(k) })
	msg := fmt.Sprintf("unknown config key: %s", raw)
	if matches := fuzzy.Find(string(config.NormalizeConfigKey(raw)), keys); len(matches) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", matches[0].Str)
	}
	return "", fmt.Errorf("%s\nAvailable keys: %s", msg, strings.Join(keys, ", "))
}
