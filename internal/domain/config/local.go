package config

import (
	"fmt"
	"strings"
)

// LocalConfig holds per-checkout overrides stored in .mintmuse/config.local.json.
// Keys match the viper keys so the file is read back without translation.
type LocalConfig struct {
	Network              string `json:"network,omitempty"`
	Contract             string `json:"contract,omitempty"`
	Sender               string `json:"sender,omitempty"`
	ConfirmationStrategy string `json:"confirmation_strategy,omitempty"`
	GeneratorURL         string `json:"generator_url,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNetwork              ConfigKey = "network"
	ConfigKeyContract             ConfigKey = "contract"
	ConfigKeySender               ConfigKey = "sender"
	ConfigKeyConfirmationStrategy ConfigKey = "confirmation_strategy"
	ConfigKeyGeneratorURL         ConfigKey = "generator_url"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyNetwork,
		ConfigKeyContract,
		ConfigKeySender,
		ConfigKeyConfirmationStrategy,
		ConfigKeyGeneratorURL,
	}
}

// NormalizeConfigKey lowercases a key and accepts dashes for underscores
// (e.g., "confirmation-strategy" -> "confirmation_strategy")
func NormalizeConfigKey(key string) ConfigKey {
	return ConfigKey(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_"))
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	normalized := NormalizeConfigKey(key)
	for _, validKey := range ValidConfigKeys() {
		if validKey == normalized {
			return true
		}
	}
	return false
}

// Get returns the value stored for key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyNetwork:
		return c.Network
	case ConfigKeyContract:
		return c.Contract
	case ConfigKeySender:
		return c.Sender
	case ConfigKeyConfirmationStrategy:
		return c.ConfirmationStrategy
	case ConfigKeyGeneratorURL:
		return c.GeneratorURL
	default:
		return ""
	}
}

// Set stores value for key. An empty value clears the key.
func (c *LocalConfig) Set(key ConfigKey, value string) error {
	switch key {
	case ConfigKeyNetwork:
		c.Network = value
	case ConfigKeyContract:
		c.Contract = value
	case ConfigKeySender:
		c.Sender = value
	case ConfigKeyConfirmationStrategy:
		if value != "" && !ConfirmationStrategy(strings.ToLower(value)).IsValid() {
			return fmt.Errorf("invalid confirmation strategy %q: expected %q or %q",
				value, ConfirmationLegacy, ConfirmationExplicit)
		}
		c.ConfirmationStrategy = strings.ToLower(value)
	case ConfigKeyGeneratorURL:
		c.GeneratorURL = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
