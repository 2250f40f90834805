package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".voteledger", "cli.yaml")
}

// Load loads CLI configuration from path, falling back to defaults
// for a missing file.
func Load(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if strings.HasPrefix(cfg.OperatorKey, encryptedPrefix) {
		secret, err := decryptSecret(path, cfg.OperatorKey, cfg.OperatorKeyID)
		if err != nil {
			return nil, err
		}
		cfg.OperatorKey = secret
	}
	return cfg, nil
}

// Save writes CLI configuration to path. The file is written with
// mode 0600 since it may hold the operator secret.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	// The secret is encrypted at rest with the local keyring.
	toWrite := *cfg
	if toWrite.OperatorKey != "" && !strings.HasPrefix(toWrite.OperatorKey, encryptedPrefix) {
		sealed, err := encryptSecret(path, toWrite.OperatorKey, toWrite.OperatorKeyID)
		if err != nil {
			return fmt.Errorf("encrypt operator key: %w", err)
		}
		toWrite.OperatorKey = sealed
	}

	data, err := yaml.Marshal(&toWrite)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
