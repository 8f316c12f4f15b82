package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LoadFileConfig decodes the config file at path over the defaults. A
// missing file is created from the commented template.
func LoadFileConfig(path string) (*FileConfig, error) {
	cfg := DefaultFileConfig()

	if !FileExists(path) {
		if err := CreateDefaultConfig(path); err != nil {
			return nil, fmt.Errorf("failed to create config: %w", err)
		}
		return cfg, nil
	}

	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

func CreateDefaultConfig(path string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if FileExists(path) {
		return nil
	}

	content := GenerateConfigTemplate()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
