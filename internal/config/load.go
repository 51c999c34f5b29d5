// Package config loads and watches the TOML configuration file,
// resolving secrets from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// APIKeyEnv is the environment fallback for the extraction API key.
const APIKeyEnv = "OPENAI_API_KEY"

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	dir := filepath.Join(configDir, "routevoice")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, filling in defaults for anything left
// unset. A missing file is not an error; the defaults apply. A .env
// file in the working directory is read first so keys can live there.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Printf("config: loaded .env file")
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile reads the given config file path.
func LoadFile(configPath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Printf("config: no file at %s, using defaults", configPath)
		config.resolveAPIKey()
		return config, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
	}

	log.Printf("config: loading configuration from %s", configPath)
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	config.resolveAPIKey()
	return config, nil
}

func (c *Config) resolveAPIKey() {
	if c.Extraction.APIKey == "" {
		c.Extraction.APIKey = os.Getenv(APIKeyEnv)
	}
}
