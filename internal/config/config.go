package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	configDir      = ".formbricks"
	configFileName = "config.json"
)

// Config is the CLI-side configuration. The API key itself lives in the
// credential store, not here.
type Config struct {
	APIURL string `json:"api_url"`
}

// GetConfigPath returns the path to the config file (~/.formbricks/config.json)
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir, configFileName), nil
}

// LoadConfig reads the config file, returning an empty config when none
// exists yet.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes the config file, creating ~/.formbricks when needed.
func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
