package config

import (
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the config file looked up in the working directory.
	ConfigFileName = "netdraw.toml"
	// ConfigDirName is the config directory name under XDG.
	ConfigDirName = "netdraw"
)

// FindConfigPath returns the first existing config file, or "" when none
// exists.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" && fileExists(path) {
		return path
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	if path := DefaultConfigPath(); path != ConfigFileName && fileExists(path) {
		return path
	}
	return ""
}

// DefaultConfigPath returns the preferred location for a new config file.
func DefaultConfigPath() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, ConfigDirName, "config.toml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", ConfigDirName, "config.toml")
	}
	return ConfigFileName
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
