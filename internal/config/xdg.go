package config

import (
	"os"
	"path/filepath"
)

const appName = "typetest"

// baseDir resolves an XDG base directory from env, falling back to a path
// under the user's home. Without a home directory the working directory is
// used.
func baseDir(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func configDir() string {
	return filepath.Join(baseDir("XDG_CONFIG_HOME", ".config"), appName)
}

func dataDir() string {
	return filepath.Join(baseDir("XDG_DATA_HOME", ".local", "share"), appName)
}

// DefaultConfigPath is the TOML config file.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// DefaultDBPath is the results database.
func DefaultDBPath() string {
	return filepath.Join(dataDir(), appName+".db")
}

// DefaultLogPath is where the practice UI logs while it owns the terminal.
func DefaultLogPath() string {
	return filepath.Join(dataDir(), appName+".log")
}
