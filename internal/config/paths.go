package config

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	// LocalConfigFile is looked up in the working directory first.
	LocalConfigFile = ".focusflow.yaml"

	// GlobalConfigFile lives in the global config directory.
	GlobalConfigFile = "config.yaml"

	// DefaultDatabaseFile is the sqlite file inside the data directory.
	DefaultDatabaseFile = "focusflow.db"
)

// GetGlobalConfigDir returns the global configuration directory (~/.focusflow).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".focusflow"), nil
}

// DataDir returns where the database, crash logs and telemetry settings live.
// XDG_DATA_HOME wins over the global config directory.
func DataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "focusflow")
	}
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return ".focusflow"
	}
	return dir
}

// DefaultSQLitePath is the database used when store.path is unset.
func DefaultSQLitePath() string {
	return filepath.Join(DataDir(), DefaultDatabaseFile)
}

// ConfigSearchPaths lists candidate config files in priority order.
func ConfigSearchPaths() []string {
	paths := []string{LocalConfigFile}
	if dir, err := GetGlobalConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, GlobalConfigFile))
	}
	return paths
}

// FindConfigFile returns the first existing file from ConfigSearchPaths, or "".
func FindConfigFile() string {
	for _, path := range ConfigSearchPaths() {
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// WritableConfigFile is the file `config set` writes to: the file in use, else the global one.
func WritableConfigFile(inUse string) (string, error) {
	if inUse != "" {
		return inUse, nil
	}
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", errors.New("cannot locate home directory; pass --config")
	}
	return filepath.Join(dir, GlobalConfigFile), nil
}
