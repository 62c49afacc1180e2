// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the config and data directories.
const AppName = "suitwatch"

// ExpandPath expands a leading ~ and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}

// DataDir returns the directory holding the store and exports.
// XDG_DATA_HOME wins over ~/.local/share.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	return ExpandPath(filepath.Join("~", ".local", "share", AppName))
}

// ConfigDir returns the directory searched for config.yaml.
func ConfigDir() string {
	return ExpandPath(filepath.Join("~", ".config", AppName))
}

// DefaultDatabasePath returns the store file for a backend driver.
func DefaultDatabasePath(driver string) string {
	if driver == "yaml" {
		return filepath.Join(DataDir(), "results.yaml")
	}
	return filepath.Join(DataDir(), AppName+".db")
}

// DefaultExportDir returns where CSV exports are written.
func DefaultExportDir() string {
	return filepath.Join(DataDir(), "exports")
}
