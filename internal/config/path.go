// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDatabasePath returns the standard location of the saldo database,
// following the XDG data-home convention.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "saldo.db"
	}
	return filepath.Join(home, ".local", "share", "saldo", "saldo.db")
}

// ExpandPath expands a leading ~ and any $VAR environment variables in a
// file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
