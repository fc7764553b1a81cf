// Package config loads and validates bloom's settings.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// MemoryDatabase is the SQLite name for a throwaway in-memory database.
const MemoryDatabase = ":memory:"

// ExpandPath resolves a leading ~ and $VARS in a database path. The
// in-memory name and empty paths pass through untouched.
func ExpandPath(path string) string {
	if path == "" || path == MemoryDatabase {
		return path
	}

	expanded := os.ExpandEnv(path)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			expanded = home + strings.TrimPrefix(expanded, "~")
		}
	}
	return filepath.Clean(expanded)
}
