package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimeDir = ".graceguide"

// GetRuntimePath resolves GRACE_RUNTIME_PATH; relative paths live under $HOME.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("GRACE_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimeDir
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
