// Package paths resolves where stanza keeps its files on each platform.
package paths

import (
	"os"
	"path/filepath"
)

const appDirName = "stanza"

// AppDataDir returns the application data directory for the store and logs.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
//
// The STANZA_HOME environment variable overrides the whole path.
func AppDataDir() string {
	if override := os.Getenv("STANZA_HOME"); override != "" {
		_ = os.MkdirAll(override, 0700)
		return override
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)

	// Restrictive permissions: the store may hold connection values.
	_ = os.MkdirAll(path, 0700)

	return path
}

// StoreFilePath returns the path of the persisted grouped config document.
func StoreFilePath() string {
	return filepath.Join(AppDataDir(), "stanza.json")
}

// LogFilePath returns the path to the application log file.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "stz.log")
}
