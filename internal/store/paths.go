package store

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "seer-inspect"

// DataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/seer-inspect/
// - Linux: $XDG_DATA_HOME/seer-inspect/ or ~/.local/share/seer-inspect/
// - Windows: %APPDATA%/seer-inspect/
func DataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	return filepath.Join(baseDir, appName), nil
}

// DatabaseDir returns the directory holding the snapshot database, creating it
// if needed. An empty override selects the platform data directory.
func DatabaseDir(override string) (string, error) {
	dir := override
	if dir == "" {
		dataDir, err := DataDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(dataDir, "snapshots")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
