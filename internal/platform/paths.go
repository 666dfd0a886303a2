package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// Application directory name under the user config/cache roots
const AppDirName = "airwav"

// File permissions
const DefaultDirPermissions = 0755

// ConfigDir returns the per-user configuration directory for the app
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

// CacheDir returns the per-user cache directory for the app
func CacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

// LogFilePath returns the path of the application log file. The terminal is
// owned by the UI, so logs always go to a file.
func LogFilePath() (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, "airwav.log"), nil
}

// CreateDirectoryIfNotExists creates a directory if it doesn't exist
func CreateDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, DefaultDirPermissions)
	}
	return nil
}
