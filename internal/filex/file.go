// Package filex locates and prepares the per-user application data
// directory where the local credential database lives.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// userConfigDir is a test seam for os.UserConfigDir.
var userConfigDir = os.UserConfigDir

// DefaultAppDataDir returns <user config dir>/<appName>, e.g.
// ~/.config/DnDToolAdmin on Linux or %AppData%\DnDToolAdmin on Windows.
// When the user config dir cannot be resolved it falls back to a dot
// directory in the home directory.
func DefaultAppDataDir(appName string) (string, error) {
	if appName == "" {
		return "", errors.New("app name is required")
	}
	base, err := userConfigDir()
	if err == nil && base != "" {
		return filepath.Join(base, appName), nil
	}
	home, herr := os.UserHomeDir()
	if herr != nil {
		return "", fmt.Errorf("resolve data dir: %w", errors.Join(err, herr))
	}
	return filepath.Join(home, "."+appName), nil
}

// EnsurePrivateDir creates dir (and parents) if missing and restricts it to
// the owner. An existing directory is left in place with its mode tightened.
func EnsurePrivateDir(dir string) (string, error) {
	if dir == "" {
		return "", errors.New("directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	if err := os.Chmod(abs, 0o700); err != nil {
		return "", fmt.Errorf("chmod %s: %w", abs, err)
	}
	return abs, nil
}

// Exists reports whether path exists. Errors other than "not exist" are
// returned so callers don't mistake a permission problem for absence.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
