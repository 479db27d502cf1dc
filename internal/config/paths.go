package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// AppName names the config directory.
const AppName = "echopaint"

// Dir returns the echopaint config directory under the user config base.
// On Linux this is usually $XDG_CONFIG_HOME/echopaint, on macOS
// ~/Library/Application Support/echopaint and on Windows %AppData%/echopaint.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, AppName), nil
}

// SettingsPath is the location of settings.yaml.
func SettingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.yaml"), nil
}
