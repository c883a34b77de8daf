package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetScoutConfigDir returns the path to the scout configuration directory,
// <UserConfigDir>/.scout, unless overridden by SCOUT_CONFIG_HOME.
func GetScoutConfigDir() (string, error) {
	if home := os.Getenv("SCOUT_CONFIG_HOME"); home != "" {
		return home, nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(cfg, ".scout"), nil
}
