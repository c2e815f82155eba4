package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/collapseloader/collapse/internal/branding"
)

// File and directory names inside the install root.
const (
	SettingsFile = "settings.yaml"
	CacheFile    = "cache.json"
	CustomFile   = "custom_clients.yaml"
	CustomDir    = "custom"
)

// Permission constants.
const (
	DirPermNormal   os.FileMode = 0755
	FilePermNormal  os.FileMode = 0644
	FilePermPrivate os.FileMode = 0600
)

// GetRoot returns the install root that holds downloaded clients, the
// settings file, and the manifest cache.
// It checks the COLLAPSE_ROOT environment variable first,
// then falls back to ~/.collapse.
func GetRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("ROOT")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// EnsureRoot creates the install root if it does not exist and returns it.
func EnsureRoot() (string, error) {
	root, err := GetRoot()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(root, DirPermNormal); err != nil {
		return "", fmt.Errorf("creating install root %s: %w", root, err)
	}
	return root, nil
}

// SettingsPath returns the settings file path inside root.
func SettingsPath(root string) string {
	return filepath.Join(root, SettingsFile)
}

// CachePath returns the manifest cache file path inside root.
func CachePath(root string) string {
	return filepath.Join(root, CacheFile)
}

// CustomPath returns the custom clients file path inside root.
func CustomPath(root string) string {
	return filepath.Join(root, CustomFile)
}

// CustomArtifactsDir returns the directory holding copies of custom client files.
func CustomArtifactsDir(root string) string {
	return filepath.Join(root, CustomDir)
}

// IgnoredByClear returns the paths a full clear of root must preserve.
func IgnoredByClear(root string) []string {
	return []string{SettingsPath(root), CachePath(root)}
}
