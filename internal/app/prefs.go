package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Prefs holds small persisted UI preferences. Absence or corruption reads as
// the defaults; the dark theme matches the original product default.
type Prefs struct {
	Theme string `json:"theme"`
}

func DefaultPrefs() Prefs {
	return Prefs{Theme: ThemeDark}
}

func prefsPath(root string) string {
	if strings.TrimSpace(root) == "" {
		root = DefaultStorageRoot()
	}
	return filepath.Join(root, "prefs.json")
}

func LoadPrefs(root string) Prefs {
	prefs := DefaultPrefs()
	data, err := os.ReadFile(prefsPath(root))
	if err != nil {
		return prefs
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return DefaultPrefs()
	}
	if prefs.Theme != ThemeLight && prefs.Theme != ThemeDark {
		prefs.Theme = ThemeDark
	}
	return prefs
}

func SavePrefs(root string, prefs Prefs) error {
	path := prefsPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
