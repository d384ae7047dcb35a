package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPrefsDefaultIsDark(t *testing.T) {
	prefs := LoadPrefs(t.TempDir())
	if prefs.Theme != ThemeDark {
		t.Fatalf("default theme = %q", prefs.Theme)
	}
}

func TestPrefsRoundTrip(t *testing.T) {
	root := t.TempDir()
	if err := SavePrefs(root, Prefs{Theme: ThemeLight}); err != nil {
		t.Fatal(err)
	}
	if prefs := LoadPrefs(root); prefs.Theme != ThemeLight {
		t.Fatalf("theme did not round trip: %q", prefs.Theme)
	}
}

func TestPrefsCorruptOrInvalidFallsBack(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "prefs.json"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if prefs := LoadPrefs(root); prefs.Theme != ThemeDark {
		t.Fatalf("corrupt prefs should fall back to dark, got %q", prefs.Theme)
	}

	if err := os.WriteFile(filepath.Join(root, "prefs.json"), []byte(`{"theme":"neon"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if prefs := LoadPrefs(root); prefs.Theme != ThemeDark {
		t.Fatalf("unknown theme token should fall back to dark, got %q", prefs.Theme)
	}
}
