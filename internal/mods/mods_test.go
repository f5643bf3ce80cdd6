package mods

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLocatePrefersLaterDirectories(t *testing.T) {
	base := t.TempDir()
	mod := t.TempDir()
	writeFile(t, filepath.Join(base, "images", "a.png"), "base")
	writeFile(t, filepath.Join(mod, "images", "a.png"), "mod")
	writeFile(t, filepath.Join(base, "images", "b.png"), "base")

	l := NewLocator(base, mod)

	data, err := l.ReadFile("images/a.png")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "mod" {
		t.Errorf("Expected mod override, got %q", data)
	}
	if got := l.Locate("images/b.png"); got != filepath.Join(base, "images", "b.png") {
		t.Errorf("Expected base path, got %s", got)
	}
}

func TestLocateMissingFallsBackToBase(t *testing.T) {
	base := t.TempDir()
	l := NewLocator(base, t.TempDir())

	want := filepath.Join(base, "shaders", "vertex.glsl")
	if got := l.Locate("shaders/vertex.glsl"); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
	if l.Exists("shaders/vertex.glsl") {
		t.Errorf("Expected missing file to not exist")
	}
}

func TestNewLocatorDefaultsToWorkingDir(t *testing.T) {
	l := NewLocator("", "")
	dirs := l.Dirs()
	if len(dirs) != 1 || dirs[0] != "." {
		t.Errorf("Expected [.], got %v", dirs)
	}
}
