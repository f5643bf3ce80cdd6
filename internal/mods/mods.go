package mods

import (
	"os"
	"path/filepath"
)

// Locator resolves data file names against an ordered list of mod
// directories. Later directories override earlier ones.
type Locator struct {
	dirs []string
}

// NewLocator returns a locator searching dirs, lowest priority first. The
// first directory is the base data directory.
func NewLocator(dirs ...string) *Locator {
	l := &Locator{}
	for _, d := range dirs {
		if d != "" {
			l.dirs = append(l.dirs, filepath.Clean(d))
		}
	}
	if len(l.dirs) == 0 {
		l.dirs = []string{"."}
	}
	return l
}

// Dirs returns the search directories, lowest priority first
func (l *Locator) Dirs() []string {
	out := make([]string, len(l.dirs))
	copy(out, l.dirs)
	return out
}

// Locate returns the path of name in the highest priority directory that
// contains it. When no directory has it, the path in the base directory is
// returned so the subsequent open reports a useful error.
func (l *Locator) Locate(name string) string {
	name = filepath.FromSlash(name)
	for i := len(l.dirs) - 1; i >= 0; i-- {
		p := filepath.Join(l.dirs[i], name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return filepath.Join(l.dirs[0], name)
}

// Exists reports whether any directory contains name
func (l *Locator) Exists(name string) bool {
	_, err := os.Stat(l.Locate(name))
	return err == nil
}

// ReadFile reads name from the highest priority directory containing it
func (l *Locator) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(l.Locate(name))
}
