package text

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func newStyle(t *testing.T) *Style {
	t.Helper()
	s, err := Default(16)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRasterizeMatchesMeasure(t *testing.T) {
	s := newStyle(t)
	img, err := s.Rasterize("Hello", color.NRGBA{255, 255, 255, 255}, true)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	w, h := s.Measure("Hello")
	if img.Rect.Dx() != w || img.Rect.Dy() != h {
		t.Errorf("Expected %dx%d, got %v", w, h, img.Rect)
	}
	if h != s.LineHeight() {
		t.Errorf("Expected line height %d, got %d", s.LineHeight(), h)
	}
}

func TestSolidTextHasNoPartialAlpha(t *testing.T) {
	s := newStyle(t)
	c := color.NRGBA{200, 100, 50, 255}

	solid, err := s.Rasterize("Ag", c, false)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	opaque := 0
	for i := 3; i < len(solid.Pix); i += 4 {
		switch solid.Pix[i] {
		case 0:
		case 255:
			opaque++
			if solid.Pix[i-3] != c.R || solid.Pix[i-2] != c.G || solid.Pix[i-1] != c.B {
				t.Fatalf("Expected glyph color %v at %d", c, i)
			}
		default:
			t.Fatalf("Expected binary alpha, got %d", solid.Pix[i])
		}
	}
	if opaque == 0 {
		t.Errorf("Expected some glyph pixels")
	}

	blended, err := s.Rasterize("Ag", c, true)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	partial := false
	for i := 3; i < len(blended.Pix); i += 4 {
		if a := blended.Pix[i]; a != 0 && a != 255 {
			partial = true
			break
		}
	}
	if !partial {
		t.Errorf("Expected antialiased edges in blended text")
	}
}

func TestRasterizeEmpty(t *testing.T) {
	s := newStyle(t)
	if _, err := s.Rasterize("", color.NRGBA{A: 255}, true); err != ErrEmptyText {
		t.Errorf("Expected ErrEmptyText, got %v", err)
	}
}

func TestSurfaceCacheReusesSurface(t *testing.T) {
	s := newStyle(t)
	c, err := NewSurfaceCache(2)
	if err != nil {
		t.Fatal(err)
	}
	white := color.NRGBA{255, 255, 255, 255}

	a, _ := c.Rasterize(s, "HP", white, true)
	b, _ := c.Rasterize(s, "HP", white, true)
	if a != b {
		t.Errorf("Expected the same surface for identical arguments")
	}
	if solid, _ := c.Rasterize(s, "HP", white, false); solid == a {
		t.Errorf("Expected a distinct surface for solid text")
	}

	c.Rasterize(s, "MP", white, true)
	if c.Len() != 2 {
		t.Errorf("Expected cache bounded at 2, got %d", c.Len())
	}
}

func TestSurfaceCachePurge(t *testing.T) {
	c, err := NewSurfaceCache(4)
	if err != nil {
		t.Fatal(err)
	}
	c.Rasterize(newStyle(t), "XP", color.NRGBA{A: 255}, true)
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got %d", c.Len())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path, 12)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer s.Close()
	if s.Name() != "ui.ttf" || s.Size() != 12 {
		t.Errorf("Expected ui.ttf at 12, got %s at %v", s.Name(), s.Size())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "none.ttf"), 12); err == nil {
		t.Errorf("Expected an error for a missing file")
	}
}
