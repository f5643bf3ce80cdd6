package game

import (
	"os"
	"path/filepath"
	"testing"

	"mini-rpg/internal/config"
	"mini-rpg/internal/input"
	"mini-rpg/internal/render"

	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/image/font/gofont/goregular"
)

type fakeWindow struct {
	closing bool
	polls   int
}

func (w *fakeWindow) PollEvents()           { w.polls++ }
func (w *fakeWindow) ShouldClose() bool     { return w.closing }
func (w *fakeWindow) SetShouldClose(v bool) { w.closing = v }
func (w *fakeWindow) Size() (int, int)      { return 640, 480 }

// fakeDevice implements the device calls the update step makes. Any other
// call panics on the nil embedded interface.
type fakeDevice struct {
	render.RenderDevice
	settings *config.Settings

	contexts []config.Display
	gammas   []float32
	failNext bool
}

func (d *fakeDevice) CreateContext() error {
	d.contexts = append(d.contexts, d.settings.Display())
	if d.failNext {
		d.failNext = false
		return render.ErrContext
	}
	return nil
}

func (d *fakeDevice) Viewport() render.Viewport {
	return render.Viewport{ViewW: 320, ViewH: 240}
}

func (d *fakeDevice) SetGamma(g float32) { d.gammas = append(d.gammas, g) }

func newTestApp() (*App, *fakeWindow, *fakeDevice) {
	s := config.Default()
	w := &fakeWindow{}
	dev := &fakeDevice{settings: s}
	a := &App{
		window:     w,
		device:     dev,
		settings:   s,
		input:      input.NewInputManager(),
		fpsLimiter: NewFPSLimiter(s),
		heroX:      160,
		heroY:      120,
	}
	return a, w, dev
}

func press(im *input.InputManager, key glfw.Key) {
	im.HandleKeyEvent(key, glfw.Press)
}

func TestQuitClosesWindow(t *testing.T) {
	a, w, _ := newTestApp()
	press(a.input, glfw.KeyEscape)
	a.update(0)
	if !w.closing {
		t.Errorf("Expected window to be closing")
	}
}

func TestDisplayToggleRebuildsContext(t *testing.T) {
	a, _, dev := newTestApp()
	before := a.settings.Display()

	press(a.input, glfw.KeyF11)
	press(a.input, glfw.KeyF8)
	a.update(0)

	if len(dev.contexts) != 1 {
		t.Fatalf("Expected 1 context rebuild, got %d", len(dev.contexts))
	}
	got := dev.contexts[0]
	if got.Fullscreen == before.Fullscreen || got.TextureFilter == before.TextureFilter {
		t.Errorf("Expected fullscreen and filter toggled, got %+v from %+v", got, before)
	}
	if got.HWSurface != before.HWSurface || got.VSync != before.VSync {
		t.Errorf("Expected other options unchanged, got %+v from %+v", got, before)
	}

	// Without a new press nothing happens.
	a.input.PostUpdate()
	a.update(0)
	if len(dev.contexts) != 1 {
		t.Errorf("Expected no further rebuilds, got %d", len(dev.contexts))
	}
}

func TestDisplayToggleFailureIsNotFatal(t *testing.T) {
	a, w, dev := newTestApp()
	dev.failNext = true
	press(a.input, glfw.KeyF9)
	a.update(0)
	if len(dev.contexts) != 1 || w.closing {
		t.Errorf("Expected one failed rebuild and a running loop, got %d rebuilds", len(dev.contexts))
	}
}

func TestGammaStepsAreClamped(t *testing.T) {
	a, _, dev := newTestApp()
	for range 20 {
		press(a.input, glfw.KeyPageUp)
		a.update(0)
		a.input.HandleKeyEvent(glfw.KeyPageUp, glfw.Release)
		a.input.PostUpdate()
	}
	if len(dev.gammas) != 20 {
		t.Fatalf("Expected 20 gamma updates, got %d", len(dev.gammas))
	}
	if g := dev.gammas[len(dev.gammas)-1]; g != 2 {
		t.Errorf("Expected gamma clamped to 2, got %v", g)
	}
	if _, change := a.settings.Gamma(); !change {
		t.Errorf("Expected gamma change to be recorded in settings")
	}
}

func TestHeroMovesAndStaysInView(t *testing.T) {
	a, _, _ := newTestApp()
	press(a.input, glfw.KeyRight)
	a.update(0.5)

	if a.heroX != 160+heroSpeed*0.5 {
		t.Errorf("Expected hero at x=%v, got %v", 160+heroSpeed*0.5, a.heroX)
	}
	if a.frame != int(0.5/heroAnim)%heroFrames {
		t.Errorf("Expected animation frame %d, got %d", int(0.5/heroAnim)%heroFrames, a.frame)
	}

	a.update(10)
	if want := float64(320 - heroFrameW/2); a.heroX != want {
		t.Errorf("Expected hero clamped at x=%v, got %v", want, a.heroX)
	}

	a.input.HandleKeyEvent(glfw.KeyRight, glfw.Release)
	a.update(0.5)
	if a.moving || a.frame != 0 {
		t.Errorf("Expected idle hero on frame 0, got moving=%t frame=%d", a.moving, a.frame)
	}
}

func TestLoadFontFallsBack(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.ttf")
	if err := os.WriteFile(custom, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		path, name string
	}{
		{"", "goregular"},
		{custom, "custom.ttf"},
		{filepath.Join(dir, "missing.ttf"), "goregular"},
	} {
		style, err := loadFont(tc.path, nil)
		if err != nil {
			t.Fatalf("loadFont(%q): %v", tc.path, err)
		}
		if style.Name() != tc.name {
			t.Errorf("loadFont(%q): expected %s, got %s", tc.path, tc.name, style.Name())
		}
		style.Close()
	}
}
