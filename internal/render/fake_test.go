package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"mini-rpg/internal/config"
	"mini-rpg/internal/graphics"
	"mini-rpg/internal/graphics/text"
	"mini-rpg/internal/log"
	"mini-rpg/internal/mods"

	"github.com/go-gl/mathgl/mgl32"
)

type composeCall struct {
	texture, normals uint32
	offset, texel    mgl32.Vec4
	target           uint32 // bound render target, 0 for the screen
}

type primitiveCall struct {
	kind   graphics.Primitive
	points []float32
	color  mgl32.Vec4
}

// fakeDriver records what the device asks of the GPU.
type fakeDriver struct {
	next     uint32
	textures map[uint32]image.Point
	created  int
	updated  int

	built    bool
	sources  []graphics.ProgramSources
	buildErr error

	inits, forgets int

	composes   []composeCall
	primitives []primitiveCall

	target      uint32
	targetCalls int
	viewport    [4]int
	clears      int
	flushes     int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{textures: make(map[uint32]image.Point)}
}

func (f *fakeDriver) Init() error { f.inits++; return nil }

func (f *fakeDriver) Info() graphics.Info { return graphics.Info{Vendor: "fake"} }

func (f *fakeDriver) BuildResources(sprite, primitive graphics.ProgramSources) error {
	f.sources = append(f.sources, sprite, primitive)
	if f.buildErr != nil {
		return f.buildErr
	}
	f.built = true
	return nil
}

func (f *fakeDriver) ResourcesBuilt() bool { return f.built }

func (f *fakeDriver) DestroyResources() { f.built = false }

func (f *fakeDriver) Forget() {
	f.forgets++
	f.built = false
	clear(f.textures)
}

func (f *fakeDriver) CreateTexture(img *image.NRGBA, _ graphics.TextureFilter) (uint32, error) {
	if img == nil || img.Rect.Empty() {
		return 0, errors.New("empty image")
	}
	f.next++
	f.created++
	f.textures[f.next] = img.Rect.Size()
	return f.next, nil
}

func (f *fakeDriver) UpdateTexture(id uint32, _ *image.NRGBA) error {
	if _, ok := f.textures[id]; !ok {
		return errors.New("unknown texture")
	}
	f.updated++
	return nil
}

func (f *fakeDriver) DeleteTexture(id uint32) { delete(f.textures, id) }

func (f *fakeDriver) Compose(texture, normals uint32, offset, texel mgl32.Vec4) error {
	f.composes = append(f.composes, composeCall{texture, normals, offset, texel, f.target})
	return nil
}

func (f *fakeDriver) BeginTarget(texture uint32, _, _ int) error {
	if f.target != 0 {
		return errors.New("nested target")
	}
	f.target = texture
	f.targetCalls++
	return nil
}

func (f *fakeDriver) EndTarget() { f.target = 0 }

func (f *fakeDriver) DrawPrimitive(p graphics.Primitive, points []float32, c mgl32.Vec4) error {
	f.primitives = append(f.primitives, primitiveCall{p, points, c})
	return nil
}

func (f *fakeDriver) Clear() { f.clears++ }

func (f *fakeDriver) SetViewport(x, y, w, h int) { f.viewport = [4]int{x, y, w, h} }

func (f *fakeDriver) Flush() { f.flushes++ }

// fakeWindow opens windows unless fail rejects the options.
type fakeWindow struct {
	w, h int
	fail func(graphics.WindowOptions) bool

	open       bool
	hw         bool
	opens      []graphics.WindowOptions
	failures   int
	terminated bool

	title        string
	icon         image.Image
	minW, minH   int
	gamma        float32
	cursorResets int
	swaps        int
}

func (w *fakeWindow) Open(opts graphics.WindowOptions) (bool, error) {
	w.opens = append(w.opens, opts)
	if w.fail != nil && w.fail(opts) {
		w.failures++
		return false, errors.New("no suitable context")
	}
	shared := w.open && w.hw == opts.HWSurface
	w.open, w.hw = true, opts.HWSurface
	return shared, nil
}

func (w *fakeWindow) Close() { w.open = false }
func (w *fakeWindow) Terminate() { w.open = false; w.terminated = true }
func (w *fakeWindow) Size() (int, int) { return w.w, w.h }
func (w *fakeWindow) SetMinSize(mw, mh int) { w.minW, w.minH = mw, mh }
func (w *fakeWindow) SetTitle(title string) { w.title = title }
func (w *fakeWindow) SetIcon(img image.Image) { w.icon = img }
func (w *fakeWindow) ResetCursor() { w.cursorResets++ }
func (w *fakeWindow) Swap() { w.swaps++ }

func (w *fakeWindow) SetGamma(g float32) error {
	w.gamma = g
	return nil
}

type testDevice struct {
	*OpenGLDevice
	drv    *fakeDriver
	win    *fakeWindow
	logs   *bytes.Buffer
	exited []int
	dir    string
}

func newTestDevice(t *testing.T) *testDevice {
	t.Helper()
	td := &testDevice{
		drv:  newFakeDriver(),
		win:  &fakeWindow{w: 640, h: 480},
		logs: &bytes.Buffer{},
		dir:  t.TempDir(),
	}
	td.OpenGLDevice = NewOpenGLDevice(td.drv, td.win, Options{
		Settings: config.Default(),
		Mods:     mods.NewLocator(td.dir),
		Log:      log.NewWriter(td.logs, "debug"),
		Exit:     func(code int) { td.exited = append(td.exited, code) },
	})
	return td
}

// writePNG writes a w x h opaque image below the device's data directory.
func (td *testDevice) writePNG(t *testing.T, rel string, w, h int) {
	t.Helper()
	path := filepath.Join(td.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func (td *testDevice) writeFile(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(td.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func (td *testDevice) mustCreateContext(t *testing.T) {
	t.Helper()
	if err := td.CreateContext(); err != nil {
		t.Fatalf("CreateContext: %v", err)
	}
}

func newTextStyle(t *testing.T) *text.Style {
	t.Helper()
	style, err := text.Default(14)
	if err != nil {
		t.Fatalf("text.Default: %v", err)
	}
	t.Cleanup(func() { style.Close() })
	return style
}
