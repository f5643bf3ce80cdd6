// Package render draws sprites, primitives and text for the game through a
// graphics driver, and owns the window, viewport and loaded images.
package render

import (
	"mini-rpg/internal/config"
	"mini-rpg/internal/graphics"
	"mini-rpg/internal/graphics/text"
	"mini-rpg/internal/log"
	"mini-rpg/internal/mods"

	"github.com/xlab/closer"
)

// RenderDevice is what the rest of the engine draws with. Every method
// must be called from the main thread.
type RenderDevice interface {
	CreateContext() error
	DestroyContext()
	WindowResize()
	Viewport() Viewport

	Render(s *Sprite) error
	RenderRenderable(r Renderable, dest Rect) error
	RenderToImage(src *Image, srcRect Rect, dst *Image, dest Rect) error
	RenderText(style *text.Style, str string, c Color, dest Rect) error
	RenderTextToImage(style *text.Style, str string, c Color, blended bool) *Image

	LoadImage(path string) (*Image, error)
	CreateImage(w, h int) *Image
	FreeImage(img *Image)

	DrawPixel(x, y int, c Color) error
	DrawLine(x0, y0, x1, y1 int, c Color) error
	DrawRectangle(p0, p1 Point, c Color) error

	BlankScreen()
	CommitFrame()
	SetGamma(g float32)
	UpdateTitleBar()
}

const (
	titleIconPath = "images/logo/icon.png"
	iconsPath     = "images/icons/icons.png"

	textSurfaceCacheSize = 128
)

type Options struct {
	Settings *config.Settings
	Mods     *mods.Locator
	Log      *log.Logger
	// Exit terminates the process after a fatal error. Defaults to
	// closer.Exit, which runs the bound cleanup functions first.
	Exit func(code int)
	// IconsPath is the persistent icon sheet loaded with the first
	// context. Empty selects the default.
	IconsPath string
}

// OpenGLDevice implements RenderDevice on a shader and framebuffer based
// graphics driver.
type OpenGLDevice struct {
	drv      graphics.Driver
	win      graphics.Window
	settings *config.Settings
	mods     *mods.Locator
	lg       *log.Logger
	exit     func(code int)

	initialized bool
	destroyed   bool           // live images wait for a new context to upload them
	applied     config.Display // display options of the live context
	minW, minH  int            // minimum size last applied to the window
	viewport    Viewport

	cache *imageCache
	live  map[*Image]struct{}
	text  *text.SurfaceCache

	iconsPath string
	icons     *Image
}

var _ RenderDevice = (*OpenGLDevice)(nil)

func NewOpenGLDevice(drv graphics.Driver, win graphics.Window, opts Options) *OpenGLDevice {
	d := &OpenGLDevice{
		drv:       drv,
		win:       win,
		settings:  opts.Settings,
		mods:      opts.Mods,
		lg:        opts.Log,
		exit:      opts.Exit,
		cache:     newImageCache(),
		live:      make(map[*Image]struct{}),
		iconsPath: opts.IconsPath,
	}
	if d.settings == nil {
		d.settings = config.Default()
	}
	if d.mods == nil {
		d.mods = mods.NewLocator(".")
	}
	if d.exit == nil {
		d.exit = closer.Exit
	}
	if d.iconsPath == "" {
		d.iconsPath = iconsPath
	}
	// lru.New only fails for a non positive size
	d.text, _ = text.NewSurfaceCache(textSurfaceCacheSize)
	return d
}

// Viewport returns the current view to screen mapping
func (d *OpenGLDevice) Viewport() Viewport { return d.viewport }

// Icons returns the persistent icon sheet, nil if it could not be loaded
func (d *OpenGLDevice) Icons() *Image { return d.icons }

// Settings returns the settings the device reads
func (d *OpenGLDevice) Settings() *config.Settings { return d.settings }
