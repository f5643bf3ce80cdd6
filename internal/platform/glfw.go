// Package platform provides the native window and context through GLFW.
package platform

import (
	"fmt"
	"image"

	"mini-rpg/internal/graphics"
	"mini-rpg/internal/log"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFW is a graphics.Window backed by a GLFW window. Only one window is
// alive at a time; opening a new one destroys the previous window once the
// new context is current.
type GLFW struct {
	lg     *log.Logger
	window *glfw.Window
	hw     bool // context API of window

	minW, minH int

	onResize func(w, h int)
	onKey    func(key glfw.Key, action glfw.Action)
	onMouse  func(button glfw.MouseButton, action glfw.Action)
}

var _ graphics.Window = (*GLFW)(nil)

// Init initializes GLFW. Must be called from the main thread.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	return nil
}

func New(lg *log.Logger) *GLFW {
	return &GLFW{lg: lg}
}

func (g *GLFW) Open(opts graphics.WindowOptions) (bool, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if opts.HWSurface {
		glfw.WindowHint(glfw.ContextCreationAPI, glfw.NativeContextAPI)
	} else {
		// OSMesa draws off-screen, the window itself may stay blank.
		glfw.WindowHint(glfw.ContextCreationAPI, glfw.OSMesaContextAPI)
	}

	w, h := opts.Width, opts.Height
	var monitor *glfw.Monitor
	if opts.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			return false, fmt.Errorf("fullscreen: no monitor")
		}
		vm := monitor.GetVideoMode()
		glfw.WindowHint(glfw.RedBits, vm.RedBits)
		glfw.WindowHint(glfw.GreenBits, vm.GreenBits)
		glfw.WindowHint(glfw.BlueBits, vm.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, vm.RefreshRate)
		w, h = vm.Width, vm.Height
	}

	// Objects can only be shared between contexts of the same API.
	var share *glfw.Window
	if g.window != nil && g.hw == opts.HWSurface {
		share = g.window
	}

	window, err := glfw.CreateWindow(w, h, opts.Title, monitor, share)
	if err != nil {
		if g.window != nil {
			g.window.MakeContextCurrent()
		}
		return false, fmt.Errorf("create window (fullscreen=%v hwsurface=%v): %w", opts.Fullscreen, opts.HWSurface, err)
	}

	old := g.window
	g.window, g.hw = window, opts.HWSurface
	window.MakeContextCurrent()

	// Software contexts can not keep up with vsync.
	if opts.VSync && opts.HWSurface {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	g.installCallbacks()
	if g.minW > 0 && g.minH > 0 {
		window.SetSizeLimits(g.minW, g.minH, glfw.DontCare, glfw.DontCare)
	}
	if old != nil {
		old.Destroy()
	}

	g.lg.Info("window opened", "width", w, "height", h, "fullscreen", opts.Fullscreen,
		"hwsurface", opts.HWSurface, "vsync", opts.VSync, "shared", share != nil)
	return share != nil, nil
}

func (g *GLFW) installCallbacks() {
	g.window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		if g.onResize != nil {
			g.onResize(w, h)
		}
	})
	g.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if g.onKey != nil {
			g.onKey(key, action)
		}
	})
	g.window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if g.onMouse != nil {
			g.onMouse(button, action)
		}
	})
}

func (g *GLFW) Close() {
	if g.window != nil {
		g.window.Destroy()
		g.window = nil
	}
}

func (g *GLFW) Terminate() {
	g.Close()
	glfw.Terminate()
}

func (g *GLFW) Size() (int, int) {
	if g.window == nil {
		return 0, 0
	}
	return g.window.GetFramebufferSize()
}

func (g *GLFW) SetMinSize(w, h int) {
	g.minW, g.minH = w, h
	if g.window != nil {
		g.window.SetSizeLimits(w, h, glfw.DontCare, glfw.DontCare)
	}
}

// Center moves a windowed window to the middle of the primary monitor.
func (g *GLFW) Center() {
	if g.window == nil || g.window.GetMonitor() != nil {
		return
	}
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return
	}
	vm := monitor.GetVideoMode()
	w, h := g.window.GetSize()
	g.window.SetPos((vm.Width-w)/2, (vm.Height-h)/2)
}

func (g *GLFW) SetTitle(title string) {
	if g.window != nil {
		g.window.SetTitle(title)
	}
}

func (g *GLFW) SetIcon(img image.Image) {
	if g.window == nil {
		return
	}
	if img == nil {
		g.window.SetIcon(nil)
		return
	}
	g.window.SetIcon([]image.Image{img})
}

func (g *GLFW) SetGamma(gamma float32) error {
	if gamma <= 0 {
		return fmt.Errorf("invalid gamma %v", gamma)
	}
	monitor := glfw.GetPrimaryMonitor()
	if g.window != nil && g.window.GetMonitor() != nil {
		monitor = g.window.GetMonitor()
	}
	if monitor == nil {
		return fmt.Errorf("set gamma: no monitor")
	}
	monitor.SetGamma(gamma)
	return nil
}

func (g *GLFW) ResetCursor() {
	if g.window == nil {
		return
	}
	g.window.SetCursor(nil)
	g.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

func (g *GLFW) Swap() {
	if g.window != nil {
		g.window.SwapBuffers()
	}
}

func (g *GLFW) PollEvents() {
	glfw.PollEvents()
}

func (g *GLFW) ShouldClose() bool {
	return g.window == nil || g.window.ShouldClose()
}

func (g *GLFW) SetShouldClose(v bool) {
	if g.window != nil {
		g.window.SetShouldClose(v)
	}
}

// SetResizeCallback registers fn to be called with the new drawable size.
// It survives window re-creation.
func (g *GLFW) SetResizeCallback(fn func(w, h int)) { g.onResize = fn }

func (g *GLFW) SetKeyCallback(fn func(key glfw.Key, action glfw.Action)) { g.onKey = fn }

func (g *GLFW) SetMouseButtonCallback(fn func(button glfw.MouseButton, action glfw.Action)) {
	g.onMouse = fn
}
