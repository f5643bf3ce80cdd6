package render

import (
	"errors"
	"fmt"
	"io/fs"

	"mini-rpg/internal/config"
	"mini-rpg/internal/graphics"
)

// needsWindow reports whether moving from a to b requires a new window.
// The texture filter only affects later uploads.
func needsWindow(a, b config.Display) bool {
	return a.Fullscreen != b.Fullscreen || a.HWSurface != b.HWSurface || a.VSync != b.VSync
}

// CreateContext opens the window and graphics context for the requested
// display settings, or refreshes the existing one when they are unchanged.
//
// If the very first context can not be created the process exits. Later
// failures fall back to the previously applied settings, then to
// config.SafeDisplay; the settings that end up live are written back.
func (d *OpenGLDevice) CreateContext() error {
	want := d.settings.Display()
	if !want.HWSurface {
		want.VSync = false
	}

	if !d.initialized || needsWindow(d.applied, want) {
		candidates := []config.Display{want}
		if d.initialized {
			candidates = append(candidates, d.applied, config.SafeDisplay)
		}

		var err error
		for i, c := range candidates {
			if i > 0 && c == candidates[i-1] {
				continue
			}
			if err = d.openContext(c); err == nil {
				want = c
				break
			}
			d.lg.Warn("unable to create context", "fullscreen", c.Fullscreen, "hwsurface", c.HWSurface,
				"vsync", c.VSync, "error", err)
		}

		if err != nil {
			if !d.initialized {
				d.lg.Error("createContext failed", "error", err)
				d.win.Terminate()
				d.exit(1)
			}
			return fmt.Errorf("%w: %v", ErrContext, err)
		}
		d.initialized = true
	}

	d.applied = want
	d.settings.SetDisplay(want)

	minW, minH := d.settings.MinScreenSize()
	if minW != d.minW || minH != d.minH {
		d.minW, d.minH = minW, minH
		d.win.SetMinSize(minW, minH)
		d.center()
	}

	d.WindowResize()
	d.UpdateTitleBar()
	if gamma, change := d.settings.Gamma(); change {
		d.SetGamma(gamma)
	}

	if d.icons == nil {
		icons, err := d.LoadImage(d.iconsPath)
		if err != nil {
			d.lg.Warnf("unable to load icons: %v", err)
		} else {
			d.icons = icons
		}
	}
	d.win.ResetCursor()
	return nil
}

// openContext opens a window for c and prepares the driver in its context.
func (d *OpenGLDevice) openContext(c config.Display) error {
	w, h := d.settings.ScreenSize()
	if d.initialized && d.applied.Fullscreen && !c.Fullscreen {
		// coming back from fullscreen, start at the minimum size
		w, h = d.settings.MinScreenSize()
	}

	shared, err := d.win.Open(graphics.WindowOptions{
		Title:      d.settings.Title(),
		Width:      w,
		Height:     h,
		Fullscreen: c.Fullscreen,
		HWSurface:  c.HWSurface,
		VSync:      c.VSync,
	})
	if err != nil {
		return err
	}

	lost := d.destroyed || (d.initialized && !shared)
	if lost {
		d.drv.Forget()
	}
	if err := d.drv.Init(); err != nil {
		return err
	}
	// The window is replaced, so the minimum size must be set again.
	d.minW, d.minH = 0, 0

	if err := d.buildResources(); err != nil {
		// Nothing will be drawn, but the window is usable.
		d.lg.Errorf("unable to build render resources: %v", err)
	}
	if lost {
		d.reupload()
		d.destroyed = false
	}
	return nil
}

func (d *OpenGLDevice) center() {
	if c, ok := d.win.(interface{ Center() }); ok {
		c.Center()
	}
}

// reupload recreates the textures of every live image from its CPU copy
// after the context holding them was destroyed. Content drawn on the GPU
// since the last CPU update is lost.
func (d *OpenGLDevice) reupload() {
	filter := d.textureFilter()
	for img := range d.live {
		img.texture, img.normals = Texture{}, Texture{}
		id, err := d.drv.CreateTexture(img.pixels, filter)
		if err != nil {
			d.lg.Errorf("reupload %q: %v", img.path, err)
			continue
		}
		img.texture = someTexture(id)
		if img.normalPixels != nil {
			if id, err := d.drv.CreateTexture(img.normalPixels, filter); err == nil {
				img.normals = someTexture(id)
			}
		}
	}
	d.lg.Info("textures uploaded again", "images", len(d.live))
}

// DestroyContext releases all GPU resources and closes the window. Images
// still alive lose their textures until the next CreateContext uploads
// them again.
func (d *OpenGLDevice) DestroyContext() {
	if d.icons != nil {
		d.FreeImage(d.icons)
		d.icons = nil
	}
	d.drv.DestroyResources()
	d.win.Close()
	d.drv.Forget()
	for img := range d.live {
		img.texture, img.normals = Texture{}, Texture{}
	}
	d.lg.Debug("text surfaces dropped", "count", d.text.Len())
	d.text.Purge()

	d.initialized = false
	d.destroyed = len(d.live) > 0
}

// WindowResize recomputes the viewport from the drawable size. Calling it
// again without a size change has no effect.
func (d *OpenGLDevice) WindowResize() {
	sw, sh := d.win.Size()
	minW, _ := d.settings.MinScreenSize()
	vp, ok := computeViewport(sw, sh, d.settings.ViewHeight(), minW)
	if !ok {
		return
	}
	if vp != d.viewport {
		d.lg.Debug("viewport", "view", fmt.Sprintf("%dx%d", vp.ViewW, vp.ViewH),
			"screen", fmt.Sprintf("%dx%d", vp.ScreenW, vp.ScreenH), "scale", vp.Scale)
	}
	d.viewport = vp
	d.drv.SetViewport(vp.X, vp.Y, vp.W, vp.H)
}

// UpdateTitleBar sets the window title from the settings and the icon
// from the mod path.
func (d *OpenGLDevice) UpdateTitleBar() {
	d.win.SetTitle(d.settings.Title())

	icon, err := decodeFile(d.mods.Locate(titleIconPath))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			d.lg.Warnf("unable to load title bar icon: %v", err)
		}
		return
	}
	d.win.SetIcon(icon)
}

func (d *OpenGLDevice) SetGamma(g float32) {
	if err := d.win.SetGamma(g); err != nil {
		d.lg.Warnf("SetGamma: %v", err)
	}
}
