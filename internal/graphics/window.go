package graphics

import "image"

// WindowOptions describes the window and context to open
type WindowOptions struct {
	Title         string
	Width, Height int // windowed size; fullscreen uses the desktop mode
	Fullscreen    bool
	HWSurface     bool
	VSync         bool
}

// Window is a native window owning the current graphics context.
type Window interface {
	// Open replaces the current window with a new one. On failure the
	// previous window, if any, stays current. shared reports whether GPU
	// objects created in the previous context are usable in the new one.
	Open(opts WindowOptions) (shared bool, err error)
	Close()
	Terminate()

	// Size returns the drawable size in pixels
	Size() (int, int)
	SetMinSize(w, h int)
	SetTitle(title string)
	SetIcon(img image.Image)
	SetGamma(gamma float32) error
	ResetCursor()
	Swap()
}
