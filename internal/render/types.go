package render

import (
	"errors"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNilImage       = errors.New("nil image")
	ErrNoTexture      = errors.New("texture not uploaded")
	ErrContext        = errors.New("context creation failed")
	ErrNotInitialized = errors.New("render device not initialized")
)

type Rect struct {
	X, Y, W, H int
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

type Point struct {
	X, Y int
}

// Color components are straight (not premultiplied) 0-255 values.
type Color struct {
	R, G, B, A uint8
}

func (c Color) vec4() mgl32.Vec4 {
	return mgl32.Vec4{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

func (c Color) nrgba() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Texture is an optional GPU texture handle. The zero value means the
// texture has not been uploaded.
type Texture struct {
	id    uint32
	valid bool
}

func someTexture(id uint32) Texture {
	return Texture{id: id, valid: true}
}

// ID returns the driver handle and whether it is set.
func (t Texture) ID() (uint32, bool) { return t.id, t.valid }

func (t Texture) Valid() bool { return t.valid }

// handle returns the driver handle, 0 when unset.
func (t Texture) handle() uint32 {
	if !t.valid {
		return 0
	}
	return t.id
}
