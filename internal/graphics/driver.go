package graphics

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// TextureFilter selects how textures are sampled when scaled
type TextureFilter int

const (
	FilterNearest TextureFilter = iota
	FilterLinear
)

// Primitive is the topology used by DrawPrimitive
type Primitive int

const (
	PrimitivePixel Primitive = iota // single point
	PrimitiveLine                   // open polyline
	PrimitiveRect                   // closed outline
)

// ShaderSource is GLSL text together with the file it came from, used in
// diagnostics.
type ShaderSource struct {
	Name   string
	Source string
}

// ProgramSources pairs the two stages of a program
type ProgramSources struct {
	Vertex   ShaderSource
	Fragment ShaderSource
}

// Info describes the active graphics context
type Info struct {
	Vendor   string
	Renderer string
	Version  string
}

// Driver is the GPU facing half of the render device. All methods must be
// called from the thread that owns the current context.
//
// Offsets passed to Compose follow the sprite program's conventions:
// offset is (x, y) translation in NDC units followed by the destination
// width and height as fractions of the target; texelOffset is
// (texW/srcW, srcX/texW, texH/srcH, srcY/texH).
type Driver interface {
	// Init loads function pointers and per-context state for the context
	// that was just made current.
	Init() error
	Info() Info

	BuildResources(sprite, primitive ProgramSources) error
	ResourcesBuilt() bool
	DestroyResources()
	// Forget drops every handle without releasing it, for use after the
	// context owning them has been destroyed.
	Forget()

	// CreateTexture uploads img with straight alpha. Handles are never 0.
	CreateTexture(img *image.NRGBA, filter TextureFilter) (uint32, error)
	UpdateTexture(id uint32, img *image.NRGBA) error
	DeleteTexture(id uint32)

	// Compose draws one textured quad. A zero normals handle disables
	// lighting.
	Compose(texture, normals uint32, offset, texelOffset mgl32.Vec4) error

	// BeginTarget redirects drawing into texture until EndTarget.
	BeginTarget(texture uint32, w, h int) error
	EndTarget()

	// DrawPrimitive draws points given as NDC x,y pairs.
	DrawPrimitive(p Primitive, points []float32, color mgl32.Vec4) error

	Clear()
	SetViewport(x, y, w, h int)
	Flush()
}
