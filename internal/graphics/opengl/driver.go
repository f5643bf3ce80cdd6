// Package opengl implements graphics.Driver on an OpenGL 4.1 core context.
package opengl

import (
	"fmt"
	"image"

	"mini-rpg/internal/graphics"
	"mini-rpg/internal/log"
	"mini-rpg/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type Driver struct {
	lg *log.Logger

	initialized bool
	sprites     *composer
	prims       *primitives
	target      *target

	// textures tracks live texture handles so leaks show up in the log
	// when resources are torn down.
	textures map[uint32]image.Point
}

var _ graphics.Driver = (*Driver)(nil)

func New(lg *log.Logger) *Driver {
	return &Driver{
		lg:       lg,
		textures: make(map[uint32]image.Point),
	}
}

// Init must be called each time a new context is made current.
func (d *Driver) Init() error {
	if !d.initialized {
		if err := gl.Init(); err != nil {
			return fmt.Errorf("gl init: %w", err)
		}
		d.initialized = true
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	if d.sprites != nil {
		d.sprites.bindContext()
		d.prims.bindContext()
	}
	d.target = nil

	info := d.Info()
	d.lg.Info("OpenGL context", "vendor", info.Vendor, "renderer", info.Renderer, "version", info.Version)
	return nil
}

func (d *Driver) Info() graphics.Info {
	return graphics.Info{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}
}

func (d *Driver) BuildResources(sprite, primitive graphics.ProgramSources) error {
	if d.sprites != nil {
		return nil
	}

	sp, err := newProgram(sprite)
	if err != nil {
		return err
	}
	pp, err := newProgram(primitive)
	if err != nil {
		sp.delete()
		return err
	}

	d.sprites = newComposer(sp)
	d.prims = &primitives{prog: pp}
	d.sprites.bindContext()
	d.prims.bindContext()

	if err := glError("build resources"); err != nil {
		d.DestroyResources()
		return err
	}
	return nil
}

func (d *Driver) ResourcesBuilt() bool {
	return d.sprites != nil
}

func (d *Driver) DestroyResources() {
	if d.target != nil {
		d.target.end()
		d.target = nil
	}
	d.sprites.destroy()
	d.prims.destroy()
	d.sprites, d.prims = nil, nil

	if len(d.textures) > 0 {
		var bytes int
		for _, sz := range d.textures {
			bytes += 4 * sz.X * sz.Y
		}
		d.lg.Debug("textures alive at teardown", "count", len(d.textures), "bytes", bytes)
	}
}

func (d *Driver) Forget() {
	d.sprites, d.prims, d.target = nil, nil, nil
	if n := len(d.textures); n > 0 {
		d.lg.Info("context lost, textures dropped", "count", n)
	}
	clear(d.textures)
}

func (d *Driver) CreateTexture(img *image.NRGBA, filter graphics.TextureFilter) (uint32, error) {
	id, err := createTexture(img, filter)
	if err != nil {
		return 0, err
	}
	d.textures[id] = img.Rect.Size()
	return id, nil
}

func (d *Driver) UpdateTexture(id uint32, img *image.NRGBA) error {
	return updateTexture(id, img)
}

func (d *Driver) DeleteTexture(id uint32) {
	if id == 0 {
		return
	}
	gl.DeleteTextures(1, &id)
	delete(d.textures, id)
}

func (d *Driver) Compose(texture, normals uint32, offset, texelOffset mgl32.Vec4) error {
	return d.sprites.compose(texture, normals, offset, texelOffset)
}

func (d *Driver) BeginTarget(texture uint32, w, h int) error {
	if d.target != nil {
		return errNestedTarget
	}
	t, err := beginTarget(texture, w, h)
	if err != nil {
		return err
	}
	d.target = t
	return nil
}

func (d *Driver) EndTarget() {
	if d.target == nil {
		return
	}
	d.target.end()
	d.target = nil
}

func (d *Driver) DrawPrimitive(p graphics.Primitive, points []float32, color mgl32.Vec4) error {
	defer profiling.Track("opengl.primitive")()
	return d.prims.draw(p, points, color)
}

func (d *Driver) Clear() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Driver) SetViewport(x, y, w, h int) {
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
}

func (d *Driver) Flush() {
	gl.Flush()
}
