package opengl

import (
	"errors"

	"mini-rpg/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var errNoResources = errors.New("gpu resources not built")

var (
	quadPositions = []float32{
		-1, -1,
		1, -1,
		-1, 1,
		1, 1,
	}
	quadElements = []uint16{0, 1, 2, 3}
)

// composer draws textured quads with the sprite program. The vertex and
// element buffers are built once and shared by every draw; only the
// uniforms change per sprite.
type composer struct {
	prog *program
	vbo  uint32
	ebo  uint32
	vao  uint32 // per context
}

func newComposer(prog *program) *composer {
	c := &composer{prog: prog}

	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadPositions)*4, gl.Ptr(quadPositions), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.GenBuffers(1, &c.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, c.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadElements)*2, gl.Ptr(quadElements), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	return c
}

// bindContext builds the vertex array for the current context. Vertex
// arrays are not shared between contexts, unlike the buffers they point at.
func (c *composer) bindContext() {
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	pos := c.prog.attrib("position")
	gl.EnableVertexAttribArray(pos)
	gl.VertexAttribPointerWithOffset(pos, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, c.ebo)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (c *composer) compose(texture, normals uint32, offset, texelOffset mgl32.Vec4) error {
	if c == nil || c.vao == 0 {
		return errNoResources
	}
	defer profiling.Track("opengl.compose")()

	c.prog.use()

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	c.prog.setInt("tex", 0)

	lighting := normals != 0
	if lighting {
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, normals)
		c.prog.setInt("normals", 1)
	}
	c.prog.setBool("lightEnabled", lighting)

	c.prog.setVec4("offset", offset)
	c.prog.setVec4("texelOffset", texelOffset)

	gl.BindVertexArray(c.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLE_STRIP, int32(len(quadElements)), gl.UNSIGNED_SHORT, 0)
	gl.BindVertexArray(0)

	if lighting {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.ActiveTexture(gl.TEXTURE0)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	profiling.Count("gl.draws", 1)
	return glError("compose")
}

func (c *composer) destroy() {
	if c == nil {
		return
	}
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
	gl.DeleteBuffers(1, &c.vbo)
	gl.DeleteBuffers(1, &c.ebo)
	c.prog.delete()
}
