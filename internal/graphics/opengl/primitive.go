package opengl

import (
	"fmt"

	"mini-rpg/internal/graphics"
	"mini-rpg/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// primitives draws untextured points and outlines. Vertex data is
// uploaded into a temporary buffer per draw and deleted afterwards.
type primitives struct {
	prog *program
	vao  uint32 // per context
}

func (p *primitives) bindContext() {
	gl.GenVertexArrays(1, &p.vao)
}

func primitiveMode(kind graphics.Primitive) (uint32, int, error) {
	switch kind {
	case graphics.PrimitivePixel:
		return gl.POINTS, 1, nil
	case graphics.PrimitiveLine:
		return gl.LINE_STRIP, 2, nil
	case graphics.PrimitiveRect:
		return gl.LINE_LOOP, 4, nil
	}
	return 0, 0, fmt.Errorf("unknown primitive %d", kind)
}

func (p *primitives) draw(kind graphics.Primitive, points []float32, color mgl32.Vec4) error {
	if p == nil || p.vao == 0 {
		return errNoResources
	}
	mode, minVertices, err := primitiveMode(kind)
	if err != nil {
		return err
	}
	count := len(points) / 2
	if count < minVertices {
		return fmt.Errorf("primitive %d needs %d vertices, got %d", kind, minVertices, count)
	}

	p.prog.use()
	p.prog.setVec4("color", color)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	defer gl.DeleteBuffers(1, &vbo)

	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, count*2*4, gl.Ptr(points), gl.STREAM_DRAW)

	pos := p.prog.attrib("position")
	gl.EnableVertexAttribArray(pos)
	gl.VertexAttribPointerWithOffset(pos, 2, gl.FLOAT, false, 2*4, 0)

	gl.DrawArrays(mode, 0, int32(count))

	gl.DisableVertexAttribArray(pos)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	profiling.Count("gl.draws", 1)
	return glError("draw primitive")
}

func (p *primitives) destroy() {
	if p == nil {
		return
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	p.prog.delete()
}
