package opengl

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var errNestedTarget = errors.New("render target already bound")

// target is an off-screen framebuffer bound to a texture, together with
// the state it replaced.
type target struct {
	fbo      uint32
	viewport [4]int32
}

func beginTarget(texture uint32, w, h int) (*target, error) {
	if texture == 0 {
		return nil, fmt.Errorf("render target: no texture")
	}
	t := &target{}
	gl.GetIntegerv(gl.VIEWPORT, &t.viewport[0])

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, texture, 0)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		t.end()
		return nil, fmt.Errorf("framebuffer incomplete: 0x%04x", status)
	}

	gl.Viewport(0, 0, int32(w), int32(h))
	return t, nil
}

// end restores the default framebuffer and viewport and releases the
// framebuffer object.
func (t *target) end() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.Viewport(t.viewport[0], t.viewport[1], t.viewport[2], t.viewport[3])
}
