package render

import "github.com/go-gl/mathgl/mgl32"

// clipToFrame places the source rectangle clip with its top-left corner at
// pos, relative to frame, and trims it to the frame. The returned
// destination is in the frame's parent coordinates and always has the same
// size as the returned source, so the visible part is never stretched.
// ok is false when nothing is visible.
func clipToFrame(clip Rect, pos Point, frame Rect) (src, dest Rect, ok bool) {
	src = clip
	left, up := pos.X, pos.Y
	right, down := left+clip.W, up+clip.H

	if left >= frame.W || right <= 0 || up >= frame.H || down <= 0 {
		return Rect{}, Rect{}, false
	}
	if left < 0 {
		src.X -= left
		left = 0
	}
	if up < 0 {
		src.Y -= up
		up = 0
	}
	right = min(right, frame.W)
	down = min(down, frame.H)
	src.W, src.H = right-left, down-up

	// A negative source origin would stretch the texture; shrink the source
	// and move the destination instead.
	if src.X < 0 {
		src.W += src.X
		left -= src.X
		src.X = 0
	}
	if src.Y < 0 {
		src.H += src.Y
		up -= src.Y
		src.Y = 0
	}
	if src.Empty() {
		return Rect{}, Rect{}, false
	}

	return src, Rect{X: frame.X + left, Y: frame.Y + up, W: src.W, H: src.H}, true
}

// quadOffsets returns the sprite program uniforms drawing src of a texW x
// texH texture at dest on a frameW x frameH target. View space and texel
// space fractions are kept in separate vectors.
func quadOffsets(src, dest Rect, texW, texH, frameW, frameH int) (offset, texel mgl32.Vec4) {
	fw, fh := float32(frameW), float32(frameH)
	tw, th := float32(texW), float32(texH)

	offset = mgl32.Vec4{
		2 * float32(dest.X) / fw,
		2 * float32(dest.Y) / fh,
		float32(dest.W) / fw,
		float32(dest.H) / fh,
	}
	texel = mgl32.Vec4{
		tw / float32(src.W),
		float32(src.X) / tw,
		th / float32(src.H),
		float32(src.Y) / th,
	}
	return offset, texel
}

// flipTarget converts offsets for a texture target, whose rows run bottom
// up in clip space.
func flipTarget(offset mgl32.Vec4) mgl32.Vec4 {
	offset[1] = 2 - offset[1]
	offset[3] = -offset[3]
	return offset
}

// pixelToNDC maps the centre of view pixel (x, y) to clip space, y down.
func pixelToNDC(x, y, viewW, viewH int) (float32, float32) {
	return 2*(float32(x)+0.5)/float32(viewW) - 1, 1 - 2*(float32(y)+0.5)/float32(viewH)
}
