package render

import "math"

// Viewport relates the logical view, in which all render calls are
// expressed, to the physical drawable.
type Viewport struct {
	ViewW, ViewH     int
	ScreenW, ScreenH int
	// Scale is view pixels per screen pixel.
	Scale float64
	// GL viewport in screen pixels, centred vertically when letterboxed.
	X, Y, W, H int
}

// computeViewport keeps the logical height viewH and derives the width
// from the screen aspect ratio. When that width is below minViewW the
// width is clamped and the view letterboxed. ok is false for a minimised
// (zero sized) screen.
func computeViewport(screenW, screenH, viewH, minViewW int) (Viewport, bool) {
	if screenW <= 0 || screenH <= 0 || viewH <= 0 {
		return Viewport{}, false
	}

	scale := float64(viewH) / float64(screenH)
	viewW := int(float64(screenW) * scale)
	if viewW < minViewW {
		viewW = minViewW
		scale = float64(viewW) / float64(screenW)
	}

	w := int(math.Round(float64(viewW) / scale))
	h := int(math.Round(float64(viewH) / scale))
	return Viewport{
		ViewW:   viewW,
		ViewH:   viewH,
		ScreenW: screenW,
		ScreenH: screenH,
		Scale:   scale,
		X:       0,
		Y:       (screenH - h) / 2,
		W:       w,
		H:       h,
	}, true
}
