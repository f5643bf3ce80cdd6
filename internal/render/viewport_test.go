package render

import "testing"

func TestComputeViewport(t *testing.T) {
	tests := []struct {
		name                    string
		screenW, screenH, viewH int
		minW                    int
		want                    Viewport
	}{
		{
			name: "same size", screenW: 640, screenH: 480, viewH: 480, minW: 640,
			want: Viewport{ViewW: 640, ViewH: 480, ScreenW: 640, ScreenH: 480, Scale: 1, W: 640, H: 480},
		},
		{
			name: "wide screen keeps height", screenW: 1920, screenH: 1080, viewH: 540, minW: 640,
			want: Viewport{ViewW: 960, ViewH: 540, ScreenW: 1920, ScreenH: 1080, Scale: 0.5, W: 1920, H: 1080},
		},
		{
			name: "narrow screen letterboxed", screenW: 800, screenH: 800, viewH: 480, minW: 640,
			want: Viewport{ViewW: 640, ViewH: 480, ScreenW: 800, ScreenH: 800, Scale: 0.8, Y: 100, W: 800, H: 600},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := computeViewport(tt.screenW, tt.screenH, tt.viewH, tt.minW)
			if !ok {
				t.Fatalf("Expected a viewport")
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestComputeViewportMinimised(t *testing.T) {
	if _, ok := computeViewport(640, 0, 480, 640); ok {
		t.Errorf("Expected no viewport for a zero height screen")
	}
}

func TestWindowResizeIdempotent(t *testing.T) {
	td := newTestDevice(t)
	td.win.w, td.win.h = 800, 800
	td.mustCreateContext(t)

	first := td.Viewport()
	firstGL := td.drv.viewport
	td.WindowResize()
	td.WindowResize()

	if td.Viewport() != first {
		t.Errorf("Expected %+v, got %+v", first, td.Viewport())
	}
	if td.drv.viewport != firstGL || firstGL != [4]int{0, 100, 800, 600} {
		t.Errorf("Expected GL viewport [0 100 800 600] twice, got %v then %v", firstGL, td.drv.viewport)
	}

	td.win.w, td.win.h = 800, 0
	td.WindowResize()
	if td.Viewport() != first {
		t.Errorf("Expected minimised window to keep the viewport, got %+v", td.Viewport())
	}
}
