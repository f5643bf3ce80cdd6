package config

import "sync"

// Display holds the window and context options that require a context
// rebuild when they change.
type Display struct {
	Fullscreen    bool
	HWSurface     bool // hardware accelerated context
	VSync         bool
	TextureFilter bool // linear filtering instead of nearest
}

// SafeDisplay is the most conservative display configuration, used when
// neither the requested nor the previous configuration can be applied.
var SafeDisplay = Display{}

// Settings holds render configuration shared by the device and the game loop
type Settings struct {
	mu sync.RWMutex

	display Display

	minScreenW, minScreenH int
	screenW, screenH       int // requested window size
	viewH                  int // logical view height
	gamma                  float32
	changeGamma            bool
	fpsLimit               int
	title                  string
	logLevel               string
}

// Default returns settings with the engine defaults
func Default() *Settings {
	return &Settings{
		display:     Display{HWSurface: true, VSync: true},
		minScreenW:  640,
		minScreenH:  480,
		screenW:     640,
		screenH:     480,
		viewH:       480,
		gamma:       1.0,
		changeGamma: false,
		fpsLimit:    60,
		title:       "mini-rpg",
		logLevel:    "info",
	}
}

// Display returns the requested display configuration
func (s *Settings) Display() Display {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.display
}

// SetDisplay replaces the requested display configuration
func (s *Settings) SetDisplay(d Display) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display = d
}

// MinScreenSize returns the minimum window size in pixels
func (s *Settings) MinScreenSize() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minScreenW, s.minScreenH
}

// SetMinScreenSize sets the minimum window size in pixels
func (s *Settings) SetMinScreenSize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	s.minScreenW, s.minScreenH = w, h
}

// ScreenSize returns the requested windowed size
func (s *Settings) ScreenSize() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screenW, s.screenH
}

// SetScreenSize sets the requested windowed size. It never goes below the minimum.
func (s *Settings) SetScreenSize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w < s.minScreenW {
		w = s.minScreenW
	}
	if h < s.minScreenH {
		h = s.minScreenH
	}
	s.screenW, s.screenH = w, h
}

// ViewHeight returns the logical view height in pixels
func (s *Settings) ViewHeight() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewH
}

// SetViewHeight sets the logical view height
func (s *Settings) SetViewHeight(h int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h < 1 {
		h = 1
	}
	s.viewH = h
}

// Gamma returns the configured gamma and whether it should be applied
func (s *Settings) Gamma() (float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gamma, s.changeGamma
}

// SetGamma sets the gamma value and enables gamma changes
func (s *Settings) SetGamma(g float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clamp to reasonable values
	if g < 0.5 {
		g = 0.5
	}
	if g > 2.0 {
		g = 2.0
	}
	s.gamma = g
	s.changeGamma = true
}

// GetFPSLimit returns the frame cap, 0 means unlimited
func (s *Settings) GetFPSLimit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fpsLimit
}

// SetFPSLimit sets the frame cap
func (s *Settings) SetFPSLimit(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}
	s.fpsLimit = limit
}

// Title returns the window title text
func (s *Settings) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.title
}

// SetTitle sets the window title text
func (s *Settings) SetTitle(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = t
}

// LogLevel returns the configured log level name
func (s *Settings) LogLevel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logLevel
}

// SetLogLevel sets the log level name. Unknown names fall back to info.
func (s *Settings) SetLogLevel(level string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch level {
	case "debug", "info", "warn", "error":
	default:
		level = "info"
	}
	s.logLevel = level
}
