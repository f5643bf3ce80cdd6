package game

import (
	"time"

	"mini-rpg/internal/config"
)

// pausedFPS caps the frame rate while the window is minimized.
const pausedFPS = 10

// FPSLimiter provides high-precision frame rate limiting
type FPSLimiter struct {
	settings *config.Settings
	next     time.Time
}

// NewFPSLimiter creates a limiter that follows the settings' FPS limit
func NewFPSLimiter(settings *config.Settings) *FPSLimiter {
	return &FPSLimiter{settings: settings}
}

// Wait blocks until the next frame should be rendered. A limit of zero
// disables limiting unless paused.
// Uses a hybrid sleep/spin approach for better precision on high FPS caps.
func (f *FPSLimiter) Wait(paused bool) {
	limit := f.settings.GetFPSLimit()
	if paused {
		limit = pausedFPS
	}

	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		// spin out the last few microseconds
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// resync after a hitch instead of rushing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
