// Package game runs the main loop: it reads input, applies display
// changes through the render device and draws a small scene.
package game

import (
	"fmt"
	"time"

	"mini-rpg/internal/config"
	"mini-rpg/internal/graphics/text"
	"mini-rpg/internal/input"
	"mini-rpg/internal/log"
	"mini-rpg/internal/profiling"
	"mini-rpg/internal/render"
)

const (
	heroPath   = "images/characters/hero.png"
	heroFrames = 4
	heroFrameW = 32
	heroFrameH = 48
	heroSpeed  = 120 // view pixels per second
	heroAnim   = 0.15

	gammaStep = 0.1
	fontSize  = 16

	slowFrame = 16 * time.Millisecond
)

// Window is the part of the platform window the loop needs
type Window interface {
	PollEvents()
	ShouldClose() bool
	SetShouldClose(v bool)
	Size() (int, int)
}

type App struct {
	window   Window
	device   render.RenderDevice
	settings *config.Settings
	input    *input.InputManager
	lg       *log.Logger

	font   *text.Style
	hero   *render.Sprite
	label  *render.Image
	heroX  float64
	heroY  float64
	frame  int
	anim   float64
	moving bool

	showProfiling bool

	fpsLimiter *FPSLimiter
	lastTime   time.Time
}

// NewApp loads the scene resources. The device must already have a context.
// An empty fontPath selects the built in font.
func NewApp(window Window, device render.RenderDevice, settings *config.Settings,
	im *input.InputManager, lg *log.Logger, fontPath string) (*App, error) {
	font, err := loadFont(fontPath, lg)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	a := &App{
		window:     window,
		device:     device,
		settings:   settings,
		input:      im,
		lg:         lg,
		font:       font,
		fpsLimiter: NewFPSLimiter(settings),
		lastTime:   time.Now(),
	}

	heroImg, err := device.LoadImage(heroPath)
	if err != nil {
		lg.Infof("%s unavailable, using placeholder: %v", heroPath, err)
		if heroImg = a.placeholderHero(); heroImg == nil {
			return nil, fmt.Errorf("create hero image: %w", render.ErrNoTexture)
		}
	}
	a.hero = heroImg.CreateSprite()
	a.hero.SetClip(0, 0, heroFrameW, heroFrameH)
	a.hero.Offset = render.Point{X: heroFrameW / 2, Y: heroFrameH}

	vp := device.Viewport()
	a.heroX, a.heroY = float64(vp.ViewW/2), float64(vp.ViewH/2)

	a.label = device.RenderTextToImage(font, settings.Title(), render.Color{R: 255, G: 255, B: 255, A: 255}, false)
	return a, nil
}

// loadFont loads the font file at path, falling back to the built in face
// when path is empty or unusable.
func loadFont(path string, lg *log.Logger) (*text.Style, error) {
	if path != "" {
		style, err := text.Load(path, fontSize)
		if err == nil {
			lg.Info("font loaded", "name", style.Name(), "size", style.Size())
			return style, nil
		}
		lg.Warnf("%v, using the built in font", err)
	}
	return text.Default(fontSize)
}

// placeholderHero builds a sheet of solid frames, each with a marker
// pixel so the animation is visible.
func (a *App) placeholderHero() *render.Image {
	img := a.device.CreateImage(heroFrameW*heroFrames, heroFrameH)
	if img == nil {
		return nil
	}
	if err := img.FillWithColor(render.Color{R: 60, G: 90, B: 160, A: 255}); err != nil {
		a.lg.Warnf("placeholder fill: %v", err)
	}
	for i := range heroFrames {
		if err := img.DrawPixel(i*heroFrameW+heroFrameW/2, heroFrameH/4+i, render.Color{R: 255, G: 220, B: 80, A: 255}); err != nil {
			a.lg.Warnf("placeholder marker: %v", err)
		}
	}
	return img
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

// Close frees the scene resources. The device context stays open.
func (a *App) Close() {
	if a.label != nil {
		a.device.FreeImage(a.label)
		a.label = nil
	}
	if a.hero != nil {
		a.device.FreeImage(a.hero.Image())
		a.hero = nil
	}
	if a.font != nil {
		a.font.Close()
		a.font = nil
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	a.window.PollEvents()
	a.update(dt)
	a.draw()

	if d := time.Since(startTick); d > slowFrame || a.showProfiling {
		a.lg.Info("frame", "duration", d, "top", profiling.TopN(5), "counters", profiling.Counters())
	}

	a.input.PostUpdate()

	w, h := a.window.Size()
	a.fpsLimiter.Wait(w == 0 || h == 0)
}

func (a *App) update(dt float64) {
	if a.input.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if a.input.JustPressed(input.ActionToggleProfiling) {
		a.showProfiling = !a.showProfiling
	}
	a.updateDisplay()
	a.updateGamma()
	a.updateHero(dt)
}

// updateDisplay rebuilds the context when a display toggle was pressed.
func (a *App) updateDisplay() {
	d := a.settings.Display()
	changed := false
	toggle := func(act input.Action, v *bool) {
		if a.input.JustPressed(act) {
			*v = !*v
			changed = true
		}
	}
	toggle(input.ActionToggleFullscreen, &d.Fullscreen)
	toggle(input.ActionToggleVSync, &d.VSync)
	toggle(input.ActionToggleHWSurface, &d.HWSurface)
	toggle(input.ActionToggleTextureFilter, &d.TextureFilter)
	if !changed {
		return
	}

	a.settings.SetDisplay(d)
	if err := a.device.CreateContext(); err != nil {
		a.lg.Warnf("display change failed: %v", err)
	}
	a.clampHero()
}

func (a *App) updateGamma() {
	step := float32(0)
	if a.input.JustPressed(input.ActionGammaUp) {
		step += gammaStep
	}
	if a.input.JustPressed(input.ActionGammaDown) {
		step -= gammaStep
	}
	if step == 0 {
		return
	}
	g, _ := a.settings.Gamma()
	a.settings.SetGamma(g + step)
	g, _ = a.settings.Gamma()
	a.device.SetGamma(g)
}

func (a *App) updateHero(dt float64) {
	dx, dy := 0.0, 0.0
	if a.input.IsActive(input.ActionMoveLeft) {
		dx--
	}
	if a.input.IsActive(input.ActionMoveRight) {
		dx++
	}
	if a.input.IsActive(input.ActionMoveUp) {
		dy--
	}
	if a.input.IsActive(input.ActionMoveDown) {
		dy++
	}
	if a.input.JustPressed(input.ActionMouseLeft) {
		vp := a.device.Viewport()
		a.heroX, a.heroY = float64(vp.ViewW/2), float64(vp.ViewH/2)
	}

	a.moving = dx != 0 || dy != 0
	if !a.moving {
		a.frame, a.anim = 0, 0
		return
	}
	a.heroX += dx * heroSpeed * dt
	a.heroY += dy * heroSpeed * dt
	a.clampHero()

	a.anim += dt
	for a.anim >= heroAnim {
		a.anim -= heroAnim
		a.frame = (a.frame + 1) % heroFrames
	}
}

// clampHero keeps the hero inside the view, which shrinks or grows with
// the window.
func (a *App) clampHero() {
	vp := a.device.Viewport()
	a.heroX = min(max(a.heroX, heroFrameW/2), float64(vp.ViewW-heroFrameW/2))
	a.heroY = min(max(a.heroY, heroFrameH), float64(vp.ViewH))
}

func (a *App) draw() {
	defer profiling.Track("game.draw")()

	a.device.BlankScreen()
	vp := a.device.Viewport()

	if a.hero != nil {
		a.hero.SetClip(a.frame*heroFrameW, 0, heroFrameW, heroFrameH)
		a.hero.SetDest(int(a.heroX), int(a.heroY))
		if err := a.device.Render(a.hero); err != nil {
			a.lg.Debugf("render hero: %v", err)
		}
		if a.moving {
			x, y := int(a.heroX), int(a.heroY)
			a.device.DrawRectangle(
				render.Point{X: x - heroFrameW/2 - 1, Y: y - heroFrameH - 1},
				render.Point{X: x + heroFrameW/2, Y: y},
				render.Color{R: 255, G: 255, A: 255})
		}
	}

	// ground line
	a.device.DrawLine(0, vp.ViewH-1, vp.ViewW-1, vp.ViewH-1, render.Color{R: 90, G: 160, B: 70, A: 255})

	if a.label != nil {
		a.device.RenderRenderable(render.Renderable{
			Image: a.label,
			Src:   render.Rect{W: a.label.Width(), H: a.label.Height()},
		}, render.Rect{X: 8, Y: 8})
	}

	g, _ := a.settings.Gamma()
	d := a.settings.Display()
	status := fmt.Sprintf("%dx%d hw:%t vsync:%t linear:%t gamma:%.1f",
		vp.ViewW, vp.ViewH, d.HWSurface, d.VSync, d.TextureFilter, g)
	a.device.RenderText(a.font, status, render.Color{R: 200, G: 200, B: 200, A: 255},
		render.Rect{X: 8, Y: 8 + a.font.LineHeight()})

	a.device.CommitFrame()
}
