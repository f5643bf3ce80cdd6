// mini-rpg opens the render device and runs a small scene that exercises
// it: sprites, primitives, text and live display changes.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"mini-rpg/internal/config"
	"mini-rpg/internal/game"
	"mini-rpg/internal/graphics/opengl"
	"mini-rpg/internal/input"
	"mini-rpg/internal/log"
	"mini-rpg/internal/mods"
	"mini-rpg/internal/platform"
	"mini-rpg/internal/render"

	"github.com/xlab/closer"
)

var (
	fullscreen = flag.Bool("fullscreen", false, "start in fullscreen mode")
	hwSurface  = flag.Bool("hwsurface", true, "use a hardware accelerated context")
	vsync      = flag.Bool("vsync", true, "synchronize buffer swaps with the display")
	filter     = flag.Bool("filter", false, "linear texture filtering instead of nearest")
	width      = flag.Int("width", 640, "window width")
	height     = flag.Int("height", 480, "window height")
	viewHeight = flag.Int("view-height", 480, "logical view height in pixels")
	fpsLimit   = flag.Int("fps", 60, "frame rate limit, 0 for none")
	modDirs    = flag.String("mods", ".", "comma-separated data directories, lowest priority first")
	fontFile   = flag.String("font", "", "TrueType or OpenType font file, empty for the built in font")
	logLevel   = flag.String("log-level", "info", "logging level: debug, info, warn, error")
	logDir     = flag.String("log-dir", "", "log file directory")
)

func init() {
	// GLFW and GL calls must all come from the main thread
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	settings := config.Default()
	settings.SetDisplay(config.Display{
		Fullscreen:    *fullscreen,
		HWSurface:     *hwSurface,
		VSync:         *vsync,
		TextureFilter: *filter,
	})
	settings.SetScreenSize(*width, *height)
	settings.SetViewHeight(*viewHeight)
	settings.SetFPSLimit(*fpsLimit)
	settings.SetLogLevel(*logLevel)

	lg := log.New(settings.LogLevel(), *logDir)
	// closer runs this on its own goroutine, so only the log file is
	// released here; GL teardown happens on the main thread below.
	closer.Bind(func() {
		lg.Info("shutting down")
		lg.Close()
	})

	if err := platform.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		lg.Errorf("%v", err)
		closer.Exit(1)
		return
	}

	window := platform.New(lg)
	device := render.NewOpenGLDevice(opengl.New(lg), window, render.Options{
		Settings: settings,
		Mods:     mods.NewLocator(strings.Split(*modDirs, ",")...),
		Log:      lg,
	})
	// Exits through closer if no context at all can be created.
	device.CreateContext()
	window.SetResizeCallback(func(w, h int) { device.WindowResize() })

	im := input.NewInputManager()
	im.Attach(window)

	app, err := game.NewApp(window, device, settings, im, lg, *fontFile)
	if err != nil {
		lg.Errorf("%v", err)
		device.DestroyContext()
		window.Terminate()
		closer.Exit(1)
		return
	}
	app.Run()

	app.Close()
	device.DestroyContext()
	window.Terminate()
	closer.Close()
}
