// Package window opens the SDL2 window and its OpenGL 4.1 core context.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/rollcube/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// DefaultSamples is the MSAA sample count used when Config.Samples is zero.
const DefaultSamples = 4

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// Samples is the multisample count. Negative disables MSAA.
	Samples int
}

// Window wraps the SDL2 window and its GL context.
type Window struct {
	config  Config
	log     *zap.Logger
	win     *sdl.Window
	context sdl.GLContext
	title   string
}

type attribute struct {
	attr  sdl.GLattr
	value int
}

// attributes lists the context attributes set before the window is created.
func attributes(samples int) []attribute {
	attrs := []attribute{
		// 4.1 core is the newest profile macOS offers
		{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
		{sdl.GL_CONTEXT_MINOR_VERSION, 1},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
	}
	if samples > 0 {
		attrs = append(attrs,
			attribute{sdl.GL_MULTISAMPLEBUFFERS, 1},
			attribute{sdl.GL_MULTISAMPLESAMPLES, samples},
		)
	} else {
		attrs = append(attrs,
			attribute{sdl.GL_MULTISAMPLEBUFFERS, 0},
			attribute{sdl.GL_MULTISAMPLESAMPLES, 0},
		)
	}
	return attrs
}

func windowFlags(cfg Config) uint32 {
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	return flags
}

func samples(cfg Config) int {
	switch {
	case cfg.Samples == 0:
		return DefaultSamples
	case cfg.Samples < 0:
		return 0
	default:
		return cfg.Samples
	}
}

// New initializes SDL and opens the window. When the driver refuses a
// multisampled context it retries without MSAA.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.Named("window"),
		title:  cfg.Title,
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	n := samples(cfg)
	err := w.open(n)
	if err != nil && n > 0 {
		w.log.Warn("multisampled context unavailable, retrying without MSAA", zap.Error(err))
		n = 0
		err = w.open(0)
	}
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("samples", n),
	)
	return w, nil
}

func (w *Window) open(samples int) error {
	for _, a := range attributes(samples) {
		sdl.GLSetAttribute(a.attr, a.value)
	}

	win, err := sdl.CreateWindow(w.config.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(w.config.Width), int32(w.config.Height),
		windowFlags(w.config))
	if err != nil {
		return fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		return fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}
	w.win, w.context = win, ctx
	return nil
}

// Close destroys the window and shuts SDL down.
func (w *Window) Close() {
	w.log.Info("closing window")
	if w.context != nil {
		sdl.GLDeleteContext(w.context)
	}
	if w.win != nil {
		w.win.Destroy()
	}
	sdl.Quit()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.win.GLSwap()
}

// GetSize returns the window size in screen coordinates.
func (w *Window) GetSize() (int, int) {
	width, height := w.win.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size in pixels, which differs from
// the window size on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.win.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle changes the title bar. Repeating the current title is a no-op.
func (w *Window) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	w.win.SetTitle(title)
}
