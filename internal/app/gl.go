package app

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/rollcube/internal/engine/capture"
	"github.com/Faultbox/rollcube/internal/engine/input"
	"github.com/Faultbox/rollcube/internal/engine/input/sdlinput"
	"github.com/Faultbox/rollcube/internal/engine/renderer"
	"github.com/Faultbox/rollcube/internal/engine/window"
)

func (a *App) runGL(ctx context.Context) error {
	gc := a.cfg.Graphics

	// Create window (this also creates OpenGL context)
	win, err := window.New(window.Config{
		Title:      Title,
		Width:      gc.Width,
		Height:     gc.Height,
		Fullscreen: gc.Fullscreen,
		VSync:      gc.VSync,
		Samples:    gc.Samples,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	// Create renderer (AFTER window, since OpenGL context must exist)
	fbw, fbh := win.DrawableSize()
	r, err := renderer.New(renderer.Config{
		Width:         fbw,
		Height:        fbh,
		Shadows:       gc.Shadows,
		ShadowMapSize: gc.ShadowMapSize,
		ShowBounds:    gc.ShowBounds,
	})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Close()
	a.camera.Resize(win.GetSize())

	in := sdlinput.New()
	gesture := input.NewGesture()
	showBounds := gc.ShowBounds
	wantShot := false

	var minFrame time.Duration
	if gc.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(gc.FPSLimit)
	}

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting render loop")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if in.Update() {
			return nil
		}
		for _, event := range in.Events() {
			switch event.Type {
			case input.EventWindowResize:
				a.camera.Resize(event.Width, event.Height)
				r.Resize(win.DrawableSize())
			case input.EventKeyDown:
				switch sdl.Scancode(event.Key) {
				case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
					return nil
				case sdl.SCANCODE_SPACE:
					a.Apply(input.Command{Action: input.ActionTrigger})
				case sdl.SCANCODE_G:
					a.Apply(input.Command{Action: input.ActionToggleGrid})
				case sdl.SCANCODE_B:
					showBounds = !showBounds
					r.SetShowBounds(showBounds)
				case sdl.SCANCODE_R:
					a.Apply(input.Command{Action: input.ActionResetView})
				case sdl.SCANCODE_P:
					wantShot = true
				}
			default:
				a.Apply(gesture.Handle(event))
			}
		}

		// 2. Advance the choreography
		a.director.Update(dt)

		win.SetTitle(fmt.Sprintf("%s - %s", Title, a.director.Phase()))

		// 3. Render and present
		r.Render(a.director.Frame(), a.camera)
		if wantShot {
			wantShot = false
			a.glSnapshot(r)
		}
		win.SwapBuffers()

		if minFrame > 0 {
			if spent := time.Since(now); spent < minFrame {
				time.Sleep(minFrame - spent)
			}
		}

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

// glSnapshot reads the frame just rendered, before the buffers swap.
func (a *App) glSnapshot(r *renderer.Renderer) {
	pixels, w, h := r.ReadPixels()
	img, err := capture.FromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.Snapshot(img)
}
