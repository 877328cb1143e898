// Package app wires the choreography to a render surface and runs the main loop.
package app

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/rollcube/internal/choreo"
	"github.com/Faultbox/rollcube/internal/config"
	"github.com/Faultbox/rollcube/internal/engine/audio"
	"github.com/Faultbox/rollcube/internal/engine/camera"
	"github.com/Faultbox/rollcube/internal/engine/capture"
	"github.com/Faultbox/rollcube/internal/engine/input"
	"github.com/Faultbox/rollcube/internal/logger"
)

// Title is the window title.
const Title = "rollcube"

// App is the running program.
type App struct {
	cfg      *config.Config
	log      *zap.Logger
	director *choreo.Director
	camera   *camera.OrthoCamera
	cue      *audio.Player
	shots    *capture.Capture
}

// New builds the director, the camera and the click cue. Audio problems are
// logged and never stop the app.
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{
		cfg:    cfg,
		log:    logger.Named("app"),
		camera: camera.NewOrthoCamera(cfg.Graphics.Width, cfg.Graphics.Height),
		shots:  capture.New(cfg.Graphics.ScreenshotDir, Title),
	}
	a.log.Info("initializing",
		zap.String("surface", cfg.Graphics.Surface),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	opts := choreo.Options{
		Timing:  cfg.Animation.Timing(),
		Logger:  logger.Named("choreo"),
		OnPhase: a.phaseChanged,
	}
	if cue := a.openCue(); cue != nil {
		a.cue = cue
		opts.Cue = cue
	}
	a.director = choreo.New(opts)
	return a, nil
}

func (a *App) openCue() *audio.Player {
	ac := a.cfg.Audio
	if ac.CuePath == "" || ac.Muted {
		a.log.Debug("cue disabled")
		return nil
	}
	cue := audio.New(float64(ac.Volume), ac.Muted, logger.Named("audio"))
	if err := cue.Init(); err != nil {
		a.log.Warn("audio unavailable", zap.Error(err))
		return nil
	}
	// Loads in the background; the first clicks may be silent.
	cue.Load(ac.CuePath)
	return cue
}

func (a *App) phaseChanged(p choreo.Phase, at time.Duration) {
	a.log.Debug("phase", zap.Stringer("phase", p), zap.Duration("at", at))
}

// Director returns the choreography driver.
func (a *App) Director() *choreo.Director { return a.director }

// Camera returns the view camera.
func (a *App) Camera() *camera.OrthoCamera { return a.camera }

// Apply carries out one input command.
func (a *App) Apply(cmd input.Command) {
	switch cmd.Action {
	case input.ActionTrigger:
		a.director.Trigger()
	case input.ActionToggleGrid:
		a.director.ToggleGrid()
	case input.ActionOrbit:
		a.camera.Orbit.HandleDrag(cmd.DX, cmd.DY)
	case input.ActionZoom:
		a.camera.Orbit.HandleZoom(cmd.Zoom)
	case input.ActionResetView:
		a.camera.Orbit.Reset()
	}
}

// Snapshot saves img as a screenshot. Failures are logged.
func (a *App) Snapshot(img image.Image) {
	name, err := a.shots.Save(img)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name))
}

// Status summarizes the current run for the terminal status line.
func (a *App) Status() string {
	d := a.director
	return fmt.Sprintf(" %s | runs %d | rolls %d | click/space: roll  right/g: grid  r: view  p: shot  q: quit",
		d.Phase(), d.Runs(), len(d.Records()))
}

// Run starts the surface named in the config and blocks until it exits.
func (a *App) Run(ctx context.Context) error {
	switch a.cfg.Graphics.Surface {
	case config.SurfaceTerminal:
		return a.runTerminal(ctx)
	default:
		return a.runGL(ctx)
	}
}

// Close releases audio.
func (a *App) Close() {
	a.log.Info("closing")
	if a.cue != nil {
		a.cue.Close()
	}
}
