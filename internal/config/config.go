// Package config handles rollcube configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/rollcube/internal/choreo"
)

// Render surfaces.
const (
	SurfaceGL       = "gl"
	SurfaceTerminal = "terminal"
)

// Config holds all settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Audio     AudioConfig     `yaml:"audio"`
	Animation AnimationConfig `yaml:"animation"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Surface       string `yaml:"surface"` // "gl" or "terminal"
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Fullscreen    bool   `yaml:"fullscreen"`
	VSync         bool   `yaml:"vsync"`
	Samples       int    `yaml:"samples"` // MSAA; 0 picks the default, -1 disables
	FPSLimit      int    `yaml:"fps_limit"`
	Shadows       bool   `yaml:"shadows"`
	ShadowMapSize int    `yaml:"shadow_map_size"`
	ShowBounds    bool   `yaml:"show_bounds"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// AudioConfig holds the click cue settings.
type AudioConfig struct {
	CuePath string  `yaml:"cue_path"` // mp3 or wav; empty disables the cue
	Volume  float32 `yaml:"volume"`
	Muted   bool    `yaml:"muted"`
}

// AnimationConfig holds the timeline durations.
type AnimationConfig struct {
	Roll        time.Duration `yaml:"roll"`
	RollPause   time.Duration `yaml:"roll_pause"`
	Intro       time.Duration `yaml:"intro"`
	IntroPause  time.Duration `yaml:"intro_pause"`
	ShakeDelay  time.Duration `yaml:"shake_delay"`
	Impact      time.Duration `yaml:"impact"`
	Jump        time.Duration `yaml:"jump"`
	JumpPause   time.Duration `yaml:"jump_pause"`
	Drop        time.Duration `yaml:"drop"`
	BounceDelay time.Duration `yaml:"bounce_delay"`
	Solidify    time.Duration `yaml:"solidify"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Surface:       SurfaceGL,
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			FPSLimit:      0,
			Shadows:       true,
			ShadowMapSize: 2048,
			ScreenshotDir: "screenshots",
		},
		Audio: AudioConfig{
			CuePath: "assets/cue.mp3",
			Volume:  0.5,
			Muted:   false,
		},
		Animation: AnimationFrom(choreo.DefaultTiming()),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// AnimationFrom converts a timeline to its config form.
func AnimationFrom(t choreo.Timing) AnimationConfig {
	return AnimationConfig{
		Roll:        t.Roll,
		RollPause:   t.RollPause,
		Intro:       t.Intro,
		IntroPause:  t.IntroPause,
		ShakeDelay:  t.ShakeDelay,
		Impact:      t.Impact,
		Jump:        t.Jump,
		JumpPause:   t.JumpPause,
		Drop:        t.Drop,
		BounceDelay: t.BounceDelay,
		Solidify:    t.Solidify,
	}
}

// Timing converts the durations to a choreography timeline.
func (a AnimationConfig) Timing() choreo.Timing {
	return choreo.Timing{
		Roll:        a.Roll,
		RollPause:   a.RollPause,
		Intro:       a.Intro,
		IntroPause:  a.IntroPause,
		ShakeDelay:  a.ShakeDelay,
		Impact:      a.Impact,
		Jump:        a.Jump,
		JumpPause:   a.JumpPause,
		Drop:        a.Drop,
		BounceDelay: a.BounceDelay,
		Solidify:    a.Solidify,
	}
}

// Validate checks values a file or flag could have set out of range.
func (c *Config) Validate() error {
	switch c.Graphics.Surface {
	case SurfaceGL, SurfaceTerminal:
	default:
		return fmt.Errorf("graphics.surface: unknown surface %q", c.Graphics.Surface)
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume: %v out of range [0, 1]", c.Audio.Volume)
	}
	for name, d := range map[string]time.Duration{
		"roll":     c.Animation.Roll,
		"intro":    c.Animation.Intro,
		"jump":     c.Animation.Jump,
		"drop":     c.Animation.Drop,
		"solidify": c.Animation.Solidify,
	} {
		if d < 0 {
			return fmt.Errorf("animation.%s: negative duration %v", name, d)
		}
	}
	return nil
}
