// Package audio plays the click cue that starts every run.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrUnsupportedFormat is returned for files that are neither mp3 nor wav.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Output is where decoded sound goes. The speaker satisfies it; tests
// substitute a recorder. Lock and Unlock guard state the output goroutine
// reads while streaming.
type Output interface {
	Init(rate beep.SampleRate) error
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate) error {
	return speaker.Init(rate, rate.N(time.Second/30))
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Clear()               { speaker.Clear() }
func (speakerOutput) Lock()                { speaker.Lock() }
func (speakerOutput) Unlock()              { speaker.Unlock() }

// Player holds one decoded sound and plays it from the start on demand.
// Play, Stop and Resume never block on loading; before the sound is
// ready they do nothing.
type Player struct {
	mu sync.Mutex

	out         Output
	log         *zap.Logger
	initialized bool
	suspended   bool

	buffer  *beep.Buffer
	ready   atomic.Bool
	playing atomic.Bool
	ctrl    *beep.Ctrl
	gen     atomic.Uint64

	volume float64
	muted  bool
}

// New creates a player on the system speaker.
func New(volume float64, muted bool, log *zap.Logger) *Player {
	return NewWithOutput(speakerOutput{}, volume, muted, log)
}

// NewWithOutput creates a player on a custom output.
func NewWithOutput(out Output, volume float64, muted bool, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		out:    out,
		log:    log,
		volume: clamp(volume, 0, 1),
		muted:  muted,
	}
}

// Init opens the output device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := p.out.Init(DefaultSampleRate); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.initialized = true
	return nil
}

// Close stops playback and drops the output.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	p.initialized = false
}

// Load decodes path in the background. The returned channel receives the
// load result once and is then closed. Failures are logged, never fatal.
func (p *Player) Load(path string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		buf, err := decodeFile(path)
		if err != nil {
			p.log.Warn("cue not loaded", zap.String("path", path), zap.Error(err))
			done <- err
			return
		}
		p.mu.Lock()
		p.buffer = buf
		p.mu.Unlock()
		p.ready.Store(true)
		p.log.Debug("cue loaded",
			zap.String("path", path),
			zap.Duration("length", DefaultSampleRate.D(buf.Len())))
		done <- nil
	}()
	return done
}

// SetBuffer installs an already decoded sound.
func (p *Player) SetBuffer(buf *beep.Buffer) {
	p.mu.Lock()
	p.buffer = buf
	p.mu.Unlock()
	p.ready.Store(buf != nil)
}

// Ready reports whether a sound is loaded.
func (p *Player) Ready() bool {
	return p.ready.Load()
}

// Playing reports whether the sound is currently audible.
func (p *Player) Playing() bool {
	return p.playing.Load()
}

// Play starts the sound from the beginning.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.buffer == nil {
		return
	}
	p.stopLocked()

	gen := p.gen.Add(1)
	p.ctrl = &beep.Ctrl{Streamer: p.buffer.Streamer(0, p.buffer.Len()), Paused: p.suspended}
	vol := newVolume(p.ctrl, p.volume, p.muted)
	p.playing.Store(true)

	p.out.Play(beep.Seq(vol, beep.Callback(func() {
		// Runs on the speaker goroutine, which may hold the speaker lock
		// while Stop waits in Clear, so p.mu must not be taken here.
		if p.gen.Load() == gen {
			p.playing.Store(false)
		}
	})))
}

// Stop silences the sound.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.ctrl != nil {
		p.setPaused(true)
		p.ctrl = nil
	}
	// Clear takes the speaker lock itself.
	if p.initialized {
		p.out.Clear()
	}
	p.playing.Store(false)
}

// Suspend pauses output until Resume. Sounds played meanwhile start paused.
func (p *Player) Suspend() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.suspended = true
	if p.ctrl != nil {
		p.setPaused(true)
	}
}

// Resume lifts a previous Suspend.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.suspended {
		return
	}
	p.suspended = false
	if p.ctrl != nil {
		p.setPaused(false)
	}
}

// setPaused flips the live control under the output lock; the speaker
// goroutine reads Paused on every buffer fill.
func (p *Player) setPaused(paused bool) {
	p.out.Lock()
	p.ctrl.Paused = paused
	p.out.Unlock()
}

// Volume returns the playback volume in [0, 1].
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume sets the volume used by the next Play.
func (p *Player) SetVolume(vol float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clamp(vol, 0, 1)
}

func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  DefaultSampleRate,
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})
	if format.SampleRate != DefaultSampleRate {
		buf.Append(beep.Resample(4, format.SampleRate, DefaultSampleRate, streamer))
	} else {
		buf.Append(streamer)
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}

// newVolume maps a linear 0-1 level onto the exponential volume effect.
func newVolume(s beep.Streamer, vol float64, muted bool) *effects.Volume {
	if muted || vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
