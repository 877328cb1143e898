package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

type recorder struct {
	inits   int
	clears  int
	locks   int
	streams []beep.Streamer
	initErr error

	held          bool
	clearedLocked bool
}

func (r *recorder) Init(beep.SampleRate) error {
	r.inits++
	return r.initErr
}

func (r *recorder) Play(s beep.Streamer) { r.streams = append(r.streams, s) }
func (r *recorder) Clear() {
	r.clears++
	if r.held {
		r.clearedLocked = true
	}
}

func (r *recorder) Lock() {
	r.locks++
	r.held = true
}

func (r *recorder) Unlock() { r.held = false }

// drain streams s until it ends or the limit is hit.
func drain(s beep.Streamer) {
	samples := make([][2]float64, 512)
	for i := 0; i < 16; i++ {
		if _, ok := s.Stream(samples); !ok {
			return
		}
	}
}

func testFormat() beep.Format {
	return beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2}
}

func silentBuffer(n int) *beep.Buffer {
	buf := beep.NewBuffer(testFormat())
	buf.Append(beep.Silence(n))
	return buf
}

func TestVolumeConversion(t *testing.T) {
	tests := []struct {
		vol    float64
		muted  bool
		want   float64
		silent bool
	}{
		{vol: 1.0, want: 0},
		{vol: 0.5, want: -1},
		{vol: 0.25, want: -2},
		{vol: 0.0, silent: true},
		{vol: 0.8, muted: true, silent: true},
	}

	for _, tt := range tests {
		v := newVolume(beep.Silence(1), tt.vol, tt.muted)
		if v.Silent != tt.silent {
			t.Errorf("newVolume(%f, %v).Silent = %v, want %v", tt.vol, tt.muted, v.Silent, tt.silent)
		}
		if !tt.silent && math.Abs(v.Volume-tt.want) > 1e-9 {
			t.Errorf("newVolume(%f).Volume = %f, want %f", tt.vol, v.Volume, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewPlayer(t *testing.T) {
	p := NewWithOutput(&recorder{}, 2, false, nil)
	if p.Volume() != 1 {
		t.Errorf("volume = %f, want 1 (clamped)", p.Volume())
	}
	if p.Ready() {
		t.Error("new player should not be ready")
	}
	if p.Playing() {
		t.Error("new player should not be playing")
	}
}

func TestPlayBeforeReady(t *testing.T) {
	rec := &recorder{}
	p := NewWithOutput(rec, 0.5, false, nil)
	if err := p.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	p.Play()
	p.Stop()
	p.Resume()
	if len(rec.streams) != 0 {
		t.Errorf("expected nothing played, got %d streams", len(rec.streams))
	}
}

func TestPlayBeforeInit(t *testing.T) {
	rec := &recorder{}
	p := NewWithOutput(rec, 0.5, false, nil)
	p.SetBuffer(silentBuffer(100))

	p.Play()
	if len(rec.streams) != 0 || p.Playing() {
		t.Error("expected no playback without an output")
	}
}

func TestInitError(t *testing.T) {
	rec := &recorder{initErr: errors.New("no device")}
	p := NewWithOutput(rec, 0.5, false, nil)
	if err := p.Init(); err == nil {
		t.Fatal("expected init error")
	}
}

func TestInitOnce(t *testing.T) {
	rec := &recorder{}
	p := NewWithOutput(rec, 0.5, false, nil)
	_ = p.Init()
	_ = p.Init()
	if rec.inits != 1 {
		t.Errorf("expected one init, got %d", rec.inits)
	}
}

func TestPlayAndFinish(t *testing.T) {
	rec := &recorder{}
	p := NewWithOutput(rec, 0.5, false, nil)
	if err := p.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	p.SetBuffer(silentBuffer(100))

	p.Play()
	if !p.Playing() {
		t.Fatal("expected playing after Play")
	}
	if len(rec.streams) != 1 {
		t.Fatalf("expected 1 stream, got %d", len(rec.streams))
	}

	drain(rec.streams[0])
	if p.Playing() {
		t.Error("expected playing to clear once the sound ends")
	}
}

func TestReplayRestarts(t *testing.T) {
	rec := &recorder{}
	p := NewWithOutput(rec, 0.5, false, nil)
	_ = p.Init()
	p.SetBuffer(silentBuffer(100))

	p.Play()
	p.Play()
	if len(rec.streams) != 2 {
		t.Fatalf("expected 2 streams, got %d", len(rec.streams))
	}

	// The first sound finishing must not clear the second one's flag
	drain(rec.streams[0])
	if !p.Playing() {
		t.Error("expected second play to still be playing")
	}

	p.Stop()
	if p.Playing() {
		t.Error("expected stop to clear playing")
	}
}

func TestSuspendResume(t *testing.T) {
	rec := &recorder{}
	p := NewWithOutput(rec, 0.5, false, nil)
	_ = p.Init()
	p.SetBuffer(silentBuffer(100))

	p.Suspend()
	p.Play()
	if !p.ctrl.Paused {
		t.Error("expected sound played while suspended to start paused")
	}

	p.Resume()
	if p.ctrl.Paused {
		t.Error("expected resume to unpause")
	}
}

func TestPauseTakesOutputLock(t *testing.T) {
	rec := &recorder{}
	p := NewWithOutput(rec, 0.5, false, nil)
	_ = p.Init()
	p.SetBuffer(silentBuffer(100))

	p.Suspend()
	if rec.locks != 0 {
		t.Errorf("expected no lock without a live sound, got %d", rec.locks)
	}

	p.Play()
	p.Resume()
	if rec.locks != 1 {
		t.Errorf("expected resume to lock once, got %d", rec.locks)
	}
	p.Suspend()
	if rec.locks != 2 {
		t.Errorf("expected suspend to lock once, got %d", rec.locks)
	}

	p.Stop()
	if rec.locks != 3 {
		t.Errorf("expected stop to lock once, got %d", rec.locks)
	}
	if rec.held {
		t.Error("expected output lock released")
	}
	if rec.clearedLocked {
		t.Error("expected Clear outside the output lock")
	}
}

func TestLoadWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cue.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := wav.Encode(f, beep.Silence(100), testFormat()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	p := NewWithOutput(&recorder{}, 0.5, false, nil)
	if err := <-p.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !p.Ready() {
		t.Error("expected ready after load")
	}
	if p.buffer.Len() != 100 {
		t.Errorf("expected 100 samples, got %d", p.buffer.Len())
	}
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	ogg := filepath.Join(dir, "cue.ogg")
	if err := os.WriteFile(ogg, []byte("OggS"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewWithOutput(&recorder{}, 0.5, false, nil)

	if err := <-p.Load(ogg); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if err := <-p.Load(filepath.Join(dir, "missing.mp3")); err == nil {
		t.Error("expected error for missing file")
	}
	if p.Ready() {
		t.Error("failed loads must not mark the player ready")
	}
}
