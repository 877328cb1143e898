// Package tween drives time-based interpolation of float fields.
//
// A Manager owns every live tween and timer. All of them advance only inside
// Manager.Update, so completions run on the caller's goroutine, one frame at a
// time. Tweens scheduled while an update is running start advancing on the
// next update.
package tween

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing is an easing curve in gween's (t, begin, change, duration) form.
type Easing = ease.TweenFunc

// Easing curves used by the choreography.
var (
	Linear     Easing = ease.Linear
	InOutQuad  Easing = ease.InOutQuad
	OutQuad    Easing = ease.OutQuad
	OutCubic   Easing = ease.OutCubic
	OutElastic Easing = ease.OutElastic
)

// Field binds a float target to the value it should reach.
type Field struct {
	Target *float32
	To     float32
}

// F is shorthand for Field{target, to}.
func F(target *float32, to float32) Field {
	return Field{Target: target, To: to}
}

// Options tunes a tween beyond its duration and easing.
type Options struct {
	// Delay postpones the start. Start values are captured when the delay ends.
	Delay time.Duration
	// Repeat is the number of extra iterations after the first.
	Repeat int
	// Yoyo reverses direction on every repeat.
	Yoyo bool
	// OnUpdate runs after the fields are written on every update.
	OnUpdate func()
}

// Tween interpolates a set of fields over a fixed duration.
type Tween struct {
	fields     []Field
	channels   []*gween.Tween
	duration   time.Duration
	easing     Easing
	opts       Options
	onComplete func()

	elapsed  time.Duration
	started  bool
	reversed bool
	repeats  int
	done     bool
}

// Done reports whether the tween has completed or been stopped.
func (t *Tween) Done() bool {
	return t.done
}

// Stop cancels the tween without firing its completion.
func (t *Tween) Stop() {
	t.done = true
}

func (t *Tween) start() {
	t.started = true
	t.repeats = max(t.opts.Repeat, 0)
	t.channels = make([]*gween.Tween, len(t.fields))
	for i, f := range t.fields {
		t.channels[i] = gween.New(*f.Target, f.To, seconds(t.duration), t.easing)
	}
}

// flip swaps begin and end of every channel for a yoyo iteration.
func (t *Tween) flip() {
	t.reversed = !t.reversed
	for i, f := range t.fields {
		from, to := *f.Target, f.To
		if t.reversed {
			cur, _ := t.channels[i].Set(0)
			from, to = f.To, cur
		}
		t.channels[i] = gween.New(from, to, seconds(t.duration), t.easing)
	}
}

// rewind restarts every channel from its original begin value.
func (t *Tween) rewind() {
	for i := range t.fields {
		begin, _ := t.channels[i].Set(0)
		*t.fields[i].Target = begin
	}
}

// apply writes the field values at the current elapsed time and reports
// whether the iteration finished.
func (t *Tween) apply() bool {
	if t.duration <= 0 {
		for i, f := range t.fields {
			end, _ := t.channels[i].Set(seconds(time.Hour))
			*f.Target = end
		}
		return true
	}
	finished := t.elapsed >= t.duration
	for i, f := range t.fields {
		v, _ := t.channels[i].Set(seconds(t.elapsed))
		*f.Target = v
	}
	return finished
}

// advance moves the tween forward by dt and reports whether it completed.
func (t *Tween) advance(dt time.Duration) bool {
	if t.done {
		return true
	}
	t.elapsed += dt
	if !t.started {
		if t.elapsed < t.opts.Delay {
			return false
		}
		t.elapsed -= t.opts.Delay
		t.start()
	}

	for {
		finished := t.apply()
		if !finished {
			break
		}
		if t.repeats == 0 {
			t.done = true
			break
		}
		t.repeats--
		if t.duration > 0 {
			t.elapsed -= t.duration
		}
		if t.opts.Yoyo {
			t.flip()
		} else {
			t.rewind()
		}
	}

	if t.opts.OnUpdate != nil {
		t.opts.OnUpdate()
	}
	if t.done && t.onComplete != nil {
		t.onComplete()
	}
	return t.done
}

func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}
