package tween

import "time"

// Manager advances a group of tweens and timers on a shared clock.
type Manager struct {
	active  []*Tween
	pending []*Tween
	now     time.Duration
	epoch   uint64
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// To schedules a tween of fields toward their target values.
func (m *Manager) To(fields []Field, duration time.Duration, easing Easing, opts Options, onComplete func()) *Tween {
	if easing == nil {
		easing = Linear
	}
	t := &Tween{
		fields:     fields,
		duration:   duration,
		easing:     easing,
		opts:       opts,
		onComplete: onComplete,
	}
	m.pending = append(m.pending, t)
	return t
}

// After schedules fn to run once delay has elapsed. A zero delay runs fn on
// the next update.
func (m *Manager) After(delay time.Duration, fn func()) *Tween {
	return m.To(nil, 0, Linear, Options{Delay: delay}, fn)
}

// Update advances every tween that was scheduled before this call by dt.
// Completion callbacks may schedule new tweens or clear the manager.
func (m *Manager) Update(dt time.Duration) {
	m.now += dt
	m.active = append(m.active, m.pending...)
	m.pending = m.pending[:0]

	epoch := m.epoch
	batch := m.active
	for _, t := range batch {
		t.advance(dt)
		if m.epoch != epoch {
			// Cleared from inside a callback; the remaining batch is stale.
			return
		}
	}

	live := m.active[:0]
	for _, t := range m.active {
		if !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.active); i++ {
		m.active[i] = nil
	}
	m.active = live
}

// Clear drops every tween and timer without firing completions.
func (m *Manager) Clear() {
	for _, t := range m.active {
		t.done = true
	}
	for _, t := range m.pending {
		t.done = true
	}
	m.active = nil
	m.pending = nil
	m.epoch++
}

// Len returns the number of live tweens, including ones not yet started.
func (m *Manager) Len() int {
	n := len(m.pending)
	for _, t := range m.active {
		if !t.done {
			n++
		}
	}
	return n
}

// Now returns the total time advanced through Update.
func (m *Manager) Now() time.Duration {
	return m.now
}
