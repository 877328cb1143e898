package choreo

import (
	"go.uber.org/zap"

	"github.com/Faultbox/rollcube/pkg/math"
)

// RollRecord describes one executed step.
type RollRecord struct {
	Index   int
	Move    string
	Pivot   math.Vec3
	Axis    Axis
	Angle   float32
	Landing math.Vec3
}

// Sequencer walks a path one step at a time. Each step starts from the
// completion of the previous roll, so no two rolls overlap.
type Sequencer struct {
	path   []Step
	roller *Roller
	trail  *Trail
	cube   *Transform
	log    *zap.Logger

	index   int
	running bool
	records []RollRecord
	onDone  func()
}

// NewSequencer creates a sequencer over path.
func NewSequencer(path []Step, roller *Roller, trail *Trail, cube *Transform, log *zap.Logger) *Sequencer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sequencer{path: path, roller: roller, trail: trail, cube: cube, log: log}
}

// Start runs the path from the first step. onDone runs after the last roll
// has landed.
func (s *Sequencer) Start(onDone func()) {
	s.index = 0
	s.records = s.records[:0]
	s.running = true
	s.onDone = onDone
	s.next()
}

// Reset abandons the current walk. Pending roll tweens are owned by the
// tween manager and must be cleared there.
func (s *Sequencer) Reset() {
	s.index = 0
	s.running = false
	s.records = s.records[:0]
	s.onDone = nil
}

// Running reports whether steps remain to be rolled.
func (s *Sequencer) Running() bool {
	return s.running
}

// Index returns the zero-based index of the step in progress, or len(path)
// once finished.
func (s *Sequencer) Index() int {
	return s.index
}

// Records returns a copy of the executed steps.
func (s *Sequencer) Records() []RollRecord {
	out := make([]RollRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Sequencer) next() {
	if s.index >= len(s.path) {
		s.running = false
		done := s.onDone
		s.onDone = nil
		if done != nil {
			done()
		}
		return
	}

	step := s.path[s.index]
	if step.Face != FaceNone {
		s.trail.Drop(step.Cell, step.Face)
	}

	// Pivot comes from the live pose: every roll moves the cube.
	rec := RollRecord{
		Index: s.index + 1,
		Move:  step.Move,
		Pivot: s.cube.Position.Add(step.PivotOffset),
		Axis:  step.Axis,
		Angle: step.Angle,
	}
	err := s.roller.Roll(rec.Pivot, rec.Axis, rec.Angle, func() {
		rec.Landing = s.cube.Position
		s.records = append(s.records, rec)
		s.log.Debug("roll landed",
			zap.Int("step", rec.Index),
			zap.String("move", rec.Move),
			zap.Stringer("axis", rec.Axis),
			zap.Float32("x", rec.Landing.X),
			zap.Float32("y", rec.Landing.Y),
			zap.Float32("z", rec.Landing.Z))
		s.index++
		s.next()
	})
	if err != nil {
		s.log.Warn("roll rejected", zap.Int("step", rec.Index), zap.Error(err))
		s.running = false
	}
}
