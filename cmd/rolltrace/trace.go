package main

import (
	"fmt"
	"io"
	gomath "math"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/rollcube/internal/choreo"
	"github.com/Faultbox/rollcube/pkg/math"
)

// Trace is one headless run of the director.
type Trace struct {
	Duration   string         `yaml:"duration"`
	Phases     []PhaseMark    `yaml:"phases"`
	Rolls      []RollRow      `yaml:"rolls"`
	Footprints []FootprintRow `yaml:"footprints"`
	Final      string         `yaml:"final"`
	Parts      int            `yaml:"solid_parts"`
}

// PhaseMark records when a phase began on the timeline clock.
type PhaseMark struct {
	Phase string `yaml:"phase"`
	At    string `yaml:"at"`
}

// RollRow is a roll record in printable form.
type RollRow struct {
	Index   int    `yaml:"index"`
	Move    string `yaml:"move"`
	Pivot   string `yaml:"pivot"`
	Axis    string `yaml:"axis"`
	Angle   string `yaml:"angle"`
	Landing string `yaml:"landing"`
}

// FootprintRow is a dropped plate in printable form.
type FootprintRow struct {
	Cell     string `yaml:"cell"`
	Face     string `yaml:"face"`
	Position string `yaml:"position"`
	Size     string `yaml:"size"`
}

func vec(v math.Vec3) string {
	return fmt.Sprintf("(%.3g, %.3g, %.3g)", v.X, v.Y, v.Z)
}

func degrees(rad float32) string {
	return fmt.Sprintf("%.1f", float64(rad)*180/gomath.Pi)
}

// runTrace triggers one run and steps it until it is done or limit passes.
func runTrace(timing choreo.Timing, step, limit time.Duration) (*Trace, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %v", step)
	}

	tr := &Trace{}
	d := choreo.New(choreo.Options{
		Timing: timing,
		OnPhase: func(p choreo.Phase, at time.Duration) {
			tr.Phases = append(tr.Phases, PhaseMark{Phase: p.String(), At: at.String()})
		},
	})
	d.Trigger()

	for d.Phase() != choreo.PhaseDone {
		if d.Now() > limit {
			return nil, fmt.Errorf("run did not finish within %v, stuck in %s", limit, d.Phase())
		}
		d.Update(step)
	}

	tr.Duration = d.Now().String()
	for _, r := range d.Records() {
		tr.Rolls = append(tr.Rolls, RollRow{
			Index:   r.Index,
			Move:    r.Move,
			Pivot:   vec(r.Pivot),
			Axis:    r.Axis.String(),
			Angle:   degrees(r.Angle),
			Landing: vec(r.Landing),
		})
	}
	for _, f := range d.Footprints() {
		tr.Footprints = append(tr.Footprints, FootprintRow{
			Cell:     vec(f.Cell),
			Face:     f.Face.String(),
			Position: vec(f.Position),
			Size:     vec(f.Size),
		})
	}
	tr.Final = vec(d.Cube().Position)
	tr.Parts = len(d.SolidParts())
	return tr, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeTraceTable(w io.Writer, tr *Trace) {
	fmt.Fprintf(w, "Duration:    %s\n", tr.Duration)
	fmt.Fprintf(w, "Final:       %s\n", tr.Final)
	fmt.Fprintf(w, "Solid parts: %d\n", tr.Parts)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Phases:")
	for _, p := range tr.Phases {
		fmt.Fprintf(w, "  %-10s %s\n", p.Phase, p.At)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Rolls:")
	fmt.Fprintf(w, "  %-3s %-8s %-22s %-4s %-7s %s\n", "#", "MOVE", "PIVOT", "AXIS", "ANGLE", "LANDING")
	for _, r := range tr.Rolls {
		fmt.Fprintf(w, "  %-3d %-8s %-22s %-4s %-7s %s\n", r.Index, r.Move, r.Pivot, r.Axis, r.Angle, r.Landing)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Footprints (%d):\n", len(tr.Footprints))
	for _, f := range tr.Footprints {
		fmt.Fprintf(w, "  %-22s %-6s %s\n", f.Cell, f.Face, f.Position)
	}
}

// StepRow is a path step in printable form.
type StepRow struct {
	Move   string `yaml:"move"`
	Cell   string `yaml:"cell,omitempty"`
	Face   string `yaml:"face"`
	Offset string `yaml:"pivot_offset"`
	Axis   string `yaml:"axis"`
	Angle  string `yaml:"angle"`
}

func pathRows(path []choreo.Step) []StepRow {
	rows := make([]StepRow, 0, len(path))
	for _, s := range path {
		row := StepRow{
			Move:   s.Move,
			Face:   s.Face.String(),
			Offset: vec(s.PivotOffset),
			Axis:   s.Axis.String(),
			Angle:  degrees(s.Angle),
		}
		if s.Face != choreo.FaceNone {
			row.Cell = vec(s.Cell)
		}
		rows = append(rows, row)
	}
	return rows
}

func writePathTable(w io.Writer, rows []StepRow) {
	fmt.Fprintf(w, "%-3s %-8s %-22s %-6s %-18s %-4s %s\n", "#", "MOVE", "CELL", "FACE", "OFFSET", "AXIS", "ANGLE")
	for i, r := range rows {
		cell := r.Cell
		if cell == "" {
			cell = "-"
		}
		fmt.Fprintf(w, "%-3d %-8s %-22s %-6s %-18s %-4s %s\n", i, r.Move, cell, r.Face, r.Offset, r.Axis, r.Angle)
	}
}

// TimingRow is a timeline in printable form.
type TimingRow struct {
	Name     string `yaml:"name"`
	Duration string `yaml:"duration"`
}

func timingRows(t choreo.Timing, steps int) []TimingRow {
	return []TimingRow{
		{"roll", t.Roll.String()},
		{"roll_pause", t.RollPause.String()},
		{"intro", t.Intro.String()},
		{"intro_pause", t.IntroPause.String()},
		{"shake_delay", t.ShakeDelay.String()},
		{"impact", t.Impact.String()},
		{"jump", t.Jump.String()},
		{"jump_pause", t.JumpPause.String()},
		{"drop", t.Drop.String()},
		{"bounce_delay", t.BounceDelay.String()},
		{"solidify", t.Solidify.String()},
		{"total", t.Total(steps).String()},
	}
}
