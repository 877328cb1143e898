package choreo

import (
	"strings"

	"github.com/Faultbox/rollcube/internal/engine/geometry"
	"github.com/Faultbox/rollcube/pkg/math"
)

// Face selects which side of a grid cell a footprint plate covers.
type Face uint8

const (
	FaceNone Face = iota
	FaceUp
	FaceDown
	FaceEast
	FaceWest
	FaceSouth
	FaceNorth
)

var faceNames = [...]string{
	FaceNone:  "none",
	FaceUp:    "up",
	FaceDown:  "down",
	FaceEast:  "east",
	FaceWest:  "west",
	FaceSouth: "south",
	FaceNorth: "north",
}

// ParseFace maps a face name, in any case, to a Face. Unknown names map to FaceNone.
func ParseFace(s string) Face {
	s = strings.ToLower(s)
	for f, name := range faceNames {
		if f != int(FaceNone) && name == s {
			return Face(f)
		}
	}
	return FaceNone
}

func (f Face) String() string {
	if int(f) < len(faceNames) {
		return faceNames[f]
	}
	return "none"
}

// Valid reports whether f names one of the six cell faces.
func (f Face) Valid() bool {
	return f >= FaceUp && f <= FaceNorth
}

// Normal returns the outward direction of the face from the cell center.
func (f Face) Normal() math.Vec3 {
	switch f {
	case FaceUp:
		return math.V3(0, 1, 0)
	case FaceDown:
		return math.V3(0, -1, 0)
	case FaceEast:
		return math.V3(1, 0, 0)
	case FaceWest:
		return math.V3(-1, 0, 0)
	case FaceSouth:
		return math.V3(0, 0, 1)
	case FaceNorth:
		return math.V3(0, 0, -1)
	}
	return math.Vec3{}
}

// Footprint plate dimensions.
const (
	PlateSize      = 0.9
	PlateThickness = 0.01
	PlateRadius    = 0.1
	PlateSegments  = 4
)

// Footprint is a thin plate left on one face of a grid cell.
type Footprint struct {
	Cell     math.Vec3
	Face     Face
	Position math.Vec3
	Size     math.Vec3
}

// Shape returns the plate geometry.
func (f Footprint) Shape() geometry.Shape {
	return geometry.RoundedBoxShape(f.Size, PlateSegments, PlateRadius)
}

// Transform returns the plate pose. Plates are never rotated; the thin axis is
// baked into Size.
func (f Footprint) Transform() Transform {
	return Transform{Position: f.Position, Scale: math.V3(1, 1, 1)}
}

// PlateFor computes the plate centered half a cell from cell toward face, thin
// along the face's axis. It reports false for an unknown face.
func PlateFor(cell math.Vec3, face Face) (Footprint, bool) {
	if !face.Valid() {
		return Footprint{}, false
	}
	n := face.Normal()
	size := math.V3(PlateSize, PlateSize, PlateSize)
	switch {
	case n.X != 0:
		size.X = PlateThickness
	case n.Y != 0:
		size.Y = PlateThickness
	default:
		size.Z = PlateThickness
	}
	return Footprint{
		Cell:     cell,
		Face:     face,
		Position: cell.Add(n.Scale(0.5)),
		Size:     size,
	}, true
}

// Trail is the ordered footprint collection of one run.
type Trail struct {
	prints []Footprint
}

// Drop appends a plate for cell and face. Unknown faces are ignored and
// reported as false.
func (t *Trail) Drop(cell math.Vec3, face Face) bool {
	fp, ok := PlateFor(cell, face)
	if !ok {
		return false
	}
	t.prints = append(t.prints, fp)
	return true
}

// Footprints returns a copy of the trail in drop order.
func (t *Trail) Footprints() []Footprint {
	out := make([]Footprint, len(t.prints))
	copy(out, t.prints)
	return out
}

// Len returns the number of plates dropped.
func (t *Trail) Len() int {
	return len(t.prints)
}

// Clear removes every plate.
func (t *Trail) Clear() {
	t.prints = t.prints[:0]
}
