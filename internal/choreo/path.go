package choreo

import (
	gomath "math"

	"github.com/Faultbox/rollcube/pkg/math"
)

// Step is one entry in a roll path. A step first drops a footprint on the cell
// the cube is leaving (skipped when Face is FaceNone), then rolls about the
// pivot at the cube's live position plus PivotOffset.
type Step struct {
	Move        string
	Cell        math.Vec3
	Face        Face
	PivotOffset math.Vec3
	Axis        Axis
	Angle       float32
}

const (
	quarter = float32(gomath.Pi / 2)
	half    = float32(gomath.Pi)
)

// ReferencePath is the scripted tour: two rolls left, two forward, over the
// front ledge and down the wall, along the lower edge, back up the far wall
// and forward onto the top.
var ReferencePath = []Step{
	{Move: "left", Face: FaceNone, PivotOffset: math.V3(-0.5, -0.5, 0), Axis: AxisZ, Angle: quarter},
	{Move: "left", Cell: math.V3(-1.5, 0.5, -2.5), Face: FaceDown, PivotOffset: math.V3(-0.5, -0.5, 0), Axis: AxisZ, Angle: quarter},
	{Move: "forward", Cell: math.V3(-2.5, 0.5, -2.5), Face: FaceDown, PivotOffset: math.V3(0, -0.5, 0.5), Axis: AxisX, Angle: quarter},
	{Move: "forward", Cell: math.V3(-2.5, 0.5, -1.5), Face: FaceDown, PivotOffset: math.V3(0, -0.5, 0.5), Axis: AxisX, Angle: quarter},
	{Move: "down", Cell: math.V3(-2.5, 0.5, -0.5), Face: FaceDown, PivotOffset: math.V3(0, -0.5, 0.5), Axis: AxisX, Angle: half},
	{Move: "down", Cell: math.V3(-2.5, -0.5, 0.5), Face: FaceNorth, PivotOffset: math.V3(0, -0.5, -0.5), Axis: AxisX, Angle: quarter},
	{Move: "down", Cell: math.V3(-2.5, -1.5, 0.5), Face: FaceNorth, PivotOffset: math.V3(0, -0.5, -0.5), Axis: AxisX, Angle: quarter},
	{Move: "right", Cell: math.V3(-2.5, -2.5, 0.5), Face: FaceNorth, PivotOffset: math.V3(0.5, 0, -0.5), Axis: AxisY, Angle: quarter},
	{Move: "right", Cell: math.V3(-1.5, -2.5, 0.5), Face: FaceNorth, PivotOffset: math.V3(0.5, 0, -0.5), Axis: AxisY, Angle: quarter},
	{Move: "right", Cell: math.V3(-0.5, -2.5, 0.5), Face: FaceNorth, PivotOffset: math.V3(0.5, 0, -0.5), Axis: AxisY, Angle: half},
	{Move: "back", Cell: math.V3(0.5, -2.5, -0.5), Face: FaceWest, PivotOffset: math.V3(-0.5, 0, -0.5), Axis: AxisY, Angle: quarter},
	{Move: "back", Cell: math.V3(0.5, -2.5, -1.5), Face: FaceWest, PivotOffset: math.V3(-0.5, 0, -0.5), Axis: AxisY, Angle: quarter},
	{Move: "up", Cell: math.V3(0.5, -2.5, -2.5), Face: FaceWest, PivotOffset: math.V3(-0.5, 0.5, 0), Axis: AxisZ, Angle: quarter},
	{Move: "up", Cell: math.V3(0.5, -1.5, -2.5), Face: FaceWest, PivotOffset: math.V3(-0.5, 0.5, 0), Axis: AxisZ, Angle: quarter},
	{Move: "forward", Cell: math.V3(0.5, -0.5, -2.5), Face: FaceWest, PivotOffset: math.V3(-0.5, 0, 0.5), Axis: AxisY, Angle: -quarter},
	{Move: "forward", Cell: math.V3(0.5, -0.5, -1.5), Face: FaceWest, PivotOffset: math.V3(-0.5, 0, 0.5), Axis: AxisY, Angle: -quarter},
}

// FootprintSteps counts the steps of path that drop a footprint.
func FootprintSteps(path []Step) int {
	n := 0
	for _, s := range path {
		if s.Face != FaceNone {
			n++
		}
	}
	return n
}
