// Package geometry builds the triangle and line meshes drawn by the render surfaces.
package geometry

import (
	gomath "math"

	"github.com/Faultbox/rollcube/pkg/math"
)

// Vertex is a mesh vertex with position and normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh holds indexed triangle data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Kind selects the primitive a Shape builds.
type Kind uint8

const (
	KindBox Kind = iota
	KindRoundedBox
)

// Shape describes a primitive by value. Equal shapes build identical meshes,
// so a Shape doubles as a cache key for uploaded buffers.
type Shape struct {
	Kind     Kind
	Size     math.Vec3
	Segments int
	Radius   float32
}

// BoxShape describes a sharp-edged box centered on the origin.
func BoxShape(size math.Vec3) Shape {
	return Shape{Kind: KindBox, Size: size}
}

// RoundedBoxShape describes a box with rounded edges and corners.
func RoundedBoxShape(size math.Vec3, segments int, radius float32) Shape {
	return Shape{Kind: KindRoundedBox, Size: size, Segments: segments, Radius: radius}
}

// Build generates the mesh for the shape.
func (s Shape) Build() *Mesh {
	if s.Kind == KindRoundedBox {
		return RoundedBox(s.Size.X, s.Size.Y, s.Size.Z, s.Segments, s.Radius)
	}
	return Box(s.Size.X, s.Size.Y, s.Size.Z)
}

// Box generates a box of the given dimensions centered on the origin.
func Box(width, height, depth float32) *Mesh {
	return RoundedBox(width, height, depth, 0, 0)
}

// face is one side of a box: outward normal plus the two in-plane axes,
// ordered so that u x v points along the normal.
type face struct {
	normal, u, v [3]float32
}

var boxFaces = [6]face{
	{normal: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{normal: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
	{normal: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
}

// RoundedBox generates a box whose edges and corners are rounded with the given
// radius. Each rounded band is split into segments steps. The radius is clamped
// to half of the smallest dimension; a zero radius yields a plain box.
func RoundedBox(width, height, depth float32, segments int, radius float32) *Mesh {
	half := [3]float32{width / 2, height / 2, depth / 2}
	radius = min(radius, half[0], half[1], half[2])
	if radius < 0 {
		radius = 0
	}
	if segments < 1 {
		segments = 1
	}
	inner := [3]float32{half[0] - radius, half[1] - radius, half[2] - radius}

	mesh := &Mesh{}
	for _, f := range boxFaces {
		n := axisOf(f.normal)
		us := bandCoords(half[axisOf(f.u)], radius, segments)
		vs := bandCoords(half[axisOf(f.v)], radius, segments)
		base := uint32(len(mesh.Vertices))

		for _, b := range vs {
			for _, a := range us {
				var p [3]float32
				for k := 0; k < 3; k++ {
					p[k] = f.normal[k]*half[n] + f.u[k]*a + f.v[k]*b
				}
				mesh.Vertices = append(mesh.Vertices, roundVertex(p, inner, radius, f.normal))
			}
		}

		cols := uint32(len(us))
		for j := uint32(0); j+1 < uint32(len(vs)); j++ {
			for i := uint32(0); i+1 < cols; i++ {
				i0 := base + j*cols + i
				i1 := i0 + 1
				i2 := i0 + cols + 1
				i3 := i0 + cols
				mesh.Indices = append(mesh.Indices, i0, i1, i2, i0, i2, i3)
			}
		}
	}
	mesh.Bounds = ComputeBounds(mesh.Vertices)
	return mesh
}

// bandCoords returns the grid coordinates along one face axis: segments+1
// steps through each rounded band with the flat span in between.
func bandCoords(half, radius float32, segments int) []float32 {
	if radius == 0 {
		return []float32{-half, half}
	}
	inner := half - radius
	coords := make([]float32, 0, 2*(segments+1))
	for i := 0; i <= segments; i++ {
		coords = append(coords, -inner-radius*(1-float32(i)/float32(segments)))
	}
	for i := 0; i <= segments; i++ {
		coords = append(coords, inner+radius*float32(i)/float32(segments))
	}
	return coords
}

// roundVertex pulls p onto the rounded surface: clamp to the inner box, then
// push out by radius along the direction from the clamped point.
func roundVertex(p, inner [3]float32, radius float32, faceNormal [3]float32) Vertex {
	if radius == 0 {
		return Vertex{Position: p, Normal: faceNormal}
	}
	var c, d [3]float32
	var l2 float64
	for k := 0; k < 3; k++ {
		c[k] = max(-inner[k], min(inner[k], p[k]))
		d[k] = p[k] - c[k]
		l2 += float64(d[k]) * float64(d[k])
	}
	if l2 == 0 {
		return Vertex{Position: p, Normal: faceNormal}
	}
	l := float32(gomath.Sqrt(l2))
	var v Vertex
	for k := 0; k < 3; k++ {
		v.Normal[k] = d[k] / l
		v.Position[k] = c[k] + v.Normal[k]*radius
	}
	return v
}

func axisOf(v [3]float32) int {
	switch {
	case v[0] != 0:
		return 0
	case v[1] != 0:
		return 1
	default:
		return 2
	}
}
