// Package scene defines the per-frame description handed to render surfaces.
//
// A Frame is a plain value: surfaces read it and never write back, so the
// choreography stays the single owner of every pose and opacity.
package scene

import (
	"github.com/Faultbox/rollcube/internal/engine/geometry"
	"github.com/Faultbox/rollcube/pkg/math"
)

// Shading selects the lighting model of a material.
type Shading uint8

const (
	// Unlit draws the flat material color.
	Unlit Shading = iota
	// Phong applies ambient, diffuse and specular terms from every light.
	Phong
)

// Material describes how an item is shaded.
type Material struct {
	Color     Color
	Opacity   float32
	Blended   bool
	Shading   Shading
	Shininess float32
	Specular  Color
}

// Visible reports whether the material contributes anything to the image.
func (m Material) Visible() bool {
	return m.Opacity > 0
}

// Item is one mesh instance.
type Item struct {
	Name          string
	Shape         geometry.Shape
	Model         math.Mat4
	Material      Material
	CastShadow    bool
	ReceiveShadow bool
}

// Light is a directional light shining from Position toward the origin.
type Light struct {
	Position   math.Vec3
	Color      Color
	Intensity  float32
	CastShadow bool
}

// Direction returns the normalized direction the light travels.
func (l Light) Direction() math.Vec3 {
	return l.Position.Scale(-1).Normalize()
}

// Grid is the helper grid on the floor plane.
type Grid struct {
	Visible     bool
	Size        float32
	Divisions   int
	CenterColor Color
	LineColor   Color
	Model       math.Mat4
}

// Frame is everything a surface needs to draw one image.
type Frame struct {
	Background Color
	Ambient    float32
	Lights     []Light
	Grid       Grid
	Items      []Item
}

// Opaque returns the visible non-blended items.
func (f *Frame) Opaque() []Item {
	var out []Item
	for _, it := range f.Items {
		if it.Material.Visible() && !it.Material.Blended {
			out = append(out, it)
		}
	}
	return out
}

// Blended returns the visible blended items.
func (f *Frame) Blended() []Item {
	var out []Item
	for _, it := range f.Items {
		if it.Material.Visible() && it.Material.Blended {
			out = append(out, it)
		}
	}
	return out
}
