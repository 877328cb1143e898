package choreo

import (
	"github.com/Faultbox/rollcube/internal/engine/scene"
	"github.com/Faultbox/rollcube/pkg/math"
)

// Scene lighting.
const (
	AmbientIntensity = 1.5
	CubeShininess    = 10
)

// Lights are the key and fill lights of the scene.
var Lights = []scene.Light{
	{Position: math.V3(-10, 20, 5), Color: scene.White, Intensity: 2, CastShadow: true},
	{Position: math.V3(5, -20, 15), Color: scene.White, Intensity: 1},
}

// Grid layout.
const (
	GridSize      = 6
	GridDivisions = 6
)

func rollingMaterial(a Appearance, shading scene.Shading) scene.Material {
	m := scene.Material{
		Color:   scene.CubeColor,
		Opacity: a.RollingOpacity,
		Blended: a.RollingBlended,
		Shading: shading,
	}
	if shading == scene.Phong {
		m.Shininess = CubeShininess
		m.Specular = scene.Specular
	}
	return m
}

// Frame describes the current scene for a render surface.
func (d *Director) Frame() scene.Frame {
	root := d.rig.Matrix()
	a := d.appearance

	f := scene.Frame{
		Background: scene.Background,
		Ambient:    AmbientIntensity,
		Lights:     Lights,
		Grid: scene.Grid{
			Visible:     d.grid,
			Size:        GridSize,
			Divisions:   GridDivisions,
			CenterColor: scene.GridCenter,
			LineColor:   scene.GridLine,
			Model:       root,
		},
		Items: make([]scene.Item, 0, d.trail.Len()+len(d.solid)+1),
	}

	footprint := rollingMaterial(a, scene.Unlit)
	for _, fp := range d.trail.prints {
		f.Items = append(f.Items, scene.Item{
			Name:          "footprint",
			Shape:         fp.Shape(),
			Model:         root.Mul(fp.Transform().Matrix()),
			Material:      footprint,
			ReceiveShadow: true,
		})
	}

	f.Items = append(f.Items, scene.Item{
		Name:          "cube",
		Shape:         CubeShape,
		Model:         root.Mul(d.cube.Matrix()),
		Material:      rollingMaterial(a, scene.Phong),
		CastShadow:    true,
		ReceiveShadow: true,
	})

	group := d.groupMatrix()
	solid := scene.Material{
		Color:     scene.CubeColor,
		Opacity:   a.SolidOpacity,
		Blended:   a.SolidBlended,
		Shading:   scene.Phong,
		Shininess: CubeShininess,
		Specular:  scene.Specular,
	}
	for _, p := range d.solid {
		f.Items = append(f.Items, scene.Item{
			Name:          "solid",
			Shape:         p.Shape,
			Model:         group.Mul(p.Transform.Matrix()),
			Material:      solid,
			CastShadow:    !p.Filler,
			ReceiveShadow: true,
		})
	}
	return f
}
