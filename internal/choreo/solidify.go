package choreo

import (
	"time"

	"github.com/Faultbox/rollcube/internal/engine/geometry"
	"github.com/Faultbox/rollcube/internal/engine/tween"
	"github.com/Faultbox/rollcube/pkg/math"
)

// Cube geometry.
const (
	CubeRadius   = 0.07
	CubeSegments = 4
)

// CubeShape is the rounded unit cube.
var CubeShape = geometry.RoundedBoxShape(math.V3(1, 1, 1), CubeSegments, CubeRadius)

// Solid group layout.
var (
	FillerSize     = math.V3(0.5, 0.01, 1)
	FillerPosition = math.V3(-0.75, 0, -2.5)
)

// SolidGroupScale is applied to the whole solid group about the origin.
const SolidGroupScale = 1.01

// Appearance holds the two cross-faded material states.
type Appearance struct {
	RollingOpacity float32
	SolidOpacity   float32
	RollingBlended bool
	SolidBlended   bool
}

// RestAppearance is the look at the start of a run: the rolling material is
// opaque and the solid one hidden.
func RestAppearance() Appearance {
	return Appearance{RollingOpacity: 1, SolidOpacity: 0, RollingBlended: false, SolidBlended: true}
}

// Settled reports whether exactly one material is fully opaque and
// non-blended.
func (a Appearance) Settled() bool {
	rolling := a.RollingOpacity == 1 && !a.RollingBlended
	solid := a.SolidOpacity == 1 && !a.SolidBlended
	return rolling != solid
}

// SolidPart is one opaque box of the solid group, posed in group space.
type SolidPart struct {
	Shape     geometry.Shape
	Transform Transform
	Filler    bool
}

// SolidExtent widens any dimension larger than half a cell to a full cell.
// Thin plates stay thin and nothing exceeds 1.
func SolidExtent(size math.Vec3) math.Vec3 {
	return size.Map(func(v float32) float32 {
		if v > 0.5 {
			return 1
		}
		return v
	})
}

// boundsCache avoids rebuilding identical plate meshes just to measure them.
type boundsCache map[geometry.Shape]geometry.Bounds

func (c boundsCache) size(s geometry.Shape) math.Vec3 {
	b, ok := c[s]
	if !ok {
		b = s.Build().Bounds
		c[s] = b
	}
	return b.Size()
}

// BuildSolidGroup replaces every footprint and the cube with a sharp box of
// the widened extent at the same pose, followed by one filler plate.
func BuildSolidGroup(cube Transform, prints []Footprint) []SolidPart {
	cache := boundsCache{}
	parts := make([]SolidPart, 0, len(prints)+2)

	for _, fp := range prints {
		parts = append(parts, SolidPart{
			Shape:     geometry.BoxShape(SolidExtent(cache.size(fp.Shape()))),
			Transform: fp.Transform(),
		})
	}
	parts = append(parts, SolidPart{
		Shape:     geometry.BoxShape(SolidExtent(cache.size(CubeShape))),
		Transform: cube,
	})
	parts = append(parts, SolidPart{
		Shape:     geometry.BoxShape(FillerSize),
		Transform: Transform{Position: FillerPosition, Scale: math.V3(1, 1, 1)},
		Filler:    true,
	})
	return parts
}

// CrossFade fades the rolling material out and the solid one in over d. The
// solid material stops blending once it is fully opaque, then onDone runs.
func CrossFade(tweens *tween.Manager, a *Appearance, d time.Duration, onDone func()) {
	a.RollingBlended = true
	a.SolidBlended = true
	a.SolidOpacity = 0

	tweens.To([]tween.Field{tween.F(&a.RollingOpacity, 0)}, d, tween.Linear, tween.Options{}, nil)
	tweens.To([]tween.Field{tween.F(&a.SolidOpacity, 1)}, d, tween.Linear, tween.Options{}, func() {
		a.SolidBlended = false
		if onDone != nil {
			onDone()
		}
	})
}
