package renderer

import (
	"sort"

	"github.com/Faultbox/rollcube/internal/engine/geometry"
	"github.com/Faultbox/rollcube/internal/engine/scene"
	"github.com/Faultbox/rollcube/pkg/math"
)

// maxLights matches MAX_LIGHTS in mesh.frag.
const maxLights = 2

// ambientScale converts the scene's ambient intensity to a shader factor.
const ambientScale = 0.2

// boundsColor is the wireframe color used by ShowBounds.
var boundsColor = [3]float32{0.2, 1, 0.4}

// shapeBounds returns the local bounds of a shape. Every shape is centered
// on its origin.
func shapeBounds(s geometry.Shape) geometry.Bounds {
	h := s.Size.Scale(0.5)
	return geometry.Bounds{Min: [3]float32{-h.X, -h.Y, -h.Z}, Max: h.Array()}
}

// itemBounds returns the world-space bounds of an item.
func itemBounds(it scene.Item) geometry.Bounds {
	return shapeBounds(it.Shape).Transform(it.Model)
}

// sceneBounds returns the union of every visible item's bounds.
func sceneBounds(items []scene.Item) (geometry.Bounds, bool) {
	var (
		out   geometry.Bounds
		found bool
	)
	for _, it := range items {
		if !it.Material.Visible() {
			continue
		}
		b := itemBounds(it)
		if !found {
			out, found = b, true
			continue
		}
		out = out.Union(b)
	}
	return out, found
}

// sortBackToFront orders blended items by decreasing distance from the eye.
func sortBackToFront(items []scene.Item, eye math.Vec3) {
	dist := func(it scene.Item) float32 {
		d := it.Model.Translation().Sub(eye)
		return d.Dot(d)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return dist(items[i]) > dist(items[j])
	})
}

// lightUniforms holds lights flattened into shader arrays. shadow is the
// index of the first shadow-casting light, or -1.
type lightUniforms struct {
	count  int32
	dirs   [maxLights][3]float32
	colors [maxLights][3]float32
	shadow int32
}

// packLights keeps at most maxLights lights.
func packLights(lights []scene.Light) lightUniforms {
	u := lightUniforms{shadow: -1}
	for _, l := range lights {
		if u.count == maxLights {
			break
		}
		u.dirs[u.count] = l.Direction().Array()
		u.colors[u.count] = l.Color.Scale(l.Intensity).RGB()
		if l.CastShadow && u.shadow < 0 {
			u.shadow = u.count
		}
		u.count++
	}
	return u
}

// shadowLight returns the first shadow-casting light.
func shadowLight(lights []scene.Light) (scene.Light, bool) {
	for _, l := range lights {
		if l.CastShadow {
			return l, true
		}
	}
	return scene.Light{}, false
}

// boundsLines returns wireframe vertices for every visible item's bounds.
func boundsLines(items []scene.Item) []geometry.LineVertex {
	var out []geometry.LineVertex
	c := boundsColor
	for _, it := range items {
		if !it.Material.Visible() {
			continue
		}
		w := itemBounds(it).Wireframe()
		for i := 0; i+2 < len(w); i += 3 {
			out = append(out, geometry.LineVertex{X: w[i], Y: w[i+1], Z: w[i+2], R: c[0], G: c[1], B: c[2]})
		}
	}
	return out
}
