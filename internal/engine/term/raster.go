// Package term draws the scene into a terminal with tcell.
package term

import (
	"image"
	gomath "math"
	"sort"

	"github.com/Faultbox/rollcube/internal/engine/geometry"
	"github.com/Faultbox/rollcube/internal/engine/scene"
	"github.com/Faultbox/rollcube/pkg/math"
)

// CellAspect is how much taller a terminal cell is than it is wide.
const CellAspect = 2

// ambientScale converts the scene's ambient intensity to a shading factor.
const ambientScale = 0.2

// Canvas is a color and depth buffer with one entry per terminal cell.
type Canvas struct {
	Width, Height int
	Color         []scene.Color
	Depth         []float32
}

// NewCanvas allocates a canvas cleared to black.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates the buffers when the size changes.
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == c.Width && height == c.Height && c.Color != nil {
		return
	}
	c.Width, c.Height = width, height
	c.Color = make([]scene.Color, width*height)
	c.Depth = make([]float32, width*height)
}

// Clear fills the color buffer with bg and resets depth.
func (c *Canvas) Clear(bg scene.Color) {
	for i := range c.Color {
		c.Color[i] = bg
		c.Depth[i] = gomath.MaxFloat32
	}
}

// At returns the color of a cell.
func (c *Canvas) At(x, y int) scene.Color {
	return c.Color[y*c.Width+x]
}

// Image copies the canvas into an image with one pixel per cell.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			i := img.PixOffset(x, y)
			r, g, b := c.At(x, y).Bytes()
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, 255
		}
	}
	return img
}

// Rasterizer projects frames onto a canvas. Meshes are built once per shape.
type Rasterizer struct {
	meshes map[geometry.Shape]*geometry.Mesh
}

// NewRasterizer creates a rasterizer with an empty mesh cache.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{meshes: make(map[geometry.Shape]*geometry.Mesh)}
}

func (r *Rasterizer) mesh(s geometry.Shape) *geometry.Mesh {
	m, ok := r.meshes[s]
	if !ok {
		m = s.Build()
		r.meshes[s] = m
	}
	return m
}

// Draw renders f into c as seen through viewProj. eye orders blended items.
func (r *Rasterizer) Draw(c *Canvas, f scene.Frame, viewProj math.Mat4, eye math.Vec3) {
	c.Clear(f.Background)

	if f.Grid.Visible {
		r.drawGrid(c, f.Grid, viewProj)
	}

	for _, it := range f.Opaque() {
		r.drawItem(c, f, it, viewProj, true)
	}

	blended := f.Blended()
	sort.SliceStable(blended, func(i, j int) bool {
		di := blended[i].Model.Translation().Sub(eye)
		dj := blended[j].Model.Translation().Sub(eye)
		return di.Dot(di) > dj.Dot(dj)
	})
	for _, it := range blended {
		r.drawItem(c, f, it, viewProj, false)
	}
}

// cellPoint is a vertex in canvas space: x, y in cells and NDC depth.
type cellPoint struct {
	x, y, z float32
}

func toCell(c *Canvas, mvp math.Mat4, p [3]float32) cellPoint {
	ndc := mvp.TransformPoint(math.V3(p[0], p[1], p[2]))
	return cellPoint{
		x: (ndc.X + 1) / 2 * float32(c.Width),
		y: (1 - ndc.Y) / 2 * float32(c.Height),
		z: ndc.Z,
	}
}

func (r *Rasterizer) drawItem(c *Canvas, f scene.Frame, it scene.Item, viewProj math.Mat4, writeDepth bool) {
	m := r.mesh(it.Shape)
	mvp := viewProj.Mul(it.Model)
	mat := it.Material

	for t := 0; t+2 < len(m.Indices); t += 3 {
		v0, v1, v2 := m.Vertices[m.Indices[t]], m.Vertices[m.Indices[t+1]], m.Vertices[m.Indices[t+2]]

		color := mat.Color
		if mat.Shading == scene.Phong {
			n := math.V3(
				v0.Normal[0]+v1.Normal[0]+v2.Normal[0],
				v0.Normal[1]+v1.Normal[1]+v2.Normal[1],
				v0.Normal[2]+v1.Normal[2]+v2.Normal[2],
			)
			n = it.Model.TransformDirection(n).Normalize()
			color = shade(mat.Color, n, f)
		}

		fillTriangle(c,
			toCell(c, mvp, v0.Position),
			toCell(c, mvp, v1.Position),
			toCell(c, mvp, v2.Position),
			color, mat.Opacity, writeDepth)
	}
}

// shade applies ambient and diffuse light to base for a surface facing n.
func shade(base scene.Color, n math.Vec3, f scene.Frame) scene.Color {
	k := f.Ambient * ambientScale
	var rgb [3]float32
	for i, ch := range base.RGB() {
		rgb[i] = ch * k
	}
	for _, l := range f.Lights {
		diff := n.Dot(l.Direction().Scale(-1))
		if diff <= 0 {
			continue
		}
		lc := l.Color.Scale(l.Intensity * diff).RGB()
		for i, ch := range base.RGB() {
			rgb[i] += ch * lc[i]
		}
	}
	return scene.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: base.A}
}

func edge(a, b cellPoint, x, y float32) float32 {
	return (b.x-a.x)*(y-a.y) - (b.y-a.y)*(x-a.x)
}

// fillTriangle covers every cell whose center lies inside the triangle,
// regardless of winding.
func fillTriangle(c *Canvas, a, b, p cellPoint, color scene.Color, alpha float32, writeDepth bool) {
	area := edge(a, b, p.x, p.y)
	if area == 0 {
		return
	}

	minX := max(int(gomath.Floor(float64(min(a.x, b.x, p.x)))), 0)
	maxX := min(int(gomath.Ceil(float64(max(a.x, b.x, p.x)))), c.Width-1)
	minY := max(int(gomath.Floor(float64(min(a.y, b.y, p.y)))), 0)
	maxY := min(int(gomath.Ceil(float64(max(a.y, b.y, p.y)))), c.Height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			cx, cy := float32(x)+0.5, float32(y)+0.5
			w0 := edge(b, p, cx, cy) / area
			w1 := edge(p, a, cx, cy) / area
			w2 := edge(a, b, cx, cy) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*p.z
			if z < -1 || z > 1 {
				continue
			}
			plot(c, x, y, z, color, alpha, writeDepth)
		}
	}
}

func plot(c *Canvas, x, y int, z float32, color scene.Color, alpha float32, writeDepth bool) {
	i := y*c.Width + x
	if z >= c.Depth[i] {
		return
	}
	if alpha >= 1 {
		c.Color[i] = color
	} else {
		under := c.Color[i]
		c.Color[i] = scene.Color{
			R: color.R*alpha + under.R*(1-alpha),
			G: color.G*alpha + under.G*(1-alpha),
			B: color.B*alpha + under.B*(1-alpha),
			A: 1,
		}
	}
	if writeDepth {
		c.Depth[i] = z
	}
}

func (r *Rasterizer) drawGrid(c *Canvas, g scene.Grid, viewProj math.Mat4) {
	mvp := viewProj.Mul(g.Model)
	lines := geometry.GridLines(g.Size, g.Divisions, g.CenterColor.RGB(), g.LineColor.RGB())
	for i := 0; i+1 < len(lines); i += 2 {
		a, b := lines[i], lines[i+1]
		color := scene.Color{R: a.R, G: a.G, B: a.B, A: 1}
		drawLine(c,
			toCell(c, mvp, [3]float32{a.X, a.Y, a.Z}),
			toCell(c, mvp, [3]float32{b.X, b.Y, b.Z}),
			color)
	}
}

// drawLine steps along the segment one cell at a time, interpolating depth.
func drawLine(c *Canvas, a, b cellPoint, color scene.Color) {
	dx, dy := b.x-a.x, b.y-a.y
	steps := int(gomath.Ceil(float64(max(abs32(dx), abs32(dy)))))
	if steps == 0 {
		steps = 1
	}
	for s := 0; s <= steps; s++ {
		t := float32(s) / float32(steps)
		x := int(gomath.Floor(float64(a.x + dx*t)))
		y := int(gomath.Floor(float64(a.y + dy*t)))
		if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
			continue
		}
		z := a.z + (b.z-a.z)*t
		if z < -1 || z > 1 {
			continue
		}
		plot(c, x, y, z, color, 1, true)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
