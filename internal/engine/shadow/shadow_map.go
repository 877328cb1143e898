// Package shadow provides the directional shadow map cast by the key light.
package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DefaultResolution is used when a non-positive size is requested.
const DefaultResolution = 2048

// Depth offset applied while rendering casters. The footprint plates are
// only a hundredth of a cell thick, so culling front faces would drop them
// from the map entirely.
const (
	offsetFactor = 2
	offsetUnits  = 4
)

// Map is a depth-only framebuffer sampled with sampler2DShadow.
type Map struct {
	fbo   uint32
	depth uint32
	size  int32

	viewport [4]int32
}

// NewMap allocates a square shadow map. Sizes should be powers of two.
func NewMap(size int32) (*Map, error) {
	if size <= 0 {
		size = DefaultResolution
	}
	m := &Map{size: size}

	gl.GenTextures(1, &m.depth)
	gl.BindTexture(gl.TEXTURE_2D, m.depth)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, size, size, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Anything outside the light frustum reads as lit.
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.GenFramebuffers(1, &m.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, m.depth, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		m.Destroy()
		return nil, fmt.Errorf("shadow framebuffer incomplete: 0x%x", status)
	}
	return m, nil
}

// Size returns the edge length of the map in texels.
func (m *Map) Size() int32 { return m.size }

// Pass renders draw into the map and restores the previous framebuffer
// state.
func (m *Map) Pass(draw func()) {
	gl.GetIntegerv(gl.VIEWPORT, &m.viewport[0])
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.fbo)
	gl.Viewport(0, 0, m.size, m.size)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(offsetFactor, offsetUnits)

	draw()

	gl.Disable(gl.POLYGON_OFFSET_FILL)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(m.viewport[0], m.viewport[1], m.viewport[2], m.viewport[3])
}

// BindTexture binds the depth texture to unit for sampling.
func (m *Map) BindTexture(unit uint32) {
	gl.ActiveTexture(unit)
	gl.BindTexture(gl.TEXTURE_2D, m.depth)
}

// Destroy releases the GPU objects.
func (m *Map) Destroy() {
	if m.fbo != 0 {
		gl.DeleteFramebuffers(1, &m.fbo)
		m.fbo = 0
	}
	if m.depth != 0 {
		gl.DeleteTextures(1, &m.depth)
		m.depth = 0
	}
}

// Valid reports whether m holds a usable framebuffer. It is safe on nil.
func (m *Map) Valid() bool {
	return m != nil && m.fbo != 0 && m.depth != 0
}
