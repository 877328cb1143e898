package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/rollcube/internal/engine/geometry"
)

const (
	vertexStride = int32(unsafe.Sizeof(geometry.Vertex{}))
	lineStride   = int32(unsafe.Sizeof(geometry.LineVertex{}))
)

// gpuMesh is an uploaded indexed triangle mesh.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
	bounds        geometry.Bounds
}

func uploadMesh(m *geometry.Mesh) *gpuMesh {
	g := &gpuMesh{count: int32(len(m.Indices)), bounds: m.Bounds}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(vertexStride), unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, nil)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return g
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
}

func (g *gpuMesh) destroy() {
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
}

// meshCache uploads each distinct shape once.
type meshCache struct {
	meshes map[geometry.Shape]*gpuMesh
}

func newMeshCache() *meshCache {
	return &meshCache{meshes: make(map[geometry.Shape]*gpuMesh)}
}

func (c *meshCache) get(s geometry.Shape) *gpuMesh {
	if m, ok := c.meshes[s]; ok {
		return m
	}
	m := uploadMesh(s.Build())
	c.meshes[s] = m
	return m
}

func (c *meshCache) destroy() {
	for k, m := range c.meshes {
		m.destroy()
		delete(c.meshes, k)
	}
}

// lineBuffer holds colored line vertices. Dynamic buffers are refilled
// every frame.
type lineBuffer struct {
	vao, vbo uint32
	count    int32
	capacity int
	usage    uint32
}

func newLineBuffer(usage uint32) *lineBuffer {
	b := &lineBuffer{usage: usage}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, lineStride, nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, lineStride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return b
}

func (b *lineBuffer) set(vertices []geometry.LineVertex) {
	b.count = int32(len(vertices))
	if len(vertices) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	size := len(vertices) * int(lineStride)
	if len(vertices) > b.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&vertices[0]), b.usage)
		b.capacity = len(vertices)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&vertices[0]))
	}
}

func (b *lineBuffer) draw() {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.LINES, 0, b.count)
}

func (b *lineBuffer) destroy() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
}
