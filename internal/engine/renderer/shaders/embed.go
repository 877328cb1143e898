// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader transforms mesh items and their shadow coordinates.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader shades mesh items, lit or unlit, with optional shadows.
//
//go:embed mesh.frag
var MeshFragmentShader string

// DepthVertexShader renders shadow casters from the light.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader is empty; only depth is written.
//
//go:embed depth.frag
var DepthFragmentShader string

// LineVertexShader draws the grid and bounds wireframes.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader colors lines by vertex with a tint.
//
//go:embed line.frag
var LineFragmentShader string
