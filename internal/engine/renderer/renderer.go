// Package renderer draws a scene.Frame with OpenGL.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/rollcube/internal/engine/camera"
	"github.com/Faultbox/rollcube/internal/engine/geometry"
	"github.com/Faultbox/rollcube/internal/engine/renderer/shaders"
	"github.com/Faultbox/rollcube/internal/engine/scene"
	"github.com/Faultbox/rollcube/internal/engine/shader"
	"github.com/Faultbox/rollcube/internal/engine/shadow"
	"github.com/Faultbox/rollcube/internal/logger"
	"github.com/Faultbox/rollcube/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width         int
	Height        int
	Shadows       bool
	ShadowMapSize int
	ShowBounds    bool
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshProgram  *shader.Program
	depthProgram *shader.Program
	lineProgram  *shader.Program

	meshes *meshCache
	grid   *lineBuffer
	bounds *lineBuffer

	// gridKey is the layout the grid buffer was built for.
	gridKey scene.Grid

	shadowMap *shadow.Map
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	if err := r.createPrograms(cfg.Shadows); err != nil {
		r.Close()
		return nil, err
	}

	r.meshes = newMeshCache()
	r.grid = newLineBuffer(gl.STATIC_DRAW)
	r.bounds = newLineBuffer(gl.DYNAMIC_DRAW)

	if cfg.Shadows {
		sm, err := shadow.NewMap(int32(cfg.ShadowMapSize))
		if err != nil {
			// Shadows are cosmetic; draw without them.
			r.log.Warn("shadows disabled", zap.Error(err))
		} else {
			r.shadowMap = sm
			r.log.Debug("shadow map ready", zap.Int32("size", sm.Size()))
		}
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

func (r *Renderer) createPrograms(shadows bool) error {
	var defines []string
	if shadows {
		defines = append(defines, "SHADOWS")
	}

	var err error
	r.meshProgram, err = shader.NewProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader, defines...)
	if err != nil {
		return fmt.Errorf("mesh shader: %w", err)
	}
	r.depthProgram, err = shader.NewProgram(shaders.DepthVertexShader, shaders.DepthFragmentShader)
	if err != nil {
		return fmt.Errorf("depth shader: %w", err)
	}
	r.lineProgram, err = shader.NewProgram(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		return fmt.Errorf("line shader: %w", err)
	}

	r.log.Debug("shader programs created",
		zap.Uint32("mesh", r.meshProgram.ID),
		zap.Uint32("depth", r.depthProgram.ID),
		zap.Uint32("line", r.lineProgram.ID),
	)
	return nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.meshes != nil {
		r.meshes.destroy()
	}
	if r.grid != nil {
		r.grid.destroy()
	}
	if r.bounds != nil {
		r.bounds.destroy()
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	for _, p := range []*shader.Program{r.meshProgram, r.depthProgram, r.lineProgram} {
		if p != nil {
			p.Delete()
		}
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ReadPixels returns the back buffer as tightly packed RGBA rows, bottom row
// first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// SetShowBounds toggles the item bounds overlay.
func (r *Renderer) SetShowBounds(show bool) {
	r.config.ShowBounds = show
}

// Render draws one frame as seen by cam.
func (r *Renderer) Render(f scene.Frame, cam *camera.OrthoCamera) {
	lightSpace, shadowed := r.shadowPass(f)

	bg := f.Background
	gl.ClearColor(bg.R, bg.G, bg.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj := cam.ViewProjection()
	eye := cam.Position()

	if f.Grid.Visible {
		r.drawGrid(f.Grid, viewProj)
	}

	r.meshProgram.Use()
	r.meshProgram.SetMat4("uViewProj", viewProj)
	r.meshProgram.SetVec3("uEye", eye.Array())
	r.meshProgram.SetFloat("uAmbient", f.Ambient*ambientScale)

	lights := packLights(f.Lights)
	r.meshProgram.SetInt("uLightCount", lights.count)
	for i := int32(0); i < lights.count; i++ {
		r.meshProgram.SetVec3(fmt.Sprintf("uLightDir[%d]", i), lights.dirs[i])
		r.meshProgram.SetVec3(fmt.Sprintf("uLightColor[%d]", i), lights.colors[i])
	}
	r.meshProgram.SetInt("uShadowLight", lights.shadow)
	if shadowed {
		r.meshProgram.SetMat4("uLightSpace", shadow.Bias().Mul(lightSpace))
		r.shadowMap.BindTexture(gl.TEXTURE0)
		r.meshProgram.SetInt("uShadowMap", 0)
	} else {
		r.meshProgram.SetMat4("uLightSpace", math.Identity())
	}

	// Opaque pass
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for _, it := range f.Opaque() {
		r.drawItem(it, shadowed)
	}

	// Blended pass, back to front without depth writes
	blended := f.Blended()
	if len(blended) > 0 {
		sortBackToFront(blended, eye)
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
		for _, it := range blended {
			r.drawItem(it, shadowed)
		}
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}

	if r.config.ShowBounds {
		r.bounds.set(boundsLines(f.Items))
		r.lineProgram.Use()
		r.lineProgram.SetMat4("uViewProj", viewProj)
		r.lineProgram.SetMat4("uModel", math.Identity())
		r.lineProgram.SetVec4("uTint", [4]float32{1, 1, 1, 1})
		r.bounds.draw()
	}

	gl.BindVertexArray(0)
}

// shadowPass renders casters into the shadow map and returns the light's
// view-projection.
func (r *Renderer) shadowPass(f scene.Frame) (math.Mat4, bool) {
	if !r.shadowMap.Valid() {
		return math.Mat4{}, false
	}
	light, ok := shadowLight(f.Lights)
	if !ok {
		return math.Mat4{}, false
	}
	b, ok := sceneBounds(f.Items)
	if !ok {
		return math.Mat4{}, false
	}
	lightSpace := shadow.LightMatrix(light.Position, b)

	r.shadowMap.Pass(func() {
		r.depthProgram.Use()
		r.depthProgram.SetMat4("uLightSpace", lightSpace)
		for _, it := range f.Items {
			if !it.CastShadow || !it.Material.Visible() {
				continue
			}
			r.depthProgram.SetMat4("uModel", it.Model)
			r.meshes.get(it.Shape).draw()
		}
	})
	return lightSpace, true
}

func (r *Renderer) drawItem(it scene.Item, shadowed bool) {
	m := it.Material
	p := r.meshProgram
	p.SetMat4("uModel", it.Model)
	p.SetVec3("uColor", m.Color.RGB())
	p.SetFloat("uOpacity", m.Opacity)
	p.SetBool("uLit", m.Shading == scene.Phong)
	p.SetFloat("uShininess", m.Shininess)
	p.SetVec3("uSpecular", m.Specular.RGB())
	p.SetBool("uReceiveShadow", shadowed && it.ReceiveShadow)
	r.meshes.get(it.Shape).draw()
}

func (r *Renderer) drawGrid(g scene.Grid, viewProj math.Mat4) {
	key := g
	key.Model = math.Mat4{}
	key.Visible = true
	if key != r.gridKey {
		r.grid.set(geometry.GridLines(g.Size, g.Divisions, g.CenterColor.RGB(), g.LineColor.RGB()))
		r.gridKey = key
	}

	r.lineProgram.Use()
	r.lineProgram.SetMat4("uViewProj", viewProj)
	r.lineProgram.SetMat4("uModel", g.Model)
	r.lineProgram.SetVec4("uTint", [4]float32{1, 1, 1, 1})
	r.grid.draw()
}
