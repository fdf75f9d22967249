package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog/log"
)

// Attribute locations shared by every built-in and user program
const (
	attribPosition = 0
	attribNormal   = 1
	attribUV       = 2
	attribColor    = 3
)

type gpuGeometry struct {
	vao     uint32
	vbos    []uint32
	ebo     uint32
	count   int32
	indexed bool
}

// drawItem is one draw call gathered from the scene graph
type drawItem struct {
	object   *Object3D
	geometry *Geometry
	material Material
	lines    bool
}

// Renderer draws a Scene through a PerspectiveCamera. GPU resources for geometries,
// materials and textures are created on first use and released by Dispose.
type Renderer struct {
	clearColor Color
	clearAlpha float32
	pixelRatio float64
	width      int
	height     int

	programs   map[string]*Shader
	geometries map[*Geometry]*gpuGeometry
	textures   map[*Texture]uint32
	failed     map[Material]bool
}

// NewRenderer configures global GL state; a GL context must be current
func NewRenderer() (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	return &Renderer{
		clearColor: Black,
		clearAlpha: 1,
		pixelRatio: 1,
		programs:   make(map[string]*Shader),
		geometries: make(map[*Geometry]*gpuGeometry),
		textures:   make(map[*Texture]uint32),
		failed:     make(map[Material]bool),
	}, nil
}

func (r *Renderer) SetClearColor(c Color, alpha float32) {
	r.clearColor = c
	r.clearAlpha = alpha
}

func (r *Renderer) SetPixelRatio(ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	r.pixelRatio = ratio
}

// SetSize sets the logical viewport size; the drawing buffer is size times pixel ratio
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	w, h := r.DrawingBufferSize()
	gl.Viewport(0, 0, int32(w), int32(h))
}

// DrawingBufferSize returns the framebuffer size in device pixels
func (r *Renderer) DrawingBufferSize() (int, int) {
	return int(float64(r.width)*r.pixelRatio + 0.5), int(float64(r.height)*r.pixelRatio + 0.5)
}

// Render clears the framebuffer and draws every visible mesh and line in the scene
func (r *Renderer) Render(scene *Scene, camera *PerspectiveCamera) {
	gl.ClearColor(r.clearColor.R, r.clearColor.G, r.clearColor.B, r.clearAlpha)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	scene.UpdateMatrixWorld()
	lights, items := collect(scene)

	view := camera.ViewMatrix()
	proj := camera.ProjectionMatrix()
	env := &drawEnv{lights: lights, bindTexture: r.bindTexture}

	for _, it := range items {
		r.draw(it, view, proj, camera.Position, env)
	}
	gl.BindVertexArray(0)
}

// collect walks the scene graph once, syncing helpers and gathering lights and draw calls
func collect(scene *Scene) (lightUniforms, []drawItem) {
	var lights lightUniforms
	var items []drawItem
	Traverse(scene, func(o Object) {
		switch v := o.(type) {
		case *PointLight:
			if !lights.add(v) {
				log.Debug().Str("light", v.Name).Msg("light limit reached; ignoring point light")
			}
		case *PointLightHelper:
			v.sync()
			items = append(items, drawItem{object: &v.Object3D, geometry: v.Geometry, material: v.Material, lines: true})
		case *LineSegments:
			if v.Material != nil {
				items = append(items, drawItem{object: &v.Object3D, geometry: v.Geometry, material: v.Material, lines: true})
			}
		case *Mesh:
			items = append(items, drawItem{object: &v.Object3D, geometry: v.Geometry, material: v.Material})
		}
	})
	return lights, items
}

func (r *Renderer) draw(it drawItem, view, proj mgl32.Mat4, cameraPos mgl32.Vec3, env *drawEnv) {
	if it.geometry == nil || it.material == nil || it.geometry.Count() == 0 {
		return
	}
	shader := r.program(it.material)
	if shader == nil {
		return
	}
	geo := r.uploadGeometry(it.geometry)

	model := it.object.MatrixWorld()
	modelView := view.Mul4(model)

	shader.Use()
	shader.SetMatrix4("modelMatrix", model)
	shader.SetMatrix4("viewMatrix", view)
	shader.SetMatrix4("projectionMatrix", proj)
	shader.SetMatrix4("modelViewMatrix", modelView)
	shader.SetMatrix3("normalMatrix", modelView.Mat3().Inv().Transpose())
	shader.SetVector3("cameraPosition", cameraPos)
	if err := it.material.bind(shader, env); err != nil && !r.failed[it.material] {
		r.failed[it.material] = true
		log.Warn().Err(err).Msg("material uniforms")
	}

	mode := uint32(gl.TRIANGLES)
	if it.lines {
		mode = gl.LINES
	}
	gl.BindVertexArray(geo.vao)
	if geo.indexed {
		gl.DrawElements(mode, geo.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(mode, 0, geo.count)
	}
}

// program compiles a material's source once and caches it by source text.
// Compile failures are logged once per material and the draw is skipped.
func (r *Renderer) program(m Material) *Shader {
	if r.failed[m] {
		return nil
	}
	vs, fs := m.Source()
	key := vs + "\x00" + fs
	if s, ok := r.programs[key]; ok {
		return s
	}
	s, err := NewShader(vs, fs)
	if err != nil {
		r.failed[m] = true
		log.Error().Err(err).Msg("material program")
		return nil
	}
	r.programs[key] = s
	return s
}

func (r *Renderer) bindTexture(unit int32, t *Texture) bool {
	if t == nil || t.Image == nil {
		return false
	}
	id, ok := r.textures[t]
	if !ok {
		id = uploadTexture(t)
		r.textures[t] = id
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, id)
	return true
}

func (r *Renderer) uploadGeometry(g *Geometry) *gpuGeometry {
	if geo, ok := r.geometries[g]; ok {
		return geo
	}
	geo := &gpuGeometry{count: int32(g.Count()), indexed: len(g.Indices) > 0}
	gl.GenVertexArrays(1, &geo.vao)
	gl.BindVertexArray(geo.vao)

	geo.addVec3(attribPosition, g.Positions)
	geo.addVec3(attribNormal, g.Normals)
	geo.addVec2(attribUV, g.UVs)
	geo.addVec3(attribColor, g.Colors)

	if geo.indexed {
		gl.GenBuffers(1, &geo.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, geo.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	r.geometries[g] = geo
	return geo
}

func (geo *gpuGeometry) addVec3(loc uint32, data []mgl32.Vec3) {
	if len(data) == 0 {
		return
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*3*4, gl.Ptr(&data[0][0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointerWithOffset(loc, 3, gl.FLOAT, false, 3*4, 0)
	geo.vbos = append(geo.vbos, vbo)
}

func (geo *gpuGeometry) addVec2(loc uint32, data []mgl32.Vec2) {
	if len(data) == 0 {
		return
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*2*4, gl.Ptr(&data[0][0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointerWithOffset(loc, 2, gl.FLOAT, false, 2*4, 0)
	geo.vbos = append(geo.vbos, vbo)
}

// Dispose deletes every GPU object the renderer created
func (r *Renderer) Dispose() {
	for _, geo := range r.geometries {
		if len(geo.vbos) > 0 {
			gl.DeleteBuffers(int32(len(geo.vbos)), &geo.vbos[0])
		}
		if geo.ebo != 0 {
			gl.DeleteBuffers(1, &geo.ebo)
		}
		gl.DeleteVertexArrays(1, &geo.vao)
	}
	for _, id := range r.textures {
		id := id
		gl.DeleteTextures(1, &id)
	}
	for _, s := range r.programs {
		s.Delete()
	}
	r.geometries = make(map[*Geometry]*gpuGeometry)
	r.textures = make(map[*Texture]uint32)
	r.programs = make(map[string]*Shader)
	r.failed = make(map[Material]bool)
}
