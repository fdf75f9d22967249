// Package dots draws a tomato sphere covered in white dots. The dots are the
// vertices of a subdivided icosahedron, found per fragment by the point field shader.
package dots

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"spicy/internal/graphics"
	"spicy/internal/pointfield"
	"spicy/internal/sketch"
)

const Name = "dots"

var Settings = sketch.Settings{
	Animate: true,
	Context: "webgl",
	Title:   "spicy - dots",
}

type Dots struct {
	renderer *graphics.Renderer
	controls *graphics.OrbitControls
	parts
}

// parts is everything that does not need a GL context
type parts struct {
	scene    *graphics.Scene
	camera   *graphics.PerspectiveCamera
	mesh     *graphics.Mesh
	material *graphics.ShaderMaterial
	field    pointfield.Config
}

func buildScene() (parts, error) {
	camera := graphics.NewPerspectiveCamera(50, 1, 0.01, 100)
	camera.Position = mgl32.Vec3{0, 0, -6}
	camera.LookAt(mgl32.Vec3{})

	points := graphics.NewIcosahedronGeometry(1, 1).Vertices()
	field, err := pointfield.NewConfig(pointfield.DefaultMaxPoints, points, graphics.MustColor("tomato").Vec3())
	if err != nil {
		return parts{}, fmt.Errorf("point field: %w", err)
	}
	material := pointfield.NewMaterial(field)
	mesh := graphics.NewMesh(graphics.NewSphereGeometry(1, 32, 16), material)

	scene := graphics.NewScene()
	scene.Add(mesh)

	return parts{
		scene:    scene,
		camera:   camera,
		mesh:     mesh,
		material: material,
		field:    field,
	}, nil
}

// New builds the sketch; ctx.Window's GL context must be current
func New(ctx sketch.Context) (sketch.Sketch, error) {
	p, err := buildScene()
	if err != nil {
		return nil, err
	}
	r, err := graphics.NewRenderer()
	if err != nil {
		return nil, err
	}
	r.SetClearColor(graphics.MustColor("#000"), 1)

	controls := graphics.NewOrbitControls(p.camera)
	if ctx.Window != nil {
		controls.Attach(ctx.Window)
	}
	return &Dots{renderer: r, controls: controls, parts: p}, nil
}

func (d *Dots) Resize(props sketch.ResizeProps) {
	d.renderer.SetPixelRatio(props.PixelRatio)
	d.renderer.SetSize(props.ViewportWidth, props.ViewportHeight)
	d.camera.Aspect = float32(props.ViewportWidth) / float32(props.ViewportHeight)
	d.camera.UpdateProjectionMatrix()
}

func (d *Dots) Render(props sketch.RenderProps) {
	d.animate(props.Time)
	d.controls.Update()
	d.renderer.Render(d.scene, d.camera)
}

func (p *parts) animate(t float64) {
	p.material.Uniforms[pointfield.UniformTime].Value = float32(t)
}

func (d *Dots) Unload() {
	d.controls.Dispose()
	d.renderer.Dispose()
}
