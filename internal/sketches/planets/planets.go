// Package planets draws a textured earth with a small moon orbiting on its own group,
// lit by a single point light.
package planets

import (
	"github.com/go-gl/mathgl/mgl32"

	"spicy/internal/graphics"
	"spicy/internal/sketch"
)

const (
	Name = "planets"

	EarthTexture = "earth.jpg"
	MoonTexture  = "moon.jpg"
)

// Angular speeds in radians per second
const (
	earthSpin = 0.25
	moonSpin  = 0.075
	moonOrbit = 0.25
)

var Settings = sketch.Settings{
	Animate: true,
	Context: "webgl",
	Title:   "spicy - planets",
}

type Planets struct {
	renderer *graphics.Renderer
	controls *graphics.OrbitControls
	parts
}

type parts struct {
	scene     *graphics.Scene
	camera    *graphics.PerspectiveCamera
	earth     *graphics.Mesh
	moon      *graphics.Mesh
	moonGroup *graphics.Group
	light     *graphics.PointLight
}

func buildScene(textures *graphics.TextureLoader) parts {
	camera := graphics.NewPerspectiveCamera(50, 1, 0.01, 100)
	camera.Position = mgl32.Vec3{0, 0, -5}
	camera.LookAt(mgl32.Vec3{})

	scene := graphics.NewScene()

	// one geometry for both bodies
	geometry := graphics.NewSphereGeometry(1, 32, 16)

	earthMaterial := graphics.NewStandardMaterial()
	earthMaterial.Roughness = 1
	earthMaterial.Metalness = 0
	earthMaterial.Map = textures.Load(EarthTexture)

	moonMaterial := graphics.NewStandardMaterial()
	moonMaterial.Map = textures.Load(MoonTexture)

	earth := graphics.NewMesh(geometry, earthMaterial)
	earth.Name = "earth"
	scene.Add(earth)

	moonGroup := graphics.NewGroup()
	moon := graphics.NewMesh(geometry, moonMaterial)
	moon.Name = "moon"
	moon.Position = mgl32.Vec3{1.5, 0.5, 0}
	moon.SetScalar(0.25)
	moonGroup.Add(moon)
	scene.Add(moonGroup)

	light := graphics.NewPointLight(graphics.MustColor("white"), 1)
	light.Position = mgl32.Vec3{3, 3, 3}
	scene.Add(light)

	scene.Add(graphics.NewPointLightHelper(light, 0.15))
	scene.Add(graphics.NewAxesHelper(5))

	return parts{
		scene:     scene,
		camera:    camera,
		earth:     earth,
		moon:      moon,
		moonGroup: moonGroup,
		light:     light,
	}
}

// Factory returns a sketch.Func that loads textures from assetDir
func Factory(assetDir string) sketch.Func {
	return func(ctx sketch.Context) (sketch.Sketch, error) {
		s, err := New(ctx, graphics.NewTextureLoader(assetDir))
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// New builds the sketch; ctx.Window's GL context must be current.
// Missing textures are logged by the loader and leave the bodies untextured.
func New(ctx sketch.Context, textures *graphics.TextureLoader) (*Planets, error) {
	p := buildScene(textures)

	r, err := graphics.NewRenderer()
	if err != nil {
		return nil, err
	}
	r.SetClearColor(graphics.MustColor("#000"), 1)

	controls := graphics.NewOrbitControls(p.camera)
	if ctx.Window != nil {
		controls.Attach(ctx.Window)
	}
	return &Planets{renderer: r, controls: controls, parts: p}, nil
}

func (s *Planets) Resize(props sketch.ResizeProps) {
	s.renderer.SetPixelRatio(props.PixelRatio)
	s.renderer.SetSize(props.ViewportWidth, props.ViewportHeight)
	s.camera.Aspect = float32(props.ViewportWidth) / float32(props.ViewportHeight)
	s.camera.UpdateProjectionMatrix()
}

func (s *Planets) Render(props sketch.RenderProps) {
	s.animate(props.Time)
	s.controls.Update()
	s.renderer.Render(s.scene, s.camera)
}

// animate sets absolute rotations from elapsed time, so frames are reproducible
func (p *parts) animate(t float64) {
	p.earth.Rotation[1] = float32(t * earthSpin)
	p.moon.Rotation[1] = float32(t * moonSpin)
	p.moonGroup.Rotation[1] = float32(t * moonOrbit)
}

func (s *Planets) Unload() {
	s.controls.Dispose()
	s.renderer.Dispose()
}
