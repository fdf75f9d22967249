package graphics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestChildInheritsParentRotation(t *testing.T) {
	scene := NewScene()
	group := NewGroup()
	child := NewMesh(nil, nil)
	child.Position = mgl32.Vec3{1.5, 0.5, 0}
	group.Add(child)
	scene.Add(group)

	group.Rotation[1] = math.Pi / 2
	scene.UpdateMatrixWorld()

	// rotating +X by 90 degrees about Y lands on -Z
	got := child.WorldPosition()
	want := mgl32.Vec3{0, 0.5, -1.5}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("expected world position %v, got %v", want, got)
	}
}

func TestScaleAppliesBeforeTranslation(t *testing.T) {
	m := NewMesh(nil, nil)
	m.Position = mgl32.Vec3{2, 0, 0}
	m.SetScalar(0.25)
	m.UpdateMatrixWorld()

	p := m.MatrixWorld().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !p.ApproxEqual(mgl32.Vec3{2.25, 0, 0}) {
		t.Errorf("expected (2.25,0,0), got %v", p)
	}
}

func TestAddReparents(t *testing.T) {
	a := NewGroup()
	b := NewGroup()
	m := NewMesh(nil, nil)
	a.Add(m)
	b.Add(m)

	if len(a.Children()) != 0 {
		t.Errorf("expected mesh removed from old parent")
	}
	if m.Parent() != &b.Object3D {
		t.Errorf("expected new parent")
	}
}

func TestTraverseOrderAndVisibility(t *testing.T) {
	scene := NewScene()
	first := NewGroup()
	first.Name = "first"
	hidden := NewGroup()
	hidden.Name = "hidden"
	hidden.Visible = false
	inner := NewMesh(nil, nil)
	inner.Name = "inner"
	hidden.Add(inner)
	last := NewMesh(nil, nil)
	last.Name = "last"
	first.Add(last)
	scene.Add(first, hidden)

	var names []string
	Traverse(scene, func(o Object) { names = append(names, o.Node().Name) })

	want := []string{"", "first", "last"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
		}
	}
}

func TestCollectGathersLightsAndDraws(t *testing.T) {
	scene := NewScene()
	light := NewPointLight(White, 2)
	light.Position = mgl32.Vec3{3, 3, 3}
	scene.Add(light)
	scene.Add(NewPointLightHelper(light, 0.15))
	scene.Add(NewAxesHelper(5))
	scene.Add(NewMesh(NewSphereGeometry(1, 8, 4), NewStandardMaterial()))
	scene.UpdateMatrixWorld()

	lights, items := collect(scene)
	if len(lights.positions) != 1 {
		t.Fatalf("expected 1 light, got %d", len(lights.positions))
	}
	if !lights.positions[0].ApproxEqual(mgl32.Vec3{3, 3, 3}) {
		t.Errorf("light position %v", lights.positions[0])
	}
	if lights.colors[0] != (mgl32.Vec3{2, 2, 2}) {
		t.Errorf("light color should be premultiplied by intensity, got %v", lights.colors[0])
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 draw items, got %d", len(items))
	}
	if !items[0].lines || !items[1].lines || items[2].lines {
		t.Errorf("unexpected primitive kinds: %+v", items)
	}
	// helper follows the light
	helperPos := items[0].object.WorldPosition()
	if !helperPos.ApproxEqual(mgl32.Vec3{3, 3, 3}) {
		t.Errorf("helper should sit on the light, got %v", helperPos)
	}
}

func TestCollectCapsLights(t *testing.T) {
	scene := NewScene()
	for i := 0; i < MaxLights+2; i++ {
		scene.Add(NewPointLight(White, 1))
	}
	scene.UpdateMatrixWorld()
	lights, _ := collect(scene)
	if len(lights.positions) != MaxLights {
		t.Errorf("expected %d lights, got %d", MaxLights, len(lights.positions))
	}
}
