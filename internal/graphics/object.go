package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Object is anything that can be placed in the scene graph
type Object interface {
	Node() *Object3D
}

// Object3D carries the transform and hierarchy shared by every scene node.
// Rotation holds Euler angles in radians applied in XYZ order.
type Object3D struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Visible  bool

	parent      *Object3D
	children    []Object
	matrixWorld mgl32.Mat4
}

func newObject3D() Object3D {
	return Object3D{
		Scale:       mgl32.Vec3{1, 1, 1},
		Visible:     true,
		matrixWorld: mgl32.Ident4(),
	}
}

// Node returns the object itself; embedding types inherit it
func (o *Object3D) Node() *Object3D { return o }

// Add attaches children, detaching them from any previous parent
func (o *Object3D) Add(children ...Object) {
	for _, c := range children {
		n := c.Node()
		if n == o {
			continue
		}
		if n.parent != nil {
			n.parent.remove(n)
		}
		n.parent = o
		o.children = append(o.children, c)
	}
}

func (o *Object3D) remove(n *Object3D) {
	for i, c := range o.children {
		if c.Node() == n {
			o.children = append(o.children[:i], o.children[i+1:]...)
			n.parent = nil
			return
		}
	}
}

// Children returns the direct children in insertion order
func (o *Object3D) Children() []Object {
	return o.children
}

// Parent returns the parent node or nil for a root
func (o *Object3D) Parent() *Object3D {
	return o.parent
}

// SetScalar sets a uniform scale on all three axes
func (o *Object3D) SetScalar(s float32) {
	o.Scale = mgl32.Vec3{s, s, s}
}

// Matrix composes the local transform as T * Rx * Ry * Rz * S
func (o *Object3D) Matrix() mgl32.Mat4 {
	t := mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	r := mgl32.HomogRotate3DX(o.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation.Z()))
	s := mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// UpdateMatrixWorld recomputes world matrices for this node and its subtree
func (o *Object3D) UpdateMatrixWorld() {
	if o.parent == nil {
		o.matrixWorld = o.Matrix()
	} else {
		o.matrixWorld = o.parent.matrixWorld.Mul4(o.Matrix())
	}
	for _, c := range o.children {
		c.Node().UpdateMatrixWorld()
	}
}

// MatrixWorld returns the world matrix computed by the last UpdateMatrixWorld
func (o *Object3D) MatrixWorld() mgl32.Mat4 {
	return o.matrixWorld
}

// WorldPosition returns the translation part of the world matrix
func (o *Object3D) WorldPosition() mgl32.Vec3 {
	return o.matrixWorld.Col(3).Vec3()
}

// Traverse visits root and then every descendant depth first.
// Invisible nodes and their subtrees are skipped.
func Traverse(root Object, fn func(Object)) {
	n := root.Node()
	if !n.Visible {
		return
	}
	fn(root)
	for _, c := range n.children {
		Traverse(c, fn)
	}
}

// Group is a plain transform node used to move several objects together
type Group struct {
	Object3D
}

func NewGroup() *Group {
	return &Group{Object3D: newObject3D()}
}

// Scene is the root of a renderable hierarchy
type Scene struct {
	Object3D
}

func NewScene() *Scene {
	return &Scene{Object3D: newObject3D()}
}

// Mesh draws indexed triangles with a material
type Mesh struct {
	Object3D
	Geometry *Geometry
	Material Material
}

func NewMesh(geometry *Geometry, material Material) *Mesh {
	return &Mesh{Object3D: newObject3D(), Geometry: geometry, Material: material}
}

// LineSegments draws pairs of vertices as GL_LINES
type LineSegments struct {
	Object3D
	Geometry *Geometry
	Material *LineMaterial
}

func NewLineSegments(geometry *Geometry, material *LineMaterial) *LineSegments {
	return &LineSegments{Object3D: newObject3D(), Geometry: geometry, Material: material}
}

// PointLight emits from a single point in all directions.
// A zero Distance disables attenuation.
type PointLight struct {
	Object3D
	Color     Color
	Intensity float32
	Distance  float32
	Decay     float32
}

func NewPointLight(color Color, intensity float32) *PointLight {
	return &PointLight{
		Object3D:  newObject3D(),
		Color:     color,
		Intensity: intensity,
		Decay:     1,
	}
}
