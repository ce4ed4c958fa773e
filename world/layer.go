package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marisvali/tower/physics"
)

const BoxHeight = 1.0
const OriginalBoxSize = 3.0

// BaseMass is the mass of an overhang that has the full original footprint.
// Smaller overhangs get a proportionally smaller mass.
const BaseMass = 5.0

// Axis is the horizontal direction along which a layer travels before it is
// placed. The values double as indexes into a mgl64.Vec3.
type Axis int64

const (
	X Axis = 0
	Z Axis = 2
)

func (a Axis) Other() Axis {
	if a == X {
		return Z
	}
	return X
}

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Z:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int64(a))
	}
}

// Layer is a block of the tower, either placed or falling. The render mesh and
// the rigid body belong to the layer and live and die together: newLayer
// registers both, releaseLayer removes both.
type Layer struct {
	Id    int64
	Width float64
	Depth float64
	Axis  Axis
	Mesh  *Mesh
	Body  *physics.Body
	// BornMs is the simulation time at which the layer was created. Only
	// relevant for overhangs, which may be retired after some time.
	BornMs float64
}

// Pos is the position of the layer as far as the game is concerned. For
// layers in the stack this is the same as the body position. For overhangs
// it is the last position copied from the body.
func (l *Layer) Pos() mgl64.Vec3 {
	return l.Mesh.Position
}

// Extent returns the size of the footprint along a horizontal axis.
func (l *Layer) Extent(a Axis) float64 {
	if a == X {
		return l.Width
	}
	return l.Depth
}

// SetCoord sets one coordinate of the position on both the mesh and the body.
func (l *Layer) SetCoord(a Axis, v float64) {
	l.Mesh.Position[a] = v
	l.Body.Position[a] = v
}

// Shift moves the layer along a on both the mesh and the body.
func (l *Layer) Shift(a Axis, dv float64) {
	l.Mesh.Position[a] += dv
	l.Body.Position[a] += dv
}

func HalfExtents(width, depth float64) mgl64.Vec3 {
	return mgl64.Vec3{width / 2, BoxHeight / 2, depth / 2}
}

// OverhangMass gives falling blocks a mass that scales with their footprint
// area, so thin slivers fall light and large chunks fall heavy.
func OverhangMass(width, depth float64) float64 {
	return BaseMass * (width / OriginalBoxSize) * (depth / OriginalBoxSize)
}

// newLayer creates a layer together with its mesh and body and registers them
// with the scene and the physics world.
func (w *World) newLayer(x, y, z, width, depth float64, falling bool) *Layer {
	pos := mgl64.Vec3{x, y, z}
	mass := 0.0
	if falling {
		mass = OverhangMass(width, depth)
	}

	l := &Layer{
		Id:     w.NextLayerId,
		Width:  width,
		Depth:  depth,
		BornMs: w.SimTimeMs,
	}
	w.NextLayerId++

	l.Mesh = NewMesh(l.Id, mgl64.Vec3{width, BoxHeight, depth}, pos,
		LayerHue(len(w.Stack)))
	l.Body = physics.NewBody(mass, HalfExtents(width, depth), pos)

	w.Scene.Add(l.Mesh)
	w.Physics.AddBody(l.Body)
	return l
}

// releaseLayer removes the mesh and the body of l from the scene and the
// physics world.
func (w *World) releaseLayer(l *Layer) {
	w.Scene.Remove(l.Mesh)
	w.Physics.RemoveBody(l.Body)
}

// addLayer places a new layer on top of the stack.
func (w *World) addLayer(x, z, width, depth float64, axis Axis) *Layer {
	y := BoxHeight * float64(len(w.Stack))
	l := w.newLayer(x, y, z, width, depth, false)
	l.Axis = axis
	if len(w.Stack) > 0 {
		Assert(w.Stack[len(w.Stack)-1].Axis != axis)
	}
	w.Stack = append(w.Stack, l)
	return l
}

// addOverhang creates a falling block at the height of the top layer.
func (w *World) addOverhang(x, z, width, depth float64) *Layer {
	y := BoxHeight * float64(len(w.Stack)-1)
	l := w.newLayer(x, y, z, width, depth, true)
	w.Overhangs = append(w.Overhangs, l)
	return l
}

// LayerHue is the hue (in degrees) of a layer created when the stack has
// stackLen layers.
func LayerHue(stackLen int) float64 {
	return float64(30 + stackLen*4)
}
