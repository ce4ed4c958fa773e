package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is a rigid box. A Body with Mass 0 is static: gravity and contacts
// never move it, but its Position can still be set from the outside (this is
// how the moving top layer of the tower slides while staying immovable for
// everything that falls on it).
type Body struct {
	Id              int64
	Mass            float64
	HalfExtents     mgl64.Vec3
	Position        mgl64.Vec3
	Orientation     mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	Friction        float64
	Restitution     float64
	Sleeping        bool
	idleTime        float64
}

func NewBody(mass float64, halfExtents mgl64.Vec3, pos mgl64.Vec3) *Body {
	return &Body{
		Mass:        mass,
		HalfExtents: halfExtents,
		Position:    pos,
		Orientation: mgl64.QuatIdent(),
		Friction:    DefaultFriction,
		Restitution: DefaultRestitution,
	}
}

func (b *Body) Static() bool {
	return b.Mass == 0
}

// SetShape replaces the box collider. Shapes are never edited in place, a new
// set of half extents is swapped in and the body is woken up so that whatever
// rests on it gets re-evaluated.
func (b *Body) SetShape(halfExtents mgl64.Vec3) {
	b.HalfExtents = halfExtents
	b.Wake()
}

func (b *Body) Wake() {
	b.Sleeping = false
	b.idleTime = 0
}

// Axes returns the local x, y, z axes of the box in world space.
func (b *Body) Axes() [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{
		b.Orientation.Rotate(mgl64.Vec3{1, 0, 0}),
		b.Orientation.Rotate(mgl64.Vec3{0, 1, 0}),
		b.Orientation.Rotate(mgl64.Vec3{0, 0, 1}),
	}
}

// AABB returns the axis aligned box that contains the (possibly rotated) body.
func (b *Body) AABB() (min, max mgl64.Vec3) {
	axes := b.Axes()
	var ext mgl64.Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ext[i] += math.Abs(axes[j][i]) * b.HalfExtents[j]
		}
	}
	return b.Position.Sub(ext), b.Position.Add(ext)
}

// Corners returns the 8 corners of the box in world space.
func (b *Body) Corners() [8]mgl64.Vec3 {
	return BoxCorners(b.Position, b.Axes(), b.HalfExtents)
}

func BoxCorners(pos mgl64.Vec3, axes [3]mgl64.Vec3, halfExtents mgl64.Vec3) (corners [8]mgl64.Vec3) {
	for i := 0; i < 8; i++ {
		p := pos
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				p = p.Add(axes[k].Mul(halfExtents[k]))
			} else {
				p = p.Sub(axes[k].Mul(halfExtents[k]))
			}
		}
		corners[i] = p
	}
	return
}

// inertia is the simplified moment of inertia of a cube with the average size
// of the box.
func (b *Body) inertia() float64 {
	avgSize := (b.HalfExtents.X() + b.HalfExtents.Y() + b.HalfExtents.Z()) / 3.0 * 2.0
	return (1.0 / 6.0) * b.Mass * avgSize * avgSize
}
