package physics

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultFriction    = 0.3
	DefaultRestitution = 0.1
	DefaultGravity     = -10.0
)

// World holds every rigid body and advances them in time. Collision detection
// is a naive broad phase (axis aligned boxes of every pair) followed by a
// separating axis test between oriented boxes.
type World struct {
	Gravity        mgl64.Vec3
	Bodies         []*Body
	SleepThreshold float64
	SleepTime      float64
	LinearDamping  float64
	AngularDamping float64
	NextBodyId     int64
}

func NewWorld() *World {
	return &World{
		Gravity:        mgl64.Vec3{0, DefaultGravity, 0},
		SleepThreshold: 0.05,
		SleepTime:      1.0,
		LinearDamping:  0.999,
		AngularDamping: 0.98,
		NextBodyId:     1,
	}
}

func (w *World) AddBody(b *Body) {
	b.Id = w.NextBodyId
	w.NextBodyId++
	w.Bodies = append(w.Bodies, b)
}

// RemoveBody takes b out of the simulation. It returns false if b was not part
// of the world.
func (w *World) RemoveBody(b *Body) bool {
	idx := slices.Index(w.Bodies, b)
	if idx < 0 {
		return false
	}
	w.Bodies = slices.Delete(w.Bodies, idx, idx+1)
	return true
}

func (w *World) Clear() {
	w.Bodies = w.Bodies[:0]
}

// Step advances the simulation by dt seconds. It does no sub-stepping of its
// own, callers that want a fixed timestep call it repeatedly with the same dt.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	for _, b := range w.Bodies {
		if b.Static() || b.Sleeping {
			continue
		}

		b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
		b.Velocity = b.Velocity.Mul(w.LinearDamping)
		b.AngularVelocity = b.AngularVelocity.Mul(w.AngularDamping)

		b.Position = b.Position.Add(b.Velocity.Mul(dt))
		if b.AngularVelocity.Len() > 0 {
			spin := mgl64.Quat{W: 0, V: b.AngularVelocity.Mul(0.5 * dt)}
			b.Orientation = b.Orientation.Add(spin.Mul(b.Orientation)).Normalize()
		}

		for _, other := range w.Bodies {
			if other == b || !aabbOverlap(b, other) {
				continue
			}
			w.resolveContact(b, other)
		}

		if b.Velocity.Len() < w.SleepThreshold && b.AngularVelocity.Len() < w.SleepThreshold {
			b.idleTime += dt
			if b.idleTime > w.SleepTime {
				b.Sleeping = true
				b.Velocity = mgl64.Vec3{}
				b.AngularVelocity = mgl64.Vec3{}
			}
		} else {
			b.idleTime = 0
		}
	}
}

func aabbOverlap(a, b *Body) bool {
	minA, maxA := a.AABB()
	minB, maxB := b.AABB()
	for i := 0; i < 3; i++ {
		if minA[i] > maxB[i] || maxA[i] < minB[i] {
			return false
		}
	}
	return true
}

// resolveContact pushes the dynamic body b out of other and applies the
// contact impulse (with friction) to both.
func (w *World) resolveContact(b, other *Body) {
	collision, normal, penetration, contact := CheckOBBCollision(b, other)
	if !collision {
		return
	}

	b.Position = b.Position.Add(normal.Mul(penetration))

	rA := contact.Sub(b.Position)
	rB := contact.Sub(other.Position)

	vA := b.Velocity.Add(b.AngularVelocity.Cross(rA))
	vB := other.Velocity
	if !other.Static() {
		vB = other.Velocity.Add(other.AngularVelocity.Cross(rB))
	}

	relativeVel := vA.Sub(vB)
	velAlongNormal := relativeVel.Dot(normal)
	if velAlongNormal > 0 {
		return
	}

	restitution := (b.Restitution + other.Restitution) * 0.5

	inertiaA := b.inertia()
	denom := 1.0 / b.Mass
	rAn := rA.Cross(normal)
	denom += rAn.Dot(rAn) / inertiaA

	var inertiaB float64
	if !other.Static() {
		inertiaB = other.inertia()
		denom += 1.0 / other.Mass
		rBn := rB.Cross(normal)
		denom += rBn.Dot(rBn) / inertiaB
	}

	j := -(1 + restitution) * velAlongNormal / denom
	impulse := normal.Mul(j)

	b.Velocity = b.Velocity.Add(impulse.Mul(1.0 / b.Mass))
	b.AngularVelocity = b.AngularVelocity.Add(rA.Cross(impulse).Mul(1.0 / inertiaA))

	if !other.Static() {
		other.Velocity = other.Velocity.Sub(impulse.Mul(1.0 / other.Mass))
		other.AngularVelocity = other.AngularVelocity.Sub(rB.Cross(impulse).Mul(1.0 / inertiaB))
		other.Wake()
	}

	friction := (b.Friction + other.Friction) * 0.5
	tangent := relativeVel.Sub(normal.Mul(velAlongNormal))
	if tangent.Len() > 0.0001 {
		tangent = tangent.Normalize()
		jt := -relativeVel.Dot(tangent) * friction / denom
		fImpulse := tangent.Mul(jt)
		b.Velocity = b.Velocity.Add(fImpulse.Mul(1.0 / b.Mass))
		b.AngularVelocity = b.AngularVelocity.Add(rA.Cross(fImpulse).Mul(1.0 / inertiaA))
	}
}

// CheckOBBCollision runs a separating axis test between two oriented boxes.
// The returned normal points from b towards a, so moving a along it by
// penetration separates the boxes.
func CheckOBBCollision(a, b *Body) (collision bool, normal mgl64.Vec3, penetration float64, contact mgl64.Vec3) {
	axesA := a.Axes()
	axesB := b.Axes()
	L := b.Position.Sub(a.Position)

	testAxes := make([]mgl64.Vec3, 0, 15)
	for i := 0; i < 3; i++ {
		testAxes = append(testAxes, axesA[i], axesB[i])
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cross := axesA[i].Cross(axesB[j])
			if cross.LenSqr() > 0.0001 {
				testAxes = append(testAxes, cross.Normalize())
			}
		}
	}

	penetration = math.MaxFloat64
	for _, axis := range testAxes {
		overlap := projectedOverlap(a, b, axesA, axesB, axis, L)
		if overlap <= 0 {
			return false, mgl64.Vec3{}, 0, mgl64.Vec3{}
		}
		if overlap < penetration {
			penetration = overlap
			normal = axis
		}
	}

	if L.Dot(normal) > 0 {
		normal = normal.Mul(-1)
	}
	return true, normal, penetration, contactPoint(a, b, axesA, axesB)
}

func projectedOverlap(a, b *Body, axesA, axesB [3]mgl64.Vec3, axis, L mgl64.Vec3) float64 {
	var projA, projB float64
	for i := 0; i < 3; i++ {
		projA += math.Abs(axesA[i].Dot(axis)) * a.HalfExtents[i]
		projB += math.Abs(axesB[i].Dot(axis)) * b.HalfExtents[i]
	}
	return projA + projB - math.Abs(L.Dot(axis))
}

// contactPoint averages the corners of each box that lie inside the other one.
func contactPoint(a, b *Body, axesA, axesB [3]mgl64.Vec3) mgl64.Vec3 {
	cornersA := BoxCorners(a.Position, axesA, a.HalfExtents)
	cornersB := BoxCorners(b.Position, axesB, b.HalfExtents)

	var sum mgl64.Vec3
	n := 0
	for _, p := range cornersA {
		if pointInOBB(p, b.Position, axesB, b.HalfExtents) {
			sum = sum.Add(p)
			n++
		}
	}
	for _, p := range cornersB {
		if pointInOBB(p, a.Position, axesA, a.HalfExtents) {
			sum = sum.Add(p)
			n++
		}
	}
	if n == 0 {
		return a.Position.Add(b.Position).Mul(0.5)
	}
	return sum.Mul(1.0 / float64(n))
}

func pointInOBB(p, pos mgl64.Vec3, axes [3]mgl64.Vec3, halfExtents mgl64.Vec3) bool {
	d := p.Sub(pos)
	for i := 0; i < 3; i++ {
		if math.Abs(d.Dot(axes[i])) > halfExtents[i]+0.01 {
			return false
		}
	}
	return true
}
