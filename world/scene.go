package world

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is the render side of a layer: a box with a transform and a color.
// Size is the geometry the box was created with, Scale is applied on top of
// it. Cutting a layer changes Scale, never Size.
type Mesh struct {
	Id          int64
	Size        mgl64.Vec3
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       mgl64.Vec3
	Hue         float64
}

func NewMesh(id int64, size, pos mgl64.Vec3, hue float64) *Mesh {
	return &Mesh{
		Id:          id,
		Size:        size,
		Position:    pos,
		Orientation: mgl64.QuatIdent(),
		Scale:       mgl64.Vec3{1, 1, 1},
		Hue:         hue,
	}
}

// Extents is the actual size of the box after scaling.
func (m *Mesh) Extents() mgl64.Vec3 {
	return mgl64.Vec3{
		m.Size.X() * m.Scale.X(),
		m.Size.Y() * m.Scale.Y(),
		m.Size.Z() * m.Scale.Z(),
	}
}

// Scene is the set of meshes that get drawn.
type Scene struct {
	Meshes []*Mesh
}

func (s *Scene) Add(m *Mesh) {
	s.Meshes = append(s.Meshes, m)
}

func (s *Scene) Remove(m *Mesh) bool {
	idx := slices.Index(s.Meshes, m)
	if idx < 0 {
		return false
	}
	s.Meshes = slices.Delete(s.Meshes, idx, idx+1)
	return true
}

func (s *Scene) Clear() {
	s.Meshes = s.Meshes[:0]
}
