package main

import (
	"github.com/go-gl/mathgl/mgl64"
)

// CameraOffset is where the camera sits relative to the point it looks at.
// It never changes, the camera only moves up and down with the tower.
var CameraOffset = mgl64.Vec3{4, 4, 4}

// Camera is an orthographic camera looking down at the tower from a corner.
type Camera struct {
	Eye      mgl64.Vec3
	ScreenW  float64
	ScreenH  float64
	viewProj mgl64.Mat4
}

// NewCamera places the camera at height y for a screen of the given size in
// pixels.
func NewCamera(y float64, screenW, screenH int64) (c Camera) {
	c.Eye = mgl64.Vec3{CameraOffset.X(), y, CameraOffset.Z()}
	c.ScreenW = float64(screenW)
	c.ScreenH = float64(screenH)

	view := mgl64.LookAtV(c.Eye, c.Eye.Sub(CameraOffset), mgl64.Vec3{0, 1, 0})
	h := CameraHeight(screenW, screenH)
	proj := mgl64.Ortho(-BaseWidth/2, BaseWidth/2, -h/2, h/2, 0, 100)
	c.viewProj = proj.Mul4(view)
	return
}

// Project returns the screen position of a point in the world and its depth.
// Larger depths are further away from the camera.
func (c *Camera) Project(p mgl64.Vec3) (x, y, depth float64) {
	v := c.viewProj.Mul4x1(p.Vec4(1))
	x = (v.X() + 1) / 2 * c.ScreenW
	y = (1 - v.Y()) / 2 * c.ScreenH
	depth = v.Z()
	return
}

// Facing says if a surface with the given normal is turned towards the
// camera.
func (c *Camera) Facing(normal mgl64.Vec3) bool {
	return normal.Dot(CameraOffset) > 1e-9
}
