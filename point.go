package main

// Pt is a point on the screen, in pixels.
type Pt struct {
	X int64
	Y int64
}
