package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// SubImage returns a sub-region of screen.
// r indicates a rectangle inside of screen, in the following coordinate system:
// - The top-left pixel of screen has coordinates (0, 0).
// - The bottom-right pixel of screen has coordinates
// (screenWidth - 1, screenHeight - 1).
// Ebitengine keeps the coordinates of the parent in a sub-image, so
// img2 = img1.SubImage(pt1, pt2) still needs img2.At(pt1) to reach the pixel
// img1.At(pt1). SubImage translates r so that callers can think in local
// coordinates instead.
func SubImage(screen *ebiten.Image, r image.Rectangle) *ebiten.Image {
	minPt := screen.Bounds().Min
	r.Min = r.Min.Add(minPt)
	r.Max = r.Max.Add(minPt)
	return screen.SubImage(r).(*ebiten.Image)
}
