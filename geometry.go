package main

import "image"

// Rectangle is an area of the screen, used for the regions that react to
// clicks. Min is inclusive and so is Max.
type Rectangle struct {
	Min Pt
	Max Pt
}

func NewRectangleI(x, y, width, height int64) Rectangle {
	return Rectangle{Pt{x, y}, Pt{x + width, y + height}}
}

func FromImageRectangle(r image.Rectangle) Rectangle {
	return Rectangle{
		Min: Pt{int64(r.Min.X), int64(r.Min.Y)},
		Max: Pt{int64(r.Max.X), int64(r.Max.Y)},
	}
}

func (r Rectangle) ToImageRectangle() image.Rectangle {
	return image.Rect(int(r.Min.X), int(r.Min.Y), int(r.Max.X), int(r.Max.Y))
}

func (r Rectangle) Width() int64 {
	return r.Max.X - r.Min.X
}

func (r Rectangle) Height() int64 {
	return r.Max.Y - r.Min.Y
}

func (r Rectangle) ContainsPt(pt Pt) bool {
	return pt.X >= r.Min.X && pt.X <= r.Max.X && pt.Y >= r.Min.Y && pt.Y <= r.Max.Y
}

// FractionX says how far along the rectangle pt is horizontally, clamped to
// [0, 1]. The play bar uses it to turn a click into a frame.
func (r Rectangle) FractionX(pt Pt) float64 {
	if r.Width() <= 0 {
		return 0
	}
	f := float64(pt.X-r.Min.X) / float64(r.Width())
	return min(max(f, 0), 1)
}
