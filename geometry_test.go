package main

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContainsPt(t *testing.T) {
	r := Rectangle{Pt{10, 20}, Pt{30, 50}}
	assert.True(t, r.ContainsPt(Pt{10, 20}))
	assert.True(t, r.ContainsPt(Pt{10, 25}))
	assert.True(t, r.ContainsPt(Pt{15, 25}))
	assert.True(t, r.ContainsPt(Pt{30, 50}))
	assert.False(t, r.ContainsPt(Pt{9, 20}))
	assert.False(t, r.ContainsPt(Pt{10, 19}))
	assert.False(t, r.ContainsPt(Pt{31, 50}))
	assert.False(t, r.ContainsPt(Pt{30, 51}))
	assert.False(t, r.ContainsPt(Pt{31, 51}))
}

func TestNewRectangleI(t *testing.T) {
	r := NewRectangleI(10, 20, 100, 50)
	assert.Equal(t, Pt{10, 20}, r.Min)
	assert.Equal(t, Pt{110, 70}, r.Max)
	assert.Equal(t, int64(100), r.Width())
	assert.Equal(t, int64(50), r.Height())
	assert.Equal(t, image.Rect(10, 20, 110, 70), r.ToImageRectangle())
	assert.Equal(t, r, FromImageRectangle(r.ToImageRectangle()))
}

func TestRectFractionX(t *testing.T) {
	r := NewRectangleI(100, 0, 200, 10)
	assert.Equal(t, 0.0, r.FractionX(Pt{100, 5}))
	assert.Equal(t, 0.5, r.FractionX(Pt{200, 5}))
	assert.Equal(t, 1.0, r.FractionX(Pt{300, 5}))
	assert.Equal(t, 0.0, r.FractionX(Pt{50, 5}))
	assert.Equal(t, 1.0, r.FractionX(Pt{500, 5}))

	var empty Rectangle
	assert.Equal(t, 0.0, empty.FractionX(Pt{1, 1}))
}
