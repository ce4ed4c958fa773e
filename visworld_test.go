package main

import (
	"testing"

	"github.com/marisvali/tower/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T) *world.World {
	w := world.NewWorld(0, world.DefaultParams(), nil)
	w.Start(false)
	t.Cleanup(w.Destroy)
	return w
}

// dropPerfect lines up the moving layer with the one below and drops it.
func dropPerfect(w *world.World) {
	w.JustPerfect = w.JustPerfect[:0]
	top := w.Stack[len(w.Stack)-1]
	prev := w.Stack[len(w.Stack)-2]
	top.SetCoord(top.Axis, prev.Pos()[top.Axis])
	w.Drop()
}

func TestVisWorld_PerfectCreatesEffects(t *testing.T) {
	w := newTestWorld(t)
	v := NewVisWorld(0)

	dropPerfect(w)
	require.Len(t, w.JustPerfect, 1)
	v.Step(w)
	require.Len(t, v.Texts, 1)
	assert.Equal(t, "PERFECT!", v.Texts[0].Text)
	require.Len(t, v.Pulses, 1)
	assert.Equal(t, w.JustPerfect[0].LayerId, v.Pulses[0].LayerId)
	assert.NotNil(t, v.PulseOf(w.JustPerfect[0].LayerId))

	dropPerfect(w)
	v.Step(w)
	require.Len(t, v.Texts, 3)
	assert.Equal(t, "X2 Combo!", v.Texts[2].Text)
	assert.Equal(t, int64(2), v.Pulses[1].Combo)
}

func TestVisWorld_TextsFadeOut(t *testing.T) {
	w := newTestWorld(t)
	v := NewVisWorld(0)

	dropPerfect(w)
	v.Step(w)
	y := v.Texts[0].Pos.Y()
	w.JustPerfect = w.JustPerfect[:0]

	frames := 1
	for len(v.Texts) > 0 {
		v.Step(w)
		frames++
		require.Less(t, frames, 100)
	}
	// 1 / TextFadePerFrame frames, give or take rounding.
	assert.InDelta(t, 1/TextFadePerFrame, frames, 1)

	dropPerfect(w)
	v.Step(w)
	v.Step(w)
	assert.Greater(t, v.Texts[0].Pos.Y(), y)
}

func TestVisWorld_PulseEnds(t *testing.T) {
	w := newTestWorld(t)
	v := NewVisWorld(0)

	dropPerfect(w)
	v.Step(w)
	w.JustPerfect = w.JustPerfect[:0]
	for range PulseFrames - 2 {
		v.Step(w)
	}
	assert.Len(t, v.Pulses, 1)
	v.Step(w)
	assert.Empty(t, v.Pulses)
}

func TestVisWorld_SessionChangeClearsEverything(t *testing.T) {
	w := newTestWorld(t)
	v := NewVisWorld(0)

	for range 5 {
		dropPerfect(w)
		v.Step(w)
	}
	require.NotEmpty(t, v.Texts)
	require.NotEmpty(t, v.Pulses)
	require.Greater(t, v.CameraY, CameraStartY)

	w.Restart(false)
	v.Step(w)
	assert.Empty(t, v.Texts)
	assert.Empty(t, v.Pulses)
	assert.Equal(t, CameraStartY, v.CameraY)
	assert.Equal(t, w.Session, v.Session)
}

func TestVisWorld_CameraFollowsTower(t *testing.T) {
	w := newTestWorld(t)
	v := NewVisWorld(0)

	for range 10 {
		dropPerfect(w)
	}
	target := world.BoxHeight*float64(len(w.Stack)-2) + CameraStartY
	previous := v.CameraY
	for range 200 {
		v.Step(w)
		assert.GreaterOrEqual(t, v.CameraY, previous)
		previous = v.CameraY
	}
	assert.InDelta(t, target, v.CameraY, 1e-3)
}

func TestPulse_Scale(t *testing.T) {
	p := Pulse{Combo: 1}
	assert.Equal(t, 1.0, p.Scale())
	p.Frame = PulseFrames / 2
	assert.InDelta(t, 1.25, p.Scale(), 1e-9)

	p.Combo = 100
	assert.InDelta(t, 1+0.25*MaxPulseCombo, p.Scale(), 1e-9)
}
