package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frameMs = 1000.0 / 60.0

// stepFrames steps the world through n frames without any player input,
// continuing from the time *timeMs and updating it.
func stepFrames(w *World, timeMs *float64, n int) {
	for range n {
		*timeMs += frameMs
		w.Step(PlayerInput{TimeMs: *timeMs})
	}
}

func TestWorld_Start(t *testing.T) {
	w := NewWorld(0, DefaultParams(), nil)
	assert.Equal(t, Idle, w.State)
	assert.Empty(t, w.Stack)

	w.Start(false)
	defer w.Destroy()

	// Is the tower seeded with the base and the first moving layer?
	assert.Equal(t, Playing, w.State)
	assert.Equal(t, int64(1), w.Session)
	require.Len(t, w.Stack, 2)
	base := w.Stack[0]
	first := w.Stack[1]
	assert.Equal(t, Z, base.Axis)
	assert.Equal(t, [3]float64{0, 0, 0}, [3]float64(base.Pos()))
	assert.Equal(t, X, first.Axis)
	assert.Equal(t, [3]float64{OffStage, BoxHeight, 0}, [3]float64(first.Pos()))
	assert.Equal(t, OriginalBoxSize, first.Width)
	assert.Equal(t, OriginalBoxSize, first.Depth)

	// Are both layers immovable and registered everywhere?
	assert.True(t, base.Body.Static())
	assert.True(t, first.Body.Static())
	assert.Len(t, w.Scene.Meshes, 2)
	assert.Len(t, w.Physics.Bodies, 2)
	assert.Equal(t, LayerHue(0), base.Mesh.Hue)
	assert.Equal(t, LayerHue(1), first.Mesh.Hue)
}

func TestWorld_FirstStepIsBaseline(t *testing.T) {
	w := newTestWorld(t)
	top := w.TopLayer()

	w.Step(PlayerInput{TimeMs: 5000})
	assert.Equal(t, OffStage, top.Pos().X())

	w.Step(PlayerInput{TimeMs: 5100})
	speed := BaseSpeed + 2*SpeedIncrement
	assert.InDelta(t, OffStage+speed*100, top.Pos().X(), 1e-9)
	assert.InDelta(t, OffStage+speed*100, top.Body.Position.X(), 1e-9)

	// Does time going backwards move nothing?
	w.Step(PlayerInput{TimeMs: 5000})
	assert.InDelta(t, OffStage+speed*100, top.Pos().X(), 1e-9)
}

func TestWorld_ActionDrops(t *testing.T) {
	w := newTestWorld(t)
	timeMs := 0.0
	stepFrames(w, &timeMs, 20)

	timeMs += frameMs
	w.Step(PlayerInput{TimeMs: timeMs, Action: true})

	// The layer was far from the base, so the drop is a miss.
	assert.Equal(t, Ended, w.State)
	assert.True(t, w.ShowResults)
	assert.Len(t, w.Stack, 1)
}

func TestWorld_OutOfBoundsEndsGame(t *testing.T) {
	w := newTestWorld(t)
	timeMs := 0.0
	for range 1000 {
		if w.State != Playing {
			break
		}
		stepFrames(w, &timeMs, 1)
	}

	assert.Equal(t, Ended, w.State)
	assert.True(t, w.ShowResults)
	require.Len(t, w.Stack, 1)
	require.Len(t, w.Overhangs, 1)
	assert.Greater(t, w.Overhangs[0].Pos().X(), StageBound-1)
}

func TestWorld_ActionRestarts(t *testing.T) {
	w := newTestWorld(t)
	placeTop(w, 0.5)
	w.Drop()
	placeTop(w, 5)
	w.Drop()
	require.Equal(t, Ended, w.State)
	require.Len(t, w.Overhangs, 2)

	// Does an action after the game ended start a new one from scratch?
	w.Step(PlayerInput{TimeMs: 100, Action: true})
	assert.Equal(t, Playing, w.State)
	assert.Equal(t, int64(2), w.Session)
	assert.Len(t, w.Stack, 2)
	assert.Empty(t, w.Overhangs)
	assert.Len(t, w.Scene.Meshes, 2)
	assert.Len(t, w.Physics.Bodies, 2)
	assert.Equal(t, int64(0), w.Combo)
	assert.Equal(t, int64(0), w.Score)
	assert.False(t, w.ShowResults)

	// Is the restart frame the new baseline?
	assert.Equal(t, OffStage, w.TopLayer().Pos().X())
}

func TestWorld_RestartKeyAlwaysRestarts(t *testing.T) {
	w := newTestWorld(t)
	placeTop(w, 0.5)
	w.Drop()
	require.Len(t, w.Stack, 3)

	w.Step(PlayerInput{TimeMs: 0, Restart: true})
	assert.Equal(t, int64(2), w.Session)
	assert.Len(t, w.Stack, 2)
	assert.Empty(t, w.Overhangs)
	assert.Len(t, w.Physics.Bodies, 2)
}

func TestWorld_ActionTakesOverFromAutopilot(t *testing.T) {
	w := NewWorld(0, DefaultParams(), nil)
	w.Start(true)
	defer w.Destroy()

	w.Step(PlayerInput{TimeMs: 0})
	w.Step(PlayerInput{TimeMs: frameMs, Action: true})
	assert.False(t, w.Autopilot)
	assert.Equal(t, Playing, w.State)
	assert.Equal(t, int64(2), w.Session)
}

func TestWorld_ToggleAutopilot(t *testing.T) {
	w := newTestWorld(t)
	w.Step(PlayerInput{TimeMs: 0})
	w.Step(PlayerInput{TimeMs: frameMs, ToggleAutopilot: true})
	assert.True(t, w.Autopilot)
	assert.Equal(t, int64(1), w.Session)
	w.Step(PlayerInput{TimeMs: 2 * frameMs, ToggleAutopilot: true})
	assert.False(t, w.Autopilot)
}

func TestWorld_AutopilotDropsNearTarget(t *testing.T) {
	w := NewWorld(7, DefaultParams(), nil)
	w.Start(true)
	defer w.Destroy()

	precision := w.RobotPrecision
	assert.GreaterOrEqual(t, precision, -MaxRobotPrecision)
	assert.LessOrEqual(t, precision, MaxRobotPrecision)

	// The autopilot drops in the frame after the layer reaches the target, so
	// the last position seen while it was moving is where it was dropped.
	timeMs := 0.0
	dropPos := OffStage
	for range 1000 {
		if len(w.Stack) > 2 {
			break
		}
		dropPos = w.Stack[1].Pos().X()
		stepFrames(w, &timeMs, 1)
	}

	// Did the autopilot drop the layer within one frame of movement past the
	// target?
	require.Len(t, w.Stack, 3)
	assert.Equal(t, Playing, w.State)
	maxStep := (BaseSpeed + 2*SpeedIncrement) * frameMs
	assert.GreaterOrEqual(t, dropPos, precision)
	assert.Less(t, dropPos, precision+maxStep+1e-9)

	// Was the precision drawn again for the next drop?
	assert.NotEqual(t, precision, w.RobotPrecision)
}

func TestWorld_AutopilotPlaysByItself(t *testing.T) {
	w := NewWorld(3, DefaultParams(), nil)
	w.Start(true)
	defer w.Destroy()

	timeMs := 0.0
	for range 5000 {
		stepFrames(w, &timeMs, 1)
		assert.GreaterOrEqual(t, w.RobotPrecision, -MaxRobotPrecision)
		assert.LessOrEqual(t, w.RobotPrecision, MaxRobotPrecision)
	}

	assert.Greater(t, len(w.Stack), 5)
	for i := 1; i < len(w.Stack); i++ {
		assert.NotEqual(t, w.Stack[i-1].Axis, w.Stack[i].Axis)
	}
	assert.Equal(t, int64(1), w.Session)
}

func TestWorld_OverhangsFall(t *testing.T) {
	w := newTestWorld(t)
	placeTop(w, 0.5)
	w.Drop()
	require.Len(t, w.Overhangs, 1)
	o := w.Overhangs[0]

	timeMs := 0.0
	stepFrames(w, &timeMs, 31)

	// Has the overhang fallen, and does the mesh follow the body?
	assert.Less(t, o.Pos().Y(), BoxHeight-0.5)
	assert.Equal(t, o.Body.Position, o.Mesh.Position)
	assert.Equal(t, o.Body.Orientation, o.Mesh.Orientation)

	// Did the stack stay exactly where it was?
	assert.Equal(t, 0.0, w.Stack[0].Pos().Y())
	assert.Equal(t, BoxHeight, w.Stack[1].Pos().Y())
	assert.InDelta(t, 0.25, w.Stack[1].Pos().X(), 1e-9)
}

func TestWorld_RetireOverhangsBelowFloor(t *testing.T) {
	w := newTestWorld(t)
	placeTop(w, 0.5)
	w.Drop()
	require.Len(t, w.Overhangs, 1)
	o := w.Overhangs[0]

	o.Body.Position[1] = w.Params.OverhangFloor - 1
	w.stepPhysics(0)

	assert.Empty(t, w.Overhangs)
	assert.NotContains(t, w.Scene.Meshes, o.Mesh)
	assert.NotContains(t, w.Physics.Bodies, o.Body)
	assert.Len(t, w.Scene.Meshes, len(w.Stack))
	assert.Len(t, w.Physics.Bodies, len(w.Stack))
}

func TestWorld_RetireOverhangsAfterTTL(t *testing.T) {
	params := DefaultParams()
	params.OverhangTTLMs = 100
	w := NewWorld(0, params, nil)
	w.Start(false)
	defer w.Destroy()

	placeTop(w, 0.5)
	w.Drop()
	require.Len(t, w.Overhangs, 1)

	timeMs := 0.0
	stepFrames(w, &timeMs, 3)
	assert.Len(t, w.Overhangs, 1)

	stepFrames(w, &timeMs, 10)
	assert.Empty(t, w.Overhangs)
	assert.Len(t, w.Physics.Bodies, len(w.Stack))
}

func TestWorld_FixedTimestepAccumulates(t *testing.T) {
	w := newTestWorld(t)
	w.Step(PlayerInput{TimeMs: 0})

	w.Step(PlayerInput{TimeMs: PhysicsStepMs / 2})
	assert.Equal(t, 0.0, w.SimTimeMs)

	w.Step(PlayerInput{TimeMs: PhysicsStepMs})
	assert.InDelta(t, PhysicsStepMs, w.SimTimeMs, 1e-9)

	// Is a huge gap capped instead of simulated in full?
	w.Step(PlayerInput{TimeMs: 100000})
	assert.InDelta(t, PhysicsStepMs*(1+MaxSubSteps), w.SimTimeMs, 1e-6)
	assert.Equal(t, 0.0, w.accumulatorMs)
}

func TestWorld_VariableTimestep(t *testing.T) {
	params := DefaultParams()
	params.VariableTimestep = true
	w := NewWorld(0, params, nil)
	w.Start(false)
	defer w.Destroy()

	w.Step(PlayerInput{TimeMs: 0})
	w.Step(PlayerInput{TimeMs: 3})
	assert.Equal(t, 3.0, w.SimTimeMs)
}

func TestWorld_SameSeedSameGame(t *testing.T) {
	play := func(seed int64) []byte {
		w := NewWorld(seed, DefaultParams(), nil)
		w.Start(true)
		defer w.Destroy()
		timeMs := 0.0
		stepFrames(w, &timeMs, 2000)
		return w.StateBytes()
	}

	assert.Equal(t, play(11), play(11))
	assert.NotEqual(t, play(11), play(12))
}

func TestWorld_GetLayer(t *testing.T) {
	w := newTestWorld(t)
	placeTop(w, 0.5)
	o := w.Drop()

	assert.Equal(t, w.Stack[1], w.GetLayer(w.Stack[1].Id))
	assert.Equal(t, o.Overhang, w.GetLayer(o.Overhang.Id))
	assert.Nil(t, w.GetLayer(-1))
}
