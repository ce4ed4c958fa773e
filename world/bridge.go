package world

// PhysicsStepMs is the fixed timestep of the physics simulation. Frames
// provide whatever elapsed time they have and the accumulator slices it into
// steps of this size, so a recorded playthrough always simulates the same
// way.
const PhysicsStepMs = 1000.0 / 120.0

// MaxSubSteps caps how much simulation a single frame can ask for, so a long
// pause (window dragged, debugger) doesn't freeze the game while it catches
// up.
const MaxSubSteps = 12

// stepPhysics advances the physics world by elapsedMs and copies the
// resulting transforms of falling blocks onto their meshes. Layers in the
// stack are immovable and never read back from physics.
func (w *World) stepPhysics(elapsedMs float64) {
	if w.Params.VariableTimestep {
		w.Physics.Step(elapsedMs / 1000)
		w.SimTimeMs += elapsedMs
	} else {
		w.accumulatorMs += elapsedMs
		for range MaxSubSteps {
			if w.accumulatorMs < PhysicsStepMs {
				break
			}
			w.Physics.Step(PhysicsStepMs / 1000)
			w.accumulatorMs -= PhysicsStepMs
			w.SimTimeMs += PhysicsStepMs
		}
		// Drop whatever could not be simulated within the cap.
		if w.accumulatorMs >= PhysicsStepMs {
			w.accumulatorMs = 0
		}
	}

	for _, o := range w.Overhangs {
		o.Mesh.Position = o.Body.Position
		o.Mesh.Orientation = o.Body.Orientation
	}
	w.retireOverhangs()
}

// retireOverhangs releases falling blocks that dropped out of view or lived
// longer than the configured time to live.
func (w *World) retireOverhangs() {
	n := 0
	for _, o := range w.Overhangs {
		tooLow := o.Body.Position.Y() < w.Params.OverhangFloor
		tooOld := w.Params.OverhangTTLMs > 0 &&
			w.SimTimeMs-o.BornMs > w.Params.OverhangTTLMs
		if tooLow || tooOld {
			w.releaseLayer(o)
			continue
		}
		w.Overhangs[n] = o
		n++
	}
	clear(w.Overhangs[n:])
	w.Overhangs = w.Overhangs[:n]
}
