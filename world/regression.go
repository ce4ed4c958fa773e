package world

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// StateBytes is an array of bytes that represent the current state of the
// World, as perceived by the outside. If two Worlds have the same StateBytes
// they are considered "the same", even though they may be implemented
// differently.
func (w *World) StateBytes() []byte {
	// The world is "the same" if it has:
	// - the same state, combo and score
	// - the same layers in the stack, at the same positions, with the same
	// footprints
	// - the same falling blocks at the same positions and orientations
	//
	// Meshes and bodies are not included directly. They mirror the layers and
	// whatever matters about them shows up in the positions above.
	buf := new(bytes.Buffer)
	Serialize(buf, w.State)
	Serialize(buf, w.Combo)
	Serialize(buf, w.Score)
	Serialize(buf, w.Autopilot)
	Serialize(buf, w.Session)
	Serialize(buf, int64(len(w.Stack)))
	for _, l := range w.Stack {
		Serialize(buf, l.Axis)
		Serialize(buf, l.Width)
		Serialize(buf, l.Depth)
		Serialize(buf, [3]float64(l.Pos()))
	}
	Serialize(buf, int64(len(w.Overhangs)))
	for _, o := range w.Overhangs {
		Serialize(buf, o.Width)
		Serialize(buf, o.Depth)
		Serialize(buf, [3]float64(o.Pos()))
		Serialize(buf, o.Mesh.Orientation.W)
		Serialize(buf, [3]float64(o.Mesh.Orientation.V))
	}
	return buf.Bytes()
}

// RegressionId returns a string which uniquely identifies the playthrough.
// It is a hash of all the states of the World, one after each input. If a
// change in the implementation of the World keeps the RegressionId of a
// recorded playthrough, the change did not alter how the game plays.
func RegressionId(p *Playthrough) string {
	hash := sha256.New()

	w := NewWorldFromPlaythrough(*p)
	defer w.Destroy()
	hash.Write(w.StateBytes())

	for i := range p.History {
		w.Step(p.History[i])
		hash.Write(w.StateBytes())
	}

	return hex.EncodeToString(hash.Sum(nil))
}
