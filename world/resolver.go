package world

import (
	"math"

	"go.uber.org/zap"
)

// SnapTolerance is the largest misalignment that still counts as a perfect
// placement.
const SnapTolerance = 0.03

// MinOverhangSize is the smallest overhang worth simulating. Anything smaller
// would be a degenerate, nearly zero-area body.
const MinOverhangSize = 0.0001

type OutcomeKind int64

const (
	NoDrop OutcomeKind = iota
	Miss
	Cut
	Perfect
)

func (k OutcomeKind) String() string {
	switch k {
	case NoDrop:
		return "NoDrop"
	case Miss:
		return "Miss"
	case Cut:
		return "Cut"
	case Perfect:
		return "Perfect"
	default:
		return "Unknown"
	}
}

// Outcome describes what happened when the moving layer was dropped.
type Outcome struct {
	Kind         OutcomeKind
	Axis         Axis
	Size         float64
	Delta        float64
	Overlap      float64
	OverhangSize float64
	Overhang     *Layer
}

// PerfectEvent is produced every time a layer lands in perfect alignment.
type PerfectEvent struct {
	Combo   int64
	LayerId int64
}

// Drop places the moving top layer on the one beneath it. The part that
// overlaps stays, the part that doesn't becomes a falling overhang and a new
// layer starts moving on the other axis. If nothing overlaps, the game ends.
func (w *World) Drop() (o Outcome) {
	if w.State != Playing || len(w.Stack) < 2 {
		return
	}

	top := w.Stack[len(w.Stack)-1]
	prev := w.Stack[len(w.Stack)-2]
	axis := top.Axis
	size := top.Extent(axis)
	delta := top.Pos()[axis] - prev.Pos()[axis]

	o.Axis = axis
	o.Size = size
	o.Delta = delta

	overhangSize := math.Abs(delta)
	overlap := size - overhangSize
	o.Overlap = overlap
	if overlap < 0 {
		w.Combo = 0
		o.Kind = Miss
		o.OverhangSize = size
		o.Overhang = w.missedTheSpot()
		return
	}

	if overhangSize <= SnapTolerance {
		overhangSize = 0
		// The layer is aligned with the one below, so there is nothing left to
		// re-center when cutting.
		delta = 0
		top.SetCoord(axis, prev.Pos()[axis])
		w.Combo++
		w.JustPerfect = append(w.JustPerfect, PerfectEvent{
			Combo:   w.Combo,
			LayerId: top.Id,
		})
		w.Log.Debug("perfect placement",
			zap.Int64("combo", w.Combo),
			zap.Int("height", len(w.Stack)-1))
		o.Kind = Perfect
	} else {
		w.Combo = 0
		o.Kind = Cut
	}

	realOverlap := size - overhangSize
	o.Overlap = realOverlap
	o.OverhangSize = overhangSize
	w.cutLayer(top, realOverlap, size, delta)

	if overhangSize > MinOverhangSize {
		shift := (realOverlap/2 + overhangSize/2) * sign(delta)
		pos := top.Pos()
		pos[axis] += shift
		width := top.Width
		depth := top.Depth
		if axis == X {
			width = overhangSize
		} else {
			depth = overhangSize
		}
		o.Overhang = w.addOverhang(pos.X(), pos.Z(), width, depth)
	}

	next := top.Pos()
	next[axis.Other()] = OffStage
	w.Score = int64(len(w.Stack) - 1)
	w.addLayer(next.X(), next.Z(), top.Width, top.Depth, axis.Other())
	return
}

// cutLayer shrinks l along its axis to overlap and re-centers it over the
// region it shares with the layer below.
func (w *World) cutLayer(l *Layer, overlap, size, delta float64) {
	axis := l.Axis
	if axis == X {
		l.Width = overlap
	} else {
		l.Depth = overlap
	}

	l.Mesh.Scale[axis] = overlap / size
	l.Shift(axis, -delta/2)
	l.Body.SetShape(HalfExtents(l.Width, l.Depth))
}

// missedTheSpot ends the game: the whole top layer turns into a falling block.
func (w *World) missedTheSpot() *Layer {
	top := w.Stack[len(w.Stack)-1]
	pos := top.Pos()
	overhang := w.addOverhang(pos.X(), pos.Z(), top.Width, top.Depth)
	overhang.Mesh.Hue = top.Mesh.Hue

	w.releaseLayer(top)
	w.Stack = w.Stack[:len(w.Stack)-1]

	w.State = Ended
	w.ShowResults = !w.Autopilot
	w.Log.Debug("missed",
		zap.Int64("score", w.Score),
		zap.Bool("autopilot", w.Autopilot))
	return overhang
}

func sign(x float64) float64 {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	}
	return 0
}
