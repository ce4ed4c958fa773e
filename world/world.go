package world

import (
	"math"

	"github.com/marisvali/tower/physics"
	"go.uber.org/zap"
)

// World rules
// - The tower starts with a base layer at the origin and a first layer that
// moves along x, starting off-stage.
// - The top layer moves along its axis, a little faster for every layer in the
// tower.
// - When the player drops it, the part that overlaps the layer below stays and
// the rest falls off. A new layer starts moving on the other axis, with the
// footprint of what stayed.
// - A drop within SnapTolerance of the layer below is perfect: nothing is cut
// and the combo grows. Any other drop resets the combo.
// - If the top layer doesn't overlap the layer below at all, or if it travels
// past the edge of the stage, it falls and the game ends.
// - The autopilot plays by itself, stopping the layer close to the perfect
// position but not exactly on it.

// SimulationVersion identifies the rules of the World. If the same inputs can
// produce a different World after a change, SimulationVersion must change.
const SimulationVersion = 1

const BaseSpeed = 0.006       // world units per millisecond
const SpeedIncrement = 0.0001 // extra speed for every layer in the stack

// StageBound is how far a layer can travel from the center before it has
// fallen off the platform.
const StageBound = 10.0

// OffStage is where a new layer starts on the axis it travels along.
const OffStage = -10.0

type State int64

const (
	Idle State = iota
	Playing
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Playing:
		return "Playing"
	case Ended:
		return "Ended"
	default:
		return "Unknown"
	}
}

// PlayerInput is everything the World receives from the outside in one
// frame.
type PlayerInput struct {
	// TimeMs is a monotonically increasing timestamp. The first input only
	// establishes the baseline.
	TimeMs float64
	// Action is the click/tap/space: drop the layer, or restart if the
	// autopilot is playing or the game has ended.
	Action          bool
	Restart         bool
	ToggleAutopilot bool
}

func (p PlayerInput) EventOccurred() bool {
	return p.Action || p.Restart || p.ToggleAutopilot
}

// Params are the tunable parts of the World that don't change the rules of
// the game.
type Params struct {
	// OverhangFloor is the height below which falling blocks are discarded.
	OverhangFloor float64
	// OverhangTTLMs discards falling blocks older than this. 0 disables it.
	OverhangTTLMs float64
	// VariableTimestep steps physics by exactly the elapsed time of each
	// frame instead of using fixed steps.
	VariableTimestep bool
}

func DefaultParams() Params {
	return Params{OverhangFloor: -20}
}

type World struct {
	State          State
	Stack          []*Layer
	Overhangs      []*Layer
	Combo          int64
	Score          int64
	Autopilot      bool
	RobotPrecision float64
	ShowResults    bool
	// Session changes every time a new game starts. Anything that lives
	// across frames and refers to the World (visual effects) remembers the
	// session it belongs to and dies when the session changes.
	Session     int64
	JustPerfect []PerfectEvent
	Physics     *physics.World
	Scene       Scene
	Rand        Rand
	Params      Params
	Log         *zap.Logger
	NextLayerId int64
	SimTimeMs   float64

	lastTimeMs    float64
	started       bool
	accumulatorMs float64
}

// NewWorld creates a World in the Idle state. Nothing happens until Start.
func NewWorld(seed int64, params Params, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		State:       Idle,
		Physics:     physics.NewWorld(),
		Rand:        NewRand(seed),
		Params:      params,
		Log:         log,
		NextLayerId: 1,
	}
}

// Start begins a new session, with or without the autopilot.
func (w *World) Start(autopilot bool) {
	Assert(w.State == Idle)
	w.Session++
	w.Autopilot = autopilot
	w.ShowResults = false
	w.setRobotPrecision()

	w.addLayer(0, 0, OriginalBoxSize, OriginalBoxSize, Z)
	w.addLayer(OffStage, 0, OriginalBoxSize, OriginalBoxSize, X)
	w.State = Playing
	w.Log.Debug("session started",
		zap.Int64("session", w.Session),
		zap.Bool("autopilot", autopilot))
}

// Reset releases every body and mesh of the current session and goes back to
// Idle.
func (w *World) Reset() {
	for _, l := range w.Stack {
		w.releaseLayer(l)
	}
	for _, l := range w.Overhangs {
		w.releaseLayer(l)
	}
	Assert(len(w.Scene.Meshes) == 0)
	Assert(len(w.Physics.Bodies) == 0)

	w.Stack = nil
	w.Overhangs = nil
	w.Combo = 0
	w.Score = 0
	w.ShowResults = false
	w.JustPerfect = w.JustPerfect[:0]
	w.started = false
	w.accumulatorMs = 0
	w.State = Idle
}

// Restart throws away the current session and starts a new one.
func (w *World) Restart(autopilot bool) {
	w.Reset()
	w.Start(autopilot)
}

// Destroy releases everything. The World must not be used afterwards.
func (w *World) Destroy() {
	w.Reset()
	w.Session++
	w.Physics.Clear()
	w.Scene.Clear()
}

// Step advances the World by one frame.
// The order of things in a frame: restart (if requested), movement, drop (if
// requested), physics.
func (w *World) Step(input PlayerInput) {
	w.JustPerfect = w.JustPerfect[:0]

	action := input.Action
	if input.Restart || (action && (w.State != Playing || w.Autopilot)) {
		w.Restart(false)
		action = false
	}

	if !w.started {
		w.started = true
		w.lastTimeMs = input.TimeMs
		return
	}

	elapsedMs := max(input.TimeMs-w.lastTimeMs, 0)
	w.lastTimeMs = input.TimeMs

	if input.ToggleAutopilot && w.State == Playing {
		w.Autopilot = !w.Autopilot
		w.setRobotPrecision()
	}

	if w.State == Playing && len(w.Stack) >= 2 {
		w.moveTopLayer(elapsedMs)
	}

	if action && w.State == Playing && !w.Autopilot {
		w.Drop()
	}

	w.stepPhysics(elapsedMs)
}

func (w *World) moveTopLayer(elapsedMs float64) {
	top := w.Stack[len(w.Stack)-1]
	prev := w.Stack[len(w.Stack)-2]

	if w.boxShouldMove(top, prev) {
		speed := BaseSpeed + float64(len(w.Stack))*SpeedIncrement
		top.Shift(top.Axis, speed*elapsedMs)
		if math.Abs(top.Pos()[top.Axis]) > StageBound {
			w.Combo = 0
			w.missedTheSpot()
		}
	} else if w.Autopilot {
		w.Drop()
		w.setRobotPrecision()
	}
}

// TopLayer returns the layer currently moving, or nil.
func (w *World) TopLayer() *Layer {
	if len(w.Stack) == 0 {
		return nil
	}
	return w.Stack[len(w.Stack)-1]
}

// GetLayer finds a layer of the stack or a falling block by id.
func (w *World) GetLayer(id int64) *Layer {
	for _, l := range w.Stack {
		if l.Id == id {
			return l
		}
	}
	for _, l := range w.Overhangs {
		if l.Id == id {
			return l
		}
	}
	return nil
}
