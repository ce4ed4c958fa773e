package world

// MaxRobotPrecision bounds the timing error of the autopilot, in world units,
// on either side of the perfect position.
const MaxRobotPrecision = 0.5

// setRobotPrecision draws a new timing error for the autopilot's next drop.
func (w *World) setRobotPrecision() {
	w.RobotPrecision = w.Rand.RFloat(-MaxRobotPrecision, MaxRobotPrecision)
}

// boxShouldMove decides if the top layer keeps travelling this frame. A human
// player stops it by dropping it. The autopilot lets it travel until it
// reaches the layer below, give or take RobotPrecision.
func (w *World) boxShouldMove(top, prev *Layer) bool {
	if !w.Autopilot {
		return true
	}
	return top.Pos()[top.Axis] < prev.Pos()[top.Axis]+w.RobotPrecision
}
