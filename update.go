package main

import (
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/marisvali/tower/world"
	"go.uber.org/zap"
)

func (g *Gui) Update() error {
	g.pressedKeys = g.pressedKeys[:0]
	g.pressedKeys = inpututil.AppendPressedKeys(g.pressedKeys)
	g.justPressedKeys = g.justPressedKeys[:0]
	g.justPressedKeys = inpututil.AppendJustPressedKeys(g.justPressedKeys)
	g.justTouched = g.justTouched[:0]
	g.justTouched = inpututil.AppendJustPressedTouchIDs(g.justTouched)
	g.touches = g.touches[:0]
	g.touches = ebiten.AppendTouchIDs(g.touches)

	if g.folderWatcher.FolderContentsChanged() {
		g.LoadGuiData()
		g.sounds.SetVolume(g.Volume)
		g.log.Info("config reloaded")
	}

	switch g.state {
	case HomeScreen, PlayScreen:
		g.UpdateGameOngoing()
	case Playback:
		g.UpdatePlayback()
	default:
		panic("unhandled default case")
	}

	return nil
}

// PlayerInput reads the input of the current frame.
func (g *Gui) PlayerInput() (input world.PlayerInput) {
	input.TimeMs = float64(time.Since(g.startTime).Microseconds()) / 1000
	input.Action = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(g.justTouched) > 0 ||
		g.JustPressed(ebiten.KeySpace)
	input.Restart = g.JustPressed(ebiten.KeyR)
	input.ToggleAutopilot = g.JustPressed(ebiten.KeyA)
	return
}

func (g *Gui) UpdateGameOngoing() {
	input := g.PlayerInput()

	// Save the input in the playthrough.
	g.playthrough.History = append(g.playthrough.History, input)
	if g.RecordToFile && canWriteFiles() {
		// IMPORTANT: save the playthrough before stepping the World. If
		// a bug in the World causes it to crash, we want to save the input
		// that caused the bug before the program crashes.
		WriteFile(g.RecordingFile, g.playthrough.Serialize())
	}

	session := g.world.Session
	g.world.Step(input)
	if g.world.Session != session {
		g.log.Info("new session",
			zap.Int64("session", g.world.Session),
			zap.Bool("autopilot", g.world.Autopilot))
		// The first real game replaces the demo of the home screen.
		if g.state == HomeScreen {
			g.state = PlayScreen
		}
	}
	g.stepEffects(true)
	g.frameIdx++
}

// stepEffects advances everything that follows the World without being part
// of it.
func (g *Gui) stepEffects(withSound bool) {
	g.visWorld.Step(g.world)
	if withSound {
		for _, e := range g.world.JustPerfect {
			g.sounds.PlayChime(e.Combo)
		}
	}
}

func (g *Gui) Pressed(key ebiten.Key) bool {
	return slices.Contains(g.pressedKeys, key)
}

func (g *Gui) JustPressed(key ebiten.Key) bool {
	return slices.Contains(g.justPressedKeys, key)
}

func (g *Gui) JustClicked(button Rectangle) bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) &&
		len(g.justTouched) == 0 {
		return false
	}
	return button.ContainsPt(CursorPos(g.justTouched))
}

func (g *Gui) LeftClickPressedOn(button Rectangle) (Pt, bool) {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && len(g.touches) == 0 {
		return Pt{}, false
	}
	pos := CursorPos(g.touches)
	return pos, button.ContainsPt(pos)
}

func (g *Gui) UpdatePlayback() {
	nFrames := int64(len(g.playthrough.History))
	if nFrames == 0 {
		return
	}

	userRequestedPlaybackPause := g.JustPressed(ebiten.KeySpace) ||
		g.JustClicked(g.buttonPlaybackPlay)
	if userRequestedPlaybackPause {
		g.playbackPaused = !g.playbackPaused
	}

	// Choose target frame.
	targetFrameIdx := g.frameIdx

	// Compute the target frame index based on where on the play bar the user
	// clicked.
	if pos, ok := g.LeftClickPressedOn(g.buttonPlaybackBar); ok {
		targetFrameIdx = int64(g.buttonPlaybackBar.FractionX(pos) * float64(nFrames))
	}

	if g.Pressed(ebiten.KeyLeft) && g.Pressed(ebiten.KeyShift) {
		targetFrameIdx -= g.FrameSkipShiftArrow
	}

	if g.Pressed(ebiten.KeyRight) && g.Pressed(ebiten.KeyShift) {
		targetFrameIdx += g.FrameSkipShiftArrow
	}

	if g.Pressed(ebiten.KeyLeft) && !g.Pressed(ebiten.KeyShift) {
		if g.playbackPaused {
			targetFrameIdx -= g.FrameSkipArrow
		} else {
			targetFrameIdx -= g.FrameSkipArrow * 2
		}
	}

	if g.Pressed(ebiten.KeyRight) && !g.Pressed(ebiten.KeyShift) {
		targetFrameIdx += g.FrameSkipArrow
	}

	targetFrameIdx = min(max(targetFrameIdx, 0), nFrames-1)

	if targetFrameIdx != g.frameIdx {
		g.seek(targetFrameIdx)
	}

	if !g.playbackPaused && g.frameIdx < nFrames {
		g.world.Step(g.playthrough.History[g.frameIdx])
		g.stepEffects(true)
		g.frameIdx++
		if g.frameIdx == nFrames {
			// Stay on the last frame.
			g.playbackPaused = true
			g.frameIdx = nFrames - 1
			g.seek(g.frameIdx)
		}
	}
}

// seek replays the playthrough from the start up to, but not including,
// frameIdx. There is no faster way to go back in time than redoing all the
// frames from the beginning.
func (g *Gui) seek(frameIdx int64) {
	g.world.Destroy()
	g.world = world.NewWorldFromPlaythrough(g.playthrough)
	g.world.Log = g.log
	g.visWorld = NewVisWorld(g.playthrough.Seed)
	for i := range frameIdx {
		g.world.Step(g.playthrough.History[i])
		g.stepEffects(false)
	}
	g.frameIdx = frameIdx
}
