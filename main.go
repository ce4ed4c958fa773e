package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/marisvali/tower/world"
	"go.uber.org/zap"
)

// ReleaseVersion is the version of an executable built and given to someone
// to play, either as a native executable or a .wasm on the browser. It is
// meant as a unique label for the functionality that a user/player is
// presented with.
// ReleaseVersion must change when world.SimulationVersion or
// world.InputVersion change. It also changes for things that don't affect the
// simulation: graphics, sounds, asserts enabled or disabled.
const ReleaseVersion = 1

type GameState int64

const (
	// HomeScreen shows the title over a tower built by the autopilot. The
	// first user action starts a real game.
	HomeScreen GameState = iota
	PlayScreen
	Playback
)

type Gui struct {
	Config
	world           *world.World
	visWorld        VisWorld
	sounds          Sounds
	faces           Faces
	FSys            FS
	log             *zap.Logger
	folderWatcher   FolderWatcher
	playthrough     world.Playthrough
	frameIdx        int64
	state           GameState
	startTime       time.Time
	playbackPaused  bool
	pressedKeys     []ebiten.Key
	justPressedKeys []ebiten.Key // keys pressed in this frame
	justTouched     []ebiten.TouchID
	touches         []ebiten.TouchID
	screenWidth     int64
	screenHeight    int64
	// Regions of the playback controls, remembered by Draw so that Update can
	// react to clicks on them.
	buttonPlaybackPlay Rectangle
	buttonPlaybackBar  Rectangle
	FrameSkipShiftArrow int64
	FrameSkipArrow      int64
	devModeEnabled      bool
	renderer            Renderer
}

type Config struct {
	// StartState is one of Home, Play or Playback.
	StartState    string `yaml:"StartState"`
	PlaybackFile  string `yaml:"PlaybackFile"`
	RecordToFile  bool   `yaml:"RecordToFile"`
	RecordingFile string `yaml:"RecordingFile"`
	// Seed of the World. 0 means a different seed every run.
	Seed          int64 `yaml:"Seed"`
	HomeAutopilot bool  `yaml:"HomeAutopilot"`
	// OverhangFloor is the height under which falling blocks are discarded.
	OverhangFloor float64 `yaml:"OverhangFloor"`
	// OverhangTTL is the time in seconds after which falling blocks are
	// discarded. 0 keeps them until they fall under OverhangFloor.
	OverhangTTL   float64 `yaml:"OverhangTTL"`
	FixedTimestep bool    `yaml:"FixedTimestep"`
	Volume        float64 `yaml:"Volume"`
	LogLevel      string  `yaml:"LogLevel"`
}

// Params translates the configuration into the tunable parts of the World.
func (c *Config) Params() world.Params {
	p := world.DefaultParams()
	if c.OverhangFloor != 0 {
		p.OverhangFloor = c.OverhangFloor
	}
	p.OverhangTTLMs = c.OverhangTTL * 1000
	p.VariableTimestep = !c.FixedTimestep
	return p
}

func main() {
	ebiten.SetWindowSize(600, 900)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Tower")

	var g Gui
	g.FrameSkipShiftArrow = 10
	g.FrameSkipArrow = 1

	var onDisk bool
	g.FSys, onDisk = DataFS()
	if onDisk {
		g.folderWatcher.Folder = "data"
		// Let the watcher record the current timestamps so that the first
		// check doesn't report a change.
		g.folderWatcher.FolderContentsChanged()
	}

	filePassedForPlayback := false
	if len(os.Args) == 2 {
		if os.Args[1] == "developer-mode-enabled" {
			g.devModeEnabled = true
		} else {
			filePassedForPlayback = true
		}
	}

	g.LoadGuiData()
	g.log = NewLogger(g.devModeEnabled, g.LogLevel)
	defer func() { _ = g.log.Sync() }()
	g.sounds = NewSounds(g.Volume, g.log)

	if filePassedForPlayback {
		g.StartState = "Playback"
		g.PlaybackFile = os.Args[1]
	}

	switch g.StartState {
	case "Playback":
		g.state = Playback
		p, err := world.DeserializePlaythrough(ReadFile(g.PlaybackFile))
		Check(err)
		g.playthrough = p
	case "Home", "Play":
		g.state = HomeScreen
		startAutopilot := g.HomeAutopilot
		if g.StartState == "Play" {
			g.state = PlayScreen
			startAutopilot = false
		}
		seed := g.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.playthrough = world.NewPlaythrough(seed, startAutopilot, g.Params())
		g.playthrough.ReleaseVersion = ReleaseVersion
	default:
		Check(fmt.Errorf("invalid StartState: %s", g.StartState))
	}

	g.world = world.NewWorldFromPlaythrough(g.playthrough)
	g.world.Log = g.log
	g.visWorld = NewVisWorld(g.playthrough.Seed)
	g.startTime = time.Now()
	g.log.Info("game started",
		zap.String("state", g.StartState),
		zap.String("playthrough", g.playthrough.Id.String()),
		zap.Int64("seed", g.playthrough.Seed))

	err := ebiten.RunGame(&g)
	Check(err)
}
