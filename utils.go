package main

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var CheckCrashes = true
var CheckFailed error

func Check(e error) {
	if e != nil {
		CheckFailed = e
		if CheckCrashes {
			panic(e)
		}
	}
}

func LoadYAML(fsys FS, filename string, v any) {
	data, err := fsys.ReadFile(filename)
	Check(err)
	if err != nil {
		return
	}
	Check(yaml.Unmarshal(data, v))
}

func ReadFile(name string) []byte {
	data, err := os.ReadFile(name)
	Check(err)
	return data
}

func FileExists(fsys FS, name string) bool {
	file, err := fsys.Open(name)
	if err == nil {
		Check(file.Close())
		return true
	} else {
		return false
	}
}

// NewLogger builds the logger of the game. Developers get the human readable
// console output, everyone else gets JSON.
func NewLogger(devMode bool, level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if devMode {
		cfg = zap.NewDevelopmentConfig()
	}
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		Check(err)
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	log, err := cfg.Build()
	Check(err)
	return log
}

// CursorPos returns the position of the mouse, or of the first finger
// touching the screen, in screen pixels.
func CursorPos(touchIds []ebiten.TouchID) Pt {
	if len(touchIds) > 0 {
		x, y := ebiten.TouchPosition(touchIds[0])
		return Pt{int64(x), int64(y)}
	}
	x, y := ebiten.CursorPosition()
	return Pt{int64(x), int64(y)}
}

type FolderWatcher struct {
	Folder string
	times  []time.Time
}

func (f *FolderWatcher) FolderContentsChanged() bool {
	if f.Folder == "" {
		return false
	}

	files, err := os.ReadDir(f.Folder)
	Check(err)
	if len(files) != len(f.times) {
		f.times = make([]time.Time, len(files))
	}
	changed := false
	for idx, file := range files {
		info, err := file.Info()
		Check(err)
		if f.times[idx] != info.ModTime() {
			changed = true
			f.times[idx] = info.ModTime()
		}
	}
	return changed
}
