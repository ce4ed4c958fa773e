package main

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// Faces are the fonts of the game, one per size. Sizes are in screen pixels
// of the fixed width screen (see Layout).
type Faces struct {
	Title    font.Face
	Score    font.Face
	Perfect  font.Face
	Combo    font.Face
	Subtitle font.Face
}

func (g *Gui) LoadGuiData() {
	// Read from the disk over and over until a full read is possible.
	// This repetition is meant to avoid crashes due to reading files
	// while they are still being written.
	// This repeated reading is only useful when we're not reading from the
	// embedded filesystem. When we're reading from the embedded filesystem we
	// want to crash as soon as possible. We might be in the browser, in which
	// case we want to see an error in the developer console instead of a page
	// that keeps trying to load and reports nothing.
	previousVal := CheckCrashes
	if g.folderWatcher.Folder != "" {
		CheckCrashes = false
	}
	for {
		CheckFailed = nil
		if g.devModeEnabled {
			LoadYAML(g.FSys, "data/config-dev.yaml", &g.Config)
		} else {
			LoadYAML(g.FSys, "data/config.yaml", &g.Config)
		}
		if CheckFailed == nil {
			break
		}
	}
	CheckCrashes = previousVal

	if g.faces.Title == nil {
		g.faces = LoadFaces()
	}
}

func LoadFaces() (f Faces) {
	fontData, err := opentype.Parse(gobold.TTF)
	Check(err)

	newFace := func(size float64) font.Face {
		face, err := opentype.NewFace(fontData, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingVertical,
		})
		Check(err)
		return face
	}

	// PERFECT! is 0.6 world units tall and the combo text 0.4, at roughly
	// 85 pixels per world unit.
	f.Title = newFace(110)
	f.Score = newFace(80)
	f.Perfect = newFace(52)
	f.Combo = newFace(34)
	f.Subtitle = newFace(40)
	return
}
