package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marisvali/tower/world"
)

const (
	TextFadePerFrame = 0.04
	TextRisePerFrame = 0.02
	PulseFrames      = 18
	// MaxPulseCombo caps how much a combo inflates the pulse.
	MaxPulseCombo = 4
	CameraStartY  = 4.0
	CameraLerp    = 0.1
)

var perfectColor = color.NRGBA{R: 255, G: 255, B: 0, A: 255}
var comboColor = color.NRGBA{R: 255, G: 105, B: 180, A: 255}

type TextSize int64

const (
	TextPerfect TextSize = iota
	TextCombo
)

// FloatingText is a message that appears next to a layer, floats up and
// fades out.
type FloatingText struct {
	Session int64
	Text    string
	Size    TextSize
	Color   color.NRGBA
	Pos     mgl64.Vec3
	Opacity float64
}

// Pulse briefly inflates the footprint of a layer and flashes its color.
type Pulse struct {
	Session int64
	LayerId int64
	Combo   int64
	Frame   int64
	Hue     float64
}

// Scale is the factor applied to the width and depth of the layer.
func (p *Pulse) Scale() float64 {
	t := float64(p.Frame) / PulseFrames
	return 1 + 0.25*math.Sin(t*math.Pi)*float64(min(p.Combo, MaxPulseCombo))
}

// VisWorld is a world parallel to World that holds "visual logic". Its role is
// to store data and execute logic for ongoing visual effects like the
// celebration of a perfect placement and the camera following the tower.
// Draw() relies on the information in VisWorld to draw things, just like it
// relies on World.
//
// VisWorld runs parallel to World and is meant to be updated alongside World,
// in the Update() function. Every effect belongs to the session of the World
// it was created in and disappears as soon as the World starts a new one.
type VisWorld struct {
	Session int64
	CameraY float64
	Texts   []*FloatingText
	Pulses  []*Pulse
	// rand picks the flashing colors. It is separate from the World's so that
	// effects never change the simulation.
	rand world.Rand
}

func NewVisWorld(seed int64) (v VisWorld) {
	v.CameraY = CameraStartY
	v.rand = world.NewRand(seed)
	return v
}

func (v *VisWorld) Step(w *world.World) {
	if w.Session != v.Session {
		v.Session = w.Session
		clear(v.Texts)
		v.Texts = v.Texts[:0]
		clear(v.Pulses)
		v.Pulses = v.Pulses[:0]
		v.CameraY = CameraStartY
	}

	// Create new effects if necessary.
	for _, e := range w.JustPerfect {
		l := w.GetLayer(e.LayerId)
		if l == nil {
			continue
		}
		pos := l.Pos()
		v.Texts = append(v.Texts, &FloatingText{
			Session: w.Session,
			Text:    "PERFECT!",
			Size:    TextPerfect,
			Color:   perfectColor,
			Pos:     pos.Add(mgl64.Vec3{-1.5, 1.5, 0}),
			Opacity: 1,
		})
		if e.Combo > 1 {
			v.Texts = append(v.Texts, &FloatingText{
				Session: w.Session,
				Text:    fmt.Sprintf("X%d Combo!", e.Combo),
				Size:    TextCombo,
				Color:   comboColor,
				Pos:     pos.Add(mgl64.Vec3{-1.1, 1, 0}),
				Opacity: 1,
			})
		}
		v.Pulses = append(v.Pulses, &Pulse{
			Session: w.Session,
			LayerId: e.LayerId,
			Combo:   e.Combo,
		})
	}

	// Step existing effects.
	for _, t := range v.Texts {
		t.Opacity -= TextFadePerFrame
		t.Pos[1] += TextRisePerFrame
	}
	for _, p := range v.Pulses {
		p.Frame++
		p.Hue = v.rand.RFloat(30, 330)
	}

	// Filter out obsolete effects.
	n := 0
	for _, t := range v.Texts {
		if t.Opacity > 0 && t.Session == w.Session {
			v.Texts[n] = t
			n++
		}
	}
	clear(v.Texts[n:])
	v.Texts = v.Texts[:n]

	n = 0
	for _, p := range v.Pulses {
		if p.Frame < PulseFrames && p.Session == w.Session && w.GetLayer(p.LayerId) != nil {
			v.Pulses[n] = p
			n++
		}
	}
	clear(v.Pulses[n:])
	v.Pulses = v.Pulses[:n]

	// The camera stays put once the game ends.
	if w.State == world.Playing {
		target := world.BoxHeight*float64(len(w.Stack)-2) + CameraStartY
		v.CameraY += (target - v.CameraY) * CameraLerp
	}
}

// PulseOf returns the pulse currently running on a layer, if any.
func (v *VisWorld) PulseOf(layerId int64) *Pulse {
	for _, p := range v.Pulses {
		if p.LayerId == layerId {
			return p
		}
	}
	return nil
}
