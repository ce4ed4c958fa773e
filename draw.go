package main

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
)

// Lighting of the box faces: a white ambient light and a white directional
// light shining from LightDir.
const AmbientLight = 0.6
const DirectionalLight = 0.6

var LightDir = mgl64.Vec3{10, 20, 0}.Normalize()

var backgroundColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
var textColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Renderer keeps the resources reused from one frame to the next.
type Renderer struct {
	whiteSubImage *ebiten.Image
	vertices      []ebiten.Vertex
	indices       []uint16
	boxes         []box
}

// box is a mesh ready to be drawn: its transform, the color of its faces and
// how far it is from the camera.
type box struct {
	pos   mgl64.Vec3
	axes  [3]mgl64.Vec3
	half  mgl64.Vec3
	color colorful.Color
	depth float64
}

func (r *Renderer) white() *ebiten.Image {
	if r.whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.whiteSubImage
}

func (g *Gui) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	cam := NewCamera(g.visWorld.CameraY, g.screenWidth, g.screenHeight)

	g.DrawScene(screen, &cam)
	g.DrawFloatingTexts(screen, &cam)

	switch g.state {
	case HomeScreen:
		g.DrawHomeScreen(screen)
	case PlayScreen:
		g.DrawPlayScreen(screen)
	case Playback:
		g.DrawPlayScreen(screen)
		g.DrawPlaybackControls(SubImage(screen, g.debugArea().ToImageRectangle()))
	default:
		panic("unhandled default case")
	}
}

// LayerColor is the color of a layer with the given hue, in degrees.
func LayerColor(hue float64) colorful.Color {
	return colorful.Hsl(hue, 1, 0.5)
}

// PulseColor is the flashing color of a layer during a pulse.
func PulseColor(hue float64) colorful.Color {
	return colorful.Hsl(hue, 1, 0.55)
}

// Shade lights a face with the given normal.
func Shade(c colorful.Color, normal mgl64.Vec3) colorful.Color {
	light := AmbientLight + DirectionalLight*max(normal.Dot(LightDir), 0)
	return colorful.Color{R: c.R * light, G: c.G * light, B: c.B * light}.Clamped()
}

func (g *Gui) DrawScene(screen *ebiten.Image, cam *Camera) {
	r := &g.renderer
	r.boxes = r.boxes[:0]
	for _, m := range g.world.Scene.Meshes {
		b := box{
			pos:   m.Position,
			half:  m.Extents().Mul(0.5),
			color: LayerColor(m.Hue),
		}
		if p := g.visWorld.PulseOf(m.Id); p != nil {
			s := p.Scale()
			b.half[0] *= s
			b.half[2] *= s
			b.color = PulseColor(p.Hue)
		}
		b.axes = [3]mgl64.Vec3{
			m.Orientation.Rotate(mgl64.Vec3{1, 0, 0}),
			m.Orientation.Rotate(mgl64.Vec3{0, 1, 0}),
			m.Orientation.Rotate(mgl64.Vec3{0, 0, 1}),
		}
		_, _, b.depth = cam.Project(b.pos)
		r.boxes = append(r.boxes, b)
	}

	// Painter's algorithm: draw the boxes furthest from the camera first.
	slices.SortStableFunc(r.boxes, func(a, b box) int {
		return cmp.Compare(b.depth, a.depth)
	})
	for i := range r.boxes {
		r.drawBox(screen, cam, &r.boxes[i])
	}
}

// drawBox draws the faces of a box that are turned towards the camera. A box
// is convex so these faces never overlap each other.
func (r *Renderer) drawBox(screen *ebiten.Image, cam *Camera, b *box) {
	for i := range 3 {
		j := (i + 1) % 3
		k := (i + 2) % 3
		for _, sign := range []float64{1, -1} {
			normal := b.axes[i].Mul(sign)
			if !cam.Facing(normal) {
				continue
			}
			center := b.pos.Add(normal.Mul(b.half[i]))
			u := b.axes[j].Mul(b.half[j])
			v := b.axes[k].Mul(b.half[k])
			corners := [4]mgl64.Vec3{
				center.Add(u).Add(v),
				center.Sub(u).Add(v),
				center.Sub(u).Sub(v),
				center.Add(u).Sub(v),
			}
			r.fillPolygon(screen, cam, corners[:], Shade(b.color, normal))
		}
	}
}

func (r *Renderer) fillPolygon(screen *ebiten.Image, cam *Camera,
	corners []mgl64.Vec3, c colorful.Color) {
	var path vector.Path
	for i, p := range corners {
		x, y, _ := cam.Project(p)
		if i == 0 {
			path.MoveTo(float32(x), float32(y))
		} else {
			path.LineTo(float32(x), float32(y))
		}
	}
	path.Close()

	r.vertices, r.indices = path.AppendVerticesAndIndicesForFilling(
		r.vertices[:0], r.indices[:0])
	for i := range r.vertices {
		r.vertices[i].SrcX = 1
		r.vertices[i].SrcY = 1
		r.vertices[i].ColorR = float32(c.R)
		r.vertices[i].ColorG = float32(c.G)
		r.vertices[i].ColorB = float32(c.B)
		r.vertices[i].ColorA = 1
	}
	screen.DrawTriangles(r.vertices, r.indices, r.white(),
		&ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (g *Gui) DrawFloatingTexts(screen *ebiten.Image, cam *Camera) {
	for _, t := range g.visWorld.Texts {
		face := g.faces.Perfect
		if t.Size == TextCombo {
			face = g.faces.Combo
		}
		x, y, _ := cam.Project(t.Pos)
		clr := t.Color
		clr.A = uint8(255 * min(max(t.Opacity, 0), 1))
		text.Draw(screen, t.Text, face, int(x), int(y), clr)
	}
}

func (g *Gui) DrawHomeScreen(screen *ebiten.Image) {
	area := SubImage(screen, image.Rect(0, int(g.screenHeight/6),
		int(g.screenWidth), int(g.screenHeight/6)+200))
	g.DrawText(area, "TOWER", g.faces.Title, true, false, textColor)

	area = SubImage(screen, image.Rect(0, int(g.screenHeight-300),
		int(g.screenWidth), int(g.screenHeight-200)))
	g.DrawText(area, "Click, tap or press Space", g.faces.Subtitle, true, false,
		textColor)
}

func (g *Gui) DrawPlayScreen(screen *ebiten.Image) {
	top := SubImage(screen, image.Rect(0, 40, int(g.screenWidth), 160))
	g.DrawText(top, fmt.Sprintf("%d", g.world.Score), g.faces.Score, true, false,
		textColor)

	if g.world.Autopilot {
		area := SubImage(screen, image.Rect(0, 170, int(g.screenWidth), 230))
		g.DrawText(area, "autopilot", g.faces.Subtitle, true, false, textColor)
	}

	if g.world.ShowResults {
		g.DrawResults(screen)
	}
}

func (g *Gui) DrawResults(screen *ebiten.Image) {
	midY := int(g.screenHeight / 2)
	panel := SubImage(screen, image.Rect(100, midY-200, int(g.screenWidth)-100,
		midY+200))
	pb := panel.Bounds()
	vector.DrawFilledRect(panel, float32(pb.Min.X), float32(pb.Min.Y),
		float32(pb.Dx()), float32(pb.Dy()), color.NRGBA{R: 0, G: 0, B: 0, A: 180},
		false)

	area := SubImage(panel, image.Rect(0, 40, panel.Bounds().Dx(), 160))
	g.DrawText(area, "You missed!", g.faces.Perfect, true, false, textColor)
	area = SubImage(panel, image.Rect(0, 180, panel.Bounds().Dx(), 260))
	g.DrawText(area, fmt.Sprintf("Score: %d", g.world.Score), g.faces.Subtitle,
		true, false, textColor)
	area = SubImage(panel, image.Rect(0, 280, panel.Bounds().Dx(), 360))
	g.DrawText(area, "Click or press R to restart", g.faces.Subtitle, true,
		false, textColor)
}

func (g *Gui) DrawPlaybackControls(screen *ebiten.Image) {
	// Background of playback bar.
	screen.Fill(color.NRGBA{R: 200, G: 200, B: 200, A: 255})

	// Play/pause button.
	playbarHeight := int64(screen.Bounds().Dy())
	playButton := SubImage(screen,
		NewRectangleI(0, 0, playbarHeight, playbarHeight).ToImageRectangle())
	g.DrawPlayPauseButton(playButton)
	// Remember the region so that Update() can react when it's clicked.
	g.buttonPlaybackPlay = FromImageRectangle(playButton.Bounds())

	// Play bar.
	barXMargin := int64(10)
	barX := playbarHeight + barXMargin
	barWidth := int64(screen.Bounds().Dx()) - barX - barXMargin
	bar := SubImage(screen,
		NewRectangleI(barX, playbarHeight/2-5, barWidth, 10).ToImageRectangle())
	bar.Fill(color.NRGBA{R: 90, G: 90, B: 90, A: 255})
	// Remember the region so that Update() can react when it's clicked. The
	// whole height of the strip is clickable, not just the thin bar.
	g.buttonPlaybackBar = FromImageRectangle(SubImage(screen,
		NewRectangleI(barX, 0, barWidth, playbarHeight).ToImageRectangle()).Bounds())

	// Playback bar cursor.
	nFrames := max(int64(len(g.playthrough.History)), 1)
	factor := float64(g.frameIdx) / float64(nFrames)
	origin := screen.Bounds().Min
	cursorX := float32(origin.X) + float32(barX) + float32(factor)*float32(barWidth)
	vector.DrawFilledCircle(screen, cursorX, float32(origin.Y)+float32(playbarHeight)/2,
		float32(playbarHeight)/4, color.NRGBA{R: 251, G: 150, B: 32, A: 255},
		true)
}

func (g *Gui) DrawPlayPauseButton(screen *ebiten.Image) {
	size := float32(screen.Bounds().Dx())
	ox := float32(screen.Bounds().Min.X)
	oy := float32(screen.Bounds().Min.Y)
	clr := color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	if g.playbackPaused {
		// Play triangle.
		var path vector.Path
		path.MoveTo(ox+size*0.3, oy+size*0.2)
		path.LineTo(ox+size*0.8, oy+size*0.5)
		path.LineTo(ox+size*0.3, oy+size*0.8)
		path.Close()
		vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
		r, gr, b, a := clr.RGBA()
		for i := range vs {
			vs[i].SrcX = 1
			vs[i].SrcY = 1
			vs[i].ColorR = float32(r) / 0xffff
			vs[i].ColorG = float32(gr) / 0xffff
			vs[i].ColorB = float32(b) / 0xffff
			vs[i].ColorA = float32(a) / 0xffff
		}
		screen.DrawTriangles(vs, is, g.renderer.white(),
			&ebiten.DrawTrianglesOptions{AntiAlias: true})
	} else {
		// Pause bars.
		vector.DrawFilledRect(screen, ox+size*0.25, oy+size*0.2, size*0.18,
			size*0.6, clr, false)
		vector.DrawFilledRect(screen, ox+size*0.57, oy+size*0.2, size*0.18,
			size*0.6, clr, false)
	}
}

func (g *Gui) DrawText(screen *ebiten.Image, message string, face font.Face,
	centerX bool, centerY bool, color color.Color) {
	// Remember that text there is an origin point for the text.
	// That origin point is kind of the lower-left corner of the bounds of the
	// text. This means that if you do text.Draw at (x, y), most of the text
	// will appear above y, and a little bit under y. If you want all the pixels
	// in your text to be above y, you should do text.Draw at
	// (x, y - text.BoundString().Max.Y).
	textSize := text.BoundString(face, message)
	var offsetX int
	if centerX {
		offsetX = (screen.Bounds().Dx() - textSize.Dx()) / 2
	}

	var offsetY int
	if centerY {
		offsetY = (screen.Bounds().Dy() - textSize.Dy()) / 2
	}

	textX := screen.Bounds().Min.X + offsetX - textSize.Min.X
	textY := screen.Bounds().Max.Y - offsetY - textSize.Max.Y
	text.Draw(screen, message, face, textX, textY, color)
}
