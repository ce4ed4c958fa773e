package main

// Visual areas
// ------------
//
// - The screen: a bitmap with a fixed width of ScreenWidth pixels and the
// aspect ratio of the application window. The tower is drawn over all of it.
// - The camera: an orthographic view BaseWidth world units wide. Its height
// in world units follows the aspect ratio of the screen, so a tall window
// shows more of the tower and a wide one shows less.
// - The debug area: a strip at the bottom of the screen with the playback
// controls, only in Playback.

const ScreenWidth = int64(1200)

// BaseWidth is how many world units fit horizontally on the screen.
const BaseWidth = 14.0

const DebugHeight = int64(100)

func (g *Gui) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	// I receive the application window's actual width and height, via
	// outsideWidth, outsideHeight. I have to return the size I want, in pixels,
	// for the bitmap that will be drawn in the window. Ebitengine scales that
	// bitmap to fit the window, preserving its aspect ratio.
	//
	// Returning a bitmap with the same aspect ratio as the window means it
	// fills the window exactly, without black bars. Keeping the width fixed
	// means text and layout can be reasoned about in fixed pixel sizes, and
	// most of the time ebitengine shrinks the bitmap instead of enlarging it.
	screenWidth, screenHeight = ScreenSize(outsideWidth, outsideHeight)
	g.screenWidth = int64(screenWidth)
	g.screenHeight = int64(screenHeight)
	return
}

func ScreenSize(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	screenWidth = int(ScreenWidth)
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return screenWidth, screenWidth
	}
	aspectRatio := float64(outsideWidth) / float64(outsideHeight)
	// aspectRatio = screenWidth / screenHeight, which means:
	screenHeight = max(int(float64(screenWidth)/aspectRatio), 1)
	return
}

// CameraHeight is the height in world units that the camera shows for a
// screen of the given size.
func CameraHeight(screenWidth, screenHeight int64) float64 {
	return BaseWidth * float64(screenHeight) / float64(screenWidth)
}

// PixelsPerUnit is how many screen pixels one world unit covers.
func PixelsPerUnit(screenWidth int64) float64 {
	return float64(screenWidth) / BaseWidth
}

func (g *Gui) debugArea() Rectangle {
	return NewRectangleI(0, g.screenHeight-DebugHeight, g.screenWidth, DebugHeight)
}
