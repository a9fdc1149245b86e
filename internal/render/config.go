package render

import (
	"image/color"
	"time"
)

// Global render configuration.
var (
	Foreground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	Background = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	// FrameInterval is the redraw period of the frame driver (30 FPS).
	FrameInterval = time.Second / 30

	DefaultTextSize = 14.0
)

// Stroke styles used by the rotation page.
var (
	GridStyle   = Style{Color: Foreground, Width: 1, Dash: []float64{10, 10}, DashOffset: 2}
	SquareStyle = Style{Color: Foreground, Width: 3}
)
