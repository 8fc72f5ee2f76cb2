package view

import (
	"fmt"
	"math"

	"github.com/quetzalmap/quetzalmap/internal/coord"
)

// targetSpanPixels is the on-screen width the scale bar aims for. The
// rounded block count shrinks it to the largest nice value that still fits.
const targetSpanPixels = 220

// ScaleBar is a ground-distance label for the current zoom level.
type ScaleBar struct {
	PixelWidth int
	Text       string
}

// ScaleLabel returns the scale bar for a zoom level: a nice round block
// count and the pixel width that distance covers on screen.
func ScaleLabel(zoom int) ScaleBar {
	blocksPerPixel := 1 / coord.Scale(float64(zoom))
	targetBlocks := blocksPerPixel * targetSpanPixels
	blocks := roundToNice(targetBlocks)
	return ScaleBar{
		PixelWidth: int(math.Round(blocks / blocksPerPixel)),
		Text:       formatDistance(blocks),
	}
}

// roundToNice returns the largest value of the form {1,2,5} * 10^k that does
// not exceed n.
func roundToNice(n float64) float64 {
	pow10 := math.Pow(10, math.Floor(math.Log10(n)))
	normalized := n / pow10
	switch {
	case normalized >= 5:
		return 5 * pow10
	case normalized >= 2:
		return 2 * pow10
	default:
		return pow10
	}
}

func formatDistance(blocks float64) string {
	if blocks >= 10000 {
		return fmt.Sprintf("%.0fk blocks", blocks/1000)
	}
	if blocks >= 1000 {
		return fmt.Sprintf("%.1fk blocks", blocks/1000)
	}
	return fmt.Sprintf("%d blocks", int(math.Round(blocks)))
}

// FormatRemaining renders a storm countdown as m:ss.
func FormatRemaining(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
