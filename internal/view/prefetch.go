// Package view computes the values the map UI derives from the current
// viewport and zoom level. All functions are pure and are meant to be
// recomputed whenever one of their declared inputs changes.
package view

import (
	"math"

	"github.com/quetzalmap/quetzalmap/internal/coord"
)

// maxPrefetchRadius bounds the worst-case tile request fan-out.
const maxPrefetchRadius = 48

// PrefetchRadius returns how many tiles around the viewport the tile layer
// should keep loaded for the given viewport size in pixels and zoom level.
//
// Zoomed-out views cover more tiles per pixel of panning, so the radius
// grows as the zoom level drops. The result only depends on viewport size
// and zoom; panning alone must not trigger a recompute.
func PrefetchRadius(width, height, zoom int) int {
	across := int(math.Ceil(float64(width) / coord.TileSize))
	down := int(math.Ceil(float64(height) / coord.TileSize))
	base := math.Ceil(float64(across*down) * 1.5)

	var multiplier float64
	switch {
	case zoom <= -3:
		multiplier = 2.5
	case zoom <= -2:
		multiplier = 2.0
	case zoom <= -1:
		multiplier = 1.5
	default:
		multiplier = 1.0
	}
	return min(int(base*multiplier), maxPrefetchRadius)
}
