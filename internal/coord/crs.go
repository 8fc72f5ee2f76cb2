package coord

import "math"

// CRS is the coordinate reference system contract the rendering layer plugs
// in. It mirrors the Leaflet CRS interface: Scale converts a zoom level to
// pixels per plane unit, Zoom is its inverse. One plane unit is one tile,
// so at zoom 0 a tile is rendered at its native 512 pixels.
type CRS struct{}

// Scale returns the number of pixels covering one plane unit at a zoom
// level: TileSize * 2^zoom.
func (CRS) Scale(zoom float64) float64 {
	return TileSize * math.Pow(2, zoom)
}

// Zoom returns the zoom level at which one plane unit covers the given
// number of pixels. It is the exact inverse of Scale.
func (CRS) Zoom(scale float64) float64 {
	return math.Log2(scale / TileSize)
}
