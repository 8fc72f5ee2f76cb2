// Package coord implements the coordinate engine of the map client.
//
// It reconciles two spaces: block space, where X grows east and Z grows
// south, and the plane space of the rendering layer, where the vertical
// axis grows north. A single sign flip on Z converts between the two.
// All functions are pure.
package coord

import (
	"fmt"
	"math"

	"github.com/quetzalmap/quetzalmap/internal/qmap"
)

const (
	// TileSize is the side length of one tile, in pixels and in blocks.
	// One tile covers a 512x512 block square at the canonical zoom.
	TileSize = 512

	// CanonicalZoom is the only zoom level at which tiles exist on the
	// server. Every other zoom level is a client-side rescale.
	CanonicalZoom = 0

	MinZoom = -3
	MaxZoom = 3
)

// Scale returns the number of screen pixels covering one block at a zoom
// level. It is strictly monotonic in zoom.
func Scale(zoom float64) float64 {
	return math.Pow(2, zoom)
}

// ZoomFromScale is the exact inverse of Scale.
func ZoomFromScale(scale float64) float64 {
	return math.Log2(scale)
}

// WorldPoint is a position on the ground in block space. The vertical Y
// coordinate plays no role in any map transform and is not carried here.
type WorldPoint struct {
	X float64
	Z float64
}

// PlanePoint is a position in the rendering layer's planar space.
// Its Y axis grows north, the opposite of block-space Z.
type PlanePoint struct {
	X float64
	Y float64
}

// WorldToPlane converts a block-space position to plane space.
func WorldToPlane(p WorldPoint) PlanePoint {
	return PlanePoint{X: p.X, Y: -p.Z}
}

// PlaneToWorld converts a plane-space position back to block space.
// It is the exact inverse of WorldToPlane.
func PlaneToWorld(p PlanePoint) WorldPoint {
	return WorldPoint{X: p.X, Z: -p.Y}
}

// TileAddressFor returns the address of the tile containing a block-space
// position. Tile indices are the floor division of the block coordinate by
// the tile side, which matches the server's tile cutting: block -1 lies in
// tile -1, not in tile 0.
func TileAddressFor(p WorldPoint, world string) qmap.TileAddress {
	return qmap.TileAddress{
		World: world,
		X:     int(math.Floor(p.X / TileSize)),
		Z:     int(math.Floor(p.Z / TileSize)),
	}
}

// TilePath returns the request path of a tile relative to the server base
// URL, e.g. "tiles/world/0/-1_2.png". Tiles are only ever requested at the
// canonical zoom.
func TilePath(a qmap.TileAddress) string {
	return fmt.Sprintf("tiles/%s/%d/%d_%d.png", a.World, CanonicalZoom, a.X, a.Z)
}

// PanBounds returns the plane-space southwest and northeast corners of a
// world border. The rendering layer uses them to constrain panning.
func PanBounds(b qmap.WorldBorder) (sw, ne PlanePoint) {
	half := b.Size / 2
	sw = WorldToPlane(WorldPoint{X: b.CenterX - half, Z: b.CenterZ + half})
	ne = WorldToPlane(WorldPoint{X: b.CenterX + half, Z: b.CenterZ - half})
	return sw, ne
}
