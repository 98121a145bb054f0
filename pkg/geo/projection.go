package geo

import (
	"fmt"
	"math"
)

// TileSize is the width and height in pixels of one slippy-map tile.
const TileSize = 256

// MaxZoom is the finest zoom level supported by the pixel grid.
const MaxZoom = 24

// maxLatitude is the Web Mercator latitude cutoff in degrees.
const maxLatitude = 85.05112878

// Pixel is a coordinate in the global pixel grid of a specific zoom level.
// The grid at zoom z spans 2^(z+8) pixels in each axis.
type Pixel struct {
	X, Y uint32
}

// Tile addresses one 256x256 pixel tile at a zoom level.
type Tile struct {
	X, Y uint32
	Zoom int
}

// ID returns the tile identifier used in the persisted datasets.
func (t Tile) ID() string {
	return fmt.Sprintf("%d-%d-%d", t.X, t.Y, t.Zoom)
}

// Label returns the tile's zoom-level label used in the tile entity file.
func (t Tile) Label() string {
	return fmt.Sprintf("Tile%d", t.Zoom)
}

// Parent returns the tile covering t at the next coarser zoom level.
func (t Tile) Parent() Tile {
	return Tile{X: t.X / 2, Y: t.Y / 2, Zoom: t.Zoom - 1}
}

// CheckZoom validates a zoom level before it reaches the projection
// functions, which assume a valid level.
func CheckZoom(zoom int) error {
	if zoom < 0 || zoom > MaxZoom {
		return fmt.Errorf("zoom level %d out of range [0, %d]", zoom, MaxZoom)
	}
	return nil
}

// ToPixel projects a longitude/latitude pair in degrees onto the global
// pixel grid at the given zoom level. Out-of-range input saturates at the
// grid edge instead of failing. zoom must satisfy CheckZoom.
func ToPixel(lon, lat float64, zoom int) Pixel {
	scale := float64(uint64(1) << (uint(zoom) + 7)) // 2^(z+7)
	limit := math.Atanh(math.Sin(maxLatitude * math.Pi / 180))

	lonR := lon * math.Pi / 180
	latR := lat * math.Pi / 180

	x := scale * (lonR/math.Pi + 1)
	y := scale / math.Pi * (limit - math.Atanh(math.Sin(latR)))

	edge := scale*2 - 1 // 2^(z+8) - 1
	return Pixel{X: saturate(x, edge), Y: saturate(y, edge)}
}

// ToGeo is the inverse projection: it returns the longitude/latitude in
// degrees of the pixel's top-left corner. zoom must satisfy CheckZoom.
func ToGeo(p Pixel, zoom int) (lon, lat float64) {
	scale := float64(uint64(1) << (uint(zoom) + 7))
	limit := math.Atanh(math.Sin(maxLatitude * math.Pi / 180))

	lonR := math.Pi * (float64(p.X)/scale - 1)
	latR := math.Asin(math.Tanh(limit - math.Pi*float64(p.Y)/scale))
	return lonR * 180 / math.Pi, latR * 180 / math.Pi
}

// TileAt returns the tile containing the given pixel coordinate.
func TileAt(p Pixel, zoom int) Tile {
	return Tile{X: p.X / TileSize, Y: p.Y / TileSize, Zoom: zoom}
}

func saturate(v, edge float64) uint32 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > edge {
		return uint32(edge)
	}
	return uint32(v)
}
