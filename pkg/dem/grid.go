// Package dem resolves point elevations against tiled DEM rasters.
package dem

import (
	"bytes"
	"fmt"
	"image"

	// Raster tiles are served as PNG; register JPEG as well since the
	// services also publish JPEG variants.
	_ "image/jpeg"
	_ "image/png"
)

// GridSize is the width and height in samples of one elevation tile.
const GridSize = 256

// Grid holds the decoded elevation samples of one DEM tile in row-major
// order. A grid is immutable once decoded and shared by reference between
// all readers.
type Grid struct {
	samples [GridSize * GridSize]float32
}

// At returns the sample at the local pixel offset (x, y) within the tile.
func (g *Grid) At(x, y uint32) float32 {
	return g.samples[y*GridSize+x]
}

// DecodeGrid decodes a DEM tile image into elevation samples. Each pixel
// encodes x = 65536*R + 256*G + B in units of 0.01 m; values above 2^23 wrap
// to negative elevations around 2^24, and exactly 2^23 is the no-data
// sentinel mapped to 0. An undecodable or mis-sized image yields an all-zero
// grid together with the decode error, so callers can log and continue.
func DecodeGrid(data []byte) (*Grid, error) {
	g := &Grid{}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return g, fmt.Errorf("decode DEM image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() != GridSize || b.Dy() != GridSize {
		return g, fmt.Errorf("DEM image is %dx%d, want %dx%d", b.Dx(), b.Dy(), GridSize, GridSize)
	}

	const unit = 0.01
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			r, gr, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// RGBA returns 16-bit channels; take the high byte.
			v := 65536*float64(r>>8) + 256*float64(gr>>8) + float64(bl>>8)
			switch {
			case v < 1<<23:
				g.samples[y*GridSize+x] = float32(v * unit)
			case v > 1<<23:
				g.samples[y*GridSize+x] = float32((v - 1<<24) * unit)
			}
		}
	}
	return g, nil
}
