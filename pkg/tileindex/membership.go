// Package tileindex maps triangulation faces onto a pyramid of map tiles,
// producing the tile membership and tile hierarchy datasets.
package tileindex

import (
	"runtime"
	"sort"
	"sync"

	"river_graph/pkg/delaunay"
	"river_graph/pkg/geo"
)

// Membership maps each tile at the target zoom to the IDs of every node
// whose triangle overlaps it. IDs repeat when several faces of the same node
// overlap one tile.
type Membership map[geo.Tile][]uint32

// Locate tests every face of the triangulation against the tile grid at the
// given zoom. Faces are independent, so they are processed in parallel; each
// worker folds into a private map merged at the end. zoom must satisfy
// geo.CheckZoom.
func Locate(t *delaunay.Triangulation, zoom int) Membership {
	n := t.NumFaces()
	if n == 0 {
		return Membership{}
	}
	workers := min(runtime.GOMAXPROCS(0), n)

	parts := make([]Membership, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			part := Membership{}
			for i := w; i < n; i += workers {
				locateFace(t.Face(i), zoom, part)
			}
			parts[w] = part
		}(w)
	}
	wg.Wait()

	merged := Membership{}
	for _, part := range parts {
		for tile, ids := range part {
			merged[tile] = append(merged[tile], ids...)
		}
	}
	return merged
}

// Tiles returns the member tiles sorted by (x, y) for deterministic output.
func (m Membership) Tiles() []geo.Tile {
	tiles := make([]geo.Tile, 0, len(m))
	for t := range m {
		tiles = append(tiles, t)
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].X != tiles[j].X {
			return tiles[i].X < tiles[j].X
		}
		return tiles[i].Y < tiles[j].Y
	})
	return tiles
}

// locateFace records the face's three node IDs against every tile its
// triangle overlaps. Candidate tiles come from the triangle's pixel-space
// bounding box.
func locateFace(face [3]delaunay.Node, zoom int, out Membership) {
	var tri [3]geo.Pixel
	for i, v := range face {
		tri[i] = geo.ToPixel(v.Lon, v.Lat, zoom)
	}

	minX, maxX := tri[0].X, tri[0].X
	minY, maxY := tri[0].Y, tri[0].Y
	for _, p := range tri[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	for tx := minX / geo.TileSize; tx <= maxX/geo.TileSize; tx++ {
		for ty := minY / geo.TileSize; ty <= maxY/geo.TileSize; ty++ {
			tile := geo.Tile{X: tx, Y: ty, Zoom: zoom}
			if Overlaps(tri, tile) {
				out[tile] = append(out[tile], face[0].ID, face[1].ID, face[2].ID)
			}
		}
	}
}

// Overlaps reports whether any of the tile's four pixel-space corners lies
// inside the triangle, using a sign-consistent half-plane test. A triangle
// small enough to sit strictly inside the tile without covering a corner is
// not detected; corner sampling trades that gap for a constant-time test.
func Overlaps(tri [3]geo.Pixel, tile geo.Tile) bool {
	x0 := int64(tile.X) * geo.TileSize
	y0 := int64(tile.Y) * geo.TileSize
	corners := [4][2]int64{
		{x0, y0},
		{x0 + geo.TileSize, y0},
		{x0, y0 + geo.TileSize},
		{x0 + geo.TileSize, y0 + geo.TileSize},
	}
	for _, c := range corners {
		c1 := cross(tri[0], tri[1], c)
		c2 := cross(tri[1], tri[2], c)
		c3 := cross(tri[2], tri[0], c)
		if (c1 >= 0 && c2 >= 0 && c3 >= 0) || (c1 <= 0 && c2 <= 0 && c3 <= 0) {
			return true
		}
	}
	return false
}

// cross is the 2D cross product of (p2-p1) and (p-p1).
func cross(p1, p2 geo.Pixel, p [2]int64) int64 {
	return (int64(p2.X)-int64(p1.X))*(p[1]-int64(p1.Y)) -
		(int64(p2.Y)-int64(p1.Y))*(p[0]-int64(p1.X))
}
