package tileindex

import (
	"sort"

	"river_graph/pkg/geo"
)

// Family records a parent→child relation between adjacent zoom levels.
type Family struct {
	Parent, Child geo.Tile
}

// Hierarchy folds the finest-zoom tile set upward level by level until zoom
// 0, emitting a tile entity for every tile at every visited level and a
// CHILD relation for every (parent, child) pair. Every ancestor chain runs
// all the way to the zoom-0 root tile.
func Hierarchy(finest []geo.Tile) (entities []geo.Tile, families []Family) {
	level := make([]geo.Tile, len(finest))
	copy(level, finest)
	sortTiles(level)
	entities = append(entities, level...)

	for len(level) > 0 && level[0].Zoom > 0 {
		parentSet := make(map[geo.Tile]struct{}, len(level))
		for _, t := range level {
			p := t.Parent()
			families = append(families, Family{Parent: p, Child: t})
			parentSet[p] = struct{}{}
		}

		level = level[:0]
		for p := range parentSet {
			level = append(level, p)
		}
		sortTiles(level)
		entities = append(entities, level...)
	}
	return entities, families
}

func sortTiles(tiles []geo.Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].X != tiles[j].X {
			return tiles[i].X < tiles[j].X
		}
		return tiles[i].Y < tiles[j].Y
	})
}
