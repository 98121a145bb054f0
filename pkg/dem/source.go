package dem

import (
	"context"
	"fmt"
	"log"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"river_graph/pkg/geo"
)

// DefaultCacheSize bounds the number of decoded grids held in memory.
const DefaultCacheSize = 50

// FetchFunc retrieves the raw image bytes of one DEM tile.
type FetchFunc func(ctx context.Context, tile geo.Tile) ([]byte, error)

// Source resolves point elevations against a pyramid of DEM tiles at one
// zoom level. Decoded grids are kept in a bounded LRU cache; concurrent
// misses on the same tile collapse into a single fetch+decode whose result
// every waiter shares.
type Source struct {
	zoom  int
	fetch FetchFunc
	cache *lru.Cache[geo.Tile, *Grid]
	group singleflight.Group
}

// NewSource builds a Source. cacheSize <= 0 selects DefaultCacheSize.
func NewSource(zoom, cacheSize int, fetch FetchFunc) (*Source, error) {
	if err := geo.CheckZoom(zoom); err != nil {
		return nil, fmt.Errorf("DEM zoom: %w", err)
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[geo.Tile, *Grid](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Source{zoom: zoom, fetch: fetch, cache: cache}, nil
}

// Altitude returns the elevation sample covering the given point.
func (s *Source) Altitude(ctx context.Context, lon, lat float64) (float32, error) {
	px := geo.ToPixel(lon, lat, s.zoom)
	grid, err := s.grid(ctx, geo.TileAt(px, s.zoom))
	if err != nil {
		return 0, err
	}
	return grid.At(px.X%geo.TileSize, px.Y%geo.TileSize), nil
}

// grid returns the decoded elevation grid of one tile, fetching and caching
// it on first use.
func (s *Source) grid(ctx context.Context, tile geo.Tile) (*Grid, error) {
	if g, ok := s.cache.Get(tile); ok {
		return g, nil
	}
	v, err, _ := s.group.Do(tile.ID(), func() (any, error) {
		// A racing lookup may have populated the cache while this call
		// waited its turn.
		if g, ok := s.cache.Get(tile); ok {
			return g, nil
		}
		data, err := s.fetch(ctx, tile)
		if err != nil {
			return nil, err
		}
		g, err := DecodeGrid(data)
		if err != nil {
			// A broken image degrades to a zero grid instead of
			// failing the run.
			log.Printf("Warning: tile %s: %v; substituting zero elevations", tile.ID(), err)
		}
		s.cache.Add(tile, g)
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Grid), nil
}
