package main

import (
	"context"
	"flag"
	"log"
	"time"

	"river_graph/pkg/collect"
	"river_graph/pkg/dem"
	"river_graph/pkg/geo"
	"river_graph/pkg/river"
)

func main() {
	mokuroku := flag.String("mokuroku", "./mokuroku.csv", "Path to the tile list CSV")
	batch := flag.Int("batch", 100, "Number of tiles fetched per batch")
	line := flag.String("line", "sn,sd,n,d,ao,w,o,u", "Comma-separated line types to collect (or \"all\")")
	category := flag.String("category", "all", "Comma-separated river categories to collect (or \"all\")")
	riverURL := flag.String("river-base-url", "https://cyberjapandata.gsi.go.jp/xyz/experimental_rvrcl/", "Base URL for river centerline tiles")
	demURL := flag.String("dem-base-url", "https://tiles.gsj.jp/tiles/elev/land/", "Base URL for DEM tiles")
	zoom := flag.Int("zoom", 14, "Zoom level of the DEM tiles used for elevation lookups")
	aabb := flag.String("aabb", "", "Bounding box tile filter: minLon,maxLon,minLat,maxLat (optional)")
	flag.Parse()

	types, err := river.ParseLineTypes(*line)
	if err != nil {
		log.Fatalf("Invalid -line: %v", err)
	}
	categories, err := river.ParseCategories(*category)
	if err != nil {
		log.Fatalf("Invalid -category: %v", err)
	}
	if err := geo.CheckZoom(*zoom); err != nil {
		log.Fatalf("Invalid -zoom: %v", err)
	}

	var box *geo.Box
	if *aabb != "" {
		b, err := geo.ParseBox(*aabb)
		if err != nil {
			log.Fatalf("Invalid -aabb: %v", err)
		}
		box = &b
	}

	cfg := collect.Config{
		Mokuroku:     *mokuroku,
		BatchSize:    *batch,
		Filter:       river.Filter{Types: types, Categories: categories},
		RiverBaseURL: *riverURL,
		DEMBaseURL:   *demURL,
		DEMZoom:      *zoom,
		CacheSize:    dem.DefaultCacheSize,
		Box:          box,
	}

	start := time.Now()
	if err := collect.Run(context.Background(), cfg); err != nil {
		log.Fatalf("Collect failed: %v", err)
	}
	log.Printf("Done in %s. Nodes: %s, links: %s",
		time.Since(start).Round(time.Second), cfg.NodesPath(), cfg.LinksPath())
}
