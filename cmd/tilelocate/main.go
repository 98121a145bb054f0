package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"river_graph/pkg/dataset"
	"river_graph/pkg/delaunay"
	"river_graph/pkg/geo"
	"river_graph/pkg/tileindex"
)

func main() {
	input := flag.String("input", "", "Path to the river_node.csv produced by collect")
	zoom := flag.Int("zoom", 14, "Finest zoom level of the tile index")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: tilelocate --input <river_node.csv> [--zoom N]")
		os.Exit(1)
	}
	if err := geo.CheckZoom(*zoom); err != nil {
		log.Fatalf("Invalid -zoom: %v", err)
	}

	log.Println("Reading nodes...")
	records, err := dataset.ReadNodes(*input)
	if err != nil {
		log.Fatalf("Failed to read nodes: %v", err)
	}

	nodes := make([]delaunay.Node, len(records))
	for i, n := range records {
		nodes[i] = delaunay.Node{ID: n.ID, Lon: n.Lon, Lat: n.Lat}
	}

	log.Printf("Triangulating %d nodes...", len(nodes))
	tri, err := delaunay.Build(nodes)
	if err != nil {
		log.Fatalf("Failed to triangulate: %v", err)
	}

	log.Printf("Locating %d faces on the zoom-%d tile grid...", tri.NumFaces(), *zoom)
	membership := tileindex.Locate(tri, *zoom)

	dir := filepath.Dir(*input)
	if err := writeMembership(filepath.Join(dir, "tile_membership.csv"), membership); err != nil {
		log.Fatalf("Failed to write tile membership: %v", err)
	}

	entities, families := tileindex.Hierarchy(membership.Tiles())
	if err := writeTiles(filepath.Join(dir, "tiles.csv"), entities); err != nil {
		log.Fatalf("Failed to write tile entities: %v", err)
	}
	if err := writeFamilies(filepath.Join(dir, "tile_family_relationship.csv"), families); err != nil {
		log.Fatalf("Failed to write tile family relations: %v", err)
	}
	log.Printf("Wrote %d member tiles, %d tile entities, %d family relations",
		len(membership), len(entities), len(families))
}

func writeMembership(path string, m tileindex.Membership) error {
	w, err := dataset.CreateRelFile(path)
	if err != nil {
		return err
	}
	for _, tile := range m.Tiles() {
		for _, id := range m[tile] {
			if err := w.Append(tile.ID(), strconv.FormatUint(uint64(id), 10), dataset.TypeMember); err != nil {
				w.Close()
				return err
			}
		}
	}
	return w.Close()
}

func writeTiles(path string, tiles []geo.Tile) error {
	w, err := dataset.CreateTileFile(path)
	if err != nil {
		return err
	}
	for _, t := range tiles {
		if err := w.Append(t); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

func writeFamilies(path string, families []tileindex.Family) error {
	w, err := dataset.CreateRelFile(path)
	if err != nil {
		return err
	}
	for _, f := range families {
		if err := w.Append(f.Parent.ID(), f.Child.ID(), dataset.TypeChild); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
