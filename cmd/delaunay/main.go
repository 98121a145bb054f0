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
)

func main() {
	input := flag.String("input", "", "Path to the river_node.csv produced by collect")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: delaunay --input <river_node.csv>")
		os.Exit(1)
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

	out := filepath.Join(filepath.Dir(*input), "delaunay.csv")
	w, err := dataset.CreateRelFile(out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", out, err)
	}

	var count int
	var writeErr error
	tri.Edges(func(a, b delaunay.Node) {
		if writeErr != nil {
			return
		}
		writeErr = w.Append(
			strconv.FormatUint(uint64(a.ID), 10),
			strconv.FormatUint(uint64(b.ID), 10),
			dataset.TypeDelaunay,
		)
		count++
	})
	if writeErr != nil {
		log.Fatalf("Failed to write %s: %v", out, writeErr)
	}
	if err := w.Close(); err != nil {
		log.Fatalf("Failed to close %s: %v", out, err)
	}
	log.Printf("Wrote %d proximity edges to %s", count, out)
}
