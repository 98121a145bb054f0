// Package collect runs the ingestion pipeline: fetch centerline tiles in
// batches, sample elevations, and write the node and link datasets.
package collect

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"river_graph/pkg/dataset"
	"river_graph/pkg/dem"
	"river_graph/pkg/fetch"
	"river_graph/pkg/geo"
	"river_graph/pkg/river"
)

// elevationWorkers bounds concurrent per-line elevation passes within a
// batch; each pass blocks on DEM tile fetches, so this exceeds GOMAXPROCS.
const elevationWorkers = 32

// Config parametrizes one ingestion run. Output files are created next to
// the mokuroku file.
type Config struct {
	Mokuroku     string
	BatchSize    int
	Filter       river.Filter
	RiverBaseURL string
	DEMBaseURL   string
	DEMZoom      int
	CacheSize    int
	Box          *geo.Box // optional tile prefilter; nil disables it
}

// NodesPath returns where the node dataset of a run is written.
func (c Config) NodesPath() string {
	return filepath.Join(filepath.Dir(c.Mokuroku), "river_node.csv")
}

// LinksPath returns where the link dataset of a run is written.
func (c Config) LinksPath() string {
	return filepath.Join(filepath.Dir(c.Mokuroku), "river_link.csv")
}

// Run executes the pipeline. Batches are processed sequentially; within a
// batch every tile fetch runs concurrently, and the first failure aborts the
// whole run with no partial-batch commit beyond rows already appended.
func Run(ctx context.Context, cfg Config) error {
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	if err := geo.CheckZoom(cfg.DEMZoom); err != nil {
		return fmt.Errorf("DEM zoom: %w", err)
	}

	tiles, err := fetch.ReadTileList(cfg.Mokuroku, cfg.Box)
	if err != nil {
		return err
	}
	log.Printf("Read %d tile paths from %s", len(tiles), cfg.Mokuroku)

	client := fetch.NewClient(cfg.RiverBaseURL, cfg.DEMBaseURL)
	source, err := dem.NewSource(cfg.DEMZoom, cfg.CacheSize, client.DEMTile)
	if err != nil {
		return err
	}

	nodes, err := dataset.CreateNodeFile(cfg.NodesPath())
	if err != nil {
		return err
	}
	links, err := dataset.CreateLinkFile(cfg.LinksPath())
	if err != nil {
		nodes.Close()
		return err
	}

	for start := 0; start < len(tiles); start += cfg.BatchSize {
		end := min(start+cfg.BatchSize, len(tiles))

		lines, err := fetchLines(ctx, client, tiles[start:end], cfg.Filter)
		if err != nil {
			return err
		}

		batchLinks := collectLinks(lines)
		batchNodes, err := collectNodes(ctx, lines, source)
		if err != nil {
			return err
		}

		if err := nodes.Append(batchNodes); err != nil {
			return err
		}
		if err := links.Append(batchLinks); err != nil {
			return err
		}
		log.Printf("Processed tiles %d-%d of %d", start+1, end, len(tiles))
	}

	if err := nodes.Close(); err != nil {
		return err
	}
	if err := links.Close(); err != nil {
		return err
	}

	kept, dropped, err := dataset.Deduplicate(cfg.NodesPath())
	if err != nil {
		return err
	}
	log.Printf("Deduplicated nodes: kept %d, dropped %d", kept, dropped)

	box := geo.DefaultBox
	if cfg.Box != nil {
		box = *cfg.Box
	}
	return appendBounds(cfg.NodesPath(), box)
}

// fetchLines fetches every tile of a batch concurrently and collects the
// filtered centerlines. The batch is the unit of backpressure: the first
// failure cancels the remaining fetches.
func fetchLines(ctx context.Context, client *fetch.Client, batch []string, filter river.Filter) ([]river.Line, error) {
	perTile := make([][]river.Line, len(batch))

	g, ctx := errgroup.WithContext(ctx)
	for i, suffix := range batch {
		g.Go(func() error {
			fc, err := client.VectorTile(ctx, suffix)
			if err != nil {
				return err
			}
			lines, err := river.ExtractLines(fc, filter)
			if err != nil {
				return fmt.Errorf("tile %s: %w", suffix, err)
			}
			perTile[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var lines []river.Line
	for _, l := range perTile {
		lines = append(lines, l...)
	}
	return lines, nil
}

// collectLinks derives one weighted link per consecutive vertex pair of each
// line. Lines are independent, so they fan out over disjoint output slots.
func collectLinks(lines []river.Line) []dataset.Link {
	perLine := make([][]dataset.Link, len(lines))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, line := range lines {
		g.Go(func() error {
			links := make([]dataset.Link, 0, max(len(line)-1, 0))
			for j := 0; j+1 < len(line); j++ {
				a, b := line[j], line[j+1]
				links = append(links, dataset.Link{
					From:     a.ID,
					To:       b.ID,
					LengthKm: geo.Haversine(a.Lon, a.Lat, b.Lon, b.Lat),
				})
			}
			perLine[i] = links
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	var links []dataset.Link
	for _, l := range perLine {
		links = append(links, l...)
	}
	return links
}

// collectNodes resolves an elevation for every vertex of every line. Lines
// fan out concurrently; the DEM cache collapses simultaneous lookups of the
// same elevation tile into one fetch.
func collectNodes(ctx context.Context, lines []river.Line, source *dem.Source) ([]dataset.Node, error) {
	perLine := make([][]dataset.Node, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(elevationWorkers)
	for i, line := range lines {
		g.Go(func() error {
			out := make([]dataset.Node, len(line))
			for j, v := range line {
				alt, err := source.Altitude(ctx, v.Lon, v.Lat)
				if err != nil {
					return err
				}
				out[j] = dataset.Node{
					ID:       v.ID,
					Lon:      v.Lon,
					Lat:      v.Lat,
					Altitude: alt,
					Label:    dataset.LabelRiverNode,
				}
			}
			perLine[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var nodes []dataset.Node
	for _, n := range perLine {
		nodes = append(nodes, n...)
	}
	return nodes, nil
}

// appendBounds writes the four corner markers that anchor the triangulation
// hull outside the real data. Each marker sits at one box corner and carries
// the ID computed from the opposite corner.
func appendBounds(nodesPath string, box geo.Box) error {
	markers := []dataset.Node{
		{ID: geo.Identify(box.MaxLon, box.MaxLat), Lon: box.MinLon, Lat: box.MinLat, Label: dataset.LabelBoundNode},
		{ID: geo.Identify(box.MinLon, box.MaxLat), Lon: box.MaxLon, Lat: box.MinLat, Label: dataset.LabelBoundNode},
		{ID: geo.Identify(box.MaxLon, box.MinLat), Lon: box.MinLon, Lat: box.MaxLat, Label: dataset.LabelBoundNode},
		{ID: geo.Identify(box.MinLon, box.MinLat), Lon: box.MaxLon, Lat: box.MaxLat, Label: dataset.LabelBoundNode},
	}

	w, err := dataset.OpenNodeAppend(nodesPath)
	if err != nil {
		return err
	}
	if err := w.Append(markers); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
