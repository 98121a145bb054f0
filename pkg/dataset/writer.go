package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"river_graph/pkg/geo"
)

var (
	nodeHeader = []string{"hilbert18:ID", "location:point{crs:WGS-84}", "altitude", ":LABEL"}
	linkHeader = []string{":START_ID", ":END_ID", ":TYPE", "length"}
	relHeader  = []string{":START_ID", ":END_ID", ":TYPE"}
	tileHeader = []string{":ID", ":LABEL", "x:int", "y:int"}
)

type csvFile struct {
	f *os.File
	w *csv.Writer
}

func createCSV(path string, header []string) (*csvFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header of %s: %w", path, err)
	}
	return &csvFile{f: f, w: w}, nil
}

func appendCSV(path string) (*csvFile, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s for append: %w", path, err)
	}
	return &csvFile{f: f, w: csv.NewWriter(f)}, nil
}

func (c *csvFile) write(rec []string) error {
	return c.w.Write(rec)
}

func (c *csvFile) close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.f.Close()
		return err
	}
	return c.f.Close()
}

// NodeWriter appends node rows to a node dataset file.
type NodeWriter struct {
	c *csvFile
}

// CreateNodeFile truncates path and writes the node header.
func CreateNodeFile(path string) (*NodeWriter, error) {
	c, err := createCSV(path, nodeHeader)
	if err != nil {
		return nil, err
	}
	return &NodeWriter{c: c}, nil
}

// OpenNodeAppend opens an existing node file for appending rows.
func OpenNodeAppend(path string) (*NodeWriter, error) {
	c, err := appendCSV(path)
	if err != nil {
		return nil, err
	}
	return &NodeWriter{c: c}, nil
}

// Append writes one row per node.
func (w *NodeWriter) Append(nodes []Node) error {
	for _, n := range nodes {
		rec := []string{
			strconv.FormatUint(uint64(n.ID), 10),
			formatLocation(n.Lon, n.Lat),
			strconv.FormatFloat(float64(n.Altitude), 'f', -1, 32),
			n.Label,
		}
		if err := w.c.write(rec); err != nil {
			return err
		}
	}
	w.c.w.Flush()
	return w.c.w.Error()
}

// Close flushes and closes the file.
func (w *NodeWriter) Close() error { return w.c.close() }

// formatLocation renders the point column. The braces and inner commas make
// the CSV layer quote the whole field, which is the layout the graph loader
// expects.
func formatLocation(lon, lat float64) string {
	return fmt.Sprintf("{longitude:%s,latitude:%s}",
		strconv.FormatFloat(lon, 'f', -1, 64),
		strconv.FormatFloat(lat, 'f', -1, 64))
}

// LinkWriter appends weighted RIVER_LINK rows to a link dataset file.
type LinkWriter struct {
	c *csvFile
}

// CreateLinkFile truncates path and writes the link header.
func CreateLinkFile(path string) (*LinkWriter, error) {
	c, err := createCSV(path, linkHeader)
	if err != nil {
		return nil, err
	}
	return &LinkWriter{c: c}, nil
}

// Append writes one row per link.
func (w *LinkWriter) Append(links []Link) error {
	for _, l := range links {
		rec := []string{
			strconv.FormatUint(uint64(l.From), 10),
			strconv.FormatUint(uint64(l.To), 10),
			TypeRiverLink,
			strconv.FormatFloat(l.LengthKm, 'f', -1, 64),
		}
		if err := w.c.write(rec); err != nil {
			return err
		}
	}
	w.c.w.Flush()
	return w.c.w.Error()
}

// Close flushes and closes the file.
func (w *LinkWriter) Close() error { return w.c.close() }

// RelWriter appends rows to an unweighted relation file
// (:START_ID,:END_ID,:TYPE).
type RelWriter struct {
	c *csvFile
}

// CreateRelFile truncates path and writes the relation header.
func CreateRelFile(path string) (*RelWriter, error) {
	c, err := createCSV(path, relHeader)
	if err != nil {
		return nil, err
	}
	return &RelWriter{c: c}, nil
}

// Append writes one relation row.
func (w *RelWriter) Append(start, end, kind string) error {
	return w.c.write([]string{start, end, kind})
}

// Close flushes and closes the file.
func (w *RelWriter) Close() error { return w.c.close() }

// TileWriter appends tile entity rows (:ID,:LABEL,x:int,y:int).
type TileWriter struct {
	c *csvFile
}

// CreateTileFile truncates path and writes the tile entity header.
func CreateTileFile(path string) (*TileWriter, error) {
	c, err := createCSV(path, tileHeader)
	if err != nil {
		return nil, err
	}
	return &TileWriter{c: c}, nil
}

// Append writes one tile entity row.
func (w *TileWriter) Append(t geo.Tile) error {
	return w.c.write([]string{
		t.ID(),
		t.Label(),
		strconv.FormatUint(uint64(t.X), 10),
		strconv.FormatUint(uint64(t.Y), 10),
	})
}

// Close flushes and closes the file.
func (w *TileWriter) Close() error { return w.c.close() }
