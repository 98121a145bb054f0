package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadNodes loads a node dataset file, including boundary marker rows.
func ReadNodes(path string) ([]Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open nodes: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	var nodes []Node
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		n, err := parseNode(rec)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func parseNode(rec []string) (Node, error) {
	if len(rec) != 4 {
		return Node{}, fmt.Errorf("node row has %d fields, want 4", len(rec))
	}
	id, err := strconv.ParseUint(rec[0], 10, 32)
	if err != nil {
		return Node{}, fmt.Errorf("node ID %q: %w", rec[0], err)
	}
	lon, lat, err := parseLocation(rec[1])
	if err != nil {
		return Node{}, err
	}
	alt, err := strconv.ParseFloat(rec[2], 32)
	if err != nil {
		return Node{}, fmt.Errorf("altitude %q: %w", rec[2], err)
	}
	return Node{
		ID:       uint32(id),
		Lon:      lon,
		Lat:      lat,
		Altitude: float32(alt),
		Label:    rec[3],
	}, nil
}

// parseLocation parses the point column, e.g.
// "{longitude:135.343717,latitude:35.178298}".
func parseLocation(s string) (lon, lat float64, err error) {
	inner, ok := strings.CutPrefix(s, "{")
	if ok {
		inner, ok = strings.CutSuffix(inner, "}")
	}
	if !ok {
		return 0, 0, fmt.Errorf("location %q is not brace-delimited", s)
	}
	for _, part := range strings.Split(inner, ",") {
		key, val, found := strings.Cut(part, ":")
		if !found {
			return 0, 0, fmt.Errorf("location %q: malformed component %q", s, part)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("location %q: %w", s, err)
		}
		switch key {
		case "longitude":
			lon = v
		case "latitude":
			lat = v
		default:
			return 0, 0, fmt.Errorf("location %q: unknown component %q", s, key)
		}
	}
	return lon, lat, nil
}
