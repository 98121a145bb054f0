package fetch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"river_graph/pkg/geo"
)

// ReadTileList reads candidate tile path suffixes from a mokuroku CSV file.
// The suffix is the first column of each row; rows whose first field does
// not begin with an ASCII digit are skipped (headers, comments). When box is
// non-nil, only tiles whose top-left corner falls inside it are kept.
func ReadTileList(path string, box *geo.Box) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tile list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var tiles []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if len(rec) == 0 || rec[0] == "" {
			continue
		}
		suffix := rec[0]
		if suffix[0] < '0' || suffix[0] > '9' {
			continue
		}
		if box != nil {
			inside, err := tileInBox(suffix, *box)
			if err != nil {
				return nil, err
			}
			if !inside {
				continue
			}
		}
		tiles = append(tiles, suffix)
	}
	return tiles, nil
}

// tileInBox parses the z/x/y prefix of a tile path suffix and tests the
// tile's top-left corner against the box.
func tileInBox(suffix string, box geo.Box) (bool, error) {
	base, _, _ := strings.Cut(suffix, ".")
	zxy := strings.Split(base, "/")
	if len(zxy) != 3 {
		return false, fmt.Errorf("tile path %q is not z/x/y", suffix)
	}
	zoom, err := strconv.Atoi(zxy[0])
	if err != nil {
		return false, fmt.Errorf("tile path %q: %w", suffix, err)
	}
	if err := geo.CheckZoom(zoom); err != nil {
		return false, fmt.Errorf("tile path %q: %w", suffix, err)
	}
	x, err := strconv.ParseUint(zxy[1], 10, 32)
	if err != nil {
		return false, fmt.Errorf("tile path %q: %w", suffix, err)
	}
	y, err := strconv.ParseUint(zxy[2], 10, 32)
	if err != nil {
		return false, fmt.Errorf("tile path %q: %w", suffix, err)
	}

	lon, lat := geo.ToGeo(geo.Pixel{X: uint32(x) * geo.TileSize, Y: uint32(y) * geo.TileSize}, zoom)
	return box.Contains(lon, lat), nil
}
