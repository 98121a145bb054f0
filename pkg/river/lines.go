package river

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"river_graph/pkg/geo"
)

// Vertex is one point of a collected centerline, carrying its node identity.
type Vertex struct {
	ID  uint32
	Lon float64
	Lat float64
}

// Line is the ordered vertex sequence of a single centerline feature.
type Line []Vertex

// Filter selects which features are collected from a tile document. A
// feature is kept only if both its line type and its category intersect the
// requested sets.
type Filter struct {
	Types      LineType
	Categories Category
}

// ExtractLines collects the centerlines of a fetched tile document that pass
// the filter. Each vertex is assigned its node identity via geo.Identify. A
// retained feature with a non-LineString geometry means the source data does
// not match the expected schema and is reported as an error.
func ExtractLines(fc *geojson.FeatureCollection, filter Filter) ([]Line, error) {
	var lines []Line
	for _, f := range fc.Features {
		lineType, category, err := readProperties(f.Properties)
		if err != nil {
			return nil, err
		}
		if !lineType.Intersects(filter.Types) || !category.Intersects(filter.Categories) {
			continue
		}

		ls, ok := f.Geometry.(orb.LineString)
		if !ok {
			return nil, fmt.Errorf("centerline feature has geometry %T, want LineString", f.Geometry)
		}

		line := make(Line, len(ls))
		for i, p := range ls {
			line[i] = Vertex{ID: geo.Identify(p.Lon(), p.Lat()), Lon: p.Lon(), Lat: p.Lat()}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// readProperties reads the "type" and "rivCtg" categorical properties of a
// feature and parses them into their flag values.
func readProperties(p geojson.Properties) (LineType, Category, error) {
	typ, ok := p["type"].(string)
	if !ok {
		return 0, 0, fmt.Errorf(`feature is missing a string "type" property: %v`, p)
	}
	lineType, err := ParseLineType(typ)
	if err != nil {
		return 0, 0, err
	}

	ctg, ok := p["rivCtg"].(string)
	if !ok {
		return 0, 0, fmt.Errorf(`feature is missing a string "rivCtg" property: %v`, p)
	}
	category, err := ParseCategory(ctg)
	if err != nil {
		return 0, 0, err
	}
	return lineType, category, nil
}
