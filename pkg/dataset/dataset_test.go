package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNodeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "river_node.csv")
	want := []Node{
		{ID: 3412033, Lon: 135.343717784783, Lat: 35.1782983520012, Altitude: 197.95, Label: LabelRiverNode},
		{ID: 7, Lon: 139.70, Lat: 35.60, Altitude: -12.5, Label: LabelRiverNode},
		{ID: 42, Lon: 153.988611111111, Lat: 45.5572222222222, Altitude: 0, Label: LabelBoundNode},
	}

	w, err := CreateNodeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Append(want); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := ReadNodes(path)
	if err != nil {
		t.Fatalf("ReadNodes error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("node %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNodeFileLayout(t *testing.T) {
	// The exact header and row encoding are load-bearing for the graph
	// importer.
	path := filepath.Join(t.TempDir(), "river_node.csv")
	w, err := CreateNodeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	node := Node{ID: 3412033, Lon: 135.343717784783, Lat: 35.1782983520012, Altitude: 197.95, Label: LabelRiverNode}
	if err := w.Append([]Node{node}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), string(data))
	}
	if lines[0] != "hilbert18:ID,location:point{crs:WGS-84},altitude,:LABEL" {
		t.Errorf("header = %q", lines[0])
	}
	wantRow := `3412033,"{longitude:135.343717784783,latitude:35.1782983520012}",197.95,RiverNode`
	if lines[1] != wantRow {
		t.Errorf("row = %q, want %q", lines[1], wantRow)
	}
}

func TestLinkFileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "river_link.csv")
	w, err := CreateLinkFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Append([]Link{{From: 1, To: 2, LengthKm: 3.5}}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := ":START_ID,:END_ID,:TYPE,length\n1,2,RIVER_LINK,3.5\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", string(data), want)
	}
}

func TestRelAndTileFileLayout(t *testing.T) {
	dir := t.TempDir()

	relPath := filepath.Join(dir, "rel.csv")
	rw, err := CreateRelFile(relPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := rw.Append("10", "20", TypeDelaunay); err != nil {
		t.Fatal(err)
	}
	if err := rw.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(relPath)
	if err != nil {
		t.Fatal(err)
	}
	if want := ":START_ID,:END_ID,:TYPE\n10,20,DELAUNAY\n"; string(data) != want {
		t.Errorf("relation file = %q, want %q", string(data), want)
	}
}

func TestOpenNodeAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "river_node.csv")
	w, err := CreateNodeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Append([]Node{{ID: 1, Lon: 135, Lat: 35, Label: LabelRiverNode}}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	a, err := OpenNodeAppend(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Append([]Node{{ID: 2, Lon: 136, Lat: 36, Label: LabelBoundNode}}); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	nodes, err := ReadNodes(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[1].ID != 2 || nodes[1].Label != LabelBoundNode {
		t.Errorf("appended node = %+v", nodes[1])
	}
}

func TestDeduplicate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "river_node.csv")
	w, err := CreateNodeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	in := []Node{
		{ID: 1, Lon: 135.0, Lat: 35.0, Altitude: 10, Label: LabelRiverNode},
		{ID: 2, Lon: 136.0, Lat: 36.0, Altitude: 20, Label: LabelRiverNode},
		{ID: 1, Lon: 135.000001, Lat: 35.000001, Altitude: 11, Label: LabelRiverNode},
		{ID: 3, Lon: 137.0, Lat: 37.0, Altitude: 30, Label: LabelRiverNode},
		{ID: 2, Lon: 136.0, Lat: 36.0, Altitude: 20, Label: LabelRiverNode},
	}
	if err := w.Append(in); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	kept, dropped, err := Deduplicate(path)
	if err != nil {
		t.Fatalf("Deduplicate error: %v", err)
	}
	if kept != 3 || dropped != 2 {
		t.Errorf("kept %d, dropped %d; want 3, 2", kept, dropped)
	}

	nodes, err := ReadNodes(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	// First record wins for a duplicated ID.
	if nodes[0].Altitude != 10 {
		t.Errorf("node 1 altitude = %v, want the first record's 10", nodes[0].Altitude)
	}
}

func TestReadNodesRejectsBadRows(t *testing.T) {
	const header = "hilbert18:ID,location:point{crs:WGS-84},altitude,:LABEL\n"
	tests := []struct {
		name    string
		content string
	}{
		{"bad id", header + "xyz,\"{longitude:1,latitude:2}\",0,RiverNode\n"},
		{"bad location", header + "1,nowhere,0,RiverNode\n"},
		{"unknown location key", header + "1,\"{lng:1,latitude:2}\",0,RiverNode\n"},
		{"bad altitude", header + "1,\"{longitude:1,latitude:2}\",tall,RiverNode\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nodes.csv")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := ReadNodes(path); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}
