package tileindex

import (
	"testing"

	"river_graph/pkg/geo"
)

func TestHierarchySingleChain(t *testing.T) {
	entities, families := Hierarchy([]geo.Tile{{X: 5, Y: 10, Zoom: 4}})

	wantEntities := []geo.Tile{
		{X: 5, Y: 10, Zoom: 4},
		{X: 2, Y: 5, Zoom: 3},
		{X: 1, Y: 2, Zoom: 2},
		{X: 0, Y: 1, Zoom: 1},
		{X: 0, Y: 0, Zoom: 0},
	}
	if len(entities) != len(wantEntities) {
		t.Fatalf("got %d entities, want %d: %v", len(entities), len(wantEntities), entities)
	}
	for i := range wantEntities {
		if entities[i] != wantEntities[i] {
			t.Errorf("entities[%d] = %+v, want %+v", i, entities[i], wantEntities[i])
		}
	}

	if len(families) != 4 {
		t.Fatalf("got %d families, want 4: %v", len(families), families)
	}
	for i, f := range families {
		if f.Parent != f.Child.Parent() {
			t.Errorf("families[%d] = %+v: parent is not the child's parent tile", i, f)
		}
		if f.Parent.Zoom != f.Child.Zoom-1 {
			t.Errorf("families[%d] = %+v: zoom levels are not adjacent", i, f)
		}
	}
}

func TestHierarchySharedParent(t *testing.T) {
	entities, families := Hierarchy([]geo.Tile{
		{X: 4, Y: 10, Zoom: 4},
		{X: 5, Y: 10, Zoom: 4},
	})

	// Siblings fold into one shared parent: 2 finest tiles plus a single
	// chain of 4 ancestors.
	if len(entities) != 6 {
		t.Errorf("got %d entities, want 6: %v", len(entities), entities)
	}
	// One relation per (parent, child) pair: 2 at the finest level, then 3
	// single-child folds.
	if len(families) != 5 {
		t.Errorf("got %d families, want 5: %v", len(families), families)
	}

	root := geo.Tile{X: 0, Y: 0, Zoom: 0}
	var hasRoot bool
	for _, e := range entities {
		if e == root {
			hasRoot = true
		}
	}
	if !hasRoot {
		t.Error("root tile 0-0-0 missing from entities")
	}
}

func TestHierarchyEmpty(t *testing.T) {
	entities, families := Hierarchy(nil)
	if len(entities) != 0 || len(families) != 0 {
		t.Errorf("got %d entities, %d families; want none", len(entities), len(families))
	}
}
