// Package dataset reads and writes the CSV files consumed by downstream
// graph-import jobs. Column headers and row encodings are fixed by those
// jobs and must not change.
package dataset

// Node labels distinguishing ingested points from boundary markers.
const (
	LabelRiverNode = "RiverNode"
	LabelBoundNode = "BoundNode"
)

// Relation types of the persisted edge files.
const (
	TypeRiverLink = "RIVER_LINK"
	TypeDelaunay  = "DELAUNAY"
	TypeMember    = "MEMBER"
	TypeChild     = "CHILD"
)

// Node is one point record of the node dataset.
type Node struct {
	ID       uint32
	Lon, Lat float64
	Altitude float32
	Label    string
}

// Link is one weighted centerline segment between two nodes.
type Link struct {
	From, To uint32
	LengthKm float64
}
