package dataset

// Deduplicate rewrites a node file keeping the first record seen for each
// distinct ID. Duplicate records arise from vertices shared across tile
// boundaries and across fetch batches; their positions may differ by
// sub-pixel amounts, so any one of them is a valid representative.
func Deduplicate(path string) (kept, dropped int, err error) {
	nodes, err := ReadNodes(path)
	if err != nil {
		return 0, 0, err
	}

	seen := make(map[uint32]struct{}, len(nodes))
	unique := nodes[:0]
	for _, n := range nodes {
		if _, ok := seen[n.ID]; ok {
			dropped++
			continue
		}
		seen[n.ID] = struct{}{}
		unique = append(unique, n)
	}

	w, err := CreateNodeFile(path)
	if err != nil {
		return 0, 0, err
	}
	if err := w.Append(unique); err != nil {
		w.Close()
		return 0, 0, err
	}
	if err := w.Close(); err != nil {
		return 0, 0, err
	}
	return len(unique), dropped, nil
}
