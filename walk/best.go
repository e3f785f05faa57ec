package walk

// bestPerTailSubgraph reduces paths to one per terminal subgraph — the
// cheapest — per spec.md §4.3.3/§4.3.4's findBestPathsPerSubgraph. Ties
// keep the first-discovered path (search order is LIFO, spec.md §4.3.5).
func bestPerTailSubgraph(paths []*OperationPath) []*OperationPath {
	best := make(map[string]*OperationPath)
	var order []string

	for _, p := range paths {
		key := p.Tail().SubgraphID
		cur, ok := best[key]
		if !ok {
			best[key] = p
			order = append(order, key)
			continue
		}
		if p.Cost < cur.Cost {
			best[key] = p
		}
	}

	out := make([]*OperationPath, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

// minCost returns the cheapest path, breaking ties by first occurrence.
func minCost(paths []*OperationPath) *OperationPath {
	if len(paths) == 0 {
		return nil
	}
	best := paths[0]
	for _, p := range paths[1:] {
		if p.Cost < best.Cost {
			best = p
		}
	}
	return best
}
