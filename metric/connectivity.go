package metric

// ComputeEdges derives the full edge set from the vertex list and the
// current parameters. Every unordered pair (i, j) with i < j is compared;
// a pair is connected iff its metric distance is below the threshold, and
// classified quadratic iff the distance is below half the threshold.
// A distance exactly at threshold/2 classifies as mobius.
//
// O(N²) pairwise comparisons with no spatial index; vertex counts are
// interactive-scale (a few to a few hundred). The result fully replaces
// any previously computed edge set.
func ComputeEdges(vertices []Vertex, p Parameters) []Edge {
	edges := make([]Edge, 0)
	half := p.Threshold / 2

	for i := 0; i < len(vertices); i++ {
		for j := i + 1; j < len(vertices); j++ {
			d := Distance(vertices[i], vertices[j], p)
			if d >= p.Threshold {
				continue
			}
			kind := EdgeMobius
			if d < half {
				kind = EdgeQuadratic
			}
			edges = append(edges, Edge{I: i, J: j, Kind: kind, Distance: d})
		}
	}

	return edges
}
