package metric

import "math"

// degenerateDenominator is the cutoff below which the weight-term
// denominator is treated as zero instead of dividing.
const degenerateDenominator = 1e-10

// Distance computes the composite metric between two vertices:
//
//	sqrt(alpha*euclid² + beta*curvatureTerm² + gamma*weightTerm²)
//
// The weight term is normalized by max(w1, w2) so that weight contrast is
// relative rather than absolute; when the denominator is degenerate (both
// weights ~0, e.g. the synthetic centroid vertex against another synthetic
// point) the term is 0, not NaN.
//
// The function is pure, deterministic, symmetric, and non-negative, with
// Distance(v, v) == 0.
func Distance(a, b Vertex, p Parameters) float64 {
	d := a.Position.Sub(b.Position)
	euclidSq := d.X*d.X + d.Y*d.Y + d.Z*d.Z

	curvatureTerm := math.Abs(a.Curvature - b.Curvature)

	weightTerm := 0.0
	if maxW := math.Max(a.Weight, b.Weight); maxW > degenerateDenominator {
		weightTerm = math.Abs(a.Weight-b.Weight) / maxW
	}

	return math.Sqrt(p.Alpha*euclidSq + p.Beta*curvatureTerm*curvatureTerm + p.Gamma*weightTerm*weightTerm)
}

// Centroid returns the arithmetic mean of all vertex positions as a
// synthetic vertex with zero weight and curvature.
func Centroid(vertices []Vertex) (Vertex, error) {
	if len(vertices) == 0 {
		return Vertex{}, ErrEmptyVertexSet
	}
	var sum Vec3
	for _, v := range vertices {
		sum = sum.Add(v.Position)
	}
	return Vertex{Position: sum.Scale(1.0 / float64(len(vertices)))}, nil
}
