package metric

import "math"

// DefaultCurveSamples is the default number of interpolation steps per
// curve; a curve has DefaultCurveSamples+1 points with t inclusive of 0 and 1.
const DefaultCurveSamples = 20

// mobiusFactorCap bounds the sinusoidal warp frequency so curves stay
// finite and visually stable for distances approaching the threshold.
const mobiusFactorCap = 2.0

// GenerateCurve samples the connection between v1 and v2 according to the
// edge kind. The result has samples+1 points with t = i/samples running 0→1,
// so the first point coincides with v1's position and the last with v2's.
//
// Quadratic edges are parabolic arcs: the straight interpolant elevated
// along Y by an elevation factor derived from the summed curvatures,
// clamped to [minCurvatureRadius, maxCurvatureRadius], weighted 4t(1-t).
//
// Mobius edges warp the straight interpolant laterally in x/y with
// sin/cos(t·π·mobiusFactor), where mobiusFactor = min(d/threshold, 2).
// The warp carries a sin(π·t) endpoint envelope so both endpoints stay
// exact. Output is bit-reproducible for identical inputs.
func GenerateCurve(v1, v2 Vertex, kind EdgeKind, samples int, p Parameters) Curve {
	if samples < 1 {
		samples = DefaultCurveSamples
	}

	curve := make(Curve, 0, samples+1)

	switch kind {
	case EdgeQuadratic:
		elevation := clamp(
			math.Abs(v1.Curvature+v2.Curvature)*p.ComplexityFactor,
			p.MinCurvatureRadius,
			p.MaxCurvatureRadius,
		)
		for i := 0; i <= samples; i++ {
			t := float64(i) / float64(samples)
			pt := v1.Position.Lerp(v2.Position, t)
			pt.Y += elevation * 4 * t * (1 - t)
			curve = append(curve, pt)
		}

	case EdgeMobius:
		d := Distance(v1, v2, p)
		mobiusFactor := math.Min(d/p.Threshold, mobiusFactorCap)
		for i := 0; i <= samples; i++ {
			t := float64(i) / float64(samples)
			pt := v1.Position.Lerp(v2.Position, t)
			envelope := math.Sin(math.Pi*t) * p.ComplexityFactor
			pt.X += envelope * math.Sin(t*math.Pi*mobiusFactor)
			pt.Y += envelope * math.Cos(t*math.Pi*mobiusFactor)
			curve = append(curve, pt)
		}
	}

	return curve
}

// GenerateCurves produces one curve per edge, in edge order
func GenerateCurves(vertices []Vertex, edges []Edge, samples int, p Parameters) []Curve {
	curves := make([]Curve, len(edges))
	for i, e := range edges {
		curves[i] = GenerateCurve(vertices[e.I], vertices[e.J], e.Kind, samples, p)
	}
	return curves
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
