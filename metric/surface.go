package metric

import (
	"log"
	"math"
)

// NormalEpsilon is the parameter step used for the finite-difference
// surface normals. Large enough to avoid cancellation error at low grid
// resolutions, small enough to track the radius modulation.
const NormalEpsilon = 1e-4

// GenerateSurface builds a closed triangle mesh over the spherical
// parameter domain theta ∈ [0,π], phi ∈ [0,2π], centered at the vertex
// centroid. The radius at each grid sample is the maximum metric distance
// from the centroid, modulated by sin(theta)·cos(phi) and the mean
// weight influence of the vertex set:
//
//	r(θ,φ) = maxDistance · (1 + sinθ·cosφ · weightInfluence · complexityFactor)
//	weightInfluence = mean(weight_k · exp(-distance(center, v_k)))
//
// Normals come from central finite differences of the position mapping
// (cross product of the θ and φ partials), oriented outward, with a radial
// unit fallback for degenerate samples (the poles, where the φ partial
// vanishes). Returns ErrEmptyVertexSet when no vertices exist.
func GenerateSurface(vertices []Vertex, p Parameters, thetaRes, phiRes int) (*SurfaceMesh, error) {
	if thetaRes < 2 || phiRes < 2 {
		return nil, &InvalidParameterError{Field: "thetaRes/phiRes", Value: float64(min(thetaRes, phiRes)), Reason: "surface resolution must be at least 2"}
	}

	center, err := Centroid(vertices)
	if err != nil {
		return nil, err
	}

	maxDistance := 0.0
	weightInfluence := 0.0
	for _, v := range vertices {
		d := Distance(center, v, p)
		if d > maxDistance {
			maxDistance = d
		}
		weightInfluence += v.Weight * math.Exp(-d)
	}
	weightInfluence /= float64(len(vertices))

	if maxDistance < degenerateDenominator {
		// All vertices coincide with the centroid; fall back to a unit
		// base radius so the mesh stays non-degenerate.
		log.Printf("metric: degenerate surface base radius, falling back to 1.0")
		maxDistance = 1.0
	}

	radius := func(theta, phi float64) float64 {
		radialFactor := math.Sin(theta) * math.Cos(phi)
		return maxDistance * (1 + radialFactor*weightInfluence*p.ComplexityFactor)
	}
	position := func(theta, phi float64) Vec3 {
		r := radius(theta, phi)
		sinT := math.Sin(theta)
		return Vec3{
			X: center.Position.X + r*sinT*math.Cos(phi),
			Y: center.Position.Y + r*sinT*math.Sin(phi),
			Z: center.Position.Z + r*math.Cos(theta),
		}
	}

	rows := thetaRes + 1
	cols := phiRes + 1
	mesh := &SurfaceMesh{
		Positions: make([]Vec3, 0, rows*cols),
		Normals:   make([]Vec3, 0, rows*cols),
		UVs:       make([][2]float64, 0, rows*cols),
		Indices:   make([]uint32, 0, thetaRes*phiRes*6),
		ThetaRes:  thetaRes,
		PhiRes:    phiRes,
	}

	for i := 0; i < rows; i++ {
		theta := math.Pi * float64(i) / float64(thetaRes)
		for j := 0; j < cols; j++ {
			phi := 2 * math.Pi * float64(j) / float64(phiRes)

			pt := position(theta, phi)

			// Central differences of the position mapping.
			dTheta := position(theta+NormalEpsilon, phi).Sub(position(theta-NormalEpsilon, phi)).Scale(1 / (2 * NormalEpsilon))
			dPhi := position(theta, phi+NormalEpsilon).Sub(position(theta, phi-NormalEpsilon)).Scale(1 / (2 * NormalEpsilon))

			radial := pt.Sub(center.Position).Normalize(Vec3{Z: 1})
			normal := dTheta.Cross(dPhi).Normalize(radial)
			if normal.X*radial.X+normal.Y*radial.Y+normal.Z*radial.Z < 0 {
				normal = normal.Scale(-1)
			}

			mesh.Positions = append(mesh.Positions, pt)
			mesh.Normals = append(mesh.Normals, normal)
			mesh.UVs = append(mesh.UVs, [2]float64{float64(j) / float64(phiRes), float64(i) / float64(thetaRes)})
		}
	}

	// Two triangles per grid cell.
	for i := 0; i < thetaRes; i++ {
		for j := 0; j < phiRes; j++ {
			a := uint32(i*cols + j)
			b := a + 1
			c := uint32((i+1)*cols + j)
			d := c + 1
			mesh.Indices = append(mesh.Indices, a, c, b, b, c, d)
		}
	}

	return mesh, nil
}
