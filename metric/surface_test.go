package metric

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestGenerateSurfaceEmpty(t *testing.T) {
	_, err := GenerateSurface(nil, DefaultParameters(), 8, 8)
	if !errors.Is(err, ErrEmptyVertexSet) {
		t.Errorf("GenerateSurface(empty) error = %v, want ErrEmptyVertexSet", err)
	}
}

func TestGenerateSurfaceResolutionValidation(t *testing.T) {
	vertices := fixtureVertices()
	for _, res := range [][2]int{{1, 8}, {8, 1}, {0, 0}} {
		_, err := GenerateSurface(vertices, DefaultParameters(), res[0], res[1])
		if !IsInvalidParameter(err) {
			t.Errorf("GenerateSurface(res=%v) error = %v, want InvalidParameterError", res, err)
		}
	}
}

func TestGenerateSurfaceGrid(t *testing.T) {
	thetaRes, phiRes := 8, 12
	mesh, err := GenerateSurface(fixtureVertices(), fixtureParams(), thetaRes, phiRes)
	if err != nil {
		t.Fatalf("GenerateSurface() error: %v", err)
	}

	wantVerts := (thetaRes + 1) * (phiRes + 1)
	if len(mesh.Positions) != wantVerts {
		t.Errorf("positions = %d, want %d", len(mesh.Positions), wantVerts)
	}
	if len(mesh.Normals) != wantVerts {
		t.Errorf("normals = %d, want %d", len(mesh.Normals), wantVerts)
	}
	if len(mesh.UVs) != wantVerts {
		t.Errorf("uvs = %d, want %d", len(mesh.UVs), wantVerts)
	}
	if wantIdx := thetaRes * phiRes * 6; len(mesh.Indices) != wantIdx {
		t.Errorf("indices = %d, want %d", len(mesh.Indices), wantIdx)
	}

	// Surface closure: every index must reference an in-range grid vertex.
	for k, idx := range mesh.Indices {
		if int(idx) >= wantVerts {
			t.Fatalf("index[%d] = %d out of range [0,%d)", k, idx, wantVerts)
		}
	}

	for i, uv := range mesh.UVs {
		if uv[0] < 0 || uv[0] > 1 || uv[1] < 0 || uv[1] > 1 {
			t.Errorf("uv[%d] = %v outside [0,1]²", i, uv)
		}
	}
}

func TestGenerateSurfaceNormals(t *testing.T) {
	mesh, err := GenerateSurface(fixtureVertices(), fixtureParams(), 16, 16)
	if err != nil {
		t.Fatalf("GenerateSurface() error: %v", err)
	}

	center, _ := Centroid(fixtureVertices())
	for i, n := range mesh.Normals {
		if !n.IsFinite() {
			t.Fatalf("normal[%d] = %v is not finite", i, n)
		}
		if l := n.Length(); math.Abs(l-1) > 1e-6 {
			t.Errorf("normal[%d] length = %v, want 1", i, l)
		}
		// Outward orientation: normals point away from the centroid.
		radial := mesh.Positions[i].Sub(center.Position)
		if dot := n.X*radial.X + n.Y*radial.Y + n.Z*radial.Z; dot < 0 {
			t.Errorf("normal[%d] points inward (dot %v)", i, dot)
		}
	}
}

func TestGenerateSurfaceRadiusModulation(t *testing.T) {
	vertices := fixtureVertices()
	params := fixtureParams()
	mesh, err := GenerateSurface(vertices, params, 8, 8)
	if err != nil {
		t.Fatalf("GenerateSurface() error: %v", err)
	}

	center, _ := Centroid(vertices)
	maxDistance := 0.0
	weightInfluence := 0.0
	for _, v := range vertices {
		d := Distance(center, v, params)
		if d > maxDistance {
			maxDistance = d
		}
		weightInfluence += v.Weight * math.Exp(-d)
	}
	weightInfluence /= float64(len(vertices))

	// Every sample radius must stay within the modulation envelope.
	amplitude := math.Abs(weightInfluence * params.ComplexityFactor)
	for i, pt := range mesh.Positions {
		r := pt.Sub(center.Position).Length()
		lo := maxDistance*(1-amplitude) - 1e-9
		hi := maxDistance*(1+amplitude) + 1e-9
		if r < lo || r > hi {
			t.Errorf("radius[%d] = %v outside envelope [%v, %v]", i, r, lo, hi)
		}
	}
}

// A vertex set whose every member coincides with the centroid collapses
// maxDistance to zero; the fallback base radius must keep the mesh finite
// instead of emitting a degenerate point cloud.
func TestGenerateSurfaceDegenerateBase(t *testing.T) {
	vertices := []Vertex{{Position: Vec3{X: 1, Y: 2, Z: 3}}}
	mesh, err := GenerateSurface(vertices, DefaultParameters(), 4, 4)
	if err != nil {
		t.Fatalf("GenerateSurface() error: %v", err)
	}
	for i, pt := range mesh.Positions {
		if !pt.IsFinite() {
			t.Fatalf("position[%d] = %v is not finite", i, pt)
		}
		if r := pt.Sub(Vec3{X: 1, Y: 2, Z: 3}).Length(); !almostEqual(r, 1.0) {
			t.Errorf("degenerate surface radius[%d] = %v, want fallback 1.0", i, r)
		}
	}
}

func TestGenerateSurfaceDeterminism(t *testing.T) {
	a, err := GenerateSurface(fixtureVertices(), fixtureParams(), 8, 8)
	if err != nil {
		t.Fatalf("GenerateSurface() error: %v", err)
	}
	b, _ := GenerateSurface(fixtureVertices(), fixtureParams(), 8, 8)
	if !reflect.DeepEqual(a, b) {
		t.Error("GenerateSurface() is not deterministic for identical inputs")
	}
}
