package metric

import "math"

// Vec3 represents a 3D coordinate
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns the component-wise difference v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v scaled by s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Length returns the Euclidean norm of v
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Cross returns the cross product v × o
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns v scaled to unit length.
// Returns fallback when v is too short to normalize reliably.
func (v Vec3) Normalize(fallback Vec3) Vec3 {
	l := v.Length()
	if l < 1e-12 {
		return fallback
	}
	return v.Scale(1.0 / l)
}

// Lerp returns the linear interpolation between v and o at parameter t
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

// IsFinite reports whether all components are finite numbers
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Vertex is a point in the metric space. Position contributes the Euclidean
// term of the metric; Weight and Curvature contribute the attribute terms.
// Vertices are immutable once created: regeneration replaces the whole set.
type Vertex struct {
	Position  Vec3    `json:"position"`
	Weight    float64 `json:"weight"`
	Curvature float64 `json:"curvature"`
}

// EdgeKind classifies how a connected vertex pair is interpolated
type EdgeKind int

const (
	// EdgeQuadratic marks a near pair (distance < threshold/2), drawn as a parabolic arc
	EdgeQuadratic EdgeKind = iota
	// EdgeMobius marks a far pair (threshold/2 <= distance < threshold), drawn with a sinusoidal warp
	EdgeMobius
)

// String returns a human-readable kind name
func (k EdgeKind) String() string {
	switch k {
	case EdgeQuadratic:
		return "quadratic"
	case EdgeMobius:
		return "mobius"
	}
	return "unknown"
}

// Edge connects vertex indices I < J with the classification derived from
// their metric distance. Edges are recomputed from scratch on every
// relevant change, never patched incrementally.
type Edge struct {
	I        int      `json:"i"`
	J        int      `json:"j"`
	Kind     EdgeKind `json:"kind"`
	Distance float64  `json:"distance"`
}

// Curve is the ordered sample sequence approximating one edge's connection
type Curve []Vec3

// SurfaceMesh is a closed triangle mesh over the spherical parameter domain.
// Positions, Normals, and UVs run row-major over the (thetaRes+1)×(phiRes+1)
// sample grid; Indices reference that grid as triangles.
type SurfaceMesh struct {
	Positions []Vec3
	Normals   []Vec3
	UVs       [][2]float64
	Indices   []uint32
	ThetaRes  int
	PhiRes    int
}

// Parameters holds the full tunable configuration. The first block feeds
// the metric and curve generation; the visual block only affects rendering
// and is ignored by the engine (see ParameterStore for the distinction).
type Parameters struct {
	Alpha              float64 `yaml:"alpha" json:"alpha"`                           // Euclidean term coefficient
	Beta               float64 `yaml:"beta" json:"beta"`                             // curvature term coefficient
	Gamma              float64 `yaml:"gamma" json:"gamma"`                           // weight term coefficient
	Threshold          float64 `yaml:"threshold" json:"threshold"`                   // connectivity cutoff, must be > 0
	MinCurvatureRadius float64 `yaml:"minCurvatureRadius" json:"minCurvatureRadius"` // lower clamp for arc elevation
	MaxCurvatureRadius float64 `yaml:"maxCurvatureRadius" json:"maxCurvatureRadius"` // upper clamp for arc elevation
	ComplexityFactor   float64 `yaml:"complexityFactor" json:"complexityFactor"`     // scales curve warp and surface modulation

	// Visual-only parameters, passed through to the presentation layer.
	PointSize        float64 `yaml:"pointSize" json:"pointSize"`
	LineOpacity      float64 `yaml:"lineOpacity" json:"lineOpacity"`
	SurfaceOpacity   float64 `yaml:"surfaceOpacity" json:"surfaceOpacity"`
	RotationSpeed    float64 `yaml:"rotationSpeed" json:"rotationSpeed"`
	ChladniFrequency float64 `yaml:"chladniFrequency" json:"chladniFrequency"`
	ChladniAmplitude float64 `yaml:"chladniAmplitude" json:"chladniAmplitude"`
	MobiusReal       float64 `yaml:"mobiusReal" json:"mobiusReal"`
	MobiusImag       float64 `yaml:"mobiusImag" json:"mobiusImag"`
}

// DefaultParameters returns the documented defaults for all parameters
func DefaultParameters() Parameters {
	return Parameters{
		Alpha:              1.0,
		Beta:               0.5,
		Gamma:              0.2,
		Threshold:          5.0,
		MinCurvatureRadius: 0.5,
		MaxCurvatureRadius: 2.0,
		ComplexityFactor:   1.0,

		PointSize:        0.15,
		LineOpacity:      0.8,
		SurfaceOpacity:   0.35,
		RotationSpeed:    0.25,
		ChladniFrequency: 4.0,
		ChladniAmplitude: 0.5,
		MobiusReal:       1.0,
		MobiusImag:       0.0,
	}
}

// Validate checks all parameters. A negative metric coefficient would push
// the squared distance below zero and turn every distance into NaN, so the
// coefficients must be non-negative, not merely finite.
// Returns an *InvalidParameterError describing the first violation found.
func (p Parameters) Validate() error {
	coefficients := []struct {
		name  string
		value float64
	}{
		{"alpha", p.Alpha},
		{"beta", p.Beta},
		{"gamma", p.Gamma},
	}
	for _, c := range coefficients {
		if c.value < 0 || !isFinite(c.value) {
			return &InvalidParameterError{Field: c.name, Value: c.value, Reason: "must be non-negative and finite"}
		}
	}
	if p.Threshold <= 0 || !isFinite(p.Threshold) {
		return &InvalidParameterError{Field: "threshold", Value: p.Threshold, Reason: "must be positive and finite"}
	}
	if p.MinCurvatureRadius < 0 || !isFinite(p.MinCurvatureRadius) {
		return &InvalidParameterError{Field: "minCurvatureRadius", Value: p.MinCurvatureRadius, Reason: "must be non-negative and finite"}
	}
	if p.MaxCurvatureRadius < p.MinCurvatureRadius || !isFinite(p.MaxCurvatureRadius) {
		return &InvalidParameterError{Field: "maxCurvatureRadius", Value: p.MaxCurvatureRadius, Reason: "must be >= minCurvatureRadius and finite"}
	}
	if !isFinite(p.ComplexityFactor) {
		return &InvalidParameterError{Field: "complexityFactor", Value: p.ComplexityFactor, Reason: "must be finite"}
	}
	visuals := []struct {
		name  string
		value float64
	}{
		{"pointSize", p.PointSize},
		{"lineOpacity", p.LineOpacity},
		{"surfaceOpacity", p.SurfaceOpacity},
		{"rotationSpeed", p.RotationSpeed},
		{"chladniFrequency", p.ChladniFrequency},
		{"chladniAmplitude", p.ChladniAmplitude},
		{"mobiusReal", p.MobiusReal},
		{"mobiusImag", p.MobiusImag},
	}
	for _, v := range visuals {
		if !isFinite(v.value) {
			return &InvalidParameterError{Field: v.name, Value: v.value, Reason: "must be finite"}
		}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
