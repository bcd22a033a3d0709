package metric

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// EngineConfig holds construction-time settings for the engine.
// Spatial values are in world units (the same units as vertex positions).
type EngineConfig struct {
	CurveSamples int        // Interpolation steps per curve (points = steps+1)
	Extent       float64    // Generated positions fall in [-Extent, Extent] per axis
	MinWeight    float64    // Lower bound for generated vertex weights (must be > 0)
	MaxWeight    float64    // Upper bound for generated vertex weights
	MaxCurvature float64    // Generated curvatures fall in [0, MaxCurvature)
	RNG          *rand.Rand // Random source for regeneration; seed it for deterministic scenes
}

// NewSeededRNG returns a deterministic random source for reproducible scenes
func NewSeededRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// DefaultEngineConfig returns sensible defaults for engine construction
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		CurveSamples: DefaultCurveSamples,
		Extent:       5.0,
		MinWeight:    0.1,
		MaxWeight:    2.0,
		MaxCurvature: 1.0,
		RNG:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Snapshot is an immutable copy of the engine's computed state.
// Curves run parallel to Edges: Curves[k] samples Edges[k].
type Snapshot struct {
	Vertices []Vertex
	Edges    []Edge
	Curves   []Curve
	Params   Parameters
}

// Engine owns the vertex set and everything derived from it: the edge set,
// the per-edge curves, and surface generation. All derived state is
// recomputed from scratch inside one synchronous pass whenever the vertex
// set or a geometry-affecting parameter changes; readers only ever see
// fully-consistent snapshots.
type Engine struct {
	mu       sync.RWMutex
	config   EngineConfig
	params   Parameters
	vertices []Vertex
	edges    []Edge
	curves   []Curve
}

// NewEngine creates an engine with the given parameters and config.
// Parameters are validated up front; a non-positive threshold never
// reaches connectivity computation.
func NewEngine(params Parameters, config EngineConfig) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if config.CurveSamples < 1 {
		config.CurveSamples = DefaultCurveSamples
	}
	if config.RNG == nil {
		config.RNG = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{config: config, params: params}, nil
}

// Regenerate replaces the entire vertex set with count randomly generated
// vertices and recomputes all derived state. count may be 0, which clears
// the scene; surface generation on an empty scene returns ErrEmptyVertexSet.
func (e *Engine) Regenerate(count int) error {
	if count < 0 {
		return fmt.Errorf("metric: regenerate count must be >= 0, got %d", count)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	vertices := make([]Vertex, count)
	for i := range vertices {
		vertices[i] = Vertex{
			Position: Vec3{
				X: (e.config.RNG.Float64()*2 - 1) * e.config.Extent,
				Y: (e.config.RNG.Float64()*2 - 1) * e.config.Extent,
				Z: (e.config.RNG.Float64()*2 - 1) * e.config.Extent,
			},
			Weight:    e.config.MinWeight + e.config.RNG.Float64()*(e.config.MaxWeight-e.config.MinWeight),
			Curvature: e.config.RNG.Float64() * e.config.MaxCurvature,
		}
	}

	e.vertices = vertices
	e.recomputeLocked()
	return nil
}

// SetVertices replaces the vertex set with an explicit list.
// Vertices are validated (positive finite weight, finite coordinates);
// on error the prior state is kept untouched.
func (e *Engine) SetVertices(vertices []Vertex) error {
	for i, v := range vertices {
		if !v.Position.IsFinite() {
			return &InvalidParameterError{Field: fmt.Sprintf("vertex[%d].position", i), Reason: "coordinates must be finite"}
		}
		if v.Weight <= 0 || !isFinite(v.Weight) {
			return &InvalidParameterError{Field: fmt.Sprintf("vertex[%d].weight", i), Value: v.Weight, Reason: "must be positive and finite"}
		}
		if !isFinite(v.Curvature) {
			return &InvalidParameterError{Field: fmt.Sprintf("vertex[%d].curvature", i), Value: v.Curvature, Reason: "must be finite"}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.vertices = append([]Vertex(nil), vertices...)
	e.recomputeLocked()
	return nil
}

// SetParameters swaps in a new parameter snapshot and recomputes.
// Invalid parameters are rejected and the prior state is kept.
func (e *Engine) SetParameters(params Parameters) error {
	if err := params.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.params = params
	e.recomputeLocked()
	return nil
}

// recomputeLocked rebuilds edges and curves from the current vertices and
// parameters. Caller must hold the write lock.
func (e *Engine) recomputeLocked() {
	e.edges = ComputeEdges(e.vertices, e.params)
	e.curves = GenerateCurves(e.vertices, e.edges, e.config.CurveSamples, e.params)
}

// Snapshot returns a deep copy of the current computed state
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap := Snapshot{
		Vertices: append([]Vertex(nil), e.vertices...),
		Edges:    append([]Edge(nil), e.edges...),
		Curves:   make([]Curve, len(e.curves)),
		Params:   e.params,
	}
	for i, c := range e.curves {
		snap.Curves[i] = append(Curve(nil), c...)
	}
	return snap
}

// Parameters returns the current parameter snapshot
func (e *Engine) Parameters() Parameters {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params
}

// VertexCount returns the current number of vertices
func (e *Engine) VertexCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.vertices)
}

// Surface generates the parametric surface for the current vertex set.
// Returns ErrEmptyVertexSet when the scene has no vertices.
func (e *Engine) Surface(thetaRes, phiRes int) (*SurfaceMesh, error) {
	e.mu.RLock()
	vertices := append([]Vertex(nil), e.vertices...)
	params := e.params
	e.mu.RUnlock()

	return GenerateSurface(vertices, params, thetaRes, phiRes)
}
