package metric

import (
	"sort"
	"sync"
)

// ChangeKind classifies the impact of a parameter update so the host layer
// can decide between a cheap visual refresh and a full geometry recompute.
type ChangeKind int

const (
	// ChangeNone means no known field actually changed value
	ChangeNone ChangeKind = iota
	// ChangeVisual means only rendering-side fields changed
	ChangeVisual
	// ChangeGeometry means at least one metric/curve field changed and the
	// engine must recompute connectivity, curves, and surface
	ChangeGeometry
)

// String returns a human-readable change kind name
func (k ChangeKind) String() string {
	switch k {
	case ChangeVisual:
		return "visual"
	case ChangeGeometry:
		return "geometry"
	}
	return "none"
}

// Change describes the outcome of one parameter update: which fields
// changed and the strongest recompute requirement among them.
type Change struct {
	Kind   ChangeKind
	Fields []string
}

// geometryKeys are the fields whose change invalidates connectivity,
// curves, and the surface. Everything else known is visual-only.
var geometryKeys = map[string]bool{
	"alpha":              true,
	"beta":               true,
	"gamma":              true,
	"threshold":          true,
	"minCurvatureRadius": true,
	"maxCurvatureRadius": true,
	"complexityFactor":   true,
}

// ParameterStore holds the current parameter values and turns raw updates
// into discrete, classified change events. It deliberately has no
// subscriber list: the host applies an update, inspects the returned
// Change, and decides itself whether to re-invoke the engine.
type ParameterStore struct {
	mu     sync.RWMutex
	params Parameters
}

// NewParameterStore creates a store seeded with the given parameters
func NewParameterStore(params Parameters) *ParameterStore {
	return &ParameterStore{params: params}
}

// Get returns the current parameter snapshot
func (s *ParameterStore) Get() Parameters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// Apply updates the named fields. Unknown keys are tolerated and ignored.
// The whole update is validated against the parameter constraints before
// taking effect; on validation failure the prior state is kept and the
// error returned. The returned Change lists the fields that actually
// changed value, sorted, with the strongest recompute classification.
func (s *ParameterStore) Apply(updates map[string]float64) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := s.params
	var changed []string

	for key, value := range updates {
		field := fieldRef(&candidate, key)
		if field == nil {
			continue
		}
		if *field != value {
			*field = value
			changed = append(changed, key)
		}
	}

	if len(changed) == 0 {
		return Change{Kind: ChangeNone}, nil
	}

	if err := candidate.Validate(); err != nil {
		return Change{Kind: ChangeNone}, err
	}

	s.params = candidate
	sort.Strings(changed)

	kind := ChangeVisual
	for _, key := range changed {
		if geometryKeys[key] {
			kind = ChangeGeometry
			break
		}
	}

	return Change{Kind: kind, Fields: changed}, nil
}

// fieldRef maps an update key to the matching Parameters field, or nil for
// unknown keys. Key names follow the YAML/JSON tags.
func fieldRef(p *Parameters, key string) *float64 {
	switch key {
	case "alpha":
		return &p.Alpha
	case "beta":
		return &p.Beta
	case "gamma":
		return &p.Gamma
	case "threshold":
		return &p.Threshold
	case "minCurvatureRadius":
		return &p.MinCurvatureRadius
	case "maxCurvatureRadius":
		return &p.MaxCurvatureRadius
	case "complexityFactor":
		return &p.ComplexityFactor
	case "pointSize":
		return &p.PointSize
	case "lineOpacity":
		return &p.LineOpacity
	case "surfaceOpacity":
		return &p.SurfaceOpacity
	case "rotationSpeed":
		return &p.RotationSpeed
	case "chladniFrequency":
		return &p.ChladniFrequency
	case "chladniAmplitude":
		return &p.ChladniAmplitude
	case "mobiusReal":
		return &p.MobiusReal
	case "mobiusImag":
		return &p.MobiusImag
	}
	return nil
}
