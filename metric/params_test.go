package metric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterStoreGeometryChange(t *testing.T) {
	store := NewParameterStore(DefaultParameters())

	change, err := store.Apply(map[string]float64{"threshold": 3.0, "alpha": 2.0})
	require.NoError(t, err)
	assert.Equal(t, ChangeGeometry, change.Kind)
	assert.Equal(t, []string{"alpha", "threshold"}, change.Fields)

	params := store.Get()
	assert.Equal(t, 3.0, params.Threshold)
	assert.Equal(t, 2.0, params.Alpha)
}

func TestParameterStoreVisualOnlyChange(t *testing.T) {
	store := NewParameterStore(DefaultParameters())

	change, err := store.Apply(map[string]float64{"pointSize": 0.3, "surfaceOpacity": 0.5})
	require.NoError(t, err)
	assert.Equal(t, ChangeVisual, change.Kind)
	assert.Equal(t, []string{"pointSize", "surfaceOpacity"}, change.Fields)
}

func TestParameterStoreMixedChangeIsGeometry(t *testing.T) {
	store := NewParameterStore(DefaultParameters())

	change, err := store.Apply(map[string]float64{"lineOpacity": 0.1, "complexityFactor": 1.5})
	require.NoError(t, err)
	assert.Equal(t, ChangeGeometry, change.Kind)
}

func TestParameterStoreUnknownKeysTolerated(t *testing.T) {
	store := NewParameterStore(DefaultParameters())

	change, err := store.Apply(map[string]float64{"notAField": 42, "cameraFov": 60})
	require.NoError(t, err)
	assert.Equal(t, ChangeNone, change.Kind)
	assert.Empty(t, change.Fields)
}

func TestParameterStoreNoOpUpdate(t *testing.T) {
	store := NewParameterStore(DefaultParameters())

	// Same value as current: nothing actually changed.
	change, err := store.Apply(map[string]float64{"threshold": DefaultParameters().Threshold})
	require.NoError(t, err)
	assert.Equal(t, ChangeNone, change.Kind)
}

func TestParameterStoreRejectsInvalidUpdate(t *testing.T) {
	store := NewParameterStore(DefaultParameters())

	// The whole update is rejected, including the valid alpha change.
	change, err := store.Apply(map[string]float64{"threshold": -1, "alpha": 3.0})
	require.Error(t, err)
	assert.True(t, IsInvalidParameter(err))
	assert.Equal(t, ChangeNone, change.Kind)

	params := store.Get()
	assert.Equal(t, DefaultParameters().Threshold, params.Threshold)
	assert.Equal(t, DefaultParameters().Alpha, params.Alpha)
}

func TestParameterStoreRejectsNegativeCoefficient(t *testing.T) {
	store := NewParameterStore(DefaultParameters())

	// A negative alpha would make the squared distance negative and every
	// distance NaN, which connects all pairs regardless of threshold.
	change, err := store.Apply(map[string]float64{"alpha": -1})
	require.Error(t, err)
	assert.True(t, IsInvalidParameter(err))
	assert.Equal(t, ChangeNone, change.Kind)

	params := store.Get()
	assert.Equal(t, DefaultParameters().Alpha, params.Alpha)

	d := Distance(vtx(0, 0, 0, 1, 0.2), vtx(2, 1, 0, 0.8, 0.3), params)
	assert.False(t, math.IsNaN(d))
	assert.GreaterOrEqual(t, d, 0.0)
}

func TestParameterStoreRejectsNonFiniteVisual(t *testing.T) {
	store := NewParameterStore(DefaultParameters())

	change, err := store.Apply(map[string]float64{"pointSize": math.NaN()})
	require.Error(t, err)
	assert.True(t, IsInvalidParameter(err))
	assert.Equal(t, ChangeNone, change.Kind)
	assert.Equal(t, DefaultParameters().PointSize, store.Get().PointSize)
}

func TestDefaultParametersValid(t *testing.T) {
	require.NoError(t, DefaultParameters().Validate())
}

func TestParametersValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Parameters)
		field  string
	}{
		{"negative alpha", func(p *Parameters) { p.Alpha = -1 }, "alpha"},
		{"negative beta", func(p *Parameters) { p.Beta = -0.5 }, "beta"},
		{"negative gamma", func(p *Parameters) { p.Gamma = -0.2 }, "gamma"},
		{"NaN alpha", func(p *Parameters) { p.Alpha = math.NaN() }, "alpha"},
		{"infinite gamma", func(p *Parameters) { p.Gamma = math.Inf(1) }, "gamma"},
		{"zero threshold", func(p *Parameters) { p.Threshold = 0 }, "threshold"},
		{"negative threshold", func(p *Parameters) { p.Threshold = -2 }, "threshold"},
		{"negative min radius", func(p *Parameters) { p.MinCurvatureRadius = -0.1 }, "minCurvatureRadius"},
		{"max below min radius", func(p *Parameters) { p.MaxCurvatureRadius = 0.1 }, "maxCurvatureRadius"},
		{"NaN point size", func(p *Parameters) { p.PointSize = math.NaN() }, "pointSize"},
		{"infinite line opacity", func(p *Parameters) { p.LineOpacity = math.Inf(1) }, "lineOpacity"},
		{"NaN mobius real", func(p *Parameters) { p.MobiusReal = math.NaN() }, "mobiusReal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParameters()
			tt.mutate(&params)
			err := params.Validate()
			require.Error(t, err)
			var ipe *InvalidParameterError
			require.ErrorAs(t, err, &ipe)
			assert.Equal(t, tt.field, ipe.Field)
		})
	}
}
