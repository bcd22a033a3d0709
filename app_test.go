package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwv/metricfield/metric"
)

func TestNewAppDefaults(t *testing.T) {
	app, err := NewApp(AppOptions{Count: -1})
	require.NoError(t, err)

	assert.Equal(t, 30, app.Engine.VertexCount())
	assert.Equal(t, metric.DefaultParameters(), app.Store.Get())
}

func TestNewAppOverrides(t *testing.T) {
	app, err := NewApp(AppOptions{Count: 5, Seed: 42, Format: "png", ThetaRes: 16, PhiRes: 16})
	require.NoError(t, err)

	assert.Equal(t, 5, app.Engine.VertexCount())
	assert.Equal(t, "png", app.Config.Preview.Format)
	assert.Equal(t, 16, app.Config.Scene.ThetaRes)
}

func TestNewAppSeedDeterminism(t *testing.T) {
	a, err := NewApp(AppOptions{Count: 10, Seed: 7})
	require.NoError(t, err)
	b, err := NewApp(AppOptions{Count: 10, Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, a.Engine.Snapshot(), b.Engine.Snapshot())
}

func TestNewAppRejectsBadFormat(t *testing.T) {
	_, err := NewApp(AppOptions{Count: -1, Format: "jpeg"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

func TestNewAppLoadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
parameters:
  threshold: 2.0
scene:
  vertexCount: 8
  seed: 3
`), 0o644))

	app, err := NewApp(AppOptions{ConfigFile: path, Count: -1})
	require.NoError(t, err)
	assert.Equal(t, 8, app.Engine.VertexCount())
	assert.Equal(t, 2.0, app.Store.Get().Threshold)
}

func TestApplyParametersRoutesGeometryChanges(t *testing.T) {
	app, err := NewApp(AppOptions{Count: 20, Seed: 11})
	require.NoError(t, err)
	before := app.Engine.Snapshot()

	// Visual-only change leaves the engine untouched.
	change, err := app.ApplyParameters(map[string]float64{"pointSize": 0.4})
	require.NoError(t, err)
	assert.Equal(t, metric.ChangeVisual, change.Kind)
	assert.Equal(t, before.Params, app.Engine.Parameters())

	// Geometry change pushes new parameters into the engine.
	change, err = app.ApplyParameters(map[string]float64{"threshold": 1.0})
	require.NoError(t, err)
	assert.Equal(t, metric.ChangeGeometry, change.Kind)
	assert.Equal(t, 1.0, app.Engine.Parameters().Threshold)
}

func TestRunRenderWritesFiles(t *testing.T) {
	dir := t.TempDir()
	app, err := NewApp(AppOptions{
		Count:      6,
		Seed:       5,
		Format:     "both",
		OutputFile: filepath.Join(dir, "preview"),
		ThetaRes:   8,
		PhiRes:     8,
	})
	require.NoError(t, err)

	require.NoError(t, app.RunRender())

	for _, ext := range []string{".svg", ".png"} {
		info, err := os.Stat(filepath.Join(dir, "preview"+ext))
		require.NoError(t, err, "expected preview%s to exist", ext)
		assert.Greater(t, info.Size(), int64(0))
	}
}
