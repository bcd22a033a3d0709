package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kwv/metricfield/metric"
)

// AppOptions carries the parsed CLI flags
type AppOptions struct {
	ConfigFile string
	Count      int
	Seed       int64
	Format     string
	OutputFile string
	ThetaRes   int
	PhiRes     int
}

// App encapsulates the application state and dependencies
type App struct {
	Config *metric.SceneConfig
	Store  *metric.ParameterStore
	Engine *metric.Engine
}

// NewApp loads the scene configuration, applies CLI overrides, and builds
// the engine with the initial vertex set computed.
func NewApp(opts AppOptions) (*App, error) {
	config, err := loadConfig(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	if opts.Count >= 0 {
		config.Scene.VertexCount = opts.Count
	}
	if opts.Seed != 0 {
		config.Scene.Seed = opts.Seed
	}
	if opts.Format != "" {
		config.Preview.Format = opts.Format
	}
	if opts.OutputFile != "" {
		config.Preview.Output = opts.OutputFile
	}
	if opts.ThetaRes > 0 {
		config.Scene.ThetaRes = opts.ThetaRes
	}
	if opts.PhiRes > 0 {
		config.Scene.PhiRes = opts.PhiRes
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	engine, err := metric.NewEngine(config.Parameters, config.EngineConfigFor())
	if err != nil {
		return nil, err
	}
	if err := engine.Regenerate(config.Scene.VertexCount); err != nil {
		return nil, err
	}

	return &App{
		Config: config,
		Store:  metric.NewParameterStore(config.Parameters),
		Engine: engine,
	}, nil
}

func loadConfig(path string) (*metric.SceneConfig, error) {
	if path == "" {
		config := metric.DefaultSceneConfig()
		return &config, nil
	}
	return metric.LoadSceneConfig(path)
}

// ApplyParameters routes a parameter update through the store and triggers
// an engine recompute only when a geometry-affecting field changed.
func (a *App) ApplyParameters(updates map[string]float64) (metric.Change, error) {
	change, err := a.Store.Apply(updates)
	if err != nil {
		return change, err
	}
	if change.Kind == metric.ChangeGeometry {
		if err := a.Engine.SetParameters(a.Store.Get()); err != nil {
			return change, err
		}
	}
	return change, nil
}

// RunSummary prints connectivity, curve, and buffer statistics
func (a *App) RunSummary() error {
	snap := a.Engine.Snapshot()

	quadratic, mobius := 0, 0
	for _, e := range snap.Edges {
		if e.Kind == metric.EdgeQuadratic {
			quadratic++
		} else {
			mobius++
		}
	}

	fmt.Printf("Vertices: %d\n", len(snap.Vertices))
	fmt.Printf("Edges: %d (%d quadratic, %d mobius)\n", len(snap.Edges), quadratic, mobius)
	fmt.Printf("Threshold: %.2f (alpha=%.2f beta=%.2f gamma=%.2f)\n",
		snap.Params.Threshold, snap.Params.Alpha, snap.Params.Beta, snap.Params.Gamma)

	surface, err := a.Engine.Surface(a.Config.Scene.ThetaRes, a.Config.Scene.PhiRes)
	if err != nil {
		return fmt.Errorf("generating surface: %w", err)
	}

	buffers := metric.BuildBuffers(snap, surface)
	fmt.Printf("Surface: %dx%d grid, %d vertices, %d triangles\n",
		surface.ThetaRes, surface.PhiRes, len(surface.Positions), len(surface.Indices)/3)
	fmt.Printf("Buffers: %d point floats, %d line floats, %d surface floats\n",
		len(buffers.Points.Positions), len(buffers.Lines.Positions), len(buffers.Surface.Positions))

	return nil
}

// RunRender writes the static preview in the configured format(s)
func (a *App) RunRender() error {
	snap := a.Engine.Snapshot()

	surface, err := a.Engine.Surface(a.Config.Scene.ThetaRes, a.Config.Scene.PhiRes)
	if err != nil {
		return fmt.Errorf("generating surface: %w", err)
	}

	renderer := metric.NewPreviewRenderer(snap, surface)
	renderer.Scale = a.Config.Preview.Scale
	renderer.Padding = a.Config.Preview.Padding
	renderer.LabelVertices = a.Config.Preview.LabelVertices

	base := strings.TrimSuffix(a.Config.Preview.Output, ".svg")
	base = strings.TrimSuffix(base, ".png")

	writeFormat := func(ext string, renderFn func(w io.Writer) error) error {
		path := base + ext
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		if err := renderFn(f); err != nil {
			return fmt.Errorf("rendering %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	if a.Config.Preview.Format == "svg" || a.Config.Preview.Format == "both" {
		if err := writeFormat(".svg", renderer.RenderToSVG); err != nil {
			return err
		}
	}
	if a.Config.Preview.Format == "png" || a.Config.Preview.Format == "both" {
		if err := writeFormat(".png", renderer.RenderToPNG); err != nil {
			return err
		}
	}
	return nil
}

// RunDumpConfig prints the effective scene configuration as YAML
func (a *App) RunDumpConfig() error {
	data, err := yaml.Marshal(a.Config)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
