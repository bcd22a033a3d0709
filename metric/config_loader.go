package metric

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneSettings controls vertex generation and surface resolution
type SceneSettings struct {
	VertexCount  int     `yaml:"vertexCount" json:"vertexCount"`
	Seed         int64   `yaml:"seed" json:"seed"` // 0 means time-based seeding
	CurveSamples int     `yaml:"curveSamples" json:"curveSamples"`
	Extent       float64 `yaml:"extent" json:"extent"`
	ThetaRes     int     `yaml:"thetaRes" json:"thetaRes"`
	PhiRes       int     `yaml:"phiRes" json:"phiRes"`
}

// PreviewSettings controls the static preview renderer output
type PreviewSettings struct {
	Format        string  `yaml:"format" json:"format"` // "svg", "png", or "both"
	Output        string  `yaml:"output" json:"output"`
	Scale         float64 `yaml:"scale" json:"scale"`     // world units → canvas mm
	Padding       float64 `yaml:"padding" json:"padding"` // world units
	LabelVertices bool    `yaml:"labelVertices" json:"labelVertices"`
}

// SceneConfig is the full YAML scene description
type SceneConfig struct {
	Parameters Parameters      `yaml:"parameters" json:"parameters"`
	Scene      SceneSettings   `yaml:"scene" json:"scene"`
	Preview    PreviewSettings `yaml:"preview" json:"preview"`
}

// DefaultSceneConfig returns a fully populated default configuration
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Parameters: DefaultParameters(),
		Scene: SceneSettings{
			VertexCount:  30,
			CurveSamples: DefaultCurveSamples,
			Extent:       5.0,
			ThetaRes:     32,
			PhiRes:       32,
		},
		Preview: PreviewSettings{
			Format:        "svg",
			Output:        "field.svg",
			Scale:         10.0,
			Padding:       1.0,
			LabelVertices: true,
		},
	}
}

// LoadSceneConfig loads a scene configuration from a YAML file.
// Missing fields keep their documented defaults; unknown fields are
// tolerated and ignored. The merged result is validated before returning.
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("scene config not found: %s", path)
		}
		return nil, fmt.Errorf("reading scene config: %w", err)
	}

	// Unmarshal over the defaults so absent fields keep their values.
	config := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing scene config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveSceneConfig writes the scene configuration to a YAML file
func SaveSceneConfig(path string, config *SceneConfig) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling scene config YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing scene config: %w", err)
	}
	return nil
}

// Validate checks the merged configuration
func (c *SceneConfig) Validate() error {
	if err := c.Parameters.Validate(); err != nil {
		return err
	}
	if c.Scene.VertexCount < 0 {
		return fmt.Errorf("scene.vertexCount must be >= 0, got %d", c.Scene.VertexCount)
	}
	if c.Scene.CurveSamples < 1 {
		return fmt.Errorf("scene.curveSamples must be >= 1, got %d", c.Scene.CurveSamples)
	}
	if c.Scene.Extent <= 0 {
		return fmt.Errorf("scene.extent must be > 0, got %g", c.Scene.Extent)
	}
	if c.Scene.ThetaRes < 2 || c.Scene.PhiRes < 2 {
		return fmt.Errorf("scene surface resolution must be >= 2, got %dx%d", c.Scene.ThetaRes, c.Scene.PhiRes)
	}
	switch c.Preview.Format {
	case "svg", "png", "both":
	default:
		return fmt.Errorf("preview.format must be svg, png, or both, got %q", c.Preview.Format)
	}
	return nil
}

// EngineConfigFor builds an EngineConfig from the scene settings.
// A zero seed keeps the default time-based RNG.
func (c *SceneConfig) EngineConfigFor() EngineConfig {
	ec := DefaultEngineConfig()
	ec.CurveSamples = c.Scene.CurveSamples
	ec.Extent = c.Scene.Extent
	if c.Scene.Seed != 0 {
		ec.RNG = NewSeededRNG(c.Scene.Seed)
	}
	return ec
}
