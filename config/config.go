// Package config provides configuration loading and access for the map
// generation core.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every parameter bundle the generation core's stages read
// from (spec.md §6 "Parameter bundle").
type Config struct {
	Mesh      MeshConfig      `yaml:"mesh"`
	Elevation ElevationConfig `yaml:"elevation"`
	Biomes    BiomesConfig    `yaml:"biomes"`
	Rivers    RiversConfig    `yaml:"rivers"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// MeshConfig controls point generation (C4).
type MeshConfig struct {
	Spacing         float64 `yaml:"spacing"`
	MountainSpacing float64 `yaml:"mountain_spacing"`
	Curvature       float64 `yaml:"curvature"`
}

// ElevationConfig controls the noise cache, mountain distance, and
// elevation pipeline (C5-C7).
type ElevationConfig struct {
	Seed              int64   `yaml:"seed"`
	Island            float64 `yaml:"island"`
	NoisyCoastlines   float64 `yaml:"noisy_coastlines"`
	HillHeight        float64 `yaml:"hill_height"`
	MountainJagged    float64 `yaml:"mountain_jagged"`
	MountainSharpness float64 `yaml:"mountain_sharpness"`
	OceanDepth        float64 `yaml:"ocean_depth"`
}

// BiomesConfig controls the rainfall pipeline (C8).
type BiomesConfig struct {
	WindAngleDeg float64 `yaml:"wind_angle_deg"`
	Raininess    float64 `yaml:"raininess"`
	RainShadow   float64 `yaml:"rain_shadow"`
	Evaporation  float64 `yaml:"evaporation"`
}

// RiversConfig controls the rivers pipeline and river geometry (C9-C10).
type RiversConfig struct {
	LgMinFlow   float64 `yaml:"lg_min_flow"`
	LgRiverWidth float64 `yaml:"lg_river_width"`
	Flow        float64 `yaml:"flow"`
}

// DerivedConfig holds values computed once after load so hot-path stages
// never recompute them (mirrors the teacher's DT32/NumInputs pattern).
type DerivedConfig struct {
	WindDirX, WindDirY float64 // unit vector from Biomes.WindAngleDeg
	MinFlow            float64 // exp(Rivers.LgMinFlow)
	RiverWidth         float64 // exp(Rivers.LgRiverWidth)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if cfg.Mesh.MountainSpacing <= cfg.Mesh.Spacing || cfg.Mesh.Spacing <= 0 {
		return nil, fmt.Errorf("config: mesh.mountain_spacing (%v) must be greater than mesh.spacing (%v), both positive", cfg.Mesh.MountainSpacing, cfg.Mesh.Spacing)
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Reduce first so a full turn (360) gives exactly the 0 vector.
	angle := math.Mod(c.Biomes.WindAngleDeg, 360) * math.Pi / 180
	c.Derived.WindDirX = math.Cos(angle)
	c.Derived.WindDirY = math.Sin(angle)
	c.Derived.MinFlow = math.Exp(c.Rivers.LgMinFlow)
	c.Derived.RiverWidth = math.Exp(c.Rivers.LgRiverWidth)
}
