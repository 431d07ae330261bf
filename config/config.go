// Package config provides configuration loading and access for the background.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all background configuration parameters.
type Config struct {
	Enabled    bool             `yaml:"enabled"`
	Screen     ScreenConfig     `yaml:"screen"`
	Camera     CameraConfig     `yaml:"camera"`
	Background BackgroundConfig `yaml:"background"`
	Color      ColorConfig      `yaml:"color"`
	Images     ImagesConfig     `yaml:"images"`
	Post       PostConfig       `yaml:"post"`
	Motion     MotionConfig     `yaml:"motion"`
	Content    ContentConfig    `yaml:"content"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// CameraConfig holds the perspective camera settings.
type CameraConfig struct {
	FOV  float64 `yaml:"fov"`  // Vertical field of view in degrees
	Zoom float64 `yaml:"zoom"` // Camera distance to the z=0 image plane
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`
}

// BackgroundConfig holds the attractor field parameters.
type BackgroundConfig struct {
	ParticleCount    int     `yaml:"particle_count"`
	ParticleSize     float64 `yaml:"particle_size"`
	Opacity          float64 `yaml:"opacity"`
	Bounds           float64 `yaml:"bounds"`            // Side of the spawn/reset cube
	SimulationSpeed  float64 `yaml:"simulation_speed"`  // Wall clock seconds -> integration dt
	NoiseStrength    float64 `yaml:"noise_strength"`    // Per-derivative perturbation
	Diffusion        float64 `yaml:"diffusion"`         // Random walk added after the derivative
	ResetProbability float64 `yaml:"reset_probability"` // Per particle per frame
}

// RGB255 is a color with channels on the 0-255 scale.
type RGB255 struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// ColorConfig selects and parameterises the velocity color map.
type ColorConfig struct {
	Mode          string  `yaml:"mode"`           // doppler, hue or solid
	VelocityScale float64 `yaml:"velocity_scale"` // How much velocity affects the color transition
	Approaching   RGB255  `yaml:"approaching"`
	Neutral       RGB255  `yaml:"neutral"`
	Receding      RGB255  `yaml:"receding"`
	Base          RGB255  `yaml:"base"`       // hue and solid modes
	Saturation    float64 `yaml:"saturation"` // hue mode
	Value         float64 `yaml:"value"`      // hue mode
}

// ImagesConfig holds image point-cloud parameters.
type ImagesConfig struct {
	ParticleCount        int     `yaml:"particle_count"`
	ParticleSize         float64 `yaml:"particle_size"`
	Opacity              float64 `yaml:"opacity"`
	Resolution           int     `yaml:"resolution"`          // Downsample raster side in pixels
	AlphaThreshold       int     `yaml:"alpha_threshold"`     // Reject alpha <= this
	LuminanceThreshold   int     `yaml:"luminance_threshold"` // Reject r+g+b <= this
	MaxAttemptsFactor    int     `yaml:"max_attempts_factor"` // Retry budget = target * factor
	OscillationSpeed     float64 `yaml:"oscillation_speed"`
	OscillationAmplitude float64 `yaml:"oscillation_amplitude"`
	Jitter               float64 `yaml:"jitter"`
	LazyMargin           float64 `yaml:"lazy_margin"`    // Pixels around the viewport that trigger loading
	QueueSize            int     `yaml:"queue_size"`     // Buffered finished loads
	MaxConcurrent        int     `yaml:"max_concurrent"` // Decodes running at once
}

// PostConfig holds post-processing parameters.
type PostConfig struct {
	BloomStrength  float64 `yaml:"bloom_strength"`
	BloomThreshold float64 `yaml:"bloom_threshold"`
	BloomRadius    float64 `yaml:"bloom_radius"`
	TrailDecay     float64 `yaml:"trail_decay"` // 0 = no trails, 0.99 = near infinite trails
}

// MotionConfig holds field orientation parameters.
type MotionConfig struct {
	SpinY        float64 `yaml:"spin_y"`        // Radians per frame
	SpinZ        float64 `yaml:"spin_z"`        // Radians per frame
	ParallaxEase float64 `yaml:"parallax_ease"` // Exponential smoothing factor per frame
	MouseScale   float64 `yaml:"mouse_scale"`   // Pixels from center -> target radians
}

// ContentConfig holds the publication list sources.
type ContentConfig struct {
	BaseURL         string        `yaml:"base_url"` // Directory or http(s) prefix
	Bibliography    string        `yaml:"bibliography"`
	Intro           string        `yaml:"intro"`
	ImageDir        string        `yaml:"image_dir"`
	DefaultPreview  string        `yaml:"default_preview"`
	HighlightAuthor string        `yaml:"highlight_author"`
	Timeout         time.Duration `yaml:"timeout"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of wall clock per window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FOVRadians  float64 // Camera.FOV in radians
	Aspect      float64 // Screen.Width / Screen.Height
	MaxAttempts int     // Images.ParticleCount * Images.MaxAttemptsFactor
}

// envOverrides are applied after the YAML layers. Unset variables stay nil.
type envOverrides struct {
	Enabled         *bool    `env:"DRIFT_ENABLED"`
	ParticleCount   *int     `env:"DRIFT_PARTICLE_COUNT"`
	SimulationSpeed *float64 `env:"DRIFT_SIMULATION_SPEED"`
	ColorMode       *string  `env:"DRIFT_COLOR_MODE"`
	TrailDecay      *float64 `env:"DRIFT_TRAIL_DECAY"`
	ContentBaseURL  *string  `env:"DRIFT_CONTENT_BASE_URL"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
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

// Default returns a fresh copy of the embedded defaults without env overrides.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	cfg.computeDerived()
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then applies DRIFT_* environment overrides.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// applyEnv overlays DRIFT_* environment variables.
func (c *Config) applyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	if o.Enabled != nil {
		c.Enabled = *o.Enabled
	}
	if o.ParticleCount != nil {
		c.Background.ParticleCount = *o.ParticleCount
	}
	if o.SimulationSpeed != nil {
		c.Background.SimulationSpeed = *o.SimulationSpeed
	}
	if o.ColorMode != nil {
		c.Color.Mode = *o.ColorMode
	}
	if o.TrailDecay != nil {
		c.Post.TrailDecay = *o.TrailDecay
	}
	if o.ContentBaseURL != nil {
		c.Content.BaseURL = *o.ContentBaseURL
	}
	return nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Background.ParticleCount < 0 || c.Images.ParticleCount < 0 {
		return fmt.Errorf("particle counts must be >= 0")
	}
	if c.Background.ResetProbability < 0 || c.Background.ResetProbability > 1 {
		return fmt.Errorf("background.reset_probability %v outside [0,1]", c.Background.ResetProbability)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov %v outside (0,180)", c.Camera.FOV)
	}
	if c.Images.Resolution <= 0 {
		return fmt.Errorf("images.resolution must be > 0")
	}
	switch c.Color.Mode {
	case "doppler", "hue", "solid":
	default:
		return fmt.Errorf("unknown color.mode %q", c.Color.Mode)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FOVRadians = c.Camera.FOV * math.Pi / 180
	c.Derived.Aspect = 1
	if c.Screen.Height > 0 {
		c.Derived.Aspect = float64(c.Screen.Width) / float64(c.Screen.Height)
	}

	factor := c.Images.MaxAttemptsFactor
	if factor < 1 {
		factor = 1
	}
	c.Derived.MaxAttempts = c.Images.ParticleCount * factor
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
