// Package game drives the particle scene: it owns the ECS world, the camera
// and the clock, and runs the per-tick systems in a fixed order.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/telemetry"
)

// State is the lifecycle state of a Game.
type State uint8

const (
	StateIdle    State = iota // Constructed, not yet ticking
	StateRunning              // Started; there is no terminal state
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Renderer draws one frame. The frame is only valid during the call.
type Renderer interface {
	Render(frame *renderer.Frame)
}

// Anchors looks up anchor rectangles by key.
type Anchors = systems.AnchorSource

// Options configures a Game.
type Options struct {
	Config   *config.Config // nil uses config.Cfg()
	Seed     int64          // 0 = time-based
	Renderer Renderer       // nil discards frames
	Anchors  Anchors        // May be set later with SetAnchors
	Images   ImageSource    // nil reads files and http(s) URLs

	OutputDir string // CSV telemetry directory, empty disables
	LogStats  bool   // Log window stats via slog
}

// Game holds the complete scene state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand
	cam   *camera.Camera

	// Field mappers and filters
	backgroundMap    *ecs.Map4[components.Field, components.Transform, components.Style, components.Attractor]
	imageMap         *ecs.Map5[components.Field, components.Transform, components.Style, components.Wave, components.Anchored]
	backgroundFilter *ecs.Filter4[components.Field, components.Transform, components.Style, components.Attractor]
	imageFilter      *ecs.Filter4[components.Field, components.Transform, components.Style, components.Anchored]

	// Systems in tick order
	attractor   *systems.AttractorSystem
	color       *systems.ColorSystem
	wave        *systems.WaveSystem
	projector   *systems.ProjectorSystem
	orientation *systems.OrientationSystem

	visibility *Visibility
	loader     *imageLoader
	render     Renderer

	// State
	state     State
	tick      int32
	elapsed   float64 // Wall clock seconds of ticks so far
	simSpeed  float64
	post      renderer.PostFX
	colorMode string
	frame     renderer.Frame

	// Telemetry
	registry      *systems.SystemRegistry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
}

// NewGameWithOptions creates a game in the Idle state with the background
// field seeded.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	mapper, err := systems.NewColorMapper(cfg.Color)
	if err != nil {
		return nil, fmt.Errorf("color mapper: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("telemetry output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	world := ecs.NewWorld()

	cam := camera.New(cfg.Derived.FOVRadians, cfg.Camera.Zoom, float64(cfg.Screen.Width), float64(cfg.Screen.Height))
	cam.Near, cam.Far = cfg.Camera.Near, cfg.Camera.Far

	images := opts.Images
	if images == nil {
		images = FileSource{}
	}

	render := opts.Renderer
	if render == nil {
		render = &renderer.Null{}
	}

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rng,
		cam:   cam,

		backgroundMap:    ecs.NewMap4[components.Field, components.Transform, components.Style, components.Attractor](world),
		imageMap:         ecs.NewMap5[components.Field, components.Transform, components.Style, components.Wave, components.Anchored](world),
		backgroundFilter: ecs.NewFilter4[components.Field, components.Transform, components.Style, components.Attractor](world),
		imageFilter:      ecs.NewFilter4[components.Field, components.Transform, components.Style, components.Anchored](world),

		attractor: systems.NewAttractorSystem(world, attractorParams(cfg), rng),
		color:     systems.NewColorSystem(world, mapper),
		wave: systems.NewWaveSystem(world, systems.WaveParams{
			Speed:     cfg.Images.OscillationSpeed,
			Amplitude: cfg.Images.OscillationAmplitude,
			Jitter:    cfg.Images.Jitter,
		}, rng),
		projector: systems.NewProjectorSystem(world, opts.Anchors),
		orientation: systems.NewOrientationSystem(world, systems.OrientationParams{
			SpinY:      cfg.Motion.SpinY,
			SpinZ:      cfg.Motion.SpinZ,
			Ease:       cfg.Motion.ParallaxEase,
			MouseScale: cfg.Motion.MouseScale,
		}),

		visibility: NewVisibility(opts.Anchors, cfg.Images.LazyMargin),
		loader: newImageLoader(images, systems.SamplerParams{
			Target:             cfg.Images.ParticleCount,
			Resolution:         cfg.Images.Resolution,
			AlphaThreshold:     cfg.Images.AlphaThreshold,
			LuminanceThreshold: cfg.Images.LuminanceThreshold,
			MaxAttempts:        cfg.Derived.MaxAttempts,
		}, cfg.Images.QueueSize, cfg.Images.MaxConcurrent),
		render: render,

		state:     StateIdle,
		simSpeed:  cfg.Background.SimulationSpeed,
		colorMode: cfg.Color.Mode,
		post: renderer.PostFX{
			BloomStrength:  cfg.Post.BloomStrength,
			BloomThreshold: cfg.Post.BloomThreshold,
			BloomRadius:    cfg.Post.BloomRadius,
			TrailDecay:     cfg.Post.TrailDecay,
		},

		registry:      systems.NewSystemRegistry(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		outputManager: om,
		logStats:      opts.LogStats,
	}

	g.spawnBackground()

	slog.Info("game created",
		"seed", seed,
		"background_particles", cfg.Background.ParticleCount,
		"color_mode", cfg.Color.Mode,
	)
	return g, nil
}

func attractorParams(cfg *config.Config) systems.AttractorParams {
	return systems.AttractorParams{
		NoiseStrength:    cfg.Background.NoiseStrength,
		Diffusion:        cfg.Background.Diffusion,
		ResetProbability: cfg.Background.ResetProbability,
		Bounds:           cfg.Background.Bounds,
	}
}

// spawnBackground creates the attractor field.
func (g *Game) spawnBackground() {
	field := systems.SeedBackground(g.cfg.Background.ParticleCount, g.cfg.Background.Bounds, g.rng)
	tr := components.Identity()
	style := components.Style{
		Size:     float32(g.cfg.Background.ParticleSize),
		Opacity:  float32(g.cfg.Background.Opacity),
		Additive: true,
	}
	attr := components.Attractor{}
	g.backgroundMap.NewEntity(&field, &tr, &style, &attr)
}

// spawnImageField creates an image field from accepted samples.
func (g *Game) spawnImageField(key string, samples []systems.Sample) int {
	field, wave := systems.NewImageField(samples, g.rng)
	tr := components.Identity()
	style := components.Style{
		Size:     float32(g.cfg.Images.ParticleSize),
		Opacity:  float32(g.cfg.Images.Opacity),
		Additive: true,
	}
	anc := components.Anchored{Key: key}
	g.imageMap.NewEntity(&field, &tr, &style, &wave, &anc)
	return field.Len()
}

// Start moves the game to Running. Calling it again has no effect.
func (g *Game) Start() {
	if g.state == StateRunning {
		return
	}
	g.state = StateRunning
	slog.Info("game started", "tick", g.tick)
}

// State returns the lifecycle state.
func (g *Game) State() State {
	return g.state
}

// Tick advances the scene by delta wall clock seconds and renders one
// frame. The first tick starts the game.
func (g *Game) Tick(delta float64) {
	g.Start()

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(systems.PhaseImages)
	g.updateImages()

	g.perfCollector.StartPhase(systems.PhaseAttractor)
	if resets := g.attractor.Update(delta * g.simSpeed); resets > 0 {
		g.collector.Record(telemetry.NewResetEvent(g.tick, resets))
	}

	g.perfCollector.StartPhase(systems.PhaseColor)
	g.color.Update(g.cam.Orientation)

	g.perfCollector.StartPhase(systems.PhaseWave)
	g.wave.Update(g.elapsed)

	g.perfCollector.StartPhase(systems.PhaseProjector)
	if _, missing := g.projector.Update(g.cam); missing > 0 {
		g.collector.Record(telemetry.NewAnchorMissingEvent(g.tick, missing))
	}

	g.perfCollector.StartPhase(systems.PhaseOrientation)
	g.orientation.Update()

	g.perfCollector.StartPhase(systems.PhaseRender)
	g.render.Render(g.buildFrame(delta))

	g.perfCollector.EndTick()
	g.perfCollector.RecordFrame()

	g.tick++
	g.elapsed += delta
	g.collector.RecordFrame(delta)
	g.flushTelemetry()
}

// updateImages fires lazy loads for anchors near the viewport and adds
// fields for loads that finished since the last tick.
func (g *Game) updateImages() {
	g.visibility.Check(g.cam.Viewport())

	for _, res := range g.loader.drain() {
		if res.err != nil {
			slog.Debug("image skipped", "key", res.key, "url", res.url, "error", res.err)
			g.collector.Record(telemetry.NewImageFailedEvent(g.tick, res.key))
			continue
		}
		n := g.spawnImageField(res.key, res.samples)
		slog.Debug("image field added", "key", res.key, "particles", n)
		g.collector.Record(telemetry.NewImageLoadedEvent(g.tick, res.key, n))
	}
}

// buildFrame collects field views, background first. Image fields whose
// anchor was missing this tick are left out.
func (g *Game) buildFrame(delta float64) *renderer.Frame {
	f := &g.frame
	f.Camera = g.cam
	f.Post = g.post
	f.Delta = delta
	f.Tick = g.tick
	f.Fields = f.Fields[:0]

	bq := g.backgroundFilter.Query()
	for bq.Next() {
		field, tr, style, _ := bq.Get()
		f.Fields = append(f.Fields, renderer.FieldView{
			Kind:      field.Kind,
			Particles: field.Particles,
			Transform: *tr,
			Style:     *style,
		})
	}

	iq := g.imageFilter.Query()
	for iq.Next() {
		field, tr, style, anc := iq.Get()
		if !anc.Visible {
			continue
		}
		f.Fields = append(f.Fields, renderer.FieldView{
			Kind:      field.Kind,
			Particles: field.Particles,
			Transform: *tr,
			Style:     *style,
		})
	}
	return f
}

// AddImage registers an image for key. It is loaded once the anchor first
// comes near the viewport.
func (g *Game) AddImage(key, url string) {
	g.visibility.Observe(key, func() {
		g.collector.Record(telemetry.NewImageQueuedEvent(g.tick, key))
		slog.Debug("image queued", "key", key, "url", url)
		g.loader.start(key, url, g.rng.Int63())
	})
}

// SetAnchors replaces the anchor source used for projection and lazy loading.
func (g *Game) SetAnchors(a Anchors) {
	g.projector.SetAnchors(a)
	g.visibility.SetAnchors(a)
}

// SetRenderer replaces the renderer.
func (g *Game) SetRenderer(r Renderer) {
	g.render = r
}

// SetMouse updates the parallax target from a cursor position in pixels.
func (g *Game) SetMouse(x, y float64) {
	g.orientation.SetMouse(x, y, g.cam.ViewportW, g.cam.ViewportH)
}

// Resize updates the camera to a new viewport size.
func (g *Game) Resize(width, height float64) {
	g.cam.Resize(width, height)
}

// SetPost replaces the post-processing parameters.
func (g *Game) SetPost(p renderer.PostFX) {
	g.post = p
}

// Post returns the post-processing parameters.
func (g *Game) Post() renderer.PostFX {
	return g.post
}

// SetSimulationSpeed sets the wall clock to integration time factor.
func (g *Game) SetSimulationSpeed(v float64) {
	g.simSpeed = v
}

// SimulationSpeed returns the wall clock to integration time factor.
func (g *Game) SimulationSpeed() float64 {
	return g.simSpeed
}

// SetColorMode switches the color strategy of the background.
func (g *Game) SetColorMode(mode string) error {
	c := g.cfg.Color
	c.Mode = mode
	m, err := systems.NewColorMapper(c)
	if err != nil {
		return err
	}
	g.color.SetMapper(m)
	g.colorMode = mode
	return nil
}

// ColorMode returns the active color strategy.
func (g *Game) ColorMode() string {
	return g.colorMode
}

// Camera returns the scene camera.
func (g *Game) Camera() *camera.Camera {
	return g.cam
}

// Registry returns the phase registry.
func (g *Game) Registry() *systems.SystemRegistry {
	return g.registry
}

// PerfStats returns the rolling per-phase timings.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// TickCount returns the number of ticks run.
func (g *Game) TickCount() int32 {
	return g.tick
}

// Elapsed returns the wall clock seconds ticked so far.
func (g *Game) Elapsed() float64 {
	return g.elapsed
}

// Counts returns particle and field counts.
func (g *Game) Counts() telemetry.FieldCounts {
	var c telemetry.FieldCounts

	bq := g.backgroundFilter.Query()
	for bq.Next() {
		field, _, _, _ := bq.Get()
		c.BackgroundParticles += field.Len()
	}

	iq := g.imageFilter.Query()
	for iq.Next() {
		field, _, _, _ := iq.Get()
		c.ImageFields++
		c.ImageParticles += field.Len()
	}
	return c
}

// Unload stops image loading and closes telemetry output. In-flight
// decodes finish in the background and are dropped.
func (g *Game) Unload() {
	g.loader.close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close telemetry output", "error", err)
	}
}
