package main

import (
	"context"
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/renderer"
)

// Coverage grid over the viewport.
const (
	gridCols = 16
	gridRows = 10
)

// coverageRenderer bins projected background particles into a screen grid.
// Frames before warmup are ignored.
type coverageRenderer struct {
	warmup int32

	frames   int
	onscreen float64 // Sum of per-frame onscreen fractions
	spread   float64 // Sum of per-frame normalized grid entropy
	hist     [gridCols * gridRows]float64
}

func (r *coverageRenderer) Render(f *renderer.Frame) {
	if f.Tick < r.warmup || len(f.Fields) == 0 {
		return
	}
	bg := &f.Fields[0]
	if len(bg.Particles) == 0 {
		return
	}

	for i := range r.hist {
		r.hist[i] = 0
	}
	cam := f.Camera
	var inside, total int
	bg.Points(func(pos r3.Vec, _ components.RGB) {
		total++
		sx, sy, ok := cam.WorldToScreen(pos)
		if !ok || sx < 0 || sy < 0 || sx >= cam.ViewportW || sy >= cam.ViewportH {
			return
		}
		inside++
		col := int(sx / cam.ViewportW * gridCols)
		row := int(sy / cam.ViewportH * gridRows)
		r.hist[row*gridCols+col]++
	})

	r.frames++
	r.onscreen += float64(inside) / float64(total)
	if inside > 0 {
		p := make([]float64, len(r.hist))
		for i, n := range r.hist {
			p[i] = n / float64(inside)
		}
		r.spread += stat.Entropy(p) / math.Log(float64(len(p)))
	}
}

// score combines onscreen fraction and spread into [0, 1].
func (r *coverageRenderer) score() (onscreen, spread float64) {
	if r.frames == 0 {
		return 0, 0
	}
	n := float64(r.frames)
	return r.onscreen / n, r.spread / n
}

// FitnessEvaluator runs headless games and scores the background field.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	warmup     int32
	seeds      []int64
	baseConfig *config.Config

	mu        sync.Mutex
	lastScore evalScore
}

// evalScore holds the averaged parts of one evaluation.
type evalScore struct {
	Onscreen float64
	Spread   float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		warmup:     maxTicks / 5,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastScore returns the parts of the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() evalScore {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated product of onscreen fraction and spread, averaged
// over seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) (float64, error) {
	results := make([]evalScore, len(fe.seeds))

	g, _ := errgroup.WithContext(context.Background())
	for i, seed := range fe.seeds {
		g.Go(func() error {
			s, err := fe.runSimulation(x, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var avg evalScore
	var fitness float64
	for _, r := range results {
		avg.Onscreen += r.Onscreen
		avg.Spread += r.Spread
		fitness -= r.Onscreen * r.Spread
	}
	n := float64(len(results))
	avg.Onscreen /= n
	avg.Spread /= n

	fe.mu.Lock()
	fe.lastScore = avg
	fe.mu.Unlock()

	return fitness / n, nil
}

// runSimulation executes a single headless run at a 60 Hz wall clock.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) (evalScore, error) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	cov := &coverageRenderer{warmup: fe.warmup}
	g, err := game.NewGameWithOptions(game.Options{
		Config:   cfg,
		Seed:     seed,
		Renderer: cov,
	})
	if err != nil {
		return evalScore{}, err
	}
	defer g.Unload()

	for g.TickCount() < fe.maxTicks {
		g.Tick(1.0 / 60)
	}

	onscreen, spread := cov.score()
	return evalScore{Onscreen: onscreen, Spread: spread}, nil
}

// copyConfig returns a copy of the base config. Config holds no pointers
// so a value copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
