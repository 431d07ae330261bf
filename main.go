package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
)

// Renderer modes accepted by -renderer.
const (
	modeAuto     = "auto"
	modeRaylib   = "raylib"
	modeTerminal = "terminal"
	modeHeadless = "headless"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mode := flag.String("renderer", modeAuto, "raylib, terminal, headless or auto")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q\n", *logLevel)
		os.Exit(2)
	}

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	m := resolveMode(*mode)

	// JSON logs on stdout. tcell owns the terminal, so terminal runs log to
	// the output directory or nowhere.
	var out io.Writer = os.Stdout
	if m == modeTerminal {
		out = io.Discard
		if *outputDir != "" {
			f, err := openLog(*outputDir)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			out = f
		}
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})))

	if !cfg.Enabled {
		slog.Info("background disabled by config")
		return
	}

	opts := game.Options{
		Config:    cfg,
		Seed:      *seed,
		OutputDir: *outputDir,
		LogStats:  *logStats,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var err error
	switch m {
	case modeRaylib:
		err = runRaylib(ctx, cfg, opts, *maxTicks)
	case modeTerminal:
		err = runTerminal(ctx, cfg, opts, *maxTicks)
	case modeHeadless:
		err = runHeadless(ctx, cfg, opts, *maxTicks)
	default:
		err = fmt.Errorf("unknown renderer %q", *mode)
	}
	if err != nil {
		slog.Error("run failed", "renderer", m, "error", err)
		if m == modeTerminal {
			fmt.Fprintf(os.Stderr, "drift: %v\n", err)
		}
		os.Exit(1)
	}
}

// resolveMode picks a renderer for auto: raylib with a display, the terminal
// when stdout is one, headless otherwise.
func resolveMode(mode string) string {
	if mode != modeAuto {
		return mode
	}
	if os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != "" {
		return modeRaylib
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return modeTerminal
	}
	return modeHeadless
}

func openLog(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "drift.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
