// Snapshot tool - runs the particle scene offscreen and writes the final
// frame to a PNG file.
//
// Usage: go run ./cmd/snapshot -ticks 600 -image input_image/default.jpg -out snapshot.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/renderer"
)

// centerAnchor places one square anchor in the middle of the viewport.
type centerAnchor struct {
	rect camera.Rect
}

func (a centerAnchor) AnchorRect(key string) (camera.Rect, bool) {
	return a.rect, key == "snapshot"
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	outPath := flag.String("out", "snapshot.png", "Output PNG path")
	ticks := flag.Int("ticks", 600, "Ticks to run at 60 Hz before capturing")
	seed := flag.Int64("seed", 1, "Random seed")
	imagePath := flag.String("image", "", "Optional image to show as a point cloud in the center")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(width, height, "Snapshot")
	defer rl.CloseWindow()

	target := rl.LoadRenderTexture(width, height)
	defer rl.UnloadRenderTexture(target)

	rr := renderer.NewRaylib(width, height)
	rr.SetOutput(&target)
	defer rr.Unload()

	side := float64(min(width, height)) / 2
	anchors := centerAnchor{rect: camera.Rect{
		X: (float64(width) - side) / 2,
		Y: (float64(height) - side) / 2,
		W: side,
		H: side,
	}}

	g, err := game.NewGameWithOptions(game.Options{
		Config:   cfg,
		Seed:     *seed,
		Renderer: rr,
		Anchors:  anchors,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}
	defer g.Unload()

	if *imagePath != "" {
		g.AddImage("snapshot", *imagePath)
	}

	for i := 0; i < *ticks; i++ {
		rl.BeginDrawing()
		g.Tick(1.0 / 60)
		rl.EndDrawing()
	}

	c := g.Counts()
	slog.Info("captured",
		"ticks", g.TickCount(),
		"background_particles", c.BackgroundParticles,
		"image_particles", c.ImageParticles,
	)

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Snapshot written to: %s (%dx%d)\n", *outPath, width, height)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
