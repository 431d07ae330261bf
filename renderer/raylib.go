package renderer

import (
	_ "embed"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/components"
)

//go:embed shaders/afterimage.fs
var afterimageFS string

//go:embed shaders/bloom.fs
var bloomFS string

const spriteSize = 32

// Raylib draws frames as additive billboards, then applies the afterimage and
// bloom passes. It draws into the current raylib frame: the caller owns
// BeginDrawing/EndDrawing, so overlays can be added afterwards.
type Raylib struct {
	sprite rl.Texture2D

	scene rl.RenderTexture2D
	trail [2]rl.RenderTexture2D // Ping-pong accumulation
	cur   int

	afterimage  rl.Shader
	previousLoc int32
	dampLoc     int32

	bloom         rl.Shader
	resolutionLoc int32
	strengthLoc   int32
	thresholdLoc  int32
	radiusLoc     int32

	output *rl.RenderTexture2D // nil draws into the current frame

	width, height int32
	initialized   bool
}

// NewRaylib creates a raylib renderer for a window of the given size.
func NewRaylib(width, height int32) *Raylib {
	return &Raylib{width: width, height: height}
}

// Init loads GPU resources (must be called after the raylib window is created).
func (r *Raylib) Init() {
	if r.initialized {
		return
	}

	// Round soft sprite shared by every particle
	img := rl.GenImageGradientRadial(spriteSize, spriteSize, 0, rl.White, rl.Blank)
	r.sprite = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	r.afterimage = rl.LoadShaderFromMemory("", afterimageFS)
	r.previousLoc = rl.GetShaderLocation(r.afterimage, "previous")
	r.dampLoc = rl.GetShaderLocation(r.afterimage, "damp")

	r.bloom = rl.LoadShaderFromMemory("", bloomFS)
	r.resolutionLoc = rl.GetShaderLocation(r.bloom, "resolution")
	r.strengthLoc = rl.GetShaderLocation(r.bloom, "strength")
	r.thresholdLoc = rl.GetShaderLocation(r.bloom, "threshold")
	r.radiusLoc = rl.GetShaderLocation(r.bloom, "radius")

	r.loadTargets()
	r.initialized = true
}

func (r *Raylib) loadTargets() {
	r.scene = rl.LoadRenderTexture(r.width, r.height)
	for i := range r.trail {
		r.trail[i] = rl.LoadRenderTexture(r.width, r.height)
		rl.BeginTextureMode(r.trail[i])
		rl.ClearBackground(rl.Blank)
		rl.EndTextureMode()
	}
	rl.SetShaderValue(r.bloom, r.resolutionLoc, []float32{float32(r.width), float32(r.height)}, rl.ShaderUniformVec2)
}

func (r *Raylib) unloadTargets() {
	rl.UnloadRenderTexture(r.scene)
	for i := range r.trail {
		rl.UnloadRenderTexture(r.trail[i])
	}
}

// SetOutput makes the final pass draw into t instead of the current frame.
// nil restores the default.
func (r *Raylib) SetOutput(t *rl.RenderTexture2D) {
	r.output = t
}

// Resize recreates the render targets for a new window size.
func (r *Raylib) Resize(width, height int32) {
	r.width, r.height = width, height
	if !r.initialized {
		return
	}
	r.unloadTargets()
	r.loadTargets()
}

// Render implements the renderer capability.
func (r *Raylib) Render(f *Frame) {
	if !r.initialized {
		r.Init()
	}

	cam3d := toCamera3D(f.Camera)

	// Particles
	rl.BeginTextureMode(r.scene)
	rl.ClearBackground(rl.Blank)
	rl.BeginMode3D(cam3d)
	for i := range f.Fields {
		r.drawField(cam3d, &f.Fields[i])
	}
	rl.EndMode3D()
	rl.EndTextureMode()

	// Afterimage: max(current, previous * decay)
	prev := r.trail[r.cur]
	next := r.trail[1-r.cur]
	rl.BeginTextureMode(next)
	rl.ClearBackground(rl.Blank)
	rl.BeginShaderMode(r.afterimage)
	rl.SetShaderValueTexture(r.afterimage, r.previousLoc, prev.Texture)
	rl.SetShaderValue(r.afterimage, r.dampLoc, []float32{float32(f.Post.TrailDecay)}, rl.ShaderUniformFloat)
	r.blit(r.scene.Texture)
	rl.EndShaderMode()
	rl.EndTextureMode()
	r.cur = 1 - r.cur

	// Bloom onto the current frame
	if r.output != nil {
		rl.BeginTextureMode(*r.output)
		defer rl.EndTextureMode()
	}
	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(r.bloom)
	rl.SetShaderValue(r.bloom, r.strengthLoc, []float32{float32(f.Post.BloomStrength)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.bloom, r.thresholdLoc, []float32{float32(f.Post.BloomThreshold)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.bloom, r.radiusLoc, []float32{float32(f.Post.BloomRadius)}, rl.ShaderUniformFloat)
	r.blit(next.Texture)
	rl.EndShaderMode()
}

func (r *Raylib) drawField(cam3d rl.Camera3D, v *FieldView) {
	alpha := uint8(clampUnit(float64(v.Style.Opacity)) * 255)
	if v.Style.Additive {
		rl.BeginBlendMode(rl.BlendAdditive)
		defer rl.EndBlendMode()
	}
	v.Points(func(pos r3.Vec, c components.RGB) {
		tint := rl.NewColor(uint8(c.R*255), uint8(c.G*255), uint8(c.B*255), alpha)
		rl.DrawBillboard(cam3d, r.sprite, toVector3(pos), v.Style.Size, tint)
	})
}

// blit draws a render texture over the whole target. Render textures are
// stored upside down, hence the negative source height.
func (r *Raylib) blit(tex rl.Texture2D) {
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(tex.Width), Height: -float32(tex.Height)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(r.width), Height: float32(r.height)}
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees resources.
func (r *Raylib) Unload() {
	if !r.initialized {
		return
	}
	r.unloadTargets()
	rl.UnloadTexture(r.sprite)
	rl.UnloadShader(r.afterimage)
	rl.UnloadShader(r.bloom)
	r.initialized = false
}

func toVector3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func toCamera3D(c *camera.Camera) rl.Camera3D {
	pos := c.Position()
	return rl.Camera3D{
		Position:   toVector3(pos),
		Target:     toVector3(r3.Add(pos, c.Forward())),
		Up:         toVector3(c.Orientation.Rotate(r3.Vec{Y: 1})),
		Fovy:       float32(c.FOV * 180 / math.Pi),
		Projection: rl.CameraPerspective,
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
