package systems

import (
	"errors"
	"image"
	"math/rand"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
)

// ErrNoSamples is returned when no pixel passed the sampling thresholds.
var ErrNoSamples = errors.New("no pixels passed sampling thresholds")

// SamplerParams configures image rejection sampling.
type SamplerParams struct {
	Target             int // Desired particle count
	Resolution         int // Side of the downsampled raster
	AlphaThreshold     int // Reject alpha <= this (0-255)
	LuminanceThreshold int // Reject r+g+b <= this (0-255 per channel)
	MaxAttempts        int // Total pixel picks before giving up
}

// Sample is one accepted pixel.
type Sample struct {
	Pos   r3.Vec // In [-0.5, 0.5]^2 on z=0, Y up
	Color components.RGB
}

// Downsample draws src scaled into a size x size raster.
func Downsample(src image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SampleImage picks random pixels of src until params.Target samples were
// accepted or params.MaxAttempts picks were spent.
func SampleImage(src image.Image, params SamplerParams, rng *rand.Rand) ([]Sample, error) {
	if params.Target <= 0 || params.Resolution <= 0 {
		return nil, ErrNoSamples
	}
	attempts := params.MaxAttempts
	if attempts < params.Target {
		attempts = params.Target
	}

	raster := Downsample(src, params.Resolution)
	w, h := raster.Rect.Dx(), raster.Rect.Dy()

	samples := make([]Sample, 0, params.Target)
	for i := 0; i < attempts && len(samples) < params.Target; i++ {
		px := rng.Intn(w)
		py := rng.Intn(h)

		off := raster.PixOffset(px, py)
		r := int(raster.Pix[off])
		g := int(raster.Pix[off+1])
		b := int(raster.Pix[off+2])
		a := int(raster.Pix[off+3])

		if a <= params.AlphaThreshold || r+g+b <= params.LuminanceThreshold {
			continue
		}

		samples = append(samples, Sample{
			Pos: r3.Vec{
				X: float64(px)/float64(w) - 0.5,
				Y: 0.5 - float64(py)/float64(h),
			},
			Color: components.RGB{
				R: float64(r) / 255,
				G: float64(g) / 255,
				B: float64(b) / 255,
			},
		})
	}

	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return samples, nil
}
