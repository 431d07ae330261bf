package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

func finite(v r3.Vec) bool {
	return !math.IsNaN(v.X+v.Y+v.Z) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}

// wrapDegrees wraps an angle in degrees to [0, 360).
func wrapDegrees(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// uniform returns a value in [-width/2, width/2).
func uniform(u, width float64) float64 {
	return (u - 0.5) * width
}
