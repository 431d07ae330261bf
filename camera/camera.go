// Package camera provides the perspective camera and screen/world mapping.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Rect is an axis-aligned rectangle in viewport pixels with a top-left origin.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the rectangle center.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Grow returns the rectangle expanded by m on every side.
func (r Rect) Grow(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Camera is a perspective camera looking at the z=0 image plane.
type Camera struct {
	// FOV is the vertical field of view in radians
	FOV float64

	// Distance from the camera to the z=0 plane along its view axis
	Distance float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Orientation of the camera in world space; identity looks down -Z
	Orientation r3.Rotation

	// Clip planes
	Near, Far float64

	// Zoom constraints on Distance
	MinDistance, MaxDistance float64
}

// New creates a camera at (0, 0, distance) looking down -Z.
func New(fovRadians, distance, viewportW, viewportH float64) *Camera {
	return &Camera{
		FOV:         fovRadians,
		Distance:    distance,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		Orientation: r3.Rotation{Real: 1},
		Near:        0.1,
		Far:         1000,
		MinDistance: 1,
		MaxDistance: 100,
	}
}

// Aspect returns the viewport aspect ratio.
func (c *Camera) Aspect() float64 {
	if c.ViewportH == 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// Position returns the camera position in world coordinates.
func (c *Camera) Position() r3.Vec {
	return c.Orientation.Rotate(r3.Vec{Z: c.Distance})
}

// Forward returns the camera view direction in world space.
func (c *Camera) Forward() r3.Vec {
	return c.Orientation.Rotate(r3.Vec{Z: -1})
}

// VisibleSize returns the world-space size of the viewport at the z=0 plane.
func (c *Camera) VisibleSize() (w, h float64) {
	h = 2 * c.Distance * math.Tan(c.FOV/2)
	w = h * c.Aspect()
	return w, h
}

// RectToWorld maps a viewport rectangle to the world position and scale that
// make a unit square centered at the origin exactly overlay it on z=0.
func (c *Camera) RectToWorld(r Rect) (pos, scale r3.Vec) {
	visW, visH := c.VisibleSize()

	cx, cy := r.Center()
	nx := cx/c.ViewportW - 0.5
	ny := -(cy/c.ViewportH - 0.5)

	pos = r3.Vec{X: nx * visW, Y: ny * visH}
	scale = r3.Vec{X: r.W / c.ViewportW * visW, Y: r.H / c.ViewportH * visH, Z: 1}
	return pos, scale
}

// ScreenToWorld converts viewport coordinates to a point on the z=0 plane.
func (c *Camera) ScreenToWorld(sx, sy float64) r3.Vec {
	visW, visH := c.VisibleSize()
	return r3.Vec{
		X: (sx/c.ViewportW - 0.5) * visW,
		Y: -(sy/c.ViewportH - 0.5) * visH,
	}
}

// WorldToScreen projects a world point into viewport coordinates.
// ok is false when the point is behind the near plane.
func (c *Camera) WorldToScreen(p r3.Vec) (sx, sy float64, ok bool) {
	// Into camera space
	inv := r3.Rotation{Real: c.Orientation.Real, Imag: -c.Orientation.Imag, Jmag: -c.Orientation.Jmag, Kmag: -c.Orientation.Kmag}
	local := inv.Rotate(r3.Sub(p, c.Position()))

	depth := -local.Z
	if depth < c.Near {
		return 0, 0, false
	}

	tanHalf := math.Tan(c.FOV / 2)
	ndcX := local.X / (depth * tanHalf * c.Aspect())
	ndcY := local.Y / (depth * tanHalf)

	sx = (ndcX + 1) / 2 * c.ViewportW
	sy = (1 - ndcY) / 2 * c.ViewportH
	return sx, sy, true
}

// Viewport returns the viewport as a rectangle at the origin.
func (c *Camera) Viewport() Rect {
	return Rect{W: c.ViewportW, H: c.ViewportH}
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetDistance sets the camera distance, clamped to min/max.
func (c *Camera) SetDistance(d float64) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy divides the camera distance by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
