// Package view holds the screen-space math shared by the renderer and the
// input layer: the camera projection and short-lived visual effects.
package view

import "math"

// PixelsPerUnit is the screen size of one world unit at zoom 1.
const PixelsPerUnit = 24.0

// Camera is a top-down viewport onto the ground plane. World +Y points up
// the screen.
type Camera struct {
	X, Y       float64 // camera center position (world coords)
	Zoom       float64 // zoom level (1.0 = default)
	MinZoom    float64
	MaxZoom    float64
	ScreenW    int     // viewport width in pixels
	ScreenH    int     // viewport height in pixels
	Speed      float64 // pan speed (pixels per second)
	EdgeScroll bool    // enable edge scrolling
	EdgeSize   int     // edge scroll trigger zone in pixels

	// Pan limits in world units around the origin; zero means unbounded.
	Bounds float64
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:       1.0,
		MinZoom:    0.25,
		MaxZoom:    3.0,
		ScreenW:    screenW,
		ScreenH:    screenH,
		Speed:      500,
		EdgeScroll: true,
		EdgeSize:   20,
		Bounds:     60,
	}
}

func (c *Camera) scale() float64 { return PixelsPerUnit * c.Zoom }

// Pan moves the camera by pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.scale()
	c.Y -= dy / c.scale()
	c.clamp()
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt zooms toward a screen point
func (c *Camera) ZoomAt(delta float64, screenX, screenY int) {
	wx, wy := c.ScreenToWorld(screenX, screenY)
	c.SetZoom(c.Zoom + delta)
	wx2, wy2 := c.ScreenToWorld(screenX, screenY)
	// keep the point under the cursor stationary
	c.X += wx - wx2
	c.Y += wy - wy2
	c.clamp()
}

// CenterOn centers the camera on a world position
func (c *Camera) CenterOn(wx, wy float64) {
	c.X, c.Y = wx, wy
	c.clamp()
}

// WorldToScreen converts a world position to a screen pixel position
func (c *Camera) WorldToScreen(wx, wy float64) (int, int) {
	sx, sy := c.WorldToScreenF(wx, wy)
	return int(math.Round(sx)), int(math.Round(sy))
}

// WorldToScreenF is WorldToScreen without rounding, for vector drawing.
func (c *Camera) WorldToScreenF(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.scale() + float64(c.ScreenW)/2
	sy := (c.Y-wy)*c.scale() + float64(c.ScreenH)/2
	return sx, sy
}

// ScreenToWorld converts a screen pixel to world coords
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	wx := (float64(sx)-float64(c.ScreenW)/2)/c.scale() + c.X
	wy := c.Y - (float64(sy)-float64(c.ScreenH)/2)/c.scale()
	return wx, wy
}

// ScreenLength converts a world distance to pixels.
func (c *Camera) ScreenLength(d float64) float64 { return d * c.scale() }

// Visible reports whether a world point, padded by margin world units,
// falls inside the viewport.
func (c *Camera) Visible(wx, wy, margin float64) bool {
	hw := float64(c.ScreenW)/2/c.scale() + margin
	hh := float64(c.ScreenH)/2/c.scale() + margin
	return math.Abs(wx-c.X) <= hw && math.Abs(wy-c.Y) <= hh
}

func (c *Camera) clamp() {
	if c.Bounds <= 0 {
		return
	}
	c.X = math.Max(-c.Bounds, math.Min(c.Bounds, c.X))
	c.Y = math.Max(-c.Bounds, math.Min(c.Bounds, c.Y))
}
