package view

import (
	"math"
	"testing"
)

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera(800, 600)
	c.CenterOn(3, -2)
	c.SetZoom(1.5)
	for _, p := range [][2]float64{{3, -2}, {0, 0}, {10, 4}, {-6.5, 7.25}} {
		sx, sy := c.WorldToScreenF(p[0], p[1])
		wx, wy := c.ScreenToWorld(int(sx), int(sy))
		if math.Abs(wx-p[0]) > 1/c.scale() || math.Abs(wy-p[1]) > 1/c.scale() {
			t.Errorf("round trip %v -> (%v, %v)", p, wx, wy)
		}
	}
	if sx, sy := c.WorldToScreen(3, -2); sx != 400 || sy != 300 {
		t.Errorf("center maps to (%d, %d), want (400, 300)", sx, sy)
	}
}

func TestCameraYAxisPointsUp(t *testing.T) {
	c := NewCamera(800, 600)
	_, above := c.WorldToScreen(0, 1)
	_, below := c.WorldToScreen(0, -1)
	if above >= below {
		t.Fatalf("world +Y drawn below -Y: %d vs %d", above, below)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	c := NewCamera(800, 600)
	wx, wy := c.ScreenToWorld(700, 100)
	c.ZoomAt(0.5, 700, 100)
	gx, gy := c.ScreenToWorld(700, 100)
	if math.Abs(gx-wx) > 1e-9 || math.Abs(gy-wy) > 1e-9 {
		t.Fatalf("cursor point moved from (%v,%v) to (%v,%v)", wx, wy, gx, gy)
	}
}

func TestZoomAndPanClamp(t *testing.T) {
	c := NewCamera(800, 600)
	c.SetZoom(100)
	if c.Zoom != c.MaxZoom {
		t.Errorf("zoom = %v, want %v", c.Zoom, c.MaxZoom)
	}
	c.SetZoom(0)
	if c.Zoom != c.MinZoom {
		t.Errorf("zoom = %v, want %v", c.Zoom, c.MinZoom)
	}
	c.Pan(1e9, -1e9)
	if c.X != c.Bounds || c.Y != c.Bounds {
		t.Errorf("pan not clamped: (%v, %v)", c.X, c.Y)
	}
}

func TestVisible(t *testing.T) {
	c := NewCamera(480, 240) // 20 x 10 world units at zoom 1
	if !c.Visible(9, 4, 0) {
		t.Error("point inside viewport reported hidden")
	}
	if c.Visible(11, 0, 0) {
		t.Error("point outside viewport reported visible")
	}
	if !c.Visible(11, 0, 2) {
		t.Error("margin ignored")
	}
}
