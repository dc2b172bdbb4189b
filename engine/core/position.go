package core

import "math"

// Position is a point on the ground plane in world units.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Facing float64 `json:"facing,omitempty"` // radians, 0 = +X
}

// Pos is shorthand for a Position with zero facing.
func Pos(x, y float64) Position {
	return Position{X: x, Y: y}
}

// DistanceTo returns euclidean distance to another position
func (p Position) DistanceTo(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleTo returns the angle from this position to another
func (p Position) AngleTo(other Position) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// Add offsets the position, keeping facing.
func (p Position) Add(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy, Facing: p.Facing}
}

// StepToward moves at most step units along the straight line to target.
// It never overshoots and keeps the current facing when already there.
func (p Position) StepToward(target Position, step float64) Position {
	dx := target.X - p.X
	dy := target.Y - p.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 || step <= 0 {
		return p
	}
	facing := math.Atan2(dy, dx)
	if step >= dist {
		return Position{X: target.X, Y: target.Y, Facing: facing}
	}
	s := step / dist
	return Position{X: p.X + dx*s, Y: p.Y + dy*s, Facing: facing}
}
