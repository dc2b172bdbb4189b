package core

import (
	"math"
	"time"
)

// GameState represents the overall loop state
type GameState uint8

const (
	StatePaused GameState = iota
	StatePlaying
)

// MaxFrameTime caps a single frame delta to avoid a spiral of death after
// a stall (debugger, hidden tab).
const MaxFrameTime = 0.25

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Duration
}

// WallClock reads the process monotonic clock.
type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Now() time.Duration {
	return time.Since(c.start)
}

// SimClock is advanced explicitly by the simulation and only moves forward.
type SimClock struct {
	now time.Duration
}

func (c *SimClock) Now() time.Duration { return c.now }

// Advance moves the clock forward by dt seconds. Non-positive dt is ignored.
func (c *SimClock) Advance(dt float64) {
	if dt > 0 {
		c.now += time.Duration(dt * float64(time.Second))
	}
}

// Stepper is anything advanced once per frame with a delta in seconds.
type Stepper interface {
	Update(dt float64)
}

// GameLoop turns frame callbacks into bounded deltas for a Stepper.
type GameLoop struct {
	Sim   Stepper
	State GameState
	Clock Clock
	// FixedDT, when positive, replaces the measured frame delta.
	FixedDT float64
	// Cap, when positive, tightens MaxFrameTime for this loop.
	Cap float64

	last   time.Duration
	frames uint64
}

// NewGameLoop creates a paused loop reading the wall clock.
func NewGameLoop(sim Stepper) *GameLoop {
	return &GameLoop{
		Sim:   sim,
		Clock: NewWallClock(),
	}
}

// Frame should be called once per rendered frame. It returns the delta
// handed to the simulation (zero while paused).
func (gl *GameLoop) Frame() float64 {
	now := gl.Clock.Now()
	frameTime := (now - gl.last).Seconds()
	gl.last = now
	gl.frames++

	if gl.State != StatePlaying {
		return 0
	}
	dt := ClampDelta(frameTime)
	if gl.FixedDT > 0 {
		dt = ClampDelta(gl.FixedDT)
	}
	if gl.Cap > 0 && dt > gl.Cap {
		dt = gl.Cap
	}
	gl.Sim.Update(dt)
	return dt
}

// Play starts or resumes the game
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.last = gl.Clock.Now()
}

// Pause pauses the game
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

// Frames returns the number of frames seen, paused or not.
func (gl *GameLoop) Frames() uint64 {
	return gl.frames
}

// ClampDelta maps a raw delta into [0, MaxFrameTime]. NaN and negative
// values become zero.
func ClampDelta(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if dt > MaxFrameTime {
		return MaxFrameTime
	}
	return dt
}
