package audio

import (
	"math"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/game"
)

// SoundID identifies a sound effect
type SoundID string

const (
	SndAttack    SoundID = "attack"
	SndExplosion SoundID = "explosion"
	SndSelect    SoundID = "select"
	SndMove      SoundID = "move"
	SndBuild     SoundID = "build"
	SndComplete  SoundID = "complete"
	SndProduced  SoundID = "produced"
	SndDeposit   SoundID = "deposit"
	SndDepleted  SoundID = "depleted"
	SndVictory   SoundID = "victory"
	SndDefeat    SoundID = "defeat"
	SndClick     SoundID = "click"
)

// Sounds lists every cue, for players that prepare buffers up front.
var Sounds = []SoundID{
	SndAttack, SndExplosion, SndSelect, SndMove, SndBuild, SndComplete,
	SndProduced, SndDeposit, SndDepleted, SndVictory, SndDefeat, SndClick,
}

// Player turns a cue into sound. Volume is in [0, 1].
type Player interface {
	Play(id SoundID, volume float64)
}

// MaxDistance is how far from the listener a positional cue stays audible.
const MaxDistance = 30.0

// AudioManager maps simulation events to sound cues and hands them to a
// Player with a volume that falls off with distance from the camera.
type AudioManager struct {
	MasterVolume float64
	SFXVolume    float64
	CameraX      float64
	CameraY      float64
	Muted        bool

	player Player
	// last tick each cue played, so a volley is one sound
	played map[SoundID]uint64
}

func NewAudioManager(p Player) *AudioManager {
	return &AudioManager{
		MasterVolume: 1.0,
		SFXVolume:    0.8,
		player:       p,
		played:       make(map[SoundID]uint64),
	}
}

// SetCameraPos updates the listener position for positional audio
func (am *AudioManager) SetCameraPos(x, y float64) {
	am.CameraX = x
	am.CameraY = y
}

// Attach listens to every event on bus.
func (am *AudioManager) Attach(bus *core.EventBus) {
	bus.OnAny(am.HandleEvent)
}

// HandleEvent plays the cue for e, at most once per cue per tick.
func (am *AudioManager) HandleEvent(e core.Event) {
	c, ok := CueFor(e)
	if !ok {
		return
	}
	if last, seen := am.played[c.Sound]; seen && last == e.Tick {
		return
	}
	am.played[c.Sound] = e.Tick
	if c.Positional {
		am.PlaySFX(c.Sound, c.At.X, c.At.Y)
	} else {
		am.PlayUI(c.Sound)
	}
}

// PlaySFX plays a sound effect at a world position
func (am *AudioManager) PlaySFX(id SoundID, worldX, worldY float64) {
	am.play(id, am.calcVolume(worldX, worldY))
}

// PlayUI plays a cue that is not tied to a place on the map.
func (am *AudioManager) PlayUI(id SoundID) {
	am.play(id, am.SFXVolume*am.MasterVolume)
}

func (am *AudioManager) play(id SoundID, vol float64) {
	if am.Muted || am.player == nil || vol <= 0 {
		return
	}
	am.player.Play(id, vol)
}

// calcVolume computes volume based on distance from camera
func (am *AudioManager) calcVolume(wx, wy float64) float64 {
	dx := wx - am.CameraX
	dy := wy - am.CameraY
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist >= MaxDistance {
		return 0
	}
	return (1.0 - dist/MaxDistance) * am.SFXVolume * am.MasterVolume
}

// SetVolume sets master volume (0-1)
func (am *AudioManager) SetVolume(v float64) {
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	am.MasterVolume = v
}

// Cue is what an event sounds like.
type Cue struct {
	Sound      SoundID
	At         core.Position
	Positional bool
}

// CueFor maps an event to its cue. Events of the enemy's own production
// stay silent.
func CueFor(e core.Event) (Cue, bool) {
	switch p := e.Payload.(type) {
	case game.ShotEvent:
		return Cue{SndAttack, p.At, true}, true
	case game.UnitEvent:
		switch e.Type {
		case core.EvtUnitDied:
			return Cue{SndExplosion, p.Position, true}, true
		case core.EvtUnitProduced:
			if p.Faction == core.FactionPlayer {
				return Cue{Sound: SndProduced}, true
			}
		}
	case game.BuildingEvent:
		switch e.Type {
		case core.EvtBuildingPlaced:
			return Cue{SndBuild, p.Position, true}, true
		case core.EvtBuildingConstructed:
			return Cue{Sound: SndComplete}, true
		case core.EvtBuildingDestroyed:
			return Cue{SndExplosion, p.Position, true}, true
		}
	case game.NodeEvent:
		return Cue{SndDepleted, p.Position, true}, true
	case game.DepositEvent:
		return Cue{Sound: SndDeposit}, true
	case game.EndEvent:
		if p.Result == core.ResultWin {
			return Cue{Sound: SndVictory}, true
		}
		return Cue{Sound: SndDefeat}, true
	}
	return Cue{}, false
}
