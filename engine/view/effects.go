package view

import (
	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/game"
)

type EffectKind uint8

const (
	EffectShot      EffectKind = iota // tracer from shooter to target
	EffectExplosion                   // unit or building destroyed
	EffectPulse                       // building finished or node emptied
)

var effectTTL = [...]float64{
	EffectShot:      0.15,
	EffectExplosion: 0.6,
	EffectPulse:     0.8,
}

// MaxEffects bounds the live list; the oldest effect makes room.
const MaxEffects = 256

// Effect is a transient visual tied to a world position.
type Effect struct {
	Kind EffectKind
	From core.Position
	At   core.Position
	Age  float64
	TTL  float64
}

// Progress runs from 0 when spawned to 1 when expired.
func (e Effect) Progress() float64 {
	if e.TTL <= 0 {
		return 1
	}
	return min(1, e.Age/e.TTL)
}

// Effects turns simulation events into short animations. It runs on wall
// time so effects keep fading while the session is paused or over.
type Effects struct {
	list []Effect
}

func NewEffects() *Effects { return &Effects{} }

func (fx *Effects) Attach(bus *core.EventBus) {
	bus.OnAny(fx.Handle)
}

func (fx *Effects) Handle(e core.Event) {
	switch p := e.Payload.(type) {
	case game.ShotEvent:
		fx.add(EffectShot, p.From, p.At)
	case game.UnitEvent:
		if e.Type == core.EvtUnitDied {
			fx.add(EffectExplosion, p.Position, p.Position)
		}
	case game.BuildingEvent:
		switch e.Type {
		case core.EvtBuildingDestroyed:
			fx.add(EffectExplosion, p.Position, p.Position)
		case core.EvtBuildingConstructed:
			fx.add(EffectPulse, p.Position, p.Position)
		}
	case game.NodeEvent:
		fx.add(EffectPulse, p.Position, p.Position)
	}
}

func (fx *Effects) add(k EffectKind, from, at core.Position) {
	if len(fx.list) >= MaxEffects {
		fx.list = append(fx.list[:0], fx.list[1:]...)
	}
	fx.list = append(fx.list, Effect{Kind: k, From: from, At: at, TTL: effectTTL[k]})
}

// Update ages every effect and drops the expired ones.
func (fx *Effects) Update(dt float64) {
	if dt <= 0 {
		return
	}
	live := fx.list[:0]
	for _, e := range fx.list {
		e.Age += dt
		if e.Age < e.TTL {
			live = append(live, e)
		}
	}
	clear(fx.list[len(live):])
	fx.list = live
}

// Active returns the live effects, oldest first. The slice is reused.
func (fx *Effects) Active() []Effect { return fx.list }
