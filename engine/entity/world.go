// Package entity implements the simulation actors: resource nodes, units
// with their order state machine, and buildings with construction,
// production and power roles.
//
// Entities never own each other. They refer to one another by id and
// resolve through World on every tick, so a target destroyed mid-tick
// simply stops resolving.
package entity

import (
	"time"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/techtree"
)

// World is the view of the session an entity gets while updating.
type World interface {
	// Now is a monotonic clock used to space attacks across ticks.
	Now() time.Duration

	Unit(id core.EntityID) *Unit
	Node(id core.EntityID) *ResourceNode
	Building(id core.EntityID) *Building
	// UnitsNear returns living units within radius of p.
	UnitsNear(p core.Position, radius float64) []*Unit

	// ScheduleImpact defers damage until a projectile lands.
	ScheduleImpact(imp Impact)
	// ShotFired reports a weapon discharge for effects and sound.
	ShotFired(from, at core.Position)
	// Deposit hands a harvester's load to the economy.
	Deposit(u *Unit, amount int)
	UnitProduced(b *Building, t techtree.UnitType)
	BuildingConstructed(b *Building)
}

// Impact is a pending or immediate damage application.
type Impact struct {
	Faction   core.Faction // shooter's side; splash hits the other side
	Target    core.EntityID
	Structure bool          // Target names a building
	Point     core.Position // last known target position
	Damage    float64
	Splash    float64
	Delay     float64 // seconds until it lands
}

// ApplyImpact lands an impact now. The primary target takes the damage if
// it still exists; splash then hits every other living opposing unit within
// the radius of the impact point.
func ApplyImpact(w World, imp Impact) {
	point := imp.Point
	if imp.Structure {
		if b := w.Building(imp.Target); b != nil && !b.IsDestroyed() {
			b.TakeDamage(imp.Damage)
			point = b.Position()
		}
	} else if u := w.Unit(imp.Target); u != nil && !u.IsDead() {
		u.TakeDamage(imp.Damage)
		point = u.Position()
	}
	if imp.Splash <= 0 {
		return
	}
	for _, u := range w.UnitsNear(point, imp.Splash) {
		if !imp.Structure && u.ID() == imp.Target {
			continue
		}
		if u.IsDead() || !u.Faction().Opposes(imp.Faction) {
			continue
		}
		u.TakeDamage(imp.Damage)
	}
}
