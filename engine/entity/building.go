package entity

import (
	"math"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/techtree"
)

// SpawnOffset is where produced units appear relative to their building.
var SpawnOffset = core.Pos(2, 0)

type productionOrder struct {
	unit techtree.UnitType
	time float64
}

// Building is a stationary player structure.
type Building struct {
	id    core.EntityID
	kind  techtree.BuildingType
	stats techtree.BuildingStats
	tree  *techtree.TechTree
	pos   core.Position

	health       float64
	construction float64
	constructed  bool

	queue      []productionOrder
	producing  bool
	production float64

	efficiency float64
	fireWait   float64

	Selected bool
}

// NewBuilding places a building under construction.
func NewBuilding(id core.EntityID, kind techtree.BuildingType, tree *techtree.TechTree, pos core.Position) *Building {
	stats := tree.Building(kind)
	return &Building{
		id:         id,
		kind:       kind,
		stats:      stats,
		tree:       tree,
		pos:        pos,
		health:     stats.Health,
		efficiency: 1,
	}
}

func (b *Building) ID() core.EntityID                { return b.id }
func (b *Building) Type() techtree.BuildingType      { return b.kind }
func (b *Building) Stats() techtree.BuildingStats    { return b.stats }
func (b *Building) Position() core.Position          { return b.pos }
func (b *Building) Health() float64                  { return b.health }
func (b *Building) MaxHealth() float64               { return b.stats.Health }
func (b *Building) IsConstructed() bool              { return b.constructed }
func (b *Building) IsDestroyed() bool                { return b.health <= 0 }
func (b *Building) IsProducing() bool                { return b.producing }
func (b *Building) ProductionQueue() int             { return len(b.queue) }
func (b *Building) ProductionProgress() float64      { return b.production }
func (b *Building) ConstructionProgress() float64    { return b.construction }
func (b *Building) PowerEfficiency() float64         { return b.efficiency }

// HealthFraction is health over max health, in [0,1].
func (b *Building) HealthFraction() float64 {
	if b.stats.Health <= 0 {
		return 0
	}
	return b.health / b.stats.Health
}

// ConstructionFraction is construction progress in [0,1].
func (b *Building) ConstructionFraction() float64 {
	if b.constructed || b.stats.ConstructionTime <= 0 {
		return 1
	}
	return min(1, b.construction/b.stats.ConstructionTime)
}

// ProductionTime is the duration of the current production cycle.
func (b *Building) ProductionTime() float64 {
	if len(b.queue) == 0 {
		return 0
	}
	return b.queue[0].time
}

// ProductionFraction is the current cycle's progress in [0,1].
func (b *Building) ProductionFraction() float64 {
	t := b.ProductionTime()
	if !b.producing || t <= 0 {
		return 0
	}
	return min(1, b.production/t)
}

// CompleteConstruction finishes the building at once, as for buildings a
// scenario starts with.
func (b *Building) CompleteConstruction() {
	b.constructed = true
	b.construction = b.stats.ConstructionTime
}

// TakeDamage lowers health, never below zero.
func (b *Building) TakeDamage(amount float64) {
	if amount <= 0 {
		return
	}
	b.health = max(0, b.health-amount)
}

// StartUnitProduction queues the building's default unit.
func (b *Building) StartUnitProduction() bool {
	if !b.stats.CanProduce() {
		return false
	}
	return b.Enqueue(b.stats.Produces[0])
}

// Enqueue adds one unit of type t to the production queue. A cycle starts
// right away if the building was idle.
func (b *Building) Enqueue(t techtree.UnitType) bool {
	if b.IsDestroyed() || !b.stats.Produce(t) {
		return false
	}
	b.queue = append(b.queue, productionOrder{unit: t, time: b.tree.Unit(t).ProductionTime})
	if !b.producing {
		b.producing = true
		b.production = 0
	}
	return true
}

// PowerOutput is the supply this building contributes.
func (b *Building) PowerOutput() float64 {
	if !b.constructed {
		return 0
	}
	return b.stats.PowerOutput * b.efficiency
}

// PowerConsumption is the demand this building places on the grid.
func (b *Building) PowerConsumption() float64 {
	if !b.constructed {
		return 0
	}
	return b.stats.PowerConsumption
}

// IsPowerProducer reports whether the building feeds the grid. Only power
// plants do; a command center's listed output is not counted as supply.
func (b *Building) IsPowerProducer() bool { return b.kind == techtree.PowerPlant }

// EfficiencySensitive reports whether power shortage slows this building.
func (b *Building) EfficiencySensitive() bool {
	return b.kind == techtree.Refinery || b.stats.CanProduce() || b.stats.IsArmed()
}

// SetPowerEfficiency is written by the economy each tick.
func (b *Building) SetPowerEfficiency(e float64) {
	if math.IsNaN(e) {
		e = 0
	}
	b.efficiency = max(0, min(1, e))
}

// Update advances construction, production and the turret weapon.
func (b *Building) Update(dt float64, w World) {
	if dt <= 0 || b.IsDestroyed() {
		return
	}
	if !b.constructed {
		b.construction += dt
		if b.construction >= b.stats.ConstructionTime {
			b.construction = b.stats.ConstructionTime
			b.constructed = true
			w.BuildingConstructed(b)
		}
		return
	}
	b.updateProduction(dt, w)
	if b.stats.IsArmed() {
		b.updateTurret(dt, w)
	}
}

func (b *Building) updateProduction(dt float64, w World) {
	if !b.producing || len(b.queue) == 0 {
		b.producing = false
		return
	}
	b.production += dt * b.efficiency
	if b.production < b.queue[0].time {
		return
	}
	done := b.queue[0].unit
	b.queue = b.queue[1:]
	b.production = 0
	b.producing = len(b.queue) > 0
	w.UnitProduced(b, done)
}

func (b *Building) updateTurret(dt float64, w World) {
	b.fireWait -= dt * b.efficiency
	if b.fireWait > 0 {
		return
	}
	b.fireWait = 0

	var target *Unit
	best := math.MaxFloat64
	for _, u := range w.UnitsNear(b.pos, b.stats.AttackRange) {
		if u.IsDead() || !u.IsEnemy() {
			continue
		}
		if d := b.pos.DistanceTo(u.Position()); d < best {
			best = d
			target = u
		}
	}
	if target == nil {
		return
	}
	b.fireWait = b.stats.AttackCooldown
	w.ShotFired(b.pos, target.Position())
	ApplyImpact(w, Impact{
		Faction: core.FactionPlayer,
		Target:  target.ID(),
		Point:   target.Position(),
		Damage:  b.stats.AttackDamage,
	})
}
