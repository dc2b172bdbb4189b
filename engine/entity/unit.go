package entity

import (
	"time"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/techtree"
)

const (
	// ArriveEpsilon is how close a move order has to get to finish.
	ArriveEpsilon = 0.1
	// InteractRange is the reach for harvesting and unloading.
	InteractRange = 1.5
	// structureReach widens weapon range by a building's footprint.
	structureReach = 1.5
)

// Unit is a mobile actor running a local order state machine.
type Unit struct {
	id      core.EntityID
	kind    techtree.UnitType
	faction core.Faction
	stats   techtree.UnitStats

	health float64
	pos    core.Position
	order  Order
	home   core.EntityID // default return target for harvest trips

	carried     int
	harvestWait float64

	attacked   bool
	lastAttack time.Duration

	boostLeft     float64
	boostRecharge float64

	Selected bool
}

// NewUnit creates a unit at full health.
func NewUnit(id core.EntityID, kind techtree.UnitType, faction core.Faction, stats techtree.UnitStats, pos core.Position) *Unit {
	return &Unit{
		id:      id,
		kind:    kind,
		faction: faction,
		stats:   stats,
		health:  stats.Health,
		pos:     pos,
	}
}

func (u *Unit) ID() core.EntityID            { return u.id }
func (u *Unit) Type() techtree.UnitType      { return u.kind }
func (u *Unit) Faction() core.Faction        { return u.faction }
func (u *Unit) IsEnemy() bool                { return u.faction.IsEnemy() }
func (u *Unit) Stats() techtree.UnitStats    { return u.stats }
func (u *Unit) Health() float64              { return u.health }
func (u *Unit) MaxHealth() float64           { return u.stats.Health }
func (u *Unit) Position() core.Position      { return u.pos }
func (u *Unit) SetPosition(p core.Position)  { u.pos = p }
func (u *Unit) Order() Order                 { return u.order }
func (u *Unit) OrderKind() OrderKind         { return KindOf(u.order) }
func (u *Unit) CarriedResources() int        { return u.carried }
func (u *Unit) IsDead() bool                 { return u.health <= 0 }
func (u *Unit) ReturnTarget() core.EntityID  { return u.home }
func (u *Unit) IsBoosted() bool              { return u.boostLeft > 0 }

// HealthFraction is health over max health, in [0,1].
func (u *Unit) HealthFraction() float64 {
	if u.stats.Health <= 0 {
		return 0
	}
	return u.health / u.stats.Health
}

// Speed is the current movement speed including any boost.
func (u *Unit) Speed() float64 {
	if u.boostLeft > 0 {
		return u.stats.Speed * 2
	}
	return u.stats.Speed
}

// TakeDamage lowers health, never below zero.
func (u *Unit) TakeDamage(amount float64) {
	if amount <= 0 {
		return
	}
	u.health = max(0, u.health-amount)
}

// Heal raises health up to max. The dead stay dead.
func (u *Unit) Heal(amount float64) {
	if amount <= 0 || u.IsDead() {
		return
	}
	u.health = min(u.stats.Health, u.health+amount)
}

// Stop drops the current order.
func (u *Unit) Stop() { u.order = nil }

// MoveTo replaces any order with a straight-line move to p.
func (u *Unit) MoveTo(p core.Position) {
	u.order = MoveOrder{Target: core.Pos(p.X, p.Y)}
}

// SetTarget orders an attack on target. Targets that are missing, dead or
// friendly are ignored, as are orders to units without a weapon.
func (u *Unit) SetTarget(target *Unit) {
	if target == nil || target.IsDead() || !u.faction.Opposes(target.faction) || !u.stats.CanAttack() {
		return
	}
	u.order = AttackOrder{Target: target.id}
}

// SetStructureTarget orders a siege on a player building. Only the enemy
// faction besieges.
func (u *Unit) SetStructureTarget(b *Building) {
	if b == nil || b.IsDestroyed() || !u.faction.IsEnemy() || !u.stats.CanAttack() {
		return
	}
	u.order = AttackStructureOrder{Target: b.ID()}
}

// SetHarvestTarget orders gathering from node, returning loads to the
// unit's return target if one is set.
func (u *Unit) SetHarvestTarget(node *ResourceNode) {
	if node == nil || node.IsDepleted() || !u.stats.CanHarvest() {
		return
	}
	u.order = HarvestOrder{Node: node.ID(), Return: u.home}
}

// SetReturnTarget sets where loads are delivered. An idle unit already
// carrying something heads there at once.
func (u *Unit) SetReturnTarget(b *Building) {
	if b == nil || b.IsDestroyed() || !u.stats.CanHarvest() {
		return
	}
	u.home = b.ID()
	switch o := u.order.(type) {
	case HarvestOrder:
		o.Return = b.ID()
		u.order = o
	case nil:
		if u.carried > 0 {
			u.order = ReturnOrder{Building: b.ID()}
		}
	}
}

// Update advances the unit by dt seconds.
func (u *Unit) Update(dt float64, w World) {
	if dt <= 0 || u.IsDead() {
		return
	}
	u.updateAbilities(dt)

	switch o := u.order.(type) {
	case MoveOrder:
		u.updateMove(o, dt)
	case AttackOrder:
		u.updateAttack(o, dt, w)
	case HarvestOrder:
		u.updateHarvest(o, dt, w)
	case ReturnOrder:
		u.updateReturn(o, dt, w)
	case AttackStructureOrder:
		u.updateSiege(o, dt, w)
	}
}

func (u *Unit) step(target core.Position, dt float64) {
	u.pos = u.pos.StepToward(target, u.Speed()*dt)
}

func (u *Unit) updateMove(o MoveOrder, dt float64) {
	if u.pos.DistanceTo(o.Target) > ArriveEpsilon {
		u.step(o.Target, dt)
	}
	if u.pos.DistanceTo(o.Target) <= ArriveEpsilon {
		u.order = nil
	}
}

func (u *Unit) updateAttack(o AttackOrder, dt float64, w World) {
	target := w.Unit(o.Target)
	if target == nil || target.IsDead() {
		u.order = nil
		return
	}
	if u.pos.DistanceTo(target.pos) <= u.stats.AttackRange {
		u.Attack(target, w)
		return
	}
	u.step(target.pos, dt)
}

func (u *Unit) updateSiege(o AttackStructureOrder, dt float64, w World) {
	b := w.Building(o.Target)
	if b == nil || b.IsDestroyed() {
		u.order = nil
		return
	}
	if u.pos.DistanceTo(b.Position()) <= u.stats.AttackRange+structureReach {
		if u.fire(w) {
			u.launch(w, Impact{Target: b.ID(), Structure: true, Point: b.Position()})
		}
		return
	}
	u.step(b.Position(), dt)
}

// Attack fires at target if the weapon is off cooldown. It reports
// whether a shot was fired.
func (u *Unit) Attack(target *Unit, w World) bool {
	if target == nil || target.IsDead() || !u.faction.Opposes(target.faction) || !u.stats.CanAttack() {
		return false
	}
	if !u.fire(w) {
		return false
	}
	u.launch(w, Impact{Target: target.id, Point: target.pos})
	return true
}

// fire checks and resets the weapon cooldown against the world clock.
func (u *Unit) fire(w World) bool {
	now := w.Now()
	cooldown := time.Duration(u.stats.AttackCooldown * float64(time.Second))
	if u.attacked && now-u.lastAttack < cooldown {
		return false
	}
	u.attacked = true
	u.lastAttack = now
	return true
}

func (u *Unit) launch(w World, imp Impact) {
	imp.Faction = u.faction
	imp.Damage = u.stats.AttackDamage
	imp.Splash = u.stats.SplashRadius
	w.ShotFired(u.pos, imp.Point)

	if u.stats.ProjectileSpeed > 0 {
		imp.Delay = u.pos.DistanceTo(imp.Point) / u.stats.ProjectileSpeed
	}
	if imp.Delay > 0 {
		w.ScheduleImpact(imp)
		return
	}
	ApplyImpact(w, imp)
}

func (u *Unit) updateHarvest(o HarvestOrder, dt float64, w World) {
	node := w.Node(o.Node)
	if node == nil || node.IsDepleted() {
		u.endHarvest(o)
		return
	}
	if u.pos.DistanceTo(node.Position()) > InteractRange {
		u.step(node.Position(), dt)
		return
	}

	u.harvestWait -= dt
	if u.harvestWait <= 0 {
		request := min(u.stats.HarvestRate, u.stats.MaxCarried-u.carried)
		u.carried += node.Harvest(request)
		u.harvestWait = u.stats.HarvestCooldown
	}
	if u.carried >= u.stats.MaxCarried || node.IsDepleted() {
		u.endHarvest(o)
	}
}

// endHarvest leaves the harvest state: back to base with a load, else idle.
func (u *Unit) endHarvest(o HarvestOrder) {
	if o.Return != 0 && u.carried > 0 {
		u.order = ReturnOrder{Building: o.Return, Node: o.Node}
		return
	}
	u.order = nil
}

func (u *Unit) updateReturn(o ReturnOrder, dt float64, w World) {
	b := w.Building(o.Building)
	if b == nil || b.IsDestroyed() {
		u.order = nil
		return
	}
	if u.pos.DistanceTo(b.Position()) > InteractRange {
		u.step(b.Position(), dt)
		return
	}

	if u.carried > 0 {
		w.Deposit(u, u.carried)
		u.carried = 0
	}
	if node := w.Node(o.Node); node != nil && !node.IsDepleted() {
		u.order = HarvestOrder{Node: o.Node, Return: o.Building}
		return
	}
	u.order = nil
}
