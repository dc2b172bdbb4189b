package game

import (
	"math"
	"slices"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/entity"
	"github.com/1siamBot/promethium/engine/techtree"
)

// CmdType identifies a command
type CmdType uint8

const (
	CmdMove CmdType = iota
	CmdAttack
	CmdHarvest
	CmdSiege
	CmdStop
	CmdPlaceBuilding
	CmdStartProduction
	CmdAbility
	CmdSelect
)

var cmdNames = [...]string{
	CmdMove:            "move",
	CmdAttack:          "attack",
	CmdHarvest:         "harvest",
	CmdSiege:           "siege",
	CmdStop:            "stop",
	CmdPlaceBuilding:   "place-building",
	CmdStartProduction: "start-production",
	CmdAbility:         "ability",
	CmdSelect:          "select",
}

func (t CmdType) String() string {
	if int(t) < len(cmdNames) {
		return cmdNames[t]
	}
	return "unknown"
}

// FormationSpacing is the grid step between units on a group move.
const FormationSpacing = 1.5

// Command is a request from input or an AI controller. Commands are queued
// and applied at the start of the next tick, in issue order.
type Command struct {
	Type    CmdType
	Faction core.Faction
	Units   []core.EntityID
	Target  core.EntityID
	Pos     core.Position
	Param   string // building type, unit type or ability name
}

// Issue queues a command.
func (g *Game) Issue(c Command) {
	c.Units = slices.Clone(c.Units)
	g.commands = append(g.commands, c)
}

// PendingCommands returns the number of commands waiting for the next tick.
func (g *Game) PendingCommands() int { return len(g.commands) }

// IssueMove sends player units to p in formation.
func (g *Game) IssueMove(units []core.EntityID, p core.Position) {
	g.Issue(Command{Type: CmdMove, Units: units, Pos: p})
}

// IssueAttack orders player units to attack an enemy unit. If target is a
// resource node the harvesters among units go harvest it instead.
func (g *Game) IssueAttack(units []core.EntityID, target core.EntityID) {
	g.Issue(Command{Type: CmdAttack, Units: units, Target: target})
}

func (g *Game) IssueHarvest(units []core.EntityID, node core.EntityID) {
	g.Issue(Command{Type: CmdHarvest, Units: units, Target: node})
}

func (g *Game) IssueStop(units []core.EntityID) {
	g.Issue(Command{Type: CmdStop, Units: units})
}

// IssueBuildingPlacement places a new building of kind at p. The cost is
// debited when the command is applied.
func (g *Game) IssueBuildingPlacement(kind techtree.BuildingType, p core.Position) {
	g.Issue(Command{Type: CmdPlaceBuilding, Pos: p, Param: kind.String()})
}

// IssueStartProduction queues a unit at building. With no unit type the
// building's default unit is produced.
func (g *Game) IssueStartProduction(building core.EntityID, unit ...techtree.UnitType) {
	c := Command{Type: CmdStartProduction, Target: building}
	if len(unit) > 0 {
		c.Param = unit[0].String()
	}
	g.Issue(c)
}

func (g *Game) IssueAbility(unit core.EntityID, name string) {
	g.Issue(Command{Type: CmdAbility, Units: []core.EntityID{unit}, Param: name})
}

// IssueSelect replaces the player selection with ids, which may name
// units and buildings.
func (g *Game) IssueSelect(ids []core.EntityID) {
	g.Issue(Command{Type: CmdSelect, Units: ids})
}

// drainCommands applies queued commands in order. Invalid commands are
// dropped without a state change.
func (g *Game) drainCommands() {
	cmds := g.commands
	g.commands = nil
	for _, c := range cmds {
		if !g.apply(c) {
			g.log.Debug("command dropped", "cmd", c.Type.String(), "faction", c.Faction.String(),
				"target", c.Target, "param", c.Param, "tick", g.tick)
		}
	}
}

func (g *Game) apply(c Command) bool {
	switch c.Type {
	case CmdMove:
		return g.applyMove(c)
	case CmdAttack:
		return g.applyAttack(c)
	case CmdHarvest:
		return g.applyHarvest(c)
	case CmdSiege:
		return g.applySiege(c)
	case CmdStop:
		units := g.ownUnits(c)
		for _, u := range units {
			u.Stop()
		}
		return len(units) > 0
	case CmdPlaceBuilding:
		return g.applyPlacement(c)
	case CmdStartProduction:
		return g.applyProduction(c)
	case CmdAbility:
		ok := false
		for _, u := range g.ownUnits(c) {
			ok = u.ActivateAbility(c.Param) || ok
		}
		return ok
	case CmdSelect:
		return g.applySelect(c)
	}
	return false
}

// ownUnits resolves the command's living units that belong to its faction.
func (g *Game) ownUnits(c Command) []*entity.Unit {
	var out []*entity.Unit
	for _, id := range c.Units {
		u := g.Unit(id)
		if u == nil || u.IsDead() || u.Faction() != c.Faction || slices.Contains(out, u) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (g *Game) applyMove(c Command) bool {
	units := g.ownUnits(c)
	for i, p := range Formation(c.Pos, len(units)) {
		units[i].MoveTo(p)
	}
	return len(units) > 0
}

// Formation spreads n destinations on a square grid centred on center.
func Formation(center core.Position, n int) []core.Position {
	if n <= 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	offX := -float64(cols-1) * FormationSpacing / 2
	offY := -float64(rows-1) * FormationSpacing / 2

	out := make([]core.Position, n)
	for i := range out {
		col, row := i%cols, i/cols
		out[i] = core.Pos(
			center.X+offX+float64(col)*FormationSpacing,
			center.Y+offY+float64(row)*FormationSpacing,
		)
	}
	return out
}

func (g *Game) applyAttack(c Command) bool {
	if node := g.Node(c.Target); node != nil {
		return g.applyHarvest(c)
	}
	target := g.Unit(c.Target)
	if target == nil || target.IsDead() || !target.Faction().Opposes(c.Faction) {
		return false
	}
	ok := false
	for _, u := range g.ownUnits(c) {
		if !u.Stats().CanAttack() {
			continue
		}
		u.SetTarget(target)
		ok = true
	}
	return ok
}

func (g *Game) applyHarvest(c Command) bool {
	node := g.Node(c.Target)
	if node == nil || node.IsDepleted() {
		return false
	}
	ok := false
	for _, u := range g.ownUnits(c) {
		if !u.Stats().CanHarvest() {
			continue
		}
		if home := g.nearestDropOff(node.Position(), u.Faction()); home != nil {
			u.SetReturnTarget(home)
		}
		u.SetHarvestTarget(node)
		ok = true
	}
	return ok
}

func (g *Game) applySiege(c Command) bool {
	b := g.Building(c.Target)
	if b == nil || b.IsDestroyed() {
		return false
	}
	ok := false
	for _, u := range g.ownUnits(c) {
		u.SetStructureTarget(b)
		ok = ok || u.OrderKind() == entity.OrderAttackStructure
	}
	return ok
}

func (g *Game) applyPlacement(c Command) bool {
	kind, valid := techtree.ParseBuildingType(c.Param)
	if !valid || c.Faction != core.FactionPlayer {
		return false
	}
	cost := g.tree.Building(kind).Cost
	if !g.economy.SpendEnergyCredits(cost) {
		g.log.Debug("insufficient funds", "building", kind.String(), "cost", cost,
			"credits", g.economy.EnergyCredits())
		return false
	}
	b := g.SpawnBuilding(kind, c.Pos, false)
	g.emit(core.EvtBuildingPlaced, buildingEvent(b))
	g.log.Info("building placed", "building", b.ID(), "type", kind.String(), "x", c.Pos.X, "y", c.Pos.Y)
	return true
}

func (g *Game) applyProduction(c Command) bool {
	b := g.Building(c.Target)
	if b == nil || b.IsDestroyed() || !b.IsConstructed() || c.Faction != core.FactionPlayer {
		return false
	}
	stats := b.Stats()
	if !stats.CanProduce() {
		return false
	}
	kind := stats.Produces[0]
	if c.Param != "" {
		t, valid := techtree.ParseUnitType(c.Param)
		if !valid || !stats.Produce(t) {
			return false
		}
		kind = t
	}
	cost := g.tree.Unit(kind).Cost
	if !g.economy.SpendEnergyCredits(cost) {
		g.log.Debug("insufficient funds", "unit", kind.String(), "cost", cost,
			"credits", g.economy.EnergyCredits())
		return false
	}
	return b.Enqueue(kind)
}

func (g *Game) applySelect(c Command) bool {
	if c.Faction != core.FactionPlayer {
		return false
	}
	for _, u := range g.units {
		u.Selected = u.Faction() == core.FactionPlayer && slices.Contains(c.Units, u.ID())
	}
	for _, b := range g.buildings {
		b.Selected = slices.Contains(c.Units, b.ID())
	}
	return true
}

// nearestDropOff picks where harvested loads go: the closest constructed
// refinery, else the closest constructed command center.
func (g *Game) nearestDropOff(from core.Position, f core.Faction) *entity.Building {
	if f != core.FactionPlayer {
		return nil
	}
	for _, kind := range []techtree.BuildingType{techtree.Refinery, techtree.CommandCenter} {
		var best *entity.Building
		bestDist := math.MaxFloat64
		for _, b := range g.buildings {
			if b.Type() != kind || !b.IsConstructed() || b.IsDestroyed() {
				continue
			}
			if d := from.DistanceTo(b.Position()); d < bestDist {
				best, bestDist = b, d
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}
