package ai

import (
	"math"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/entity"
	"github.com/1siamBot/promethium/engine/game"
	"github.com/1siamBot/promethium/engine/techtree"
)

// DefendRadius is how close an opposing unit must come to a base
// building or harvester to count as an intruder.
const DefendRadius = 10.0

// Env wraps a snapshot and exposes the helpers rule conditions call.
// Buildings always belong to the player faction.
type Env struct {
	State   game.Snapshot
	Faction core.Faction
	Side    string
	Tree    *techtree.TechTree
	Memory  map[string]any

	WaveIsDue bool
	Wave      int
}

func (e Env) own(u game.UnitView) bool { return u.Faction == e.Faction }

func (e Env) unitStats(u game.UnitView) techtree.UnitStats { return e.Tree.Unit(u.Type) }

// Own returns this faction's living units.
func (e Env) Own() []game.UnitView {
	var out []game.UnitView
	for _, u := range e.State.Units {
		if e.own(u) {
			out = append(out, u)
		}
	}
	return out
}

// Army returns this faction's armed units.
func (e Env) Army() []game.UnitView {
	var out []game.UnitView
	for _, u := range e.State.Units {
		if e.own(u) && e.unitStats(u).CanAttack() {
			out = append(out, u)
		}
	}
	return out
}

// IdleArmy returns armed units with no order.
func (e Env) IdleArmy() []game.UnitView {
	var out []game.UnitView
	for _, u := range e.Army() {
		if u.Order == entity.OrderIdle {
			out = append(out, u)
		}
	}
	return out
}

func (e Env) IdleHarvesters() []game.UnitView {
	var out []game.UnitView
	for _, u := range e.State.Units {
		if e.own(u) && u.Order == entity.OrderIdle && e.unitStats(u).CanHarvest() {
			out = append(out, u)
		}
	}
	return out
}

// Enemies returns the opposing faction's living units.
func (e Env) Enemies() []game.UnitView {
	var out []game.UnitView
	for _, u := range e.State.Units {
		if !e.own(u) {
			out = append(out, u)
		}
	}
	return out
}

// Buildings returns the faction's own buildings.
func (e Env) Buildings() []game.BuildingView {
	if e.Faction != core.FactionPlayer {
		return nil
	}
	return e.State.Buildings
}

// EnemyBuildings returns the buildings this faction may besiege.
func (e Env) EnemyBuildings() []game.BuildingView {
	if e.Faction == core.FactionPlayer {
		return nil
	}
	return e.State.Buildings
}

// Intruders returns opposing units near one of this faction's buildings
// or harvesters.
func (e Env) Intruders() []game.UnitView {
	var anchors []core.Position
	for _, b := range e.Buildings() {
		anchors = append(anchors, b.Position)
	}
	for _, u := range e.Own() {
		if e.unitStats(u).CanHarvest() {
			anchors = append(anchors, u.Position)
		}
	}
	var out []game.UnitView
	for _, u := range e.Enemies() {
		for _, a := range anchors {
			if u.Position.DistanceTo(a) <= DefendRadius {
				out = append(out, u)
				break
			}
		}
	}
	return out
}

func (e Env) HasNodes() bool { return len(e.State.Nodes) > 0 }

// BuildingCount counts own buildings of the named type, finished or not.
func (e Env) BuildingCount(name string) int {
	t, ok := techtree.ParseBuildingType(name)
	if !ok {
		return 0
	}
	n := 0
	for _, b := range e.Buildings() {
		if b.Type == t {
			n++
		}
	}
	return n
}

// IdleProducers returns finished production buildings with an empty queue.
func (e Env) IdleProducers() []game.BuildingView {
	var out []game.BuildingView
	for _, b := range e.Buildings() {
		if b.Construction >= 1 && b.Queue == 0 && e.Tree.Building(b.Type).CanProduce() {
			out = append(out, b)
		}
	}
	return out
}

// Credits is the faction's spendable balance. Only the player has an
// economy.
func (e Env) Credits() float64 {
	if e.Faction != core.FactionPlayer {
		return 0
	}
	return e.State.Economy.EnergyCredits
}

func (e Env) Efficiency() float64 { return e.State.Economy.Efficiency }

func (e Env) CanAfford(cost float64) bool { return e.Credits() >= cost }

// Cost returns the price of a named unit or building type, or +Inf for
// an unknown name.
func (e Env) Cost(name string) float64 {
	if t, ok := techtree.ParseUnitType(name); ok {
		return e.Tree.Unit(t).Cost
	}
	if t, ok := techtree.ParseBuildingType(name); ok {
		return e.Tree.Building(t).Cost
	}
	return math.Inf(1)
}

func (e Env) WaveDue() bool { return e.WaveIsDue }

func (e Env) WaveSize() int { return e.Wave }

// StructureFirst reports whether the nearest opposing building is closer
// to the army than the nearest opposing unit.
func (e Env) StructureFirst() bool {
	center, ok := centroid(e.Army())
	if !ok {
		return false
	}
	_, bd, okB := nearestBuilding(center, e.EnemyBuildings())
	_, ud, okU := nearestUnit(center, e.Enemies())
	return okB && (!okU || bd < ud)
}

// Base is where new buildings are placed around: the first command
// center, else the first building, else the army's centre.
func (e Env) Base() core.Position {
	bs := e.Buildings()
	for _, b := range bs {
		if b.Type == techtree.CommandCenter {
			return b.Position
		}
	}
	if len(bs) > 0 {
		return bs[0].Position
	}
	c, _ := centroid(e.Own())
	return c
}

func centroid(units []game.UnitView) (core.Position, bool) {
	if len(units) == 0 {
		return core.Position{}, false
	}
	var x, y float64
	for _, u := range units {
		x += u.Position.X
		y += u.Position.Y
	}
	n := float64(len(units))
	return core.Pos(x/n, y/n), true
}

func nearestUnit(from core.Position, units []game.UnitView) (game.UnitView, float64, bool) {
	var best game.UnitView
	bestDist := math.MaxFloat64
	for _, u := range units {
		if d := from.DistanceTo(u.Position); d < bestDist {
			best, bestDist = u, d
		}
	}
	return best, bestDist, bestDist < math.MaxFloat64
}

func nearestBuilding(from core.Position, buildings []game.BuildingView) (game.BuildingView, float64, bool) {
	var best game.BuildingView
	bestDist := math.MaxFloat64
	for _, b := range buildings {
		if d := from.DistanceTo(b.Position); d < bestDist {
			best, bestDist = b, d
		}
	}
	return best, bestDist, bestDist < math.MaxFloat64
}

func nearestNode(from core.Position, nodes []game.NodeView) (game.NodeView, bool) {
	var best game.NodeView
	bestDist := math.MaxFloat64
	for _, n := range nodes {
		if d := from.DistanceTo(n.Position); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, bestDist < math.MaxFloat64
}

func ids(units []game.UnitView) []core.EntityID {
	out := make([]core.EntityID, len(units))
	for i, u := range units {
		out[i] = u.ID
	}
	return out
}
