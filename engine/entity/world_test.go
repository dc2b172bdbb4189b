package entity

import (
	"time"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/techtree"
)

// testWorld is a minimal World: flat slices, a manual clock, and
// immediate delivery of scheduled impacts when flush is called.
type testWorld struct {
	now       time.Duration
	units     []*Unit
	nodes     []*ResourceNode
	buildings []*Building

	pending   []Impact
	shots     int
	deposited int
	produced  []techtree.UnitType
	built     []core.EntityID
}

func (w *testWorld) Now() time.Duration { return w.now }

func (w *testWorld) advance(dt float64) {
	w.now += time.Duration(dt * float64(time.Second))
}

func (w *testWorld) Unit(id core.EntityID) *Unit {
	for _, u := range w.units {
		if u.ID() == id {
			return u
		}
	}
	return nil
}

func (w *testWorld) Node(id core.EntityID) *ResourceNode {
	for _, n := range w.nodes {
		if n.ID() == id {
			return n
		}
	}
	return nil
}

func (w *testWorld) Building(id core.EntityID) *Building {
	for _, b := range w.buildings {
		if b.ID() == id {
			return b
		}
	}
	return nil
}

func (w *testWorld) UnitsNear(p core.Position, radius float64) []*Unit {
	var out []*Unit
	for _, u := range w.units {
		if !u.IsDead() && u.Position().DistanceTo(p) <= radius {
			out = append(out, u)
		}
	}
	return out
}

func (w *testWorld) ScheduleImpact(imp Impact)        { w.pending = append(w.pending, imp) }
func (w *testWorld) ShotFired(from, at core.Position) { w.shots++ }
func (w *testWorld) Deposit(u *Unit, amount int)      { w.deposited += amount }
func (w *testWorld) UnitProduced(b *Building, t techtree.UnitType) {
	w.produced = append(w.produced, t)
}
func (w *testWorld) BuildingConstructed(b *Building) { w.built = append(w.built, b.ID()) }

func (w *testWorld) flush() {
	for _, imp := range w.pending {
		ApplyImpact(w, imp)
	}
	w.pending = nil
}

var tree = techtree.Default()

func (w *testWorld) addUnit(id core.EntityID, kind techtree.UnitType, f core.Faction, x, y float64) *Unit {
	u := NewUnit(id, kind, f, tree.Unit(kind), core.Pos(x, y))
	w.units = append(w.units, u)
	return u
}

func (w *testWorld) addNode(id core.EntityID, x, y float64, amount int) *ResourceNode {
	n := NewResourceNode(id, core.Pos(x, y), amount)
	w.nodes = append(w.nodes, n)
	return n
}

func (w *testWorld) addBuilding(id core.EntityID, kind techtree.BuildingType, x, y float64, constructed bool) *Building {
	b := NewBuilding(id, kind, &tree, core.Pos(x, y))
	if constructed {
		b.CompleteConstruction()
	}
	w.buildings = append(w.buildings, b)
	return b
}
