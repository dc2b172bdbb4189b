package game

import (
	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/economy"
	"github.com/1siamBot/promethium/engine/entity"
	"github.com/1siamBot/promethium/engine/techtree"
)

// UnitView is a read-only copy of a unit for renderers.
type UnitView struct {
	ID       core.EntityID
	Type     techtree.UnitType
	Faction  core.Faction
	Position core.Position
	Health   float64 // fraction of max
	Selected bool
	Carried  int
	Order    entity.OrderKind
	Boosted  bool
}

// BuildingView is a read-only copy of a building for renderers.
type BuildingView struct {
	ID           core.EntityID
	Type         techtree.BuildingType
	Position     core.Position
	Health       float64
	Construction float64
	Production   float64
	Queue        int
	Selected     bool
}

// NodeView is a read-only copy of a resource node.
type NodeView struct {
	ID       core.EntityID
	Position core.Position
	Amount   int
	Fraction float64
}

// Snapshot is everything a renderer or HUD needs for one frame. It shares
// nothing with the live session.
type Snapshot struct {
	Session   string
	Tick      uint64
	Result    core.Result
	Economy   economy.Totals
	Units     []UnitView
	Buildings []BuildingView
	Nodes     []NodeView
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Session:   g.id.String(),
		Tick:      g.tick,
		Result:    g.result,
		Economy:   g.economy.Totals(),
		Units:     make([]UnitView, 0, len(g.units)),
		Buildings: make([]BuildingView, 0, len(g.buildings)),
		Nodes:     make([]NodeView, 0, len(g.nodes)),
	}
	for _, u := range g.units {
		s.Units = append(s.Units, UnitView{
			ID:       u.ID(),
			Type:     u.Type(),
			Faction:  u.Faction(),
			Position: u.Position(),
			Health:   u.HealthFraction(),
			Selected: u.Selected,
			Carried:  u.CarriedResources(),
			Order:    u.OrderKind(),
			Boosted:  u.IsBoosted(),
		})
	}
	for _, b := range g.buildings {
		s.Buildings = append(s.Buildings, BuildingView{
			ID:           b.ID(),
			Type:         b.Type(),
			Position:     b.Position(),
			Health:       b.HealthFraction(),
			Construction: b.ConstructionFraction(),
			Production:   b.ProductionFraction(),
			Queue:        b.ProductionQueue(),
			Selected:     b.Selected,
		})
	}
	for _, n := range g.nodes {
		s.Nodes = append(s.Nodes, NodeView{
			ID:       n.ID(),
			Position: n.Position(),
			Amount:   n.Amount(),
			Fraction: n.Fraction(),
		})
	}
	return s
}

// Selected returns the ids of selected player units, in entity order.
func (s Snapshot) Selected() []core.EntityID {
	var ids []core.EntityID
	for _, u := range s.Units {
		if u.Selected {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

// SelectedBuilding returns the first selected building, if any.
func (s Snapshot) SelectedBuilding() (BuildingView, bool) {
	for _, b := range s.Buildings {
		if b.Selected {
			return b, true
		}
	}
	return BuildingView{}, false
}

// Count returns the living units of faction f.
func (s Snapshot) Count(f core.Faction) int {
	n := 0
	for _, u := range s.Units {
		if u.Faction == f {
			n++
		}
	}
	return n
}
