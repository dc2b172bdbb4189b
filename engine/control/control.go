// Package control turns one frame of pointer and keyboard gestures into
// player commands. It knows nothing about the windowing library; the input
// package fills in a Frame from the real devices.
package control

import (
	"image"
	"slices"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/game"
	"github.com/1siamBot/promethium/engine/techtree"
)

// Frame is the gesture summary for one rendered frame.
type Frame struct {
	MouseX, MouseY int

	LeftClick  bool            // released without dragging
	Box        image.Rectangle // finished drag, screen space
	BoxDone    bool
	RightClick bool
	Shift      bool

	Place    techtree.BuildingType
	HasPlace bool
	Produce  int // 1-based roster slot of the selected building, 0 for none
	Stop     bool
	Ability  bool
	Cancel   bool
}

type Commander interface {
	Issue(game.Command)
}

// Projector maps between screen pixels and world units.
type Projector interface {
	ScreenToWorld(sx, sy int) (float64, float64)
	WorldToScreen(wx, wy float64) (int, int)
}

// Pick radii in screen pixels.
const (
	UnitPickRadius     = 14
	BuildingPickRadius = 26
	NodePickRadius     = 12
)

// AbilityName is what the ability key triggers.
const AbilityName = "boost"

type Controller struct {
	tree *techtree.TechTree

	placing    techtree.BuildingType
	hasPlacing bool
}

// NewController reads production rosters from tree; nil means the stock
// tables.
func NewController(tree *techtree.TechTree) *Controller {
	if tree == nil {
		def := techtree.Default()
		tree = &def
	}
	return &Controller{tree: tree}
}

// Placement reports the building waiting for a ground click.
func (c *Controller) Placement() (techtree.BuildingType, bool) {
	return c.placing, c.hasPlacing
}

// Handle issues the commands for f against the state in snap.
func (c *Controller) Handle(f Frame, snap game.Snapshot, cam Projector, cmd Commander) {
	if f.Cancel {
		c.hasPlacing = false
	}
	if f.HasPlace {
		c.placing, c.hasPlacing = f.Place, true
	}

	switch {
	case f.LeftClick && c.hasPlacing:
		x, y := cam.ScreenToWorld(f.MouseX, f.MouseY)
		cmd.Issue(game.Command{Type: game.CmdPlaceBuilding, Pos: core.Pos(x, y), Param: c.placing.String()})
		if !f.Shift {
			c.hasPlacing = false
		}
	case f.LeftClick:
		c.clickSelect(f, snap, cam, cmd)
	case f.BoxDone:
		c.boxSelect(f, snap, cam, cmd)
	}

	if f.RightClick {
		if c.hasPlacing {
			c.hasPlacing = false
		} else {
			c.order(f, snap, cam, cmd)
		}
	}

	sel := snap.Selected()
	if f.Stop && len(sel) > 0 {
		cmd.Issue(game.Command{Type: game.CmdStop, Units: sel})
	}
	if f.Ability {
		for _, id := range sel {
			cmd.Issue(game.Command{Type: game.CmdAbility, Units: []core.EntityID{id}, Param: AbilityName})
		}
	}
	if f.Produce > 0 {
		c.produce(f.Produce-1, snap, cmd)
	}
}

func (c *Controller) clickSelect(f Frame, snap game.Snapshot, cam Projector, cmd Commander) {
	if u, ok := unitAt(snap, cam, f.MouseX, f.MouseY, func(u game.UnitView) bool {
		return u.Faction == core.FactionPlayer
	}); ok {
		ids := []core.EntityID{u.ID}
		if f.Shift {
			ids = toggle(snap.Selected(), u.ID)
		}
		cmd.Issue(game.Command{Type: game.CmdSelect, Units: ids})
		return
	}
	if b, ok := buildingAt(snap, cam, f.MouseX, f.MouseY); ok {
		cmd.Issue(game.Command{Type: game.CmdSelect, Units: []core.EntityID{b.ID}})
		return
	}
	if !f.Shift {
		cmd.Issue(game.Command{Type: game.CmdSelect})
	}
}

func (c *Controller) boxSelect(f Frame, snap game.Snapshot, cam Projector, cmd Commander) {
	box := f.Box.Canon()
	var ids []core.EntityID
	if f.Shift {
		ids = snap.Selected()
	}
	for _, u := range snap.Units {
		if u.Faction != core.FactionPlayer {
			continue
		}
		sx, sy := cam.WorldToScreen(u.Position.X, u.Position.Y)
		if image.Pt(sx, sy).In(box.Inset(-1)) && !slices.Contains(ids, u.ID) {
			ids = append(ids, u.ID)
		}
	}
	cmd.Issue(game.Command{Type: game.CmdSelect, Units: ids})
}

// order is the right-click context command: attack an enemy, harvest a
// node, or move to the ground under the cursor.
func (c *Controller) order(f Frame, snap game.Snapshot, cam Projector, cmd Commander) {
	sel := snap.Selected()
	if len(sel) == 0 {
		return
	}
	if e, ok := unitAt(snap, cam, f.MouseX, f.MouseY, func(u game.UnitView) bool {
		return u.Faction.Opposes(core.FactionPlayer)
	}); ok {
		cmd.Issue(game.Command{Type: game.CmdAttack, Units: sel, Target: e.ID})
		return
	}
	if n, ok := nodeAt(snap, cam, f.MouseX, f.MouseY); ok {
		cmd.Issue(game.Command{Type: game.CmdAttack, Units: sel, Target: n.ID})
		return
	}
	x, y := cam.ScreenToWorld(f.MouseX, f.MouseY)
	cmd.Issue(game.Command{Type: game.CmdMove, Units: sel, Pos: core.Pos(x, y)})
}

func (c *Controller) produce(slot int, snap game.Snapshot, cmd Commander) {
	b, ok := snap.SelectedBuilding()
	if !ok || b.Construction < 1 {
		return
	}
	roster := c.tree.Building(b.Type).Produces
	if slot >= len(roster) {
		return
	}
	cmd.Issue(game.Command{Type: game.CmdStartProduction, Target: b.ID, Param: roster[slot].String()})
}

func toggle(ids []core.EntityID, id core.EntityID) []core.EntityID {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return append(ids, id)
}

func within(cam Projector, p core.Position, mx, my, radius int) (int, bool) {
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	dx, dy := sx-mx, sy-my
	d2 := dx*dx + dy*dy
	return d2, d2 <= radius*radius
}

func unitAt(snap game.Snapshot, cam Projector, mx, my int, keep func(game.UnitView) bool) (game.UnitView, bool) {
	var best game.UnitView
	bestD, found := 0, false
	for _, u := range snap.Units {
		if !keep(u) {
			continue
		}
		if d, ok := within(cam, u.Position, mx, my, UnitPickRadius); ok && (!found || d < bestD) {
			best, bestD, found = u, d, true
		}
	}
	return best, found
}

func buildingAt(snap game.Snapshot, cam Projector, mx, my int) (game.BuildingView, bool) {
	var best game.BuildingView
	bestD, found := 0, false
	for _, b := range snap.Buildings {
		if d, ok := within(cam, b.Position, mx, my, BuildingPickRadius); ok && (!found || d < bestD) {
			best, bestD, found = b, d, true
		}
	}
	return best, found
}

func nodeAt(snap game.Snapshot, cam Projector, mx, my int) (game.NodeView, bool) {
	var best game.NodeView
	bestD, found := 0, false
	for _, n := range snap.Nodes {
		if d, ok := within(cam, n.Position, mx, my, NodePickRadius); ok && (!found || d < bestD) {
			best, bestD, found = n, d, true
		}
	}
	return best, found
}
