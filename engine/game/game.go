// Package game drives one play session: it owns every unit, building and
// resource node, applies queued commands, advances the simulation once per
// frame, sweeps the dead, and decides when the game is over.
package game

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/economy"
	"github.com/1siamBot/promethium/engine/entity"
	"github.com/1siamBot/promethium/engine/techtree"
)

// Controller is an automated player. Controllers run once per tick after
// events are dispatched; the commands they issue apply on the next tick.
type Controller interface {
	Update(dt float64, g *Game)
}

// Options configures a new session.
type Options struct {
	// Tree defaults to techtree.Default().
	Tree *techtree.TechTree
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// ID defaults to a random session id.
	ID uuid.UUID
}

// Game is a single session. It is not safe for concurrent use: all
// mutation happens inside Update.
type Game struct {
	id   uuid.UUID
	tree techtree.TechTree
	log  *slog.Logger

	ids     core.IDAllocator
	clock   core.SimClock
	events  *core.EventBus
	economy *economy.ResourceManager

	units     []*entity.Unit
	buildings []*entity.Building
	nodes     []*entity.ResourceNode
	unitByID  map[core.EntityID]*entity.Unit
	bldByID   map[core.EntityID]*entity.Building
	nodeByID  map[core.EntityID]*entity.ResourceNode

	impacts     []entity.Impact
	commands    []Command
	controllers []Controller

	tick   uint64
	result core.Result
}

// New creates an empty session.
func New(opts Options) *Game {
	g := &Game{
		id:       opts.ID,
		tree:     techtree.Default(),
		events:   core.NewEventBus(),
		unitByID: make(map[core.EntityID]*entity.Unit),
		bldByID:  make(map[core.EntityID]*entity.Building),
		nodeByID: make(map[core.EntityID]*entity.ResourceNode),
	}
	if opts.Tree != nil {
		g.tree = *opts.Tree
	}
	if g.id == uuid.Nil {
		g.id = uuid.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	g.log = logger.With("session", g.id.String())
	g.economy = economy.NewResourceManager(g)
	return g
}

func (g *Game) ID() uuid.UUID                     { return g.id }
func (g *Game) Tree() *techtree.TechTree          { return &g.tree }
func (g *Game) Events() *core.EventBus            { return g.events }
func (g *Game) Economy() *economy.ResourceManager { return g.economy }
func (g *Game) Tick() uint64                      { return g.tick }
func (g *Game) Result() core.Result               { return g.result }
func (g *Game) IsOver() bool                      { return g.result != core.ResultNone }
func (g *Game) Units() []*entity.Unit             { return g.units }
func (g *Game) Buildings() []*entity.Building     { return g.buildings }
func (g *Game) Nodes() []*entity.ResourceNode     { return g.nodes }

// AddController registers an automated player.
func (g *Game) AddController(c Controller) {
	g.controllers = append(g.controllers, c)
}

// SpawnUnit adds a unit at p with no cost.
func (g *Game) SpawnUnit(kind techtree.UnitType, f core.Faction, p core.Position) *entity.Unit {
	u := entity.NewUnit(g.ids.Next(), kind, f, g.tree.Unit(kind), p)
	g.units = append(g.units, u)
	g.unitByID[u.ID()] = u
	return u
}

// SpawnBuilding adds a player building at p with no cost and registers it
// with the economy.
func (g *Game) SpawnBuilding(kind techtree.BuildingType, p core.Position, constructed bool) *entity.Building {
	b := entity.NewBuilding(g.ids.Next(), kind, &g.tree, p)
	if constructed {
		b.CompleteConstruction()
	}
	g.buildings = append(g.buildings, b)
	g.bldByID[b.ID()] = b
	g.economy.AddBuilding(b.ID())
	return b
}

// SpawnNode adds a resource node and registers it with the economy.
func (g *Game) SpawnNode(p core.Position, amount int) *entity.ResourceNode {
	n := entity.NewResourceNode(g.ids.Next(), p, amount)
	g.nodes = append(g.nodes, n)
	g.nodeByID[n.ID()] = n
	g.economy.AddNode(n.ID())
	return n
}

// Update advances the session by dt seconds. dt is clamped to
// core.MaxFrameTime (0.25s), so Update(1.0) advances a quarter second;
// callers stepping by hand with larger deltas must split them. NaN and
// negative deltas count as zero. Once the game has ended Update only
// delivers events still pending.
func (g *Game) Update(dt float64) {
	if g.IsOver() {
		g.events.Dispatch()
		return
	}
	dt = core.ClampDelta(dt)
	g.tick++
	g.clock.Advance(dt)

	g.drainCommands()
	g.economy.Update(dt)
	g.landImpacts(dt)
	for _, u := range g.units {
		u.Update(dt, g)
	}
	for _, b := range g.buildings {
		b.Update(dt, g)
	}
	g.sweep()
	g.checkEnd()
	g.events.Dispatch()

	if g.IsOver() {
		return
	}
	for _, c := range g.controllers {
		c.Update(dt, g)
	}
}

// landImpacts advances projectiles already in flight. Impacts scheduled
// during this tick start travelling on the next one.
func (g *Game) landImpacts(dt float64) {
	if dt <= 0 || len(g.impacts) == 0 {
		return
	}
	inFlight := g.impacts[:0]
	for _, imp := range g.impacts {
		imp.Delay -= dt
		if imp.Delay <= 0 {
			entity.ApplyImpact(g, imp)
			continue
		}
		inFlight = append(inFlight, imp)
	}
	g.impacts = inFlight
}

func (g *Game) sweep() {
	alive := g.units[:0]
	for _, u := range g.units {
		if !u.IsDead() {
			alive = append(alive, u)
			continue
		}
		delete(g.unitByID, u.ID())
		g.emit(core.EvtUnitDied, unitEvent(u))
	}
	clear(g.units[len(alive):])
	g.units = alive

	nodes := g.nodes[:0]
	for _, n := range g.nodes {
		if !n.IsDepleted() {
			nodes = append(nodes, n)
			continue
		}
		delete(g.nodeByID, n.ID())
		g.economy.RemoveNode(n.ID())
		g.emit(core.EvtNodeDepleted, NodeEvent{Node: n.ID(), Position: n.Position()})
	}
	clear(g.nodes[len(nodes):])
	g.nodes = nodes

	standing := g.buildings[:0]
	for _, b := range g.buildings {
		if !b.IsDestroyed() {
			standing = append(standing, b)
			continue
		}
		delete(g.bldByID, b.ID())
		g.economy.RemoveBuilding(b.ID())
		g.emit(core.EvtBuildingDestroyed, buildingEvent(b))
		g.log.Info("building destroyed", "building", b.ID(), "type", b.Type().String())
	}
	clear(g.buildings[len(standing):])
	g.buildings = standing
}

// checkEnd decides the result once. No enemy units left is a win, checked
// before no player units left.
func (g *Game) checkEnd() {
	var player, enemy int
	for _, u := range g.units {
		if u.IsEnemy() {
			enemy++
		} else {
			player++
		}
	}
	switch {
	case enemy == 0:
		g.result = core.ResultWin
	case player == 0:
		g.result = core.ResultLose
	default:
		return
	}
	g.emit(core.EvtGameEnded, EndEvent{Result: g.result, Name: g.result.String()})
	g.log.Info("game ended", "result", g.result.String(), "tick", g.tick)
}

func (g *Game) emit(t core.EventType, payload any) {
	g.events.Emit(core.Event{Type: t, Tick: g.tick, Payload: payload})
}

// World implementation used by entities while updating.

func (g *Game) Now() time.Duration { return g.clock.Now() }

func (g *Game) Unit(id core.EntityID) *entity.Unit         { return g.unitByID[id] }
func (g *Game) Node(id core.EntityID) *entity.ResourceNode { return g.nodeByID[id] }
func (g *Game) Building(id core.EntityID) *entity.Building { return g.bldByID[id] }

func (g *Game) ScheduleImpact(imp entity.Impact) { g.impacts = append(g.impacts, imp) }

// InFlight returns the number of projectiles that have not landed.
func (g *Game) InFlight() int { return len(g.impacts) }

func (g *Game) UnitsNear(p core.Position, radius float64) []*entity.Unit {
	var out []*entity.Unit
	for _, u := range g.units {
		if !u.IsDead() && u.Position().DistanceTo(p) <= radius {
			out = append(out, u)
		}
	}
	return out
}

func (g *Game) ShotFired(from, at core.Position) {
	g.emit(core.EvtUnitAttacked, ShotEvent{From: from, At: at})
}

func (g *Game) Deposit(u *entity.Unit, amount int) {
	g.economy.DepositPromethium(float64(amount))
	g.emit(core.EvtResourceDeposited, DepositEvent{Unit: u.ID(), Amount: amount})
}

func (g *Game) UnitProduced(b *entity.Building, t techtree.UnitType) {
	u := g.SpawnUnit(t, core.FactionPlayer, b.Position().Add(entity.SpawnOffset.X, entity.SpawnOffset.Y))
	if u.Stats().CanHarvest() {
		if home := g.nearestDropOff(u.Position(), u.Faction()); home != nil {
			u.SetReturnTarget(home)
		}
	}
	ev := unitEvent(u)
	ev.Building = b.ID()
	g.emit(core.EvtUnitProduced, ev)
	g.log.Info("unit produced", "unit", u.ID(), "type", t.String(), "building", b.ID())
}

func (g *Game) BuildingConstructed(b *entity.Building) {
	g.emit(core.EvtBuildingConstructed, buildingEvent(b))
	g.log.Info("building constructed", "building", b.ID(), "type", b.Type().String())
}
