package game

import (
	"math"
	"math/rand/v2"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/techtree"
)

// UnitSpawn places a unit at session start.
type UnitSpawn struct {
	Type    techtree.UnitType
	Faction core.Faction
	Pos     core.Position
}

// BuildingSpawn places a player building at session start.
type BuildingSpawn struct {
	Type        techtree.BuildingType
	Pos         core.Position
	Constructed bool
}

// Cluster scatters a random number of resource nodes around Center.
type Cluster struct {
	Center    core.Position
	MinNodes  int
	MaxNodes  int
	MinRadius float64
	MaxRadius float64
	MinAmount int
	MaxAmount int
}

// Scenario is the opening state of a session.
type Scenario struct {
	Credits   float64
	Units     []UnitSpawn
	Buildings []BuildingSpawn
	Clusters  []Cluster
}

// DefaultScenario is the stock opening: a small player squad with one
// harvester and a command center, two enemy infantry, and four promethium
// fields.
func DefaultScenario() Scenario {
	field := func(x, y float64) Cluster {
		return Cluster{
			Center:   core.Pos(x, y),
			MinNodes: 3, MaxNodes: 7,
			MinRadius: 0.5, MaxRadius: 2.5,
			MinAmount: 700, MaxAmount: 1199,
		}
	}
	return Scenario{
		Credits: 1000,
		Units: []UnitSpawn{
			{techtree.Infantry, core.FactionPlayer, core.Pos(0, 0)},
			{techtree.Infantry, core.FactionPlayer, core.Pos(2, 2)},
			{techtree.Infantry, core.FactionPlayer, core.Pos(-2, -2)},
			{techtree.Harvester, core.FactionPlayer, core.Pos(4, -4)},
			{techtree.Infantry, core.FactionEnemy, core.Pos(5, 5)},
			{techtree.Infantry, core.FactionEnemy, core.Pos(7, 5)},
		},
		Buildings: []BuildingSpawn{
			{techtree.CommandCenter, core.Pos(-4, 2), true},
		},
		Clusters: []Cluster{
			field(8, 0), field(-8, 8), field(0, -10), field(-12, -8),
		},
	}
}

// Load spawns the scenario into the session. Node placement and sizes are
// drawn from a generator seeded with seed, so equal seeds give equal maps.
func (g *Game) Load(s Scenario, seed uint64) {
	g.economy.GrantEnergyCredits(s.Credits)
	for _, b := range s.Buildings {
		g.SpawnBuilding(b.Type, b.Pos, b.Constructed)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for _, c := range s.Clusters {
		g.spawnCluster(c, rng)
	}
	for _, u := range s.Units {
		unit := g.SpawnUnit(u.Type, u.Faction, u.Pos)
		if unit.Stats().CanHarvest() {
			if home := g.nearestDropOff(unit.Position(), unit.Faction()); home != nil {
				unit.SetReturnTarget(home)
			}
		}
	}
	g.log.Info("scenario loaded", "units", len(g.units), "buildings", len(g.buildings),
		"nodes", len(g.nodes), "credits", s.Credits, "seed", seed)
}

func (g *Game) spawnCluster(c Cluster, rng *rand.Rand) {
	count := c.MinNodes + between(rng, c.MaxNodes-c.MinNodes)
	for range count {
		angle := rng.Float64() * 2 * math.Pi
		radius := c.MinRadius + rng.Float64()*max(0, c.MaxRadius-c.MinRadius)
		p := c.Center.Add(math.Cos(angle)*radius, math.Sin(angle)*radius)
		g.SpawnNode(p, c.MinAmount+between(rng, c.MaxAmount-c.MinAmount))
	}
}

// between returns a value in [0, n], or 0 for n <= 0.
func between(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.IntN(n + 1)
}
