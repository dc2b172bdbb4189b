package ai

import (
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/game"
	"github.com/1siamBot/promethium/engine/techtree"
)

type recorder struct {
	cmds []game.Command
}

func (r *recorder) Issue(c game.Command) { r.cmds = append(r.cmds, c) }

func (r *recorder) ofType(t game.CmdType) []game.Command {
	var out []game.Command
	for _, c := range r.cmds {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

func newGame() *game.Game {
	return game.New(game.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
}

func newController(t *testing.T, f core.Faction, d Difficulty) *Controller {
	t.Helper()
	c, err := NewController(f, d, nil)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c
}

func TestDefaultRulesCompile(t *testing.T) {
	engine, err := NewEngine(DefaultRules())
	if err != nil {
		t.Fatalf("NewEngine(DefaultRules()) failed: %v", err)
	}
	rules := engine.Rules()
	if len(rules) != 8 {
		t.Errorf("expected 8 rules, got %d", len(rules))
	}
	for i := 1; i < len(rules); i++ {
		if rules[i].Priority > rules[i-1].Priority {
			t.Errorf("rules not sorted by priority: %s (%d) > %s (%d)",
				rules[i].Name, rules[i].Priority, rules[i-1].Name, rules[i-1].Priority)
		}
	}
}

func TestBadConditionRejected(t *testing.T) {
	_, err := NewEngine([]*Rule{{Name: "broken", ConditionSrc: `NoSuchHelper() > 1`}})
	if err == nil {
		t.Fatal("expected compile error")
	}
	_, err = NewEngine([]*Rule{{Name: "not-bool", ConditionSrc: `WaveSize()`}})
	if err == nil {
		t.Fatal("expected non-bool condition to be rejected")
	}
}

func TestDifficultyTable(t *testing.T) {
	for _, tc := range []struct {
		name        string
		think, wave float64
	}{
		{"easy", 8, 60},
		{"MEDIUM", 5, 45},
		{"hard", 3, 30},
	} {
		d, err := ParseDifficulty(tc.name)
		if err != nil {
			t.Fatalf("ParseDifficulty(%q): %v", tc.name, err)
		}
		if d.ThinkInterval() != tc.think || d.WaveInterval() != tc.wave {
			t.Errorf("%s: think=%v wave=%v", tc.name, d.ThinkInterval(), d.WaveInterval())
		}
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("unknown difficulty accepted")
	}
}

func TestIdleHarvesterSentToNearestNode(t *testing.T) {
	g := newGame()
	g.SpawnUnit(techtree.Harvester, core.FactionPlayer, core.Pos(0, 0))
	near := g.SpawnNode(core.Pos(5, 0), 500)
	g.SpawnNode(core.Pos(20, 0), 500)
	g.SpawnUnit(techtree.Infantry, core.FactionEnemy, core.Pos(100, 100))

	rec := &recorder{}
	fired := newController(t, core.FactionPlayer, DiffMedium).Think(g.Snapshot(), g.Tree(), rec)

	if !slices.Contains(fired, "send-idle-harvesters") {
		t.Fatalf("fired = %v", fired)
	}
	cmds := rec.ofType(game.CmdHarvest)
	if len(cmds) != 1 || cmds[0].Target != near.ID() || cmds[0].Faction != core.FactionPlayer {
		t.Fatalf("harvest commands = %+v", cmds)
	}
}

func TestDefendsAgainstIntruders(t *testing.T) {
	g := newGame()
	g.SpawnBuilding(techtree.CommandCenter, core.Pos(0, 0), true)
	guard := g.SpawnUnit(techtree.Infantry, core.FactionPlayer, core.Pos(2, 0))
	intruder := g.SpawnUnit(techtree.Infantry, core.FactionEnemy, core.Pos(5, 0))
	g.SpawnUnit(techtree.Infantry, core.FactionEnemy, core.Pos(80, 0))

	rec := &recorder{}
	newController(t, core.FactionPlayer, DiffEasy).Think(g.Snapshot(), g.Tree(), rec)

	cmds := rec.ofType(game.CmdAttack)
	if len(cmds) != 1 || cmds[0].Target != intruder.ID() || !slices.Contains(cmds[0].Units, guard.ID()) {
		t.Fatalf("attack commands = %+v", cmds)
	}
}

func TestWaveWaitsForTimerAndArmy(t *testing.T) {
	g := newGame()
	g.SpawnUnit(techtree.Infantry, core.FactionPlayer, core.Pos(0, 0))
	var raiders []core.EntityID
	for i := range 3 {
		raiders = append(raiders, g.SpawnUnit(techtree.Infantry, core.FactionEnemy, core.Pos(40, float64(i))).ID())
	}
	c := newController(t, core.FactionEnemy, DiffMedium)

	c.Update(44, g)
	if g.PendingCommands() != 0 {
		t.Fatalf("wave launched before it was due")
	}
	c.Update(5, g)
	if g.PendingCommands() != 0 || c.Waves() != 0 {
		t.Fatalf("wave launched with %d raiders, want at least %d", len(raiders), DiffMedium.WaveSize())
	}

	raiders = append(raiders, g.SpawnUnit(techtree.Tank, core.FactionEnemy, core.Pos(41, 0)).ID())
	c.Update(5, g)
	if c.Waves() != 1 || g.PendingCommands() != 1 {
		t.Fatalf("waves=%d pending=%d", c.Waves(), g.PendingCommands())
	}
	g.Update(0.25)
	for _, id := range raiders {
		if k := g.Unit(id).OrderKind(); k.String() != "attacking" {
			t.Errorf("raider %d order = %v", id, k)
		}
	}
}

func TestSiegeWhenBuildingsAreCloser(t *testing.T) {
	g := newGame()
	target := g.SpawnBuilding(techtree.Refinery, core.Pos(10, 0), true)
	g.SpawnUnit(techtree.Infantry, core.FactionPlayer, core.Pos(-90, 0))
	for i := range 3 {
		g.SpawnUnit(techtree.Infantry, core.FactionEnemy, core.Pos(20, float64(i)))
	}
	c := newController(t, core.FactionEnemy, DiffEasy)
	c.waveTimer = DiffEasy.WaveInterval()

	rec := &recorder{}
	fired := c.Think(g.Snapshot(), g.Tree(), rec)
	if !slices.Contains(fired, "siege-wave") || slices.Contains(fired, "attack-wave") {
		t.Fatalf("fired = %v", fired)
	}
	cmds := rec.ofType(game.CmdSiege)
	if len(cmds) != 1 || cmds[0].Target != target.ID() || len(cmds[0].Units) != 3 {
		t.Fatalf("siege commands = %+v", cmds)
	}
	if c.Waves() != 1 || c.waveTimer != 0 {
		t.Errorf("waves=%d timer=%v", c.Waves(), c.waveTimer)
	}
}

func TestBuildsPowerBeforeAnythingElse(t *testing.T) {
	g := newGame()
	g.SpawnBuilding(techtree.CommandCenter, core.Pos(0, 0), true)
	for i := range 6 {
		g.SpawnBuilding(techtree.Refinery, core.Pos(float64(10+i*3), 10), true)
	}
	g.SpawnUnit(techtree.Infantry, core.FactionPlayer, core.Pos(-50, -50))
	g.SpawnUnit(techtree.Infantry, core.FactionEnemy, core.Pos(90, 90))
	g.Economy().GrantEnergyCredits(1000)
	g.Update(0.25)

	rec := &recorder{}
	fired := newController(t, core.FactionPlayer, DiffHard).Think(g.Snapshot(), g.Tree(), rec)

	if !slices.Contains(fired, "build-power") {
		t.Fatalf("fired = %v", fired)
	}
	place := rec.ofType(game.CmdPlaceBuilding)
	if len(place) != 1 || place[0].Param != "PowerPlant" {
		t.Fatalf("placements = %+v", place)
	}
}

func TestProducesAtIdleProducers(t *testing.T) {
	g := newGame()
	g.SpawnBuilding(techtree.PowerPlant, core.Pos(0, 0), true)
	barracks := g.SpawnBuilding(techtree.Barracks, core.Pos(5, 0), true)
	g.SpawnBuilding(techtree.Factory, core.Pos(10, 0), false)
	g.SpawnUnit(techtree.Infantry, core.FactionPlayer, core.Pos(-50, -50))
	g.SpawnUnit(techtree.Infantry, core.FactionEnemy, core.Pos(90, 90))
	g.Economy().GrantEnergyCredits(500)

	rec := &recorder{}
	newController(t, core.FactionPlayer, DiffMedium).Think(g.Snapshot(), g.Tree(), rec)

	prod := rec.ofType(game.CmdStartProduction)
	if len(prod) != 1 || prod[0].Target != barracks.ID() {
		t.Fatalf("production commands = %+v", prod)
	}
}

func TestEnemyNeverSpendsPlayerCredits(t *testing.T) {
	g := newGame()
	g.SpawnBuilding(techtree.CommandCenter, core.Pos(0, 0), true)
	g.SpawnUnit(techtree.Harvester, core.FactionEnemy, core.Pos(50, 50))
	g.SpawnUnit(techtree.Infantry, core.FactionPlayer, core.Pos(-50, -50))
	g.Economy().GrantEnergyCredits(5000)

	rec := &recorder{}
	newController(t, core.FactionEnemy, DiffHard).Think(g.Snapshot(), g.Tree(), rec)

	if n := len(rec.ofType(game.CmdPlaceBuilding)) + len(rec.ofType(game.CmdStartProduction)); n != 0 {
		t.Fatalf("enemy issued %d economy commands", n)
	}
}

func TestEnvCost(t *testing.T) {
	tree := techtree.Default()
	env := Env{Tree: &tree}
	if env.Cost("tank") != 150 || env.Cost("Factory") != 300 {
		t.Errorf("costs = %v, %v", env.Cost("tank"), env.Cost("Factory"))
	}
	if env.CanAfford(env.Cost("Dreadnought")) {
		t.Error("unknown type is affordable")
	}
}
