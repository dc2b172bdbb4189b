package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/techtree"
)

func TestDefaultMatchesStockOpening(t *testing.T) {
	c, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	if c.Session.StartingCredits != 1000 || c.Session.MaxFrameTime != core.MaxFrameTime {
		t.Fatalf("session = %+v", c.Session)
	}
	if !c.AI.Enemy.Enabled || c.AI.Player.Enabled {
		t.Fatalf("ai = %+v", c.AI)
	}
	s, err := c.GameScenario()
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Units) != 6 || len(s.Buildings) != 1 || len(s.Clusters) != 4 {
		t.Fatalf("scenario = %d units %d buildings %d clusters", len(s.Units), len(s.Buildings), len(s.Clusters))
	}
	tree, err := c.TechTree()
	if err != nil {
		t.Fatal(err)
	}
	if tree.Unit(techtree.Tank) != techtree.Default().Unit(techtree.Tank) {
		t.Fatalf("empty config changed tank stats")
	}
}

func TestLoadFullDocument(t *testing.T) {
	doc := `
session:
  seed: 42
  starting_credits: 500
  fixed_dt: 0.1
ai:
  player: {enabled: true, difficulty: hard}
  enemy: {enabled: false}
scenario:
  units:
    - {type: Tank, x: 1, y: 2}
    - {type: Infantry, faction: enemy, x: 9, y: 9}
  buildings:
    - {type: Barracks, x: -3, y: 0, constructed: true}
  clusters:
    - {x: 10, y: 10, min_nodes: 2, max_nodes: 2}
journal:
  path: out.jsonl.zst
  level: best
`
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Session.Seed != 42 || c.Session.FixedDT != 0.1 || c.Session.MaxFrameTime != core.MaxFrameTime {
		t.Fatalf("session = %+v", c.Session)
	}
	if !c.AI.Player.Enabled || c.AI.Player.Difficulty != "hard" {
		t.Fatalf("player ai = %+v", c.AI.Player)
	}
	if c.AI.Enemy.Enabled || c.AI.Enemy.Difficulty != "medium" {
		t.Fatalf("enemy ai = %+v", c.AI.Enemy)
	}
	if c.Journal.Path != "out.jsonl.zst" || c.Journal.Level != "best" {
		t.Fatalf("journal = %+v", c.Journal)
	}

	s, err := c.GameScenario()
	if err != nil {
		t.Fatal(err)
	}
	if s.Credits != 500 {
		t.Errorf("credits = %v, want 500", s.Credits)
	}
	if len(s.Units) != 2 || s.Units[0].Type != techtree.Tank || s.Units[0].Faction != core.FactionPlayer {
		t.Fatalf("units = %+v", s.Units)
	}
	if s.Units[1].Faction != core.FactionEnemy || s.Units[1].Pos != core.Pos(9, 9) {
		t.Fatalf("enemy spawn = %+v", s.Units[1])
	}
	if len(s.Buildings) != 1 || s.Buildings[0].Type != techtree.Barracks || !s.Buildings[0].Constructed {
		t.Fatalf("buildings = %+v", s.Buildings)
	}
	cl := s.Clusters[0]
	if cl.MinNodes != 2 || cl.MaxNodes != 2 {
		t.Errorf("cluster nodes = %d..%d, want 2..2", cl.MinNodes, cl.MaxNodes)
	}
	if cl.MinAmount != 700 || cl.MaxAmount != 1199 || cl.MaxRadius != 2.5 {
		t.Errorf("cluster did not fall back to stock shape: %+v", cl)
	}
}

func TestPartialStatOverride(t *testing.T) {
	c, err := Parse([]byte(`
units:
  Tank: {attack_damage: 40}
buildings:
  PowerPlant: {power_output: 150}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tree, err := c.TechTree()
	if err != nil {
		t.Fatal(err)
	}
	tank := tree.Unit(techtree.Tank)
	if tank.AttackDamage != 40 {
		t.Errorf("tank damage = %v, want 40", tank.AttackDamage)
	}
	if tank.Health != 200 || tank.SplashRadius != 1.5 {
		t.Errorf("omitted tank fields lost: %+v", tank)
	}
	if got := tree.Building(techtree.PowerPlant).PowerOutput; got != 150 {
		t.Errorf("power output = %v, want 150", got)
	}
	if !tree.Building(techtree.Factory).Produce(techtree.Tank) {
		t.Errorf("factory roster lost")
	}
}

func TestSchemaRejects(t *testing.T) {
	cases := map[string]string{
		"unknown section":    "weather: rainy\n",
		"bad difficulty":     "ai: {enemy: {difficulty: brutal}}\n",
		"unknown unit":       "units: {Dragon: {health: 10}}\n",
		"unknown stat":       "units: {Tank: {armor: 3}}\n",
		"negative cost":      "buildings: {Refinery: {cost: -5}}\n",
		"frame cap too big":  "session: {max_frame_time: 2}\n",
		"missing position":   "scenario: {units: [{type: Tank}]}\n",
		"bad faction":        "scenario: {units: [{type: Tank, faction: neutral, x: 0, y: 0}]}\n",
		"bad journal level":  "journal: {level: extreme}\n",
		"not a mapping":      "- 1\n- 2\n",
		"string seed":        "session: {seed: lots}\n",
		"fractional harvest": "units: {Harvester: {harvest_rate: 2.5}}\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestClusterMinAboveMax(t *testing.T) {
	_, err := Parse([]byte("scenario: {clusters: [{x: 0, y: 0, min_nodes: 5, max_nodes: 2}]}\n"))
	if err == nil || !strings.Contains(err.Error(), "clusters[0]") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("session: {fixed_dt: -1}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("err = %v, want it to name %s", err, path)
	}
}
