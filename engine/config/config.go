// Package config loads a session description from YAML. Documents are
// checked against an embedded JSON Schema before they are decoded, and
// anything a document leaves out keeps its stock value.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/game"
	"github.com/1siamBot/promethium/engine/techtree"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "config.schema.json"

type Config struct {
	Session  Session   `yaml:"session"`
	AI       AI        `yaml:"ai"`
	Scenario *Scenario `yaml:"scenario"` // nil = stock opening

	// Partial stat overrides keyed by type name. Fields a document omits
	// keep the stock value for that type.
	Units     map[string]yaml.Node `yaml:"units"`
	Buildings map[string]yaml.Node `yaml:"buildings"`

	Journal Journal `yaml:"journal"`
}

type Session struct {
	Seed            uint64  `yaml:"seed"`
	StartingCredits float64 `yaml:"starting_credits"`
	MaxFrameTime    float64 `yaml:"max_frame_time"`
	FixedDT         float64 `yaml:"fixed_dt"`
}

type AI struct {
	Player Controller `yaml:"player"`
	Enemy  Controller `yaml:"enemy"`
}

type Controller struct {
	Enabled    bool   `yaml:"enabled"`
	Difficulty string `yaml:"difficulty"`
}

// Journal selects where the event journal goes. An empty Path disables it.
type Journal struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

type Scenario struct {
	Units     []UnitSpawn     `yaml:"units"`
	Buildings []BuildingSpawn `yaml:"buildings"`
	Clusters  []Cluster       `yaml:"clusters"`
}

type UnitSpawn struct {
	Type    string  `yaml:"type"`
	Faction string  `yaml:"faction"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
}

type BuildingSpawn struct {
	Type        string  `yaml:"type"`
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Constructed bool    `yaml:"constructed"`
}

// Cluster zero values fall back to the stock field shape.
type Cluster struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	MinNodes  int     `yaml:"min_nodes"`
	MaxNodes  int     `yaml:"max_nodes"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	MinAmount int     `yaml:"min_amount"`
	MaxAmount int     `yaml:"max_amount"`
}

// Default is the stock session: the default opening with a medium enemy.
func Default() Config {
	return Config{
		Session: Session{
			Seed:            1,
			StartingCredits: game.DefaultScenario().Credits,
			MaxFrameTime:    core.MaxFrameTime,
		},
		AI: AI{
			Player: Controller{Difficulty: "medium"},
			Enemy:  Controller{Enabled: true, Difficulty: "medium"},
		},
		Journal: Journal{Level: "default"},
	}
}

func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	c, err := Parse(raw)
	if err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse validates a YAML document and decodes it over Default.
func Parse(raw []byte) (Config, error) {
	c := Default()
	if err := validate(raw); err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if _, err := c.TechTree(); err != nil {
		return c, err
	}
	if _, err := c.GameScenario(); err != nil {
		return c, err
	}
	return c, nil
}

var schema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	comp := jsonschema.NewCompiler()
	comp.Draft = jsonschema.Draft2020
	if err := comp.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}
	s, err := comp.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}
	return s, nil
})

// validate runs the document through the schema. YAML is first normalised
// to the JSON data model so numbers and maps look the way the validator
// expects.
func validate(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	s, err := schema()
	if err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// TechTree applies the stat overrides to the stock tables.
func (c Config) TechTree() (techtree.TechTree, error) {
	tree := techtree.Default()
	units := make(map[string]techtree.UnitStats, len(c.Units))
	for name, node := range c.Units {
		s := techtree.UnitStats{}
		if t, ok := techtree.ParseUnitType(name); ok {
			s = tree.Unit(t)
		}
		if err := node.Decode(&s); err != nil {
			return tree, fmt.Errorf("config: units.%s: %w", name, err)
		}
		units[name] = s
	}
	buildings := make(map[string]techtree.BuildingStats, len(c.Buildings))
	for name, node := range c.Buildings {
		s := techtree.BuildingStats{}
		if t, ok := techtree.ParseBuildingType(name); ok {
			s = tree.Building(t)
		}
		if err := node.Decode(&s); err != nil {
			return tree, fmt.Errorf("config: buildings.%s: %w", name, err)
		}
		buildings[name] = s
	}
	out, err := tree.Overrides(units, buildings)
	if err != nil {
		return tree, fmt.Errorf("config: %w", err)
	}
	return out, nil
}

// GameScenario resolves names into the opening the simulation loads.
func (c Config) GameScenario() (game.Scenario, error) {
	if c.Scenario == nil {
		s := game.DefaultScenario()
		s.Credits = c.Session.StartingCredits
		return s, nil
	}
	s := game.Scenario{Credits: c.Session.StartingCredits}
	for i, u := range c.Scenario.Units {
		t, ok := techtree.ParseUnitType(u.Type)
		if !ok {
			return s, fmt.Errorf("config: scenario.units[%d]: unknown type %q", i, u.Type)
		}
		f, err := parseFaction(u.Faction)
		if err != nil {
			return s, fmt.Errorf("config: scenario.units[%d]: %w", i, err)
		}
		s.Units = append(s.Units, game.UnitSpawn{Type: t, Faction: f, Pos: core.Pos(u.X, u.Y)})
	}
	for i, b := range c.Scenario.Buildings {
		t, ok := techtree.ParseBuildingType(b.Type)
		if !ok {
			return s, fmt.Errorf("config: scenario.buildings[%d]: unknown type %q", i, b.Type)
		}
		s.Buildings = append(s.Buildings, game.BuildingSpawn{Type: t, Pos: core.Pos(b.X, b.Y), Constructed: b.Constructed})
	}
	for i, cl := range c.Scenario.Clusters {
		gc := cl.cluster()
		if gc.MinNodes > gc.MaxNodes || gc.MinRadius > gc.MaxRadius || gc.MinAmount > gc.MaxAmount {
			return s, fmt.Errorf("config: scenario.clusters[%d]: min exceeds max", i)
		}
		s.Clusters = append(s.Clusters, gc)
	}
	return s, nil
}

func (cl Cluster) cluster() game.Cluster {
	stock := game.DefaultScenario().Clusters[0]
	out := game.Cluster{
		Center:   core.Pos(cl.X, cl.Y),
		MinNodes: cl.MinNodes, MaxNodes: cl.MaxNodes,
		MinRadius: cl.MinRadius, MaxRadius: cl.MaxRadius,
		MinAmount: cl.MinAmount, MaxAmount: cl.MaxAmount,
	}
	if out.MinNodes == 0 && out.MaxNodes == 0 {
		out.MinNodes, out.MaxNodes = stock.MinNodes, stock.MaxNodes
	}
	if out.MinRadius == 0 && out.MaxRadius == 0 {
		out.MinRadius, out.MaxRadius = stock.MinRadius, stock.MaxRadius
	}
	if out.MinAmount == 0 && out.MaxAmount == 0 {
		out.MinAmount, out.MaxAmount = stock.MinAmount, stock.MaxAmount
	}
	return out
}

func parseFaction(s string) (core.Faction, error) {
	switch s {
	case "", "player":
		return core.FactionPlayer, nil
	case "enemy":
		return core.FactionEnemy, nil
	}
	return core.FactionPlayer, fmt.Errorf("unknown faction %q", s)
}
