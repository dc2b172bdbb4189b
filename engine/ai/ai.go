// Package ai drives a faction automatically. A Controller thinks on a
// fixed interval set by its difficulty and evaluates a rule set whose
// conditions are expr programs over a snapshot of the session.
package ai

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/game"
	"github.com/1siamBot/promethium/engine/techtree"
)

// Difficulty controls AI behavior
type Difficulty int

const (
	DiffEasy Difficulty = iota
	DiffMedium
	DiffHard
)

func (d Difficulty) String() string {
	switch d {
	case DiffEasy:
		return "easy"
	case DiffHard:
		return "hard"
	default:
		return "medium"
	}
}

// ParseDifficulty resolves easy, medium or hard, ignoring case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return DiffEasy, nil
	case "medium", "":
		return DiffMedium, nil
	case "hard":
		return DiffHard, nil
	}
	return DiffMedium, fmt.Errorf("ai: unknown difficulty %q", s)
}

// ThinkInterval is the seconds between rule evaluations.
func (d Difficulty) ThinkInterval() float64 {
	switch d {
	case DiffEasy:
		return 8
	case DiffHard:
		return 3
	default:
		return 5
	}
}

// WaveInterval is the seconds between attack waves.
func (d Difficulty) WaveInterval() float64 {
	switch d {
	case DiffEasy:
		return 60
	case DiffHard:
		return 30
	default:
		return 45
	}
}

// WaveSize is the idle army needed to launch a wave.
func (d Difficulty) WaveSize() int {
	switch d {
	case DiffEasy:
		return 3
	case DiffHard:
		return 5
	default:
		return 4
	}
}

// Controller manages one AI faction
type Controller struct {
	Faction    core.Faction
	Difficulty Difficulty

	engine     *Engine
	memory     map[string]any
	thinkTimer float64
	waveTimer  float64
	waves      int
	log        *slog.Logger
}

// NewController compiles rules for a faction. A nil rule set means
// DefaultRules.
func NewController(f core.Faction, diff Difficulty, rules []*Rule) (*Controller, error) {
	if rules == nil {
		rules = DefaultRules()
	}
	engine, err := NewEngine(rules)
	if err != nil {
		return nil, err
	}
	return &Controller{
		Faction:    f,
		Difficulty: diff,
		engine:     engine,
		memory:     make(map[string]any),
		log:        slog.Default().With("ai", f.String(), "difficulty", diff.String()),
	}, nil
}

// Waves returns how many attack waves have been launched.
func (c *Controller) Waves() int { return c.waves }

// Update implements game.Controller.
func (c *Controller) Update(dt float64, g *game.Game) {
	c.waveTimer += dt
	c.thinkTimer += dt
	if c.thinkTimer < c.Difficulty.ThinkInterval() {
		return
	}
	c.thinkTimer = 0
	c.Think(g.Snapshot(), g.Tree(), g)
}

// Think evaluates the rule set once against snap.
func (c *Controller) Think(snap game.Snapshot, tree *techtree.TechTree, cmd Commander) []string {
	env := Env{
		State:     snap,
		Faction:   c.Faction,
		Side:      c.Faction.String(),
		Tree:      tree,
		Memory:    c.memory,
		WaveIsDue: c.waveTimer >= c.Difficulty.WaveInterval(),
		Wave:      c.Difficulty.WaveSize(),
	}
	fired := c.engine.Evaluate(env, cmd)
	if launched, _ := c.memory[memWaveLaunched].(bool); launched {
		delete(c.memory, memWaveLaunched)
		c.waveTimer = 0
		c.waves++
		c.log.Info("attack wave launched", "wave", c.waves, "tick", snap.Tick)
	}
	return fired
}
