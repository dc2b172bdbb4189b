package ai

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/1siamBot/promethium/engine/game"
)

// Commander accepts commands for the next tick. *game.Game implements it.
type Commander interface {
	Issue(c game.Command)
}

// ActionFunc issues commands when a rule's condition holds.
type ActionFunc func(env Env, cmd Commander)

// Rule is a condition → action pair. Rules run by descending priority; an
// exclusive rule that fires blocks the lower-priority rules of its
// category for the rest of that evaluation.
type Rule struct {
	Name         string
	Priority     int
	Category     string
	Exclusive    bool
	ConditionSrc string
	program      *vm.Program
	Action       ActionFunc
}

// Engine holds a compiled, priority-sorted rule set.
type Engine struct {
	rules []*Rule
}

// NewEngine compiles every condition. Any compile error rejects the set.
func NewEngine(rules []*Rule) (*Engine, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sorted := append([]*Rule(nil), rules...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return &Engine{rules: sorted}, nil
}

// Rules returns the compiled rules in evaluation order.
func (e *Engine) Rules() []*Rule { return e.rules }

// Evaluate runs the rules against env and returns the names of the rules
// that fired.
func (e *Engine) Evaluate(env Env, cmd Commander) []string {
	blocked := make(map[string]bool)
	var fired []string
	for _, r := range e.rules {
		if blocked[r.Category] {
			continue
		}
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}
		if match, ok := result.(bool); !ok || !match {
			continue
		}
		slog.Debug("rule fired", "rule", r.Name, "faction", env.Side, "priority", r.Priority)
		r.Action(env, cmd)
		fired = append(fired, r.Name)
		if r.Exclusive {
			blocked[r.Category] = true
		}
	}
	return fired
}

// DefaultRules is the stock rule set shared by both factions. Economy
// rules only ever match for the player, who owns buildings and credits.
func DefaultRules() []*Rule {
	return []*Rule{
		{
			Name:         "defend-base",
			Priority:     900,
			Category:     "army",
			Exclusive:    true,
			ConditionSrc: `len(Intruders()) > 0 && len(IdleArmy()) > 0`,
			Action:       ActionDefend,
		},
		{
			Name:         "send-idle-harvesters",
			Priority:     800,
			Category:     "economy",
			ConditionSrc: `len(IdleHarvesters()) > 0 && HasNodes()`,
			Action:       ActionSendHarvesters,
		},
		{
			Name:         "build-power",
			Priority:     700,
			Category:     "construction",
			Exclusive:    true,
			ConditionSrc: `len(Buildings()) > 0 && Efficiency() < 1 && CanAfford(Cost("PowerPlant"))`,
			Action:       placeAction("PowerPlant"),
		},
		{
			Name:         "build-refinery",
			Priority:     650,
			Category:     "construction",
			Exclusive:    true,
			ConditionSrc: `len(Buildings()) > 0 && BuildingCount("Refinery") == 0 && CanAfford(Cost("Refinery"))`,
			Action:       placeAction("Refinery"),
		},
		{
			Name:         "build-barracks",
			Priority:     600,
			Category:     "construction",
			Exclusive:    true,
			ConditionSrc: `len(Buildings()) > 0 && BuildingCount("Barracks") == 0 && CanAfford(Cost("Barracks"))`,
			Action:       placeAction("Barracks"),
		},
		{
			Name:         "produce-units",
			Priority:     500,
			Category:     "production",
			ConditionSrc: `len(IdleProducers()) > 0 && CanAfford(Cost("Infantry"))`,
			Action:       ActionProduce,
		},
		{
			Name:         "siege-wave",
			Priority:     410,
			Category:     "army",
			Exclusive:    true,
			ConditionSrc: `WaveDue() && len(IdleArmy()) >= WaveSize() && StructureFirst()`,
			Action:       ActionSiegeWave,
		},
		{
			Name:         "attack-wave",
			Priority:     400,
			Category:     "army",
			Exclusive:    true,
			ConditionSrc: `WaveDue() && len(IdleArmy()) >= WaveSize() && len(Enemies()) > 0`,
			Action:       ActionAttackWave,
		},
	}
}
