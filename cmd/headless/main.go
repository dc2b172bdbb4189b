// Command headless runs a session without a window: AI on both sides
// regardless of the config's enable flags, a fixed step, and an optional
// event journal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/1siamBot/promethium/engine/ai"
	"github.com/1siamBot/promethium/engine/config"
	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/game"
	"github.com/1siamBot/promethium/engine/journal"
)

const defaultStep = 0.1

func main() {
	cfgPath := flag.String("config", "", "session config (YAML); empty uses the stock session")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	journalPath := flag.String("journal", "", "write the event journal here (overrides the config)")
	seconds := flag.Float64("seconds", 900, "stop after this much simulated time")
	every := flag.Float64("report", 30, "log a progress line every this many simulated seconds")
	seed := flag.Uint64("seed", 0, "override the config seed (0 keeps it)")
	flag.Parse()

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*level)); err != nil {
		fmt.Fprintln(os.Stderr, "log level:", err)
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(log)

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Error("config", "err", err)
			os.Exit(1)
		}
	}
	if *journalPath != "" {
		cfg.Journal.Path = *journalPath
	}
	if *seed != 0 {
		cfg.Session.Seed = *seed
	}

	if err := run(cfg, *seconds, *every, log); err != nil {
		log.Error("run", "err", err)
		os.Exit(1)
	}
}

// Summary is the end state of a headless run.
type Summary struct {
	Result  core.Result
	Ticks   uint64
	Elapsed float64
	Player  int
	Enemy   int
	Credits float64
	Waves   int
	Events  int
}

func run(cfg config.Config, seconds, every float64, log *slog.Logger) error {
	s, err := simulate(cfg, seconds, every, log)
	if err != nil {
		return err
	}
	log.Info("finished", "result", s.Result.String(), "ticks", s.Ticks, "elapsed", s.Elapsed,
		"player_units", s.Player, "enemy_units", s.Enemy, "credits", s.Credits,
		"waves", s.Waves, "journal_events", s.Events)
	return nil
}

// simulate plays the session with both factions under AI control.
func simulate(cfg config.Config, seconds, every float64, log *slog.Logger) (Summary, error) {
	tree, err := cfg.TechTree()
	if err != nil {
		return Summary{}, err
	}
	scenario, err := cfg.GameScenario()
	if err != nil {
		return Summary{}, err
	}
	sim := game.New(game.Options{Tree: &tree, Logger: log})

	// Both factions always play; the enable flags only matter to the
	// windowed host.
	var ctrls []*ai.Controller
	for _, side := range []struct {
		f   core.Faction
		cfg config.Controller
	}{{core.FactionPlayer, cfg.AI.Player}, {core.FactionEnemy, cfg.AI.Enemy}} {
		if !side.cfg.Enabled {
			log.Warn("headless forces AI on", "faction", side.f.String())
		}
		d, err := ai.ParseDifficulty(side.cfg.Difficulty)
		if err != nil {
			return Summary{}, err
		}
		c, err := ai.NewController(side.f, d, nil)
		if err != nil {
			return Summary{}, err
		}
		sim.AddController(c)
		ctrls = append(ctrls, c)
	}

	var jw *journal.Writer
	if cfg.Journal.Path != "" {
		if jw, err = journal.Create(cfg.Journal.Path, cfg.Journal.Level, sim.ID()); err != nil {
			return Summary{}, err
		}
		jw.Attach(sim.Events())
	}
	sim.Load(scenario, cfg.Session.Seed)

	loop := core.NewGameLoop(sim)
	loop.FixedDT = cfg.Session.FixedDT
	if loop.FixedDT <= 0 {
		loop.FixedDT = defaultStep
	}
	loop.Cap = cfg.Session.MaxFrameTime
	loop.Play()

	elapsed, nextReport := 0.0, every
	for elapsed < seconds && !sim.IsOver() {
		dt := loop.Frame()
		if dt <= 0 {
			break
		}
		elapsed += dt
		if every > 0 && elapsed >= nextReport {
			nextReport += every
			e := sim.Economy()
			log.Info("progress", "t", fmt.Sprintf("%.0fs", elapsed), "tick", sim.Tick(),
				"player_units", sim.Snapshot().Count(core.FactionPlayer),
				"enemy_units", sim.Snapshot().Count(core.FactionEnemy),
				"credits", fmt.Sprintf("%.0f", e.EnergyCredits()),
				"promethium", fmt.Sprintf("%.0f", e.Promethium()),
				"efficiency", fmt.Sprintf("%.2f", e.Efficiency()))
		}
	}

	snap := sim.Snapshot()
	sum := Summary{
		Result:  sim.Result(),
		Ticks:   sim.Tick(),
		Elapsed: elapsed,
		Player:  snap.Count(core.FactionPlayer),
		Enemy:   snap.Count(core.FactionEnemy),
		Credits: snap.Economy.EnergyCredits,
	}
	for _, c := range ctrls {
		sum.Waves += c.Waves()
	}
	if jw != nil {
		if err := jw.Close(); err != nil {
			return sum, err
		}
		sum.Events = jw.Lines()
	}
	return sum, nil
}
