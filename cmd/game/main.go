package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/promethium/engine/ai"
	"github.com/1siamBot/promethium/engine/audio"
	"github.com/1siamBot/promethium/engine/config"
	"github.com/1siamBot/promethium/engine/control"
	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/game"
	"github.com/1siamBot/promethium/engine/input"
	"github.com/1siamBot/promethium/engine/journal"
	"github.com/1siamBot/promethium/engine/render"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	minimapSize  = 160
)

// Game implements ebiten.Game interface
type Game struct {
	sim      *game.Game
	gameLoop *core.GameLoop
	renderer *render.Renderer
	input    *input.InputState
	control  *control.Controller
	audio    *audio.AudioManager

	showMinimap bool
}

func NewGame(cfg config.Config, sounds audio.Player, log *slog.Logger) (*Game, *journal.Writer, error) {
	tree, err := cfg.TechTree()
	if err != nil {
		return nil, nil, err
	}
	scenario, err := cfg.GameScenario()
	if err != nil {
		return nil, nil, err
	}
	sim := game.New(game.Options{Tree: &tree, Logger: log})

	var jw *journal.Writer
	if cfg.Journal.Path != "" {
		if jw, err = journal.Create(cfg.Journal.Path, cfg.Journal.Level, sim.ID()); err != nil {
			return nil, nil, err
		}
		jw.Attach(sim.Events())
	}

	for _, side := range []struct {
		f   core.Faction
		cfg config.Controller
	}{{core.FactionPlayer, cfg.AI.Player}, {core.FactionEnemy, cfg.AI.Enemy}} {
		if !side.cfg.Enabled {
			continue
		}
		diff, err := ai.ParseDifficulty(side.cfg.Difficulty)
		if err != nil {
			return nil, jw, err
		}
		c, err := ai.NewController(side.f, diff, nil)
		if err != nil {
			return nil, jw, err
		}
		sim.AddController(c)
	}
	sim.Load(scenario, cfg.Session.Seed)

	g := &Game{
		sim:         sim,
		gameLoop:    core.NewGameLoop(sim),
		renderer:    render.NewRenderer(ScreenWidth, ScreenHeight),
		input:       input.NewInputState(),
		control:     control.NewController(sim.Tree()),
		audio:       audio.NewAudioManager(sounds),
		showMinimap: true,
	}
	g.gameLoop.Cap = cfg.Session.MaxFrameTime
	g.gameLoop.FixedDT = cfg.Session.FixedDT
	g.renderer.Effects.Attach(sim.Events())
	g.audio.Attach(sim.Events())

	// start over the player's base
	if bs := sim.Buildings(); len(bs) > 0 {
		p := bs[0].Position()
		g.renderer.Camera.CenterOn(p.X, p.Y)
	}
	g.gameLoop.Play()
	return g, jw, nil
}

func (g *Game) Update() error {
	g.input.Update()
	g.handleCamera()

	if g.input.IsKeyJustPressed(ebiten.KeyG) {
		g.renderer.ShowGrid = !g.renderer.ShowGrid
	}
	if g.input.IsKeyJustPressed(ebiten.KeyM) {
		g.showMinimap = !g.showMinimap
	}
	if g.input.IsKeyJustPressed(input.KeyPause) {
		if g.gameLoop.State == core.StatePlaying {
			g.gameLoop.Pause()
		} else {
			g.gameLoop.Play()
		}
	}

	if !g.sim.IsOver() {
		g.control.Handle(g.input.Frame(), g.sim.Snapshot(), g.renderer.Camera, g.sim)
	}
	g.gameLoop.Frame()

	g.renderer.Effects.Update(1 / float64(ebiten.TPS()))
	g.audio.SetCameraPos(g.renderer.Camera.X, g.renderer.Camera.Y)
	return nil
}

func (g *Game) handleCamera() {
	cam := g.renderer.Camera
	speed := cam.Speed / float64(ebiten.TPS())

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		cam.Pan(0, -speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		cam.Pan(0, speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		cam.Pan(-speed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		cam.Pan(speed, 0)
	}

	if cam.EdgeScroll {
		edge := cam.EdgeSize
		if g.input.MouseX < edge {
			cam.Pan(-speed, 0)
		}
		if g.input.MouseX > ScreenWidth-edge {
			cam.Pan(speed, 0)
		}
		if g.input.MouseY < edge {
			cam.Pan(0, -speed)
		}
		if g.input.MouseY > ScreenHeight-edge {
			cam.Pan(0, speed)
		}
	}

	if g.input.ScrollY != 0 {
		cam.ZoomAt(g.input.ScrollY*0.1, g.input.MouseX, g.input.MouseY)
	}
	// Middle mouse drag to pan
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		cam.Pan(float64(-g.input.MouseDX), float64(-g.input.MouseDY))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sim.Snapshot()
	g.renderer.Draw(screen, snap)

	if x1, y1, x2, y2, active := g.input.DragRect(); active {
		g.renderer.DrawSelectionBox(screen, x1, y1, x2, y2)
	}
	placing := ""
	if kind, ok := g.control.Placement(); ok {
		g.renderer.DrawPlacementGhost(screen, kind, g.input.MouseX, g.input.MouseY)
		placing = kind.String()
	}
	if g.showMinimap {
		g.renderer.DrawMinimap(screen, snap, ScreenWidth-minimapSize-10, 10, minimapSize)
	}
	g.renderer.DrawHUD(screen, snap, render.HUDInfo{
		FPS:     ebiten.ActualFPS(),
		Paused:  g.gameLoop.State != core.StatePlaying,
		Placing: placing,
		Tree:    g.sim.Tree(),
	})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func main() {
	cfgPath := flag.String("config", "", "session config (YAML); empty uses the stock session")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	journalPath := flag.String("journal", "", "write the event journal here (overrides the config)")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	log, err := newLogger(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(log)

	cfg := config.Default()
	if *cfgPath != "" {
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Error("config", "err", err)
			os.Exit(1)
		}
	}
	if *journalPath != "" {
		cfg.Journal.Path = *journalPath
	}

	var sounds audio.Player
	if !*mute {
		sounds = newTonePlayer()
	}
	g, jw, err := NewGame(cfg, sounds, log)
	if err != nil {
		log.Error("start", "err", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Promethium")
	runErr := ebiten.RunGame(g)
	if jw != nil {
		if err := jw.Close(); err != nil {
			log.Error("journal", "err", err)
		} else {
			log.Info("journal written", "path", cfg.Journal.Path, "events", jw.Lines())
		}
	}
	if runErr != nil {
		log.Error("run", "err", runErr)
		os.Exit(1)
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}
