package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/game"
	"github.com/1siamBot/promethium/engine/techtree"
)

const hudLineSpacing = 16

// HUDInfo is host state the snapshot does not carry.
type HUDInfo struct {
	FPS     float64
	Paused  bool
	Placing string // building armed for placement, empty for none
	Tree    *techtree.TechTree
}

// DrawHUD draws the resource panel, the selection panel and, once the
// session is over, the result banner.
func (r *Renderer) DrawHUD(screen *ebiten.Image, snap game.Snapshot, info HUDInfo) {
	e := snap.Economy
	lines := []string{
		fmt.Sprintf("Credits %.0f   Promethium %.0f", e.EnergyCredits, e.Promethium),
		fmt.Sprintf("Power %.0f / %.0f   Efficiency %.0f%%", e.Power, e.Consumption, e.Efficiency*100),
		fmt.Sprintf("Units %d vs %d   Tick %d   FPS %.0f",
			snap.Count(core.FactionPlayer), snap.Count(core.FactionEnemy), snap.Tick, info.FPS),
	}
	if info.Paused {
		lines = append(lines, "PAUSED")
	}
	if info.Placing != "" {
		lines = append(lines, "Placing "+info.Placing+" (click to place, Esc to cancel)")
	}
	r.panel(screen, 8, 8, lines, color.White)

	if b, ok := snap.SelectedBuilding(); ok {
		r.panel(screen, 8, float64(screen.Bounds().Dy())-110, buildingLines(b, info.Tree), color.White)
	} else if sel := snap.Selected(); len(sel) > 0 {
		r.panel(screen, 8, float64(screen.Bounds().Dy())-40, []string{fmt.Sprintf("%d units selected", len(sel))}, color.White)
	}

	help := "[WASD] pan [wheel] zoom [1-6] build [ZXCV] train [H] stop [B] boost [P] pause"
	r.panel(screen, 8, float64(screen.Bounds().Dy())-22, []string{help}, color.RGBA{200, 200, 200, 255})

	switch snap.Result {
	case core.ResultWin:
		r.banner(screen, "VICTORY", color.RGBA{120, 255, 120, 255})
	case core.ResultLose:
		r.banner(screen, "DEFEAT", color.RGBA{255, 110, 90, 255})
	}
}

func buildingLines(b game.BuildingView, tree *techtree.TechTree) []string {
	lines := []string{fmt.Sprintf("%s  %.0f%% health", b.Type, b.Health*100)}
	if b.Construction < 1 {
		return append(lines, fmt.Sprintf("Constructing %.0f%%", b.Construction*100))
	}
	if tree == nil {
		return lines
	}
	roster := tree.Building(b.Type).Produces
	if len(roster) == 0 {
		return lines
	}
	keys := []string{"Z", "X", "C", "V"}
	var opts []string
	for i, t := range roster {
		if i < len(keys) {
			opts = append(opts, fmt.Sprintf("[%s] %s $%.0f", keys[i], t, tree.Unit(t).Cost))
		}
	}
	lines = append(lines, strings.Join(opts, "  "))
	if b.Queue > 0 {
		lines = append(lines, fmt.Sprintf("Queue %d   %.0f%%", b.Queue, b.Production*100))
	}
	return lines
}

func (r *Renderer) panel(screen *ebiten.Image, x, y float64, lines []string, clr color.Color) {
	body := strings.Join(lines, "\n")
	w, h := text.Measure(body, r.face, hudLineSpacing)
	vector.DrawFilledRect(screen, float32(x-4), float32(y-2), float32(w+8), float32(h+4), color.RGBA{0, 0, 0, 150}, false)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = hudLineSpacing
	text.Draw(screen, body, r.face, op)
}

func (r *Renderer) banner(screen *ebiten.Image, msg string, clr color.Color) {
	const scale = 4
	w, h := text.Measure(msg, r.face, hudLineSpacing)
	b := screen.Bounds()
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(b.Dx())-w*scale)/2, (float64(b.Dy())-h*scale)/2)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, msg, r.face, op)
}
