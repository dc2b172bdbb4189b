package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/game"
)

var (
	barBack       = color.RGBA{40, 40, 40, 200}
	healthGood    = color.RGBA{0, 200, 0, 255}
	healthLow     = color.RGBA{230, 60, 40, 255}
	buildProgress = color.RGBA{250, 200, 60, 255}
	prodProgress  = color.RGBA{80, 200, 255, 255}
	carryColor    = color.RGBA{200, 140, 255, 255}
	selectColor   = color.RGBA{0, 255, 0, 200}
)

// DrawUnit draws one unit with its selection ring and bars.
func (r *Renderer) DrawUnit(screen *ebiten.Image, u game.UnitView) {
	sx, sy := r.Camera.WorldToScreenF(u.Position.X, u.Position.Y)
	zoom := r.Camera.Zoom
	radius := float32(UnitSpriteSize / 2 * zoom)

	if u.Selected {
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), radius+3, color.RGBA{0, 255, 0, 50}, true)
		vector.StrokeCircle(screen, float32(sx), float32(sy), radius+3, 2, selectColor, true)
	}
	if u.Boosted {
		vector.StrokeCircle(screen, float32(sx), float32(sy), radius+6, 1, color.RGBA{255, 255, 120, 200}, true)
	}

	var cs ebiten.ColorScale
	drawCentered(screen, r.Sprites.Unit(u.Type, u.Faction), sx, sy, zoom, u.Position.Facing, cs)

	// health is always shown once damaged, or while selected
	if u.Selected || u.Health < 1 {
		drawBar(screen, sx, sy-float64(radius)-6, 24*zoom, u.Health, healthColor(u.Health))
	}
	if u.Carried > 0 {
		vector.DrawFilledCircle(screen, float32(sx+float64(radius)), float32(sy-float64(radius)), 3, carryColor, true)
	}
}

// DrawBuilding draws one building; unfinished ones are translucent with a
// construction bar.
func (r *Renderer) DrawBuilding(screen *ebiten.Image, b game.BuildingView) {
	sx, sy := r.Camera.WorldToScreenF(b.Position.X, b.Position.Y)
	zoom := r.Camera.Zoom
	half := BuildingSpriteSize / 2 * zoom

	var cs ebiten.ColorScale
	if b.Construction < 1 {
		cs.ScaleAlpha(float32(0.35 + 0.5*b.Construction))
	}
	drawCentered(screen, r.Sprites.Building(b.Type), sx, sy, zoom, 0, cs)

	if b.Selected {
		vector.StrokeRect(screen, float32(sx-half-3), float32(sy-half-3), float32(2*half+6), float32(2*half+6), 2, selectColor, true)
	}
	top := sy - half - 6
	drawBar(screen, sx, top, 2*half, b.Health, healthColor(b.Health))
	if b.Construction < 1 {
		drawBar(screen, sx, sy+half+4, 2*half, b.Construction, buildProgress)
	} else if b.Queue > 0 {
		drawBar(screen, sx, sy+half+4, 2*half, b.Production, prodProgress)
	}
}

// DrawNode draws a resource node, shrinking as it empties.
func (r *Renderer) DrawNode(screen *ebiten.Image, n game.NodeView) {
	sx, sy := r.Camera.WorldToScreenF(n.Position.X, n.Position.Y)
	scale := r.Camera.Zoom * (0.5 + 0.5*n.Fraction)
	drawCentered(screen, r.Sprites.Node(), sx, sy, scale, 0, ebiten.ColorScale{})
}

func healthColor(f float64) color.RGBA {
	if f < 0.35 {
		return healthLow
	}
	return healthGood
}

// drawBar draws a fill bar of width w centered on cx with its top at y.
func drawBar(screen *ebiten.Image, cx, y, w, frac float64, clr color.RGBA) {
	frac = max(0, min(1, frac))
	x := float32(cx - w/2)
	vector.DrawFilledRect(screen, x, float32(y), float32(w), 3, barBack, false)
	vector.DrawFilledRect(screen, x, float32(y), float32(w*frac), 3, clr, false)
}

// tint returns the faction color at alpha a.
func tint(f core.Faction, a uint8) color.RGBA {
	c := FactionColor(f)
	c.A = a
	return c
}
