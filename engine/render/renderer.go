// Package render draws a session snapshot with ebiten. It only reads
// snapshots and effect lists; nothing here touches the live simulation.
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/1siamBot/promethium/engine/game"
	"github.com/1siamBot/promethium/engine/techtree"
	"github.com/1siamBot/promethium/engine/view"
)

var (
	groundColor = color.RGBA{20, 26, 22, 255}
	gridColor   = color.RGBA{255, 255, 255, 18}
	axisColor   = color.RGBA{255, 255, 255, 40}
)

// GridSpacing is the ground grid pitch in world units.
const GridSpacing = 2.0

type Renderer struct {
	Camera   *view.Camera
	Sprites  *SpriteManager
	Effects  *view.Effects
	ShowGrid bool

	face *text.GoXFace
}

func NewRenderer(screenW, screenH int) *Renderer {
	return &Renderer{
		Camera:   view.NewCamera(screenW, screenH),
		Sprites:  NewSpriteManager(),
		Effects:  view.NewEffects(),
		ShowGrid: true,
		face:     text.NewGoXFace(basicfont.Face7x13),
	}
}

// Draw renders the world layer: ground, nodes, buildings, units, effects.
func (r *Renderer) Draw(screen *ebiten.Image, snap game.Snapshot) {
	screen.Fill(groundColor)
	if r.ShowGrid {
		r.DrawGrid(screen)
	}
	for _, n := range snap.Nodes {
		if r.Camera.Visible(n.Position.X, n.Position.Y, 1) {
			r.DrawNode(screen, n)
		}
	}
	for _, b := range snap.Buildings {
		if r.Camera.Visible(b.Position.X, b.Position.Y, 2) {
			r.DrawBuilding(screen, b)
		}
	}
	for _, u := range snap.Units {
		if r.Camera.Visible(u.Position.X, u.Position.Y, 1) {
			r.DrawUnit(screen, u)
		}
	}
	r.DrawEffects(screen)
}

// DrawGrid draws the ground grid over the visible area
func (r *Renderer) DrawGrid(screen *ebiten.Image) {
	c := r.Camera
	x0, y1 := c.ScreenToWorld(0, 0)
	x1, y0 := c.ScreenToWorld(c.ScreenW, c.ScreenH)
	for x := math.Floor(x0/GridSpacing) * GridSpacing; x <= x1; x += GridSpacing {
		sx, _ := c.WorldToScreenF(x, 0)
		clr := gridColor
		if x == 0 {
			clr = axisColor
		}
		vector.StrokeLine(screen, float32(sx), 0, float32(sx), float32(c.ScreenH), 1, clr, false)
	}
	for y := math.Floor(y0/GridSpacing) * GridSpacing; y <= y1; y += GridSpacing {
		_, sy := c.WorldToScreenF(0, y)
		clr := gridColor
		if y == 0 {
			clr = axisColor
		}
		vector.StrokeLine(screen, 0, float32(sy), float32(c.ScreenW), float32(sy), 1, clr, false)
	}
}

// DrawEffects draws tracers, explosions and pulses.
func (r *Renderer) DrawEffects(screen *ebiten.Image) {
	for _, e := range r.Effects.Active() {
		p := e.Progress()
		ax, ay := r.Camera.WorldToScreenF(e.At.X, e.At.Y)
		fade := uint8(255 * (1 - p))
		switch e.Kind {
		case view.EffectShot:
			fx, fy := r.Camera.WorldToScreenF(e.From.X, e.From.Y)
			vector.StrokeLine(screen, float32(fx), float32(fy), float32(ax), float32(ay), 2, color.RGBA{255, 240, 150, fade}, true)
		case view.EffectExplosion:
			rad := float32(r.Camera.ScreenLength(0.3 + 1.2*p))
			vector.DrawFilledCircle(screen, float32(ax), float32(ay), rad, color.RGBA{255, 140, 40, fade}, true)
		case view.EffectPulse:
			rad := float32(r.Camera.ScreenLength(0.5 + 2*p))
			vector.StrokeCircle(screen, float32(ax), float32(ay), rad, 2, color.RGBA{200, 220, 255, fade}, true)
		}
	}
}

// DrawPlacementGhost outlines where a building would go at the cursor.
func (r *Renderer) DrawPlacementGhost(screen *ebiten.Image, kind techtree.BuildingType, mx, my int) {
	var cs ebiten.ColorScale
	cs.ScaleAlpha(0.4)
	drawCentered(screen, r.Sprites.Building(kind), float64(mx), float64(my), r.Camera.Zoom, 0, cs)
}

// DrawSelectionBox draws a selection rectangle on screen
func (r *Renderer) DrawSelectionBox(screen *ebiten.Image, x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	w, h := float32(x2-x1), float32(y2-y1)
	vector.DrawFilledRect(screen, float32(x1), float32(y1), w, h, color.RGBA{0, 255, 0, 30}, false)
	vector.StrokeRect(screen, float32(x1), float32(y1), w, h, 1, color.RGBA{0, 255, 0, 128}, false)
}

// DrawMinimap draws every entity as a dot in a size×size square at
// (posX, posY), plus the camera viewport.
func (r *Renderer) DrawMinimap(screen *ebiten.Image, snap game.Snapshot, posX, posY, size int) {
	extent := r.Camera.Bounds
	if extent <= 0 {
		extent = 60
	}
	scale := float64(size) / (2 * extent)
	toMap := func(wx, wy float64) (float32, float32) {
		return float32(float64(posX) + (wx+extent)*scale), float32(float64(posY) + (extent-wy)*scale)
	}
	vector.DrawFilledRect(screen, float32(posX), float32(posY), float32(size), float32(size), color.RGBA{0, 0, 0, 180}, false)

	for _, n := range snap.Nodes {
		x, y := toMap(n.Position.X, n.Position.Y)
		vector.DrawFilledRect(screen, x-1, y-1, 2, 2, NodeColor, false)
	}
	for _, b := range snap.Buildings {
		x, y := toMap(b.Position.X, b.Position.Y)
		vector.DrawFilledRect(screen, x-2, y-2, 4, 4, BuildingColor, false)
	}
	for _, u := range snap.Units {
		x, y := toMap(u.Position.X, u.Position.Y)
		vector.DrawFilledRect(screen, x-1, y-1, 3, 3, tint(u.Faction, 255), false)
	}

	c := r.Camera
	wx0, wy0 := c.ScreenToWorld(0, 0)
	wx1, wy1 := c.ScreenToWorld(c.ScreenW, c.ScreenH)
	vx0, vy0 := toMap(wx0, wy0)
	vx1, vy1 := toMap(wx1, wy1)
	vector.StrokeRect(screen, vx0, vy0, vx1-vx0, vy1-vy0, 1, color.RGBA{255, 255, 255, 200}, false)
}
