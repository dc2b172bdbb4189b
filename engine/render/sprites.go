package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/techtree"
)

// Sprite sizes in pixels at zoom 1.
const (
	UnitSpriteSize     = 24
	BuildingSpriteSize = 48
	NodeSpriteSize     = 16
)

var (
	PlayerColor   = color.RGBA{60, 120, 255, 255}
	EnemyColor    = color.RGBA{220, 60, 50, 255}
	BuildingColor = color.RGBA{90, 130, 200, 255}
	NodeColor     = color.RGBA{180, 90, 255, 255}
	outlineColor  = color.RGBA{255, 255, 255, 180}
)

// FactionColor is the body color for units of f.
func FactionColor(f core.Faction) color.RGBA {
	if f.IsEnemy() {
		return EnemyColor
	}
	return PlayerColor
}

type unitKey struct {
	t techtree.UnitType
	f core.Faction
}

// SpriteManager draws each entity shape once and hands out the cached
// image. Shapes are flat vector art; nothing is loaded from disk.
type SpriteManager struct {
	units     map[unitKey]*ebiten.Image
	buildings map[techtree.BuildingType]*ebiten.Image
	node      *ebiten.Image
	white     *ebiten.Image
}

func NewSpriteManager() *SpriteManager {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &SpriteManager{
		units:     make(map[unitKey]*ebiten.Image),
		buildings: make(map[techtree.BuildingType]*ebiten.Image),
		white:     white,
	}
}

// Unit returns the sprite for a unit type in its faction color, pointing
// along +X.
func (sm *SpriteManager) Unit(t techtree.UnitType, f core.Faction) *ebiten.Image {
	key := unitKey{t, f}
	if img, ok := sm.units[key]; ok {
		return img
	}
	const s = UnitSpriteSize
	img := ebiten.NewImage(s, s)
	clr := FactionColor(f)
	c := float32(s) / 2
	switch t {
	case techtree.Infantry:
		vector.DrawFilledCircle(img, c, c, 7, clr, true)
		vector.StrokeCircle(img, c, c, 7, 1, outlineColor, true)
	case techtree.Harvester:
		vector.DrawFilledRect(img, 3, 5, s-6, s-10, clr, true)
		vector.DrawFilledRect(img, s-8, 8, 5, s-16, color.RGBA{250, 210, 80, 255}, true)
		vector.StrokeRect(img, 3, 5, s-6, s-10, 1, outlineColor, true)
	case techtree.Tank:
		vector.DrawFilledRect(img, 3, 4, s-8, s-8, clr, true)
		vector.StrokeRect(img, 3, 4, s-8, s-8, 1, outlineColor, true)
		vector.StrokeLine(img, c, c, s, c, 3, outlineColor, true)
	case techtree.Artillery:
		sm.fillPolygon(img, []float32{3, 3, s - 6, c, 3, s - 3}, clr)
		vector.StrokeLine(img, c, c, s, c, 2, outlineColor, true)
	case techtree.AntiAir:
		sm.fillPolygon(img, []float32{c, 2, s - 2, c, c, s - 2, 2, c}, clr)
		vector.StrokeLine(img, c-4, c-3, s-2, c-3, 1, outlineColor, true)
		vector.StrokeLine(img, c-4, c+3, s-2, c+3, 1, outlineColor, true)
	default: // scout
		sm.fillPolygon(img, []float32{4, 5, s - 3, c, 4, s - 5, 9, c}, clr)
	}
	sm.units[key] = img
	return img
}

// Building returns the sprite for a building type.
func (sm *SpriteManager) Building(t techtree.BuildingType) *ebiten.Image {
	if img, ok := sm.buildings[t]; ok {
		return img
	}
	const s = BuildingSpriteSize
	img := ebiten.NewImage(s, s)
	c := float32(s) / 2
	vector.DrawFilledRect(img, 2, 2, s-4, s-4, BuildingColor, true)
	vector.StrokeRect(img, 2, 2, s-4, s-4, 2, outlineColor, true)
	mark := color.RGBA{230, 235, 255, 255}
	switch t {
	case techtree.CommandCenter:
		vector.DrawFilledCircle(img, c, c, 12, mark, true)
		vector.DrawFilledCircle(img, c, c, 7, BuildingColor, true)
	case techtree.Refinery:
		vector.DrawFilledCircle(img, c-8, c, 8, NodeColor, true)
		vector.DrawFilledCircle(img, c+8, c, 8, NodeColor, true)
	case techtree.Barracks:
		for i := range 3 {
			y := float32(12 + 10*i)
			vector.StrokeLine(img, 10, y, s-10, y, 3, mark, true)
		}
	case techtree.PowerPlant:
		sm.fillPolygon(img, []float32{c + 4, 6, c - 10, c + 2, c, c + 2, c - 4, s - 6, c + 10, c - 2, c, c - 2}, color.RGBA{255, 220, 60, 255})
	case techtree.Factory:
		vector.DrawFilledRect(img, 8, 16, s-16, s-24, mark, true)
		vector.DrawFilledRect(img, 10, 6, 6, 12, mark, true)
	case techtree.DefenseTurret:
		vector.DrawFilledCircle(img, c, c, 10, mark, true)
		vector.StrokeLine(img, c, c, s-4, c-8, 4, mark, true)
	}
	sm.buildings[t] = img
	return img
}

// Node returns the resource crystal sprite.
func (sm *SpriteManager) Node() *ebiten.Image {
	if sm.node != nil {
		return sm.node
	}
	const s = NodeSpriteSize
	img := ebiten.NewImage(s, s)
	c := float32(s) / 2
	sm.fillPolygon(img, []float32{c, 0, s - 2, c - 2, c + 2, s, 2, c + 2}, NodeColor)
	vector.StrokeLine(img, c, 0, c+2, s, 1, color.RGBA{240, 220, 255, 200}, true)
	sm.node = img
	return img
}

// fillPolygon fills a convex or star-shaped outline given as x,y pairs.
func (sm *SpriteManager) fillPolygon(dst *ebiten.Image, pts []float32, clr color.RGBA) {
	var path vector.Path
	path.MoveTo(pts[0], pts[1])
	for i := 2; i+1 < len(pts); i += 2 {
		path.LineTo(pts[i], pts[i+1])
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = float32(clr.A) / 255
	}
	dst.DrawTriangles(vs, is, sm.white, nil)
}

// drawCentered draws img centered at screen (sx, sy), scaled by zoom and
// turned by facing (radians, world space).
func drawCentered(dst, img *ebiten.Image, sx, sy, zoom, facing float64, cs ebiten.ColorScale) {
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	if facing != 0 {
		// screen Y points down, so world angles turn the other way
		op.GeoM.Rotate(-facing)
	}
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate(math.Round(sx), math.Round(sy))
	op.ColorScale = cs
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}
