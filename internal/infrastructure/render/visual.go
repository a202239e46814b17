// Package render draws stages and bodies, either with ebiten or as terminal text.
package render

import (
	"image/color"

	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/domain/vec"
)

// Colors for rendering
var (
	ColorBG          = color.RGBA{26, 26, 46, 255}
	ColorWall        = color.RGBA{80, 80, 100, 255}
	ColorSlope       = color.RGBA{110, 110, 140, 255}
	ColorBreakable   = color.RGBA{140, 100, 70, 255}
	ColorLadder      = color.RGBA{180, 140, 60, 255}
	ColorNeutralTile = color.RGBA{60, 90, 120, 255}
	ColorPlayer      = color.RGBA{100, 200, 100, 255}
	ColorEnemy       = color.RGBA{200, 100, 100, 255}
	ColorCollectable = color.RGBA{255, 215, 0, 255}
	ColorNeutral     = color.RGBA{170, 170, 170, 255}
	ColorHitbox      = color.RGBA{100, 100, 200, 128}
	ColorOverlay     = color.RGBA{0, 0, 0, 128}
)

// Rect is an axis-aligned rectangle visual positioned by its center
type Rect struct {
	Center vec.Vector2
	Size   vec.Vector2
	Color  color.Color
	Hidden bool
}

// SetPosition implements entity.Visual
func (r *Rect) SetPosition(center vec.Vector2) {
	r.Center = center
}

// Min returns the top-left corner
func (r *Rect) Min() vec.Vector2 {
	return r.Center.Sub(r.Size.MultiplyScalar(0.5))
}

// Factory builds Rect visuals for bodies
type Factory struct {
	Color        color.Color
	ShowHitboxes bool
}

// NewVisual implements entity.VisualFactory
func (f Factory) NewVisual(size vec.Vector2) entity.Visual {
	c := f.Color
	if c == nil {
		c = ColorNeutral
	}
	return &Rect{Size: size, Color: c}
}

// NewHitboxVisual implements entity.VisualFactory.
// It returns nil when hitboxes are not shown.
func (f Factory) NewHitboxVisual(size vec.Vector2) entity.Visual {
	if !f.ShowHitboxes {
		return nil
	}
	return &Rect{Size: size, Color: ColorHitbox}
}

// ColorFor returns the body color for an entity type
func ColorFor(t entity.EntityType) color.Color {
	switch t {
	case entity.TypePlayer:
		return ColorPlayer
	case entity.TypeEnemy:
		return ColorEnemy
	case entity.TypeCollectable:
		return ColorCollectable
	default:
		return ColorNeutral
	}
}

// Tint recolors a body's main visual when it is a Rect
func Tint(b *entity.Body) {
	if r, ok := b.Visual().(*Rect); ok {
		r.Color = ColorFor(b.Type)
	}
}
