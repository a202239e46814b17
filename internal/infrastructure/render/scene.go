package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/domain/vec"
)

// Scene is an ordered draw list of rect visuals.
// It implements entity.Scene; visuals that are not *Rect are ignored.
type Scene struct {
	rects []*Rect
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{}
}

// Add implements entity.Scene
func (s *Scene) Add(v entity.Visual) {
	r, ok := v.(*Rect)
	if !ok || r == nil {
		return
	}
	for _, existing := range s.rects {
		if existing == r {
			return
		}
	}
	s.rects = append(s.rects, r)
}

// Remove implements entity.Scene
func (s *Scene) Remove(v entity.Visual) {
	r, ok := v.(*Rect)
	if !ok {
		return
	}
	for i, existing := range s.rects {
		if existing == r {
			s.rects = append(s.rects[:i], s.rects[i+1:]...)
			return
		}
	}
}

// Len returns the number of attached visuals
func (s *Scene) Len() int {
	return len(s.rects)
}

// Draw renders every visible rect, offset by the camera's top-left corner
func (s *Scene) Draw(screen *ebiten.Image, cam vec.Vector2) {
	for _, r := range s.rects {
		if r.Hidden {
			continue
		}
		tl := r.Min().Sub(cam)
		ebitenutil.DrawRect(screen, tl.X, tl.Y, r.Size.X, r.Size.Y, r.Color)
	}
}

// DrawStage renders the tiles visible through a screenW x screenH camera
func DrawStage(screen *ebiten.Image, stage *entity.Stage, cam vec.Vector2, screenW, screenH int) {
	ts := stage.TileSize
	camX, camY := int(cam.X), int(cam.Y)

	startTileX := camX / ts
	startTileY := camY / ts
	endTileX := (camX+screenW)/ts + 1
	endTileY := (camY+screenH)/ts + 1

	for ty := startTileY; ty <= endTileY && ty < stage.Height; ty++ {
		for tx := startTileX; tx <= endTileX && tx < stage.Width; tx++ {
			if tx < 0 || ty < 0 {
				continue
			}
			tile := stage.GetTile(tx, ty)
			c := tileColor(tile)
			if c == nil {
				continue
			}

			x := float64(tx*ts - camX)
			y := float64(ty*ts - camY)
			ebitenutil.DrawRect(screen, x, y, float64(ts), float64(ts), c)
		}
	}
}

func tileColor(t entity.Tile) color.Color {
	switch t.Type {
	case entity.TileSolid:
		switch {
		case t.Breakable:
			return ColorBreakable
		case t.IsSlope():
			return ColorSlope
		default:
			return ColorWall
		}
	case entity.TileLadder:
		return ColorLadder
	case entity.TileNeutral:
		return ColorNeutralTile
	default:
		return nil
	}
}

// Camera centers the view on target, clamped to the stage bounds
func Camera(stage *entity.Stage, target vec.Vector2, screenW, screenH int) vec.Vector2 {
	camX := int(target.X) - screenW/2
	camY := int(target.Y) - screenH/2

	maxCamX := stage.Width*stage.TileSize - screenW
	maxCamY := stage.Height*stage.TileSize - screenH
	if camX > maxCamX {
		camX = maxCamX
	}
	if camY > maxCamY {
		camY = maxCamY
	}
	if camX < 0 {
		camX = 0
	}
	if camY < 0 {
		camY = 0
	}

	return vec.New(float64(camX), float64(camY))
}
