package entity

import "github.com/younwookim/kinebody/internal/domain/vec"

// Hooks are the gameplay reactions a body can override
type Hooks interface {
	// OnMove is called after the body moved by vel
	OnMove(b *Body, vel vec.Vector2)

	// OnCollision is called when other collides into b.
	// p is the penetration estimate from b's point of view.
	OnCollision(b *Body, p vec.Vector2, other *Body)

	// OnTileBreak is called when a tile touching b is broken
	OnTileBreak(b *Body, tile Tile)
}

// BaseHooks implements Hooks with no-ops. Embed it to override a subset.
type BaseHooks struct{}

func (BaseHooks) OnMove(*Body, vec.Vector2)             {}
func (BaseHooks) OnCollision(*Body, vec.Vector2, *Body) {}
func (BaseHooks) OnTileBreak(*Body, Tile)               {}

// HookFuncs adapts plain callbacks to Hooks. Nil fields are no-ops.
type HookFuncs struct {
	Move      func(b *Body, vel vec.Vector2)
	Collision func(b *Body, p vec.Vector2, other *Body)
	TileBreak func(b *Body, tile Tile)
}

func (h HookFuncs) OnMove(b *Body, vel vec.Vector2) {
	if h.Move != nil {
		h.Move(b, vel)
	}
}

func (h HookFuncs) OnCollision(b *Body, p vec.Vector2, other *Body) {
	if h.Collision != nil {
		h.Collision(b, p, other)
	}
}

func (h HookFuncs) OnTileBreak(b *Body, tile Tile) {
	if h.TileBreak != nil {
		h.TileBreak(b, tile)
	}
}
