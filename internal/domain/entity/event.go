package entity

import "github.com/younwookim/kinebody/internal/domain/vec"

// EventType identifies a body notification
type EventType int

const (
	// EventEntityMove is published after a body commits a position change.
	// Payload: Vector = velocity applied
	EventEntityMove EventType = iota

	// EventEntityCollision is published for each intersecting body pair.
	// Payload: Other = colliding body, Vector = penetration estimate
	EventEntityCollision

	// EventTileBreak is published when a breakable tile is cleared.
	// Payload: Tile = the tile before it was cleared
	EventTileBreak

	// EventEntityRemoved is published when a dead body is pruned from the world
	EventEntityRemoved
)

// String returns the event type name
func (t EventType) String() string {
	switch t {
	case EventEntityMove:
		return "entity.move"
	case EventEntityCollision:
		return "entity.collision"
	case EventTileBreak:
		return "tile.break"
	case EventEntityRemoved:
		return "entity.removed"
	default:
		return "unknown"
	}
}

// Event is a typed notification keyed by the source entity
type Event struct {
	Type   EventType
	Entity EntityID
	Other  EntityID
	Vector vec.Vector2
	Tile   Tile
}

// Publisher receives body events. Delivery is fire-and-forget.
type Publisher interface {
	Publish(ev Event)
}
