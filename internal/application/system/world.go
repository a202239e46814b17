package system

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/younwookim/kinebody/internal/application/eventbus"
	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/domain/vec"
	"github.com/younwookim/kinebody/internal/infrastructure/config"
)

// ErrUnknownEntity is returned when a spawn references a missing archetype
var ErrUnknownEntity = errors.New("unknown entity archetype")

// Tracer observes every body's movement result once per tick
type Tracer interface {
	Observe(tick uint64, b *entity.Body, res entity.MoveResult)
}

// World owns the bodies of one stage and advances them tick by tick
type World struct {
	config   *config.PhysicsConfig
	stage    *entity.Stage
	defaults entity.Defaults
	physics  *PhysicsSystem
	bus      *eventbus.Bus

	bodies []*entity.Body
	nextID entity.EntityID // 0 is "nil"
	tick   uint64

	scene   entity.Scene
	visuals entity.VisualFactory
	tracer  Tracer
	logger  *log.Logger
}

// WorldOption configures a World
type WorldOption func(*World)

// WithScene attaches bodies' visuals to scene, creating them through f
func WithScene(scene entity.Scene, f entity.VisualFactory) WorldOption {
	return func(w *World) {
		w.scene = scene
		w.visuals = f
	}
}

// WithTracer sets the movement trace sink
func WithTracer(t Tracer) WorldOption {
	return func(w *World) { w.tracer = t }
}

// WithLogger sets the world logger
func WithLogger(l *log.Logger) WorldOption {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWorld creates a world over stage. A nil stage means unconstrained movement.
func NewWorld(cfg *config.PhysicsConfig, stage *entity.Stage, opts ...WorldOption) (*World, error) {
	d := cfg.Defaults()
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}

	w := &World{
		config:   cfg,
		stage:    stage,
		defaults: d,
		bus:      eventbus.New(),
		nextID:   1,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.physics = NewPhysicsSystem(cfg, stage, w.logger)
	return w, nil
}

// Stage returns the world's tile grid
func (w *World) Stage() *entity.Stage { return w.stage }

// Bus returns the event bus bodies publish to
func (w *World) Bus() *eventbus.Bus { return w.bus }

// Tick returns the number of completed steps
func (w *World) Tick() uint64 { return w.tick }

// Bodies returns the live bodies in update order
func (w *World) Bodies() []*entity.Body {
	out := make([]*entity.Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Body returns the body with the given id
func (w *World) Body(id entity.EntityID) (*entity.Body, bool) {
	for _, b := range w.bodies {
		if b.ID() == id {
			return b, true
		}
	}
	return nil, false
}

// Spawn creates a body centered at pos and adds it to the world and scene
func (w *World) Spawn(pos vec.Vector2, s entity.Settings, hooks entity.Hooks) (*entity.Body, error) {
	opts := []entity.Option{
		entity.WithPublisher(w.bus),
		entity.WithHooks(hooks),
		entity.WithVisuals(w.visuals),
	}
	if w.stage != nil {
		opts = append(opts, entity.WithWorld(w.stage))
	}

	b, err := entity.NewBody(w.nextID, pos, s, w.defaults, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn %q: %w", s.Name, err)
	}
	w.nextID++

	w.bodies = append(w.bodies, b)
	b.AddToScene(w.scene)

	w.logger.Debug("spawned", "id", b.ID(), "name", b.Name, "type", b.Type, "pos", pos)
	return b, nil
}

// Remove detaches a body immediately
func (w *World) Remove(id entity.EntityID) bool {
	for i, b := range w.bodies {
		if b.ID() != id {
			continue
		}
		w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
		w.detach(b)
		return true
	}
	return false
}

func (w *World) detach(b *entity.Body) {
	b.Alive = false
	b.RemoveFromScene(w.scene)
	w.bus.Publish(entity.Event{Type: entity.EventEntityRemoved, Entity: b.ID()})
	w.logger.Debug("removed", "id", b.ID(), "name", b.Name)
}

// Step advances the world by one tick:
// movement for every live body, entity collisions on the settled positions,
// removal of dead bodies, then delivery of the tick's events.
func (w *World) Step() {
	w.tick++

	for _, b := range w.bodies {
		if !b.Alive {
			continue
		}
		res := w.physics.Update(b)
		if w.tracer != nil {
			w.tracer.Observe(w.tick, b, res)
		}
	}

	w.checkCollisions()
	w.prune()
	w.bus.Dispatch()
}

type contact struct {
	a, b *entity.Body
	pa   vec.Vector2 // penetration from a's point of view
	pb   vec.Vector2
}

// checkCollisions tests every collidable pair. All contacts are gathered before any
// handler runs so a handler cannot affect which other pairs collide this tick.
func (w *World) checkCollisions() {
	var contacts []contact
	for i, a := range w.bodies {
		if !a.Alive || !a.Collidable {
			continue
		}
		for _, b := range w.bodies[i+1:] {
			if !b.Alive || !b.Collidable || !a.Intersects(b) {
				continue
			}
			contacts = append(contacts, contact{a: a, b: b, pa: a.CheckCollision(b), pb: b.CheckCollision(a)})
		}
	}

	for _, c := range contacts {
		c.a.HandleCollision(c.pa, c.b)
		c.b.HandleCollision(c.pb, c.a)
		w.bus.Publish(entity.Event{Type: entity.EventEntityCollision, Entity: c.a.ID(), Other: c.b.ID(), Vector: c.pa})
		w.bus.Publish(entity.Event{Type: entity.EventEntityCollision, Entity: c.b.ID(), Other: c.a.ID(), Vector: c.pb})
	}
}

// prune removes bodies that are no longer alive, keeping update order
func (w *World) prune() {
	live := w.bodies[:0]
	for _, b := range w.bodies {
		if b.Alive {
			live = append(live, b)
			continue
		}
		w.detach(b)
	}
	for i := len(live); i < len(w.bodies); i++ {
		w.bodies[i] = nil
	}
	w.bodies = live
}

// BreakTile clears a breakable tile and notifies every body touching it.
// Returns false when the tile is missing or not breakable.
func (w *World) BreakTile(tx, ty int) bool {
	if w.stage == nil {
		return false
	}
	tile := w.stage.GetTile(tx, ty)
	if !tile.Breakable || tile.Type == entity.TileEmpty {
		return false
	}
	if !w.stage.SetTile(tx, ty, entity.Tile{Type: entity.TileEmpty}) {
		return false
	}

	minX, minY, maxX, maxY := w.stage.TileBounds(tx, ty)
	for _, b := range w.bodies {
		if b.Alive && touchesRect(b, minX, minY, maxX, maxY) {
			b.HandleTileBreak(tile)
		}
	}

	w.bus.Publish(entity.Event{Type: entity.EventTileBreak, Tile: tile})
	w.logger.Debug("tile broken", "x", tx, "y", ty)
	return true
}

// touchesRect reports whether b's hitbox overlaps or shares an edge with the rectangle
func touchesRect(b *entity.Body, minX, minY, maxX, maxY float64) bool {
	c := b.HitboxCenter()
	size := b.Hitbox().Size
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	return math.Abs(c.X-cx)*2 <= size.X+(maxX-minX) &&
		math.Abs(c.Y-cy)*2 <= size.Y+(maxY-minY)
}
