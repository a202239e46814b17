package entity

import (
	"math"

	"github.com/younwookim/kinebody/internal/domain/motion"
	"github.com/younwookim/kinebody/internal/domain/vec"
)

// Visual is a rendering handle that mirrors a body's position
type Visual interface {
	SetPosition(center vec.Vector2)
}

// VisualFactory creates the visual representations of a body.
// NewHitboxVisual may return nil when hitboxes are not drawn.
type VisualFactory interface {
	NewVisual(size vec.Vector2) Visual
	NewHitboxVisual(size vec.Vector2) Visual
}

// Scene attaches and detaches visuals
type Scene interface {
	Add(v Visual)
	Remove(v Visual)
}

// HitboxShape is the collision rectangle, already scaled by the body's scale.
// Offset is relative to the body's Position.
type HitboxShape struct {
	Size   vec.Vector2
	Offset vec.Vector2
}

// Body is the kinematic state of one entity plus its tile and entity collision response.
// Velocity is in units per tick, positive Y points down.
type Body struct {
	id   EntityID
	Name string
	Type EntityType

	Collidable    bool
	MapCollidable bool
	Visible       bool
	Alive         bool

	Position    vec.Vector2
	Velocity    vec.Vector2
	Accel       vec.Vector2 // units per second, consumed by controllers
	MaxVelocity vec.Vector2
	Friction    vec.Vector2
	Gravity     float64

	scale     float64
	size      vec.Vector2
	hitbox    HitboxShape
	tickDelta float64

	// Read-only flags, recomputed every tick
	falling  bool
	jumping  bool
	onLadder bool

	world     Prober
	publisher Publisher
	hooks     Hooks

	visual       Visual
	hitboxVisual Visual
}

// Option configures a Body's collaborators
type Option func(*Body)

// WithWorld sets the tile collision collaborator
func WithWorld(p Prober) Option {
	return func(b *Body) { b.world = p }
}

// WithPublisher sets the event sink
func WithPublisher(p Publisher) Option {
	return func(b *Body) { b.publisher = p }
}

// WithHooks sets the gameplay hooks
func WithHooks(h Hooks) Option {
	return func(b *Body) {
		if h != nil {
			b.hooks = h
		}
	}
}

// WithVisuals creates the body's visuals through f
func WithVisuals(f VisualFactory) Option {
	return func(b *Body) {
		if f == nil {
			return
		}
		b.visual = f.NewVisual(b.size)
		b.hitboxVisual = f.NewHitboxVisual(b.hitbox.Size)
	}
}

// NewBody creates a body at pos. Settings are validated; unset fields fall back to d.
func NewBody(id EntityID, pos vec.Vector2, s Settings, d Defaults, opts ...Option) (*Body, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	b := &Body{
		id:            id,
		Name:          s.Name,
		Type:          s.Type,
		Collidable:    true,
		MapCollidable: true,
		Visible:       true,
		Alive:         true,
		Friction:      d.Friction,
		Gravity:       d.Gravity,
		MaxVelocity:   d.MaxVelocity,
		Accel:         d.Accel,
		scale:         s.Scale,
		tickDelta:     d.TickDelta,
		hooks:         BaseHooks{},
	}
	if b.scale == 0 {
		b.scale = 1
	}
	if b.tickDelta == 0 {
		b.tickDelta = 1
	}
	if s.Friction != nil {
		b.Friction = *s.Friction
	}
	if s.Gravity != nil {
		b.Gravity = *s.Gravity
	}
	if s.MaxVelocity != nil {
		b.MaxVelocity = *s.MaxVelocity
	}
	if s.Accel != nil {
		b.Accel = *s.Accel
	}
	if s.Collidable != nil {
		b.Collidable = *s.Collidable
	}
	if s.MapCollidable != nil {
		b.MapCollidable = *s.MapCollidable
	}

	// Hitbox defaults to the visual size
	hitSize := s.HitSize
	if hitSize.IsZero() {
		hitSize = s.Size
	}
	b.size = s.Size.MultiplyScalar(b.scale)
	b.hitbox = HitboxShape{
		Size:   hitSize.MultiplyScalar(b.scale),
		Offset: s.HitOffset.MultiplyScalar(b.scale),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.SetPosition(pos)
	return b, nil
}

// ID returns the body's entity ID
func (b *Body) ID() EntityID { return b.id }

// Scale returns the uniform scale
func (b *Body) Scale() float64 { return b.scale }

// Size returns the scaled visual size
func (b *Body) Size() vec.Vector2 { return b.size }

// Hitbox returns the scaled hitbox shape
func (b *Body) Hitbox() HitboxShape { return b.hitbox }

// HitboxCenter returns the hitbox center in world coordinates
func (b *Body) HitboxCenter() vec.Vector2 {
	return b.Position.Add(b.hitbox.Offset)
}

// Falling reports whether the body moved downward after the last gravity pass
func (b *Body) Falling() bool { return b.falling }

// Jumping reports whether the body is rising from a jump
func (b *Body) Jumping() bool { return b.jumping }

// OnLadder reports whether a ladder tile was touched during the last movement tick
func (b *Body) OnLadder() bool { return b.onLadder }

// Visual returns the body's visual, which may be nil
func (b *Body) Visual() Visual { return b.visual }

// HitboxVisual returns the body's hitbox visual, which may be nil
func (b *Body) HitboxVisual() Visual { return b.hitboxVisual }

// SetPosition places the body and mirrors the new position into its visuals
func (b *Body) SetPosition(pos vec.Vector2) {
	b.Position = pos
	b.syncVisuals()
}

func (b *Body) syncVisuals() {
	if b.visual != nil {
		b.visual.SetPosition(b.Position)
	}
	if b.hitboxVisual != nil {
		b.hitboxVisual.SetPosition(b.HitboxCenter())
	}
}

// Jump starts a jump with the given upward speed.
// It fails while already jumping or falling.
func (b *Body) Jump(force float64) bool {
	if b.jumping || b.falling {
		return false
	}
	b.Velocity.Y = -force
	b.jumping = true
	return true
}

// Land stops vertical motion after the body was set down on a surface
func (b *Body) Land() {
	b.Velocity.Y = 0
	b.falling = false
	b.jumping = false
}

// ComputeVelocity applies gravity, friction and the velocity cap to vel in place.
// Both gravity and the friction step are scaled by the tick delta.
// It returns vel for chaining.
func (b *Body) ComputeVelocity(vel *vec.Vector2) *vec.Vector2 {
	if b.Gravity != 0 {
		// Ladders suspend gravity for the tick
		if !b.onLadder {
			vel.Y += b.Gravity * b.tickDelta
		}

		b.falling = vel.Y > 0
		if b.falling {
			b.jumping = false
		}
	}

	if b.Friction.X != 0 {
		vel.X = motion.ApplyFriction(vel.X, b.Friction.X*b.tickDelta)
	}
	if b.Friction.Y != 0 {
		vel.Y = motion.ApplyFriction(vel.Y, b.Friction.Y*b.tickDelta)
	}

	if vel.X != 0 {
		vel.X = motion.Clamp(vel.X, -b.MaxVelocity.X, b.MaxVelocity.X)
	}
	if vel.Y != 0 {
		vel.Y = motion.Clamp(vel.Y, -b.MaxVelocity.Y, b.MaxVelocity.Y)
	}

	return vel
}

// UpdateMovement resolves one tick of movement against the tile world.
//
// Collisions are classified before gravity and friction so a wall stop is not
// re-accelerated within the same tick, and so ladders can suspend gravity.
// A slope hit redirects velocity and ends the tick without moving.
func (b *Body) UpdateMovement() MoveResult {
	if b.Velocity.IsZero() {
		return MoveResult{Outcome: OutcomeIdle}
	}

	var colliders []Collider
	if b.MapCollidable {
		colliders = Probe(b.world, b.HitboxCenter(), b.hitbox.Size, b.Velocity)
	}

	b.onLadder = false
	outcome := OutcomeResolved

	for _, c := range colliders {
		switch c.Tile.Type {
		case TileLadder:
			b.onLadder = true
		case TileSolid:
			if c.Tile.Normal != nil && (b.Velocity.X == 0 || b.Velocity.Y == 0) {
				b.redirectAlongSlope(*c.Tile.Normal)
				return MoveResult{Outcome: OutcomeSlopeRedirected, Colliders: colliders}
			}
			b.Velocity.SetAxis(c.Axis, 0)
			outcome = OutcomeBlocked
		}
	}

	// TODO: roll around the tip of a blocking tile when only the edge is hit

	b.ComputeVelocity(&b.Velocity)
	b.MoveEntity(nil)

	return MoveResult{Outcome: outcome, Colliders: colliders}
}

// redirectAlongSlope removes the into-surface component and adds the corrected
// movement back onto the velocity.
func (b *Body) redirectAlongSlope(normal vec.Vector2) {
	bad := normal.MultiplyScalar(b.Velocity.Dot(normal))
	corrected := b.Velocity.Sub(bad)
	b.Velocity = b.Velocity.Add(corrected)
}

// MoveEntity moves the body by vel, or by its velocity when vel is nil.
// It returns false without side effects when the movement is zero.
func (b *Body) MoveEntity(vel *vec.Vector2) bool {
	v := b.Velocity
	if vel != nil {
		v = *vel
	}
	if v.IsZero() {
		return false
	}

	b.Position = b.Position.Add(v)
	b.syncVisuals()

	b.hooks.OnMove(b, v)

	if b.publisher != nil {
		b.publisher.Publish(Event{Type: EventEntityMove, Entity: b.id, Vector: v})
	}
	return true
}

// Intersects reports whether the hitboxes of b and other overlap.
// Exact edge contact does not count.
func (b *Body) Intersects(other *Body) bool {
	d := b.HitboxCenter().Sub(other.HitboxCenter())
	return math.Abs(d.X)*2 < b.hitbox.Size.X+other.hitbox.Size.X &&
		math.Abs(d.Y)*2 < b.hitbox.Size.Y+other.hitbox.Size.Y
}

// CheckCollision returns half the hitbox center delta (b - other) when the hitboxes
// overlap, or the zero vector. It is a coarse separation estimate, not a resolved MTV.
func (b *Body) CheckCollision(other *Body) vec.Vector2 {
	if !b.Intersects(other) {
		return vec.Zero()
	}
	return b.HitboxCenter().Sub(other.HitboxCenter()).MultiplyScalar(0.5)
}

// DistanceTo returns the distance between the hitbox centers of b and other
func (b *Body) DistanceTo(other *Body) float64 {
	return b.HitboxCenter().Sub(other.HitboxCenter()).Length()
}

// HandleCollision notifies b that other collided into it.
// A collidable collectable is consumed: it stops being alive.
func (b *Body) HandleCollision(p vec.Vector2, other *Body) {
	b.hooks.OnCollision(b, p, other)

	if b.Collidable && b.Type == TypeCollectable {
		b.Alive = false
	}
}

// HandleTileBreak notifies b that a nearby tile was broken
func (b *Body) HandleTileBreak(tile Tile) {
	b.hooks.OnTileBreak(b, tile)
}

// AddToScene attaches the body's visuals. A missing hitbox visual is skipped.
func (b *Body) AddToScene(scene Scene) {
	if scene == nil {
		return
	}
	if b.hitboxVisual != nil {
		scene.Add(b.hitboxVisual)
	}
	if b.visual != nil {
		scene.Add(b.visual)
	}
}

// RemoveFromScene detaches the body's visuals. A missing hitbox visual is skipped.
func (b *Body) RemoveFromScene(scene Scene) {
	if scene == nil {
		return
	}
	if b.hitboxVisual != nil {
		scene.Remove(b.hitboxVisual)
	}
	if b.visual != nil {
		scene.Remove(b.visual)
	}
}
