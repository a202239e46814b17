package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/domain/vec"
)

func TestBus_PublishIsDeferred(t *testing.T) {
	bus := New()
	var got []entity.Event
	bus.Subscribe(entity.EventEntityMove, func(ev entity.Event) { got = append(got, ev) })

	bus.Publish(entity.Event{Type: entity.EventEntityMove, Entity: 1, Vector: vec.New(1, 0)})

	assert.Empty(t, got, "publish must not deliver synchronously")
	assert.Equal(t, 1, bus.Pending())

	assert.Equal(t, 1, bus.Dispatch())
	assert.Len(t, got, 1)
	assert.Equal(t, 0, bus.Pending())
}

func TestBus_RoutesByType(t *testing.T) {
	bus := New()
	var moves, collisions, all int
	bus.Subscribe(entity.EventEntityMove, func(entity.Event) { moves++ })
	bus.Subscribe(entity.EventEntityCollision, func(entity.Event) { collisions++ })
	bus.SubscribeAll(func(entity.Event) { all++ })

	bus.Publish(entity.Event{Type: entity.EventEntityMove})
	bus.Publish(entity.Event{Type: entity.EventEntityMove})
	bus.Publish(entity.Event{Type: entity.EventEntityCollision})
	bus.Publish(entity.Event{Type: entity.EventTileBreak})
	bus.Dispatch()

	assert.Equal(t, 2, moves)
	assert.Equal(t, 1, collisions)
	assert.Equal(t, 4, all)
}

func TestBus_FIFOOrder(t *testing.T) {
	bus := New()
	var order []entity.EntityID
	bus.SubscribeAll(func(ev entity.Event) { order = append(order, ev.Entity) })

	for id := entity.EntityID(1); id <= 5; id++ {
		bus.Publish(entity.Event{Type: entity.EventEntityMove, Entity: id})
	}
	bus.Dispatch()

	assert.Equal(t, []entity.EntityID{1, 2, 3, 4, 5}, order)
}

func TestBus_PublishDuringDispatch(t *testing.T) {
	bus := New()
	calls := 0
	bus.Subscribe(entity.EventEntityCollision, func(ev entity.Event) {
		calls++
		bus.Publish(entity.Event{Type: entity.EventEntityRemoved, Entity: ev.Entity})
	})

	bus.Publish(entity.Event{Type: entity.EventEntityCollision, Entity: 3})

	assert.Equal(t, 1, bus.Dispatch())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, bus.Pending(), "follow-up event waits for the next dispatch")
}

func TestBus_Drain(t *testing.T) {
	bus := New()
	assert.Nil(t, bus.Drain())

	bus.Publish(entity.Event{Type: entity.EventTileBreak})
	events := bus.Drain()
	assert.Len(t, events, 1)
	assert.Equal(t, 0, bus.Dispatch())
}

func TestBus_NilPublish(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() { bus.Publish(entity.Event{}) })
}
