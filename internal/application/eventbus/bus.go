package eventbus

import "github.com/younwookim/kinebody/internal/domain/entity"

// Handler receives a dispatched event
type Handler func(ev entity.Event)

// Bus queues body events and routes them to subscribers.
//
// Architecture:
//   - Publish only enqueues; nothing is delivered during the tick
//   - Dispatch drains the queue in FIFO order
//   - Multiple handlers per type, invoked in subscription order
//   - Single-threaded
type Bus struct {
	handlers map[entity.EventType][]Handler
	all      []Handler
	queue    []entity.Event
}

// New creates an empty bus
func New() *Bus {
	return &Bus{
		handlers: make(map[entity.EventType][]Handler),
	}
}

// Publish implements entity.Publisher
func (b *Bus) Publish(ev entity.Event) {
	if b == nil {
		return
	}
	b.queue = append(b.queue, ev)
}

// Subscribe registers h for events of type t
func (b *Bus) Subscribe(t entity.EventType, h Handler) {
	b.handlers[t] = append(b.handlers[t], h)
}

// SubscribeAll registers h for every event type
func (b *Bus) SubscribeAll(h Handler) {
	b.all = append(b.all, h)
}

// Pending returns the number of queued events
func (b *Bus) Pending() int {
	return len(b.queue)
}

// Drain returns all queued events and clears the queue without delivering them
func (b *Bus) Drain() []entity.Event {
	if len(b.queue) == 0 {
		return nil
	}
	out := b.queue
	b.queue = nil
	return out
}

// Dispatch delivers all queued events and returns how many were delivered.
// Events published by handlers are delivered on the next Dispatch.
func (b *Bus) Dispatch() int {
	events := b.Drain()
	for _, ev := range events {
		for _, h := range b.handlers[ev.Type] {
			h(ev)
		}
		for _, h := range b.all {
			h(ev)
		}
	}
	return len(events)
}
