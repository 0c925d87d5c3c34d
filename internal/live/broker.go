// Package live fans sale-store change notifications out to subscribers.
// Events carry no record data: a notification means "re-fetch the snapshot
// and re-derive", matching how the dashboard recomputes everything from
// the latest full read.
package live

import (
	"sync"
	"time"
)

// Event describes one store mutation.
type Event struct {
	Collection string    `json:"collection"` // "sales" or "catalog"
	Action     string    `json:"action"`     // "create", "update", "delete"
	ID         string    `json:"id"`
	At         time.Time `json:"at"`
}

// Broker is an in-process publish/subscribe hub.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	closed bool
}

// subBuffer is per-subscriber; a subscriber that falls this far behind
// starts losing events rather than blocking publishers.
const subBuffer = 16

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener and returns its channel plus a cancel
// handle. Cancel is idempotent and closes the channel.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	ch := make(chan Event, subBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber without blocking; a full
// subscriber buffer drops the event for that subscriber only.
func (b *Broker) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Close drops all subscribers. Further Subscribe calls get a closed channel.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
