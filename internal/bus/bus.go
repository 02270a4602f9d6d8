// Package bus fans change events out to every live observer. The bus is an
// explicitly constructed instance injected into the feed service; there is no
// process-global state. Delivery is best-effort with no backlog: observers not
// attached at publish time never see the event, and clients reconcile with a
// fresh list call.
package bus

import (
	"log"
	"sync"

	"github.com/L-YS-Ayoussef/EchoPost/pkg/models"
)

// observerBuffer bounds how far a slow observer may fall behind before
// events are dropped for it.
const observerBuffer = 16

// Observer is a live attachment receiving change events. Its channel is
// closed on Detach and on bus Close.
type Observer struct {
	id int
	ch chan models.ChangeEvent
}

// Events returns the observer's event stream.
func (o *Observer) Events() <-chan models.ChangeEvent {
	return o.ch
}

// Bus broadcasts change events to all attached observers.
type Bus struct {
	mu        sync.Mutex
	nextID    int
	observers map[int]*Observer
	closed    bool
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{observers: make(map[int]*Observer)}
}

// Attach registers a new observer and returns its handle.
func (b *Bus) Attach() *Observer {
	b.mu.Lock()
	defer b.mu.Unlock()

	o := &Observer{id: b.nextID, ch: make(chan models.ChangeEvent, observerBuffer)}
	b.nextID++
	if b.closed {
		close(o.ch)
		return o
	}
	b.observers[o.id] = o
	return o
}

// Detach removes the observer and closes its channel. Detaching an observer
// that is already gone is a no-op.
func (b *Bus) Detach(o *Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.observers[o.id]; !ok {
		return
	}
	delete(b.observers, o.id)
	close(o.ch)
}

// Publish delivers the event to every attached observer. Sends happen under
// the bus lock, so two publishes for the same post reach each observer in
// publish order. A full observer buffer drops the event for that observer
// only; a slow client never blocks the mutation path or its peers.
func (b *Bus) Publish(event models.ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for _, o := range b.observers {
		select {
		case o.ch <- event:
		default:
			log.Printf("[Bus] Dropping event for slow observer: observer=%d action=%s event_id=%s",
				o.id, event.Action, event.EventID)
		}
	}
}

// Len reports how many observers are attached.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.observers)
}

// Close detaches every observer and rejects further publishes.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, o := range b.observers {
		delete(b.observers, id)
		close(o.ch)
	}
}
