// Package relay bridges the in-process broadcast bus to the message broker.
// It attaches a bus observer and republishes every change event to the topic
// exchange so that out-of-process consumers (analytics, other services) see
// the same mutations live WebSocket clients do.
package relay

import (
	"encoding/json"
	"log"

	"github.com/L-YS-Ayoussef/EchoPost/internal/bus"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/models"
)

// Publisher is the broker-facing surface the relay publishes through.
type Publisher interface {
	Publish(routingKey string, body []byte, correlationID string) error
}

// Relay forwards bus events to the broker until stopped.
type Relay struct {
	bus      *bus.Bus
	pub      Publisher
	observer *bus.Observer
	done     chan struct{}
}

// Start attaches to the bus and begins forwarding events.
func Start(b *bus.Bus, pub Publisher) *Relay {
	r := &Relay{
		bus:      b,
		pub:      pub,
		observer: b.Attach(),
		done:     make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Relay) run() {
	defer close(r.done)
	for ev := range r.observer.Events() {
		body, err := json.Marshal(ev)
		if err != nil {
			log.Printf("[Relay] Error marshaling event %s: %v", ev.EventID, err)
			continue
		}
		if err := r.pub.Publish(ev.Action.RoutingKey(), body, ev.CorrelationID); err != nil {
			// The mutation already committed; a lost relay message only
			// affects out-of-process consumers.
			log.Printf("[Relay] Error publishing event %s: %v", ev.EventID, err)
		}
	}
	log.Printf("[Relay] Stopped")
}

// Stop detaches from the bus and waits for in-flight events to drain.
func (r *Relay) Stop() {
	r.bus.Detach(r.observer)
	<-r.done
}

// RoutingKeys lists every routing key the relay publishes under, for
// consumers that want to bind to all post mutations.
func RoutingKeys() []string {
	return []string{models.EventPostCreated, models.EventPostUpdated, models.EventPostDeleted}
}
