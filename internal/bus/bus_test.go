package bus

import (
	"fmt"
	"testing"
	"time"

	"github.com/L-YS-Ayoussef/EchoPost/pkg/models"
)

func event(id string, action models.Action) models.ChangeEvent {
	return models.ChangeEvent{
		EventID:   id,
		Action:    action,
		PostID:    "post-1",
		Timestamp: time.Now(),
	}
}

func TestPublish_ReachesAllObservers(t *testing.T) {
	b := New()
	defer b.Close()

	o1 := b.Attach()
	o2 := b.Attach()

	b.Publish(event("evt-1", models.ActionCreate))

	for i, o := range []*Observer{o1, o2} {
		select {
		case ev := <-o.Events():
			if ev.EventID != "evt-1" {
				t.Errorf("observer %d: expected evt-1, got %s", i, ev.EventID)
			}
		case <-time.After(time.Second):
			t.Fatalf("observer %d: timed out waiting for event", i)
		}
	}
}

func TestDetach_StopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	o := b.Attach()
	b.Detach(o)

	if _, ok := <-o.Events(); ok {
		t.Fatal("expected closed channel after detach")
	}

	// Publishing after detach must not panic and must not reach the observer.
	b.Publish(event("evt-2", models.ActionUpdate))

	if b.Len() != 0 {
		t.Errorf("expected 0 observers, got %d", b.Len())
	}
}

func TestDetach_Twice(t *testing.T) {
	b := New()
	defer b.Close()

	o := b.Attach()
	b.Detach(o)
	b.Detach(o) // must not panic
}

func TestPublish_PerPostOrderPreserved(t *testing.T) {
	b := New()
	defer b.Close()

	o := b.Attach()

	for i := 0; i < 10; i++ {
		b.Publish(event(fmt.Sprintf("evt-%d", i), models.ActionUpdate))
	}

	for i := 0; i < 10; i++ {
		select {
		case ev := <-o.Events():
			want := fmt.Sprintf("evt-%d", i)
			if ev.EventID != want {
				t.Fatalf("out of order: expected %s, got %s", want, ev.EventID)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestPublish_SlowObserverDoesNotBlockOthers(t *testing.T) {
	b := New()
	defer b.Close()

	slow := b.Attach() // never drained
	fast := b.Attach()

	// Overflow the slow observer's buffer; publishes must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < observerBuffer*2; i++ {
			b.Publish(event(fmt.Sprintf("evt-%d", i), models.ActionCreate))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow observer")
	}

	// The fast observer drains concurrently-published events; it may have
	// dropped some once its own buffer filled, but it received the head in order.
	first := <-fast.Events()
	if first.EventID != "evt-0" {
		t.Errorf("expected evt-0 first, got %s", first.EventID)
	}
	_ = slow
}

func TestClose_TerminatesObservers(t *testing.T) {
	b := New()
	o := b.Attach()

	b.Close()

	if _, ok := <-o.Events(); ok {
		t.Fatal("expected closed channel after bus close")
	}

	// Idempotent close and post-close operations must be safe.
	b.Close()
	b.Publish(event("evt-after-close", models.ActionDelete))

	late := b.Attach()
	if _, ok := <-late.Events(); ok {
		t.Fatal("expected attach on closed bus to hand out a closed channel")
	}
}
