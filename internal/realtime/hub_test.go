package realtime

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spottive/internal/domain/catalogs/product"
	"spottive/internal/domain/events"
	"spottive/pkg/logger"
)

func testProduct(name string) *product.Product {
	return product.New(name, "CCTV", "Security Cameras")
}

func collect(sub *Subscription, n int, timeout time.Duration) []events.Change {
	var out []events.Change
	deadline := time.After(timeout)
	for len(out) < n {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-deadline:
			return out
		}
	}
	return out
}

func TestEverySubscriberSeesEveryChangeInOrder(t *testing.T) {
	hub := NewHub(logger.Default())
	subA := hub.Subscribe()
	subB := hub.Subscribe()
	defer hub.Unsubscribe(subA)
	defer hub.Unsubscribe(subB)

	var sent []events.Change
	for i := 0; i < 10; i++ {
		ev := events.Created(testProduct(fmt.Sprintf("camera-%d", i)))
		sent = append(sent, ev)
		hub.Broadcast(ev)
	}

	for _, sub := range []*Subscription{subA, subB} {
		got := collect(sub, len(sent), time.Second)
		require.Len(t, got, len(sent))
		for i := range sent {
			assert.Equal(t, sent[i].Item.Name, got[i].Item.Name, "position %d", i)
		}
	}
}

func TestSubscriberOnlySeesChangesAfterSubscribing(t *testing.T) {
	hub := NewHub(logger.Default())

	early := hub.Subscribe()
	hub.Broadcast(events.Created(testProduct("before")))

	late := hub.Subscribe()
	defer hub.Unsubscribe(early)
	defer hub.Unsubscribe(late)
	hub.Broadcast(events.Created(testProduct("after")))

	gotEarly := collect(early, 2, time.Second)
	require.Len(t, gotEarly, 2)

	gotLate := collect(late, 1, 100*time.Millisecond)
	require.Len(t, gotLate, 1)
	assert.Equal(t, "after", gotLate[0].Item.Name)
}

func TestUnsubscribeStopsDeliveryAndIsIdempotent(t *testing.T) {
	hub := NewHub(logger.Default())
	sub := hub.Subscribe()

	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub) // second call must be a no-op
	hub.Unsubscribe(nil)

	assert.Equal(t, 0, hub.SubscriberCount())

	// After unsubscribe the stream is closed, not blocked.
	hub.Broadcast(events.Created(testProduct("ignored")))
	_, ok := <-sub.Events()
	assert.False(t, ok)
}

func TestSlowSubscriberDoesNotBlockOthers(t *testing.T) {
	hub := NewHub(logger.Default(), WithBufferSize(1))
	slow := hub.Subscribe() // never read
	fast := hub.Subscribe()
	defer hub.Unsubscribe(slow)
	defer hub.Unsubscribe(fast)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5; i++ {
			hub.Broadcast(events.Created(testProduct(fmt.Sprintf("p-%d", i))))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow subscriber")
	}

	// The fast subscriber with a buffer of 1 keeps the first change;
	// the rest were dropped rather than blocking the hub.
	got := collect(fast, 1, time.Second)
	require.Len(t, got, 1)
	assert.Equal(t, "p-0", got[0].Item.Name)
	assert.Greater(t, hub.Dropped(), uint64(0))
}

func TestSubscriberCount(t *testing.T) {
	hub := NewHub(logger.Default())
	assert.Equal(t, 0, hub.SubscriberCount())

	a := hub.Subscribe()
	b := hub.Subscribe()
	assert.Equal(t, 2, hub.SubscriberCount())

	hub.Unsubscribe(a)
	assert.Equal(t, 1, hub.SubscriberCount())
	hub.Unsubscribe(b)
	assert.Equal(t, 0, hub.SubscriberCount())
}
