// Package realtime moves committed catalog changes from the store
// mutation log to connected clients: Capture tails the log, Hub fans
// each change out to every subscriber.
package realtime

import (
	"sync"
	"sync/atomic"

	"spottive/internal/domain/events"
	"spottive/pkg/logger"
)

// defaultBufferSize is the per-subscriber channel capacity. A
// subscriber that falls this far behind starts losing changes; the
// refresh that follows every change heals the gap.
const defaultBufferSize = 64

// Subscription is one subscriber's private change stream.
type Subscription struct {
	ch     chan events.Change
	closed sync.Once
}

// Events returns the subscriber's change stream. The channel closes
// when the subscription is cancelled.
func (s *Subscription) Events() <-chan events.Change {
	return s.ch
}

// Hub fans changes out to all current subscribers. There is one Hub
// per process, created at startup and handed to its users explicitly.
type Hub struct {
	mu         sync.RWMutex
	subs       map[*Subscription]struct{}
	bufferSize int
	log        *logger.Logger
	dropped    atomic.Uint64
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithBufferSize overrides the per-subscriber buffer capacity.
func WithBufferSize(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.bufferSize = n
		}
	}
}

// NewHub creates an empty hub.
func NewHub(log *logger.Logger, opts ...HubOption) *Hub {
	h := &Hub{
		subs:       make(map[*Subscription]struct{}),
		bufferSize: defaultBufferSize,
		log:        log.WithComponent("hub"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers a new subscriber. The subscriber sees every
// change broadcast after this call, in broadcast order.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{ch: make(chan events.Change, h.bufferSize)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscriber and closes its stream. Safe to call
// more than once.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, sub)
	// Closed under the write lock so no Broadcast can be mid-send.
	sub.closed.Do(func() { close(sub.ch) })
}

// Broadcast delivers a change to every subscriber. A full subscriber
// buffer drops the change for that subscriber only; Broadcast never
// blocks on a slow consumer.
func (h *Hub) Broadcast(change events.Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.ch <- change:
		default:
			h.dropped.Add(1)
			h.log.Debugw("dropped change for slow subscriber", "kind", string(change.Kind))
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped returns the total number of changes dropped on full buffers.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}
