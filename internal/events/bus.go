package events

import (
	"sync"

	"go.uber.org/zap"

	"github.com/haloshell/haloshell/internal/infrastructure/logging"
	"github.com/haloshell/haloshell/internal/infrastructure/monitoring"
)

// Handler receives published events.
type Handler func(Event)

// wildcard receives every event regardless of type.
const wildcard Type = "*"

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	id      uint64
	kind    Type
	handler Handler
}

// Bus dispatches tagged events to subscribers by type.
type Bus struct {
	mu          sync.RWMutex
	nextID      uint64
	subscribers map[Type][]*Subscription
	logger      *logging.Logger
	metrics     *monitoring.Metrics
}

// NewBus creates an event bus.
func NewBus(logger *logging.Logger) *Bus {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Bus{
		subscribers: make(map[Type][]*Subscription),
		logger:      logger,
	}
}

// WithMetrics adds metrics tracking to the bus
func (b *Bus) WithMetrics(metrics *monitoring.Metrics) *Bus {
	b.metrics = metrics
	return b
}

// Subscribe registers a handler for a single event type.
func (b *Bus) Subscribe(kind Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sub := &Subscription{id: b.nextID, kind: kind, handler: handler}
	b.subscribers[kind] = append(b.subscribers[kind], sub)
	return sub
}

// SubscribeAll registers a handler for every event type.
func (b *Bus) SubscribeAll(handler Handler) *Subscription {
	return b.Subscribe(wildcard, handler)
}

// Unsubscribe removes a previously registered handler. Unknown
// subscriptions are ignored.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subscribers[sub.kind]
	for i, s := range subs {
		if s.id == sub.id {
			b.subscribers[sub.kind] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Publish dispatches an event synchronously to all matching subscribers.
// The subscriber list is snapshotted under the lock and iterated after
// release, so handlers may subscribe or unsubscribe freely.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	snapshot := make([]*Subscription, 0, len(b.subscribers[event.Type])+len(b.subscribers[wildcard]))
	snapshot = append(snapshot, b.subscribers[event.Type]...)
	snapshot = append(snapshot, b.subscribers[wildcard]...)
	b.mu.RUnlock()

	if b.metrics != nil {
		b.metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()
	}

	for _, sub := range snapshot {
		b.dispatch(sub, event)
	}
}

// dispatch invokes one handler, isolating panics so the remaining
// subscribers still run.
func (b *Bus) dispatch(sub *Subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			if b.metrics != nil {
				b.metrics.SubscriberPanics.Inc()
			}
			b.logger.Error("event subscriber panicked",
				zap.String("event", string(event.Type)),
				zap.Any("panic", r),
			)
		}
	}()
	sub.handler(event)
}
