package event

import (
	"log/slog"
	"sync"
)

// Publisher accepts domain events.
type Publisher interface {
	Publish(e Event)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(e Event)

// Publish calls f(e).
func (f PublisherFunc) Publish(e Event) { f(e) }

// Discard drops every event.
var Discard Publisher = PublisherFunc(func(Event) {})

// OrDiscard returns p, or Discard if p is nil.
func OrDiscard(p Publisher) Publisher {
	if p == nil {
		return Discard
	}
	return p
}

// Handler receives events from a Bus.
type Handler func(e Event)

// Bus fans events out to subscribers synchronously, in subscription order.
// Handlers for a specific type run before catch-all handlers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
	all      []Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]Handler)}
}

// Subscribe registers h for events of type t.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// SubscribeAll registers h for every event.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish delivers e to the matching handlers.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	typed := b.handlers[e.Type()]
	all := b.all
	b.mu.RUnlock()

	for _, h := range typed {
		h(e)
	}
	for _, h := range all {
		h(e)
	}
}

// LogPublisher logs every event at debug level and forwards it to next.
type LogPublisher struct {
	next   Publisher
	logger *slog.Logger
}

// NewLogPublisher wraps next. A nil logger uses slog.Default().
func NewLogPublisher(next Publisher, logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{next: OrDiscard(next), logger: logger}
}

// Publish logs e and forwards it.
func (p *LogPublisher) Publish(e Event) {
	if p == nil {
		return
	}
	p.logger.Debug("event", "type", e.Type(), "payload", e)
	p.next.Publish(e)
}

// Queue decouples event consumption from the engine goroutine.
// Publish never blocks: when the buffer is full the event is counted as dropped.
type Queue struct {
	ch      chan Event
	mu      sync.Mutex
	dropped int
	closed  bool
}

// NewQueue creates a queue with the given buffer size.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{ch: make(chan Event, size)}
}

// Publish enqueues e or drops it if the buffer is full or the queue is closed.
func (q *Queue) Publish(e Event) {
	if q == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.dropped++
		return
	}
	select {
	case q.ch <- e:
	default:
		q.dropped++
	}
}

// Events returns the receive side of the queue.
func (q *Queue) Events() <-chan Event { return q.ch }

// Close stops accepting events and closes the channel.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}

// Dropped returns how many events were discarded.
func (q *Queue) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
