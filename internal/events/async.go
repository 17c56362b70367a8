package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrQueueFull       = errors.New("event queue is full")
	ErrPublisherClosed = errors.New("event publisher is closed")
)

type queuedEvent struct {
	ctx   context.Context
	event Event
}

// AsyncPublisher queues events and hands them to next from one background
// goroutine, so Publish never waits on the broker. Events keep their
// publish order. When the queue is full Publish fails fast with
// ErrQueueFull.
type AsyncPublisher struct {
	next    Publisher
	timeout time.Duration
	queue   chan queuedEvent
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewAsyncPublisher starts the delivery goroutine. Each delivery to next is
// bounded by timeout.
func NewAsyncPublisher(next Publisher, buffer int, timeout time.Duration) *AsyncPublisher {
	if buffer <= 0 {
		buffer = 1
	}
	p := &AsyncPublisher{
		next:    next,
		timeout: timeout,
		queue:   make(chan queuedEvent, buffer),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish enqueues event. The caller's cancellation does not reach the
// delivery; its values (the request logger) do.
func (p *AsyncPublisher) Publish(ctx context.Context, event Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case p.queue <- queuedEvent{ctx: context.WithoutCancel(ctx), event: event}:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *AsyncPublisher) run() {
	defer close(p.done)
	for item := range p.queue {
		ctx, cancel := context.WithTimeout(item.ctx, p.timeout)
		if err := p.next.Publish(ctx, item.event); err != nil {
			log.Ctx(item.ctx).Error().Err(err).
				Str("event_id", item.event.ID).
				Str("event_type", item.event.Type).
				Msg("Failed to deliver event")
		}
		cancel()
	}
}

// Close stops accepting events, delivers what is already queued, then
// closes next.
func (p *AsyncPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.next.Close()
}
