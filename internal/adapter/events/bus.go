package events

import (
	"context"
	"sync"

	"github.com/taskhive/taskhive/internal/ports"
	"github.com/taskhive/taskhive/internal/service/logger"
)

// Bus is a bounded in-process channel carrying audit events from the
// orchestrator to the recorder. Publish never blocks the request path:
// when the buffer is full the event is dropped with a warning, which is
// the accepted best-effort trade-off.
type Bus struct {
	ch     chan ports.AuditEvent
	log    logger.Logger
	closed chan struct{}
	once   sync.Once
}

// NewBus creates a bus with the given buffer size.
func NewBus(size int, log logger.Logger) *Bus {
	if size <= 0 {
		size = 256
	}
	return &Bus{
		ch:     make(chan ports.AuditEvent, size),
		log:    log,
		closed: make(chan struct{}),
	}
}

// Publish enqueues the event without waiting for delivery.
func (b *Bus) Publish(ctx context.Context, event ports.AuditEvent) {
	select {
	case <-b.closed:
		b.log.Warn(ctx, "audit bus closed, dropping event", map[string]interface{}{
			"action":      string(event.Action),
			"resource_id": event.ResourceID,
		})
		return
	default:
	}

	select {
	case b.ch <- event:
	default:
		b.log.Warn(ctx, "audit bus full, dropping event", map[string]interface{}{
			"action":      string(event.Action),
			"resource_id": event.ResourceID,
		})
	}
}

// Events exposes the consumer side of the channel. The channel itself is
// never closed; consumers stop via their own context.
func (b *Bus) Events() <-chan ports.AuditEvent {
	return b.ch
}

// Close stops accepting new events. Already-enqueued events stay in the
// channel for the consumer to drain.
func (b *Bus) Close() {
	b.once.Do(func() {
		close(b.closed)
	})
}
