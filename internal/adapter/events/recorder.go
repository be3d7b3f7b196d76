package events

import (
	"context"
	"time"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/ports"
	"github.com/taskhive/taskhive/internal/service/logger"
)

// AuditRecorder consumes the audit event channel and appends one immutable
// entry per event. Recording is observational: the guarded operation has
// already returned by the time the append happens, and an append failure
// is logged, retried once, then dropped.
type AuditRecorder struct {
	auditRepo ports.AuditRepository
	log       logger.Logger
	retryWait time.Duration
}

// NewAuditRecorder creates a new audit recorder
func NewAuditRecorder(auditRepo ports.AuditRepository, log logger.Logger) *AuditRecorder {
	return &AuditRecorder{
		auditRepo: auditRepo,
		log:       log,
		retryWait: 100 * time.Millisecond,
	}
}

// Run consumes events until ctx is cancelled, then drains whatever is
// already buffered before returning. Intended to run as a goroutine.
func (r *AuditRecorder) Run(ctx context.Context, events <-chan ports.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			r.drain(events)
			return
		case event := <-events:
			r.record(ctx, event)
		}
	}
}

func (r *AuditRecorder) drain(events <-chan ports.AuditEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case event := <-events:
			r.record(ctx, event)
		default:
			return
		}
	}
}

func (r *AuditRecorder) record(ctx context.Context, event ports.AuditEvent) {
	entry := domain.NewAuditLogEntry(event.UserID, event.Action, event.ResourceType, event.ResourceID, event.Metadata)

	err := r.auditRepo.Create(ctx, entry)
	if err != nil {
		// one retry, then log and drop
		time.Sleep(r.retryWait)
		err = r.auditRepo.Create(ctx, entry)
	}
	if err != nil {
		r.log.Error(ctx, "failed to append audit entry", err, map[string]interface{}{
			"user_id":     event.UserID,
			"action":      string(event.Action),
			"resource_id": event.ResourceID,
		})
		return
	}

	r.log.Debug(ctx, "audit entry recorded", map[string]interface{}{
		"user_id":     event.UserID,
		"action":      string(event.Action),
		"resource_id": event.ResourceID,
	})
}
