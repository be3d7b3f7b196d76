package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/ports"
	"github.com/taskhive/taskhive/internal/service/logger"
)

// recordingAuditRepo is a thread-safe in-memory AuditRepository that can be
// told to fail the first N Create calls.
type recordingAuditRepo struct {
	mu       sync.Mutex
	entries  []*domain.AuditLogEntry
	failures int
}

func (r *recordingAuditRepo) Create(ctx context.Context, entry *domain.AuditLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return errors.New("audit store unavailable")
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recordingAuditRepo) FindByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLogEntry, error) {
	return nil, nil
}

func (r *recordingAuditRepo) FindAll(ctx context.Context, limit int) ([]*domain.AuditLogEntry, error) {
	return nil, nil
}

func (r *recordingAuditRepo) snapshot() []*domain.AuditLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.AuditLogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func testEvent(resourceID string) ports.AuditEvent {
	return ports.AuditEvent{
		UserID:       "user-1",
		Action:       domain.ActionCreate,
		ResourceType: domain.ResourceTypeTask,
		ResourceID:   resourceID,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestBusDeliversToRecorderExactlyOnce(t *testing.T) {
	repo := &recordingAuditRepo{}
	bus := NewBus(8, logger.NewNop())
	recorder := NewAuditRecorder(repo, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		recorder.Run(ctx, bus.Events())
		close(done)
	}()

	bus.Publish(context.Background(), testEvent("t1"))

	waitFor(t, func() bool { return len(repo.snapshot()) == 1 })

	cancel()
	<-done

	entries := repo.snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, "t1", entries[0].ResourceID)
	assert.Equal(t, domain.ActionCreate, entries[0].Action)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestBusDropsWhenFull(t *testing.T) {
	bus := NewBus(2, logger.NewNop())

	// No consumer: the third publish must drop rather than block.
	bus.Publish(context.Background(), testEvent("t1"))
	bus.Publish(context.Background(), testEvent("t2"))

	published := make(chan struct{})
	go func() {
		bus.Publish(context.Background(), testEvent("t3"))
		close(published)
	}()

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full bus")
	}

	assert.Len(t, bus.Events(), 2)
}

func TestBusRejectsAfterClose(t *testing.T) {
	bus := NewBus(8, logger.NewNop())
	bus.Close()
	bus.Close() // idempotent

	bus.Publish(context.Background(), testEvent("t1"))

	assert.Len(t, bus.Events(), 0)
}

func TestRecorderDrainsBufferOnShutdown(t *testing.T) {
	repo := &recordingAuditRepo{}
	bus := NewBus(8, logger.NewNop())
	recorder := NewAuditRecorder(repo, logger.NewNop())

	for _, id := range []string{"t1", "t2", "t3"} {
		bus.Publish(context.Background(), testEvent(id))
	}
	bus.Close()

	// Start with an already-cancelled context: Run must still drain the
	// buffered events before returning.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recorder.Run(ctx, bus.Events())

	entries := repo.snapshot()
	require.Len(t, entries, 3)
}

func TestRecorderRetriesOnceThenDrops(t *testing.T) {
	repo := &recordingAuditRepo{failures: 1}
	recorder := NewAuditRecorder(repo, logger.NewNop())
	recorder.retryWait = time.Millisecond

	recorder.record(context.Background(), testEvent("t1"))
	require.Len(t, repo.snapshot(), 1, "single failure should be absorbed by the retry")

	repo2 := &recordingAuditRepo{failures: 2}
	recorder2 := NewAuditRecorder(repo2, logger.NewNop())
	recorder2.retryWait = time.Millisecond

	recorder2.record(context.Background(), testEvent("t2"))
	assert.Empty(t, repo2.snapshot(), "two failures exhaust the retry and the event is dropped")
}
