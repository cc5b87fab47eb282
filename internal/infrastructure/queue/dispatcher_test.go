package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
	"github.com/stefanramac/online-cv-verison2/internal/pkg/metrics"
)

type stubAuditRepo struct {
	mu     sync.Mutex
	events []domain.PostEvent
	err    error
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, e *domain.PostEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *e)
	return nil
}

func (r *stubAuditRepo) snapshot() []domain.PostEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.PostEvent(nil), r.events...)
}

func TestDispatcher_PreservesPerPostOrder(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewDispatcher(3, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	actions := []domain.PostAction{domain.PostCreated, domain.PostUpdated, domain.PostUpdated, domain.PostDeleted}
	for i := 0; i < 5; i++ {
		for _, a := range actions {
			d.Record(domain.PostEvent{PostID: fmt.Sprintf("post-%d", i), Action: a})
		}
	}

	cancel()
	d.Wait()

	got := repo.snapshot()
	if len(got) != 20 {
		t.Fatalf("expected 20 events, got %d", len(got))
	}

	perPost := map[string][]domain.PostAction{}
	for _, e := range got {
		perPost[e.PostID] = append(perPost[e.PostID], e.Action)
	}
	for id, seq := range perPost {
		if fmt.Sprint(seq) != fmt.Sprint(actions) {
			t.Fatalf("post %s out of order: %v", id, seq)
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &stubAuditRepo{}, zerolog.Nop())
	first := d.shardIndex("507f1f77bcf86cd799439011")
	for i := 0; i < 10; i++ {
		if d.shardIndex("507f1f77bcf86cd799439011") != first {
			t.Fatalf("shard index changed between calls")
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_RecordNeverBlocks(t *testing.T) {
	d := NewDispatcher(1, &stubAuditRepo{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Record(domain.PostEvent{PostID: "p"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Record blocked with no workers running")
	}
}

// queueDepth reads the audit_queue_depth gauge for one worker.
func queueDepth(t *testing.T, worker string) float64 {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics.MustRegister(reg)
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "portfolio_audit_queue_depth" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "worker_id" && l.GetValue() == worker {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	return 0
}

func TestDispatcher_QueueDepthIgnoresDroppedEvents(t *testing.T) {
	d := NewDispatcher(1, &stubAuditRepo{}, zerolog.Nop())
	before := queueDepth(t, "0")

	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.PostEvent{PostID: "p"})
	}
	if got := queueDepth(t, "0") - before; got != channelBuffer {
		t.Fatalf("expected depth to grow by %d, got %v", channelBuffer, got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()
	d.Wait()

	if got := queueDepth(t, "0") - before; got != 0 {
		t.Fatalf("expected depth back to baseline after drain, got %v", got)
	}
}

func TestDispatcher_WriteFailureIsNotFatal(t *testing.T) {
	repo := &stubAuditRepo{err: errors.New("mongo down")}
	d := NewDispatcher(1, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Record(domain.PostEvent{PostID: "p", Action: domain.PostCreated})
	cancel()
	d.Wait()

	if len(repo.snapshot()) != 0 {
		t.Fatalf("expected no stored events")
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &stubAuditRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
