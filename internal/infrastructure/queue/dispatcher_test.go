package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Skryensya/Finances-API/internal/core/domain"
)

type recordingAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *recordingAuditRepo) Insert(_ context.Context, entry *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *recordingAuditRepo) snapshot() []domain.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEntry, len(r.entries))
	copy(out, r.entries)
	return out
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
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_PersistsEntries(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())

	d.Start(context.Background())

	d.Record(domain.AuditEntry{UserID: 1, Action: domain.AuditSignup, Timestamp: time.Now()})
	d.Record(domain.AuditEntry{UserID: 2, Action: domain.AuditAccountCreate, Subject: "7", Timestamp: time.Now()})

	waitFor(t, func() bool { return len(repo.snapshot()) == 2 })

	d.Stop()
}

// Entries for one user land on one worker, so their relative order survives.
func TestDispatcher_PerUserOrdering(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())

	d.Start(context.Background())

	actions := []string{domain.AuditSignup, domain.AuditSignin, domain.AuditAccountCreate, domain.AuditAccountEdit, domain.AuditAccountDelete}
	for _, a := range actions {
		d.Record(domain.AuditEntry{UserID: 7, Action: a, Timestamp: time.Now()})
	}

	waitFor(t, func() bool { return len(repo.snapshot()) == len(actions) })

	got := repo.snapshot()
	for i, a := range actions {
		if got[i].Action != a {
			t.Fatalf("order violated at %d: want %s, got %s", i, a, got[i].Action)
		}
	}

	d.Stop()
}

// slowAuditRepo behaves like a real driver: it takes a while per insert
// and refuses a cancelled context.
type slowAuditRepo struct {
	recordingAuditRepo
	delay time.Duration
}

func (r *slowAuditRepo) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	time.Sleep(r.delay)
	return r.recordingAuditRepo.Insert(ctx, entry)
}

// Stop must flush entries still sitting in the worker buffers after the
// server context is gone, the way main's shutdown path runs. The repo
// rejects cancelled contexts, so the drain has to hand workers a live one.
func TestDispatcher_StopDrainsBufferedEntries(t *testing.T) {
	repo := &slowAuditRepo{delay: 10 * time.Millisecond}
	d := NewDispatcher(1, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	const n = 10
	for i := 0; i < n; i++ {
		d.Record(domain.AuditEntry{UserID: 1, Action: domain.AuditSignin, Timestamp: time.Now()})
	}
	d.Stop()

	if got := len(repo.snapshot()); got != n {
		t.Fatalf("entries lost at shutdown: want %d, got %d", n, got)
	}
}

func TestDispatcher_RecordAfterStopDrops(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())
	d.Stop()

	// Must not panic on the closed channel, and must not persist.
	d.Record(domain.AuditEntry{UserID: 3, Action: domain.AuditSignup, Timestamp: time.Now()})
	if got := len(repo.snapshot()); got != 0 {
		t.Fatalf("entry persisted after stop: %d", got)
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingAuditRepo{}, zerolog.Nop())
	for _, id := range []int64{0, 1, 7, 8, 1 << 40} {
		a, b := d.shardIndex(id), d.shardIndex(id)
		if a != b {
			t.Fatalf("shard not deterministic for %d: %d vs %d", id, a, b)
		}
		if a < 0 || a >= 8 {
			t.Fatalf("shard out of range for %d: %d", id, a)
		}
	}
}
