package queue

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Skryensya/Finances-API/internal/api/metrics"
	"github.com/Skryensya/Finances-API/internal/core/domain"
	"github.com/Skryensya/Finances-API/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher persists audit entries asynchronously through a fixed set of
// workers. Entries are sharded by user id, guaranteeing per-user ordering
// of the audit trail. Stop closes the intake and blocks until every
// buffered entry has been written.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. ctx scopes the inserts while the
// server runs; once it is cancelled the remaining inserts fall back to a
// background context so a shutdown never abandons buffered entries.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop closes the intake and blocks until the workers have drained their
// buffers. Safe to call once; entries recorded after Stop are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Record enqueues an entry for the worker owning its user id. The call is
// non-blocking up to channelBuffer capacity; when the buffer is full, or
// the dispatcher has been stopped, the entry is dropped rather than
// stalling the request path.
func (d *Dispatcher) Record(entry domain.AuditEntry) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().Int64("user_id", entry.UserID).Str("action", entry.Action).Msg("audit dispatcher stopped, entry dropped")
		return
	}

	idx := d.shardIndex(entry.UserID)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().Int64("user_id", entry.UserID).Str("action", entry.Action).Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	if userID < 0 {
		userID = -userID
	}
	return int(userID % int64(len(d.workers)))
}

// runWorker drains its channel until Stop closes it. The range keeps going
// after ctx is cancelled so entries buffered during the HTTP drain window
// still reach the store.
func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	worker := strconv.Itoa(id)
	for entry := range ch {
		metrics.AuditQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))

		insertCtx := ctx
		if insertCtx.Err() != nil {
			insertCtx = context.Background()
		}
		if err := d.repo.Insert(insertCtx, &entry); err != nil {
			d.log.Error().Err(err).
				Int64("user_id", entry.UserID).
				Str("action", entry.Action).
				Int("worker_id", id).
				Msg("audit insert failed")
		}
	}
}

var _ ports.AuditRecorder = (*Dispatcher)(nil)
