// Package queue moves audit entries off the request path. Entries are
// sharded by user ID onto a fixed set of workers so one user's account
// events land in the trail in the order they happened.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/identik/identity-service/internal/api/metrics"
	"github.com/identik/identity-service/internal/core/domain"
	"github.com/identik/identity-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit entries to a fixed set of workers using consistent
// hashing on the user ID, guaranteeing per-user ordering.
type Dispatcher struct {
	workers  []chan domain.AuditEntry
	recorder ports.AuditRecorder
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder ports.AuditRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.AuditEntry, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an entry to the worker responsible for its user. A full
// worker channel drops the entry rather than stalling the request.
func (d *Dispatcher) Enqueue(entry domain.AuditEntry) {
	idx := d.shardIndex(entry.UserID)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("user_id", entry.UserID).
			Str("action", string(entry.Action)).
			Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.recorder.Record(ctx, entry); err != nil {
				d.log.Error().Err(err).
					Str("user_id", entry.UserID).
					Int("worker_id", id).
					Msg("audit entry write failed")
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

var _ ports.AuditSink = (*Dispatcher)(nil)
