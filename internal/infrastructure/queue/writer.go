// Package queue implements the write-behind channel between tracking reads
// and the record store. Reads enqueue reconciled state and return
// immediately; a fixed set of workers flushes entries in the background.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/hiptrack/shipment-tracker/internal/api/metrics"
	"github.com/hiptrack/shipment-tracker/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Writer shards progress updates over a fixed set of workers using
// consistent hashing on the shipment code, so updates for one shipment are
// applied in order. Store failures are logged and counted, never returned:
// by the time a worker runs, the read that produced the entry has already
// responded.
type Writer struct {
	workers []chan ports.ProgressUpdate
	repo    ports.ShipmentRepository
	log     zerolog.Logger
}

// NewWriter creates a Writer with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewWriter(numWorkers int, repo ports.ShipmentRepository, log zerolog.Logger) *Writer {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	w := &Writer{
		workers: make([]chan ports.ProgressUpdate, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range w.workers {
		w.workers[i] = make(chan ports.ProgressUpdate, channelBuffer)
	}
	return w
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (w *Writer) Start(ctx context.Context) {
	for i, ch := range w.workers {
		go w.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an update to the worker responsible for its shipment.
// When the worker's buffer is full the update is dropped rather than
// blocking the read path; the next read will recompute and re-enqueue.
func (w *Writer) Enqueue(update ports.ProgressUpdate) {
	idx := w.shardIndex(update.Code)
	select {
	case w.workers[idx] <- update:
		metrics.WriteQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(w.workers[idx])))
	default:
		w.log.Warn().Str("code", update.Code).Int("worker_id", idx).Msg("write-behind buffer full, update dropped")
	}
}

// shardIndex maps a shipment code deterministically to a worker index.
func (w *Writer) shardIndex(code string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(code))
	return int(h.Sum32()) % len(w.workers)
}

func (w *Writer) runWorker(ctx context.Context, id int, ch <-chan ports.ProgressUpdate) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-ch:
			if !ok {
				return
			}
			metrics.WriteQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			w.apply(ctx, id, update)
		}
	}
}

func (w *Writer) apply(ctx context.Context, id int, update ports.ProgressUpdate) {
	patch := ports.ShipmentPatch{
		Status:    &update.Status,
		Progress:  &update.Progress,
		Current:   update.Position,
		UpdatedAt: update.At,
	}
	if _, err := w.repo.UpdateByID(ctx, update.ID, patch); err != nil {
		metrics.PersistErrorsTotal.Inc()
		w.log.Error().Err(err).
			Str("code", update.Code).
			Int("worker_id", id).
			Msg("background progress write failed")
		return
	}
	metrics.ReconcilePersistsTotal.Inc()
}
