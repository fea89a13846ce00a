package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/restohub/staff-service/internal/api/metrics"
	"github.com/restohub/staff-service/internal/core/domain"
	"github.com/restohub/staff-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher fans staff lifecycle events out to a fixed set of workers,
// sharded by staff ID so events for the same record are recorded in order.
// It implements ports.AuditPublisher.
type Dispatcher struct {
	workers  []chan domain.StaffEvent
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
		workers:  make([]chan domain.StaffEvent, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.StaffEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish sends an event to the worker responsible for its staff ID.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Publish(event domain.StaffEvent) {
	d.workers[d.shardIndex(event.StaffID)] <- event
}

func (d *Dispatcher) shardIndex(staffID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(staffID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.StaffEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.recorder.Record(ctx, &event); err != nil {
				d.log.Error().Err(err).
					Str("staff_id", event.StaffID).
					Str("action", string(event.Action)).
					Int("worker_id", id).
					Msg("audit event not recorded")
				continue
			}
			metrics.AuditEventsTotal.WithLabelValues(string(event.Action)).Inc()
		}
	}
}
