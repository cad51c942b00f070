package events

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	DefaultWorkers   = 4
	DefaultQueueSize = 256
	deliveryTimeout  = 10 * time.Second
)

type job struct {
	ctx   context.Context
	event Event

	// name and task are set for background work instead of an event.
	name string
	task func(ctx context.Context) error
}

// Dispatcher is an Emitter backed by a fixed pool of workers delivering to one Sink.
type Dispatcher struct {
	sink   Sink
	logger *zap.Logger

	queue chan job
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

var (
	_ Emitter = (*Dispatcher)(nil)
	_ Runner  = (*Dispatcher)(nil)
)

func NewDispatcher(sink Sink, logger *zap.Logger, workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan job, queueSize),
	}

	d.wg.Add(workers)
	for range workers {
		go d.work()
	}

	return d
}

func (d *Dispatcher) Audit(ctx context.Context, record AuditRecord) {
	if record.At.IsZero() {
		record.At = time.Now().UTC()
	}

	d.Submit(ctx, Event{Kind: KindAudit, Key: record.EntityID.String(), Body: record})
}

func (d *Dispatcher) Notify(ctx context.Context, n Notification) {
	if n.At.IsZero() {
		n.At = time.Now().UTC()
	}

	d.Submit(ctx, Event{Kind: KindNotification, Key: n.EntityID.String(), Body: n})
}

// Submit queues e without blocking. The caller's span context travels with the event,
// its cancellation does not: delivery outlives the request.
func (d *Dispatcher) Submit(ctx context.Context, e Event) bool {
	return d.enqueue(ctx, job{event: e}, zap.String("kind", string(e.Kind)), zap.String("key", e.Key))
}

// Go runs task on a worker under the same rules as Submit. A task error is logged.
func (d *Dispatcher) Go(ctx context.Context, name string, task func(ctx context.Context) error) bool {
	return d.enqueue(ctx, job{name: name, task: task}, zap.String("task", name))
}

func (d *Dispatcher) enqueue(ctx context.Context, j job, fields ...zap.Field) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("dispatcher closed, dropped", fields...)
		return false
	}

	j.ctx = trace.ContextWithSpanContext(context.Background(), trace.SpanContextFromContext(ctx))

	select {
	case d.queue <- j:
		return true
	default:
		d.logger.Warn("dispatcher queue full, dropped", fields...)
		return false
	}
}

// Close stops accepting events, drains the queue and closes the sink.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()

	return d.sink.Close()
}

func (d *Dispatcher) work() {
	defer d.wg.Done()

	for j := range d.queue {
		ctx, cancel := context.WithTimeout(j.ctx, deliveryTimeout)

		if j.task != nil {
			if err := j.task(ctx); err != nil {
				d.logger.Error("background task failed", zap.String("task", j.name), zap.Error(err))
			}
			cancel()
			continue
		}

		if err := d.sink.Deliver(ctx, j.event); err != nil {
			d.logger.Error("failed to deliver event",
				zap.String("kind", string(j.event.Kind)),
				zap.String("key", j.event.Key),
				zap.Error(err),
			)
		}
		cancel()
	}
}
