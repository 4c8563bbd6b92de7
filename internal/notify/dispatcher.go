// Package notify fans schedule conflicts out to sinks on background workers.
//
// A Dispatcher is registered on the store as a conflict observer. Notify never
// blocks the store: events go into a bounded queue and are dropped, with a log
// line, when the queue is full or the dispatcher has shut down.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"astronaut-schedule/internal/domain"
	"astronaut-schedule/internal/logx"

	"github.com/google/uuid"
)

var (
	ErrQueueFull        = errors.New("notify queue is full")
	ErrDispatcherClosed = errors.New("notify dispatcher is closed")
)

type Event struct {
	ID        string
	Attempted domain.Task
	Existing  domain.Task
	At        time.Time
}

type Sink interface {
	Name() string
	Deliver(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	queue chan Event
	sinks []Sink
	log   logx.Logger

	mu     sync.RWMutex
	closed bool

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	now func() time.Time
}

func New(queueSize int, log logx.Logger, sinks ...Sink) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		queue:  make(chan Event, queueSize),
		sinks:  sinks,
		log:    log.With(logx.String("component", "notify")),
		ctx:    ctx,
		cancel: cancel,
		now:    time.Now,
	}
}

// Start launches workers. With zero workers events stay queued until Shutdown discards them.
func (d *Dispatcher) Start(workers int) {
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Notify implements store.ConflictObserver.
func (d *Dispatcher) Notify(attempted, existing domain.Task) {
	ev := Event{
		ID:        uuid.NewString(),
		Attempted: attempted,
		Existing:  existing,
		At:        d.now(),
	}
	if err := d.Enqueue(ev); err != nil {
		d.log.Warn("conflict event dropped",
			logx.String("event_id", ev.ID),
			logx.String("attempted", attempted.Description()),
			logx.Err(err),
		)
	}
}

func (d *Dispatcher) Enqueue(ev Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops intake and waits for workers to drain the queue.
// If ctx ends first, in-flight deliveries are cancelled and ctx.Err() is returned.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev Event) {
	for _, s := range d.sinks {
		if err := s.Deliver(d.ctx, ev); err != nil {
			d.log.Warn("conflict delivery failed",
				logx.String("sink", s.Name()),
				logx.String("event_id", ev.ID),
				logx.Err(err),
			)
		}
	}
}
