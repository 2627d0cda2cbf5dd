package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	queueSize     = 100
	notifyTimeout = 10 * time.Second
)

// Dispatcher delivers events on a background worker so a slow mail server or
// broker never delays the request that produced the event. A full queue
// drops the event.
type Dispatcher struct {
	notifier Notifier
	log      *zap.Logger
	queue    chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(n Notifier, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		notifier: n,
		log:      log,
		queue:    make(chan Event, queueSize),
		done:     make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("notifier panicked", zap.String("event", string(ev.Type)), zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := d.notifier.Notify(ctx, ev); err != nil {
		d.log.Error("notification failed",
			zap.String("event", string(ev.Type)),
			zap.String("booking_id", ev.Booking.ID),
			zap.Error(err),
		)
	}
}

// Dispatch is safe on a nil Dispatcher and after Close.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("notification queue full, dropping event",
			zap.String("event", string(ev.Type)),
			zap.String("booking_id", ev.Booking.ID),
		)
	}
}

// Close drains pending events and stops the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
