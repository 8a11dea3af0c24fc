package events

import (
	"sync"

	"go.uber.org/zap"
)

// Booking-change notifications for in-process collaborators (cache
// invalidation today). Replaces the snapshot-listener push model: consumers
// re-query after an event instead of receiving data on it.

type Kind string

const (
	BookingCreated   Kind = "booking_created"
	BookingApproved  Kind = "booking_approved"
	BookingRejected  Kind = "booking_rejected"
	BookingCancelled Kind = "booking_cancelled"
	BookingCompleted Kind = "booking_completed"
)

type Event struct {
	Kind      Kind
	BookingID uint
	TeacherID uint
	Date      string
}

type Dispatcher struct {
	logger *zap.Logger
	queue  chan Event

	mu   sync.RWMutex
	subs []func(Event)
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

// Subscribe registers a callback invoked from the dispatcher's worker
// goroutine. Callbacks must not block for long; they share one worker.
func (d *Dispatcher) Subscribe(fn func(Event)) {
	d.mu.Lock()
	d.subs = append(d.subs, fn)
	d.mu.Unlock()
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		d.mu.RLock()
		subs := d.subs
		d.mu.RUnlock()

		for _, fn := range subs {
			fn(ev)
		}
	}
}

func (d *Dispatcher) Publish(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// queue full: drop rather than stall a request
		d.logger.Warn("event queue full, dropping event",
			zap.String("kind", string(ev.Kind)),
			zap.Uint("booking_id", ev.BookingID),
		)
	}
}
