package game

import (
	"context"
	"errors"
	"time"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/room"
)

var ErrLoopStopped = errors.New("game loop stopped")

// UnknownEvent labels events whose name is not in the protocol.
const UnknownEvent = "unknown"

// EventObserver is notified after each event has been applied.
type EventObserver interface {
	IncEventsReceived(event string)
	ObserveEventLatency(duration time.Duration)
}

// Loop is the single mutation authority for all rooms. Every event and
// query runs on its goroutine, one at a time, to completion.
type Loop struct {
	handler  *Handler
	inbox    chan func()
	done     chan struct{}
	observer EventObserver
}

func NewLoop(handler *Handler, queueSize int, observer EventObserver) *Loop {
	if queueSize <= 0 {
		queueSize = 1024
	}
	return &Loop{
		handler:  handler,
		inbox:    make(chan func(), queueSize),
		done:     make(chan struct{}),
		observer: observer,
	}
}

// Run processes queued work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	logger.Log.Info("Game loop started")
	for {
		select {
		case fn := <-l.inbox:
			fn()
		case <-ctx.Done():
			logger.Log.Info("Game loop stopped")
			return
		}
	}
}

func (l *Loop) enqueue(ctx context.Context, fn func()) error {
	select {
	case l.inbox <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit queues a client event.
func (l *Loop) Submit(ctx context.Context, ev Event) error {
	queued := time.Now()
	return l.enqueue(ctx, func() {
		name := ev.Name
		if !l.handler.Dispatch(ev) {
			name = UnknownEvent
		}
		if l.observer != nil {
			l.observer.IncEventsReceived(name)
			l.observer.ObserveEventLatency(time.Since(queued))
		}
	})
}

// Disconnect queues the cleanup for a closed connection.
func (l *Loop) Disconnect(ctx context.Context, connID string) error {
	return l.enqueue(ctx, func() {
		l.handler.Disconnect(connID)
	})
}

// Query runs fn on the loop goroutine and waits for it to return. fn must
// not retain the registry or any room after returning.
func (l *Loop) Query(ctx context.Context, fn func(*room.Registry)) error {
	finished := make(chan struct{})
	if err := l.enqueue(ctx, func() {
		defer close(finished)
		fn(l.handler.Registry())
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
