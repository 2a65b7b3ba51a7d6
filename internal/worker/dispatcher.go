package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/notification-service/internal/model"
)

var (
	// ErrDispatcherStopped is returned by TrySubmit once the dispatcher has shut down.
	ErrDispatcherStopped = errors.New("dispatcher stopped")
	// ErrQueueFull is returned by TrySubmit when every queue slot is taken.
	ErrQueueFull = errors.New("dispatch queue full")
)

type processor interface {
	Process(ctx context.Context, n model.Notification) bool
}

// Dispatcher runs notification processing on a fixed pool of workers fed by a
// bounded queue, so admission volume never spawns unbounded work.
type Dispatcher struct {
	workers int
	queue   chan model.Notification

	mu      sync.RWMutex
	stopped bool
}

// NewDispatcher creates a dispatcher with the given number of workers. A
// queueSize below one defaults to workers*10.
func NewDispatcher(workers, queueSize int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}

	if queueSize < 1 {
		queueSize = workers * 10
	}

	return &Dispatcher{
		workers: workers,
		queue:   make(chan model.Notification, queueSize),
	}
}

// TrySubmit queues n for processing without blocking. It returns ErrQueueFull
// when the queue has no free slot and ErrDispatcherStopped after shutdown; a
// nil error means a worker will pick n up.
func (d *Dispatcher) TrySubmit(n model.Notification) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrDispatcherStopped
	}

	select {
	case d.queue <- n:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run starts the workers and blocks until ctx is cancelled and every worker
// has returned. Attempts already running when ctx is cancelled are allowed to
// finish, and notifications accepted before the stop are drained by the
// workers before Run returns.
func (d *Dispatcher) Run(ctx context.Context, p processor) {
	var wg sync.WaitGroup

	// in-flight attempts outlive the shutdown signal so their outcome is recorded
	workCtx := context.WithoutCancel(ctx)
	stop := make(chan struct{})

	wg.Add(d.workers)
	for i := 0; i < d.workers; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Debug().Int("worker", id).Msg("worker started")

			for {
				select {
				case <-stop:
					d.drain(workCtx, p)
					zlog.Logger.Debug().Int("worker", id).Msg("worker shutting down")
					return
				case n := <-d.queue:
					p.Process(workCtx, n)
				}
			}
		}(i)
	}

	<-ctx.Done()

	// no submission can succeed once stopped is set
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	close(stop)

	wg.Wait()

	zlog.Logger.Info().Msg("dispatcher stopped")
}

func (d *Dispatcher) drain(ctx context.Context, p processor) {
	for {
		select {
		case n := <-d.queue:
			p.Process(ctx, n)
		default:
			return
		}
	}
}
