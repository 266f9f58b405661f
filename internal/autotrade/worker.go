package autotrade

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/quantara-lab/papertrade/internal/logger"
)

// DefaultPollInterval is how often the worker republishes engine status when
// no interval is configured.
const DefaultPollInterval = 60 * time.Second

// StatusCallback receives each polled status snapshot.
type StatusCallback func(StatusSnapshot)

// Worker polls the auto-trading engine's status on a fixed interval from a
// dedicated goroutine and republishes it. It generates no signals itself.
// Cancellation goes through the context, so Stop wakes the loop immediately
// instead of waiting out the interval.
type Worker struct {
	engine   *AutoTradingEngine
	interval time.Duration
	logger   *logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewWorker creates a status worker for the engine. A non-positive interval
// falls back to DefaultPollInterval.
func NewWorker(engine *AutoTradingEngine, interval time.Duration, log *logger.Logger) *Worker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Worker{
		engine:   engine,
		interval: interval,
		logger:   log,
		mu:       sync.Mutex{},
		cancel:   nil,
		done:     nil,
		running:  false,
	}
}

// Start launches the polling goroutine. Starting a running worker is a no-op.
func (w *Worker) Start(ctx context.Context, callback StatusCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.running = true

	go w.run(ctx, callback)

	w.logger.Info("Auto trading worker started", zap.Duration("interval", w.interval))
}

func (w *Worker) run(ctx context.Context, callback StatusCallback) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Auto trading worker stopped")

			return
		case <-ticker.C:
			snapshot := w.engine.StatusSnapshot()
			if callback != nil {
				callback(snapshot)
			}
		}
	}
}

// Stop cancels the loop and waits for the goroutine to exit. Stopping a
// stopped worker is a no-op.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	w.cancel()
	<-w.done

	w.running = false
	w.cancel = nil
	w.done = nil
}
