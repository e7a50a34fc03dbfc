package worker

import (
	"context"
	"sync"
	"time"

	"github.com/hollowpine/frontier/internal/logger"
)

// Ticker is the slice of the death penalty engine the decay worker drives.
type Ticker interface {
	Tick(ctx context.Context)
}

// DecayWorker advances death-weight decay on a fixed interval.
type DecayWorker struct {
	penalty  Ticker
	interval time.Duration
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewDecayWorker creates a new DecayWorker
func NewDecayWorker(penalty Ticker, interval time.Duration) *DecayWorker {
	return &DecayWorker{
		penalty:  penalty,
		interval: interval,
		shutdown: make(chan struct{}),
	}
}

// Start launches the decay loop.
func (w *DecayWorker) Start() {
	logger.FromContext(context.Background()).Info(LogMsgDecayStarting, "interval", w.interval)

	w.wg.Add(1)
	go w.run()
}

func (w *DecayWorker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.penalty.Tick(context.Background())
		case <-w.shutdown:
			return
		}
	}
}

// Shutdown stops the loop, bounded by ctx.
func (w *DecayWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDecayShuttingDown)

	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgDecayShutdownDone)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgDecayShutdownSlow)
		return ctx.Err()
	}
}
