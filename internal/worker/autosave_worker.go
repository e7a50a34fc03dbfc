package worker

import (
	"context"
	"sync"
	"time"

	"github.com/hollowpine/frontier/internal/logger"
)

// Flusher is the slice of the profession service the autosave worker drives.
type Flusher interface {
	Flush(ctx context.Context) (int, error)
}

// AutosaveWorker periodically flushes dirty profession records so a crash
// loses at most one interval of progress.
type AutosaveWorker struct {
	flusher  Flusher
	interval time.Duration
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewAutosaveWorker creates a new AutosaveWorker
func NewAutosaveWorker(flusher Flusher, interval time.Duration) *AutosaveWorker {
	return &AutosaveWorker{
		flusher:  flusher,
		interval: interval,
		shutdown: make(chan struct{}),
	}
}

// Start launches the autosave loop.
func (w *AutosaveWorker) Start() {
	logger.FromContext(context.Background()).Info(LogMsgAutosaveStarting, "interval", w.interval)

	w.wg.Add(1)
	go w.run()
}

func (w *AutosaveWorker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flushOnce()
		case <-w.shutdown:
			// One last pass so shutdown never races the ticker
			w.flushOnce()
			return
		}
	}
}

func (w *AutosaveWorker) flushOnce() {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	flushed, err := w.flusher.Flush(ctx)
	if err != nil {
		log.Error(LogMsgAutosavePassFailed, "flushed", flushed, "error", err)
		return
	}
	if flushed > 0 {
		log.Info(LogMsgAutosavePassComplete, "players", flushed)
	}
}

// Shutdown stops the loop and waits for any in-flight flush, bounded by ctx.
func (w *AutosaveWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgAutosaveShuttingDown)

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
		log.Info(LogMsgAutosaveShutdownDone)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgAutosaveShutdownSlow)
		return ctx.Err()
	}
}
