package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFlusher struct {
	calls atomic.Int32
}

func (f *countingFlusher) Flush(context.Context) (int, error) {
	f.calls.Add(1)
	return 1, nil
}

func TestAutosaveWorker_FlushesOnInterval(t *testing.T) {
	flusher := &countingFlusher{}
	w := NewAutosaveWorker(flusher, 20*time.Millisecond)
	w.Start()

	assert.Eventually(t, func() bool {
		return flusher.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, w.Shutdown(context.Background()))
}

func TestAutosaveWorker_FinalFlushOnShutdown(t *testing.T) {
	flusher := &countingFlusher{}
	w := NewAutosaveWorker(flusher, time.Hour)
	w.Start()

	require.NoError(t, w.Shutdown(context.Background()))
	assert.Equal(t, int32(1), flusher.calls.Load(), "shutdown must run one last flush")
}

func TestAutosaveWorker_ShutdownIsIdempotent(t *testing.T) {
	w := NewAutosaveWorker(&countingFlusher{}, time.Hour)
	w.Start()

	require.NoError(t, w.Shutdown(context.Background()))
	require.NoError(t, w.Shutdown(context.Background()))
}

type countingTicker struct {
	calls atomic.Int32
}

func (c *countingTicker) Tick(context.Context) {
	c.calls.Add(1)
}

func TestDecayWorker_TicksOnInterval(t *testing.T) {
	ticker := &countingTicker{}
	w := NewDecayWorker(ticker, 20*time.Millisecond)
	w.Start()

	assert.Eventually(t, func() bool {
		return ticker.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, w.Shutdown(context.Background()))
}

func TestDecayWorker_ShutdownStopsTicking(t *testing.T) {
	ticker := &countingTicker{}
	w := NewDecayWorker(ticker, 10*time.Millisecond)
	w.Start()
	require.NoError(t, w.Shutdown(context.Background()))

	settled := ticker.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, ticker.calls.Load())
}
