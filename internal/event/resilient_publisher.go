package event

import (
	"context"
	"sync"
	"time"

	"github.com/hollowpine/frontier/internal/logger"
	"github.com/hollowpine/frontier/internal/metrics"
)

// retryItem is an event waiting in the retry queue with its attempt count.
type retryItem struct {
	event    Event
	attempts int
	lastErr  error
}

// ResilientPublisher wraps a Bus with a bounded retry queue and a dead-letter
// file. PublishWithRetry never blocks the caller: a failed publish is handed to
// a background worker, and events that exhaust their retries are persisted to
// the dead-letter file for manual replay.
type ResilientPublisher struct {
	inner      Bus
	deadLetter *DeadLetterWriter
	maxRetries int
	baseDelay  time.Duration

	queue    chan retryItem
	shutdown chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// NewResilientPublisher creates a ResilientPublisher and starts its retry worker.
func NewResilientPublisher(inner Bus, deadLetter *DeadLetterWriter) *ResilientPublisher {
	p := &ResilientPublisher{
		inner:      inner,
		deadLetter: deadLetter,
		maxRetries: RetryMaxAttempts,
		baseDelay:  RetryInitialDelay,
		queue:      make(chan retryItem, RetryQueueBufferSize),
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()

	return p
}

// PublishWithRetry attempts to publish an event. On failure the event is queued
// for background retry and the caller is not blocked.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return
	}

	log := logger.FromContext(ctx)
	log.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)

	p.enqueue(retryItem{event: event, attempts: 1, lastErr: err})
}

func (p *ResilientPublisher) enqueue(item retryItem) {
	select {
	case p.queue <- item:
	default:
		// Queue full: skip straight to the dead-letter file so the event is
		// not lost silently.
		logger.FromContext(context.Background()).Warn(LogMsgRetryQueueFull,
			"event_type", item.event.Type)
		p.writeDeadLetter(item)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case item := <-p.queue:
			p.retry(item)
		case <-p.shutdown:
			p.drain()
			return
		}
	}
}

// retry sleeps out the backoff for the item's attempt, then republishes.
func (p *ResilientPublisher) retry(item retryItem) {
	delay := CalculateRetryDelay(p.baseDelay, item.attempts)
	select {
	case <-time.After(delay):
	case <-p.shutdown:
		// Shutting down; don't wait out the backoff, dead-letter immediately.
		p.writeDeadLetter(item)
		return
	}

	ctx := context.Background()
	err := p.inner.Publish(ctx, item.event)
	if err == nil {
		logger.FromContext(ctx).Info(LogMsgEventRetrySucceeded,
			"event_type", item.event.Type,
			"attempt", item.attempts)
		return
	}

	item.attempts++
	item.lastErr = err
	if item.attempts > p.maxRetries {
		logger.FromContext(ctx).Warn(LogMsgEventRetryExhausted,
			"event_type", item.event.Type,
			"attempts", item.attempts-1)
		p.writeDeadLetter(item)
		return
	}
	p.enqueue(item)
}

// drain empties the retry queue into the dead-letter file.
func (p *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case item := <-p.queue:
			p.writeDeadLetter(item)
			drained++
		default:
			if drained > 0 {
				logger.FromContext(context.Background()).Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(item retryItem) {
	if p.deadLetter == nil {
		return
	}
	metrics.EventsDeadLettered.WithLabelValues(string(item.event.Type)).Inc()
	if err := p.deadLetter.Write(item.event, item.attempts, item.lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops the retry worker, waiting up to the context deadline for
// pending items to be drained to the dead-letter file.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}
