package retroachievements

import (
	"context"
	"log/slog"
	"time"

	"ra-challenge-bot/internal/adapters/metrics"
	"ra-challenge-bot/internal/adapters/retroachievements/api"
)

const dispatchBuffer = 50 * time.Millisecond

// RateLimiter serializes outbound API calls and enforces a maximum request
// rate over a sliding window. Calls that fail with HTTP 429 are retried in
// place, which keeps them at the front of the queue, with linear backoff up
// to maxRetries; any other error propagates to the caller immediately.
type RateLimiter struct {
	interval    time.Duration
	perInterval int
	maxRetries  int
	retryDelay  time.Duration

	queue chan *limitedCall
	done  chan struct{}

	// window is owned by the worker goroutine.
	window []time.Time
}

type limitedCall struct {
	fn     func() error
	result chan error
}

func NewRateLimiter(interval time.Duration, perInterval, maxRetries int, retryDelay time.Duration) *RateLimiter {
	if perInterval <= 0 {
		perInterval = 1
	}

	l := &RateLimiter{
		interval:    interval,
		perInterval: perInterval,
		maxRetries:  maxRetries,
		retryDelay:  retryDelay,
		queue:       make(chan *limitedCall, 256),
		done:        make(chan struct{}),
	}

	go l.worker()
	return l
}

// Do enqueues fn and blocks until it has been dispatched and completed, the
// context is cancelled, or the limiter is stopped. Concurrent callers share
// one queue, so no two calls are ever dispatched closer together than
// interval / perInterval.
func (l *RateLimiter) Do(ctx context.Context, fn func() error) error {
	call := &limitedCall{fn: fn, result: make(chan error, 1)}

	select {
	case l.queue <- call:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return context.Canceled
	}

	select {
	case err := <-call.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *RateLimiter) Stop() {
	close(l.done)
}

func (l *RateLimiter) worker() {
	for {
		select {
		case <-l.done:
			return
		case call := <-l.queue:
			call.result <- l.execute(call.fn)
		}
	}
}

// execute waits for a dispatch slot, runs the call, and retries in place on
// rate-limit responses. Retrying here rather than re-enqueueing keeps the
// retried call ahead of everything queued behind it.
func (l *RateLimiter) execute(fn func() error) error {
	for attempt := 0; ; attempt++ {
		l.waitTurn()

		err := fn()
		if err == nil || !api.IsRateLimited(err) {
			return err
		}

		if attempt >= l.maxRetries {
			slog.Warn("Rate limit retries exhausted", "attempts", attempt+1, "error", err)
			return err
		}

		metrics.RARateLimitRetries.Inc()
		delay := l.retryDelay * time.Duration(attempt+1)
		slog.Warn("Rate limited by API, backing off", "attempt", attempt+1, "delay", delay)

		select {
		case <-l.done:
			return err
		case <-time.After(delay):
		}
	}
}

// waitTurn blocks until dispatching another request would not exceed
// perInterval requests within the sliding window.
func (l *RateLimiter) waitTurn() {
	for {
		now := time.Now()
		l.pruneWindow(now)

		if len(l.window) < l.perInterval {
			l.window = append(l.window, now)
			return
		}

		wait := l.window[0].Add(l.interval).Sub(now) + dispatchBuffer
		select {
		case <-l.done:
			return
		case <-time.After(wait):
		}
	}
}

func (l *RateLimiter) pruneWindow(now time.Time) {
	cutoff := now.Add(-l.interval)
	kept := l.window[:0]
	for _, t := range l.window {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.window = kept
}
