// Package poller waits on long-running remote operations using exponential
// backoff bounded by a wall-clock deadline.
package poller

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/netops-tools/dnac-console/internal/logging/events"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTimeout         = 125 * time.Second
	DefaultInitialInterval = 2 * time.Second
	DefaultBackoffFactor   = 1.15
)

// Status is one observation of a remote operation.
type Status struct {
	Completed     bool
	IsError       bool
	FailureReason string
	ErrorCode     string
	Progress      string
	Payload       string
}

// StatusFetcher queries the current state of an operation. Errors are treated
// as transient.
type StatusFetcher interface {
	FetchOperationStatus(ctx context.Context, operationID string) (Status, error)
}

// FetcherFunc adapts a function to StatusFetcher.
type FetcherFunc func(ctx context.Context, operationID string) (Status, error)

func (f FetcherFunc) FetchOperationStatus(ctx context.Context, operationID string) (Status, error) {
	return f(ctx, operationID)
}

// Options tunes a single poll. Zero values fall back to the defaults.
type Options struct {
	Timeout         time.Duration
	InitialInterval time.Duration
	BackoffFactor   float64
}

// DefaultOptions returns the standard 125s / 2s / x1.15 schedule.
func DefaultOptions() Options {
	return Options{
		Timeout:         DefaultTimeout,
		InitialInterval: DefaultInitialInterval,
		BackoffFactor:   DefaultBackoffFactor,
	}
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.InitialInterval <= 0 {
		o.InitialInterval = DefaultInitialInterval
	}
	if o.BackoffFactor < 1 {
		o.BackoffFactor = DefaultBackoffFactor
	}
	return o
}

// Kind tags how a poll ended.
type Kind int

const (
	Succeeded Kind = iota
	Failed
	TimedOut
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case TimedOut:
		return "timed out"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of a poll.
type Outcome struct {
	OperationID string
	Kind        Kind
	// Status is the last status observed, if any.
	Status Status
	// Reason explains a failure; empty for other kinds.
	Reason   string
	Attempts int
	// LastErr is the most recent transient fetch error.
	LastErr error
	Elapsed time.Duration
}

// State is a read-only snapshot of a running poll, handed to attempt hooks.
type State struct {
	OperationID   string
	Deadline      time.Time
	Interval      time.Duration
	BackoffFactor float64
	Attempt       int
}

// Clock abstracts wall time so tests can run the loop deterministically.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Poller runs poll loops against a StatusFetcher.
type Poller struct {
	fetcher   StatusFetcher
	clock     Clock
	onAttempt func(State)
	inflight  singleflight.Group
}

// Option customises a Poller.
type Option func(*Poller)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(p *Poller) {
		if c != nil {
			p.clock = c
		}
	}
}

// WithAttemptHook registers fn to observe every attempt before its fetch.
func WithAttemptHook(fn func(State)) Option {
	return func(p *Poller) {
		p.onAttempt = fn
	}
}

// New returns a Poller bound to fetcher.
func New(fetcher StatusFetcher, opts ...Option) *Poller {
	p := &Poller{fetcher: fetcher, clock: realClock{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll waits for operationID to complete. Only one loop runs per operation
// id and concurrent callers for the same id share its outcome. The loop runs
// under the ctx of the caller that started it, so cancelling that caller ends
// the loop for everyone. A joining caller whose own ctx ends first gets a
// Cancelled outcome while the loop carries on.
func (p *Poller) Poll(ctx context.Context, operationID string, opts Options) Outcome {
	start := p.clock.Now()
	var owner atomic.Bool
	ch := p.inflight.DoChan(operationID, func() (interface{}, error) {
		owner.Store(true)
		return p.run(ctx, operationID, opts.withDefaults()), nil
	})
	select {
	case res := <-ch:
		return res.Val.(Outcome)
	case <-ctx.Done():
		if owner.Load() {
			// The loop sees the same ctx and winds down on its own.
			return (<-ch).Val.(Outcome)
		}
		return Outcome{OperationID: operationID, Kind: Cancelled, Elapsed: p.clock.Now().Sub(start)}
	}
}

func (p *Poller) run(ctx context.Context, id string, opts Options) Outcome {
	start := p.clock.Now()
	deadline := start.Add(opts.Timeout)
	interval := opts.InitialInterval
	events.Poll.Start(id, opts.Timeout, opts.InitialInterval, opts.BackoffFactor)

	out := Outcome{OperationID: id}
	finish := func(kind Kind) Outcome {
		out.Kind = kind
		out.Elapsed = p.clock.Now().Sub(start)
		events.Poll.Outcome(id, kind.String(), out.Attempts, out.Elapsed)
		return out
	}

	for {
		if ctx.Err() != nil {
			return finish(Cancelled)
		}
		out.Attempts++
		if p.onAttempt != nil {
			p.onAttempt(State{
				OperationID:   id,
				Deadline:      deadline,
				Interval:      interval,
				BackoffFactor: opts.BackoffFactor,
				Attempt:       out.Attempts,
			})
		}

		status, err := p.fetcher.FetchOperationStatus(ctx, id)
		events.Poll.Attempt(id, out.Attempts, err)
		if err != nil {
			if ctx.Err() != nil {
				return finish(Cancelled)
			}
			out.LastErr = err
		} else {
			out.Status = status
			if status.Completed {
				if status.IsError {
					out.Reason = FailureReason(status)
					return finish(Failed)
				}
				return finish(Succeeded)
			}
		}

		now := p.clock.Now()
		if !now.Before(deadline) {
			return finish(TimedOut)
		}
		sleep := floorInterval(interval)
		if remaining := deadline.Sub(now); sleep > remaining {
			sleep = remaining
		}
		events.Poll.Sleep(id, sleep)
		if err := p.clock.Sleep(ctx, sleep); err != nil {
			return finish(Cancelled)
		}
		interval = time.Duration(float64(interval) * opts.BackoffFactor)
	}
}

// floorInterval drops the fractional second of d. Intervals under a second
// keep millisecond precision so they never collapse to a busy loop.
func floorInterval(d time.Duration) time.Duration {
	if floored := d.Truncate(time.Second); floored > 0 {
		return floored
	}
	if floored := d.Truncate(time.Millisecond); floored > 0 {
		return floored
	}
	return time.Millisecond
}

// FailureReason joins the error details reported on a failed status.
func FailureReason(s Status) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{s.ErrorCode, s.FailureReason, s.Progress} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "operation reported an error"
	}
	return strings.Join(parts, ": ")
}
