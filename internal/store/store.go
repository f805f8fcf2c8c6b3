// Package store holds the action bookkeeping shared by the domain state
// stores: per-action in-flight tracking, the aggregate loading/error view,
// and the concurrent bulk-load join.
package store

import (
	"context"
	"sync"
	"time"

	"example.com/backstage/services/console/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Result is what every store action hands back to its caller. Collection
// contents are read through the store's typed getters, never from here.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OpState is the observable state of one named action.
type OpState struct {
	RequestID string    `json:"request_id"`
	InFlight  bool      `json:"in_flight"`
	Error     string    `json:"error,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// Tracker implements the uniform action procedure: mark the action in
// flight, run it, record the outcome, and fold a panic in the reconcile
// path into a generic failure instead of crashing the store.
//
// Loading and error are tracked per action so concurrent actions do not
// race on a single shared flag, while Loading() and Err() preserve the
// aggregate single-flag view consumers poll.
type Tracker struct {
	mu       sync.Mutex
	ops      map[string]OpState
	inFlight int
	lastErr  string
	domain   string
	metrics  *metrics.Metrics
}

// NewTracker creates a tracker for one domain store.
func NewTracker(domain string, m *metrics.Metrics) *Tracker {
	return &Tracker{
		ops:     make(map[string]OpState),
		domain:  domain,
		metrics: m,
	}
}

// Do runs one action under the uniform procedure. fn performs the wrapper
// call and the state reconcile, returning the outcome flag and message.
func (t *Tracker) Do(action string, fn func() (bool, string)) (res Result) {
	started := time.Now()
	requestID := uuid.New().String()

	t.mu.Lock()
	t.inFlight++
	t.lastErr = ""
	t.ops[action] = OpState{RequestID: requestID, InFlight: true, StartedAt: started}
	t.mu.Unlock()

	settle := func(ok bool, msg string) {
		t.mu.Lock()
		t.inFlight--
		op := t.ops[action]
		op.InFlight = false
		op.Error = ""
		if !ok {
			op.Error = msg
			t.lastErr = msg
		}
		t.ops[action] = op
		t.mu.Unlock()

		if t.metrics != nil {
			t.metrics.RecordAction(t.domain+"."+action, time.Since(started), ok)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("domain", t.domain).
				Str("action", action).
				Interface("panic", r).
				Msg("Store action panicked")
			res = Result{Success: false, Message: "unexpected error, please retry"}
			settle(false, res.Message)
		}
	}()

	ok, msg := fn()
	settle(ok, msg)
	return Result{Success: ok, Message: msg}
}

// Loading reports whether any action on this store is in flight.
func (t *Tracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight > 0
}

// Err returns the most recent action failure message, if any.
func (t *Tracker) Err() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// ClearError clears the last-error slot.
func (t *Tracker) ClearError() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastErr = ""
}

// Ops returns a copy of the per-action states for the ops API.
func (t *Tracker) Ops() map[string]OpState {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]OpState, len(t.ops))
	for name, op := range t.ops {
		out[name] = op
	}
	return out
}

// RunAll executes the given actions concurrently and waits for all of them
// to settle. The aggregate succeeds only when every action succeeds; on
// partial failure the message is the failing messages joined in order.
func RunAll(ctx context.Context, actions ...func(context.Context) Result) Result {
	results := make([]Result, len(actions))

	g, gctx := errgroup.WithContext(ctx)
	for i, action := range actions {
		i, action := i, action
		g.Go(func() error {
			results[i] = action(gctx)
			return nil
		})
	}
	// Actions never return errors through the group, so this only joins.
	_ = g.Wait()

	failed := ""
	ok := true
	for _, res := range results {
		if res.Success {
			continue
		}
		ok = false
		if failed != "" {
			failed += "; "
		}
		failed += res.Message
	}

	if !ok {
		return Result{Success: false, Message: failed}
	}
	return Result{Success: true, Message: "all data loaded"}
}
