// Package playstate holds the client-side glue around watch-state mutations
// and playback telemetry: optimistic local updates with rollback, per-item
// serialization of mutations, and the best-effort progress heartbeat.
package playstate

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Optimistic applies a local change, attempts the matching remote change and
// undoes the local change when the remote one fails. The remote error is
// returned unchanged so callers can inspect its status.
func Optimistic(apply, revert func(), remote func() error) error {
	apply()
	if err := remote(); err != nil {
		revert()
		return err
	}
	return nil
}

// Keyed serializes work per key. Two mutations on the same item id run one
// after the other, so the last request sent is also the last response
// applied; mutations on different items still run concurrently.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func (k *Keyed) Do(key string, fn func() error) error {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*entry)
	}
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	err := fn()
	e.mu.Unlock()

	k.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	return err
}

// Heartbeat runs report every interval until ctx is cancelled. Report
// failures are logged and swallowed; the next tick is the retry. An in-flight
// report is not aborted on cancellation, only its outcome is ignored.
func Heartbeat(ctx context.Context, interval time.Duration, report func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Reports run on a detached context: cancelling the loop stops further
	// ticks but never aborts a request already on the wire.
	reportCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := report(reportCtx); err != nil {
				slog.Warn("heartbeat report failed", slog.String("error", err.Error()))
			}
		}
	}
}
