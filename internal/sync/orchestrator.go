package sync

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/liftbook/liftbook/internal/errors"
	"github.com/liftbook/liftbook/internal/logging"
	"github.com/liftbook/liftbook/internal/merge"
	"github.com/liftbook/liftbook/internal/session"
)

var errPushFailed = apperrors.New(apperrors.ErrSyncPush, "remote push failed")

// Status represents the orchestrator's current sync state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSyncing Status = "syncing"
	StatusFailed  Status = "failed"
)

// DefaultInterval is the fixed cycle period. The interval is itself
// the retry policy; there is no backoff.
const DefaultInterval = 15 * time.Second

// EventSink receives sync lifecycle notifications. The app wires its
// websocket hub in here; a nil sink disables notifications.
type EventSink interface {
	SyncStarted()
	SyncCompleted(entries int, duration time.Duration)
	SyncFailed(reason string)
}

// Orchestrator drives the fetch/merge/push cycle once at startup and
// then on a fixed interval until stopped.
type Orchestrator struct {
	store  *session.Store
	remote RemoteClient
	clock  Clock

	interval time.Duration
	events   EventSink

	stopCh chan struct{}
	wg     sync.WaitGroup

	mu              sync.Mutex
	running         bool
	cycleInProgress bool
	status          Status
	lastSync        *time.Time
	lastErr         error
	cycleCount      int
}

// Config holds orchestrator configuration.
type Config struct {
	Interval time.Duration // cycle period, DefaultInterval when zero
	Clock    Clock         // RealClock when nil
	Events   EventSink     // optional
}

// NewOrchestrator creates a sync orchestrator over the given session
// store and remote client.
func NewOrchestrator(store *session.Store, remote RemoteClient, cfg Config) *Orchestrator {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	return &Orchestrator{
		store:    store,
		remote:   remote,
		clock:    cfg.Clock,
		interval: cfg.Interval,
		events:   cfg.Events,
		stopCh:   make(chan struct{}),
		status:   StatusIdle,
	}
}

// Start runs one cycle immediately and then launches the interval
// loop. It is a no-op if the orchestrator is already running.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return
	}
	o.running = true
	o.mu.Unlock()

	o.RunCycle(ctx)

	o.wg.Add(1)
	go o.loop(ctx)

	logging.Info("sync orchestrator started", logging.Fields{"interval": o.interval.String()})
}

// Stop tears down the interval loop and waits for it to exit. An
// in-flight network call is not aborted; its result is discarded once
// the loop has stopped.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return
	}
	o.running = false
	o.mu.Unlock()

	close(o.stopCh)
	o.wg.Wait()

	logging.Info("sync orchestrator stopped", nil)
}

func (o *Orchestrator) loop(ctx context.Context) {
	defer o.wg.Done()

	ticker := o.clock.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-o.stopCh:
			return
		case <-ticker.C():
			o.RunCycle(ctx)
		}
	}
}

// RunCycle performs one fetch/merge/push cycle. The order within a
// cycle is fixed: fetch completes before merge, merge before push.
// Ticks that fire while a previous cycle is still outstanding are
// skipped; overlapping cycles could let a slow push overwrite a
// faster concurrent merge.
func (o *Orchestrator) RunCycle(ctx context.Context) {
	o.mu.Lock()
	if o.cycleInProgress {
		o.mu.Unlock()
		logging.Debug("sync cycle still in progress, skipping tick", nil)
		return
	}
	o.cycleInProgress = true
	o.status = StatusSyncing
	o.cycleCount++
	o.mu.Unlock()

	if o.events != nil {
		o.events.SyncStarted()
	}
	started := o.clock.Now()

	ok, entries := o.runCycle(ctx)

	o.mu.Lock()
	o.cycleInProgress = false
	if ok {
		now := o.clock.Now()
		o.status = StatusIdle
		o.lastSync = &now
		o.lastErr = nil
	} else {
		o.status = StatusFailed
	}
	o.mu.Unlock()

	if o.events != nil {
		if ok {
			o.events.SyncCompleted(entries, o.clock.Now().Sub(started))
		} else {
			o.events.SyncFailed("push failed")
		}
	}
}

// runCycle is the cycle body. Returns whether the push succeeded and
// the entry count of what was pushed.
func (o *Orchestrator) runCycle(ctx context.Context) (bool, int) {
	remote, present := o.remote.Fetch(ctx)

	if !present {
		// First-sync bootstrap or unreachable remote: push local
		// state as-is to seed the slot. Local state is untouched
		// either way.
		local := o.store.Snapshot()
		if !o.remote.Push(ctx, local) {
			o.setErr(errPushFailed)
			logging.Warn("seed push failed, will retry next cycle", nil)
			return false, local.Len()
		}
		logging.Info("seeded remote slot from local state", logging.Fields{"entries": local.Len()})
		return true, local.Len()
	}

	// Cheap adoption heuristic: a strictly larger remote log means
	// another device has entries we lack, so fold them in right away.
	// The full merge below is safe regardless of counts.
	if remote.Len() > o.store.Len() {
		o.store.Adopt(merge.Merge(o.store.Snapshot(), remote))
	}

	// Read local state freshly at push time so edits made since the
	// fetch are included in this cycle's push.
	local := o.store.Snapshot()

	if merge.UnitsMismatch(remote, local) {
		logging.Warn("units differ between remote and local, keeping remote label unconverted", logging.Fields{
			"remote_units": string(remote.Units),
			"local_units":  string(local.Units),
		})
	}

	// Remote is primary so its units setting survives the push.
	combined := merge.Merge(remote, local)

	if !o.remote.Push(ctx, combined) {
		o.setErr(errPushFailed)
		logging.Warn("sync push failed, will retry next cycle", nil)
		return false, combined.Len()
	}

	logging.Debug("sync cycle complete", logging.Fields{"entries": combined.Len()})
	return true, combined.Len()
}

func (o *Orchestrator) setErr(err error) {
	o.mu.Lock()
	o.lastErr = err
	o.mu.Unlock()
}

// Status returns the current sync status.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// LastSync returns the completion time of the last successful cycle.
func (o *Orchestrator) LastSync() *time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastSync
}

// LastError returns the most recent cycle error, nil after a
// successful cycle.
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// CycleCount returns how many cycles have been started.
func (o *Orchestrator) CycleCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cycleCount
}
