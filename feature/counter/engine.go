package counter

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrNotReady indicates the counter value (or the client identity) is
	// not known yet, so increments are disabled.
	ErrNotReady = errors.New("counter is not loaded yet")
	// ErrIncrementInFlight indicates a previous increment has not resolved
	// yet. Increments are serialized so two rapid calls cannot capture the
	// same pre-value.
	ErrIncrementInFlight = errors.New("an increment is already in flight")
)

// State is a point-in-time observer view of the engine.
type State struct {
	Value   int64 `json:"value"`
	Ready   bool  `json:"ready"`
	Pending bool  `json:"pending"`
}

// Engine owns the authoritative in-memory counter value and merges three
// independent signals into it: locally initiated optimistic writes, their
// eventual commit or failure, and externally pushed change notifications.
//
// The pending flag marks the interval between issuing a counter write and
// observing its outcome. While it is set, remote notifications are
// suppressed as echoes of the in-flight write; at any other time a remote
// notification overwrites the value unconditionally (last-delivered-wins),
// which is what makes the engine independent of feed ordering.
//
// State is guarded by a mutex that is never held across I/O, so remote
// notifications interleave with an increment only at its suspension points.
type Engine struct {
	mu       sync.Mutex
	value    int64
	ready    bool
	pending  bool
	inFlight bool

	identity string
	store    Store
	notifier Notifier
	logger   *zap.Logger
	changes  chan struct{}

	conditional bool
	retries     int
}

// NewEngine creates an engine for the given client identity. The identity
// may be empty, in which case increments stay disabled.
func NewEngine(cfg Config, store Store, identity string, notifier Notifier, logger *zap.Logger) *Engine {
	retries := cfg.WriteRetries
	if retries < 0 {
		retries = 0
	}
	return &Engine{
		identity:    identity,
		store:       store,
		notifier:    notifier,
		logger:      logger,
		changes:     make(chan struct{}, 1),
		conditional: cfg.ConditionalWrites,
		retries:     retries,
	}
}

// Changes returns a coalesced signal firing after every transition that
// changed the authoritative value or readiness. It is the only path by
// which the leaderboard projection is refreshed.
func (e *Engine) Changes() <-chan struct{} {
	return e.changes
}

// State returns the current observer view.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{Value: e.value, Ready: e.ready, Pending: e.pending}
}

// Initialize loads the committed counter value. On failure the engine stays
// unready and a load-failure notification is surfaced; a later remote
// notification can still bring the engine ready.
func (e *Engine) Initialize(ctx context.Context) error {
	v, err := e.store.ReadCounter(ctx)
	if err != nil {
		e.notifier.Notify(Notification{Kind: KindLoadFailure, Message: "Failed to load counter"})
		return err
	}

	e.mu.Lock()
	e.value = v
	e.ready = true
	e.mu.Unlock()

	e.logger.Info("Counter loaded", zap.Int64("value", v))
	e.requestRefresh()
	return nil
}

// Increment optimistically applies value+1, commits it to the store, and on
// success upserts this client's leaderboard row with the committed value.
// The optimistic value is observable before any network round trip. On
// commit failure the value is rolled back to the pre-increment value
// captured here, deliberately not to whatever the field holds at failure
// time. The returned value is the committed candidate.
func (e *Engine) Increment(ctx context.Context) (int64, error) {
	e.mu.Lock()
	if !e.ready || e.identity == "" {
		e.mu.Unlock()
		return 0, ErrNotReady
	}
	if e.inFlight {
		e.mu.Unlock()
		return 0, ErrIncrementInFlight
	}
	prev := e.value
	candidate := prev + 1
	e.value = candidate
	e.pending = true
	e.inFlight = true
	e.mu.Unlock()

	e.requestRefresh()

	err := e.commit(ctx, prev, &candidate)

	e.mu.Lock()
	e.pending = false
	if err != nil {
		e.value = prev
	}
	e.mu.Unlock()

	if err != nil {
		e.logger.Error("Counter update failed", zap.Error(err), zap.Int64("candidate", candidate))
		e.notifier.Notify(Notification{Kind: KindUpdateFailure, Message: "Update failed. Rolling back."})
		e.finishIncrement()
		return 0, err
	}

	if err := e.store.UpsertLeaderboardEntry(ctx, e.identity, candidate); err != nil {
		e.logger.Warn("Leaderboard upsert failed", zap.Error(err))
		e.notifier.Notify(Notification{Kind: KindLeaderboardWarning, Message: "Failed to update leaderboard"})
	} else {
		e.notifier.Notify(Notification{Kind: KindUpdateSuccess, Message: "Count updated successfully"})
	}

	e.finishIncrement()
	return candidate, nil
}

// commit writes the candidate to the store. In conditional mode the write
// only succeeds against the expected previous value; on conflict the
// committed value is re-read, the candidate recomputed and re-applied
// optimistically, up to the configured retry budget.
func (e *Engine) commit(ctx context.Context, prev int64, candidate *int64) error {
	if !e.conditional {
		return e.store.WriteCounter(ctx, *candidate)
	}

	expected := prev
	for attempt := 0; ; attempt++ {
		err := e.store.CompareAndSwapCounter(ctx, expected, *candidate)
		if err == nil || !errors.Is(err, ErrCounterConflict) || attempt >= e.retries {
			return err
		}

		current, rerr := e.store.ReadCounter(ctx)
		if rerr != nil {
			return rerr
		}
		e.logger.Info("Write conflict, retrying on top of remote value",
			zap.Int64("expected", expected), zap.Int64("current", current))

		expected = current
		*candidate = current + 1

		e.mu.Lock()
		e.value = *candidate
		e.mu.Unlock()
		e.requestRefresh()
	}
}

func (e *Engine) finishIncrement() {
	e.mu.Lock()
	e.inFlight = false
	e.mu.Unlock()
	e.requestRefresh()
}

// OnRemoteUpdate merges an externally pushed committed value. While a local
// write is pending the notification is treated as its echo and suppressed;
// otherwise the value overwrites the authoritative one unconditionally.
// Applying a value to an unready engine also brings it ready, which is the
// recovery path after a failed initial load. Duplicate deliveries and a
// spurious delivery after unsubscribe are harmless.
func (e *Engine) OnRemoteUpdate(v int64) {
	e.mu.Lock()
	if e.pending {
		e.mu.Unlock()
		e.logger.Debug("Suppressed feed echo", zap.Int64("value", v))
		return
	}
	changed := !e.ready || e.value != v
	e.value = v
	e.ready = true
	e.mu.Unlock()

	if changed {
		e.logger.Info("Remote counter update", zap.Int64("value", v))
		e.requestRefresh()
	}
}

// requestRefresh coalesces refresh requests into the single-slot signal.
func (e *Engine) requestRefresh() {
	select {
	case e.changes <- struct{}{}:
	default:
	}
}
