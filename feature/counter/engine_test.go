package counter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"counter-sync/feature/counter"
	"counter-sync/feature/counter/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newEngine(t *testing.T, cfg counter.Config, store counter.Store) (*counter.Engine, *counter.Recorder) {
	t.Helper()
	recorder := counter.NewRecorder(zap.NewNop(), 16)
	return counter.NewEngine(cfg, store, "client-a", recorder, zap.NewNop()), recorder
}

func kinds(recorder *counter.Recorder) []counter.Kind {
	var out []counter.Kind
	for _, n := range recorder.Recent() {
		out = append(out, n.Kind)
	}
	return out
}

func TestInitializeLoadsCommittedValue(t *testing.T) {
	store := new(mocks.Store)
	store.On("ReadCounter", mock.Anything).Return(int64(5), nil)

	engine, _ := newEngine(t, counter.Config{}, store)
	assert.NoError(t, engine.Initialize(context.Background()))

	state := engine.State()
	assert.True(t, state.Ready)
	assert.Equal(t, int64(5), state.Value)
	assert.False(t, state.Pending)
}

func TestInitializeFailureStaysUnready(t *testing.T) {
	store := new(mocks.Store)
	store.On("ReadCounter", mock.Anything).Return(int64(0), counter.ErrCounterNotFound)

	engine, recorder := newEngine(t, counter.Config{}, store)
	assert.Error(t, engine.Initialize(context.Background()))

	assert.False(t, engine.State().Ready)
	assert.Contains(t, kinds(recorder), counter.KindLoadFailure)

	// Increments must stay disabled while unready.
	_, err := engine.Increment(context.Background())
	assert.ErrorIs(t, err, counter.ErrNotReady)
}

func TestRemoteUpdateRecoversUnreadyEngine(t *testing.T) {
	store := new(mocks.Store)
	store.On("ReadCounter", mock.Anything).Return(int64(0), errors.New("transport down"))

	engine, _ := newEngine(t, counter.Config{}, store)
	assert.Error(t, engine.Initialize(context.Background()))

	// A pushed committed value brings the engine ready without a reload.
	engine.OnRemoteUpdate(11)

	state := engine.State()
	assert.True(t, state.Ready)
	assert.Equal(t, int64(11), state.Value)
}

func TestIncrementRejectedWithoutIdentity(t *testing.T) {
	store := new(mocks.Store)
	store.On("ReadCounter", mock.Anything).Return(int64(5), nil)

	recorder := counter.NewRecorder(zap.NewNop(), 16)
	engine := counter.NewEngine(counter.Config{}, store, "", recorder, zap.NewNop())
	assert.NoError(t, engine.Initialize(context.Background()))

	_, err := engine.Increment(context.Background())
	assert.ErrorIs(t, err, counter.ErrNotReady)
}

// Optimistic visibility: the incremented value is observable before the
// write's completion is observed.
func TestIncrementIsOptimisticallyVisible(t *testing.T) {
	store := new(mocks.Store)
	store.On("ReadCounter", mock.Anything).Return(int64(5), nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("WriteCounter", mock.Anything, int64(6)).
		Run(func(args mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(nil)
	store.On("UpsertLeaderboardEntry", mock.Anything, "client-a", int64(6)).Return(nil)

	engine, recorder := newEngine(t, counter.Config{}, store)
	assert.NoError(t, engine.Initialize(context.Background()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		v, err := engine.Increment(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, int64(6), v)
	}()

	<-entered
	state := engine.State()
	assert.Equal(t, int64(6), state.Value, "new value must be visible before the commit")
	assert.True(t, state.Pending)

	close(release)
	<-done

	state = engine.State()
	assert.Equal(t, int64(6), state.Value)
	assert.False(t, state.Pending)
	assert.Contains(t, kinds(recorder), counter.KindUpdateSuccess)
	store.AssertExpectations(t)
}

// Rollback correctness: a failed write restores the value captured before
// the optimistic step.
func TestIncrementRollsBackOnWriteFailure(t *testing.T) {
	store := new(mocks.Store)
	store.On("ReadCounter", mock.Anything).Return(int64(5), nil)
	store.On("WriteCounter", mock.Anything, int64(6)).Return(errors.New("write refused"))

	engine, recorder := newEngine(t, counter.Config{}, store)
	assert.NoError(t, engine.Initialize(context.Background()))

	_, err := engine.Increment(context.Background())
	assert.Error(t, err)

	state := engine.State()
	assert.Equal(t, int64(5), state.Value)
	assert.False(t, state.Pending)
	assert.Contains(t, kinds(recorder), counter.KindUpdateFailure)

	// The leaderboard must not have been touched.
	store.AssertNotCalled(t, "UpsertLeaderboardEntry", mock.Anything, mock.Anything, mock.Anything)
}

// Self-echo suppression: a notification delivered while a write is in
// flight must not alter the authoritative value.
func TestRemoteUpdateSuppressedWhilePending(t *testing.T) {
	store := new(mocks.Store)
	store.On("ReadCounter", mock.Anything).Return(int64(5), nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("WriteCounter", mock.Anything, int64(6)).
		Run(func(args mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(nil)
	store.On("UpsertLeaderboardEntry", mock.Anything, "client-a", int64(6)).Return(nil)

	engine, _ := newEngine(t, counter.Config{}, store)
	assert.NoError(t, engine.Initialize(context.Background()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = engine.Increment(context.Background())
	}()

	<-entered
	// An echo or a racing peer; either way it must be suppressed.
	engine.OnRemoteUpdate(7)
	assert.Equal(t, int64(6), engine.State().Value)

	close(release)
	<-done
	assert.Equal(t, int64(6), engine.State().Value)
}

// Remote overwrite: with no write pending, the notified value wins
// unconditionally, monotonicity not required.
func TestRemoteUpdateOverwritesWhenIdle(t *testing.T) {
	store := new(mocks.Store)
	store.On("ReadCounter", mock.Anything).Return(int64(5), nil)

	engine, _ := newEngine(t, counter.Config{}, store)
	assert.NoError(t, engine.Initialize(context.Background()))

	engine.OnRemoteUpdate(9)
	assert.Equal(t, int64(9), engine.State().Value)

	engine.OnRemoteUpdate(3)
	assert.Equal(t, int64(3), engine.State().Value)
}

func TestSecondIncrementRejectedWhileInFlight(t *testing.T) {
	store := new(mocks.Store)
	store.On("ReadCounter", mock.Anything).Return(int64(5), nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("WriteCounter", mock.Anything, int64(6)).
		Run(func(args mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(nil)
	store.On("UpsertLeaderboardEntry", mock.Anything, "client-a", int64(6)).Return(nil)

	engine, _ := newEngine(t, counter.Config{}, store)
	assert.NoError(t, engine.Initialize(context.Background()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = engine.Increment(context.Background())
	}()

	<-entered
	_, err := engine.Increment(context.Background())
	assert.ErrorIs(t, err, counter.ErrIncrementInFlight)

	close(release)
	<-done

	// Once resolved, incrementing works again.
	store.On("WriteCounter", mock.Anything, int64(7)).Return(nil)
	store.On("UpsertLeaderboardEntry", mock.Anything, "client-a", int64(7)).Return(nil)
	v, err := engine.Increment(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(7), v)
}

func TestLeaderboardUpsertFailureDoesNotRollBack(t *testing.T) {
	store := new(mocks.Store)
	store.On("ReadCounter", mock.Anything).Return(int64(5), nil)
	store.On("WriteCounter", mock.Anything, int64(6)).Return(nil)
	store.On("UpsertLeaderboardEntry", mock.Anything, "client-a", int64(6)).
		Return(errors.New("upsert refused"))

	engine, recorder := newEngine(t, counter.Config{}, store)
	assert.NoError(t, engine.Initialize(context.Background()))

	v, err := engine.Increment(context.Background())
	assert.NoError(t, err, "the counter commit already succeeded")
	assert.Equal(t, int64(6), v)
	assert.Equal(t, int64(6), engine.State().Value)
	assert.Contains(t, kinds(recorder), counter.KindLeaderboardWarning)
	assert.NotContains(t, kinds(recorder), counter.KindUpdateFailure)
}

func TestConditionalWriteRetriesOnConflict(t *testing.T) {
	store := new(mocks.Store)
	store.On("ReadCounter", mock.Anything).Return(int64(5), nil).Once()

	// First attempt: CAS 5 -> 6 loses to a peer that committed 7.
	store.On("CompareAndSwapCounter", mock.Anything, int64(5), int64(6)).
		Return(counter.ErrCounterConflict).Once()
	store.On("ReadCounter", mock.Anything).Return(int64(7), nil).Once()
	// Retry on top of the re-read value.
	store.On("CompareAndSwapCounter", mock.Anything, int64(7), int64(8)).Return(nil).Once()
	store.On("UpsertLeaderboardEntry", mock.Anything, "client-a", int64(8)).Return(nil)

	engine, recorder := newEngine(t, counter.Config{ConditionalWrites: true, WriteRetries: 3}, store)
	assert.NoError(t, engine.Initialize(context.Background()))

	v, err := engine.Increment(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(8), v)
	assert.Equal(t, int64(8), engine.State().Value)
	assert.Contains(t, kinds(recorder), counter.KindUpdateSuccess)
	store.AssertExpectations(t)
}

func TestConditionalWriteGivesUpAfterRetryBudget(t *testing.T) {
	store := new(mocks.Store)
	store.On("ReadCounter", mock.Anything).Return(int64(5), nil).Once()
	store.On("CompareAndSwapCounter", mock.Anything, int64(5), int64(6)).
		Return(counter.ErrCounterConflict)

	engine, recorder := newEngine(t, counter.Config{ConditionalWrites: true, WriteRetries: 0}, store)
	assert.NoError(t, engine.Initialize(context.Background()))

	_, err := engine.Increment(context.Background())
	assert.ErrorIs(t, err, counter.ErrCounterConflict)
	// Rolled back to the pre-increment value.
	assert.Equal(t, int64(5), engine.State().Value)
	assert.Contains(t, kinds(recorder), counter.KindUpdateFailure)
}

func TestChangeSignalFiresOnTransitions(t *testing.T) {
	store := new(mocks.Store)
	store.On("ReadCounter", mock.Anything).Return(int64(5), nil)

	engine, _ := newEngine(t, counter.Config{}, store)
	assert.NoError(t, engine.Initialize(context.Background()))
	drainChange(t, engine) // readiness transition

	engine.OnRemoteUpdate(9)
	drainChange(t, engine)

	// A duplicate delivery changes nothing and requests no refresh.
	engine.OnRemoteUpdate(9)
	select {
	case <-engine.Changes():
		t.Fatal("duplicate remote value must not request a refresh")
	case <-time.After(50 * time.Millisecond):
	}
}

func drainChange(t *testing.T, engine *counter.Engine) {
	t.Helper()
	select {
	case <-engine.Changes():
	case <-time.After(time.Second):
		t.Fatal("expected a change signal")
	}
}
