package counter

import (
	"context"
	"sync"
	"time"

	"counter-sync/core/feed"
	"counter-sync/feature/counter/models"

	"go.uber.org/zap"
)

// Service wires the reconciliation engine to its collaborators: the
// persistence store, the change feed subscription and the leaderboard
// projector. It owns the refresh loop consuming the engine's change signal.
type Service struct {
	cfg        Config
	engine     *Engine
	projector  *Projector
	recorder   *Recorder
	subscriber feed.Subscriber
	logger     *zap.Logger

	sub      feed.Subscription
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewService creates the counter service for the given client identity.
func NewService(cfg Config, store Store, subscriber feed.Subscriber, clientID string, logger *zap.Logger) *Service {
	recorder := NewRecorder(logger, cfg.NotificationLimit)
	return &Service{
		cfg:        cfg,
		engine:     NewEngine(cfg, store, clientID, recorder, logger),
		projector:  NewProjector(store, recorder, logger),
		recorder:   recorder,
		subscriber: subscriber,
		logger:     logger,
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start loads the counter, opens the feed subscription and starts the
// refresh loop. A failed initial load is not fatal: the engine stays
// unready and a later remote notification can still bring it ready. A
// failed feed subscription is fatal because without it this client would
// never observe other writers.
func (s *Service) Start(ctx context.Context) error {
	if err := s.engine.Initialize(ctx); err != nil {
		s.logger.Warn("Initial counter load failed", zap.Error(err))
	}

	sub, err := s.subscriber.Subscribe(s.engine.OnRemoteUpdate)
	if err != nil {
		return err
	}
	s.sub = sub

	go s.refreshLoop()
	return nil
}

// Stop tears the service down: unsubscribes the feed (idempotent), stops
// the refresh loop and waits for it to drain. Safe to call more than once.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		if s.sub != nil {
			s.sub.Unsubscribe()
		}
		close(s.stopCh)
		<-s.done
	})
}

func (s *Service) refreshLoop() {
	defer close(s.done)

	timeout := time.Duration(s.cfg.RefreshTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	for {
		select {
		case <-s.stopCh:
			return
		case <-s.engine.Changes():
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			s.projector.Refresh(ctx)
			cancel()
		}
	}
}

// Increment triggers a local optimistic increment.
func (s *Service) Increment(ctx context.Context) (int64, error) {
	return s.engine.Increment(ctx)
}

// State returns the engine's observer view.
func (s *Service) State() State {
	return s.engine.State()
}

// Leaderboard returns the current projection, best first.
func (s *Service) Leaderboard() []models.LeaderboardEntry {
	return s.projector.View()
}

// Notifications returns recent user-facing notifications, newest first.
func (s *Service) Notifications() []Notification {
	return s.recorder.Recent()
}
