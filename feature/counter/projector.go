package counter

import (
	"context"
	"sync"

	"counter-sync/feature/counter/models"

	"go.uber.org/zap"
)

// Projector maintains the exposed leaderboard view. Every recomputation
// fetches all entries ordered by value descending and replaces the view
// wholesale; there is no incremental diffing. A failed fetch surfaces a
// refresh-failure notification and leaves the previous view in place.
type Projector struct {
	mu       sync.RWMutex
	store    Store
	notifier Notifier
	logger   *zap.Logger
	entries  []models.LeaderboardEntry
}

// NewProjector creates a projector with an empty view.
func NewProjector(store Store, notifier Notifier, logger *zap.Logger) *Projector {
	return &Projector{store: store, notifier: notifier, logger: logger}
}

// Refresh recomputes the view from the store.
func (p *Projector) Refresh(ctx context.Context) {
	entries, err := p.store.ListLeaderboard(ctx)
	if err != nil {
		p.logger.Warn("Leaderboard refresh failed", zap.Error(err))
		p.notifier.Notify(Notification{Kind: KindRefreshFailure, Message: "Failed to refresh leaderboard"})
		return
	}

	p.mu.Lock()
	p.entries = entries
	p.mu.Unlock()
}

// View returns a copy of the current leaderboard, best first.
func (p *Projector) View() []models.LeaderboardEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]models.LeaderboardEntry, len(p.entries))
	copy(out, p.entries)
	return out
}
