package counter

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Kind classifies user-facing notifications.
type Kind string

const (
	// KindLoadFailure: the initial counter read failed; increments stay
	// disabled until a reload or a remote notification brings a value.
	KindLoadFailure Kind = "load-failure"
	// KindUpdateFailure: a counter write failed and the optimistic value
	// was rolled back.
	KindUpdateFailure Kind = "update-failure"
	// KindLeaderboardWarning: the leaderboard upsert failed; the committed
	// counter value is unaffected.
	KindLeaderboardWarning Kind = "leaderboard-warning"
	// KindUpdateSuccess: increment committed and leaderboard updated.
	KindUpdateSuccess Kind = "update-success"
	// KindRefreshFailure: the leaderboard projection could not be
	// recomputed; the previous view is retained.
	KindRefreshFailure Kind = "refresh-failure"
)

// Notification is a single non-blocking user-facing message.
type Notification struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Notifier receives user-facing notifications.
type Notifier interface {
	Notify(n Notification)
}

// Recorder is the default Notifier: it logs every notification and keeps a
// bounded buffer of the most recent ones for the HTTP surface.
type Recorder struct {
	mu      sync.Mutex
	logger  *zap.Logger
	limit   int
	entries []Notification
}

// NewRecorder creates a recorder keeping at most limit notifications.
func NewRecorder(logger *zap.Logger, limit int) *Recorder {
	if limit <= 0 {
		limit = 32
	}
	return &Recorder{logger: logger, limit: limit}
}

// Ensure *Recorder implements Notifier at compile time.
var _ Notifier = (*Recorder)(nil)

func (r *Recorder) Notify(n Notification) {
	if n.Time.IsZero() {
		n.Time = time.Now()
	}

	switch n.Kind {
	case KindUpdateSuccess:
		r.logger.Info(n.Message, zap.String("kind", string(n.Kind)))
	case KindLeaderboardWarning, KindRefreshFailure:
		r.logger.Warn(n.Message, zap.String("kind", string(n.Kind)))
	default:
		r.logger.Error(n.Message, zap.String("kind", string(n.Kind)))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, n)
	if len(r.entries) > r.limit {
		r.entries = r.entries[len(r.entries)-r.limit:]
	}
}

// Recent returns the recorded notifications, newest first.
func (r *Recorder) Recent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.entries))
	for i, n := range r.entries {
		out[len(out)-1-i] = n
	}
	return out
}
