// Package models defines the persisted rows of the counter feature.
package models

// CounterID is the fixed primary key of the single shared counter row.
const CounterID int64 = 1

// Counter is the single-row collection holding the shared value.
type Counter struct {
	ID    int64 `gorm:"primaryKey" json:"id"`
	Value int64 `json:"value"`
}

// TableName maps the model to the `counter` collection.
func (Counter) TableName() string {
	return "counter"
}

// LeaderboardEntry records the counter value as it was when the given
// client last successfully incremented it. One row per client, keyed by the
// client identity; rows accumulate indefinitely.
type LeaderboardEntry struct {
	UserID string `gorm:"primaryKey;column:user_id" json:"user_id"`
	Value  int64  `json:"value"`
}

// TableName maps the model to the `leaderboard` collection.
func (LeaderboardEntry) TableName() string {
	return "leaderboard"
}
