package counter

import (
	"context"
	"errors"
	"fmt"

	"counter-sync/feature/counter/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrCounterNotFound indicates the counter row does not exist yet.
	ErrCounterNotFound = errors.New("counter row not found")
	// ErrCounterConflict indicates a conditional write matched no row
	// because another client committed first.
	ErrCounterConflict = errors.New("counter value changed concurrently")
)

// Store is the persistence client for the counter and leaderboard
// collections. It is pure request/response and holds no state beyond the
// connection. Implementations can be swapped for testing (mocks).
type Store interface {
	// ReadCounter returns the current committed counter value.
	ReadCounter(ctx context.Context) (int64, error)
	// WriteCounter unconditionally overwrites the counter value
	// (last-writer-wins, no concurrency token).
	WriteCounter(ctx context.Context, value int64) error
	// CompareAndSwapCounter overwrites the counter value only if it still
	// holds expected, returning ErrCounterConflict otherwise.
	CompareAndSwapCounter(ctx context.Context, expected, value int64) error
	// UpsertLeaderboardEntry inserts or replaces the row keyed by userID.
	UpsertLeaderboardEntry(ctx context.Context, userID string, value int64) error
	// ListLeaderboard returns all entries ordered by value descending.
	ListLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
}

// GormStore implements Store on a GORM connection.
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a Store backed by the given connection.
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Ensure *GormStore implements Store at compile time.
var _ Store = (*GormStore)(nil)

// Seed ensures both collections exist and creates the counter row with the
// given value if it is missing. Existing rows are left untouched.
func (s *GormStore) Seed(ctx context.Context, value int64) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Counter{}, &models.LeaderboardEntry{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	row := models.Counter{ID: models.CounterID, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to seed counter: %w", err)
	}
	return nil
}

func (s *GormStore) ReadCounter(ctx context.Context) (int64, error) {
	var row models.Counter
	err := s.db.WithContext(ctx).First(&row, "id = ?", models.CounterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrCounterNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}
	return row.Value, nil
}

func (s *GormStore) WriteCounter(ctx context.Context, value int64) error {
	res := s.db.WithContext(ctx).
		Model(&models.Counter{}).
		Where("id = ?", models.CounterID).
		Update("value", value)
	if res.Error != nil {
		return fmt.Errorf("failed to write counter: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCounterNotFound
	}
	return nil
}

func (s *GormStore) CompareAndSwapCounter(ctx context.Context, expected, value int64) error {
	res := s.db.WithContext(ctx).
		Model(&models.Counter{}).
		Where("id = ? AND value = ?", models.CounterID, expected).
		Update("value", value)
	if res.Error != nil {
		return fmt.Errorf("failed to write counter: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCounterConflict
	}
	return nil
}

func (s *GormStore) UpsertLeaderboardEntry(ctx context.Context, userID string, value int64) error {
	entry := models.LeaderboardEntry{UserID: userID, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to upsert leaderboard entry: %w", err)
	}
	return nil
}

func (s *GormStore) ListLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := s.db.WithContext(ctx).
		Order("value DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	return entries, nil
}
