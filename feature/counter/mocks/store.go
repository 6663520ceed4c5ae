// Package mocks provides a testify mock of the counter.Store interface.
package mocks

import (
	"context"

	"counter-sync/feature/counter/models"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of counter.Store
type Store struct {
	mock.Mock
}

func (m *Store) ReadCounter(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) WriteCounter(ctx context.Context, value int64) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *Store) CompareAndSwapCounter(ctx context.Context, expected, value int64) error {
	args := m.Called(ctx, expected, value)
	return args.Error(0)
}

func (m *Store) UpsertLeaderboardEntry(ctx context.Context, userID string, value int64) error {
	args := m.Called(ctx, userID, value)
	return args.Error(0)
}

func (m *Store) ListLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	args := m.Called(ctx)
	if entries, ok := args.Get(0).([]models.LeaderboardEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}
