package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"kinetica/internal/auth"
	"kinetica/internal/datetime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CountSessionsOn(ctx context.Context, id auth.Identity, day datetime.Date) (int, error) {
	args := m.Called(ctx, id, day)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountExpiring(ctx context.Context, id auth.Identity, from, to datetime.Date) (int, error) {
	args := m.Called(ctx, id, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountUnpaidMembers(ctx context.Context, id auth.Identity) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountActiveMembers(ctx context.Context, id auth.Identity) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) SessionsOn(ctx context.Context, id auth.Identity, day datetime.Date) ([]TodaySession, error) {
	args := m.Called(ctx, id, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TodaySession), args.Error(1)
}

func (m *MockRepository) Expiring(ctx context.Context, id auth.Identity, from, to datetime.Date) ([]ExpiringPackage, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ExpiringPackage), args.Error(1)
}

// newTestService pins the clock at 01:30 UTC on Jan 15, which is still
// Jan 14 three hours west of UTC.
func newTestService(repo Repository) *service {
	s := NewService(repo, time.FixedZone("UTC-3", -3*3600)).(*service)
	s.now = func() time.Time { return time.Date(2024, 1, 15, 1, 30, 0, 0, time.UTC) }
	return s
}

func TestService_StatsUsesLocalDay(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	localDay := datetime.NewDate(2024, time.January, 14)
	repo.On("CountSessionsOn", mock.Anything, trainer, localDay).Return(4, nil)
	repo.On("CountExpiring", mock.Anything, trainer, localDay, datetime.NewDate(2024, time.January, 21)).Return(2, nil)
	repo.On("CountUnpaidMembers", mock.Anything, trainer).Return(1, nil)
	repo.On("CountActiveMembers", mock.Anything, trainer).Return(9, nil)

	stats, err := svc.Stats(context.Background(), trainer)
	require.NoError(t, err)
	assert.Equal(t, Stats{TodaySessions: 4, ExpiringPackagesThisWeek: 2, UnpaidMembers: 1, ActiveMembers: 9}, *stats)
	repo.AssertExpectations(t)
}

func TestService_StatsStopsOnError(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("CountSessionsOn", mock.Anything, owner, mock.Anything).Return(0, errors.New("connection reset"))

	_, err := svc.Stats(context.Background(), owner)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count today's sessions")
	repo.AssertNotCalled(t, "CountActiveMembers", mock.Anything, mock.Anything)
}

func TestService_ExpiringWindow(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("Expiring", mock.Anything, owner, datetime.NewDate(2024, time.January, 14), datetime.NewDate(2024, time.January, 21)).
		Return([]ExpiringPackage{{ID: 11}}, nil)

	packages, err := svc.ExpiringPackages(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, packages, 1)
}
