package gym

import (
	"context"
	"testing"

	"kinetica/internal/apperr"
	"kinetica/internal/auth"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, q sqlx.ExtContext, name, gymType string) (*Gym, error) {
	args := m.Called(ctx, q, name, gymType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Gym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int, req UpdateGymRequest) (*Gym, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

var ownerID = auth.Identity{UserID: 1, GymID: 5, Role: auth.RoleOwner}

func TestService_Get(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, 5).Return(&Gym{ID: 5, Name: "Iron"}, nil)

	gym, err := NewService(repo).Get(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, "Iron", gym.Name)
	repo.AssertExpectations(t)
}

func TestService_GetMissing(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, 5).Return(nil, ErrGymNotFound)

	_, err := NewService(repo).Get(context.Background(), ownerID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_Update(t *testing.T) {
	studio := TypePersonalStudio
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, 5, UpdateGymRequest{Type: &studio}).
		Return(&Gym{ID: 5, Name: "Iron", Type: TypePersonalStudio}, nil)

	gym, err := NewService(repo).Update(context.Background(), ownerID, UpdateGymRequest{Type: &studio})
	require.NoError(t, err)
	assert.Equal(t, TypePersonalStudio, gym.Type)
	repo.AssertExpectations(t)
}
