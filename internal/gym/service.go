package gym

import (
	"context"
	"errors"

	"kinetica/internal/apperr"
	"kinetica/internal/auth"
)

var errNotFound = apperr.NotFound("Gym not found")

type Service interface {
	Get(ctx context.Context, id auth.Identity) (*Gym, error)
	Update(ctx context.Context, id auth.Identity, req UpdateGymRequest) (*Gym, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) Get(ctx context.Context, id auth.Identity) (*Gym, error) {
	gym, err := s.repo.GetByID(ctx, id.GymID)
	if errors.Is(err, ErrGymNotFound) {
		return nil, errNotFound
	}
	return gym, err
}

func (s *service) Update(ctx context.Context, id auth.Identity, req UpdateGymRequest) (*Gym, error) {
	updated, err := s.repo.Update(ctx, id.GymID, req)
	if errors.Is(err, ErrGymNotFound) {
		return nil, errNotFound
	}
	return updated, err
}
