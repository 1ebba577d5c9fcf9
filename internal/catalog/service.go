package catalog

import (
	"context"
	"errors"

	"kinetica/internal/apperr"
	"kinetica/internal/auth"
)

var errNotFound = apperr.NotFound("Package not found")

type Service interface {
	List(ctx context.Context, id auth.Identity) ([]Package, error)
	Get(ctx context.Context, id auth.Identity, packageID int) (*Package, error)
	Create(ctx context.Context, id auth.Identity, req CreatePackageRequest) (*Package, error)
	Update(ctx context.Context, id auth.Identity, packageID int, req UpdatePackageRequest) (*Package, error)
	Deactivate(ctx context.Context, id auth.Identity, packageID int) error
	// Active returns a package of the caller's gym that can still be sold.
	Active(ctx context.Context, id auth.Identity, packageID int) (*Package, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, id auth.Identity) ([]Package, error) {
	return s.repo.ListActive(ctx, id.GymID)
}

func (s *service) Get(ctx context.Context, id auth.Identity, packageID int) (*Package, error) {
	p, err := s.repo.GetByID(ctx, id.GymID, packageID)
	if errors.Is(err, ErrPackageNotFound) {
		return nil, errNotFound
	}
	return p, err
}

func (s *service) Create(ctx context.Context, id auth.Identity, req CreatePackageRequest) (*Package, error) {
	validity := req.ValidityDays
	if validity == 0 {
		validity = DefaultValidityDays
	}

	return s.repo.Create(ctx, &Package{
		GymID:         id.GymID,
		Name:          req.Name,
		Description:   req.Description,
		TotalSessions: req.TotalSessions,
		Price:         *req.Price,
		ValidityDays:  validity,
	})
}

func (s *service) Update(ctx context.Context, id auth.Identity, packageID int, req UpdatePackageRequest) (*Package, error) {
	updated, err := s.repo.Update(ctx, id.GymID, packageID, req)
	if errors.Is(err, ErrPackageNotFound) {
		return nil, errNotFound
	}
	return updated, err
}

func (s *service) Deactivate(ctx context.Context, id auth.Identity, packageID int) error {
	err := s.repo.Deactivate(ctx, id.GymID, packageID)
	if errors.Is(err, ErrPackageNotFound) {
		return errNotFound
	}
	return err
}

func (s *service) Active(ctx context.Context, id auth.Identity, packageID int) (*Package, error) {
	p, err := s.Get(ctx, id, packageID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, errNotFound
	}
	return p, nil
}
