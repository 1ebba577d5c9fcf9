package catalog

import "context"

type Repository interface {
	Create(ctx context.Context, p *Package) (*Package, error)
	GetByID(ctx context.Context, gymID, id int) (*Package, error)
	ListActive(ctx context.Context, gymID int) ([]Package, error)
	// Update writes only the fields set on req.
	Update(ctx context.Context, gymID, id int, req UpdatePackageRequest) (*Package, error)
	Deactivate(ctx context.Context, gymID, id int) error
}
