package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrPackageNotFound = errors.New("package not found")

const packageColumns = `id, gym_id, name, description, total_sessions, price, validity_days, is_active, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Package) (*Package, error) {
	query := `
		INSERT INTO packages (gym_id, name, description, total_sessions, price, validity_days)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + packageColumns

	var created Package
	err := r.db.GetContext(ctx, &created, query, p.GymID, p.Name, p.Description, p.TotalSessions, p.Price, p.ValidityDays)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, gymID, id int) (*Package, error) {
	query := `
		SELECT ` + packageColumns + `
		FROM packages
		WHERE id = $1 AND gym_id = $2
	`

	var p Package
	err := r.db.GetContext(ctx, &p, query, id, gymID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListActive(ctx context.Context, gymID int) ([]Package, error) {
	query := `
		SELECT ` + packageColumns + `
		FROM packages
		WHERE gym_id = $1 AND is_active = TRUE
		ORDER BY name
	`

	packages := []Package{}
	if err := r.db.SelectContext(ctx, &packages, query, gymID); err != nil {
		return nil, err
	}

	return packages, nil
}

func (r *repository) Update(ctx context.Context, gymID, id int, req UpdatePackageRequest) (*Package, error) {
	query := `
		UPDATE packages
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			total_sessions = COALESCE($3, total_sessions),
			price = COALESCE($4, price),
			validity_days = COALESCE($5, validity_days),
			is_active = COALESCE($6, is_active)
		WHERE id = $7 AND gym_id = $8
		RETURNING ` + packageColumns

	var updated Package
	err := r.db.GetContext(ctx, &updated, query,
		req.Name, req.Description, req.TotalSessions, req.Price, req.ValidityDays, req.IsActive, id, gymID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Deactivate(ctx context.Context, gymID, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE packages SET is_active = FALSE WHERE id = $1 AND gym_id = $2`, id, gymID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPackageNotFound
	}

	return nil
}
