package repository

import (
	"context"
	"fmt"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AddOnRepository interface {
	Create(ctx context.Context, addOn *entity.AddOn) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AddOn, error)
	FindByPackageID(ctx context.Context, packageID uuid.UUID) ([]*entity.AddOn, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.AddOn, error)
	Update(ctx context.Context, addOn *entity.AddOn) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type addOnRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAddOnRepository(db database.PgxIface, log *zap.Logger) AddOnRepository {
	return &addOnRepository{
		db:  db,
		log: log.With(zap.String("repository", "addon")),
	}
}

const addOnColumns = `id, package_id, name, price, is_active, created_at, updated_at`

func scanAddOn(row pgx.Row) (*entity.AddOn, error) {
	var addOn entity.AddOn
	err := row.Scan(
		&addOn.ID,
		&addOn.PackageID,
		&addOn.Name,
		&addOn.Price,
		&addOn.IsActive,
		&addOn.CreatedAt,
		&addOn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &addOn, nil
}

func (r *addOnRepository) Create(ctx context.Context, addOn *entity.AddOn) error {
	query := `
		INSERT INTO addons (id, package_id, name, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		addOn.ID,
		addOn.PackageID,
		addOn.Name,
		addOn.Price,
		addOn.IsActive,
		addOn.CreatedAt,
		addOn.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create add-on",
			zap.Error(err),
			zap.String("name", addOn.Name),
		)
		return fmt.Errorf("create add-on %s: %w", addOn.Name, err)
	}

	return nil
}

func (r *addOnRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AddOn, error) {
	query := `SELECT ` + addOnColumns + ` FROM addons WHERE id = $1`

	addOn, err := scanAddOn(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find add-on by ID",
			zap.Error(err),
			zap.String("addon_id", id.String()),
		)
		return nil, fmt.Errorf("find add-on by ID %s: %w", id.String(), err)
	}

	return addOn, nil
}

func (r *addOnRepository) FindByPackageID(ctx context.Context, packageID uuid.UUID) ([]*entity.AddOn, error) {
	query := `SELECT ` + addOnColumns + ` FROM addons WHERE package_id = $1 ORDER BY price`

	rows, err := r.db.Query(ctx, query, packageID)
	if err != nil {
		r.log.Error("Failed to find add-ons by package ID",
			zap.Error(err),
			zap.String("package_id", packageID.String()),
		)
		return nil, fmt.Errorf("find add-ons by package ID %s: %w", packageID.String(), err)
	}
	defer rows.Close()

	return scanAddOnRows(rows, r.log)
}

func (r *addOnRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.AddOn, error) {
	query := `SELECT ` + addOnColumns + ` FROM addons WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find add-ons by IDs", zap.Error(err))
		return nil, fmt.Errorf("find add-ons by IDs: %w", err)
	}
	defer rows.Close()

	return scanAddOnRows(rows, r.log)
}

func scanAddOnRows(rows pgx.Rows, log *zap.Logger) ([]*entity.AddOn, error) {
	var addOns []*entity.AddOn
	for rows.Next() {
		addOn, err := scanAddOn(rows)
		if err != nil {
			log.Error("Failed to scan add-on row", zap.Error(err))
			return nil, fmt.Errorf("scan add-on row: %w", err)
		}
		addOns = append(addOns, addOn)
	}
	return addOns, nil
}

func (r *addOnRepository) Update(ctx context.Context, addOn *entity.AddOn) error {
	query := `
		UPDATE addons
		SET package_id = $2, name = $3, price = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		addOn.ID,
		addOn.PackageID,
		addOn.Name,
		addOn.Price,
		addOn.IsActive,
		addOn.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update add-on",
			zap.Error(err),
			zap.String("addon_id", addOn.ID.String()),
		)
		return fmt.Errorf("update add-on %s: %w", addOn.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("add-on %s not found", addOn.ID.String())
	}

	return nil
}

func (r *addOnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM addons WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete add-on",
			zap.Error(err),
			zap.String("addon_id", id.String()),
		)
		return fmt.Errorf("delete add-on %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("add-on %s not found", id.String())
	}

	r.log.Info("Add-on deleted", zap.String("addon_id", id.String()))
	return nil
}
