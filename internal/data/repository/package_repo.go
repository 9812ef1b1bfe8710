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

type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.PhotoPackage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PhotoPackage, error)
	FindAll(ctx context.Context) ([]*entity.PhotoPackage, error)
	FindAllActive(ctx context.Context) ([]*entity.PhotoPackage, error)
	Update(ctx context.Context, pkg *entity.PhotoPackage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type packageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPackageRepository(db database.PgxIface, log *zap.Logger) PackageRepository {
	return &packageRepository{
		db:  db,
		log: log.With(zap.String("repository", "package")),
	}
}

const packageColumns = `id, name, description, price, duration_minutes, photo_count, is_active, created_at, updated_at`

func scanPackage(row pgx.Row) (*entity.PhotoPackage, error) {
	var pkg entity.PhotoPackage
	err := row.Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.Description,
		&pkg.Price,
		&pkg.DurationMinutes,
		&pkg.PhotoCount,
		&pkg.IsActive,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) Create(ctx context.Context, pkg *entity.PhotoPackage) error {
	query := `
		INSERT INTO packages (id, name, description, price, duration_minutes, photo_count, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.DurationMinutes,
		pkg.PhotoCount,
		pkg.IsActive,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create package",
			zap.Error(err),
			zap.String("name", pkg.Name),
		)
		return fmt.Errorf("create package %s: %w", pkg.Name, err)
	}

	return nil
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PhotoPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1 AND deleted_at IS NULL`

	pkg, err := scanPackage(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find package by ID",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return nil, fmt.Errorf("find package by ID %s: %w", id.String(), err)
	}

	return pkg, nil
}

func (r *packageRepository) FindAll(ctx context.Context) ([]*entity.PhotoPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE deleted_at IS NULL ORDER BY price`

	return r.queryPackages(ctx, query)
}

func (r *packageRepository) FindAllActive(ctx context.Context) ([]*entity.PhotoPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE is_active = true AND deleted_at IS NULL ORDER BY price`

	return r.queryPackages(ctx, query)
}

func (r *packageRepository) queryPackages(ctx context.Context, query string) ([]*entity.PhotoPackage, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list packages", zap.Error(err))
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var packages []*entity.PhotoPackage
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			r.log.Error("Failed to scan package row", zap.Error(err))
			return nil, fmt.Errorf("scan package row: %w", err)
		}
		packages = append(packages, pkg)
	}

	return packages, nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *entity.PhotoPackage) error {
	query := `
		UPDATE packages
		SET name = $2, description = $3, price = $4, duration_minutes = $5,
		    photo_count = $6, is_active = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.DurationMinutes,
		pkg.PhotoCount,
		pkg.IsActive,
		pkg.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update package",
			zap.Error(err),
			zap.String("package_id", pkg.ID.String()),
		)
		return fmt.Errorf("update package %s: %w", pkg.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("package %s not found", pkg.ID.String())
	}

	return nil
}

func (r *packageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Soft delete: past bookings still reference the package
	query := `UPDATE packages SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete package",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return fmt.Errorf("delete package %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("package %s not found", id.String())
	}

	r.log.Info("Package deleted", zap.String("package_id", id.String()))
	return nil
}
