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

type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error)
	FindAll(ctx context.Context) ([]*entity.Location, error)
	FindAllActive(ctx context.Context) ([]*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type locationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLocationRepository(db database.PgxIface, log *zap.Logger) LocationRepository {
	return &locationRepository{
		db:  db,
		log: log.With(zap.String("repository", "location")),
	}
}

const locationColumns = `id, name, address, fee, is_active, created_at, updated_at`

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var location entity.Location
	err := row.Scan(
		&location.ID,
		&location.Name,
		&location.Address,
		&location.Fee,
		&location.IsActive,
		&location.CreatedAt,
		&location.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) Create(ctx context.Context, location *entity.Location) error {
	query := `
		INSERT INTO locations (id, name, address, fee, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		location.ID,
		location.Name,
		location.Address,
		location.Fee,
		location.IsActive,
		location.CreatedAt,
		location.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create location",
			zap.Error(err),
			zap.String("name", location.Name),
		)
		return fmt.Errorf("create location %s: %w", location.Name, err)
	}

	return nil
}

func (r *locationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1 AND deleted_at IS NULL`

	location, err := scanLocation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find location by ID",
			zap.Error(err),
			zap.String("location_id", id.String()),
		)
		return nil, fmt.Errorf("find location by ID %s: %w", id.String(), err)
	}

	return location, nil
}

func (r *locationRepository) FindAll(ctx context.Context) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE deleted_at IS NULL ORDER BY name`
	return r.queryLocations(ctx, query)
}

func (r *locationRepository) FindAllActive(ctx context.Context) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE is_active = true AND deleted_at IS NULL ORDER BY name`
	return r.queryLocations(ctx, query)
}

func (r *locationRepository) queryLocations(ctx context.Context, query string) ([]*entity.Location, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list locations", zap.Error(err))
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locations []*entity.Location
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			r.log.Error("Failed to scan location row", zap.Error(err))
			return nil, fmt.Errorf("scan location row: %w", err)
		}
		locations = append(locations, location)
	}

	return locations, nil
}

func (r *locationRepository) Update(ctx context.Context, location *entity.Location) error {
	query := `
		UPDATE locations
		SET name = $2, address = $3, fee = $4, is_active = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		location.ID,
		location.Name,
		location.Address,
		location.Fee,
		location.IsActive,
		location.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update location",
			zap.Error(err),
			zap.String("location_id", location.ID.String()),
		)
		return fmt.Errorf("update location %s: %w", location.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("location %s not found", location.ID.String())
	}

	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Soft delete: past bookings still reference the location
	query := `UPDATE locations SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete location",
			zap.Error(err),
			zap.String("location_id", id.String()),
		)
		return fmt.Errorf("delete location %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("location %s not found", id.String())
	}

	r.log.Info("Location deleted", zap.String("location_id", id.String()))
	return nil
}
