package repository

import (
	"context"
	"fmt"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type IntegrationRepository interface {
	FindByName(ctx context.Context, name string) (*entity.Integration, error)
	FindAll(ctx context.Context) ([]*entity.Integration, error)
	SetActive(ctx context.Context, name string, active bool) error
}

type integrationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewIntegrationRepository(db database.PgxIface, log *zap.Logger) IntegrationRepository {
	return &integrationRepository{
		db:  db,
		log: log.With(zap.String("repository", "integration")),
	}
}

func (r *integrationRepository) FindByName(ctx context.Context, name string) (*entity.Integration, error) {
	query := `
		SELECT id, name, is_active, created_at, updated_at
		FROM integrations
		WHERE name = $1
	`

	var integration entity.Integration
	err := r.db.QueryRow(ctx, query, name).Scan(
		&integration.ID,
		&integration.Name,
		&integration.IsActive,
		&integration.CreatedAt,
		&integration.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find integration",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find integration %s: %w", name, err)
	}

	return &integration, nil
}

func (r *integrationRepository) FindAll(ctx context.Context) ([]*entity.Integration, error) {
	query := `
		SELECT id, name, is_active, created_at, updated_at
		FROM integrations
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list integrations", zap.Error(err))
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	defer rows.Close()

	var integrations []*entity.Integration
	for rows.Next() {
		var integration entity.Integration
		err := rows.Scan(
			&integration.ID,
			&integration.Name,
			&integration.IsActive,
			&integration.CreatedAt,
			&integration.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan integration row", zap.Error(err))
			return nil, fmt.Errorf("scan integration row: %w", err)
		}
		integrations = append(integrations, &integration)
	}

	return integrations, nil
}

func (r *integrationRepository) SetActive(ctx context.Context, name string, active bool) error {
	query := `UPDATE integrations SET is_active = $2, updated_at = NOW() WHERE name = $1`

	result, err := r.db.Exec(ctx, query, name, active)
	if err != nil {
		r.log.Error("Failed to update integration",
			zap.Error(err),
			zap.String("name", name),
		)
		return fmt.Errorf("update integration %s: %w", name, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("integration %s not found", name)
	}

	return nil
}
