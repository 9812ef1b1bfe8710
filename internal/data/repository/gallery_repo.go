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

type GalleryRepository interface {
	Create(ctx context.Context, item *entity.GalleryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.GalleryItem, error)
	FindAll(ctx context.Context) ([]*entity.GalleryItem, error)
	FindActiveByCategory(ctx context.Context, category string) ([]*entity.GalleryItem, error)
	Update(ctx context.Context, item *entity.GalleryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type galleryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGalleryRepository(db database.PgxIface, log *zap.Logger) GalleryRepository {
	return &galleryRepository{
		db:  db,
		log: log.With(zap.String("repository", "gallery")),
	}
}

const galleryColumns = `id, title, image_url, category, sort_order, is_active, created_at, updated_at`

func scanGalleryItem(row pgx.Row) (*entity.GalleryItem, error) {
	var item entity.GalleryItem
	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.ImageURL,
		&item.Category,
		&item.SortOrder,
		&item.IsActive,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *galleryRepository) Create(ctx context.Context, item *entity.GalleryItem) error {
	query := `
		INSERT INTO gallery_items (id, title, image_url, category, sort_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.Title,
		item.ImageURL,
		item.Category,
		item.SortOrder,
		item.IsActive,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create gallery item",
			zap.Error(err),
			zap.String("title", item.Title),
		)
		return fmt.Errorf("create gallery item %s: %w", item.Title, err)
	}

	return nil
}

func (r *galleryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.GalleryItem, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery_items WHERE id = $1`

	item, err := scanGalleryItem(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find gallery item by ID",
			zap.Error(err),
			zap.String("item_id", id.String()),
		)
		return nil, fmt.Errorf("find gallery item by ID %s: %w", id.String(), err)
	}

	return item, nil
}

func (r *galleryRepository) FindAll(ctx context.Context) ([]*entity.GalleryItem, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery_items ORDER BY sort_order, created_at DESC`
	return r.queryItems(ctx, query)
}

func (r *galleryRepository) FindActiveByCategory(ctx context.Context, category string) ([]*entity.GalleryItem, error) {
	query := `
		SELECT ` + galleryColumns + `
		FROM gallery_items
		WHERE is_active = true AND ($1 = '' OR category = $1)
		ORDER BY sort_order, created_at DESC
	`

	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		r.log.Error("Failed to list gallery items",
			zap.Error(err),
			zap.String("category", category),
		)
		return nil, fmt.Errorf("list gallery items: %w", err)
	}
	defer rows.Close()

	return scanGalleryRows(rows, r.log)
}

func (r *galleryRepository) queryItems(ctx context.Context, query string) ([]*entity.GalleryItem, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list gallery items", zap.Error(err))
		return nil, fmt.Errorf("list gallery items: %w", err)
	}
	defer rows.Close()

	return scanGalleryRows(rows, r.log)
}

func scanGalleryRows(rows pgx.Rows, log *zap.Logger) ([]*entity.GalleryItem, error) {
	var items []*entity.GalleryItem
	for rows.Next() {
		item, err := scanGalleryItem(rows)
		if err != nil {
			log.Error("Failed to scan gallery item row", zap.Error(err))
			return nil, fmt.Errorf("scan gallery item row: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *galleryRepository) Update(ctx context.Context, item *entity.GalleryItem) error {
	query := `
		UPDATE gallery_items
		SET title = $2, image_url = $3, category = $4, sort_order = $5, is_active = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		item.ID,
		item.Title,
		item.ImageURL,
		item.Category,
		item.SortOrder,
		item.IsActive,
		item.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update gallery item",
			zap.Error(err),
			zap.String("item_id", item.ID.String()),
		)
		return fmt.Errorf("update gallery item %s: %w", item.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("gallery item %s not found", item.ID.String())
	}

	return nil
}

func (r *galleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM gallery_items WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete gallery item",
			zap.Error(err),
			zap.String("item_id", id.String()),
		)
		return fmt.Errorf("delete gallery item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("gallery item %s not found", id.String())
	}

	r.log.Info("Gallery item deleted", zap.String("item_id", id.String()))
	return nil
}
