package usecase

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GalleryService interface {
	// Public
	GetGallery(ctx context.Context, category string) ([]*response.GalleryItemResponse, error)

	// Admin
	GetAllItems(ctx context.Context) ([]*response.GalleryItemResponse, error)
	CreateItem(ctx context.Context, req *request.CreateGalleryItemRequest) (*response.GalleryItemResponse, error)
	UpdateItem(ctx context.Context, itemID string, req *request.UpdateGalleryItemRequest) (*response.GalleryItemResponse, error)
	DeleteItem(ctx context.Context, itemID string) error
}

type galleryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewGalleryService(repo *repository.Repository, log *zap.Logger) GalleryService {
	return &galleryService{
		repo: repo,
		log:  log.With(zap.String("service", "gallery")),
	}
}

func (s *galleryService) GetGallery(ctx context.Context, category string) ([]*response.GalleryItemResponse, error) {
	items, err := s.repo.Gallery.FindActiveByCategory(ctx, category)
	if err != nil {
		s.log.Error("Failed to list gallery items", zap.Error(err), zap.String("category", category))
		return nil, fmt.Errorf("failed to list gallery items")
	}
	return toGalleryResponses(items), nil
}

func (s *galleryService) GetAllItems(ctx context.Context) ([]*response.GalleryItemResponse, error) {
	items, err := s.repo.Gallery.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list gallery items", zap.Error(err))
		return nil, fmt.Errorf("failed to list gallery items")
	}
	return toGalleryResponses(items), nil
}

func (s *galleryService) CreateItem(ctx context.Context, req *request.CreateGalleryItemRequest) (*response.GalleryItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create gallery item validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	item := &entity.GalleryItem{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		Category:  req.Category,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	}
	if err := s.repo.Gallery.Create(ctx, item); err != nil {
		s.log.Error("Failed to create gallery item", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("failed to create gallery item")
	}
	return toGalleryResponse(item), nil
}

func (s *galleryService) UpdateItem(ctx context.Context, itemID string, req *request.UpdateGalleryItemRequest) (*response.GalleryItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, fmt.Errorf("invalid gallery item ID format %s: %w", itemID, err)
	}

	item, err := s.repo.Gallery.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find gallery item", zap.Error(err), zap.String("item_id", itemID))
		return nil, fmt.Errorf("failed to find gallery item")
	}
	if item == nil {
		return nil, fmt.Errorf("gallery item %s not found", itemID)
	}

	item.Title = req.Title
	item.ImageURL = req.ImageURL
	item.Category = req.Category
	item.SortOrder = req.SortOrder
	item.IsActive = req.IsActive
	item.UpdatedAt = time.Now()

	if err := s.repo.Gallery.Update(ctx, item); err != nil {
		s.log.Error("Failed to update gallery item", zap.Error(err), zap.String("item_id", itemID))
		return nil, fmt.Errorf("failed to update gallery item")
	}
	return toGalleryResponse(item), nil
}

func (s *galleryService) DeleteItem(ctx context.Context, itemID string) error {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return fmt.Errorf("invalid gallery item ID format %s: %w", itemID, err)
	}
	if err := s.repo.Gallery.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete gallery item", zap.Error(err), zap.String("item_id", itemID))
		return fmt.Errorf("failed to delete gallery item")
	}
	return nil
}

func toGalleryResponses(items []*entity.GalleryItem) []*response.GalleryItemResponse {
	out := make([]*response.GalleryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toGalleryResponse(item))
	}
	return out
}

func toGalleryResponse(item *entity.GalleryItem) *response.GalleryItemResponse {
	return &response.GalleryItemResponse{
		ID:        item.ID.String(),
		Title:     item.Title,
		ImageURL:  item.ImageURL,
		Category:  item.Category,
		SortOrder: item.SortOrder,
		IsActive:  item.IsActive,
	}
}
