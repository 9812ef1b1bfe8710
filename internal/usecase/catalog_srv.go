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

type CatalogService interface {
	// Public
	GetPackages(ctx context.Context) ([]*response.PackageResponse, error)
	GetPackageByID(ctx context.Context, packageID string) (*response.PackageResponse, error)
	GetLocations(ctx context.Context) ([]*response.LocationResponse, error)

	// Admin
	GetAllPackages(ctx context.Context) ([]*response.PackageResponse, error)
	CreatePackage(ctx context.Context, req *request.CreatePackageRequest) (*response.PackageResponse, error)
	UpdatePackage(ctx context.Context, packageID string, req *request.UpdatePackageRequest) (*response.PackageResponse, error)
	DeletePackage(ctx context.Context, packageID string) error
	CreateAddOn(ctx context.Context, packageID string, req *request.CreateAddOnRequest) (*response.AddOnResponse, error)
	DeleteAddOn(ctx context.Context, addOnID string) error
	GetAllLocations(ctx context.Context) ([]*response.LocationResponse, error)
	CreateLocation(ctx context.Context, req *request.CreateLocationRequest) (*response.LocationResponse, error)
	UpdateLocation(ctx context.Context, locationID string, req *request.UpdateLocationRequest) (*response.LocationResponse, error)
	DeleteLocation(ctx context.Context, locationID string) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetPackages(ctx context.Context) ([]*response.PackageResponse, error) {
	packages, err := s.repo.Package.FindAllActive(ctx)
	if err != nil {
		s.log.Error("Failed to list packages", zap.Error(err))
		return nil, fmt.Errorf("failed to list packages")
	}
	return s.toPackageResponses(ctx, packages), nil
}

func (s *catalogService) GetAllPackages(ctx context.Context) ([]*response.PackageResponse, error) {
	packages, err := s.repo.Package.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list packages", zap.Error(err))
		return nil, fmt.Errorf("failed to list packages")
	}
	return s.toPackageResponses(ctx, packages), nil
}

func (s *catalogService) GetPackageByID(ctx context.Context, packageID string) (*response.PackageResponse, error) {
	id, err := uuid.Parse(packageID)
	if err != nil {
		return nil, fmt.Errorf("invalid package ID format %s: %w", packageID, err)
	}
	pkg, err := s.repo.Package.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find package", zap.Error(err), zap.String("package_id", packageID))
		return nil, fmt.Errorf("failed to find package")
	}
	if pkg == nil {
		return nil, fmt.Errorf("package %s not found", packageID)
	}
	return s.toPackageResponse(ctx, pkg), nil
}

func (s *catalogService) CreatePackage(ctx context.Context, req *request.CreatePackageRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create package validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	pkg := &entity.PhotoPackage{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		PhotoCount:      req.PhotoCount,
		IsActive:        req.IsActive,
	}
	if err := s.repo.Package.Create(ctx, pkg); err != nil {
		s.log.Error("Failed to create package", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create package")
	}

	s.log.Info("Package created", zap.String("package_id", pkg.ID.String()), zap.String("name", pkg.Name))
	return s.toPackageResponse(ctx, pkg), nil
}

func (s *catalogService) UpdatePackage(ctx context.Context, packageID string, req *request.UpdatePackageRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(packageID)
	if err != nil {
		return nil, fmt.Errorf("invalid package ID format %s: %w", packageID, err)
	}

	pkg, err := s.repo.Package.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find package", zap.Error(err), zap.String("package_id", packageID))
		return nil, fmt.Errorf("failed to find package")
	}
	if pkg == nil {
		return nil, fmt.Errorf("package %s not found", packageID)
	}

	pkg.Name = req.Name
	pkg.Description = req.Description
	pkg.Price = req.Price
	pkg.DurationMinutes = req.DurationMinutes
	pkg.PhotoCount = req.PhotoCount
	pkg.IsActive = req.IsActive
	pkg.UpdatedAt = time.Now()

	if err := s.repo.Package.Update(ctx, pkg); err != nil {
		s.log.Error("Failed to update package", zap.Error(err), zap.String("package_id", packageID))
		return nil, fmt.Errorf("failed to update package")
	}
	return s.toPackageResponse(ctx, pkg), nil
}

func (s *catalogService) DeletePackage(ctx context.Context, packageID string) error {
	id, err := uuid.Parse(packageID)
	if err != nil {
		return fmt.Errorf("invalid package ID format %s: %w", packageID, err)
	}
	if err := s.repo.Package.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete package", zap.Error(err), zap.String("package_id", packageID))
		return fmt.Errorf("failed to delete package")
	}
	s.log.Info("Package deleted", zap.String("package_id", packageID))
	return nil
}

func (s *catalogService) CreateAddOn(ctx context.Context, packageID string, req *request.CreateAddOnRequest) (*response.AddOnResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(packageID)
	if err != nil {
		return nil, fmt.Errorf("invalid package ID format %s: %w", packageID, err)
	}

	pkg, err := s.repo.Package.FindByID(ctx, id)
	if err != nil || pkg == nil {
		return nil, fmt.Errorf("package %s not found", packageID)
	}

	now := time.Now()
	addOn := &entity.AddOn{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PackageID: id,
		Name:      req.Name,
		Price:     req.Price,
		IsActive:  req.IsActive,
	}
	if err := s.repo.AddOn.Create(ctx, addOn); err != nil {
		s.log.Error("Failed to create add-on", zap.Error(err), zap.String("package_id", packageID))
		return nil, fmt.Errorf("failed to create add-on")
	}

	return &response.AddOnResponse{
		ID:       addOn.ID.String(),
		Name:     addOn.Name,
		Price:    addOn.Price,
		IsActive: addOn.IsActive,
	}, nil
}

func (s *catalogService) DeleteAddOn(ctx context.Context, addOnID string) error {
	id, err := uuid.Parse(addOnID)
	if err != nil {
		return fmt.Errorf("invalid add-on ID format %s: %w", addOnID, err)
	}
	if err := s.repo.AddOn.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete add-on", zap.Error(err), zap.String("addon_id", addOnID))
		return fmt.Errorf("failed to delete add-on")
	}
	return nil
}

func (s *catalogService) GetLocations(ctx context.Context) ([]*response.LocationResponse, error) {
	locations, err := s.repo.Location.FindAllActive(ctx)
	if err != nil {
		s.log.Error("Failed to list locations", zap.Error(err))
		return nil, fmt.Errorf("failed to list locations")
	}
	return toLocationResponses(locations), nil
}

func (s *catalogService) GetAllLocations(ctx context.Context) ([]*response.LocationResponse, error) {
	locations, err := s.repo.Location.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list locations", zap.Error(err))
		return nil, fmt.Errorf("failed to list locations")
	}
	return toLocationResponses(locations), nil
}

func (s *catalogService) CreateLocation(ctx context.Context, req *request.CreateLocationRequest) (*response.LocationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	location := &entity.Location{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Address:  req.Address,
		Fee:      req.Fee,
		IsActive: req.IsActive,
	}
	if err := s.repo.Location.Create(ctx, location); err != nil {
		s.log.Error("Failed to create location", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create location")
	}

	s.log.Info("Location created", zap.String("location_id", location.ID.String()))
	return toLocationResponse(location), nil
}

func (s *catalogService) UpdateLocation(ctx context.Context, locationID string, req *request.UpdateLocationRequest) (*response.LocationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(locationID)
	if err != nil {
		return nil, fmt.Errorf("invalid location ID format %s: %w", locationID, err)
	}

	location, err := s.repo.Location.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find location", zap.Error(err), zap.String("location_id", locationID))
		return nil, fmt.Errorf("failed to find location")
	}
	if location == nil {
		return nil, fmt.Errorf("location %s not found", locationID)
	}

	location.Name = req.Name
	location.Address = req.Address
	location.Fee = req.Fee
	location.IsActive = req.IsActive
	location.UpdatedAt = time.Now()

	if err := s.repo.Location.Update(ctx, location); err != nil {
		s.log.Error("Failed to update location", zap.Error(err), zap.String("location_id", locationID))
		return nil, fmt.Errorf("failed to update location")
	}
	return toLocationResponse(location), nil
}

func (s *catalogService) DeleteLocation(ctx context.Context, locationID string) error {
	id, err := uuid.Parse(locationID)
	if err != nil {
		return fmt.Errorf("invalid location ID format %s: %w", locationID, err)
	}
	if err := s.repo.Location.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete location", zap.Error(err), zap.String("location_id", locationID))
		return fmt.Errorf("failed to delete location")
	}
	return nil
}

// ==================== HELPER METHODS ====================

func (s *catalogService) toPackageResponses(ctx context.Context, packages []*entity.PhotoPackage) []*response.PackageResponse {
	out := make([]*response.PackageResponse, 0, len(packages))
	for _, pkg := range packages {
		out = append(out, s.toPackageResponse(ctx, pkg))
	}
	return out
}

func (s *catalogService) toPackageResponse(ctx context.Context, pkg *entity.PhotoPackage) *response.PackageResponse {
	resp := &response.PackageResponse{
		ID:              pkg.ID.String(),
		Name:            pkg.Name,
		Description:     pkg.Description,
		Price:           pkg.Price,
		DurationMinutes: pkg.DurationMinutes,
		PhotoCount:      pkg.PhotoCount,
		IsActive:        pkg.IsActive,
		CreatedAt:       pkg.CreatedAt,
	}

	addOns, err := s.repo.AddOn.FindByPackageID(ctx, pkg.ID)
	if err != nil {
		s.log.Warn("Failed to load add-ons", zap.Error(err), zap.String("package_id", pkg.ID.String()))
		return resp
	}
	for _, a := range addOns {
		resp.AddOns = append(resp.AddOns, response.AddOnResponse{
			ID:       a.ID.String(),
			Name:     a.Name,
			Price:    a.Price,
			IsActive: a.IsActive,
		})
	}
	return resp
}

func toLocationResponses(locations []*entity.Location) []*response.LocationResponse {
	out := make([]*response.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, toLocationResponse(l))
	}
	return out
}

func toLocationResponse(l *entity.Location) *response.LocationResponse {
	return &response.LocationResponse{
		ID:       l.ID.String(),
		Name:     l.Name,
		Address:  l.Address,
		Fee:      l.Fee,
		IsActive: l.IsActive,
	}
}
