package usecase

import (
	"context"
	"fmt"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/response"

	"go.uber.org/zap"
)

type IntegrationService interface {
	GetIntegrations(ctx context.Context) ([]*response.IntegrationResponse, error)
	SetIntegrationActive(ctx context.Context, name string, active bool) error
}

type integrationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewIntegrationService(repo *repository.Repository, log *zap.Logger) IntegrationService {
	return &integrationService{
		repo: repo,
		log:  log.With(zap.String("service", "integration")),
	}
}

func (s *integrationService) GetIntegrations(ctx context.Context) ([]*response.IntegrationResponse, error) {
	integrations, err := s.repo.Integration.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list integrations", zap.Error(err))
		return nil, fmt.Errorf("failed to list integrations")
	}

	out := make([]*response.IntegrationResponse, 0, len(integrations))
	for _, i := range integrations {
		out = append(out, &response.IntegrationResponse{
			ID:       i.ID.String(),
			Name:     i.Name,
			IsActive: i.IsActive,
		})
	}
	return out, nil
}

func (s *integrationService) SetIntegrationActive(ctx context.Context, name string, active bool) error {
	if name != entity.IntegrationIyzico {
		return fmt.Errorf("integration %s not found", name)
	}
	if err := s.repo.Integration.SetActive(ctx, name, active); err != nil {
		s.log.Error("Failed to update integration", zap.Error(err), zap.String("name", name))
		return fmt.Errorf("failed to update integration")
	}

	s.log.Info("Integration updated", zap.String("name", name), zap.Bool("is_active", active))
	return nil
}
