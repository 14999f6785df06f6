package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/cache"
	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/repository"
	"go.uber.org/zap"
)

// LegalServiceService manages the catalog of services offered by the firm
type LegalServiceService struct {
	repo     *repository.LegalServiceRepository
	cache    *cache.QueryCache
	notifier Notifier
	logger   *zap.Logger
}

func NewLegalServiceService(
	repo *repository.LegalServiceRepository,
	queryCache *cache.QueryCache,
	notifier Notifier,
	logger *zap.Logger,
) *LegalServiceService {
	return &LegalServiceService{
		repo:     repo,
		cache:    queryCache,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *LegalServiceService) List(ctx context.Context) ([]domain.LegalService, error) {
	return cache.GetOrFetch(ctx, s.cache, cache.Key{Entity: entityServices}, s.repo.List)
}

// ListActive returns the services offered for new cases
func (s *LegalServiceService) ListActive(ctx context.Context) ([]domain.LegalService, error) {
	return cache.GetOrFetch(ctx, s.cache, cache.Key{Entity: entityServices, Params: "is_active=true"}, s.repo.ListActive)
}

func (s *LegalServiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.LegalService, error) {
	service, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return service, nil
}

func (s *LegalServiceService) Create(ctx context.Context, req *domain.CreateLegalServiceRequest) (*domain.LegalService, error) {
	if err := validateRequest(req); err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}
	if err := nonNegative("basePrice", req.BasePrice); err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}
	if err := percentage("commissionPercentage", req.CommissionPercentage); err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}

	commissionType := req.CommissionType
	if commissionType == "" {
		commissionType = domain.CommissionTypeVariable
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	service := &domain.LegalService{
		Name:                 req.Name,
		Description:          req.Description,
		Category:             req.Category,
		BasePrice:            req.BasePrice.Round(2),
		CommissionPercentage: req.CommissionPercentage.Round(2),
		CommissionType:       commissionType,
		IsActive:             isActive,
	}

	if err := s.repo.Create(ctx, service); err != nil {
		return nil, notifyFailure(ctx, s.notifier, fmt.Errorf("failed to create service: %w", err))
	}

	s.cache.Invalidate(entityServices)
	s.notifier.Success(ctx, "Servicio creado", service.Name)
	s.logger.Info("legal service created", zap.String("service_id", service.ID.String()))

	return service, nil
}

// Update changes a catalog entry. Existing cases keep the commission they
// were created with.
func (s *LegalServiceService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateLegalServiceRequest) (*domain.LegalService, error) {
	if err := validateRequest(req); err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.BasePrice != nil {
		if err := nonNegative("basePrice", *req.BasePrice); err != nil {
			return nil, notifyFailure(ctx, s.notifier, err)
		}
		fields["base_price"] = req.BasePrice.Round(2)
	}
	if req.CommissionPercentage != nil {
		if err := percentage("commissionPercentage", *req.CommissionPercentage); err != nil {
			return nil, notifyFailure(ctx, s.notifier, err)
		}
		fields["commission_percentage"] = req.CommissionPercentage.Round(2)
	}
	if req.CommissionType != nil {
		fields["commission_type"] = *req.CommissionType
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	service, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, notifyFailure(ctx, s.notifier, fmt.Errorf("failed to update service: %w", err))
	}

	s.cache.Invalidate(entityServices, entityCases)
	s.notifier.Success(ctx, "Servicio actualizado", service.Name)

	return service, nil
}

func (s *LegalServiceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notifyFailure(ctx, s.notifier, fmt.Errorf("failed to delete service: %w", err))
	}

	s.cache.Invalidate(entityServices, entityCases)
	s.notifier.Success(ctx, "Servicio eliminado", "")
	return nil
}
