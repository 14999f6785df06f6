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

type ClientService struct {
	repo     *repository.ClientRepository
	cache    *cache.QueryCache
	notifier Notifier
	logger   *zap.Logger
}

func NewClientService(
	repo *repository.ClientRepository,
	queryCache *cache.QueryCache,
	notifier Notifier,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		repo:     repo,
		cache:    queryCache,
		notifier: notifier,
		logger:   logger,
	}
}

// List returns every client, newest first. The slice is shared with the
// cache and must not be modified.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return cache.GetOrFetch(ctx, s.cache, cache.Key{Entity: entityClients}, s.repo.List)
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error) {
	if err := validateRequest(req); err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}

	client := &domain.Client{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Address: req.Address,
		TaxID:   req.TaxID,
		Notes:   req.Notes,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, notifyFailure(ctx, s.notifier, fmt.Errorf("failed to create client: %w", err))
	}

	s.cache.Invalidate(entityClients)
	s.notifier.Success(ctx, "Cliente registrado", client.Name)
	s.logger.Info("client created", zap.String("client_id", client.ID.String()))

	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateClientRequest) (*domain.Client, error) {
	if err := validateRequest(req); err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Company != nil {
		fields["company"] = *req.Company
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.TaxID != nil {
		fields["tax_id"] = *req.TaxID
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	client, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, notifyFailure(ctx, s.notifier, fmt.Errorf("failed to update client: %w", err))
	}

	s.cache.Invalidate(entityClients, entityCases)
	s.notifier.Success(ctx, "Cliente actualizado", client.Name)

	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notifyFailure(ctx, s.notifier, fmt.Errorf("failed to delete client: %w", err))
	}

	s.cache.Invalidate(entityClients, entityCases)
	s.notifier.Success(ctx, "Cliente eliminado", "")
	return nil
}
