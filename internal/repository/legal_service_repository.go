package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/domain"
)

type LegalServiceRepository struct {
	gw *Gateway
}

func NewLegalServiceRepository(gw *Gateway) *LegalServiceRepository {
	return &LegalServiceRepository{gw: gw}
}

func (r *LegalServiceRepository) List(ctx context.Context) ([]domain.LegalService, error) {
	var services []domain.LegalService
	if err := r.gw.FetchAll(ctx, domain.TableLegalServices, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// ListActive returns the services offered for new cases, by name
func (r *LegalServiceRepository) ListActive(ctx context.Context) ([]domain.LegalService, error) {
	var services []domain.LegalService
	err := r.gw.FetchAll(ctx, domain.TableLegalServices, &services,
		Where("is_active = ?", true),
		OrderBy("name ASC"),
	)
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *LegalServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LegalService, error) {
	var service domain.LegalService
	if err := r.gw.FetchOne(ctx, domain.TableLegalServices, id, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *LegalServiceRepository) Create(ctx context.Context, service *domain.LegalService) error {
	return r.gw.Insert(ctx, domain.TableLegalServices, service)
}

func (r *LegalServiceRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.LegalService, error) {
	var service domain.LegalService
	if err := r.gw.Update(ctx, domain.TableLegalServices, id, fields, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *LegalServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.gw.Delete(ctx, domain.TableLegalServices, id)
}
