package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/domain"
)

type LawyerRepository struct {
	gw *Gateway
}

func NewLawyerRepository(gw *Gateway) *LawyerRepository {
	return &LawyerRepository{gw: gw}
}

func (r *LawyerRepository) List(ctx context.Context) ([]domain.Lawyer, error) {
	var lawyers []domain.Lawyer
	if err := r.gw.FetchAll(ctx, domain.TableLawyers, &lawyers); err != nil {
		return nil, err
	}
	return lawyers, nil
}

// ListActive returns the lawyers that can receive new assignments, by name
func (r *LawyerRepository) ListActive(ctx context.Context) ([]domain.Lawyer, error) {
	var lawyers []domain.Lawyer
	err := r.gw.FetchAll(ctx, domain.TableLawyers, &lawyers,
		Where("status = ?", domain.LawyerStatusActive),
		OrderBy("name ASC"),
	)
	if err != nil {
		return nil, err
	}
	return lawyers, nil
}

func (r *LawyerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lawyer, error) {
	var lawyer domain.Lawyer
	if err := r.gw.FetchOne(ctx, domain.TableLawyers, id, &lawyer); err != nil {
		return nil, err
	}
	return &lawyer, nil
}

func (r *LawyerRepository) Create(ctx context.Context, lawyer *domain.Lawyer) error {
	return r.gw.Insert(ctx, domain.TableLawyers, lawyer)
}

func (r *LawyerRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.Lawyer, error) {
	var lawyer domain.Lawyer
	if err := r.gw.Update(ctx, domain.TableLawyers, id, fields, &lawyer); err != nil {
		return nil, err
	}
	return &lawyer, nil
}

func (r *LawyerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.gw.Delete(ctx, domain.TableLawyers, id)
}
