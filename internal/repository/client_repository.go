package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/domain"
)

type ClientRepository struct {
	gw *Gateway
}

func NewClientRepository(gw *Gateway) *ClientRepository {
	return &ClientRepository{gw: gw}
}

func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	if err := r.gw.FetchAll(ctx, domain.TableClients, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	if err := r.gw.FetchOne(ctx, domain.TableClients, id, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	return r.gw.Insert(ctx, domain.TableClients, client)
}

func (r *ClientRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.Client, error) {
	var client domain.Client
	if err := r.gw.Update(ctx, domain.TableClients, id, fields, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.gw.Delete(ctx, domain.TableClients, id)
}
