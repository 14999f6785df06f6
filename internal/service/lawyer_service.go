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

type LawyerService struct {
	repo     *repository.LawyerRepository
	cache    *cache.QueryCache
	notifier Notifier
	logger   *zap.Logger
}

func NewLawyerService(
	repo *repository.LawyerRepository,
	queryCache *cache.QueryCache,
	notifier Notifier,
	logger *zap.Logger,
) *LawyerService {
	return &LawyerService{
		repo:     repo,
		cache:    queryCache,
		notifier: notifier,
		logger:   logger,
	}
}

// List returns every lawyer, newest first. The slice is shared with the
// cache and must not be modified.
func (s *LawyerService) List(ctx context.Context) ([]domain.Lawyer, error) {
	return cache.GetOrFetch(ctx, s.cache, cache.Key{Entity: entityLawyers}, s.repo.List)
}

// ListActive returns the lawyers offered for new case assignments
func (s *LawyerService) ListActive(ctx context.Context) ([]domain.Lawyer, error) {
	return cache.GetOrFetch(ctx, s.cache, cache.Key{Entity: entityLawyers, Params: "status=active"}, s.repo.ListActive)
}

func (s *LawyerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lawyer, error) {
	lawyer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lawyer: %w", err)
	}
	return lawyer, nil
}

func (s *LawyerService) Create(ctx context.Context, req *domain.CreateLawyerRequest) (*domain.Lawyer, error) {
	if err := validateRequest(req); err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}
	hireDate, err := parseDate("hireDate", req.HireDate)
	if err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}

	status := req.Status
	if status == "" {
		status = domain.LawyerStatusActive
	}
	specialties := req.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	lawyer := &domain.Lawyer{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Specialties: specialties,
		Status:      status,
		HireDate:    hireDate,
	}

	if err := s.repo.Create(ctx, lawyer); err != nil {
		return nil, notifyFailure(ctx, s.notifier, fmt.Errorf("failed to create lawyer: %w", err))
	}

	s.cache.Invalidate(entityLawyers)
	s.notifier.Success(ctx, "Abogado registrado", lawyer.Name)
	s.logger.Info("lawyer created", zap.String("lawyer_id", lawyer.ID.String()))

	return lawyer, nil
}

func (s *LawyerService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateLawyerRequest) (*domain.Lawyer, error) {
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
	if req.Specialties != nil {
		fields["specialties"] = jsonList(req.Specialties)
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.HireDate != nil {
		hireDate, err := parseDate("hireDate", *req.HireDate)
		if err != nil {
			return nil, notifyFailure(ctx, s.notifier, err)
		}
		fields["hire_date"] = hireDate
	}

	lawyer, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, notifyFailure(ctx, s.notifier, fmt.Errorf("failed to update lawyer: %w", err))
	}

	// cases embed the lawyer name
	s.cache.Invalidate(entityLawyers, entityCases)
	s.notifier.Success(ctx, "Abogado actualizado", lawyer.Name)

	return lawyer, nil
}

// Delete removes a lawyer. The store rejects the delete while cases still
// reference the lawyer.
func (s *LawyerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notifyFailure(ctx, s.notifier, fmt.Errorf("failed to delete lawyer: %w", err))
	}

	s.cache.Invalidate(entityLawyers, entityCases)
	s.notifier.Success(ctx, "Abogado eliminado", "")
	s.logger.Info("lawyer deleted", zap.String("lawyer_id", id.String()))
	return nil
}
