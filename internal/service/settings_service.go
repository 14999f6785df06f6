package service

import (
	"context"
	"fmt"

	"github.com/lexfirm/backoffice-api/internal/cache"
	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/repository"
	"go.uber.org/zap"
)

// SettingsService manages the firm-wide preferences
type SettingsService struct {
	repo     *repository.SettingsRepository
	cache    *cache.QueryCache
	notifier Notifier
	logger   *zap.Logger
}

func NewSettingsService(
	repo *repository.SettingsRepository,
	queryCache *cache.QueryCache,
	notifier Notifier,
	logger *zap.Logger,
) *SettingsService {
	return &SettingsService{
		repo:     repo,
		cache:    queryCache,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *SettingsService) Get(ctx context.Context) (*domain.FirmSettings, error) {
	return cache.GetOrFetch(ctx, s.cache, cache.Key{Entity: entitySettings}, s.repo.Get)
}

func (s *SettingsService) Update(ctx context.Context, req *domain.UpdateFirmSettingsRequest) (*domain.FirmSettings, error) {
	if err := validateRequest(req); err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}

	fields := map[string]interface{}{}
	if req.FirmName != nil {
		fields["firm_name"] = *req.FirmName
	}
	if req.TaxID != nil {
		fields["tax_id"] = *req.TaxID
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if req.Locale != nil {
		fields["locale"] = *req.Locale
	}
	if req.NotifyCaseCreated != nil {
		fields["notify_case_created"] = *req.NotifyCaseCreated
	}
	if req.NotifyCommissionPaid != nil {
		fields["notify_commission_paid"] = *req.NotifyCommissionPaid
	}
	if req.BackupFrequency != nil {
		fields["backup_frequency"] = *req.BackupFrequency
	}

	settings, err := s.repo.Update(ctx, fields)
	if err != nil {
		return nil, notifyFailure(ctx, s.notifier, fmt.Errorf("failed to save settings: %w", err))
	}

	s.cache.Invalidate(entitySettings)
	s.notifier.Success(ctx, "Configuración guardada exitosamente", "")
	return settings, nil
}
