package repository

import (
	"context"

	"github.com/lexfirm/backoffice-api/internal/domain"
)

// SettingsRepository reads and writes the single firm settings row
type SettingsRepository struct {
	gw *Gateway
}

func NewSettingsRepository(gw *Gateway) *SettingsRepository {
	return &SettingsRepository{gw: gw}
}

// Get returns the settings row, creating it with defaults on first use
func (r *SettingsRepository) Get(ctx context.Context) (*domain.FirmSettings, error) {
	var rows []domain.FirmSettings
	if err := r.gw.FetchAll(ctx, domain.TableFirmSettings, &rows, OrderBy("created_at ASC")); err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return &rows[0], nil
	}

	settings := domain.DefaultFirmSettings()
	if err := r.gw.Insert(ctx, domain.TableFirmSettings, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update applies fields to the settings row
func (r *SettingsRepository) Update(ctx context.Context, fields map[string]interface{}) (*domain.FirmSettings, error) {
	current, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return current, nil
	}

	var updated domain.FirmSettings
	if err := r.gw.Update(ctx, domain.TableFirmSettings, current.ID, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
