package service_test

import (
	"testing"

	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_DefaultsAndUpdate(t *testing.T) {
	s := setupServices(t)

	settings, err := s.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "MXN", settings.Currency)
	assert.True(t, settings.NotifyCaseCreated)

	name := "Torres & Vega Abogados"
	off := false
	updated, err := s.settings.Update(ctx, &domain.UpdateFirmSettingsRequest{
		FirmName:          &name,
		NotifyCaseCreated: &off,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.FirmName)
	assert.False(t, updated.NotifyCaseCreated)
	assert.True(t, updated.NotifyCommissionPaid)

	title, _ := s.lastNotification(t)
	assert.Equal(t, "Configuración guardada exitosamente", title)

	cached, err := s.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, name, cached.FirmName)
}

func TestSettingsService_Validation(t *testing.T) {
	s := setupServices(t)

	currency := "PESOS"
	_, err := s.settings.Update(ctx, &domain.UpdateFirmSettingsRequest{Currency: &currency})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "currency")
}
