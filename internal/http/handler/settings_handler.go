package handler

import (
	"net/http"

	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/mapper"
	"github.com/lexfirm/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// Get godoc
// @Summary Firm settings
// @Tags Settings
// @Produce json
// @Success 200 {object} domain.FirmSettingsDTO
// @Failure 500 {object} domain.APIError
// @Router /settings [get]
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToFirmSettingsDTO(settings))
}

// Update godoc
// @Summary Save firm settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body domain.UpdateFirmSettingsRequest true "Changed settings"
// @Success 200 {object} domain.FirmSettingsDTO
// @Failure 400 {object} domain.APIError
// @Router /settings [put]
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateFirmSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	settings, err := h.settingsService.Update(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToFirmSettingsDTO(settings))
}
