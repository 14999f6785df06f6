package handler

import (
	"net/http"

	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/mapper"
	"github.com/lexfirm/backoffice-api/internal/service"
	"go.uber.org/zap"
)

// LegalServiceHandler serves the catalog of services the firm sells
type LegalServiceHandler struct {
	legalService *service.LegalServiceService
	logger       *zap.Logger
}

func NewLegalServiceHandler(legalService *service.LegalServiceService, logger *zap.Logger) *LegalServiceHandler {
	return &LegalServiceHandler{
		legalService: legalService,
		logger:       logger,
	}
}

// List godoc
// @Summary List services
// @Tags Services
// @Produce json
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.LegalServiceDTO}
// @Failure 500 {object} domain.APIError
// @Router /services [get]
func (h *LegalServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.legalService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.PaginatedResponse{Data: mapper.ToLegalServiceDTOs(services), Total: len(services)})
}

// ListActive godoc
// @Summary List active services
// @Description Services offered when opening a case
// @Tags Services
// @Produce json
// @Success 200 {array} domain.LegalServiceDTO
// @Failure 500 {object} domain.APIError
// @Router /services/active [get]
func (h *LegalServiceHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	services, err := h.legalService.ListActive(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToLegalServiceDTOs(services))
}

// GetByID godoc
// @Summary Get service
// @Tags Services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} domain.LegalServiceDTO
// @Failure 404 {object} domain.APIError
// @Router /services/{id} [get]
func (h *LegalServiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	svc, err := h.legalService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToLegalServiceDTO(svc))
}

// Create godoc
// @Summary Create service
// @Tags Services
// @Accept json
// @Produce json
// @Param request body domain.CreateLegalServiceRequest true "Service data"
// @Success 201 {object} domain.LegalServiceDTO
// @Failure 400 {object} domain.APIError
// @Router /services [post]
func (h *LegalServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLegalServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	svc, err := h.legalService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.Header().Set("Location", "/api/v1/services/"+svc.ID.String())
	respondJSON(w, http.StatusCreated, mapper.ToLegalServiceDTO(svc))
}

// Update godoc
// @Summary Update service
// @Description Existing cases keep their commission
// @Tags Services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body domain.UpdateLegalServiceRequest true "Changed fields"
// @Success 200 {object} domain.LegalServiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /services/{id} [put]
func (h *LegalServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req domain.UpdateLegalServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	svc, err := h.legalService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToLegalServiceDTO(svc))
}

// Delete godoc
// @Summary Delete service
// @Tags Services
// @Param id path string true "Service ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /services/{id} [delete]
func (h *LegalServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.legalService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
