package handler

import (
	"net/http"

	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/mapper"
	"github.com/lexfirm/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type LawyerHandler struct {
	lawyerService *service.LawyerService
	logger        *zap.Logger
}

func NewLawyerHandler(lawyerService *service.LawyerService, logger *zap.Logger) *LawyerHandler {
	return &LawyerHandler{
		lawyerService: lawyerService,
		logger:        logger,
	}
}

// List godoc
// @Summary List lawyers
// @Description Get every lawyer, newest first
// @Tags Lawyers
// @Produce json
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.LawyerDTO}
// @Failure 500 {object} domain.APIError
// @Router /lawyers [get]
func (h *LawyerHandler) List(w http.ResponseWriter, r *http.Request) {
	lawyers, err := h.lawyerService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.PaginatedResponse{Data: mapper.ToLawyerDTOs(lawyers), Total: len(lawyers)})
}

// ListActive godoc
// @Summary List active lawyers
// @Description Lawyers that can be assigned to new cases
// @Tags Lawyers
// @Produce json
// @Success 200 {array} domain.LawyerDTO
// @Failure 500 {object} domain.APIError
// @Router /lawyers/active [get]
func (h *LawyerHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	lawyers, err := h.lawyerService.ListActive(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToLawyerDTOs(lawyers))
}

// GetByID godoc
// @Summary Get lawyer
// @Tags Lawyers
// @Produce json
// @Param id path string true "Lawyer ID"
// @Success 200 {object} domain.LawyerDTO
// @Failure 404 {object} domain.APIError
// @Router /lawyers/{id} [get]
func (h *LawyerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	lawyer, err := h.lawyerService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToLawyerDTO(lawyer))
}

// Create godoc
// @Summary Register lawyer
// @Tags Lawyers
// @Accept json
// @Produce json
// @Param request body domain.CreateLawyerRequest true "Lawyer data"
// @Success 201 {object} domain.LawyerDTO
// @Failure 400 {object} domain.APIError
// @Router /lawyers [post]
func (h *LawyerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLawyerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lawyer, err := h.lawyerService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.Header().Set("Location", "/api/v1/lawyers/"+lawyer.ID.String())
	respondJSON(w, http.StatusCreated, mapper.ToLawyerDTO(lawyer))
}

// Update godoc
// @Summary Update lawyer
// @Description Only the fields present in the body change
// @Tags Lawyers
// @Accept json
// @Produce json
// @Param id path string true "Lawyer ID"
// @Param request body domain.UpdateLawyerRequest true "Changed fields"
// @Success 200 {object} domain.LawyerDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /lawyers/{id} [put]
func (h *LawyerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req domain.UpdateLawyerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lawyer, err := h.lawyerService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToLawyerDTO(lawyer))
}

// Delete godoc
// @Summary Delete lawyer
// @Tags Lawyers
// @Param id path string true "Lawyer ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /lawyers/{id} [delete]
func (h *LawyerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.lawyerService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
