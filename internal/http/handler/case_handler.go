package handler

import (
	"net/http"

	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/mapper"
	"github.com/lexfirm/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type CaseHandler struct {
	caseService *service.CaseService
	logger      *zap.Logger
}

func NewCaseHandler(caseService *service.CaseService, logger *zap.Logger) *CaseHandler {
	return &CaseHandler{
		caseService: caseService,
		logger:      logger,
	}
}

// List godoc
// @Summary List cases
// @Description Every case with client, service and lawyers, newest first
// @Tags Cases
// @Produce json
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.CaseDTO}
// @Failure 500 {object} domain.APIError
// @Router /cases [get]
func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	cases, err := h.caseService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.PaginatedResponse{Data: mapper.ToCaseDTOs(cases), Total: len(cases)})
}

// NextNumber godoc
// @Summary Preview case number
// @Description The number the next opened case will receive. It is not reserved.
// @Tags Cases
// @Produce json
// @Success 200 {object} domain.CaseNumberPreviewDTO
// @Failure 500 {object} domain.APIError
// @Router /cases/next-number [get]
func (h *CaseHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.caseService.NextCaseNumber(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.CaseNumberPreviewDTO{CaseNumber: number})
}

// GetByID godoc
// @Summary Get case
// @Tags Cases
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} domain.CaseDTO
// @Failure 404 {object} domain.APIError
// @Router /cases/{id} [get]
func (h *CaseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	c, err := h.caseService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToCaseDTO(c))
}

// Create godoc
// @Summary Open case
// @Description Either clientId or an inline client is required. The total defaults to the service base price.
// @Tags Cases
// @Accept json
// @Produce json
// @Param request body domain.CreateCaseRequest true "Case data"
// @Success 201 {object} domain.CaseDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /cases [post]
func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.caseService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.Header().Set("Location", "/api/v1/cases/"+c.ID.String())
	respondJSON(w, http.StatusCreated, mapper.ToCaseDTO(c))
}

// Update godoc
// @Summary Update case
// @Description Only the fields present in the body change. commissionPaid accepts only true.
// @Tags Cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param request body domain.UpdateCaseRequest true "Changed fields"
// @Success 200 {object} domain.CaseDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /cases/{id} [put]
func (h *CaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req domain.UpdateCaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.caseService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToCaseDTO(c))
}

// Recalculate godoc
// @Summary Recalculate commission
// @Description Recomputes the commission from the case total and the service percentage
// @Tags Cases
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} domain.CaseDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /cases/{id}/recalculate [post]
func (h *CaseHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	c, err := h.caseService.RecalculateCommission(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToCaseDTO(c))
}

// Delete godoc
// @Summary Delete case
// @Tags Cases
// @Param id path string true "Case ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /cases/{id} [delete]
func (h *CaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.caseService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
