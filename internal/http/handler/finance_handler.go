package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/mapper"
	"github.com/lexfirm/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type FinanceHandler struct {
	dashboardService  *service.DashboardService
	commissionService *service.CommissionService
	reportService     *service.ReportService
	logger            *zap.Logger
	now               func() time.Time
}

func NewFinanceHandler(
	dashboardService *service.DashboardService,
	commissionService *service.CommissionService,
	reportService *service.ReportService,
	logger *zap.Logger,
) *FinanceHandler {
	return &FinanceHandler{
		dashboardService:  dashboardService,
		commissionService: commissionService,
		reportService:     reportService,
		logger:            logger,
		now:               time.Now,
	}
}

// GetSummary godoc
// @Summary Finance summary
// @Description Statistics plus the pending and liquidated commissions
// @Tags Finances
// @Produce json
// @Success 200 {object} domain.FinanceSummaryDTO
// @Failure 500 {object} domain.APIError
// @Router /finances/summary [get]
func (h *FinanceHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.GetFinanceSummary(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToFinanceSummaryDTO(summary))
}

// LiquidateOne godoc
// @Summary Liquidate commission
// @Description Marks the case commission and every lawyer share paid. Repeating the call is harmless.
// @Tags Finances
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} domain.CaseDTO
// @Failure 404 {object} domain.APIError
// @Router /finances/commissions/{id}/liquidate [post]
func (h *FinanceHandler) LiquidateOne(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	c, err := h.commissionService.LiquidateOne(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToCaseDTO(c))
}

// LiquidateLawyer godoc
// @Summary Liquidate a lawyer share
// @Description Marks one lawyer's share paid. The case is paid once every share is.
// @Tags Finances
// @Produce json
// @Param id path string true "Case ID"
// @Param lawyerId path string true "Lawyer ID"
// @Success 200 {object} domain.CaseDTO
// @Failure 404 {object} domain.APIError
// @Router /finances/commissions/{id}/lawyers/{lawyerId}/liquidate [post]
func (h *FinanceHandler) LiquidateLawyer(w http.ResponseWriter, r *http.Request) {
	caseID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	lawyerID, ok := uuidParam(w, r, "lawyerId")
	if !ok {
		return
	}
	c, err := h.commissionService.LiquidateLawyer(r.Context(), caseID, lawyerID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToCaseDTO(c))
}

// LiquidateAll godoc
// @Summary Liquidate commissions in bulk
// @Description Liquidates the given cases one after another, or every pending one when caseIds is absent. An explicit empty list liquidates nothing. Answers 207 when some fail.
// @Tags Finances
// @Accept json
// @Produce json
// @Param request body domain.LiquidateAllRequest false "Cases to liquidate"
// @Success 200 {object} domain.LiquidationResult
// @Success 207 {object} domain.LiquidationResult
// @Failure 400 {object} domain.APIError
// @Router /finances/commissions/liquidate-all [post]
func (h *FinanceHandler) LiquidateAll(w http.ResponseWriter, r *http.Request) {
	var req domain.LiquidateAllRequest
	if r.Body != nil {
		if err := decodeOptionalJSON(r.Body, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	// Only an absent list means "every pending case"; an explicit [] writes nothing
	var result *domain.LiquidationResult
	if req.CaseIDs == nil {
		var err error
		result, err = h.commissionService.LiquidatePending(r.Context())
		if err != nil {
			respondServiceError(w, h.logger, err)
			return
		}
	} else {
		result = h.commissionService.LiquidateAll(r.Context(), req.CaseIDs)
	}

	status := http.StatusOK
	if result.Failed > 0 {
		status = http.StatusMultiStatus
	}
	respondJSON(w, status, result)
}

// Export godoc
// @Summary Export finances
// @Description Spreadsheet with the summary, pending and liquidated commissions and the lawyer ranking
// @Tags Finances
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {object} domain.APIError
// @Router /finances/export.xlsx [get]
func (h *FinanceHandler) Export(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	data, err := h.reportService.RenderFinanceReport(r.Context(), now)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", service.ReportContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.ReportFilename(now)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// decodeOptionalJSON accepts an empty body
func decodeOptionalJSON(body io.Reader, target interface{}) error {
	err := json.NewDecoder(body).Decode(target)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
