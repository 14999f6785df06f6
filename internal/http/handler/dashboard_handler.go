package handler

import (
	"net/http"

	"github.com/lexfirm/backoffice-api/internal/mapper"
	"github.com/lexfirm/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetStats godoc
// @Summary Dashboard statistics
// @Description Revenue, commissions and case counts derived from the current records
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardStatsDTO
// @Failure 500 {object} domain.APIError
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToDashboardStatsDTO(stats))
}

// GetRanking godoc
// @Summary Lawyer ranking
// @Description Lawyers ordered by contracted amount, highest first
// @Tags Dashboard
// @Produce json
// @Success 200 {array} domain.LawyerRankingDTO
// @Failure 500 {object} domain.APIError
// @Router /dashboard/ranking [get]
func (h *DashboardHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.dashboardService.GetRanking(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToLawyerRankingDTOs(ranking))
}
