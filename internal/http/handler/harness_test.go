package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lexfirm/backoffice-api/internal/cache"
	"github.com/lexfirm/backoffice-api/internal/http/handler"
	"github.com/lexfirm/backoffice-api/internal/repository"
	"github.com/lexfirm/backoffice-api/internal/service"
	"github.com/lexfirm/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testAPI struct {
	db     *gorm.DB
	router chi.Router
}

// setupAPI mounts the handlers on a chi router backed by an in-memory store
func setupAPI(t *testing.T) *testAPI {
	t.Helper()

	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	queryCache, err := cache.New(32, logger)
	require.NoError(t, err)

	gw := repository.NewGateway(db)
	notifications := service.NewNotificationService(50, logger)
	lawyers := service.NewLawyerService(repository.NewLawyerRepository(gw), queryCache, notifications, logger)
	clients := service.NewClientService(repository.NewClientRepository(gw), queryCache, notifications, logger)
	legal := service.NewLegalServiceService(repository.NewLegalServiceRepository(gw), queryCache, notifications, logger)
	numbers := service.NewCaseNumberService(repository.NewNumberSequenceRepository(db), time.UTC, logger)
	cases := service.NewCaseService(repository.NewCaseRepository(gw), clients, legal, lawyers, numbers, queryCache, notifications, time.UTC, logger)
	commissions := service.NewCommissionService(cases, notifications, logger)
	dashboard := service.NewDashboardService(cases, lawyers, clients, time.UTC, logger)
	settings := service.NewSettingsService(repository.NewSettingsRepository(gw), queryCache, notifications, logger)
	reports := service.NewReportService(dashboard, logger)

	lawyerHandler := handler.NewLawyerHandler(lawyers, logger)
	caseHandler := handler.NewCaseHandler(cases, logger)
	financeHandler := handler.NewFinanceHandler(dashboard, commissions, reports, logger)
	settingsHandler := handler.NewSettingsHandler(settings, logger)
	notificationHandler := handler.NewNotificationHandler(notifications, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboard, logger)

	r := chi.NewRouter()
	r.Route("/lawyers", func(r chi.Router) {
		r.Get("/", lawyerHandler.List)
		r.Post("/", lawyerHandler.Create)
		r.Get("/{id}", lawyerHandler.GetByID)
		r.Put("/{id}", lawyerHandler.Update)
		r.Delete("/{id}", lawyerHandler.Delete)
	})
	r.Route("/cases", func(r chi.Router) {
		r.Get("/", caseHandler.List)
		r.Post("/", caseHandler.Create)
		r.Get("/next-number", caseHandler.NextNumber)
		r.Get("/{id}", caseHandler.GetByID)
		r.Put("/{id}", caseHandler.Update)
		r.Delete("/{id}", caseHandler.Delete)
		r.Post("/{id}/recalculate", caseHandler.Recalculate)
	})
	r.Get("/dashboard/stats", dashboardHandler.GetStats)
	r.Get("/dashboard/ranking", dashboardHandler.GetRanking)
	r.Route("/finances", func(r chi.Router) {
		r.Get("/summary", financeHandler.GetSummary)
		r.Get("/export.xlsx", financeHandler.Export)
		r.Post("/commissions/liquidate-all", financeHandler.LiquidateAll)
		r.Post("/commissions/{id}/liquidate", financeHandler.LiquidateOne)
		r.Post("/commissions/{id}/lawyers/{lawyerId}/liquidate", financeHandler.LiquidateLawyer)
	})
	r.Get("/settings", settingsHandler.Get)
	r.Put("/settings", settingsHandler.Update)
	r.Get("/notifications", notificationHandler.List)

	return &testAPI{db: db, router: r}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), target), rr.Body.String())
}
