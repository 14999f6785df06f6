package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/lexfirm/backoffice-api/internal/cache"
	"github.com/lexfirm/backoffice-api/internal/repository"
	"github.com/lexfirm/backoffice-api/internal/service"
	"github.com/lexfirm/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type services struct {
	db            *gorm.DB
	notifications *service.NotificationService
	lawyers       *service.LawyerService
	clients       *service.ClientService
	legal         *service.LegalServiceService
	cases         *service.CaseService
	commissions   *service.CommissionService
	dashboard     *service.DashboardService
	settings      *service.SettingsService
	reports       *service.ReportService
}

func setupServices(t *testing.T) *services {
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
	cases := service.NewCaseService(
		repository.NewCaseRepository(gw),
		clients,
		legal,
		lawyers,
		numbers,
		queryCache,
		notifications,
		time.UTC,
		logger,
	)
	dashboard := service.NewDashboardService(cases, lawyers, clients, time.UTC, logger)

	return &services{
		db:            db,
		notifications: notifications,
		lawyers:       lawyers,
		clients:       clients,
		legal:         legal,
		cases:         cases,
		commissions:   service.NewCommissionService(cases, notifications, logger),
		dashboard:     dashboard,
		settings:      service.NewSettingsService(repository.NewSettingsRepository(gw), queryCache, notifications, logger),
		reports:       service.NewReportService(dashboard, logger),
	}
}

// lastNotification returns the newest entry in the feed
func (s *services) lastNotification(t *testing.T) (title, description string) {
	t.Helper()
	feed := s.notifications.Recent(0)
	require.NotEmpty(t, feed)
	n := feed[len(feed)-1]
	return n.Title, n.Description
}

var ctx = context.Background()
