package service_test

import (
	"testing"
	"time"

	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_GetStats(t *testing.T) {
	s := setupServices(t)
	ana := testutil.CreateTestLawyer(t, s.db, "Ana Torres")
	testutil.CreateTestLawyer(t, s.db, "Luis Vega")
	client := testutil.CreateTestClient(t, s.db, "Grupo Norte")
	svc := testutil.CreateTestService(t, s.db, "Litigio", 1000, 10)

	now := time.Now().UTC()
	lastYear := now.AddDate(-1, 0, 0)

	testutil.CreateTestCase(t, s.db, testutil.CaseFixture{
		Client: client, Service: svc, Lawyers: []*domain.Lawyer{ana},
		Total: 1000, Commission: 100, StartDate: now,
	})
	testutil.CreateTestCase(t, s.db, testutil.CaseFixture{
		Client: client, Service: svc, Lawyers: []*domain.Lawyer{ana},
		Total: 500, Commission: 50, Status: domain.CaseStatusInProgress, StartDate: lastYear,
	})
	testutil.CreateTestCase(t, s.db, testutil.CaseFixture{
		Client: client, Service: svc, Lawyers: []*domain.Lawyer{ana},
		Total: 250, Commission: 25, Paid: true, Status: domain.CaseStatusCompleted, StartDate: lastYear,
	})

	stats, err := s.dashboard.GetStats(ctx)
	require.NoError(t, err)

	assert.True(t, stats.TotalRevenue.Equal(dec("1750")))
	assert.True(t, stats.MonthlyRevenue.Equal(dec("1000")))
	assert.True(t, stats.TotalCommissions.Equal(dec("25")))
	assert.True(t, stats.PendingCommissions.Equal(dec("150")))
	assert.Equal(t, 2, stats.ActiveCases)
	assert.Equal(t, 1, stats.CompletedCases)
	assert.Equal(t, 2, stats.TotalLawyers)
	assert.Equal(t, 1, stats.TotalClients)
}

func TestDashboardService_Empty(t *testing.T) {
	s := setupServices(t)

	stats, err := s.dashboard.GetStats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Zero(t, stats.ActiveCases)

	ranking, err := s.dashboard.GetRanking(ctx)
	require.NoError(t, err)
	assert.Empty(t, ranking)
}

func TestDashboardService_RankingAndSummary(t *testing.T) {
	s := setupServices(t)
	f := seedCommissions(t, s)

	ranking, err := s.dashboard.GetRanking(ctx)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, f.ana.ID, ranking[0].LawyerID)
	assert.Equal(t, 2, ranking[0].Cases)

	summary, err := s.dashboard.GetFinanceSummary(ctx)
	require.NoError(t, err)
	require.Len(t, summary.Pending, 1)
	require.Len(t, summary.Paid, 1)
	assert.Equal(t, f.pending.ID, summary.Pending[0].ID)
	assert.Equal(t, f.paid.ID, summary.Paid[0].ID)
}
