package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commissionFixture struct {
	paid    *domain.Case
	pending *domain.Case
	ana     *domain.Lawyer
	luis    *domain.Lawyer
}

// seedCommissions stores one paid case (1000/150) and one pending case (2000/300)
func seedCommissions(t *testing.T, s *services) commissionFixture {
	t.Helper()
	ana := testutil.CreateTestLawyer(t, s.db, "Ana Torres")
	luis := testutil.CreateTestLawyer(t, s.db, "Luis Vega")
	client := testutil.CreateTestClient(t, s.db, "Grupo Norte")
	svc := testutil.CreateTestService(t, s.db, "Litigio", 1000, 15)

	return commissionFixture{
		paid: testutil.CreateTestCase(t, s.db, testutil.CaseFixture{
			Client: client, Service: svc, Lawyers: []*domain.Lawyer{ana},
			Total: 1000, Commission: 150, Paid: true,
		}),
		pending: testutil.CreateTestCase(t, s.db, testutil.CaseFixture{
			Client: client, Service: svc, Lawyers: []*domain.Lawyer{ana, luis},
			Total: 2000, Commission: 300,
		}),
		ana:  ana,
		luis: luis,
	}
}

func TestCommissionService_LiquidateAllPending(t *testing.T) {
	s := setupServices(t)
	f := seedCommissions(t, s)

	stats, err := s.dashboard.GetStats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.TotalCommissions.Equal(dec("150")))
	assert.True(t, stats.PendingCommissions.Equal(dec("300")))
	assert.True(t, stats.TotalRevenue.Equal(dec("3000")))

	ids, err := s.commissions.PendingCaseIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.pending.ID}, ids)

	result, err := s.commissions.LiquidatePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 1, result.Succeeded)
	assert.Zero(t, result.Failed)

	stats, err = s.dashboard.GetStats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.PendingCommissions.IsZero())
	assert.True(t, stats.TotalCommissions.Equal(dec("450")))

	c, err := s.cases.GetByID(ctx, f.pending.ID)
	require.NoError(t, err)
	assert.True(t, c.CommissionPaid)
	require.NotNil(t, c.CommissionPaidAt)
	for _, cl := range c.CaseLawyers {
		assert.True(t, cl.CommissionPaid)
	}

	title, description := s.lastNotification(t)
	assert.Equal(t, "Comisiones liquidadas", title)
	assert.Equal(t, "1 de 1 comisiones liquidadas", description)
}

func TestCommissionService_LiquidateOneIsIdempotent(t *testing.T) {
	s := setupServices(t)
	f := seedCommissions(t, s)

	first, err := s.commissions.LiquidateOne(ctx, f.pending.ID)
	require.NoError(t, err)
	require.NotNil(t, first.CommissionPaidAt)

	second, err := s.commissions.LiquidateOne(ctx, f.pending.ID)
	require.NoError(t, err)
	assert.True(t, second.CommissionPaid)
	require.NotNil(t, second.CommissionPaidAt)
	assert.True(t, first.CommissionPaidAt.Equal(*second.CommissionPaidAt))
	assert.True(t, second.CommissionAmount.Equal(dec("300")))
}

func TestCommissionService_LiquidateAllEmpty(t *testing.T) {
	s := setupServices(t)
	seedCommissions(t, s)

	result := s.commissions.LiquidateAll(ctx, nil)
	assert.Zero(t, result.Attempted)
	assert.Empty(t, result.Items)
	assert.Empty(t, s.notifications.Recent(0))

	stats, err := s.dashboard.GetStats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.PendingCommissions.Equal(dec("300")))
}

func TestCommissionService_LiquidateAllPartialFailure(t *testing.T) {
	s := setupServices(t)
	f := seedCommissions(t, s)
	missing := uuid.New()

	result := s.commissions.LiquidateAll(ctx, []uuid.UUID{missing, f.pending.ID})

	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Items, 2)

	assert.Equal(t, missing, result.Items[0].CaseID)
	assert.False(t, result.Items[0].OK)
	assert.Contains(t, result.Items[0].Error, "record not found")

	assert.Equal(t, f.pending.ID, result.Items[1].CaseID)
	assert.True(t, result.Items[1].OK)
	assert.Empty(t, result.Items[1].Error)

	c, err := s.cases.GetByID(ctx, f.pending.ID)
	require.NoError(t, err)
	assert.True(t, c.CommissionPaid)
}

func TestCommissionService_LiquidateLawyer(t *testing.T) {
	s := setupServices(t)
	f := seedCommissions(t, s)

	c, err := s.commissions.LiquidateLawyer(ctx, f.pending.ID, f.ana.ID)
	require.NoError(t, err)
	assert.False(t, c.CommissionPaid)

	stats, err := s.dashboard.GetStats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.PendingCommissions.Equal(dec("300")))

	c, err = s.commissions.LiquidateLawyer(ctx, f.pending.ID, f.luis.ID)
	require.NoError(t, err)
	assert.True(t, c.CommissionPaid)
	require.NotNil(t, c.CommissionPaidAt)

	title, _ := s.lastNotification(t)
	assert.Equal(t, "Comisión liquidada", title)

	t.Run("lawyer not on the case", func(t *testing.T) {
		_, err := s.commissions.LiquidateLawyer(ctx, f.pending.ID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})
}
