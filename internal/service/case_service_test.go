package service_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/service"
	"github.com/lexfirm/backoffice-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func TestCaseService_Create(t *testing.T) {
	s := setupServices(t)
	lawyer := testutil.CreateTestLawyer(t, s.db, "Ana Torres")
	client := testutil.CreateTestClient(t, s.db, "Grupo Norte")
	svc := testutil.CreateTestService(t, s.db, "Divorcio", 2000, 15)

	t.Run("defaults total to the base price", func(t *testing.T) {
		c, err := s.cases.Create(ctx, &domain.CreateCaseRequest{
			ClientID:  &client.ID,
			ServiceID: svc.ID,
			LawyerID:  &lawyer.ID,
		})
		require.NoError(t, err)

		assert.True(t, c.TotalAmount.Equal(dec("2000")))
		assert.True(t, c.CommissionAmount.Equal(dec("300")))
		assert.False(t, c.CommissionPaid)
		assert.Equal(t, domain.CaseStatusActive, c.Status)
		assert.True(t, service.IsValidCaseNumber(c.CaseNumber), c.CaseNumber)
		require.Len(t, c.CaseLawyers, 1)
		assert.True(t, c.CaseLawyers[0].CommissionAmount.Equal(dec("300")))
		require.NotNil(t, c.Client)
		assert.Equal(t, "Grupo Norte", c.Client.Name)

		title, description := s.lastNotification(t)
		assert.Equal(t, "Caso creado", title)
		assert.Equal(t, c.CaseNumber, description)
	})

	t.Run("explicit total drives the commission", func(t *testing.T) {
		c, err := s.cases.Create(ctx, &domain.CreateCaseRequest{
			ClientID:    &client.ID,
			ServiceID:   svc.ID,
			LawyerID:    &lawyer.ID,
			TotalAmount: decPtr("1234.56"),
			StartDate:   "2026-03-01",
		})
		require.NoError(t, err)

		assert.True(t, c.CommissionAmount.Equal(dec("185.18")), c.CommissionAmount.String())
		assert.Equal(t, "2026-03-01", c.StartDate.Format(domain.DateLayout))
	})

	t.Run("case numbers are sequential", func(t *testing.T) {
		first, err := s.cases.Create(ctx, &domain.CreateCaseRequest{ClientID: &client.ID, ServiceID: svc.ID, LawyerID: &lawyer.ID})
		require.NoError(t, err)
		second, err := s.cases.Create(ctx, &domain.CreateCaseRequest{ClientID: &client.ID, ServiceID: svc.ID, LawyerID: &lawyer.ID})
		require.NoError(t, err)

		assert.NotEqual(t, first.CaseNumber, second.CaseNumber)
		assert.Less(t, first.CaseNumber, second.CaseNumber)
	})
}

func TestCaseService_CreateWithInlineClient(t *testing.T) {
	s := setupServices(t)
	lawyer := testutil.CreateTestLawyer(t, s.db, "Ana Torres")
	svc := testutil.CreateTestService(t, s.db, "Constitución", 10000, 10)

	c, err := s.cases.Create(ctx, &domain.CreateCaseRequest{
		Client:    &domain.CreateClientRequest{Name: "Nueva Empresa SA", Email: "contacto@nueva.mx"},
		ServiceID: svc.ID,
		LawyerID:  &lawyer.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, c.Client)
	assert.Equal(t, "Nueva Empresa SA", c.Client.Name)

	clients, err := s.clients.List(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestCaseService_CreateWithShares(t *testing.T) {
	s := setupServices(t)
	ana := testutil.CreateTestLawyer(t, s.db, "Ana Torres")
	luis := testutil.CreateTestLawyer(t, s.db, "Luis Vega")
	client := testutil.CreateTestClient(t, s.db, "Grupo Norte")
	svc := testutil.CreateTestService(t, s.db, "Fusión", 1000, 10)

	t.Run("equal split", func(t *testing.T) {
		c, err := s.cases.Create(ctx, &domain.CreateCaseRequest{
			ClientID:  &client.ID,
			ServiceID: svc.ID,
			Lawyers:   []domain.CaseLawyerShare{{LawyerID: ana.ID}, {LawyerID: luis.ID}},
		})
		require.NoError(t, err)
		require.Len(t, c.CaseLawyers, 2)
		assert.True(t, c.CaseLawyers[0].CommissionAmount.Equal(dec("50")))
		assert.True(t, c.CaseLawyers[1].CommissionAmount.Equal(dec("50")))
		require.NotNil(t, c.LawyerID)
		assert.Equal(t, ana.ID, *c.LawyerID)
	})

	t.Run("percentage split with lead", func(t *testing.T) {
		c, err := s.cases.Create(ctx, &domain.CreateCaseRequest{
			ClientID:  &client.ID,
			ServiceID: svc.ID,
			LawyerID:  &luis.ID,
			Lawyers: []domain.CaseLawyerShare{
				{LawyerID: ana.ID, Share: decPtr("30")},
				{LawyerID: luis.ID, Share: decPtr("70")},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, c.LawyerID)
		assert.Equal(t, luis.ID, *c.LawyerID)

		byLawyer := map[uuid.UUID]decimal.Decimal{}
		for _, cl := range c.CaseLawyers {
			byLawyer[cl.LawyerID] = cl.CommissionAmount
		}
		assert.True(t, byLawyer[ana.ID].Equal(dec("30")))
		assert.True(t, byLawyer[luis.ID].Equal(dec("70")))
	})

	t.Run("shares must add up to 100", func(t *testing.T) {
		_, err := s.cases.Create(ctx, &domain.CreateCaseRequest{
			ClientID:  &client.ID,
			ServiceID: svc.ID,
			Lawyers: []domain.CaseLawyerShare{
				{LawyerID: ana.ID, Share: decPtr("30")},
				{LawyerID: luis.ID, Share: decPtr("60")},
			},
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("duplicate lawyers are rejected", func(t *testing.T) {
		_, err := s.cases.Create(ctx, &domain.CreateCaseRequest{
			ClientID:  &client.ID,
			ServiceID: svc.ID,
			Lawyers:   []domain.CaseLawyerShare{{LawyerID: ana.ID}, {LawyerID: ana.ID}},
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestCaseService_CreateValidation(t *testing.T) {
	s := setupServices(t)
	lawyer := testutil.CreateTestLawyer(t, s.db, "Ana Torres")
	client := testutil.CreateTestClient(t, s.db, "Grupo Norte")
	svc := testutil.CreateTestService(t, s.db, "Divorcio", 2000, 15)

	tests := []struct {
		name string
		req  *domain.CreateCaseRequest
		want error
	}{
		{
			name: "no client",
			req:  &domain.CreateCaseRequest{ServiceID: svc.ID, LawyerID: &lawyer.ID},
			want: service.ErrClientRequired,
		},
		{
			name: "both clients",
			req: &domain.CreateCaseRequest{
				ClientID:  &client.ID,
				Client:    &domain.CreateClientRequest{Name: "Otro"},
				ServiceID: svc.ID,
				LawyerID:  &lawyer.ID,
			},
			want: service.ErrClientAmbiguous,
		},
		{
			name: "no lawyer",
			req:  &domain.CreateCaseRequest{ClientID: &client.ID, ServiceID: svc.ID},
			want: service.ErrLawyerRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.cases.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)

			title, _ := s.lastNotification(t)
			assert.Equal(t, "Error", title)
		})
	}

	t.Run("missing service is a store error", func(t *testing.T) {
		_, err := s.cases.Create(ctx, &domain.CreateCaseRequest{
			ClientID:  &client.ID,
			ServiceID: uuid.New(),
			LawyerID:  &lawyer.ID,
		})
		assert.True(t, errors.Is(err, domain.ErrRecordNotFound))
	})

	t.Run("negative total", func(t *testing.T) {
		_, err := s.cases.Create(ctx, &domain.CreateCaseRequest{
			ClientID:    &client.ID,
			ServiceID:   svc.ID,
			LawyerID:    &lawyer.ID,
			TotalAmount: decPtr("-1"),
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "totalAmount")
	})

	t.Run("inactive service", func(t *testing.T) {
		inactive := testutil.CreateTestService(t, s.db, "Archivado", 100, 10)
		require.NoError(t, s.db.Model(inactive).Update("is_active", false).Error)

		_, err := s.cases.Create(ctx, &domain.CreateCaseRequest{
			ClientID:  &client.ID,
			ServiceID: inactive.ID,
			LawyerID:  &lawyer.ID,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	cases, err := s.cases.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestCaseService_Update(t *testing.T) {
	s := setupServices(t)
	ana := testutil.CreateTestLawyer(t, s.db, "Ana Torres")
	luis := testutil.CreateTestLawyer(t, s.db, "Luis Vega")
	client := testutil.CreateTestClient(t, s.db, "Grupo Norte")
	svc := testutil.CreateTestService(t, s.db, "Divorcio", 1000, 10)

	newCase := func(t *testing.T) *domain.Case {
		c, err := s.cases.Create(ctx, &domain.CreateCaseRequest{ClientID: &client.ID, ServiceID: svc.ID, LawyerID: &ana.ID})
		require.NoError(t, err)
		return c
	}

	t.Run("status and notes", func(t *testing.T) {
		c := newCase(t)
		status := domain.CaseStatusInProgress
		notes := "audiencia el lunes"

		updated, err := s.cases.Update(ctx, c.ID, &domain.UpdateCaseRequest{Status: &status, Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, domain.CaseStatusInProgress, updated.Status)
		assert.Equal(t, notes, updated.Notes)
		assert.Equal(t, c.CaseNumber, updated.CaseNumber)

		title, _ := s.lastNotification(t)
		assert.Equal(t, "Caso actualizado", title)
	})

	t.Run("invalid status", func(t *testing.T) {
		c := newCase(t)
		status := domain.CaseStatus("archived")
		_, err := s.cases.Update(ctx, c.ID, &domain.UpdateCaseRequest{Status: &status})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("changing the total keeps the commission", func(t *testing.T) {
		c := newCase(t)
		updated, err := s.cases.Update(ctx, c.ID, &domain.UpdateCaseRequest{TotalAmount: decPtr("5000")})
		require.NoError(t, err)
		assert.True(t, updated.TotalAmount.Equal(dec("5000")))
		assert.True(t, updated.CommissionAmount.Equal(dec("100")))
	})

	t.Run("recalculate after changing the total", func(t *testing.T) {
		c := newCase(t)
		_, err := s.cases.Update(ctx, c.ID, &domain.UpdateCaseRequest{TotalAmount: decPtr("5000")})
		require.NoError(t, err)

		updated, err := s.cases.RecalculateCommission(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, updated.CommissionAmount.Equal(dec("500")))
		require.Len(t, updated.CaseLawyers, 1)
		assert.True(t, updated.CaseLawyers[0].CommissionAmount.Equal(dec("500")))
	})

	t.Run("new lead lawyer takes the single share", func(t *testing.T) {
		c := newCase(t)
		updated, err := s.cases.Update(ctx, c.ID, &domain.UpdateCaseRequest{LawyerID: &luis.ID})
		require.NoError(t, err)
		require.NotNil(t, updated.LawyerID)
		assert.Equal(t, luis.ID, *updated.LawyerID)
		require.Len(t, updated.CaseLawyers, 1)
		assert.Equal(t, luis.ID, updated.CaseLawyers[0].LawyerID)
	})

	t.Run("paid commission cannot be reverted", func(t *testing.T) {
		c := newCase(t)
		unpaid := false
		_, err := s.cases.Update(ctx, c.ID, &domain.UpdateCaseRequest{CommissionPaid: &unpaid})
		assert.ErrorIs(t, err, service.ErrCommissionReset)
	})

	t.Run("paid commission amount is locked", func(t *testing.T) {
		c := newCase(t)
		_, err := s.commissions.LiquidateOne(ctx, c.ID)
		require.NoError(t, err)

		_, err = s.cases.Update(ctx, c.ID, &domain.UpdateCaseRequest{CommissionAmount: decPtr("1")})
		assert.ErrorIs(t, err, service.ErrCommissionLocked)
	})

	t.Run("missing case", func(t *testing.T) {
		_, err := s.cases.Update(ctx, uuid.New(), &domain.UpdateCaseRequest{Notes: new(string)})
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})
}

func TestCaseService_Delete(t *testing.T) {
	s := setupServices(t)
	lawyer := testutil.CreateTestLawyer(t, s.db, "Ana Torres")
	client := testutil.CreateTestClient(t, s.db, "Grupo Norte")
	svc := testutil.CreateTestService(t, s.db, "Divorcio", 1000, 10)

	c, err := s.cases.Create(ctx, &domain.CreateCaseRequest{ClientID: &client.ID, ServiceID: svc.ID, LawyerID: &lawyer.ID})
	require.NoError(t, err)

	// warm the cache so the delete must invalidate it
	list, err := s.cases.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.cases.Delete(ctx, c.ID))

	list, err = s.cases.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = s.cases.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}
