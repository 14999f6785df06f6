package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelete_ReferencedRecordsAreRejected(t *testing.T) {
	s := setupServices(t)
	lawyer := testutil.CreateTestLawyer(t, s.db, "Ana Torres")
	client := testutil.CreateTestClient(t, s.db, "Grupo Norte")
	svc := testutil.CreateTestService(t, s.db, "Divorcio", 1000, 15)
	testutil.CreateTestCase(t, s.db, testutil.CaseFixture{
		Client:     client,
		Service:    svc,
		Lawyers:    []*domain.Lawyer{lawyer},
		Total:      1000,
		Commission: 150,
	})

	deletes := map[string]func() error{
		"lawyer":  func() error { return s.lawyers.Delete(ctx, lawyer.ID) },
		"client":  func() error { return s.clients.Delete(ctx, client.ID) },
		"service": func() error { return s.legal.Delete(ctx, svc.ID) },
	}
	for name, del := range deletes {
		t.Run(name, func(t *testing.T) {
			err := del()
			require.Error(t, err)

			var storeErr *domain.StoreError
			require.ErrorAs(t, err, &storeErr)
			assert.NotErrorIs(t, err, domain.ErrRecordNotFound)

			title, _ := s.lastNotification(t)
			assert.Equal(t, "Error", title)
		})
	}

	cases, err := s.cases.List(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	require.NotNil(t, cases[0].Client)
	require.NotNil(t, cases[0].Service)
	require.NotNil(t, cases[0].Lawyer)
	assert.Equal(t, "Grupo Norte", cases[0].Client.Name)
	assert.Equal(t, "Ana Torres", cases[0].Lawyer.Name)
}

func TestFailedMutation_LeavesCacheUntouched(t *testing.T) {
	s := setupServices(t)
	testutil.CreateTestLawyer(t, s.db, "Ana Torres")

	lawyers, err := s.lawyers.List(ctx)
	require.NoError(t, err)
	require.Len(t, lawyers, 1)

	// Written behind the service, so only an invalidation can surface it
	testutil.CreateTestLawyer(t, s.db, "Luis Ramos")

	name := "Nadie"
	_, err = s.lawyers.Update(ctx, uuid.New(), &domain.UpdateLawyerRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Error(t, s.lawyers.Delete(ctx, uuid.New()))

	lawyers, err = s.lawyers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, lawyers, 1, "failed mutations must not invalidate the cached list")

	_, err = s.lawyers.Update(ctx, lawyers[0].ID, &domain.UpdateLawyerRequest{Name: &name})
	require.NoError(t, err)

	lawyers, err = s.lawyers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, lawyers, 2)
}

func TestValidationFailure_MakesNoWrite(t *testing.T) {
	s := setupServices(t)
	lawyer := testutil.CreateTestLawyer(t, s.db, "Ana Torres")
	client := testutil.CreateTestClient(t, s.db, "Grupo Norte")

	t.Run("update", func(t *testing.T) {
		empty := ""
		status := domain.LawyerStatus("retirado")
		_, err := s.lawyers.Update(ctx, lawyer.ID, &domain.UpdateLawyerRequest{Name: &empty, Status: &status})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)

		var stored domain.Lawyer
		require.NoError(t, s.db.First(&stored, "id = ?", lawyer.ID).Error)
		assert.Equal(t, "Ana Torres", stored.Name)
		assert.Equal(t, domain.LawyerStatusActive, stored.Status)
	})

	t.Run("case create", func(t *testing.T) {
		_, err := s.cases.Create(ctx, &domain.CreateCaseRequest{
			ClientID: &client.ID,
			LawyerID: &lawyer.ID,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)

		var cases, sequences int64
		require.NoError(t, s.db.Model(&domain.Case{}).Count(&cases).Error)
		require.NoError(t, s.db.Model(&domain.NumberSequence{}).Count(&sequences).Error)
		assert.Zero(t, cases)
		assert.Zero(t, sequences)
	})

	t.Run("client create", func(t *testing.T) {
		_, err := s.clients.Create(ctx, &domain.CreateClientRequest{Email: "x@y.mx"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)

		var clients int64
		require.NoError(t, s.db.Model(&domain.Client{}).Count(&clients).Error)
		assert.Equal(t, int64(1), clients)
	})
}
