package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLawyerHandler_CRUD(t *testing.T) {
	api := setupAPI(t)

	var created domain.LawyerDTO
	t.Run("create", func(t *testing.T) {
		rr := api.do(t, http.MethodPost, "/lawyers", domain.CreateLawyerRequest{
			Name:        "Ana Torres",
			Email:       "ana@bufete.mx",
			Specialties: []string{"Familiar"},
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		decode(t, rr, &created)

		assert.Equal(t, "Ana Torres", created.Name)
		assert.Equal(t, domain.LawyerStatusActive, created.Status)
		assert.Equal(t, "/api/v1/lawyers/"+created.ID.String(), rr.Header().Get("Location"))
	})

	t.Run("get", func(t *testing.T) {
		rr := api.do(t, http.MethodGet, "/lawyers/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var got domain.LawyerDTO
		decode(t, rr, &got)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, []string{"Familiar"}, got.Specialties)
	})

	t.Run("update", func(t *testing.T) {
		inactive := domain.LawyerStatusInactive
		rr := api.do(t, http.MethodPut, "/lawyers/"+created.ID.String(), domain.UpdateLawyerRequest{Status: &inactive})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var got domain.LawyerDTO
		decode(t, rr, &got)
		assert.Equal(t, domain.LawyerStatusInactive, got.Status)
		assert.Equal(t, "Ana Torres", got.Name)
	})

	t.Run("list", func(t *testing.T) {
		rr := api.do(t, http.MethodGet, "/lawyers", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var page struct {
			Data  []domain.LawyerDTO `json:"data"`
			Total int                `json:"total"`
		}
		decode(t, rr, &page)
		assert.Equal(t, 1, page.Total)
		assert.Len(t, page.Data, 1)
	})

	t.Run("delete", func(t *testing.T) {
		rr := api.do(t, http.MethodDelete, "/lawyers/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)

		rr = api.do(t, http.MethodGet, "/lawyers/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestLawyerHandler_Errors(t *testing.T) {
	api := setupAPI(t)

	t.Run("malformed body", func(t *testing.T) {
		rr := api.do(t, http.MethodPost, "/lawyers", "{not json")
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var apiErr domain.APIError
		decode(t, rr, &apiErr)
		assert.Equal(t, domain.ErrorTypeBadRequest, apiErr.Type)
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		rr := api.do(t, http.MethodPost, "/lawyers", domain.CreateLawyerRequest{Email: "not-an-email"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var apiErr domain.APIError
		decode(t, rr, &apiErr)
		assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
		assert.NotEmpty(t, apiErr.Errors)
	})

	t.Run("invalid id", func(t *testing.T) {
		rr := api.do(t, http.MethodGet, "/lawyers/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		rr := api.do(t, http.MethodGet, "/lawyers/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)

		var apiErr domain.APIError
		decode(t, rr, &apiErr)
		assert.Equal(t, domain.ErrorTypeNotFound, apiErr.Type)
		assert.Contains(t, apiErr.Detail, "record not found")
	})
}
