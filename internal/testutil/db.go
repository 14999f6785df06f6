// Package testutil provides an in-memory record store and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/database"
	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB opens a private in-memory sqlite database with the full schema.
// A single connection keeps every query on the same in-memory database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(database.SQLiteDSN(":memory:")))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// CreateTestLawyer inserts an active lawyer
func CreateTestLawyer(t *testing.T, db *gorm.DB, name string) *domain.Lawyer {
	t.Helper()
	lawyer := &domain.Lawyer{
		Name:        name,
		Email:       "abogado@bufete.mx",
		Specialties: []string{"Civil"},
		Status:      domain.LawyerStatusActive,
	}
	require.NoError(t, db.Create(lawyer).Error)
	return lawyer
}

// CreateTestClient inserts a client
func CreateTestClient(t *testing.T, db *gorm.DB, name string) *domain.Client {
	t.Helper()
	client := &domain.Client{Name: name, Email: "cliente@empresa.mx"}
	require.NoError(t, db.Create(client).Error)
	return client
}

// CreateTestService inserts an active service with the given price and percentage
func CreateTestService(t *testing.T, db *gorm.DB, name string, basePrice, pct float64) *domain.LegalService {
	t.Helper()
	service := &domain.LegalService{
		Name:                 name,
		Category:             domain.ServiceCategoryCivil,
		BasePrice:            decimal.NewFromFloat(basePrice),
		CommissionPercentage: decimal.NewFromFloat(pct),
		CommissionType:       domain.CommissionTypeVariable,
		IsActive:             true,
	}
	require.NoError(t, db.Create(service).Error)
	return service
}

// CaseFixture describes a case inserted by CreateTestCase
type CaseFixture struct {
	Client     *domain.Client
	Service    *domain.LegalService
	Lawyers    []*domain.Lawyer
	Total      float64
	Commission float64
	Paid       bool
	Status     domain.CaseStatus
	StartDate  time.Time
}

// CreateTestCase inserts a case with an equal commission split across the
// fixture lawyers. The first lawyer is also recorded as the lead.
func CreateTestCase(t *testing.T, db *gorm.DB, f CaseFixture) *domain.Case {
	t.Helper()

	status := f.Status
	if status == "" {
		status = domain.CaseStatusActive
	}
	start := f.StartDate
	if start.IsZero() {
		start = time.Now().UTC().Truncate(24 * time.Hour)
	}

	c := &domain.Case{
		CaseNumber:       "CASO-TEST-" + uuid.NewString()[:8],
		ClientID:         f.Client.ID,
		ServiceID:        f.Service.ID,
		Status:           status,
		TotalAmount:      decimal.NewFromFloat(f.Total),
		CommissionAmount: decimal.NewFromFloat(f.Commission),
		CommissionPaid:   f.Paid,
		StartDate:        start,
	}
	if len(f.Lawyers) > 0 {
		c.LawyerID = &f.Lawyers[0].ID
	}
	require.NoError(t, db.Omit("Client", "Service", "Lawyer", "CaseLawyers").Create(c).Error)

	if len(f.Lawyers) > 0 {
		share := decimal.NewFromFloat(f.Commission).Div(decimal.NewFromInt(int64(len(f.Lawyers)))).Round(2)
		for _, l := range f.Lawyers {
			cl := &domain.CaseLawyer{
				CaseID:           c.ID,
				LawyerID:         l.ID,
				CommissionAmount: share,
				CommissionPaid:   f.Paid,
			}
			require.NoError(t, db.Omit("Lawyer").Create(cl).Error)
		}
	}
	return c
}
