package service_test

import (
	"testing"
	"time"

	"github.com/lexfirm/backoffice-api/internal/repository"
	"github.com/lexfirm/backoffice-api/internal/service"
	"github.com/lexfirm/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCaseNumberService_UsesFirmTimezoneYear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mexicoCity := time.FixedZone("CST", -6*60*60)
	numbers := service.NewCaseNumberService(repository.NewNumberSequenceRepository(db), mexicoCity, zap.NewNop())

	// 03:00 UTC on New Year's Day is still New Year's Eve in the firm
	numbers.SetClock(func() time.Time { return time.Date(2027, 1, 1, 3, 0, 0, 0, time.UTC) })

	preview, err := numbers.Preview(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CASO-2026-0001", preview)

	n, err := numbers.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CASO-2026-0001", n)

	numbers.SetClock(func() time.Time { return time.Date(2027, 1, 1, 7, 0, 0, 0, time.UTC) })
	n, err = numbers.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CASO-2027-0001", n)

	preview, err = numbers.Preview(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CASO-2027-0002", preview)
}
