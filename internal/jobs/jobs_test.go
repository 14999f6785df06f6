package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/lexfirm/backoffice-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type stubRenderer struct {
	data []byte
	err  error
	at   time.Time
}

func (r *stubRenderer) RenderFinanceReport(ctx context.Context, now time.Time) ([]byte, error) {
	r.at = now
	return r.data, r.err
}

func monthlyName(now time.Time) string {
	return fmt.Sprintf("finanzas-%04d-%02d.xlsx", now.Year(), int(now.Month()))
}

func newTestJob(t *testing.T, renderer FinanceReportRenderer) (*FinanceReportJob, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	job := NewFinanceReportJob(renderer, store, monthlyName, "application/octet-stream", zap.NewNop(), time.Minute)
	job.now = func() time.Time { return time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC) }
	return job, store
}

func TestFinanceReportJob_ArchivesReport(t *testing.T) {
	defer goleak.VerifyNone(t)

	renderer := &stubRenderer{data: []byte("xlsx-bytes")}
	job, store := newTestJob(t, renderer)

	key, err := job.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "finance/2026/finanzas-2026-10.xlsx", key)
	assert.Equal(t, 2026, renderer.at.Year())

	rc, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "xlsx-bytes", string(body))
}

func TestFinanceReportJob_RenderFailureArchivesNothing(t *testing.T) {
	job, store := newTestJob(t, &stubRenderer{err: errors.New("db down")})

	_, err := job.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")

	_, err = store.Get(context.Background(), "finance/2026/finanzas-2026-10.xlsx")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Run swallows the error
	assert.NotPanics(t, job.Run)
}

func TestScheduler_AddAndRemoveJobs(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("b", "@every 1h", func() {}))
	require.NoError(t, s.AddJob("a", "0 0 6 1 * *", func() {}))
	assert.Equal(t, []string{"a", "b"}, s.JobNames())

	assert.Error(t, s.AddJob("a", "@every 1h", func() {}))
	assert.Error(t, s.AddJob("bad", "not a cron", func() {}))

	require.NoError(t, s.RemoveJob("a"))
	assert.Error(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.JobNames())
}

func TestRegisterFinanceReportJob(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	job, err := RegisterFinanceReportJob(s, &stubRenderer{}, store, monthlyName, "", zap.NewNop(), "0 0 6 1 * *", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, []string{FinanceReportJobName}, s.JobNames())

	_, err = RegisterFinanceReportJob(s, &stubRenderer{}, store, monthlyName, "", zap.NewNop(), "0 0 6 1 * *", time.Minute)
	assert.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewScheduler(zap.NewNop())
	s.Start()
	ctx := s.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
