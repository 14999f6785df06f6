package jobs

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/lexfirm/backoffice-api/internal/storage"
	"go.uber.org/zap"
)

// FinanceReportJobName is the scheduler name of the monthly report job
const FinanceReportJobName = "finance_report"

// FinanceReportRenderer produces the finance workbook for a point in time.
type FinanceReportRenderer interface {
	RenderFinanceReport(ctx context.Context, now time.Time) ([]byte, error)
}

// FinanceReportJob renders the finance workbook and archives it.
type FinanceReportJob struct {
	renderer    FinanceReportRenderer
	storage     storage.Storage
	filename    func(time.Time) string
	contentType string
	logger      *zap.Logger
	timeout     time.Duration
	now         func() time.Time
}

// NewFinanceReportJob creates the job. filename names the archived object
// for a given run time.
func NewFinanceReportJob(
	renderer FinanceReportRenderer,
	store storage.Storage,
	filename func(time.Time) string,
	contentType string,
	logger *zap.Logger,
	timeout time.Duration,
) *FinanceReportJob {
	return &FinanceReportJob{
		renderer:    renderer,
		storage:     store,
		filename:    filename,
		contentType: contentType,
		logger:      logger,
		timeout:     timeout,
		now:         time.Now,
	}
}

// ArchiveKey is where the report for now is stored
func (j *FinanceReportJob) ArchiveKey(now time.Time) string {
	return fmt.Sprintf("finance/%04d/%s", now.Year(), j.filename(now))
}

// Execute renders and archives one report, returning its archive key.
func (j *FinanceReportJob) Execute(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	now := j.now()
	data, err := j.renderer.RenderFinanceReport(ctx, now)
	if err != nil {
		return "", fmt.Errorf("render finance report: %w", err)
	}

	key := j.ArchiveKey(now)
	if _, err := j.storage.Put(ctx, key, j.contentType, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("archive finance report: %w", err)
	}
	return key, nil
}

// Run is the cron entry point; failures are logged and never propagate.
func (j *FinanceReportJob) Run() {
	start := time.Now()
	key, err := j.Execute(context.Background())
	if err != nil {
		j.logger.Error("finance report job failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}
	j.logger.Info("finance report archived",
		zap.String("key", key),
		zap.Duration("duration", time.Since(start)))
}

// RegisterFinanceReportJob registers the finance report job on the scheduler.
func RegisterFinanceReportJob(
	scheduler *Scheduler,
	renderer FinanceReportRenderer,
	store storage.Storage,
	filename func(time.Time) string,
	contentType string,
	logger *zap.Logger,
	cronExpr string,
	timeout time.Duration,
) (*FinanceReportJob, error) {
	job := NewFinanceReportJob(renderer, store, filename, contentType, logger, timeout)
	if err := scheduler.AddJob(FinanceReportJobName, cronExpr, job.Run); err != nil {
		return nil, err
	}
	return job, nil
}
