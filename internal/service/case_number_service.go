package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/lexfirm/backoffice-api/internal/repository"
	"go.uber.org/zap"
)

// CaseNumberPrefix starts every case number
const CaseNumberPrefix = "CASO"

var caseNumberPattern = regexp.MustCompile(`^CASO-\d{4}-\d{4}$`)

// CaseNumberService issues case numbers of the form CASO-YYYY-NNNN from a
// per-year counter. The suffix is the counter modulo 10000, so numbers stay
// unique up to 9999 cases per year. The year is taken in the firm's timezone,
// the same one case start dates use.
type CaseNumberService struct {
	repo     *repository.NumberSequenceRepository
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

func NewCaseNumberService(repo *repository.NumberSequenceRepository, location *time.Location, logger *zap.Logger) *CaseNumberService {
	if location == nil {
		location = time.UTC
	}
	return &CaseNumberService{
		repo:     repo,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *CaseNumberService) year() int {
	return s.now().In(s.location).Year()
}

// Next reserves and formats the next case number for the current year
func (s *CaseNumberService) Next(ctx context.Context) (string, error) {
	year := s.year()

	seq, err := s.repo.GetNextNumber(ctx, CaseNumberPrefix, year)
	if err != nil {
		s.logger.Error("failed to get next case sequence",
			zap.Int("year", year),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate case number: %w", err)
	}
	if seq > 9999 {
		s.logger.Warn("case sequence exceeded four digits, suffix wraps",
			zap.Int("year", year),
			zap.Int("sequence", seq))
	}

	return FormatCaseNumber(year, seq), nil
}

// Preview returns the number the next case would get without reserving it.
// A concurrent Create may take it first.
func (s *CaseNumberService) Preview(ctx context.Context) (string, error) {
	year := s.year()
	current, err := s.repo.GetCurrentSequence(ctx, CaseNumberPrefix, year)
	if err != nil {
		return "", fmt.Errorf("failed to read case sequence: %w", err)
	}
	return FormatCaseNumber(year, current+1), nil
}

// FormatCaseNumber renders year and sequence as CASO-YYYY-NNNN
func FormatCaseNumber(year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", CaseNumberPrefix, year, seq%10000)
}

// IsValidCaseNumber reports whether n has the CASO-YYYY-NNNN shape
func IsValidCaseNumber(n string) bool {
	return caseNumberPattern.MatchString(n)
}
