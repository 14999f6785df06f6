package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/finance"
	"github.com/lexfirm/backoffice-api/internal/logger"
	"github.com/lexfirm/backoffice-api/internal/metrics"
	"go.uber.org/zap"
)

// CaseCommissions is the slice of the case service the commission
// controller drives
type CaseCommissions interface {
	List(ctx context.Context) ([]domain.Case, error)
	Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCaseRequest) (*domain.Case, error)
	LiquidateLawyer(ctx context.Context, caseID, lawyerID uuid.UUID) (*domain.Case, error)
}

// CommissionService liquidates commissions, one case at a time
type CommissionService struct {
	cases    CaseCommissions
	notifier Notifier
	logger   *zap.Logger
}

func NewCommissionService(cases CaseCommissions, notifier Notifier, logger *zap.Logger) *CommissionService {
	return &CommissionService{
		cases:    cases,
		notifier: notifier,
		logger:   logger,
	}
}

// LiquidateOne marks the commission of a case paid. Liquidating a paid case
// writes again and leaves it paid.
func (s *CommissionService) LiquidateOne(ctx context.Context, caseID uuid.UUID) (*domain.Case, error) {
	paid := true
	c, err := s.cases.Update(ctx, caseID, &domain.UpdateCaseRequest{CommissionPaid: &paid})
	metrics.CommissionLiquidations.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	logger.WithCase(s.logger, c.ID.String(), c.CaseNumber).Info("commission liquidated",
		zap.String("amount", c.CommissionAmount.StringFixed(2)),
	)
	return c, nil
}

// LiquidateAll liquidates the given cases in order, waiting for each before
// starting the next. Every case is attempted; a failure is recorded in the
// result and does not undo or stop the others.
func (s *CommissionService) LiquidateAll(ctx context.Context, caseIDs []uuid.UUID) *domain.LiquidationResult {
	result := &domain.LiquidationResult{Items: make([]domain.LiquidationItem, 0, len(caseIDs))}

	for _, id := range caseIDs {
		result.Attempted++
		item := domain.LiquidationItem{CaseID: id, OK: true}

		if _, err := s.LiquidateOne(ctx, id); err != nil {
			item.OK = false
			item.Error = domain.ErrorMessage(err)
			result.Failed++
			s.logger.Warn("commission liquidation failed",
				zap.String("case_id", id.String()),
				zap.Error(err))
		} else {
			result.Succeeded++
		}
		result.Items = append(result.Items, item)
	}

	if result.Attempted > 0 {
		s.notifier.Info(ctx, "Comisiones liquidadas",
			fmt.Sprintf("%d de %d comisiones liquidadas", result.Succeeded, result.Attempted))
	}
	return result
}

// PendingCaseIDs lists the cases whose commission is still owed
func (s *CommissionService) PendingCaseIDs(ctx context.Context) ([]uuid.UUID, error) {
	cases, err := s.cases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return finance.CaseIDs(finance.PendingCommissions(cases)), nil
}

// LiquidatePending liquidates every case with a pending commission
func (s *CommissionService) LiquidatePending(ctx context.Context) (*domain.LiquidationResult, error) {
	ids, err := s.PendingCaseIDs(ctx)
	if err != nil {
		return nil, err
	}
	return s.LiquidateAll(ctx, ids), nil
}

// LiquidateLawyer pays one lawyer's share of a case commission
func (s *CommissionService) LiquidateLawyer(ctx context.Context, caseID, lawyerID uuid.UUID) (*domain.Case, error) {
	c, err := s.cases.LiquidateLawyer(ctx, caseID, lawyerID)
	metrics.CommissionLiquidations.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	logger.WithCase(s.logger, c.ID.String(), c.CaseNumber).Info("lawyer commission liquidated",
		zap.String("lawyer_id", lawyerID.String()),
	)
	return c, nil
}
