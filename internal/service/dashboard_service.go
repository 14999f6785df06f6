package service

import (
	"context"
	"time"

	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/finance"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DashboardService derives statistics from the cached collections on every
// call. Nothing derived is cached.
type DashboardService struct {
	cases    *CaseService
	lawyers  *LawyerService
	clients  *ClientService
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

func NewDashboardService(
	cases *CaseService,
	lawyers *LawyerService,
	clients *ClientService,
	location *time.Location,
	logger *zap.Logger,
) *DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &DashboardService{
		cases:    cases,
		lawyers:  lawyers,
		clients:  clients,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

type collections struct {
	cases   []domain.Case
	lawyers []domain.Lawyer
	clients []domain.Client
}

func (s *DashboardService) fetch(ctx context.Context) (*collections, error) {
	var c collections
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		c.cases, err = s.cases.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		c.lawyers, err = s.lawyers.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		c.clients, err = s.clients.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load dashboard collections", zap.Error(err))
		return nil, err
	}
	return &c, nil
}

func (s *DashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	c, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	stats := finance.ComputeStats(c.cases, len(c.lawyers), len(c.clients), s.now().In(s.location))
	return &stats, nil
}

func (s *DashboardService) GetRanking(ctx context.Context) ([]domain.LawyerRankingEntry, error) {
	cases, err := s.cases.List(ctx)
	if err != nil {
		return nil, err
	}
	return finance.RankLawyers(cases), nil
}

// GetFinanceSummary returns the statistics with the pending and paid lists
func (s *DashboardService) GetFinanceSummary(ctx context.Context) (*domain.FinanceSummary, error) {
	c, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.FinanceSummary{
		Stats:   finance.ComputeStats(c.cases, len(c.lawyers), len(c.clients), s.now().In(s.location)),
		Pending: finance.PendingCommissions(c.cases),
		Paid:    finance.PaidCommissions(c.cases),
	}, nil
}
