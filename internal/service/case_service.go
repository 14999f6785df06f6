package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/cache"
	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/finance"
	"github.com/lexfirm/backoffice-api/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CaseService struct {
	repo     *repository.CaseRepository
	clients  *ClientService
	services *LegalServiceService
	lawyers  *LawyerService
	numbers  *CaseNumberService
	cache    *cache.QueryCache
	notifier Notifier
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time
}

func NewCaseService(
	repo *repository.CaseRepository,
	clients *ClientService,
	services *LegalServiceService,
	lawyers *LawyerService,
	numbers *CaseNumberService,
	queryCache *cache.QueryCache,
	notifier Notifier,
	location *time.Location,
	logger *zap.Logger,
) *CaseService {
	if location == nil {
		location = time.UTC
	}
	return &CaseService{
		repo:     repo,
		clients:  clients,
		services: services,
		lawyers:  lawyers,
		numbers:  numbers,
		cache:    queryCache,
		notifier: notifier,
		logger:   logger,
		location: location,
		now:      time.Now,
	}
}

// List returns every case with client, service and lawyers expanded, newest
// first. The slice is shared with the cache and must not be modified.
func (s *CaseService) List(ctx context.Context) ([]domain.Case, error) {
	return cache.GetOrFetch(ctx, s.cache, cache.Key{Entity: entityCases}, s.repo.List)
}

// NextCaseNumber previews the number the next opened case will receive
func (s *CaseService) NextCaseNumber(ctx context.Context) (string, error) {
	return s.numbers.Preview(ctx)
}

func (s *CaseService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	return c, nil
}

// Create opens a case. The total defaults to the service base price and the
// commission is total x service percentage, split across the lawyers. A new
// client given inline is registered first and is kept even if the case
// itself cannot be created.
func (s *CaseService) Create(ctx context.Context, req *domain.CreateCaseRequest) (*domain.Case, error) {
	if err := validateRequest(req); err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}

	switch {
	case req.ClientID == nil && req.Client == nil:
		return nil, notifyFailure(ctx, s.notifier, ErrClientRequired)
	case req.ClientID != nil && req.Client != nil:
		return nil, notifyFailure(ctx, s.notifier, ErrClientAmbiguous)
	}

	lawyerIDs, shares, err := assignmentPlan(req)
	if err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}

	service, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}
	if !service.IsActive {
		return nil, notifyFailure(ctx, s.notifier,
			domain.NewValidationError("the service is not active", "serviceId", "select an active service"))
	}

	for _, id := range lawyerIDs {
		if err := s.requireActiveLawyer(ctx, id); err != nil {
			return nil, notifyFailure(ctx, s.notifier, err)
		}
	}

	// A zero total falls back to the base price too
	total := service.BasePrice
	if req.TotalAmount != nil && !req.TotalAmount.IsZero() {
		if err := nonNegative("totalAmount", *req.TotalAmount); err != nil {
			return nil, notifyFailure(ctx, s.notifier, err)
		}
		total = req.TotalAmount.Round(2)
	}
	commission := finance.CommissionFor(total, service.CommissionPercentage)

	startDate := s.today()
	if req.StartDate != "" {
		parsed, err := parseDate("startDate", req.StartDate)
		if err != nil {
			return nil, notifyFailure(ctx, s.notifier, err)
		}
		startDate = *parsed
	}

	var clientID uuid.UUID
	if req.Client != nil {
		// ClientService reports its own outcome
		client, err := s.clients.Create(ctx, req.Client)
		if err != nil {
			return nil, err
		}
		clientID = client.ID
	} else {
		client, err := s.clients.GetByID(ctx, *req.ClientID)
		if err != nil {
			return nil, notifyFailure(ctx, s.notifier, err)
		}
		clientID = client.ID
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}

	lead := lawyerIDs[0]
	c := &domain.Case{
		CaseNumber:       number,
		ClientID:         clientID,
		ServiceID:        service.ID,
		LawyerID:         &lead,
		Status:           domain.CaseStatusActive,
		TotalAmount:      total,
		CommissionAmount: commission,
		StartDate:        startDate,
		Notes:            req.Notes,
	}

	amounts := finance.SplitCommission(commission, len(lawyerIDs), shares)
	assignments := make([]domain.CaseLawyer, len(lawyerIDs))
	for i, id := range lawyerIDs {
		assignments[i] = domain.CaseLawyer{LawyerID: id, CommissionAmount: amounts[i]}
	}

	if err := s.repo.Create(ctx, c, assignments); err != nil {
		return nil, notifyFailure(ctx, s.notifier, fmt.Errorf("failed to create case: %w", err))
	}

	s.cache.Invalidate(entityCases)
	s.notifier.Success(ctx, "Caso creado", c.CaseNumber)
	s.logger.Info("case created",
		zap.String("case_id", c.ID.String()),
		zap.String("case_number", c.CaseNumber),
		zap.String("commission", commission.StringFixed(2)),
	)

	loaded, err := s.repo.GetByID(ctx, c.ID)
	if err != nil {
		s.logger.Warn("failed to reload created case", zap.Error(err))
		return c, nil
	}
	return loaded, nil
}

// assignmentPlan resolves the lawyers of a new case and their shares. Shares
// are either all omitted (equal split) or all present and summing to 100.
func assignmentPlan(req *domain.CreateCaseRequest) ([]uuid.UUID, []decimal.Decimal, error) {
	if len(req.Lawyers) == 0 {
		if req.LawyerID == nil || *req.LawyerID == uuid.Nil {
			return nil, nil, ErrLawyerRequired
		}
		return []uuid.UUID{*req.LawyerID}, nil, nil
	}

	ids := make([]uuid.UUID, 0, len(req.Lawyers))
	seen := make(map[uuid.UUID]bool, len(req.Lawyers))
	withShare := 0
	for _, l := range req.Lawyers {
		if seen[l.LawyerID] {
			return nil, nil, domain.NewValidationError("a lawyer can only be assigned once", "lawyers", "duplicate lawyer")
		}
		seen[l.LawyerID] = true
		ids = append(ids, l.LawyerID)
		if l.Share != nil {
			withShare++
		}
	}

	// the lead lawyer, when named, goes first
	if req.LawyerID != nil && seen[*req.LawyerID] {
		for i, id := range ids {
			if id == *req.LawyerID {
				ids[0], ids[i] = ids[i], ids[0]
				break
			}
		}
	}

	if withShare == 0 {
		return ids, nil, nil
	}
	if withShare != len(req.Lawyers) {
		return nil, nil, domain.NewValidationError("give a share for every lawyer or for none", "lawyers", "incomplete shares")
	}

	byID := make(map[uuid.UUID]decimal.Decimal, len(req.Lawyers))
	total := decimal.Zero
	for _, l := range req.Lawyers {
		if l.Share.IsNegative() {
			return nil, nil, domain.NewValidationError("shares cannot be negative", "lawyers", "Must be greater than or equal to 0")
		}
		byID[l.LawyerID] = *l.Share
		total = total.Add(*l.Share)
	}
	if !total.Equal(decimal.NewFromInt(100)) {
		return nil, nil, domain.NewValidationError("shares must add up to 100", "lawyers", "shares must add up to 100")
	}

	shares := make([]decimal.Decimal, len(ids))
	for i, id := range ids {
		shares[i] = byID[id]
	}
	return ids, shares, nil
}

func (s *CaseService) requireActiveLawyer(ctx context.Context, id uuid.UUID) error {
	lawyer, err := s.lawyers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lawyer.Status != domain.LawyerStatusActive {
		return domain.NewValidationError("the lawyer is not active", "lawyerId", lawyer.Name+" is inactive")
	}
	return nil
}

func (s *CaseService) today() time.Time {
	y, m, d := s.now().In(s.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Update applies a partial change. Marking the commission paid liquidates
// every lawyer share; reverting a paid commission is rejected. The commission
// amount changes only when given explicitly or when RecalculateCommission
// is set.
func (s *CaseService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCaseRequest) (*domain.Case, error) {
	if err := validateRequest(req); err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}
	if req.CommissionPaid != nil && !*req.CommissionPaid {
		return nil, notifyFailure(ctx, s.notifier, ErrCommissionReset)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notifyFailure(ctx, s.notifier, fmt.Errorf("failed to update case: %w", err))
	}

	change, err := s.planChange(ctx, current, req)
	if err != nil {
		return nil, notifyFailure(ctx, s.notifier, err)
	}

	updated, err := s.repo.Apply(ctx, id, change)
	if err != nil {
		return nil, notifyFailure(ctx, s.notifier, fmt.Errorf("failed to update case: %w", err))
	}

	s.cache.Invalidate(entityCases)
	s.notifier.Success(ctx, "Caso actualizado", updated.CaseNumber)

	return updated, nil
}

func (s *CaseService) planChange(ctx context.Context, current *domain.Case, req *domain.UpdateCaseRequest) (repository.CaseChange, error) {
	change := repository.CaseChange{Fields: map[string]interface{}{}}
	assoc := map[uuid.UUID]map[string]interface{}{}

	if req.Status != nil {
		change.Fields["status"] = *req.Status
	}
	if req.Notes != nil {
		change.Fields["notes"] = *req.Notes
	}

	if req.LawyerID != nil && (current.LawyerID == nil || *current.LawyerID != *req.LawyerID) {
		if err := s.requireActiveLawyer(ctx, *req.LawyerID); err != nil {
			return change, err
		}
		change.Fields["lawyer_id"] = *req.LawyerID
		// a single unpaid share follows the lead lawyer
		if len(current.CaseLawyers) == 1 {
			cl := current.CaseLawyers[0]
			if !cl.CommissionPaid && cl.LawyerID != *req.LawyerID {
				assoc[cl.ID] = map[string]interface{}{"lawyer_id": *req.LawyerID}
			}
		}
	}

	total := current.TotalAmount
	if req.TotalAmount != nil {
		if err := nonNegative("totalAmount", *req.TotalAmount); err != nil {
			return change, err
		}
		total = req.TotalAmount.Round(2)
		change.Fields["total_amount"] = total
	}

	var commission *decimal.Decimal
	switch {
	case req.CommissionAmount != nil:
		if err := nonNegative("commissionAmount", *req.CommissionAmount); err != nil {
			return change, err
		}
		v := req.CommissionAmount.Round(2)
		commission = &v
	case req.RecalculateCommission:
		if current.Service == nil {
			return change, domain.NewValidationError("the case service no longer exists", "serviceId", "cannot recalculate")
		}
		v := finance.CommissionFor(total, current.Service.CommissionPercentage)
		commission = &v
	}

	if commission != nil && !commission.Equal(current.CommissionAmount) {
		if current.CommissionPaid {
			return change, ErrCommissionLocked
		}
		previous := make([]decimal.Decimal, len(current.CaseLawyers))
		for i, cl := range current.CaseLawyers {
			if cl.CommissionPaid {
				return change, ErrCommissionLocked
			}
			previous[i] = cl.CommissionAmount
		}
		for i, amount := range finance.RedistributeCommission(*commission, previous) {
			id := current.CaseLawyers[i].ID
			if assoc[id] == nil {
				assoc[id] = map[string]interface{}{}
			}
			assoc[id]["commission_amount"] = amount
		}
		change.Fields["commission_amount"] = *commission
	}

	for _, cl := range current.CaseLawyers {
		if fields, ok := assoc[cl.ID]; ok {
			change.Associations = append(change.Associations, repository.AssociationChange{ID: cl.ID, Fields: fields})
		}
	}

	if req.CommissionPaid != nil && *req.CommissionPaid {
		change.MarkPaid = true
		change.PaidAt = s.now().UTC()
	}

	return change, nil
}

// RecalculateCommission recomputes the commission from the case total and
// the service percentage and re-splits it across the lawyers.
func (s *CaseService) RecalculateCommission(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	return s.Update(ctx, id, &domain.UpdateCaseRequest{RecalculateCommission: true})
}

// LiquidateLawyer marks one lawyer's share paid. For cases without shares
// the lead lawyer's liquidation pays the whole case.
func (s *CaseService) LiquidateLawyer(ctx context.Context, caseID, lawyerID uuid.UUID) (*domain.Case, error) {
	current, err := s.repo.GetByID(ctx, caseID)
	if err != nil {
		return nil, notifyFailure(ctx, s.notifier, fmt.Errorf("failed to liquidate commission: %w", err))
	}

	if len(current.CaseLawyers) == 0 {
		if current.LawyerID == nil || *current.LawyerID != lawyerID {
			return nil, notifyFailure(ctx, s.notifier,
				domain.NewStoreError("update", domain.TableCaseLawyers, domain.ErrRecordNotFound))
		}
		paid := true
		return s.Update(ctx, caseID, &domain.UpdateCaseRequest{CommissionPaid: &paid})
	}

	updated, err := s.repo.MarkLawyerPaid(ctx, caseID, lawyerID, s.now().UTC())
	if err != nil {
		return nil, notifyFailure(ctx, s.notifier, fmt.Errorf("failed to liquidate commission: %w", err))
	}

	s.cache.Invalidate(entityCases)
	s.notifier.Success(ctx, "Comisión liquidada", updated.CaseNumber)
	return updated, nil
}

func (s *CaseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notifyFailure(ctx, s.notifier, fmt.Errorf("failed to delete case: %w", err))
	}

	s.cache.Invalidate(entityCases)
	s.notifier.Success(ctx, "Caso eliminado", "")
	s.logger.Info("case deleted", zap.String("case_id", id.String()))
	return nil
}
