package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/domain"
)

// caseExpansion loads everything the dashboard and finance views read
var caseExpansion = []QueryOption{
	Expand("Client", "Service", "Lawyer"),
	ExpandOrdered("CaseLawyers", "created_at ASC"),
	Expand("CaseLawyers.Lawyer"),
}

type CaseRepository struct {
	gw *Gateway
}

func NewCaseRepository(gw *Gateway) *CaseRepository {
	return &CaseRepository{gw: gw}
}

// AssociationChange updates one case_lawyers row
type AssociationChange struct {
	ID     uuid.UUID
	Fields map[string]interface{}
}

// CaseChange is applied atomically by Apply
type CaseChange struct {
	Fields       map[string]interface{}
	Associations []AssociationChange
	// MarkPaid liquidates the case and every unpaid association. PaidAt is
	// only stamped on the first transition to paid.
	MarkPaid bool
	PaidAt   time.Time
}

// List returns every case with client, service and lawyers expanded, newest first
func (r *CaseRepository) List(ctx context.Context) ([]domain.Case, error) {
	var cases []domain.Case
	if err := r.gw.FetchAll(ctx, domain.TableCases, &cases, caseExpansion...); err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	return fetchCase(ctx, r.gw, id)
}

func fetchCase(ctx context.Context, gw *Gateway, id uuid.UUID) (*domain.Case, error) {
	var c domain.Case
	if err := gw.FetchOne(ctx, domain.TableCases, id, &c, caseExpansion...); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the case and its lawyer assignments in one transaction
func (r *CaseRepository) Create(ctx context.Context, c *domain.Case, assignments []domain.CaseLawyer) error {
	return r.gw.Transaction(ctx, func(tx *Gateway) error {
		if err := tx.Insert(ctx, domain.TableCases, c); err != nil {
			return err
		}
		for i := range assignments {
			assignments[i].CaseID = c.ID
			if err := tx.Insert(ctx, domain.TableCaseLawyers, &assignments[i]); err != nil {
				return err
			}
		}
		c.CaseLawyers = assignments
		return nil
	})
}

// Apply writes a change to a case and returns the reloaded case
func (r *CaseRepository) Apply(ctx context.Context, id uuid.UUID, change CaseChange) (*domain.Case, error) {
	var updated *domain.Case
	err := r.gw.Transaction(ctx, func(tx *Gateway) error {
		fields := make(map[string]interface{}, len(change.Fields)+1)
		for k, v := range change.Fields {
			fields[k] = v
		}

		if change.MarkPaid {
			if err := stampPaid(ctx, tx, id, change.PaidAt); err != nil {
				return err
			}
			fields["commission_paid"] = true
		}

		if len(fields) > 0 {
			if err := tx.Update(ctx, domain.TableCases, id, fields, nil); err != nil {
				return err
			}
		}

		for _, a := range change.Associations {
			n, err := tx.UpdateWhere(ctx, domain.TableCaseLawyers, a.Fields, "id = ? AND case_id = ?", a.ID, id)
			if err != nil {
				return err
			}
			if n == 0 {
				return domain.NewStoreError("update", domain.TableCaseLawyers, domain.ErrRecordNotFound)
			}
		}

		c, err := fetchCase(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// stampPaid sets paid_at on the case and on every association that is not
// yet paid, then marks those associations paid.
func stampPaid(ctx context.Context, tx *Gateway, caseID uuid.UUID, paidAt time.Time) error {
	if _, err := tx.UpdateWhere(ctx, domain.TableCases,
		map[string]interface{}{"commission_paid_at": paidAt},
		"id = ? AND commission_paid = ?", caseID, false,
	); err != nil {
		return err
	}
	_, err := tx.UpdateWhere(ctx, domain.TableCaseLawyers,
		map[string]interface{}{"commission_paid": true, "commission_paid_at": paidAt},
		"case_id = ? AND commission_paid = ?", caseID, false,
	)
	return err
}

// MarkLawyerPaid liquidates one lawyer's share. The case itself becomes paid
// once no unpaid share remains.
func (r *CaseRepository) MarkLawyerPaid(ctx context.Context, caseID, lawyerID uuid.UUID, paidAt time.Time) (*domain.Case, error) {
	var updated *domain.Case
	err := r.gw.Transaction(ctx, func(tx *Gateway) error {
		assigned, err := tx.Count(ctx, domain.TableCaseLawyers, "case_id = ? AND lawyer_id = ?", caseID, lawyerID)
		if err != nil {
			return err
		}
		if assigned == 0 {
			return domain.NewStoreError("update", domain.TableCaseLawyers, domain.ErrRecordNotFound)
		}

		if _, err := tx.UpdateWhere(ctx, domain.TableCaseLawyers,
			map[string]interface{}{"commission_paid": true, "commission_paid_at": paidAt},
			"case_id = ? AND lawyer_id = ? AND commission_paid = ?", caseID, lawyerID, false,
		); err != nil {
			return err
		}

		remaining, err := tx.Count(ctx, domain.TableCaseLawyers, "case_id = ? AND commission_paid = ?", caseID, false)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := stampPaid(ctx, tx, caseID, paidAt); err != nil {
				return err
			}
			if err := tx.Update(ctx, domain.TableCases, caseID, map[string]interface{}{"commission_paid": true}, nil); err != nil {
				return err
			}
		}

		c, err := fetchCase(ctx, tx, caseID)
		if err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the case together with its lawyer assignments
func (r *CaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.gw.Transaction(ctx, func(tx *Gateway) error {
		if err := tx.DeleteWhere(ctx, domain.TableCaseLawyers, "case_id = ?", id); err != nil {
			return err
		}
		return tx.Delete(ctx, domain.TableCases, id)
	})
}
