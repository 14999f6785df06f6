// Package finance derives dashboard totals, lawyer rankings and commission
// lists from case collections. Every function is pure: inputs are never
// modified and results depend only on the arguments.
package finance

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CommissionFor returns total x percentage / 100 rounded to cents
func CommissionFor(total, percentage decimal.Decimal) decimal.Decimal {
	return total.Mul(percentage).Div(hundred).Round(2)
}

// SplitCommission divides amount by percentage shares. With no shares the
// split is equal across n parts. The last part absorbs the rounding
// remainder so the parts always sum to amount.
func SplitCommission(amount decimal.Decimal, n int, shares []decimal.Decimal) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	parts := make([]decimal.Decimal, n)
	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		if len(shares) == n {
			parts[i] = amount.Mul(shares[i]).Div(hundred).Round(2)
		} else {
			parts[i] = amount.Div(decimal.NewFromInt(int64(n))).Round(2)
		}
		allocated = allocated.Add(parts[i])
	}
	parts[n-1] = amount.Sub(allocated)
	return parts
}

// Assignments returns the lawyers credited with a case. Cases without
// case_lawyers rows fall back to the lead lawyer with the full commission.
func Assignments(c domain.Case) []domain.CaseLawyer {
	if len(c.CaseLawyers) > 0 {
		return c.CaseLawyers
	}
	if c.LawyerID == nil {
		return nil
	}
	return []domain.CaseLawyer{{
		CaseID:           c.ID,
		LawyerID:         *c.LawyerID,
		Lawyer:           c.Lawyer,
		CommissionAmount: c.CommissionAmount,
		CommissionPaid:   c.CommissionPaid,
		CommissionPaidAt: c.CommissionPaidAt,
	}}
}

// ComputeStats totals revenue and commissions. TotalCommissions sums paid
// commissions and PendingCommissions unpaid ones. MonthlyRevenue counts cases
// whose start date falls in the calendar month of now; start dates are
// calendar dates and are compared without timezone conversion.
func ComputeStats(cases []domain.Case, lawyerCount, clientCount int, now time.Time) domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalRevenue:       decimal.Zero,
		MonthlyRevenue:     decimal.Zero,
		TotalCommissions:   decimal.Zero,
		PendingCommissions: decimal.Zero,
		TotalLawyers:       lawyerCount,
		TotalClients:       clientCount,
	}

	for _, c := range cases {
		stats.TotalRevenue = stats.TotalRevenue.Add(c.TotalAmount)
		if c.CommissionPaid {
			stats.TotalCommissions = stats.TotalCommissions.Add(c.CommissionAmount)
		} else {
			stats.PendingCommissions = stats.PendingCommissions.Add(c.CommissionAmount)
		}

		if c.StartDate.Year() == now.Year() && c.StartDate.Month() == now.Month() {
			stats.MonthlyRevenue = stats.MonthlyRevenue.Add(c.TotalAmount)
		}

		switch c.Status {
		case domain.CaseStatusActive, domain.CaseStatusInProgress:
			stats.ActiveCases++
		case domain.CaseStatusCompleted:
			stats.CompletedCases++
		}
	}

	return stats
}

// RankLawyers aggregates contracted amounts and commissions per lawyer,
// ordered by contracted amount descending. Ties keep first-seen order.
func RankLawyers(cases []domain.Case) []domain.LawyerRankingEntry {
	index := make(map[uuid.UUID]int)
	var ranking []domain.LawyerRankingEntry

	for _, c := range cases {
		for _, a := range Assignments(c) {
			i, ok := index[a.LawyerID]
			if !ok {
				entry := domain.LawyerRankingEntry{
					LawyerID:        a.LawyerID,
					Contracted:      decimal.Zero,
					Commissions:     decimal.Zero,
					CommissionsPaid: decimal.Zero,
				}
				if a.Lawyer != nil {
					entry.Name = a.Lawyer.Name
				}
				ranking = append(ranking, entry)
				i = len(ranking) - 1
				index[a.LawyerID] = i
			}

			e := &ranking[i]
			if e.Name == "" && a.Lawyer != nil {
				e.Name = a.Lawyer.Name
			}
			e.Cases++
			e.Contracted = e.Contracted.Add(c.TotalAmount)
			e.Commissions = e.Commissions.Add(a.CommissionAmount)
			if a.CommissionPaid {
				e.CommissionsPaid = e.CommissionsPaid.Add(a.CommissionAmount)
			}
		}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Contracted.GreaterThan(ranking[j].Contracted)
	})
	return ranking
}

// PendingCommissions returns unpaid cases that carry a commission, in input order
func PendingCommissions(cases []domain.Case) []domain.Case {
	var out []domain.Case
	for _, c := range cases {
		if !c.CommissionPaid && c.CommissionAmount.IsPositive() {
			out = append(out, c)
		}
	}
	return out
}

// PaidCommissions returns liquidated cases, in input order
func PaidCommissions(cases []domain.Case) []domain.Case {
	var out []domain.Case
	for _, c := range cases {
		if c.CommissionPaid {
			out = append(out, c)
		}
	}
	return out
}

// CaseIDs extracts the ids of cases, in order
func CaseIDs(cases []domain.Case) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(cases))
	for _, c := range cases {
		ids = append(ids, c.ID)
	}
	return ids
}

// RedistributeCommission splits amount in proportion to previous amounts.
// When the previous amounts sum to zero the split is equal. The last part
// absorbs the rounding remainder.
func RedistributeCommission(amount decimal.Decimal, previous []decimal.Decimal) []decimal.Decimal {
	n := len(previous)
	if n == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, p := range previous {
		sum = sum.Add(p)
	}
	if sum.IsZero() {
		return SplitCommission(amount, n, nil)
	}

	parts := make([]decimal.Decimal, n)
	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = amount.Mul(previous[i]).Div(sum).Round(2)
		allocated = allocated.Add(parts[i])
	}
	parts[n-1] = amount.Sub(allocated)
	return parts
}
