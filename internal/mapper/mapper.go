package mapper

import (
	"time"

	"github.com/lexfirm/backoffice-api/internal/domain"
)

const timestampLayout = "2006-01-02T15:04:05Z"

func timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func optionalTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return timestamp(*t)
}

// ToLawyerDTO converts Lawyer to LawyerDTO
func ToLawyerDTO(lawyer *domain.Lawyer) domain.LawyerDTO {
	specialties := lawyer.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	dto := domain.LawyerDTO{
		ID:          lawyer.ID,
		Name:        lawyer.Name,
		Email:       lawyer.Email,
		Phone:       lawyer.Phone,
		Specialties: specialties,
		Status:      lawyer.Status,
		CreatedAt:   timestamp(lawyer.CreatedAt),
		UpdatedAt:   timestamp(lawyer.UpdatedAt),
	}
	if lawyer.HireDate != nil {
		dto.HireDate = lawyer.HireDate.Format(domain.DateLayout)
	}
	return dto
}

func ToLawyerDTOs(lawyers []domain.Lawyer) []domain.LawyerDTO {
	dtos := make([]domain.LawyerDTO, len(lawyers))
	for i := range lawyers {
		dtos[i] = ToLawyerDTO(&lawyers[i])
	}
	return dtos
}

// ToClientDTO converts Client to ClientDTO
func ToClientDTO(client *domain.Client) domain.ClientDTO {
	return domain.ClientDTO{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Company:   client.Company,
		Address:   client.Address,
		TaxID:     client.TaxID,
		Notes:     client.Notes,
		CreatedAt: timestamp(client.CreatedAt),
		UpdatedAt: timestamp(client.UpdatedAt),
	}
}

func ToClientDTOs(clients []domain.Client) []domain.ClientDTO {
	dtos := make([]domain.ClientDTO, len(clients))
	for i := range clients {
		dtos[i] = ToClientDTO(&clients[i])
	}
	return dtos
}

// ToLegalServiceDTO converts LegalService to LegalServiceDTO
func ToLegalServiceDTO(service *domain.LegalService) domain.LegalServiceDTO {
	return domain.LegalServiceDTO{
		ID:                   service.ID,
		Name:                 service.Name,
		Description:          service.Description,
		Category:             service.Category,
		BasePrice:            service.BasePrice.InexactFloat64(),
		CommissionPercentage: service.CommissionPercentage.InexactFloat64(),
		CommissionType:       service.CommissionType,
		IsActive:             service.IsActive,
		CreatedAt:            timestamp(service.CreatedAt),
		UpdatedAt:            timestamp(service.UpdatedAt),
	}
}

func ToLegalServiceDTOs(services []domain.LegalService) []domain.LegalServiceDTO {
	dtos := make([]domain.LegalServiceDTO, len(services))
	for i := range services {
		dtos[i] = ToLegalServiceDTO(&services[i])
	}
	return dtos
}

// ToCaseDTO converts Case to CaseDTO, flattening the expanded relations
func ToCaseDTO(c *domain.Case) domain.CaseDTO {
	dto := domain.CaseDTO{
		ID:               c.ID,
		CaseNumber:       c.CaseNumber,
		ClientID:         c.ClientID,
		ServiceID:        c.ServiceID,
		LawyerID:         c.LawyerID,
		Lawyers:          make([]domain.CaseLawyerDTO, 0, len(c.CaseLawyers)),
		Status:           c.Status,
		TotalAmount:      c.TotalAmount.InexactFloat64(),
		CommissionAmount: c.CommissionAmount.InexactFloat64(),
		CommissionPaid:   c.CommissionPaid,
		CommissionPaidAt: optionalTimestamp(c.CommissionPaidAt),
		StartDate:        c.StartDate.Format(domain.DateLayout),
		Notes:            c.Notes,
		CreatedAt:        timestamp(c.CreatedAt),
		UpdatedAt:        timestamp(c.UpdatedAt),
	}

	if c.Client != nil {
		client := ToClientDTO(c.Client)
		dto.Client = &client
		dto.ClientName = c.Client.Name
	}
	if c.Service != nil {
		service := ToLegalServiceDTO(c.Service)
		dto.Service = &service
		dto.ServiceName = c.Service.Name
	}
	if c.Lawyer != nil {
		dto.LawyerName = c.Lawyer.Name
	}

	for _, cl := range c.CaseLawyers {
		share := domain.CaseLawyerDTO{
			LawyerID:         cl.LawyerID,
			CommissionAmount: cl.CommissionAmount.InexactFloat64(),
			CommissionPaid:   cl.CommissionPaid,
			CommissionPaidAt: optionalTimestamp(cl.CommissionPaidAt),
		}
		if cl.Lawyer != nil {
			share.LawyerName = cl.Lawyer.Name
		}
		dto.Lawyers = append(dto.Lawyers, share)
	}

	return dto
}

func ToCaseDTOs(cases []domain.Case) []domain.CaseDTO {
	dtos := make([]domain.CaseDTO, len(cases))
	for i := range cases {
		dtos[i] = ToCaseDTO(&cases[i])
	}
	return dtos
}

// ToDashboardStatsDTO converts DashboardStats to DashboardStatsDTO
func ToDashboardStatsDTO(stats *domain.DashboardStats) domain.DashboardStatsDTO {
	return domain.DashboardStatsDTO{
		TotalRevenue:       stats.TotalRevenue.InexactFloat64(),
		MonthlyRevenue:     stats.MonthlyRevenue.InexactFloat64(),
		NetRevenue:         stats.NetRevenue().InexactFloat64(),
		TotalCommissions:   stats.TotalCommissions.InexactFloat64(),
		PendingCommissions: stats.PendingCommissions.InexactFloat64(),
		ActiveCases:        stats.ActiveCases,
		CompletedCases:     stats.CompletedCases,
		TotalLawyers:       stats.TotalLawyers,
		TotalClients:       stats.TotalClients,
	}
}

func ToLawyerRankingDTOs(ranking []domain.LawyerRankingEntry) []domain.LawyerRankingDTO {
	dtos := make([]domain.LawyerRankingDTO, len(ranking))
	for i, e := range ranking {
		dtos[i] = domain.LawyerRankingDTO{
			LawyerID:        e.LawyerID,
			Name:            e.Name,
			Cases:           e.Cases,
			Contracted:      e.Contracted.InexactFloat64(),
			Commissions:     e.Commissions.InexactFloat64(),
			CommissionsPaid: e.CommissionsPaid.InexactFloat64(),
			Net:             e.Net().InexactFloat64(),
		}
	}
	return dtos
}

func ToFinanceSummaryDTO(summary *domain.FinanceSummary) domain.FinanceSummaryDTO {
	return domain.FinanceSummaryDTO{
		Stats:   ToDashboardStatsDTO(&summary.Stats),
		Pending: ToCaseDTOs(summary.Pending),
		Paid:    ToCaseDTOs(summary.Paid),
	}
}

// ToFirmSettingsDTO converts FirmSettings to FirmSettingsDTO
func ToFirmSettingsDTO(settings *domain.FirmSettings) domain.FirmSettingsDTO {
	return domain.FirmSettingsDTO{
		FirmName:             settings.FirmName,
		TaxID:                settings.TaxID,
		Address:              settings.Address,
		Phone:                settings.Phone,
		Email:                settings.Email,
		Currency:             settings.Currency,
		Locale:               settings.Locale,
		NotifyCaseCreated:    settings.NotifyCaseCreated,
		NotifyCommissionPaid: settings.NotifyCommissionPaid,
		BackupFrequency:      settings.BackupFrequency,
		UpdatedAt:            timestamp(settings.UpdatedAt),
	}
}
