package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for date-only fields
const DateLayout = "2006-01-02"

// Response DTOs. Money is rendered as a JSON number.

type LawyerDTO struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Specialties []string     `json:"specialties"`
	Status      LawyerStatus `json:"status"`
	HireDate    string       `json:"hireDate,omitempty"`
	CreatedAt   string       `json:"createdAt"` // ISO 8601
	UpdatedAt   string       `json:"updatedAt"` // ISO 8601
}

type ClientDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Address   string    `json:"address,omitempty"`
	TaxID     string    `json:"taxId,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

type LegalServiceDTO struct {
	ID                   uuid.UUID       `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	Category             ServiceCategory `json:"category"`
	BasePrice            float64         `json:"basePrice"`
	CommissionPercentage float64         `json:"commissionPercentage"`
	CommissionType       CommissionType  `json:"commissionType"`
	IsActive             bool            `json:"isActive"`
	CreatedAt            string          `json:"createdAt"`
	UpdatedAt            string          `json:"updatedAt"`
}

// CaseLawyerDTO is one lawyer's share of a case commission
type CaseLawyerDTO struct {
	LawyerID         uuid.UUID `json:"lawyerId"`
	LawyerName       string    `json:"lawyerName,omitempty"`
	CommissionAmount float64   `json:"commissionAmount"`
	CommissionPaid   bool      `json:"commissionPaid"`
	CommissionPaidAt string    `json:"commissionPaidAt,omitempty"`
}

type CaseDTO struct {
	ID               uuid.UUID        `json:"id"`
	CaseNumber       string           `json:"caseNumber"`
	ClientID         uuid.UUID        `json:"clientId"`
	ClientName       string           `json:"clientName,omitempty"`
	ServiceID        uuid.UUID        `json:"serviceId"`
	ServiceName      string           `json:"serviceName,omitempty"`
	LawyerID         *uuid.UUID       `json:"lawyerId,omitempty"`
	LawyerName       string           `json:"lawyerName,omitempty"`
	Lawyers          []CaseLawyerDTO  `json:"lawyers"`
	Status           CaseStatus       `json:"status"`
	TotalAmount      float64          `json:"totalAmount"`
	CommissionAmount float64          `json:"commissionAmount"`
	CommissionPaid   bool             `json:"commissionPaid"`
	CommissionPaidAt string           `json:"commissionPaidAt,omitempty"`
	StartDate        string           `json:"startDate"`
	Notes            string           `json:"notes,omitempty"`
	Client           *ClientDTO       `json:"client,omitempty"`
	Service          *LegalServiceDTO `json:"service,omitempty"`
	CreatedAt        string           `json:"createdAt"`
	UpdatedAt        string           `json:"updatedAt"`
}

type CaseNumberPreviewDTO struct {
	CaseNumber string `json:"caseNumber"`
}

type DashboardStatsDTO struct {
	TotalRevenue       float64 `json:"totalRevenue"`
	MonthlyRevenue     float64 `json:"monthlyRevenue"`
	NetRevenue         float64 `json:"netRevenue"`
	TotalCommissions   float64 `json:"totalCommissions"`
	PendingCommissions float64 `json:"pendingCommissions"`
	ActiveCases        int     `json:"activeCases"`
	CompletedCases     int     `json:"completedCases"`
	TotalLawyers       int     `json:"totalLawyers"`
	TotalClients       int     `json:"totalClients"`
}

type LawyerRankingDTO struct {
	LawyerID        uuid.UUID `json:"lawyerId"`
	Name            string    `json:"name"`
	Cases           int       `json:"cases"`
	Contracted      float64   `json:"contracted"`
	Commissions     float64   `json:"commissions"`
	CommissionsPaid float64   `json:"commissionsPaid"`
	Net             float64   `json:"net"`
}

type FinanceSummaryDTO struct {
	Stats   DashboardStatsDTO `json:"stats"`
	Pending []CaseDTO         `json:"pending"`
	Paid    []CaseDTO         `json:"paid"`
}

type FirmSettingsDTO struct {
	FirmName             string          `json:"firmName"`
	TaxID                string          `json:"taxId,omitempty"`
	Address              string          `json:"address,omitempty"`
	Phone                string          `json:"phone,omitempty"`
	Email                string          `json:"email,omitempty"`
	Currency             string          `json:"currency"`
	Locale               string          `json:"locale"`
	NotifyCaseCreated    bool            `json:"notifyCaseCreated"`
	NotifyCommissionPaid bool            `json:"notifyCommissionPaid"`
	BackupFrequency      BackupFrequency `json:"backupFrequency"`
	UpdatedAt            string          `json:"updatedAt"`
}

// NotificationLevel distinguishes success and failure feedback
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
	NotificationInfo    NotificationLevel = "info"
)

// Notification is a transient user-facing message produced by a mutation
type Notification struct {
	ID          uint64            `json:"id"`
	Level       NotificationLevel `json:"level"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// LiquidationItem is the outcome for one case in a batch liquidation
type LiquidationItem struct {
	CaseID uuid.UUID `json:"caseId"`
	OK     bool      `json:"ok"`
	Error  string    `json:"error,omitempty"`
}

// LiquidationResult reports a batch liquidation item by item
type LiquidationResult struct {
	Attempted int               `json:"attempted"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Items     []LiquidationItem `json:"items"`
}

// PaginatedResponse wraps list responses
type PaginatedResponse struct {
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
}

// Request DTOs

type CreateLawyerRequest struct {
	Name        string       `json:"name" validate:"required,max=200"`
	Email       string       `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone       string       `json:"phone,omitempty" validate:"max=50"`
	Specialties []string     `json:"specialties,omitempty" validate:"omitempty,dive,max=100"`
	Status      LawyerStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	HireDate    string       `json:"hireDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateLawyerRequest struct {
	Name        *string       `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email       *string       `json:"email,omitempty" validate:"omitempty,max=255"`
	Phone       *string       `json:"phone,omitempty" validate:"omitempty,max=50"`
	Specialties []string      `json:"specialties,omitempty" validate:"omitempty,dive,max=100"`
	Status      *LawyerStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	HireDate    *string       `json:"hireDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone   string `json:"phone,omitempty" validate:"max=50"`
	Company string `json:"company,omitempty" validate:"max=200"`
	Address string `json:"address,omitempty" validate:"max=500"`
	TaxID   string `json:"taxId,omitempty" validate:"max=50"`
	Notes   string `json:"notes,omitempty"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email,omitempty" validate:"omitempty,max=255"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	TaxID   *string `json:"taxId,omitempty" validate:"omitempty,max=50"`
	Notes   *string `json:"notes,omitempty"`
}

type CreateLegalServiceRequest struct {
	Name                 string          `json:"name" validate:"required,max=200"`
	Description          string          `json:"description,omitempty"`
	Category             ServiceCategory `json:"category" validate:"required,oneof=Corporativo Familiar Penal Laboral Civil"`
	BasePrice            decimal.Decimal `json:"basePrice"`
	CommissionPercentage decimal.Decimal `json:"commissionPercentage"`
	CommissionType       CommissionType  `json:"commissionType,omitempty" validate:"omitempty,oneof=fixed variable"`
	IsActive             *bool           `json:"isActive,omitempty"`
}

type UpdateLegalServiceRequest struct {
	Name                 *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description          *string          `json:"description,omitempty"`
	Category             *ServiceCategory `json:"category,omitempty" validate:"omitempty,oneof=Corporativo Familiar Penal Laboral Civil"`
	BasePrice            *decimal.Decimal `json:"basePrice,omitempty"`
	CommissionPercentage *decimal.Decimal `json:"commissionPercentage,omitempty"`
	CommissionType       *CommissionType  `json:"commissionType,omitempty" validate:"omitempty,oneof=fixed variable"`
	IsActive             *bool            `json:"isActive,omitempty"`
}

// CaseLawyerShare assigns a lawyer to a new case. Share is a percentage of
// the case commission; when every share is omitted the split is equal.
type CaseLawyerShare struct {
	LawyerID uuid.UUID        `json:"lawyerId" validate:"required"`
	Share    *decimal.Decimal `json:"share,omitempty"`
}

// CreateCaseRequest references an existing client by ClientID or registers a
// new one inline through Client. Exactly one of the two must be present.
type CreateCaseRequest struct {
	ClientID    *uuid.UUID           `json:"clientId,omitempty"`
	Client      *CreateClientRequest `json:"client,omitempty"`
	ServiceID   uuid.UUID            `json:"serviceId" validate:"required"`
	LawyerID    *uuid.UUID           `json:"lawyerId,omitempty"`
	Lawyers     []CaseLawyerShare    `json:"lawyers,omitempty" validate:"omitempty,dive"`
	TotalAmount *decimal.Decimal     `json:"totalAmount,omitempty"`
	StartDate   string               `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes       string               `json:"notes,omitempty"`
}

// UpdateCaseRequest is a partial update. The commission amount is only
// recomputed from the service percentage when RecalculateCommission is set.
type UpdateCaseRequest struct {
	Status                *CaseStatus      `json:"status,omitempty" validate:"omitempty,oneof=active in_progress completed cancelled"`
	LawyerID              *uuid.UUID       `json:"lawyerId,omitempty"`
	TotalAmount           *decimal.Decimal `json:"totalAmount,omitempty"`
	CommissionAmount      *decimal.Decimal `json:"commissionAmount,omitempty"`
	CommissionPaid        *bool            `json:"commissionPaid,omitempty"`
	Notes                 *string          `json:"notes,omitempty"`
	RecalculateCommission bool             `json:"recalculateCommission,omitempty"`
}

type LiquidateAllRequest struct {
	// CaseIDs defaults to every case with a pending commission when absent.
	// An explicit empty list liquidates nothing.
	CaseIDs []uuid.UUID `json:"caseIds,omitempty"`
}

type UpdateFirmSettingsRequest struct {
	FirmName             *string          `json:"firmName,omitempty" validate:"omitempty,min=1,max=200"`
	TaxID                *string          `json:"taxId,omitempty" validate:"omitempty,max=50"`
	Address              *string          `json:"address,omitempty" validate:"omitempty,max=500"`
	Phone                *string          `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email                *string          `json:"email,omitempty" validate:"omitempty,max=255"`
	Currency             *string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	Locale               *string          `json:"locale,omitempty" validate:"omitempty,max=10"`
	NotifyCaseCreated    *bool            `json:"notifyCaseCreated,omitempty"`
	NotifyCommissionPaid *bool            `json:"notifyCommissionPaid,omitempty"`
	BackupFrequency      *BackupFrequency `json:"backupFrequency,omitempty" validate:"omitempty,oneof=daily weekly monthly"`
}
