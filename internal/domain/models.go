package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Table names the record collections exposed by the store gateway
type Table string

const (
	TableLawyers         Table = "lawyers"
	TableClients         Table = "clients"
	TableLegalServices   Table = "legal_services"
	TableCases           Table = "cases"
	TableCaseLawyers     Table = "case_lawyers"
	TableNumberSequences Table = "number_sequences"
	TableFirmSettings    Table = "firm_settings"
)

// Base model with common fields. IDs are assigned client-side so that
// postgres and sqlite behave the same.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns a new UUID when none was set
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// LawyerStatus controls whether a lawyer can take new case assignments
type LawyerStatus string

const (
	LawyerStatusActive   LawyerStatus = "active"
	LawyerStatusInactive LawyerStatus = "inactive"
)

// Lawyer is a practitioner who can be assigned to cases and earns commissions
type Lawyer struct {
	BaseModel
	Name        string       `gorm:"type:varchar(200);not null;index"`
	Email       string       `gorm:"type:varchar(255)"`
	Phone       string       `gorm:"type:varchar(50)"`
	Specialties []string     `gorm:"type:text;serializer:json"`
	Status      LawyerStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	HireDate    *time.Time   `gorm:"type:date"`
}

func (Lawyer) TableName() string { return string(TableLawyers) }

// Client is a person or company the firm works for
type Client struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Email   string `gorm:"type:varchar(255)"`
	Phone   string `gorm:"type:varchar(50)"`
	Company string `gorm:"type:varchar(200)"`
	Address string `gorm:"type:varchar(500)"`
	TaxID   string `gorm:"type:varchar(50);column:tax_id"`
	Notes   string `gorm:"type:text"`
}

func (Client) TableName() string { return string(TableClients) }

// ServiceCategory groups legal services by practice area
type ServiceCategory string

const (
	ServiceCategoryCorporate ServiceCategory = "Corporativo"
	ServiceCategoryFamily    ServiceCategory = "Familiar"
	ServiceCategoryCriminal  ServiceCategory = "Penal"
	ServiceCategoryLabor     ServiceCategory = "Laboral"
	ServiceCategoryCivil     ServiceCategory = "Civil"
)

// CommissionType describes how a service's commission is agreed with lawyers
type CommissionType string

const (
	CommissionTypeFixed    CommissionType = "fixed"
	CommissionTypeVariable CommissionType = "variable"
)

// LegalService is a catalog entry with a base price and commission percentage
type LegalService struct {
	BaseModel
	Name                 string          `gorm:"type:varchar(200);not null"`
	Description          string          `gorm:"type:text"`
	Category             ServiceCategory `gorm:"type:varchar(50);not null;index"`
	BasePrice            decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CommissionPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CommissionType       CommissionType  `gorm:"type:varchar(20);not null;default:'variable'"`
	IsActive             bool            `gorm:"not null;index"`
}

func (LegalService) TableName() string { return string(TableLegalServices) }

// CaseStatus tracks the lifecycle of a case
type CaseStatus string

const (
	CaseStatusActive     CaseStatus = "active"
	CaseStatusInProgress CaseStatus = "in_progress"
	CaseStatusCompleted  CaseStatus = "completed"
	CaseStatusCancelled  CaseStatus = "cancelled"
)

// Case is a matter handled for a client under one legal service. The
// commission split across lawyers lives in CaseLawyers; LawyerID is the lead
// lawyer kept for cases created before multi-lawyer assignment existed.
type Case struct {
	BaseModel
	CaseNumber       string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	ClientID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Client           *Client         `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	ServiceID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Service          *LegalService   `gorm:"foreignKey:ServiceID;constraint:OnDelete:RESTRICT"`
	LawyerID         *uuid.UUID      `gorm:"type:uuid;index"`
	Lawyer           *Lawyer         `gorm:"foreignKey:LawyerID;constraint:OnDelete:RESTRICT"`
	CaseLawyers      []CaseLawyer    `gorm:"foreignKey:CaseID"`
	Status           CaseStatus      `gorm:"type:varchar(20);not null;default:'active';index"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CommissionPaid   bool            `gorm:"not null;default:false;index"`
	CommissionPaidAt *time.Time
	StartDate        time.Time `gorm:"type:date;not null"`
	Notes            string    `gorm:"type:text"`
}

func (Case) TableName() string { return string(TableCases) }

// CaseLawyer assigns a lawyer to a case with their share of the commission
type CaseLawyer struct {
	BaseModel
	CaseID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_case_lawyers_case_lawyer"`
	LawyerID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_case_lawyers_case_lawyer;index"`
	Lawyer           *Lawyer         `gorm:"foreignKey:LawyerID;constraint:OnDelete:RESTRICT"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CommissionPaid   bool            `gorm:"not null;default:false"`
	CommissionPaidAt *time.Time
}

func (CaseLawyer) TableName() string { return string(TableCaseLawyers) }

// NumberSequence tracks the last issued sequence per prefix and year
type NumberSequence struct {
	ID           uint   `gorm:"primaryKey"`
	Prefix       string `gorm:"type:varchar(20);not null;uniqueIndex:idx_number_sequences_prefix_year"`
	Year         int    `gorm:"not null;uniqueIndex:idx_number_sequences_prefix_year"`
	LastSequence int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (NumberSequence) TableName() string { return string(TableNumberSequences) }

// BackupFrequency is a firm-level preference shown in settings
type BackupFrequency string

const (
	BackupDaily   BackupFrequency = "daily"
	BackupWeekly  BackupFrequency = "weekly"
	BackupMonthly BackupFrequency = "monthly"
)

// FirmSettings is the single row of firm-wide preferences
type FirmSettings struct {
	BaseModel
	FirmName             string          `gorm:"type:varchar(200);not null"`
	TaxID                string          `gorm:"type:varchar(50);column:tax_id"`
	Address              string          `gorm:"type:varchar(500)"`
	Phone                string          `gorm:"type:varchar(50)"`
	Email                string          `gorm:"type:varchar(255)"`
	Currency             string          `gorm:"type:varchar(3);not null;default:'MXN'"`
	Locale               string          `gorm:"type:varchar(10);not null;default:'es-MX'"`
	NotifyCaseCreated    bool            `gorm:"not null"`
	NotifyCommissionPaid bool            `gorm:"not null"`
	BackupFrequency      BackupFrequency `gorm:"type:varchar(20);not null;default:'weekly'"`
}

func (FirmSettings) TableName() string { return string(TableFirmSettings) }

// DefaultFirmSettings returns the row created the first time settings are read
func DefaultFirmSettings() FirmSettings {
	return FirmSettings{
		FirmName:             "Bufete Jurídico",
		Currency:             "MXN",
		Locale:               "es-MX",
		NotifyCaseCreated:    true,
		NotifyCommissionPaid: true,
		BackupFrequency:      BackupWeekly,
	}
}

// DashboardStats is derived from the current case, lawyer and client
// collections. TotalCommissions counts liquidated commissions only.
type DashboardStats struct {
	TotalRevenue       decimal.Decimal
	MonthlyRevenue     decimal.Decimal
	TotalCommissions   decimal.Decimal
	PendingCommissions decimal.Decimal
	ActiveCases        int
	CompletedCases     int
	TotalLawyers       int
	TotalClients       int
}

// NetRevenue is what the firm keeps once every commission, paid or pending,
// is discounted from the contracted total
func (s DashboardStats) NetRevenue() decimal.Decimal {
	return s.TotalRevenue.Sub(s.TotalCommissions).Sub(s.PendingCommissions)
}

// LawyerRankingEntry aggregates the cases and commissions of one lawyer
type LawyerRankingEntry struct {
	LawyerID        uuid.UUID
	Name            string
	Cases           int
	Contracted      decimal.Decimal
	Commissions     decimal.Decimal
	CommissionsPaid decimal.Decimal
}

// Net is the revenue the firm keeps from this lawyer's cases
func (e LawyerRankingEntry) Net() decimal.Decimal {
	return e.Contracted.Sub(e.Commissions)
}

// FinanceSummary backs the finances view and the exported workbook
type FinanceSummary struct {
	Stats   DashboardStats
	Pending []Case
	Paid    []Case
}
