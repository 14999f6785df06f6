package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	sheetSummary = "Resumen"
	sheetPending = "Pendientes"
	sheetPaid    = "Liquidadas"
	sheetRanking = "Ranking"
)

// ReportContentType is the MIME type of the finance workbook
const ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportService renders the finance summary as a spreadsheet
type ReportService struct {
	dashboard *DashboardService
	logger    *zap.Logger
}

func NewReportService(dashboard *DashboardService, logger *zap.Logger) *ReportService {
	return &ReportService{
		dashboard: dashboard,
		logger:    logger,
	}
}

// ReportFilename names the workbook generated at now, e.g. finanzas-2026-10.xlsx
func ReportFilename(now time.Time) string {
	return fmt.Sprintf("finanzas-%04d-%02d.xlsx", now.Year(), int(now.Month()))
}

// BuildFinanceWorkbook builds a workbook with the dashboard statistics, the
// pending and paid commissions and the lawyer ranking.
func (s *ReportService) BuildFinanceWorkbook(ctx context.Context, now time.Time) (*excelize.File, error) {
	summary, err := s.dashboard.GetFinanceSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load finance summary: %w", err)
	}
	ranking, err := s.dashboard.GetRanking(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load lawyer ranking: %w", err)
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetSummary)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})

	stats := summary.Stats
	rows := [][]interface{}{
		{"Ingresos totales", stats.TotalRevenue.InexactFloat64()},
		{"Ingresos del mes", stats.MonthlyRevenue.InexactFloat64()},
		{"Monto pagado (neto)", stats.NetRevenue().InexactFloat64()},
		{"Comisiones pagadas", stats.TotalCommissions.InexactFloat64()},
		{"Comisiones pendientes", stats.PendingCommissions.InexactFloat64()},
		{"Casos activos", stats.ActiveCases},
		{"Casos completados", stats.CompletedCases},
		{"Abogados", stats.TotalLawyers},
		{"Clientes", stats.TotalClients},
	}
	f.SetCellValue(sheetSummary, "A1", "Reporte financiero")
	f.SetCellValue(sheetSummary, "A2", now.Format(domain.DateLayout))
	f.SetCellStyle(sheetSummary, "A1", "A1", titleStyle)
	for i, row := range rows {
		if err := f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", i+4), &row); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(sheetSummary, "A", "A", 28)
	f.SetColWidth(sheetSummary, "B", "B", 16)

	if err := writeCaseSheet(f, sheetPending, summary.Pending, headerStyle); err != nil {
		return nil, err
	}
	if err := writeCaseSheet(f, sheetPaid, summary.Paid, headerStyle); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetRanking); err != nil {
		return nil, err
	}
	header := []interface{}{"Abogado", "Casos", "Contratado", "Comisiones", "Pagado", "Neto"}
	if err := f.SetSheetRow(sheetRanking, "A1", &header); err != nil {
		return nil, err
	}
	f.SetCellStyle(sheetRanking, "A1", "F1", headerStyle)
	for i, e := range ranking {
		row := []interface{}{
			e.Name,
			e.Cases,
			e.Contracted.InexactFloat64(),
			e.Commissions.InexactFloat64(),
			e.CommissionsPaid.InexactFloat64(),
			e.Net().InexactFloat64(),
		}
		if err := f.SetSheetRow(sheetRanking, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(sheetRanking, "A", "F", 18)

	return f, nil
}

func writeCaseSheet(f *excelize.File, sheet string, cases []domain.Case, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{"Caso", "Cliente", "Servicio", "Abogado", "Inicio", "Total", "Comisión", "Pagada el"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	f.SetCellStyle(sheet, "A1", "H1", headerStyle)

	for i, c := range cases {
		var client, service, lawyer, paidAt string
		if c.Client != nil {
			client = c.Client.Name
		}
		if c.Service != nil {
			service = c.Service.Name
		}
		if c.Lawyer != nil {
			lawyer = c.Lawyer.Name
		}
		if c.CommissionPaidAt != nil {
			paidAt = c.CommissionPaidAt.Format(domain.DateLayout)
		}
		row := []interface{}{
			c.CaseNumber,
			client,
			service,
			lawyer,
			c.StartDate.Format(domain.DateLayout),
			c.TotalAmount.InexactFloat64(),
			c.CommissionAmount.InexactFloat64(),
			paidAt,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	f.SetColWidth(sheet, "A", "H", 18)
	return nil
}

// WriteFinanceReport writes the workbook to w
func (s *ReportService) WriteFinanceReport(ctx context.Context, w io.Writer, now time.Time) error {
	f, err := s.BuildFinanceWorkbook(ctx, now)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// RenderFinanceReport returns the workbook bytes
func (s *ReportService) RenderFinanceReport(ctx context.Context, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.WriteFinanceReport(ctx, &buf, now); err != nil {
		return nil, err
	}
	s.logger.Debug("finance report rendered", zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}
