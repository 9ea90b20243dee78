package ports

import "github.com/jhoicas/SellerOps-api/internal/application/dto"

// ReportPDFGenerator puerto de salida para renderizar el reporte de utilidad a PDF.
type ReportPDFGenerator interface {
	GenerateProfitReport(title string, report *dto.ReportResponse, profit *dto.ProfitDTO) ([]byte, error)
}
