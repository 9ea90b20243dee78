package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
)

// ErrPDFUnavailable el servidor se levantó sin generador de PDF.
var ErrPDFUnavailable = errors.New("generador de PDF no configurado")

// ReportPDF genera el reporte por períodos y el desglose de utilidad del mismo rango en PDF.
// La tabla por período incluye las ventas canceladas y el desglose no; el PDF muestra esa
// diferencia como ingreso cancelado. Retorna los bytes y el nombre de archivo sugerido.
func (uc *AnalyticsUseCase) ReportPDF(ctx context.Context, userID string, req dto.ReportRequest) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", ErrPDFUnavailable
	}
	report, err := uc.Report(ctx, userID, req)
	if err != nil {
		return nil, "", err
	}
	profit, err := uc.Profit(ctx, userID, req.DateRangeRequest)
	if err != nil {
		return nil, "", err
	}

	title := fmt.Sprintf("Reporte de utilidad %s a %s", report.Period.StartDate, report.Period.EndDate)
	pdfBytes, err := uc.pdf.GenerateProfitReport(title, report, &profit.Profit)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar reporte: %w", err)
	}
	filename := fmt.Sprintf("reporte-%s_%s.pdf", report.Period.StartDate, report.Period.EndDate)
	return pdfBytes, filename, nil
}
