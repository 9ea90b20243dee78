package pdf

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
)

func TestGenerateProfitReport(t *testing.T) {
	g := NewMarotoReportGenerator()
	report := &dto.ReportResponse{
		Period:      dto.PeriodDTO{StartDate: "2025-06-01", EndDate: "2025-06-30"},
		Granularity: "daily",
		Buckets: []dto.ReportBucketDTO{
			{Key: "2025-06-10", Revenue: decimal.NewFromInt(40), Profit: decimal.NewFromFloat(20.8), NetProfit: decimal.NewFromFloat(20.8), OrderCount: 1},
			{Key: "2025-06-15", Revenue: decimal.NewFromInt(10), Profit: decimal.NewFromFloat(5.2), Losses: decimal.NewFromInt(4), NetProfit: decimal.NewFromFloat(1.2), OrderCount: 1},
		},
	}
	report.Total = dto.ReportTotalsDTO{Revenue: decimal.NewFromInt(50), CanceledRevenue: decimal.NewFromInt(10)}
	profit := &dto.ProfitDTO{TotalRevenue: decimal.NewFromInt(40), NetProfit: decimal.NewFromInt(22)}

	data, err := g.GenerateProfitReport("Reporte de utilidad", report, profit)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "debe ser un PDF")

	empty := &dto.ReportResponse{Granularity: "monthly"}
	data, err = g.GenerateProfitReport("Sin ventas", empty, &dto.ProfitDTO{})
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = g.GenerateProfitReport("x", nil, profit)
	assert.Error(t, err)
}

func TestSummaryRows_ConciliaIngresoCancelado(t *testing.T) {
	g := NewMarotoReportGenerator()
	profit := &dto.ProfitDTO{TotalRevenue: decimal.NewFromInt(40)}

	sinCancelaciones := g.summaryRows(profit, dto.ReportTotalsDTO{Revenue: decimal.NewFromInt(40)})
	conCancelaciones := g.summaryRows(profit, dto.ReportTotalsDTO{Revenue: decimal.NewFromInt(50), CanceledRevenue: decimal.NewFromInt(10)})
	assert.Len(t, conCancelaciones, len(sinCancelaciones)+2, "agrega ingreso cancelado e ingreso de la tabla")
}

func TestMoneyFormat(t *testing.T) {
	g := NewMarotoReportGenerator()
	assert.Contains(t, g.money(decimal.NewFromInt(5)), "5")
	assert.Contains(t, g.percent(decimal.NewFromInt(12)), "%")
}
