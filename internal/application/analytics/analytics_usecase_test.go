package analytics

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/inventory"
	"github.com/jhoicas/SellerOps-api/internal/infrastructure/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testUser = "user-1"

var fixedNow = time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(m time.Month, d int) time.Time { return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC) }

type fakePDF struct {
	title  string
	report *dto.ReportResponse
	profit *dto.ProfitDTO
}

func (f *fakePDF) GenerateProfitReport(title string, report *dto.ReportResponse, profit *dto.ProfitDTO) ([]byte, error) {
	f.title, f.report, f.profit = title, report, profit
	return []byte("%PDF-1.4"), nil
}

// seedStore carga un escenario fijo:
//   - MUG: 1 unidad, ventas el 20/05, 10/06 y 30/06, más una venta cancelada el 15/06.
//   - PLATE: 200 unidades, una venta el 30/06 en el mismo pedido que MUG.
//   - LAMP: descontinuado.
func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	products := []*entity.Product{
		{ID: "p1", UserID: testUser, SKU: "MUG", Name: "Taza", Quantity: 1, CostPerUnit: dec("4"), Status: entity.ProductStatusLowStock},
		{ID: "p2", UserID: testUser, SKU: "PLATE", Name: "Plato", Quantity: 200, CostPerUnit: dec("8"), Status: entity.ProductStatusActive},
		{ID: "p3", UserID: testUser, SKU: "LAMP", Name: "Lámpara", Quantity: 10, CostPerUnit: dec("20"), Status: entity.ProductStatusDiscontinued},
		{ID: "p4", UserID: "otro", SKU: "MUG", Name: "Ajena", Quantity: 0, Status: entity.ProductStatusOutOfStock},
	}
	for _, p := range products {
		require.NoError(t, store.Products().Create(ctx, p))
	}

	sale := func(id, order, sku, name string, qty int, price, cost, add string, date time.Time, status string) *entity.Sale {
		return &entity.Sale{
			ID: id, UserID: testUser, OrderNumber: order, SKU: sku, ProductName: name, Quantity: qty,
			UnitPrice: dec(price), UnitCost: dec(cost), AdditionalCost: dec(add), SaleDate: date, Status: status,
		}
	}
	require.NoError(t, store.Sales().CreateBatch(ctx, []*entity.Sale{
		sale("s0", "ORD-0", "MUG", "Taza", 1, "10", "4", "0", day(time.May, 20), entity.SaleStatusCompleted),
		sale("s1", "ORD-1", "MUG", "Taza", 2, "10", "4", "1", day(time.June, 30), entity.SaleStatusCompleted),
		sale("s2", "ORD-1", "PLATE", "Plato", 1, "20", "8", "1", day(time.June, 30), entity.SaleStatusCompleted),
		sale("s3", "ORD-2", "MUG", "Taza", 4, "10", "4", "0", day(time.June, 10), entity.SaleStatusCompleted),
		sale("s4", "ORD-3", "MUG", "Taza", 1, "10", "4", "0", day(time.June, 15), entity.SaleStatusCanceled),
	}))
	require.NoError(t, store.CanceledOrders().Create(ctx, &entity.CanceledOrder{
		ID: "c1", UserID: testUser, SaleID: "s4", RefundAmount: dec("10"),
		ShippingStatus: entity.ShippingStatusAfter, Loss: dec("4"), CanceledAt: day(time.June, 16),
	}))
	return store
}

func newAnalyticsUC(store *memory.Store, pdf *fakePDF) *AnalyticsUseCase {
	var uc *AnalyticsUseCase
	if pdf == nil {
		uc = NewAnalyticsUseCase(store.Products(), store.Sales(), store.CanceledOrders(), store.Settings(), nil)
	} else {
		uc = NewAnalyticsUseCase(store.Products(), store.Sales(), store.CanceledOrders(), store.Settings(), pdf)
	}
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestProfit_SoloVentasCompletadas(t *testing.T) {
	uc := newAnalyticsUC(seedStore(t), nil)

	out, err := uc.Profit(context.Background(), testUser, dto.DateRangeRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", out.Period.StartDate)
	assert.Equal(t, "2025-06-30", out.Period.EndDate)

	p := out.Profit
	assert.True(t, p.TotalRevenue.Equal(dec("80")), "got %s", p.TotalRevenue)
	assert.True(t, p.PlatformFee.Equal(dec("6.4")), "got %s", p.PlatformFee)
	assert.True(t, p.CostOfGoods.Equal(dec("32")), "got %s", p.CostOfGoods)
	// el costo adicional de ORD-1 se cobra una sola vez
	assert.True(t, p.AdditionalCosts.Equal(dec("1")), "got %s", p.AdditionalCosts)
	assert.True(t, p.NetProfit.Equal(dec("40.6")), "got %s", p.NetProfit)
	assert.True(t, p.ProfitMargin.Equal(dec("50.75")), "got %s", p.ProfitMargin)
	assert.Equal(t, 2, p.OrderCount)

	_, err = uc.Profit(context.Background(), testUser, dto.DateRangeRequest{StartDate: "2025-07-01", EndDate: "2025-06-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReport_IncluyePerdidasPorCancelacion(t *testing.T) {
	uc := newAnalyticsUC(seedStore(t), nil)
	ctx := context.Background()

	daily, err := uc.Report(ctx, testUser, dto.ReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "daily", daily.Granularity)
	require.Len(t, daily.Buckets, 3)
	assert.Equal(t, "2025-06-10", daily.Buckets[0].Key)
	assert.Equal(t, "2025-06-15", daily.Buckets[1].Key)
	assert.True(t, daily.Buckets[1].Losses.Equal(dec("4")), "la pérdida cae en el día de la venta original")
	assert.True(t, daily.Buckets[1].NetProfit.Equal(dec("1.2")), "got %s", daily.Buckets[1].NetProfit)

	monthly, err := uc.Report(ctx, testUser, dto.ReportRequest{Granularity: "monthly"})
	require.NoError(t, err)
	require.Len(t, monthly.Buckets, 1)
	assert.Equal(t, "2025-06", monthly.Buckets[0].Key)

	total := monthly.Total
	assert.True(t, total.Revenue.Equal(dec("90")), "got %s", total.Revenue)
	assert.True(t, total.Losses.Equal(dec("4")))
	assert.True(t, total.NetProfit.Equal(dec("41.8")), "got %s", total.NetProfit)
	assert.Equal(t, 3, total.OrderCount)
	assert.Equal(t, 4, total.SalesCount)
	assert.True(t, daily.Total.NetProfit.Equal(total.NetProfit), "el total no depende de la granularidad")
	assert.Equal(t, daily.Total.OrderCount, total.OrderCount)

	_, err = uc.Report(ctx, testUser, dto.ReportRequest{Granularity: "weekly"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReport_IngresoCanceladoConciliaConDesglose(t *testing.T) {
	uc := newAnalyticsUC(seedStore(t), nil)
	ctx := context.Background()

	report, err := uc.Report(ctx, testUser, dto.ReportRequest{Granularity: "monthly"})
	require.NoError(t, err)
	profit, err := uc.Profit(ctx, testUser, dto.DateRangeRequest{})
	require.NoError(t, err)

	// s4 (cancelada, 1 x 10) entra en la tabla pero no en el desglose.
	assert.True(t, report.Total.CanceledRevenue.Equal(dec("10")), "got %s", report.Total.CanceledRevenue)
	assert.True(t, report.Total.Revenue.Sub(report.Total.CanceledRevenue).Equal(profit.Profit.TotalRevenue),
		"tabla %s - cancelado %s != desglose %s", report.Total.Revenue, report.Total.CanceledRevenue, profit.Profit.TotalRevenue)
}

func TestTrends_PeriodoAnteriorPorDefecto(t *testing.T) {
	uc := newAnalyticsUC(seedStore(t), nil)

	out, err := uc.Trends(context.Background(), testUser, dto.TrendsRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2025-05-02", out.Previous.StartDate)
	assert.Equal(t, "2025-05-31", out.Previous.EndDate)

	require.Len(t, out.Items, 2)
	mug, plate := out.Items[0], out.Items[1]
	assert.Equal(t, "MUG", mug.SKU)
	assert.Equal(t, 6, mug.Current.QuantitySold)
	assert.Equal(t, 1, mug.Previous.QuantitySold)
	require.NotNil(t, mug.QuantityChange.Value)
	assert.True(t, mug.QuantityChange.Value.Equal(dec("500")), "got %s", mug.QuantityChange.Value)

	assert.Equal(t, "PLATE", plate.SKU)
	assert.Nil(t, plate.QuantityChange.Value)
	assert.True(t, plate.QuantityChange.Unbounded)
}

func TestTrends_PeriodoAnteriorConCambioDeHorario(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	uc := newAnalyticsUC(memory.NewStore(), nil)
	uc.now = func() time.Time { return time.Date(2025, time.March, 20, 12, 0, 0, 0, loc) }

	// El período anterior (6 al 12 de marzo) cruza el cambio de horario del 9 de marzo.
	out, err := uc.Trends(context.Background(), testUser, dto.TrendsRequest{CurrentStart: "2025-03-13", CurrentEnd: "2025-03-19"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-06", out.Previous.StartDate)
	assert.Equal(t, "2025-03-12", out.Previous.EndDate)

	// Noviembre: el período actual cruza el fin del horario de verano.
	out, err = uc.Trends(context.Background(), testUser, dto.TrendsRequest{CurrentStart: "2025-11-01", CurrentEnd: "2025-11-03"})
	require.NoError(t, err)
	assert.Equal(t, "2025-10-29", out.Previous.StartDate)
	assert.Equal(t, "2025-10-31", out.Previous.EndDate)
}

func TestCalendarDays(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	from := time.Date(2025, time.March, 8, 0, 0, 0, 0, loc)
	to := time.Date(2025, time.March, 10, 23, 59, 59, 0, loc)
	assert.Equal(t, 2, calendarDays(from, to))
	assert.Equal(t, 0, calendarDays(from, from))
}

func TestInventoryHealth(t *testing.T) {
	uc := newAnalyticsUC(seedStore(t), nil)

	out, err := uc.InventoryHealth(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-30", out.AsOf)
	require.Len(t, out.Items, 2, "los productos descontinuados se omiten")

	mug := out.Items[0]
	assert.Equal(t, "MUG", mug.SKU)
	assert.InDelta(t, 0.17, mug.Velocity, 1e-9)
	assert.InDelta(t, 5.86, mug.DaysOfStock, 1e-9)
	assert.Equal(t, inventory.HealthCritical, mug.Health)
	assert.Equal(t, inventory.TrendDecreasing, mug.Trend)

	assert.Equal(t, "PLATE", out.Items[1].SKU)
	assert.Equal(t, inventory.HealthOverstocked, out.Items[1].Health)

	assert.Equal(t, 1, out.Summary[inventory.HealthCritical])
	assert.Equal(t, 0, out.Summary[inventory.HealthWarning])
	assert.Equal(t, 1, out.Summary[inventory.HealthOverstocked])
}

func TestReorder(t *testing.T) {
	store := seedStore(t)
	uc := newAnalyticsUC(store, nil)
	ctx := context.Background()

	out, err := uc.Reorder(ctx, testUser)
	require.NoError(t, err)
	assert.True(t, out.MinProfitMargin.Equal(dec("10")), "sin configuración se usa el margen por defecto")
	require.Len(t, out.Items, 2)

	mug := out.Items[0]
	assert.Equal(t, "MUG", mug.SKU)
	assert.Equal(t, inventory.PriorityHigh, mug.Priority)
	assert.Equal(t, 7, mug.RecommendedQuantity)
	require.NotNil(t, mug.TrailingMargin)
	assert.True(t, mug.TrailingMargin.Equal(dec("52")), "got %s", mug.TrailingMargin)
	assert.Equal(t, inventory.PriorityLow, out.Items[1].Priority)

	require.NoError(t, store.Settings().Upsert(ctx, &entity.AppSettings{UserID: testUser, MinProfitMargin: dec("60")}))
	out, err = uc.Reorder(ctx, testUser)
	require.NoError(t, err)
	for _, it := range out.Items {
		assert.True(t, it.MarginBlocked, it.SKU)
		assert.Zero(t, it.RecommendedQuantity, it.SKU)
	}
}

func TestWorstProduct(t *testing.T) {
	uc := newAnalyticsUC(seedStore(t), nil)

	w, ok, err := uc.WorstProduct(context.Background(), testUser, 30)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "PLATE", w.SKU)

	_, ok, err = uc.WorstProduct(context.Background(), "sin-ventas", 30)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDashboard(t *testing.T) {
	uc := newAnalyticsUC(seedStore(t), nil)

	out, err := uc.Dashboard(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, "Junio 2025", out.DateLabel)
	assert.True(t, out.Today.NetProfit.Equal(dec("19.8")), "got %s", out.Today.NetProfit)
	assert.True(t, out.Month.NetProfit.Equal(dec("40.6")), "got %s", out.Month.NetProfit)
	assert.True(t, out.MonthLosses.Equal(dec("4")))

	require.Len(t, out.TopSKUs, 2)
	assert.Equal(t, "MUG", out.TopSKUs[0].SKU)
	assert.True(t, out.TopSKUs[0].TotalRevenue.Equal(dec("60")))

	require.Len(t, out.StockAlerts, 1)
	assert.Equal(t, "MUG", out.StockAlerts[0].SKU)
	assert.Equal(t, 1, out.UrgentReorders)
}

func TestDashboard_UsuarioSinDatos(t *testing.T) {
	uc := newAnalyticsUC(memory.NewStore(), nil)

	out, err := uc.Dashboard(context.Background(), testUser)
	require.NoError(t, err)
	assert.True(t, out.Month.NetProfit.IsZero())
	assert.Empty(t, out.TopSKUs)
	assert.Empty(t, out.StockAlerts)
	assert.Zero(t, out.UrgentReorders)
}

func TestReportPDF(t *testing.T) {
	pdf := &fakePDF{}
	uc := newAnalyticsUC(seedStore(t), pdf)

	data, filename, err := uc.ReportPDF(context.Background(), testUser, dto.ReportRequest{Granularity: "monthly"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.Equal(t, "reporte-2025-06-01_2025-06-30.pdf", filename)
	assert.Equal(t, "Reporte de utilidad 2025-06-01 a 2025-06-30", pdf.title)
	require.NotNil(t, pdf.profit)
	assert.True(t, pdf.profit.NetProfit.Equal(dec("40.6")))
	require.NotNil(t, pdf.report)
	assert.True(t, pdf.report.Total.CanceledRevenue.Equal(dec("10")), "got %s", pdf.report.Total.CanceledRevenue)

	_, _, err = newAnalyticsUC(seedStore(t), nil).ReportPDF(context.Background(), testUser, dto.ReportRequest{})
	assert.True(t, errors.Is(err, ErrPDFUnavailable))
}
