// Package analytics contiene los casos de uso de reportes de rentabilidad, salud del inventario
// y el dashboard. Consultan los repositorios y delegan la aritmética en el dominio.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/application/ports"
	"github.com/jhoicas/SellerOps-api/internal/domain/analytics"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/inventory"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

// AnalyticsUseCase orquesta las consultas read-only y aplica las reglas de negocio:
//   - Desglose de utilidad y reporte diario/mensual con pérdidas por cancelación.
//   - Comparación de períodos por SKU.
//   - Salud del inventario y sugerencias de reorden.
type AnalyticsUseCase struct {
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	canceledRepo repository.CanceledOrderRepository
	settingsRepo repository.SettingsRepository
	pdf          ports.ReportPDFGenerator
	now          func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso. pdf puede ser nil si no se expone el reporte PDF.
func NewAnalyticsUseCase(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	canceledRepo repository.CanceledOrderRepository,
	settingsRepo repository.SettingsRepository,
	pdf ports.ReportPDFGenerator,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		canceledRepo: canceledRepo,
		settingsRepo: settingsRepo,
		pdf:          pdf,
		now:          time.Now,
	}
}

// Profit desglose de utilidad de las ventas completadas del período.
func (uc *AnalyticsUseCase) Profit(ctx context.Context, userID string, req dto.DateRangeRequest) (*dto.ProfitResponse, error) {
	from, to, err := dto.ParsePeriod(req.StartDate, req.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	sales, err := uc.loadSales(ctx, userID, from, to, entity.SaleStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("analytics: ventas: %w", err)
	}
	return &dto.ProfitResponse{
		Period: dto.NewPeriodDTO(from, to),
		Profit: dto.NewProfitDTO(analytics.ComputeProfit(analytics.LinesFromSales(sales))),
	}, nil
}

// Report agrupa las ventas del período por día o mes. Las ventas canceladas cuentan en su
// bucket original y su pérdida se descuenta en ese mismo bucket.
func (uc *AnalyticsUseCase) Report(ctx context.Context, userID string, req dto.ReportRequest) (*dto.ReportResponse, error) {
	g, err := analytics.ParseGranularity(req.Granularity)
	if err != nil {
		return nil, err
	}
	from, to, err := dto.ParsePeriod(req.StartDate, req.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	sales, err := uc.loadSales(ctx, userID, from, to, "")
	if err != nil {
		return nil, fmt.Errorf("analytics: ventas: %w", err)
	}
	canceled, err := uc.canceledRepo.ListBySaleDate(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics: cancelaciones: %w", err)
	}

	report := analytics.BuildReport(analytics.LinesFromSales(sales), toLosses(canceled), g)
	out := &dto.ReportResponse{
		Period:      dto.NewPeriodDTO(from, to),
		Granularity: string(report.Granularity),
		Buckets:     make([]dto.ReportBucketDTO, 0, len(report.Buckets)),
		Total: dto.ReportTotalsDTO{
			Revenue:      report.Total.Revenue.Round(2),
			Profit:       report.Total.Profit.Round(2),
			Losses:       report.Total.Losses.Round(2),
			NetProfit:    report.Total.NetProfit.Round(2),
			ProfitMargin: report.Total.ProfitMargin.Round(2),
			OrderCount:   report.Total.OrderCount,
			SalesCount:   report.Total.SalesCount,

			CanceledRevenue: report.Total.CanceledRevenue.Round(2),
		},
	}
	for _, b := range report.Buckets {
		out.Buckets = append(out.Buckets, dto.ReportBucketDTO{
			Key:        b.Key,
			Revenue:    b.Revenue.Round(2),
			Profit:     b.Profit.Round(2),
			Losses:     b.Losses.Round(2),
			NetProfit:  b.NetProfit.Round(2),
			OrderCount: b.OrderCount,
			SalesCount: b.SalesCount,
		})
	}
	return out, nil
}

// Trends compara métricas por SKU entre dos períodos. Sin fechas compara los últimos 30 días
// contra los 30 anteriores.
func (uc *AnalyticsUseCase) Trends(ctx context.Context, userID string, req dto.TrendsRequest) (*dto.TrendsResponse, error) {
	now := uc.now()
	curFrom, curTo, err := dto.ParsePeriod(req.CurrentStart, req.CurrentEnd, now)
	if err != nil {
		return nil, err
	}
	var prevFrom, prevTo time.Time
	if req.PreviousStart == "" && req.PreviousEnd == "" {
		days := calendarDays(curFrom, curTo)
		prevTo = dto.EndOfDay(curFrom.AddDate(0, 0, -1))
		prevFrom = dto.StartOfDay(prevTo).AddDate(0, 0, -days)
	} else {
		prevFrom, prevTo, err = dto.ParsePeriod(req.PreviousStart, req.PreviousEnd, now)
		if err != nil {
			return nil, err
		}
	}

	from, to := prevFrom, curTo
	if curFrom.Before(from) {
		from = curFrom
	}
	if prevTo.After(to) {
		to = prevTo
	}
	sales, err := uc.loadSales(ctx, userID, from, to, entity.SaleStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("analytics: ventas: %w", err)
	}

	trends := analytics.ComparePeriods(
		analytics.LinesFromSales(sales),
		analytics.Period{Start: curFrom, End: curTo},
		analytics.Period{Start: prevFrom, End: prevTo},
	)
	items := make([]dto.SKUTrendDTO, 0, len(trends))
	for _, t := range trends {
		items = append(items, dto.SKUTrendDTO{
			SKU:            t.SKU,
			ProductName:    t.ProductName,
			Current:        dto.NewPeriodMetricsDTO(t.Current),
			Previous:       dto.NewPeriodMetricsDTO(t.Previous),
			MarginChange:   dto.NewChangeDTO(t.MarginChange),
			QuantityChange: dto.NewChangeDTO(t.QuantityChange),
		})
	}
	return &dto.TrendsResponse{
		Current:  dto.NewPeriodDTO(curFrom, curTo),
		Previous: dto.NewPeriodDTO(prevFrom, prevTo),
		Items:    items,
	}, nil
}

// calendarDays días de calendario entre las fechas de from y to, sin contar to.
// Se calcula en UTC para que un cambio de horario no sume ni reste una hora.
func calendarDays(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// InventoryHealth clasifica cada producto no descontinuado según días de stock y tendencia.
// Ordenado de menos a más días de stock.
func (uc *AnalyticsUseCase) InventoryHealth(ctx context.Context, userID string) (*dto.InventoryHealthResponse, error) {
	now := uc.now()
	products, err := uc.productRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("analytics: productos: %w", err)
	}
	history, err := uc.loadSales(ctx, userID, time.Time{}, now, entity.SaleStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("analytics: historial: %w", err)
	}
	items := healthItems(products, saleRecordsBySKU(history), now)
	summary := map[string]int{
		inventory.HealthCritical:    0,
		inventory.HealthWarning:     0,
		inventory.HealthGood:        0,
		inventory.HealthOverstocked: 0,
	}
	for _, it := range items {
		summary[it.Health]++
	}
	return &dto.InventoryHealthResponse{
		AsOf:    now.Format(dto.DateLayout),
		Items:   items,
		Summary: summary,
	}, nil
}

// Reorder sugerencias de compra usando el margen mínimo configurado por el usuario.
func (uc *AnalyticsUseCase) Reorder(ctx context.Context, userID string) (*dto.ReorderResponse, error) {
	now := uc.now()
	products, err := uc.productRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("analytics: productos: %w", err)
	}
	history, err := uc.loadSales(ctx, userID, time.Time{}, now, entity.SaleStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("analytics: historial: %w", err)
	}
	settings, err := uc.settings(ctx, userID)
	if err != nil {
		return nil, err
	}

	recs := inventory.RecommendReorder(stockItems(products), saleRecordsBySKU(history), settings.MinProfitMargin, now)
	return &dto.ReorderResponse{
		AsOf:            now.Format(dto.DateLayout),
		MinProfitMargin: settings.MinProfitMargin,
		Items:           toReorderDTOs(recs),
	}, nil
}

// WorstProduct SKU menos rentable de los últimos days días. ok=false si no hubo ventas.
func (uc *AnalyticsUseCase) WorstProduct(ctx context.Context, userID string, days int) (analytics.SKUSummary, bool, error) {
	now := uc.now()
	from := dto.StartOfDay(now.AddDate(0, 0, -(days - 1)))
	sales, err := uc.loadSales(ctx, userID, from, dto.EndOfDay(now), entity.SaleStatusCompleted)
	if err != nil {
		return analytics.SKUSummary{}, false, fmt.Errorf("analytics: ventas: %w", err)
	}
	w, ok := analytics.WorstProduct(analytics.LinesFromSales(sales))
	return w, ok, nil
}

func (uc *AnalyticsUseCase) loadSales(ctx context.Context, userID string, from, to time.Time, status string) ([]*entity.Sale, error) {
	return uc.saleRepo.List(ctx, userID, repository.SaleFilter{From: from, To: to, Status: status})
}

func (uc *AnalyticsUseCase) settings(ctx context.Context, userID string) (*entity.AppSettings, error) {
	s, err := uc.settingsRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("analytics: configuración: %w", err)
	}
	if s == nil {
		return entity.DefaultAppSettings(userID), nil
	}
	return s, nil
}

func toLosses(canceled []*entity.CanceledOrder) []analytics.CancellationLoss {
	out := make([]analytics.CancellationLoss, 0, len(canceled))
	for _, c := range canceled {
		out = append(out, analytics.CancellationLoss{SaleID: c.SaleID, Loss: c.Loss})
	}
	return out
}

func saleRecordsBySKU(sales []*entity.Sale) map[string][]inventory.SaleRecord {
	out := make(map[string][]inventory.SaleRecord)
	for _, s := range sales {
		l := analytics.LineFromSale(s)
		out[s.SKU] = append(out[s.SKU], inventory.SaleRecord{
			SKU:      s.SKU,
			Date:     s.SaleDate,
			Quantity: s.Quantity,
			Revenue:  l.TotalRevenue(),
			Profit:   l.ContributionProfit(),
		})
	}
	return out
}

func stockItems(products []*entity.Product) []inventory.StockItem {
	out := make([]inventory.StockItem, 0, len(products))
	for _, p := range products {
		out = append(out, inventory.StockItem{
			SKU:      p.SKU,
			Name:     p.Name,
			Quantity: p.Quantity,
			Active:   p.Status != entity.ProductStatusDiscontinued,
		})
	}
	return out
}

func healthItems(products []*entity.Product, bySKU map[string][]inventory.SaleRecord, asOf time.Time) []dto.InventoryHealthDTO {
	items := make([]dto.InventoryHealthDTO, 0, len(products))
	for _, p := range products {
		if p.Status == entity.ProductStatusDiscontinued {
			continue
		}
		h := inventory.ClassifyHealth(p.SKU, p.Quantity, bySKU[p.SKU], asOf)
		items = append(items, dto.InventoryHealthDTO{
			SKU:         p.SKU,
			ProductName: p.Name,
			Quantity:    p.Quantity,
			Velocity:    round2(h.Velocity),
			DaysOfStock: round2(h.DaysOfStock),
			Health:      h.Status,
			Trend:       h.Trend,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DaysOfStock != items[j].DaysOfStock {
			return items[i].DaysOfStock < items[j].DaysOfStock
		}
		return items[i].SKU < items[j].SKU
	})
	return items
}

func toReorderDTOs(recs []inventory.ReorderRecommendation) []dto.ReorderDTO {
	out := make([]dto.ReorderDTO, 0, len(recs))
	for _, r := range recs {
		d := dto.ReorderDTO{
			SKU:                 r.SKU,
			ProductName:         r.ProductName,
			CurrentQuantity:     r.CurrentQuantity,
			Velocity:            round2(r.Velocity),
			DaysUntilStockout:   round2(r.DaysUntilStockout),
			Trend:               r.Trend,
			RecommendedQuantity: r.RecommendedQuantity,
			Priority:            r.Priority,
			MarginBlocked:       r.MarginBlocked,
		}
		if r.TrailingMargin != nil {
			m := r.TrailingMargin.Round(2)
			d.TrailingMargin = &m
		}
		out = append(out, d)
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
