package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/domain/analytics"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/inventory"
)

const dashboardTopSKUs = 5 // número de SKUs en el widget del dashboard

// Dashboard construye el resumen del día y del mes en curso más las alertas de inventario.
//
// Cinco consultas en paralelo (errgroup; la primera falla cancela las demás):
//  1. ventas completadas del mes   → Today, Month, TopSKUs
//  2. cancelaciones del mes        → MonthLosses
//  3. productos                    → StockAlerts
//  4. historial de ventas          → velocidad y tendencia
//  5. configuración                → margen mínimo para UrgentReorders
func (uc *AnalyticsUseCase) Dashboard(ctx context.Context, userID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := dto.StartOfDay(now)
	todayEnd := dto.EndOfDay(now)
	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		monthSales []*entity.Sale
		canceled   []*entity.CanceledOrder
		products   []*entity.Product
		history    []*entity.Sale
		settings   *entity.AppSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		monthSales, err = uc.loadSales(gctx, userID, monthStart, todayEnd, entity.SaleStatusCompleted)
		if err != nil {
			return fmt.Errorf("dashboard: ventas del mes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		canceled, err = uc.canceledRepo.ListBySaleDate(gctx, userID, monthStart, todayEnd)
		if err != nil {
			return fmt.Errorf("dashboard: cancelaciones: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = uc.productRepo.ListAll(gctx, userID)
		if err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		history, err = uc.loadSales(gctx, userID, time.Time{}, todayEnd, entity.SaleStatusCompleted)
		if err != nil {
			return fmt.Errorf("dashboard: historial: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		settings, err = uc.settings(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	monthLines := analytics.LinesFromSales(monthSales)
	todayLines := make([]analytics.ProfitLine, 0)
	for _, l := range monthLines {
		if !l.SaleDate.Before(todayStart) {
			todayLines = append(todayLines, l)
		}
	}

	monthLosses := decimal.Zero
	for _, c := range canceled {
		monthLosses = monthLosses.Add(c.Loss)
	}

	bySKU := saleRecordsBySKU(history)
	alerts := make([]dto.InventoryHealthDTO, 0)
	for _, h := range healthItems(products, bySKU, now) {
		if h.Health == inventory.HealthCritical || h.Health == inventory.HealthWarning {
			alerts = append(alerts, h)
		}
	}
	urgent := 0
	for _, r := range inventory.RecommendReorder(stockItems(products), bySKU, settings.MinProfitMargin, now) {
		if r.Priority == inventory.PriorityHigh && r.RecommendedQuantity > 0 {
			urgent++
		}
	}

	return &dto.DashboardSummaryDTO{
		Today:          dto.NewProfitDTO(analytics.ComputeProfit(todayLines)),
		Month:          dto.NewProfitDTO(analytics.ComputeProfit(monthLines)),
		MonthLosses:    monthLosses.Round(2),
		TopSKUs:        topSKUs(monthLines, monthStart, todayEnd),
		StockAlerts:    alerts,
		UrgentReorders: urgent,
		DateLabel:      monthLabel(now),
	}, nil
}

// topSKUs reutiliza la comparación de períodos con un período anterior vacío:
// el resultado ya viene ordenado por ingreso descendente.
func topSKUs(lines []analytics.ProfitLine, from, to time.Time) []dto.TopSKUDTO {
	trends := analytics.ComparePeriods(lines, analytics.Period{Start: from, End: to}, analytics.Period{})
	if len(trends) > dashboardTopSKUs {
		trends = trends[:dashboardTopSKUs]
	}
	out := make([]dto.TopSKUDTO, 0, len(trends))
	for _, t := range trends {
		out = append(out, dto.TopSKUDTO{
			SKU:              t.SKU,
			ProductName:      t.ProductName,
			QuantitySold:     t.Current.QuantitySold,
			TotalRevenue:     t.Current.Revenue.Round(2),
			MarginPercentage: t.Current.Margin.Round(2),
		})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
