package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/SellerOps-api/internal/domain"
)

// Granularity agrupación temporal del reporte.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// ParseGranularity valida la granularidad recibida por query string.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case "", GranularityDaily:
		return GranularityDaily, nil
	case GranularityMonthly:
		return GranularityMonthly, nil
	}
	return "", fmt.Errorf("%w: granularidad inválida %q (daily|monthly)", domain.ErrInvalidInput, s)
}

// CancellationLoss pérdida registrada para una venta cancelada, indexada por el ID de la venta original.
type CancellationLoss struct {
	SaleID string
	Loss   decimal.Decimal
}

// Bucket resumen de un día o de un mes.
type Bucket struct {
	Key        string // YYYY-MM-DD o YYYY-MM
	Start      time.Time
	Revenue    decimal.Decimal
	Profit     decimal.Decimal // utilidad neta antes de cancelaciones
	Losses     decimal.Decimal
	NetProfit  decimal.Decimal // Profit - Losses
	OrderCount int
	SalesCount int
	// CanceledRevenue parte de Revenue que corresponde a ventas canceladas.
	CanceledRevenue decimal.Decimal

	orders map[string]struct{}
}

// ReportTotals total general del reporte.
type ReportTotals struct {
	Revenue      decimal.Decimal
	Profit       decimal.Decimal
	Losses       decimal.Decimal
	NetProfit    decimal.Decimal
	ProfitMargin decimal.Decimal // NetProfit / Revenue * 100
	OrderCount   int
	SalesCount   int
	// CanceledRevenue ingreso de ventas canceladas incluido en Revenue. El desglose de
	// utilidad solo cuenta ventas completadas, así que difiere de Revenue en este monto.
	CanceledRevenue decimal.Decimal
}

// Report secuencia ordenada de buckets más el total.
type Report struct {
	Granularity Granularity
	Buckets     []Bucket
	Total       ReportTotals
}

// BuildReport agrupa las ventas por día y descuenta las pérdidas por cancelación en el bucket
// de la venta original. La vista mensual colapsa los buckets diarios.
func BuildReport(lines []ProfitLine, canceled []CancellationLoss, g Granularity) Report {
	daily := bucketize(lines, canceled, func(t time.Time) (string, time.Time) {
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return t.Format(dayLayout), start
	})

	buckets := daily
	if g == GranularityMonthly {
		buckets = CollapseMonthly(daily)
	} else {
		g = GranularityDaily
	}

	return Report{
		Granularity: g,
		Buckets:     buckets,
		Total:       totals(buckets),
	}
}

// CollapseMonthly combina buckets diarios que comparten año-mes.
// Los pedidos se unen por clave, así que el conteo es el mismo que agrupar directo por mes.
func CollapseMonthly(daily []Bucket) []Bucket {
	byMonth := make(map[string]*Bucket)
	for _, d := range daily {
		key := d.Start.Format(monthLayout)
		m, ok := byMonth[key]
		if !ok {
			m = &Bucket{
				Key:    key,
				Start:  time.Date(d.Start.Year(), d.Start.Month(), 1, 0, 0, 0, 0, d.Start.Location()),
				orders: make(map[string]struct{}),
			}
			byMonth[key] = m
		}
		m.Revenue = m.Revenue.Add(d.Revenue)
		m.Profit = m.Profit.Add(d.Profit)
		m.Losses = m.Losses.Add(d.Losses)
		m.CanceledRevenue = m.CanceledRevenue.Add(d.CanceledRevenue)
		m.SalesCount += d.SalesCount
		for k := range d.orders {
			m.orders[k] = struct{}{}
		}
	}
	return finalize(byMonth)
}

func bucketize(lines []ProfitLine, canceled []CancellationLoss, keyFn func(time.Time) (string, time.Time)) []Bucket {
	losses := make(map[string]decimal.Decimal, len(canceled))
	for _, c := range canceled {
		losses[c.SaleID] = losses[c.SaleID].Add(c.Loss)
	}
	owners := orderCostOwners(lines)

	byKey := make(map[string]*Bucket)
	for i, l := range lines {
		key, start := keyFn(l.SaleDate)
		b, ok := byKey[key]
		if !ok {
			b = &Bucket{Key: key, Start: start, orders: make(map[string]struct{})}
			byKey[key] = b
		}
		b.Revenue = b.Revenue.Add(l.TotalRevenue())
		b.Profit = b.Profit.Add(l.ContributionProfit())
		if cost, owns := owners[i]; owns {
			b.Profit = b.Profit.Sub(cost)
		}
		if loss, ok := losses[l.SaleID]; ok {
			b.Losses = b.Losses.Add(loss)
			b.CanceledRevenue = b.CanceledRevenue.Add(l.TotalRevenue())
		}
		b.SalesCount++
		b.orders[l.OrderKey] = struct{}{}
	}
	return finalize(byKey)
}

func finalize(byKey map[string]*Bucket) []Bucket {
	out := make([]Bucket, 0, len(byKey))
	for _, b := range byKey {
		b.NetProfit = b.Profit.Sub(b.Losses)
		b.OrderCount = len(b.orders)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func totals(buckets []Bucket) ReportTotals {
	var t ReportTotals
	orders := make(map[string]struct{})
	for _, b := range buckets {
		t.Revenue = t.Revenue.Add(b.Revenue)
		t.Profit = t.Profit.Add(b.Profit)
		t.Losses = t.Losses.Add(b.Losses)
		t.CanceledRevenue = t.CanceledRevenue.Add(b.CanceledRevenue)
		t.SalesCount += b.SalesCount
		for k := range b.orders {
			orders[k] = struct{}{}
		}
	}
	t.NetProfit = t.Profit.Sub(t.Losses)
	t.OrderCount = len(orders)
	t.ProfitMargin = Margin(t.NetProfit, t.Revenue)
	return t
}
