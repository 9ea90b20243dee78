// Package inventory agrupa los servicios de dominio sobre existencias: costo promedio ponderado,
// velocidad de venta, salud del inventario y recomendaciones de reorden.
package inventory

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Umbrales de días de stock (inclusivos).
const (
	CriticalDays = 7
	WarningDays  = 14
	GoodDays     = 60
)

// Estados de salud del inventario.
const (
	HealthCritical    = "critical"
	HealthWarning     = "warning"
	HealthGood        = "good"
	HealthOverstocked = "overstocked"
)

// Tendencias de demanda.
const (
	TrendIncreasing = "increasing"
	TrendStable     = "stable"
	TrendDecreasing = "decreasing"
)

const (
	velocityEpsilon = 0.01
	trendWindowDays = 14
	trendThreshold  = 0.10
)

// SaleRecord venta mínima para los cálculos de inventario.
type SaleRecord struct {
	SKU      string
	Date     time.Time
	Quantity int
	Revenue  decimal.Decimal // ingreso total de la línea
	Profit   decimal.Decimal // utilidad de contribución de la línea
}

// SalesVelocity unidades por día entre la primera y la última venta registradas.
// Si todas las ventas caen el mismo día el divisor es 1.
func SalesVelocity(sales []SaleRecord) float64 {
	if len(sales) == 0 {
		return 0
	}
	first, last := sales[0].Date, sales[0].Date
	total := 0
	for _, s := range sales {
		total += s.Quantity
		if s.Date.Before(first) {
			first = s.Date
		}
		if s.Date.After(last) {
			last = s.Date
		}
	}
	span := last.Sub(first).Hours() / 24
	if span < 1 {
		span = 1
	}
	return float64(total) / span
}

// WindowVelocity promedio diario de unidades vendidas en (from, to].
func WindowVelocity(sales []SaleRecord, from, to time.Time) float64 {
	days := to.Sub(from).Hours() / 24
	if days <= 0 {
		return 0
	}
	total := 0
	for _, s := range sales {
		if s.Date.After(from) && !s.Date.After(to) {
			total += s.Quantity
		}
	}
	return float64(total) / days
}

// DaysOfStock cantidad ÷ max(velocidad, epsilon).
func DaysOfStock(quantity int, velocity float64) float64 {
	if quantity <= 0 {
		return 0
	}
	return float64(quantity) / math.Max(velocity, velocityEpsilon)
}

// HealthFor clasifica los días de stock restantes.
func HealthFor(days float64) string {
	switch {
	case days <= CriticalDays:
		return HealthCritical
	case days <= WarningDays:
		return HealthWarning
	case days <= GoodDays:
		return HealthGood
	default:
		return HealthOverstocked
	}
}

// ClassifyTrend compara el promedio diario de los últimos 14 días contra los 14 anteriores.
// Variaciones dentro de ±10% se consideran estables.
func ClassifyTrend(sales []SaleRecord, asOf time.Time) string {
	window := trendWindowDays * 24 * time.Hour
	recent := WindowVelocity(sales, asOf.Add(-window), asOf)
	previous := WindowVelocity(sales, asOf.Add(-2*window), asOf.Add(-window))

	if previous == 0 {
		if recent > 0 {
			return TrendIncreasing
		}
		return TrendStable
	}
	change := (recent - previous) / previous
	switch {
	case change > trendThreshold:
		return TrendIncreasing
	case change < -trendThreshold:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// Health resultado de clasificar un producto.
type Health struct {
	SKU         string
	Quantity    int
	Velocity    float64
	DaysOfStock float64
	Status      string
	Trend       string
}

// ClassifyHealth combina velocidad histórica, días de stock y tendencia reciente.
func ClassifyHealth(sku string, quantity int, sales []SaleRecord, asOf time.Time) Health {
	v := SalesVelocity(sales)
	days := DaysOfStock(quantity, v)
	return Health{
		SKU:         sku,
		Quantity:    quantity,
		Velocity:    v,
		DaysOfStock: days,
		Status:      HealthFor(days),
		Trend:       ClassifyTrend(sales, asOf),
	}
}
