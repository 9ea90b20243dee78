package inventory

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Prioridades de reorden.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const (
	reorderCoverMonths = 1.5
	trendAdjustment    = 0.20
	marginWindowDays   = 30
)

var hundred = decimal.NewFromInt(100)

// StockItem producto candidato a reorden.
type StockItem struct {
	SKU      string
	Name     string
	Quantity int
	Active   bool
}

// ReorderRecommendation sugerencia de compra para un SKU.
type ReorderRecommendation struct {
	SKU                 string
	ProductName         string
	CurrentQuantity     int
	Velocity            float64
	DaysUntilStockout   float64
	Trend               string
	RecommendedQuantity int
	Priority            string
	TrailingMargin      *decimal.Decimal // nil sin ventas en los últimos 30 días
	MarginBlocked       bool
}

// PriorityFor prioridad según días hasta agotarse, mismos umbrales que la salud del inventario.
func PriorityFor(days float64) string {
	switch {
	case days <= CriticalDays:
		return PriorityHigh
	case days <= WarningDays:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// RecommendedQuantity 1.5 meses de demanda, ±20% según tendencia, redondeado hacia arriba.
func RecommendedQuantity(velocity float64, trend string) int {
	qty := velocity * 30 * reorderCoverMonths
	switch trend {
	case TrendIncreasing:
		qty *= 1 + trendAdjustment
	case TrendDecreasing:
		qty *= 1 - trendAdjustment
	}
	return int(math.Ceil(qty - 1e-9))
}

// TrailingMargin margen promedio de las ventas de los últimos 30 días; nil si no hubo ingresos.
func TrailingMargin(sales []SaleRecord, asOf time.Time) *decimal.Decimal {
	from := asOf.AddDate(0, 0, -marginWindowDays)
	var revenue, profit decimal.Decimal
	for _, s := range sales {
		if s.Date.After(from) && !s.Date.After(asOf) {
			revenue = revenue.Add(s.Revenue)
			profit = profit.Add(s.Profit)
		}
	}
	if revenue.IsZero() {
		return nil
	}
	m := profit.Div(revenue).Mul(hundred)
	return &m
}

// RecommendReorder genera una sugerencia por producto activo. Si el margen de los últimos 30 días
// está por debajo de minMargin, la prioridad baja a "low" y la cantidad sugerida es 0.
func RecommendReorder(items []StockItem, salesBySKU map[string][]SaleRecord, minMargin decimal.Decimal, asOf time.Time) []ReorderRecommendation {
	out := make([]ReorderRecommendation, 0, len(items))
	for _, it := range items {
		if !it.Active {
			continue
		}
		sales := salesBySKU[it.SKU]
		h := ClassifyHealth(it.SKU, it.Quantity, sales, asOf)

		rec := ReorderRecommendation{
			SKU:                 it.SKU,
			ProductName:         it.Name,
			CurrentQuantity:     it.Quantity,
			Velocity:            h.Velocity,
			DaysUntilStockout:   h.DaysOfStock,
			Trend:               h.Trend,
			RecommendedQuantity: RecommendedQuantity(h.Velocity, h.Trend),
			Priority:            PriorityFor(h.DaysOfStock),
			TrailingMargin:      TrailingMargin(sales, asOf),
		}
		if rec.TrailingMargin != nil && rec.TrailingMargin.LessThan(minMargin) {
			rec.MarginBlocked = true
			rec.Priority = PriorityLow
			rec.RecommendedQuantity = 0
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := priorityRank(out[i].Priority), priorityRank(out[j].Priority)
		if ri != rj {
			return ri < rj
		}
		if out[i].DaysUntilStockout != out[j].DaysUntilStockout {
			return out[i].DaysUntilStockout < out[j].DaysUntilStockout
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

func priorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}
