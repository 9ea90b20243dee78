package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Period rango de fechas inclusivo en ambos extremos.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains informa si t cae dentro del período.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Change variación porcentual entre períodos.
// Value es nil cuando la variación no está definida (período anterior en cero);
// Unbounded marca el caso anterior = 0 y actual ≠ 0.
type Change struct {
	Value     *decimal.Decimal
	Unbounded bool
}

// PercentChange (cur - prev) / |prev| * 100.
func PercentChange(prev, cur decimal.Decimal) Change {
	if prev.IsZero() {
		return Change{Unbounded: !cur.IsZero()}
	}
	v := cur.Sub(prev).Div(prev.Abs()).Mul(hundred)
	return Change{Value: &v}
}

// PeriodMetrics métricas de un SKU dentro de un período.
// Profit es utilidad de contribución: el costo por pedido no se reparte entre SKUs.
type PeriodMetrics struct {
	QuantitySold        int
	OrderCount          int
	Revenue             decimal.Decimal
	Profit              decimal.Decimal
	AvgQuantityPerOrder decimal.Decimal
	Margin              decimal.Decimal // Profit / Revenue * 100, ponderado por ingreso (no promedio de líneas)
}

// SKUTrend comparación de un SKU entre el período actual y el anterior.
type SKUTrend struct {
	SKU            string
	ProductName    string
	Current        PeriodMetrics
	Previous       PeriodMetrics
	MarginChange   Change
	QuantityChange Change
}

type metricsAcc struct {
	qty     int
	revenue decimal.Decimal
	profit  decimal.Decimal
	orders  map[string]struct{}
}

func (a *metricsAcc) add(l ProfitLine) {
	if a.orders == nil {
		a.orders = make(map[string]struct{})
	}
	a.qty += l.Quantity
	a.revenue = a.revenue.Add(l.TotalRevenue())
	a.profit = a.profit.Add(l.ContributionProfit())
	a.orders[l.OrderKey] = struct{}{}
}

func (a *metricsAcc) metrics() PeriodMetrics {
	m := PeriodMetrics{
		QuantitySold: a.qty,
		OrderCount:   len(a.orders),
		Revenue:      a.revenue,
		Profit:       a.profit,
		Margin:       Margin(a.profit, a.revenue),
	}
	if m.OrderCount > 0 {
		m.AvgQuantityPerOrder = decimal.NewFromInt(int64(a.qty)).Div(decimal.NewFromInt(int64(m.OrderCount)))
	}
	return m
}

// ComparePeriods separa las líneas en período actual y anterior y calcula métricas por SKU.
// Una línea fuera de ambos períodos se ignora. Resultado ordenado por ingreso actual descendente.
func ComparePeriods(lines []ProfitLine, current, previous Period) []SKUTrend {
	type pair struct {
		name      string
		cur, prev metricsAcc
	}
	bySKU := make(map[string]*pair)

	for _, l := range lines {
		inCur := current.Contains(l.SaleDate)
		inPrev := previous.Contains(l.SaleDate)
		if !inCur && !inPrev {
			continue
		}
		p, ok := bySKU[l.SKU]
		if !ok {
			p = &pair{}
			bySKU[l.SKU] = p
		}
		if l.ProductName != "" {
			p.name = l.ProductName
		}
		if inCur {
			p.cur.add(l)
		}
		if inPrev {
			p.prev.add(l)
		}
	}

	out := make([]SKUTrend, 0, len(bySKU))
	for sku, p := range bySKU {
		cur, prev := p.cur.metrics(), p.prev.metrics()
		qtyPrev := decimal.NewFromInt(int64(prev.QuantitySold))
		qtyCur := decimal.NewFromInt(int64(cur.QuantitySold))
		out = append(out, SKUTrend{
			SKU:            sku,
			ProductName:    p.name,
			Current:        cur,
			Previous:       prev,
			MarginChange:   PercentChange(prev.Margin, cur.Margin),
			QuantityChange: PercentChange(qtyPrev, qtyCur),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Current.Revenue.Equal(out[j].Current.Revenue) {
			return out[i].Current.Revenue.GreaterThan(out[j].Current.Revenue)
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

// SKUSummary utilidad de contribución acumulada por SKU.
type SKUSummary struct {
	SKU          string
	ProductName  string
	QuantitySold int
	Revenue      decimal.Decimal
	Profit       decimal.Decimal
	Margin       decimal.Decimal
}

// WorstProduct devuelve el SKU con menor utilidad; en empate, el de menor margen.
func WorstProduct(lines []ProfitLine) (SKUSummary, bool) {
	acc := make(map[string]*metricsAcc)
	names := make(map[string]string)
	for _, l := range lines {
		a, ok := acc[l.SKU]
		if !ok {
			a = &metricsAcc{}
			acc[l.SKU] = a
		}
		a.add(l)
		if l.ProductName != "" {
			names[l.SKU] = l.ProductName
		}
	}
	if len(acc) == 0 {
		return SKUSummary{}, false
	}

	summaries := make([]SKUSummary, 0, len(acc))
	for sku, a := range acc {
		m := a.metrics()
		summaries = append(summaries, SKUSummary{
			SKU:          sku,
			ProductName:  names[sku],
			QuantitySold: m.QuantitySold,
			Revenue:      m.Revenue,
			Profit:       m.Profit,
			Margin:       m.Margin,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if !a.Profit.Equal(b.Profit) {
			return a.Profit.LessThan(b.Profit)
		}
		if !a.Margin.Equal(b.Margin) {
			return a.Margin.LessThan(b.Margin)
		}
		return a.SKU < b.SKU
	})
	return summaries[0], true
}
