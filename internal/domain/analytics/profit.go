// Package analytics contiene la aritmética pura de rentabilidad: desglose de utilidad,
// reportes por período y comparación de tendencias por SKU.
//
// Ninguna función hace I/O ni guarda estado; reciben colecciones ya consultadas.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
)

// PlatformFeeRate comisión fija de la plataforma sobre el ingreso total de cada línea.
var PlatformFeeRate = decimal.NewFromFloat(0.08)

var hundred = decimal.NewFromInt(100)

// ProfitLine proyección de una línea de venta con lo necesario para calcular utilidad.
type ProfitLine struct {
	SaleID         string
	OrderKey       string
	SKU            string
	ProductName    string
	Quantity       int
	UnitPrice      decimal.Decimal
	ShippingFee    decimal.Decimal
	UnitCost       decimal.Decimal
	AdditionalCost decimal.Decimal // por pedido, no por línea
	SaleDate       time.Time
}

// LineFromSale construye la proyección a partir de la entidad.
func LineFromSale(s *entity.Sale) ProfitLine {
	return ProfitLine{
		SaleID:         s.ID,
		OrderKey:       s.OrderKey(),
		SKU:            s.SKU,
		ProductName:    s.ProductName,
		Quantity:       s.Quantity,
		UnitPrice:      s.UnitPrice,
		ShippingFee:    s.ShippingFee,
		UnitCost:       s.UnitCost,
		AdditionalCost: s.AdditionalCost,
		SaleDate:       s.SaleDate,
	}
}

// LinesFromSales proyecta un slice de ventas.
func LinesFromSales(sales []*entity.Sale) []ProfitLine {
	lines := make([]ProfitLine, 0, len(sales))
	for _, s := range sales {
		lines = append(lines, LineFromSale(s))
	}
	return lines
}

// Revenue precio × cantidad.
func (l ProfitLine) Revenue() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// TotalRevenue ingreso de la línea incluyendo el envío cobrado.
func (l ProfitLine) TotalRevenue() decimal.Decimal {
	return l.Revenue().Add(l.ShippingFee)
}

// PlatformFee comisión de la plataforma sobre el ingreso total de la línea.
func (l ProfitLine) PlatformFee() decimal.Decimal {
	return l.TotalRevenue().Mul(PlatformFeeRate)
}

// CostOfGoods costo unitario × cantidad.
func (l ProfitLine) CostOfGoods() decimal.Decimal {
	return l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ContributionProfit utilidad de la línea antes de costos por pedido.
func (l ProfitLine) ContributionProfit() decimal.Decimal {
	return l.TotalRevenue().Sub(l.PlatformFee()).Sub(l.CostOfGoods())
}

// ProfitBreakdown desglose agregado de un conjunto de líneas.
type ProfitBreakdown struct {
	Revenue         decimal.Decimal
	ShippingIncome  decimal.Decimal
	TotalRevenue    decimal.Decimal
	PlatformFee     decimal.Decimal
	CostOfGoods     decimal.Decimal
	AdditionalCosts decimal.Decimal
	NetProfit       decimal.Decimal
	ProfitMargin    decimal.Decimal // porcentaje; 0 si TotalRevenue es 0
	OrderCount      int
	LineCount       int
}

// ComputeProfit agrupa por pedido, suma los montos de cada línea y agrega el costo adicional
// una sola vez por pedido (el mayor declarado entre sus líneas).
func ComputeProfit(lines []ProfitLine) ProfitBreakdown {
	var b ProfitBreakdown
	perOrder := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for _, l := range lines {
		b.Revenue = b.Revenue.Add(l.Revenue())
		b.ShippingIncome = b.ShippingIncome.Add(l.ShippingFee)
		b.PlatformFee = b.PlatformFee.Add(l.PlatformFee())
		b.CostOfGoods = b.CostOfGoods.Add(l.CostOfGoods())
		b.LineCount++

		current, seen := perOrder[l.OrderKey]
		if !seen {
			order = append(order, l.OrderKey)
			perOrder[l.OrderKey] = l.AdditionalCost
			continue
		}
		if l.AdditionalCost.GreaterThan(current) {
			perOrder[l.OrderKey] = l.AdditionalCost
		}
	}

	for _, key := range order {
		b.AdditionalCosts = b.AdditionalCosts.Add(perOrder[key])
	}
	b.OrderCount = len(order)
	b.TotalRevenue = b.Revenue.Add(b.ShippingIncome)
	b.NetProfit = b.TotalRevenue.Sub(b.PlatformFee).Sub(b.CostOfGoods).Sub(b.AdditionalCosts)
	b.ProfitMargin = Margin(b.NetProfit, b.TotalRevenue)
	return b
}

// Margin utilidad ÷ ingreso × 100; 0 cuando el ingreso es 0.
func Margin(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred)
}

// orderCostOwners asigna el costo adicional de cada pedido a su primera línea (por fecha),
// para que cualquier agrupación posterior lo cuente exactamente una vez.
func orderCostOwners(lines []ProfitLine) map[int]decimal.Decimal {
	type owner struct {
		idx  int
		date time.Time
		cost decimal.Decimal
	}
	byOrder := make(map[string]*owner)
	for i, l := range lines {
		o, ok := byOrder[l.OrderKey]
		if !ok {
			byOrder[l.OrderKey] = &owner{idx: i, date: l.SaleDate, cost: l.AdditionalCost}
			continue
		}
		if l.SaleDate.Before(o.date) {
			o.idx, o.date = i, l.SaleDate
		}
		if l.AdditionalCost.GreaterThan(o.cost) {
			o.cost = l.AdditionalCost
		}
	}
	owners := make(map[int]decimal.Decimal, len(byOrder))
	for _, o := range byOrder {
		owners[o.idx] = o.cost
	}
	return owners
}
