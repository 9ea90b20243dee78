package dto

import "github.com/jhoicas/SellerOps-api/internal/domain/analytics"

// NewProfitDTO redondea el desglose a 2 decimales para la respuesta.
func NewProfitDTO(b analytics.ProfitBreakdown) ProfitDTO {
	return ProfitDTO{
		Revenue:         b.Revenue.Round(2),
		ShippingIncome:  b.ShippingIncome.Round(2),
		TotalRevenue:    b.TotalRevenue.Round(2),
		PlatformFee:     b.PlatformFee.Round(2),
		CostOfGoods:     b.CostOfGoods.Round(2),
		AdditionalCosts: b.AdditionalCosts.Round(2),
		NetProfit:       b.NetProfit.Round(2),
		ProfitMargin:    b.ProfitMargin.Round(2),
		OrderCount:      b.OrderCount,
		LineCount:       b.LineCount,
	}
}

// NewChangeDTO copia la variación; el valor se redondea a 2 decimales.
func NewChangeDTO(c analytics.Change) ChangeDTO {
	out := ChangeDTO{Unbounded: c.Unbounded}
	if c.Value != nil {
		v := c.Value.Round(2)
		out.Value = &v
	}
	return out
}

// NewPeriodMetricsDTO mapea las métricas de un SKU en un período.
func NewPeriodMetricsDTO(m analytics.PeriodMetrics) PeriodMetricsDTO {
	return PeriodMetricsDTO{
		QuantitySold:        m.QuantitySold,
		OrderCount:          m.OrderCount,
		Revenue:             m.Revenue.Round(2),
		Profit:              m.Profit.Round(2),
		AvgQuantityPerOrder: m.AvgQuantityPerOrder.Round(2),
		Margin:              m.Margin.Round(2),
	}
}
