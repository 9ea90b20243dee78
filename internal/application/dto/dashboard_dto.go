package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/analytics/dashboard.
// KPIs del día y del mes en curso, alertas de inventario y los SKUs más vendidos del mes.
type DashboardSummaryDTO struct {
	// Día actual (00:00 – 23:59)
	Today ProfitDTO `json:"today"`

	// Mes en curso (día 1 – hoy)
	Month ProfitDTO `json:"month"`

	// Pérdidas por cancelación del mes
	MonthLosses decimal.Decimal `json:"month_losses"`

	// Top SKUs por ingreso del mes (mayor a menor)
	TopSKUs []TopSKUDTO `json:"top_skus"`

	// Productos en estado crítico o de advertencia
	StockAlerts []InventoryHealthDTO `json:"stock_alerts"`

	// Sugerencias de reorden con prioridad alta
	UrgentReorders int `json:"urgent_reorders"`

	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}

// TopSKUDTO resumen de un SKU para el widget del dashboard.
type TopSKUDTO struct {
	SKU              string          `json:"sku"`
	ProductName      string          `json:"product_name"`
	QuantitySold     int             `json:"quantity_sold"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	MarginPercentage decimal.Decimal `json:"margin_percentage"`
}
