package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// ReportRequest parámetros de GET /api/analytics/report.
type ReportRequest struct {
	DateRangeRequest
	Granularity string `query:"granularity"` // daily|monthly (default daily)
}

// TrendsRequest parámetros de GET /api/analytics/trends.
// Sin fechas: últimos 30 días contra los 30 anteriores.
type TrendsRequest struct {
	CurrentStart  string `query:"current_start"`
	CurrentEnd    string `query:"current_end"`
	PreviousStart string `query:"previous_start"`
	PreviousEnd   string `query:"previous_end"`
}

// ── Utilidad ──────────────────────────────────────────────────────────────────

// ProfitDTO desglose de utilidad.
// Fórmula: utilidad_neta = ingreso_total - comisión - costo_mercancía - costos_adicionales
type ProfitDTO struct {
	Revenue         decimal.Decimal `json:"revenue"`          // precio × cantidad
	ShippingIncome  decimal.Decimal `json:"shipping_income"`  // envío cobrado
	TotalRevenue    decimal.Decimal `json:"total_revenue"`    // revenue + envío
	PlatformFee     decimal.Decimal `json:"platform_fee"`     // 8% del ingreso total por línea
	CostOfGoods     decimal.Decimal `json:"cost_of_goods"`    // costo unitario × cantidad
	AdditionalCosts decimal.Decimal `json:"additional_costs"` // una vez por pedido
	NetProfit       decimal.Decimal `json:"net_profit"`
	ProfitMargin    decimal.Decimal `json:"profit_margin"` // %; 0 sin ingresos
	OrderCount      int             `json:"order_count"`
	LineCount       int             `json:"line_count"`
}

// ProfitResponse respuesta de GET /api/analytics/profit.
type ProfitResponse struct {
	Period PeriodDTO `json:"period"`
	Profit ProfitDTO `json:"profit"`
}

// ── Reporte por períodos ──────────────────────────────────────────────────────

// ReportBucketDTO resumen de un día o mes.
type ReportBucketDTO struct {
	Key        string          `json:"key"` // YYYY-MM-DD o YYYY-MM
	Revenue    decimal.Decimal `json:"revenue"`
	Profit     decimal.Decimal `json:"profit"`
	Losses     decimal.Decimal `json:"losses"` // pérdidas por cancelación
	NetProfit  decimal.Decimal `json:"net_profit"`
	OrderCount int             `json:"order_count"`
	SalesCount int             `json:"sales_count"`
}

// ReportTotalsDTO totales del reporte.
type ReportTotalsDTO struct {
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
	Losses       decimal.Decimal `json:"losses"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
	OrderCount   int             `json:"order_count"`
	SalesCount   int             `json:"sales_count"`
	// CanceledRevenue ingreso de ventas canceladas incluido en Revenue.
	CanceledRevenue decimal.Decimal `json:"canceled_revenue"`
}

// ReportResponse respuesta de GET /api/analytics/report.
type ReportResponse struct {
	Period      PeriodDTO         `json:"period"`
	Granularity string            `json:"granularity"`
	Buckets     []ReportBucketDTO `json:"buckets"`
	Total       ReportTotalsDTO   `json:"total"`
}

// ── Tendencias por SKU ────────────────────────────────────────────────────────

// PeriodMetricsDTO métricas de un SKU en un período.
type PeriodMetricsDTO struct {
	QuantitySold        int             `json:"quantity_sold"`
	OrderCount          int             `json:"order_count"`
	Revenue             decimal.Decimal `json:"revenue"`
	Profit              decimal.Decimal `json:"profit"`
	AvgQuantityPerOrder decimal.Decimal `json:"avg_quantity_per_order"`
	Margin              decimal.Decimal `json:"margin"`
}

// ChangeDTO variación porcentual. Value es null cuando el período anterior es 0;
// Unbounded indica crecimiento desde cero.
type ChangeDTO struct {
	Value     *decimal.Decimal `json:"value"`
	Unbounded bool             `json:"unbounded"`
}

// SKUTrendDTO comparación de un SKU entre períodos.
type SKUTrendDTO struct {
	SKU            string           `json:"sku"`
	ProductName    string           `json:"product_name"`
	Current        PeriodMetricsDTO `json:"current"`
	Previous       PeriodMetricsDTO `json:"previous"`
	MarginChange   ChangeDTO        `json:"margin_change"`
	QuantityChange ChangeDTO        `json:"quantity_change"`
}

// TrendsResponse respuesta de GET /api/analytics/trends.
type TrendsResponse struct {
	Current  PeriodDTO     `json:"current"`
	Previous PeriodDTO     `json:"previous"`
	Items    []SKUTrendDTO `json:"items"`
}

// ── Inventario ────────────────────────────────────────────────────────────────

// InventoryHealthDTO salud de un producto.
type InventoryHealthDTO struct {
	SKU         string  `json:"sku"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Velocity    float64 `json:"velocity"`      // unidades/día
	DaysOfStock float64 `json:"days_of_stock"` // cantidad ÷ velocidad
	Health      string  `json:"health"`        // critical|warning|good|overstocked
	Trend       string  `json:"trend"`         // increasing|stable|decreasing
}

// InventoryHealthResponse respuesta de GET /api/analytics/inventory-health.
type InventoryHealthResponse struct {
	AsOf    string               `json:"as_of"`
	Items   []InventoryHealthDTO `json:"items"`
	Summary map[string]int       `json:"summary"` // conteo por estado de salud
}

// ReorderDTO sugerencia de reorden.
type ReorderDTO struct {
	SKU                 string           `json:"sku"`
	ProductName         string           `json:"product_name"`
	CurrentQuantity     int              `json:"current_quantity"`
	Velocity            float64          `json:"velocity"`
	DaysUntilStockout   float64          `json:"days_until_stockout"`
	Trend               string           `json:"trend"`
	RecommendedQuantity int              `json:"recommended_quantity"`
	Priority            string           `json:"priority"` // high|medium|low
	TrailingMargin      *decimal.Decimal `json:"trailing_margin"`
	MarginBlocked       bool             `json:"margin_blocked"`
}

// ReorderResponse respuesta de GET /api/analytics/reorder.
type ReorderResponse struct {
	AsOf            string          `json:"as_of"`
	MinProfitMargin decimal.Decimal `json:"min_profit_margin"`
	Items           []ReorderDTO    `json:"items"`
}
