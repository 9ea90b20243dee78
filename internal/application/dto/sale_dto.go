package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea del pedido.
type SaleLineRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
}

// RecordOrderRequest entrada para POST /api/sales. Todas las líneas comparten número de pedido;
// AdditionalCost se cobra una vez por pedido.
type RecordOrderRequest struct {
	OrderNumber    string            `json:"order_number"`
	SaleDate       string            `json:"sale_date"` // YYYY-MM-DD; por defecto hoy
	AdditionalCost decimal.Decimal   `json:"additional_cost"`
	Lines          []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CancelSaleRequest entrada para POST /api/sales/:id/cancel.
type CancelSaleRequest struct {
	RefundAmount   decimal.Decimal `json:"refund_amount"`
	ShippingStatus string          `json:"shipping_status" validate:"required,oneof=before_shipping after_shipping"`
	Reason         string          `json:"reason"`
}

// SaleListRequest filtros de GET /api/sales.
type SaleListRequest struct {
	DateRangeRequest
	PageRequest
	Status string `query:"status"`
	SKU    string `query:"sku"`
}

// SaleResponse salida de una línea de venta.
type SaleResponse struct {
	ID             string          `json:"id"`
	OrderNumber    string          `json:"order_number"`
	SKU            string          `json:"sku"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ShippingFee    decimal.Decimal `json:"shipping_fee"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	AdditionalCost decimal.Decimal `json:"additional_cost"`
	SaleDate       time.Time       `json:"sale_date"`
	Status         string          `json:"status"`
}

// OrderResponse resultado de registrar un pedido.
type OrderResponse struct {
	OrderNumber string         `json:"order_number"`
	Lines       []SaleResponse `json:"lines"`
	Profit      ProfitDTO      `json:"profit"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CanceledOrderResponse resultado de cancelar una venta.
type CanceledOrderResponse struct {
	ID             string          `json:"id"`
	SaleID         string          `json:"sale_id"`
	RefundAmount   decimal.Decimal `json:"refund_amount"`
	ShippingStatus string          `json:"shipping_status"`
	Loss           decimal.Decimal `json:"loss"`
	Reason         string          `json:"reason"`
	Restocked      bool            `json:"restocked"`
	CanceledAt     time.Time       `json:"canceled_at"`
}
